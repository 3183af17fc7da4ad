package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// RetentionSweeper periodically deletes failures older than the retention
// window.
type RetentionSweeper struct {
	failures  failureSweeper
	logger    *slog.Logger
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
}

func NewRetentionSweeper(failures failureSweeper, logger *slog.Logger, retention, interval time.Duration) *RetentionSweeper {
	return &RetentionSweeper{
		failures:  failures,
		logger:    logger,
		retention: retention,
		interval:  interval,
		now:       time.Now,
	}
}

func (p *RetentionSweeper) Start(ctx context.Context) {
	p.logger.Info("retention sweeper started", "interval", p.interval, "retention", p.retention)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.sweepAndLog(ctx)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("retention sweeper stopped")
			return
		case <-ticker.C:
			p.sweepAndLog(ctx)
		}
	}
}

// Sweep runs a single deletion pass and returns the number of rows removed.
func (p *RetentionSweeper) Sweep(ctx context.Context) (int64, error) {
	cutoff := p.now().UTC().Add(-p.retention)
	n, err := p.failures.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("Sweep: %w", err)
	}
	return n, nil
}

func (p *RetentionSweeper) sweepAndLog(ctx context.Context) {
	n, err := p.Sweep(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Error("retention sweep failed", "error", err)
		}
		return
	}
	if n > 0 {
		p.logger.Info("expired payment failures deleted", "count", n)
	}
}
