package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/josh-kwaku/codemart/internal/domain"
	"github.com/josh-kwaku/codemart/internal/payerr"
)

const paymentFailureColumns = `id, user_id, item_id, report_id, source, wallet_address,
	tx_hash, amount, currency, raw_message, code, recoverable, created_at`

type PaymentFailureRepository struct {
	db *sql.DB
}

func NewPaymentFailureRepository(db *sql.DB) *PaymentFailureRepository {
	return &PaymentFailureRepository{db: db}
}

func (r *PaymentFailureRepository) Create(ctx context.Context, f *domain.PaymentFailure) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO payment_failures (`+paymentFailureColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		f.ID, f.UserID, f.ItemID, f.ReportID, f.Source, f.WalletAddress,
		f.TxHash, f.Amount, f.Currency, f.RawMessage, f.Code, f.Recoverable, f.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *PaymentFailureRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentFailure, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+paymentFailureColumns+` FROM payment_failures WHERE id = $1`, id,
	)
	f, err := scanPaymentFailure(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return f, nil
}

func (r *PaymentFailureRepository) GetByReportID(ctx context.Context, userID uuid.UUID, reportID string) (*domain.PaymentFailure, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+paymentFailureColumns+` FROM payment_failures
		WHERE user_id = $1 AND report_id = $2`, userID, reportID,
	)
	f, err := scanPaymentFailure(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByReportID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByReportID: %w", err)
	}
	return f, nil
}

func (r *PaymentFailureRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.PaymentFailure, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+paymentFailureColumns+` FROM payment_failures
		WHERE user_id = $1 ORDER BY created_at DESC, id LIMIT $2`, userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByUser: %w", err)
	}
	defer rows.Close()

	failures := []domain.PaymentFailure{}
	for rows.Next() {
		f, err := scanPaymentFailure(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByUser: scan: %w", err)
		}
		failures = append(failures, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByUser: rows: %w", err)
	}
	return failures, nil
}

// CountByKind returns counts only for kinds the user has at least one failure of.
func (r *PaymentFailureRepository) CountByKind(ctx context.Context, userID uuid.UUID) ([]domain.KindCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT code, count(*) FROM payment_failures WHERE user_id = $1 GROUP BY code`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("CountByKind: %w", err)
	}
	defer rows.Close()

	var counts []domain.KindCount
	for rows.Next() {
		var c domain.KindCount
		if err := rows.Scan(&c.Code, &c.Count); err != nil {
			return nil, fmt.Errorf("CountByKind: scan: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("CountByKind: rows: %w", err)
	}
	return counts, nil
}

func (r *PaymentFailureRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM payment_failures WHERE created_at < $1`, cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("DeleteOlderThan: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteOlderThan: rows affected: %w", err)
	}
	return n, nil
}

func scanPaymentFailure(s scanner) (*domain.PaymentFailure, error) {
	var f domain.PaymentFailure
	var currency *string
	var code string

	err := s.Scan(
		&f.ID, &f.UserID, &f.ItemID, &f.ReportID, &f.Source, &f.WalletAddress,
		&f.TxHash, &f.Amount, &currency, &f.RawMessage, &code, &f.Recoverable, &f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if currency != nil {
		c := domain.Currency(*currency)
		f.Currency = &c
	}
	f.Code = payerr.Kind(code)

	return &f, nil
}
