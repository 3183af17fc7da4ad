package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/josh-kwaku/codemart/internal/domain"
)

type failureRepository interface {
	Create(ctx context.Context, f *domain.PaymentFailure) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentFailure, error)
	GetByReportID(ctx context.Context, userID uuid.UUID, reportID string) (*domain.PaymentFailure, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.PaymentFailure, error)
	CountByKind(ctx context.Context, userID uuid.UUID) ([]domain.KindCount, error)
}

type failureSweeper interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
