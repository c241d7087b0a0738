package payment

import (
	"context"
	"time"

	"kayexpress/internal/domain"
	"kayexpress/internal/repository"
)

// paymentRepo is satisfied by *repository.PaymentRepository.
type paymentRepo interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByReference(ctx context.Context, ref string) (*domain.Payment, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Payment, int64, error)
	MarkProcessing(ctx context.Context, id int64, gatewayTxnID string) error
	MarkSuccessful(ctx context.Context, reference, gatewayTxnID string, at time.Time) (bool, error)
	MarkFailed(ctx context.Context, reference, reason string) error
	Refund(ctx context.Context, paymentID int64, at time.Time) (bool, error)
	Stats(ctx context.Context) (*repository.PaymentStats, error)
}

type bookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByReference(ctx context.Context, ref string) (*domain.Booking, error)
}

type tripReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Trip, error)
}

type userReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
