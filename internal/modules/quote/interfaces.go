package quote

import (
	"context"
	"time"

	"kayexpress/internal/domain"
	"kayexpress/internal/repository"

	"gorm.io/gorm"
)

// QuoteRepository covers the slice of the quote repository the service
// uses.
type QuoteRepository interface {
	Create(ctx context.Context, q *domain.Quote) error
	GetByID(ctx context.Context, id int64) (*domain.Quote, error)
	GetByReference(ctx context.Context, ref string) (*domain.Quote, error)
	CountRecentByPhone(ctx context.Context, phone string, since time.Time) (int64, error)
	List(ctx context.Context, f repository.QuoteFilters) ([]domain.Quote, int64, error)
	MarkQuoted(ctx context.Context, id int64, amount float64, notes string, at time.Time) error
	SetStatus(ctx context.Context, id int64, to domain.QuoteStatus, from ...domain.QuoteStatus) error
}

// ReferenceSource issues quote reference numbers. Satisfied by
// *refnum.Generator.
type ReferenceSource interface {
	NextSequential(tx *gorm.DB, prefix, period string, width int) (string, error)
}
