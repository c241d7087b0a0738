package repository

import (
	"context"
	"time"

	"kayexpress/internal/domain"

	"gorm.io/gorm"
)

type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Create(ctx context.Context, q *domain.Quote) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *QuoteRepository) GetByID(ctx context.Context, id int64) (*domain.Quote, error) {
	var q domain.Quote
	if err := r.db.WithContext(ctx).First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuoteRepository) GetByReference(ctx context.Context, ref string) (*domain.Quote, error) {
	var q domain.Quote
	if err := r.db.WithContext(ctx).Where("reference = ?", ref).First(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// CountRecentByPhone backs the submission throttle: one phone number
// gets a limited number of quote requests per window.
func (r *QuoteRepository) CountRecentByPhone(ctx context.Context, phone string, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Quote{}).
		Where("phone = ? AND created_at >= ?", phone, since).
		Count(&n).Error
	return n, err
}

type QuoteFilters struct {
	Status domain.QuoteStatus
	Limit  int
	Offset int
}

func (r *QuoteRepository) List(ctx context.Context, f QuoteFilters) ([]domain.Quote, int64, error) {
	var quotes []domain.Quote
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Quote{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	q.Count(&total)

	err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&quotes).Error
	return quotes, total, err
}

// MarkQuoted attaches a price to a pending request.
func (r *QuoteRepository) MarkQuoted(ctx context.Context, id int64, amount float64, notes string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Quote{}).
		Where("id = ? AND status = ?", id, domain.QuotePending).
		Updates(map[string]interface{}{
			"status":       domain.QuoteQuoted,
			"quote_amount": amount,
			"quote_notes":  notes,
			"quoted_at":    at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := r.db.WithContext(ctx).Model(&domain.Quote{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrInvalidStatusTransition
	}
	return nil
}

// SetStatus flips a quote between lifecycle states, guarded by the
// states the move is legal from.
func (r *QuoteRepository) SetStatus(ctx context.Context, id int64, to domain.QuoteStatus, from ...domain.QuoteStatus) error {
	states := make([]string, 0, len(from))
	for _, s := range from {
		states = append(states, string(s))
	}

	res := r.db.WithContext(ctx).
		Model(&domain.Quote{}).
		Where("id = ? AND status IN ?", id, states).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := r.db.WithContext(ctx).Model(&domain.Quote{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrInvalidStatusTransition
	}
	return nil
}
