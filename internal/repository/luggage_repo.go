package repository

import (
	"context"
	"time"

	"kayexpress/internal/domain"

	"gorm.io/gorm"
)

type LuggageRepository struct {
	db *gorm.DB
}

func NewLuggageRepository(db *gorm.DB) *LuggageRepository {
	return &LuggageRepository{db: db}
}

func (r *LuggageRepository) CreateType(ctx context.Context, t *domain.LuggageType) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *LuggageRepository) GetTypeByID(ctx context.Context, id int64) (*domain.LuggageType, error) {
	var t domain.LuggageType
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *LuggageRepository) UpdateType(ctx context.Context, t *domain.LuggageType) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *LuggageRepository) ListTypes(ctx context.Context, activeOnly bool) ([]domain.LuggageType, error) {
	var types []domain.LuggageType
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("name ASC").Find(&types).Error
	return types, err
}

// Create inserts the luggage and its first tracking event together.
// location is where the piece was checked in, usually the origin
// terminal of the booked trip.
func (r *LuggageRepository) Create(ctx context.Context, l *domain.Luggage, recordedBy int64, location string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(l).Error; err != nil {
			return err
		}
		event := domain.LuggageEvent{
			LuggageID:  l.ID,
			Status:     l.Status,
			Location:   location,
			Notes:      "registered at check-in",
			RecordedBy: recordedBy,
		}
		return tx.Create(&event).Error
	})
}

func (r *LuggageRepository) GetByID(ctx context.Context, id int64) (*domain.Luggage, error) {
	var l domain.Luggage
	err := r.db.WithContext(ctx).
		Preload("LuggageType").
		First(&l, id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LuggageRepository) GetByReference(ctx context.Context, ref string) (*domain.Luggage, error) {
	var l domain.Luggage
	err := r.db.WithContext(ctx).
		Preload("LuggageType").
		Where("reference = ?", ref).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LuggageRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Luggage, error) {
	var items []domain.Luggage
	err := r.db.WithContext(ctx).
		Preload("LuggageType").
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

// SetStatus advances a piece of luggage along the handling flow and
// appends a tracking event in the same transaction. The from guard
// rejects writes racing against another status change.
func (r *LuggageRepository) SetStatus(ctx context.Context, id int64, from, to domain.LuggageStatus, location, notes string, recordedBy int64, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": to}
		if to == domain.LuggageCollected {
			updates["collected_at"] = at
		}

		res := tx.Model(&domain.Luggage{}).
			Where("id = ? AND status = ?", id, from).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var n int64
			if err := tx.Model(&domain.Luggage{}).Where("id = ?", id).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return gorm.ErrRecordNotFound
			}
			return ErrConcurrentModification
		}

		event := domain.LuggageEvent{
			LuggageID:  id,
			Status:     to,
			Location:   location,
			Notes:      notes,
			RecordedBy: recordedBy,
		}
		return tx.Create(&event).Error
	})
}

func (r *LuggageRepository) GetEvents(ctx context.Context, luggageID int64) ([]domain.LuggageEvent, error) {
	var events []domain.LuggageEvent
	err := r.db.WithContext(ctx).
		Where("luggage_id = ?", luggageID).
		Order("created_at ASC").
		Find(&events).Error
	return events, err
}
