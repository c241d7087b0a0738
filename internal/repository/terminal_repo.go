package repository

import (
	"context"

	"kayexpress/internal/domain"

	"gorm.io/gorm"
)

type TerminalRepository struct {
	db *gorm.DB
}

func NewTerminalRepository(db *gorm.DB) *TerminalRepository {
	return &TerminalRepository{db: db}
}

func (r *TerminalRepository) Create(ctx context.Context, t *domain.Terminal) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TerminalRepository) GetByID(ctx context.Context, id int64) (*domain.Terminal, error) {
	var t domain.Terminal
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

type TerminalFilters struct {
	Region     string
	Type       domain.TerminalType
	ActiveOnly bool
	Limit      int
	Offset     int
}

func (r *TerminalRepository) List(ctx context.Context, f TerminalFilters) ([]domain.Terminal, int64, error) {
	var terminals []domain.Terminal
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Terminal{})
	if f.Region != "" {
		q = q.Where("region = ?", f.Region)
	}
	if f.Type != "" {
		q = q.Where("terminal_type = ?", f.Type)
	}
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	q.Count(&total)

	err := q.Order("name ASC").Limit(f.Limit).Offset(f.Offset).Find(&terminals).Error
	return terminals, total, err
}

func (r *TerminalRepository) Update(ctx context.Context, t *domain.Terminal) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TerminalRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&domain.Terminal{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Count(&n).Error
	return n, err
}
