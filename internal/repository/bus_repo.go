package repository

import (
	"context"

	"kayexpress/internal/domain"

	"gorm.io/gorm"
)

type BusRepository struct {
	db *gorm.DB
}

func NewBusRepository(db *gorm.DB) *BusRepository {
	return &BusRepository{db: db}
}

func (r *BusRepository) Create(ctx context.Context, b *domain.Bus) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BusRepository) GetByID(ctx context.Context, id int64) (*domain.Bus, error) {
	var b domain.Bus
	if err := r.db.WithContext(ctx).Preload("HomeTerminal").First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BusRepository) GetByBusNumber(ctx context.Context, number string) (*domain.Bus, error) {
	var b domain.Bus
	if err := r.db.WithContext(ctx).Where("bus_number = ?", number).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

type BusFilters struct {
	Status domain.BusStatus
	Type   domain.BusType
	Limit  int
	Offset int
}

func (r *BusRepository) List(ctx context.Context, f BusFilters) ([]domain.Bus, int64, error) {
	var buses []domain.Bus
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Bus{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("bus_type = ?", f.Type)
	}

	q.Count(&total)

	err := q.Preload("HomeTerminal").Order("bus_number ASC").Limit(f.Limit).Offset(f.Offset).Find(&buses).Error
	return buses, total, err
}

func (r *BusRepository) Update(ctx context.Context, b *domain.Bus) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// BusCounts aggregates the fleet for the admin dashboard. TotalSeats
// only counts active buses, which is the capacity actually on the road.
type BusCounts struct {
	ByStatus   map[string]int64
	ByType     map[string]int64
	TotalSeats int64
}

func (r *BusRepository) Counts(ctx context.Context) (*BusCounts, error) {
	out := &BusCounts{
		ByStatus: make(map[string]int64),
		ByType:   make(map[string]int64),
	}

	var statusRows []struct {
		Status string
		N      int64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Bus{}).
		Select("status, COUNT(1) AS n").
		Group("status").
		Scan(&statusRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range statusRows {
		out.ByStatus[row.Status] = row.N
	}

	var typeRows []struct {
		BusType string
		N       int64
	}
	err = r.db.WithContext(ctx).
		Model(&domain.Bus{}).
		Select("bus_type, COUNT(1) AS n").
		Group("bus_type").
		Scan(&typeRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range typeRows {
		out.ByType[row.BusType] = row.N
	}

	err = r.db.WithContext(ctx).
		Model(&domain.Bus{}).
		Select("COALESCE(SUM(total_seats), 0)").
		Where("status = ?", domain.BusActive).
		Scan(&out.TotalSeats).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BusRepository) SetStatus(ctx context.Context, id int64, status domain.BusStatus) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Bus{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
