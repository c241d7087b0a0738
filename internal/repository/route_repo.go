package repository

import (
	"context"

	"kayexpress/internal/domain"

	"gorm.io/gorm"
)

type RouteRepository struct {
	db *gorm.DB
}

func NewRouteRepository(db *gorm.DB) *RouteRepository {
	return &RouteRepository{db: db}
}

func (r *RouteRepository) Create(ctx context.Context, route *domain.Route) error {
	return r.db.WithContext(ctx).Create(route).Error
}

func (r *RouteRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	var route domain.Route
	err := r.db.WithContext(ctx).
		Preload("Origin").
		Preload("Destination").
		First(&route, id).Error
	if err != nil {
		return nil, err
	}
	return &route, nil
}

type RouteFilters struct {
	OriginID      int64
	DestinationID int64
	ActiveOnly    bool
	Limit         int
	Offset        int
}

func (r *RouteRepository) List(ctx context.Context, f RouteFilters) ([]domain.Route, int64, error) {
	var routes []domain.Route
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Route{})
	if f.OriginID > 0 {
		q = q.Where("origin_id = ?", f.OriginID)
	}
	if f.DestinationID > 0 {
		q = q.Where("destination_id = ?", f.DestinationID)
	}
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	q.Count(&total)

	err := q.Preload("Origin").Preload("Destination").Order("name ASC").Limit(f.Limit).Offset(f.Offset).Find(&routes).Error
	return routes, total, err
}

func (r *RouteRepository) Update(ctx context.Context, route *domain.Route) error {
	return r.db.WithContext(ctx).Save(route).Error
}

func (r *RouteRepository) ExistsByPair(ctx context.Context, originID, destinationID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Route{}).
		Where("origin_id = ? AND destination_id = ?", originID, destinationID).
		Count(&n).Error
	return n > 0, err
}

func (r *RouteRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Route{}).
		Where("is_active = ?", true).
		Count(&n).Error
	return n, err
}
