package repository

import (
	"context"
	"errors"
	"time"

	"kayexpress/internal/domain"

	"gorm.io/gorm"
)

type TripFilters struct {
	RouteID       int64
	OriginID      int64
	DestinationID int64
	Date          *time.Time // start of the departure day
	MinSeats      int
	Status        domain.TripStatus
	Limit         int
	Offset        int
}

type TripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) *TripRepository {
	return &TripRepository{db: db}
}

func (r *TripRepository) Create(ctx context.Context, t *domain.Trip) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TripRepository) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	var t domain.Trip
	err := r.db.WithContext(ctx).
		Preload("Route").
		Preload("Route.Origin").
		Preload("Route.Destination").
		Preload("Bus").
		First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Search returns trips with optional filters
func (r *TripRepository) Search(ctx context.Context, f TripFilters) ([]domain.Trip, int64, error) {
	var trips []domain.Trip
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Trip{})

	if f.RouteID > 0 {
		q = q.Where("route_id = ?", f.RouteID)
	}
	if f.OriginID > 0 || f.DestinationID > 0 {
		q = q.Joins("JOIN routes ON routes.id = trips.route_id")
	}
	if f.OriginID > 0 {
		q = q.Where("routes.origin_id = ?", f.OriginID)
	}
	if f.DestinationID > 0 {
		q = q.Where("routes.destination_id = ?", f.DestinationID)
	}
	if f.Date != nil {
		q = q.Where("departure_time >= ? AND departure_time < ?", *f.Date, f.Date.Add(24*time.Hour))
	}
	if f.MinSeats > 0 {
		q = q.Where("available_seats >= ?", f.MinSeats)
	}
	if f.Status != "" {
		q = q.Where("trips.status = ?", f.Status)
	}

	q.Count(&total)

	err := q.
		Preload("Route").
		Preload("Route.Origin").
		Preload("Route.Destination").
		Preload("Bus").
		Order("departure_time ASC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&trips).Error

	return trips, total, err
}

// UpdateSchedule edits the mutable fields of a trip that has not left
// yet. available_seats is deliberately untouched here, it only moves
// through ReserveSeats/ReleaseSeats.
func (r *TripRepository) UpdateSchedule(ctx context.Context, id int64, dep, arr time.Time, fare float64) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Trip{}).
		Where("id = ? AND status = ?", id, domain.TripScheduled).
		Updates(map[string]interface{}{
			"departure_time": dep,
			"arrival_time":   arr,
			"fare":           fare,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := r.db.WithContext(ctx).Model(&domain.Trip{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrInvalidStatusTransition
	}
	return nil
}

// SetStatus flips a trip from one status to another. The WHERE guard
// means a concurrent flip loses cleanly instead of overwriting.
func (r *TripRepository) SetStatus(ctx context.Context, id int64, from, to domain.TripStatus) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Trip{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := r.db.WithContext(ctx).Model(&domain.Trip{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrInvalidStatusTransition
	}
	return nil
}

func (r *TripRepository) ReserveSeats(ctx context.Context, tripID int64, n int) error {
	return reserveTripSeats(r.db.WithContext(ctx), tripID, n)
}

func (r *TripRepository) ReleaseSeats(ctx context.Context, tripID int64, n int) error {
	return releaseTripSeats(r.db.WithContext(ctx), tripID, n)
}

// reserveTripSeats takes n seats off a trip in a single conditional
// update. The available_seats >= n guard is what keeps the count from
// going negative when bookings race.
func reserveTripSeats(tx *gorm.DB, tripID int64, n int) error {
	if n <= 0 {
		return errors.New("seat count must be positive")
	}
	res := tx.Model(&domain.Trip{}).
		Where("id = ? AND available_seats >= ?", tripID, n).
		Update("available_seats", gorm.Expr("available_seats - ?", n))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var exists int64
		if err := tx.Model(&domain.Trip{}).Where("id = ?", tripID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrInsufficientSeats
	}
	return nil
}

// releaseTripSeats hands n seats back, clamping at total_seats so a
// stray double release can never push availability past capacity.
func releaseTripSeats(tx *gorm.DB, tripID int64, n int) error {
	if n <= 0 {
		return errors.New("seat count must be positive")
	}
	res := tx.Model(&domain.Trip{}).
		Where("id = ?", tripID).
		Update("available_seats", gorm.Expr(
			"CASE WHEN available_seats + ? > total_seats THEN total_seats ELSE available_seats + ? END", n, n))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
