package trip

import (
	"context"
	"time"

	"kayexpress/internal/domain"
	"kayexpress/internal/repository"
)

// TripRepository defines the trip persistence used by this module.
type TripRepository interface {
	Create(ctx context.Context, t *domain.Trip) error
	GetByID(ctx context.Context, id int64) (*domain.Trip, error)
	Search(ctx context.Context, f repository.TripFilters) ([]domain.Trip, int64, error)
	UpdateSchedule(ctx context.Context, id int64, dep, arr time.Time, fare float64) error
	SetStatus(ctx context.Context, id int64, from, to domain.TripStatus) error
}

type RouteReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Route, error)
}

type BusReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Bus, error)
}

// BookingSweeper closes out the bookings of a trip that was cancelled
// or arrived.
type BookingSweeper interface {
	CancelForTrip(ctx context.Context, tripID int64, reason string, at time.Time) ([]int64, error)
	CompleteForTrip(ctx context.Context, tripID int64) (int64, error)
}
