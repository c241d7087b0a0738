package luggage

import (
	"context"
	"time"

	"kayexpress/internal/domain"
)

// LuggageRepository is satisfied by *repository.LuggageRepository.
type LuggageRepository interface {
	CreateType(ctx context.Context, t *domain.LuggageType) error
	UpdateType(ctx context.Context, t *domain.LuggageType) error
	GetTypeByID(ctx context.Context, id int64) (*domain.LuggageType, error)
	ListTypes(ctx context.Context, activeOnly bool) ([]domain.LuggageType, error)
	Create(ctx context.Context, l *domain.Luggage, recordedBy int64, location string) error
	GetByReference(ctx context.Context, ref string) (*domain.Luggage, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Luggage, error)
	SetStatus(ctx context.Context, id int64, from, to domain.LuggageStatus, location, notes string, recordedBy int64, at time.Time) error
	GetEvents(ctx context.Context, luggageID int64) ([]domain.LuggageEvent, error)
}

// BookingSource resolves the booking a piece of luggage rides under.
// Satisfied by *repository.BookingRepository.
type BookingSource interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByReference(ctx context.Context, ref string) (*domain.Booking, error)
}

// TripSource is satisfied by *repository.TripRepository.
type TripSource interface {
	GetByID(ctx context.Context, id int64) (*domain.Trip, error)
}

// UserSource is satisfied by *repository.UserRepository.
type UserSource interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
