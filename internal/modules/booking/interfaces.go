package booking

import (
	"context"
	"time"

	"kayexpress/internal/domain"
	"kayexpress/internal/repository"
)

// BookingRepository is the persistence surface the service needs.
// Satisfied by *repository.BookingRepository.
type BookingRepository interface {
	CreateWithSeats(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByReference(ctx context.Context, ref string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64, f repository.BookingFilters) ([]domain.Booking, int64, error)
	List(ctx context.Context, f repository.BookingFilters) ([]domain.Booking, int64, error)
	Cancel(ctx context.Context, id int64, reason string, at time.Time) (*domain.Booking, bool, error)
	Complete(ctx context.Context, id int64) error
}

// TripSource supplies the trips seats are booked on.
type TripSource interface {
	GetByID(ctx context.Context, id int64) (*domain.Trip, error)
}

// UserSource resolves the rider behind a booking for notifications and
// tickets.
type UserSource interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// RefundSource reverses the successful payment of a booking. Paid
// bookings are cancelled through it so the money and the seats move in
// the same transaction. Satisfied by *repository.PaymentRepository.
type RefundSource interface {
	RefundForBooking(ctx context.Context, bookingID int64, at time.Time) (bool, error)
}
