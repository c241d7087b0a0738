package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kayexpress/internal/domain"
	"kayexpress/internal/notification"
	"kayexpress/internal/refnum"
	"kayexpress/internal/repository"

	"gorm.io/gorm"
)

// Service books seats on scheduled trips and walks bookings through
// their lifecycle. Payment itself lives in the payment module, this
// service only holds the seats until the deadline.
type Service struct {
	bookings BookingRepository
	trips    TripSource
	users    UserSource
	payments RefundSource
	mail     notification.Sender

	paymentWindow time.Duration
}

func NewService(bookings BookingRepository, trips TripSource, users UserSource, payments RefundSource, mail notification.Sender, paymentWindow time.Duration) *Service {
	return &Service{
		bookings:      bookings,
		trips:         trips,
		users:         users,
		payments:      payments,
		mail:          mail,
		paymentWindow: paymentWindow,
	}
}

// Create reserves the seats and records the booking in one
// transaction. The insert failing for any reason rolls the reservation
// back with it.
func (s *Service) Create(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	t, err := s.trips.GetByID(ctx, req.TripID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}

	now := time.Now()
	if !t.Status.Bookable() {
		return nil, fmt.Errorf("%w: trip is %s", ErrNotBookable, t.Status)
	}
	if !t.DepartureTime.After(now) {
		return nil, fmt.Errorf("%w: trip has already departed", ErrNotBookable)
	}

	totalFare := t.Fare * float64(req.Seats)
	b := &domain.Booking{
		UserID:          userID,
		TripID:          t.ID,
		Seats:           req.Seats,
		FarePerSeat:     t.Fare,
		TotalFare:       totalFare,
		BookingFee:      domain.BookingFee,
		TotalAmount:     totalFare + domain.BookingFee,
		Status:          domain.BookingPending,
		PaymentStatus:   domain.PaymentPending,
		PaymentDeadline: now.Add(s.paymentWindow),
	}

	// The reference is the only unique column on bookings, so a
	// duplicate key can only mean the random draw collided. Draw again.
	for attempt := 0; ; attempt++ {
		b.Reference = refnum.Random("KB", now, 6)

		err = s.bookings.CreateWithSeats(ctx, b)
		if err == nil {
			break
		}
		if !refnum.IsDuplicateKey(err) {
			return nil, err
		}
		if attempt+1 >= refnum.MaxAttempts {
			return nil, refnum.ErrDuplicateReference
		}
	}

	b.Trip = t

	if u, uerr := s.users.GetByID(ctx, userID); uerr == nil {
		notification.SendAsync(s.mail, "booking", notification.BookingCreatedEmail(u, b, t))
	}

	return b, nil
}

// ListMine returns the caller's bookings, newest first.
func (s *Service) ListMine(ctx context.Context, userID int64, f repository.BookingFilters) ([]domain.Booking, int64, error) {
	return s.bookings.ListByUser(ctx, userID, f)
}

// List returns bookings across all riders.
func (s *Service) List(ctx context.Context, f repository.BookingFilters) ([]domain.Booking, int64, error) {
	return s.bookings.List(ctx, f)
}

// Get returns a booking by reference. Riders only see their own,
// admins see any.
func (s *Service) Get(ctx context.Context, reference string, userID int64, admin bool) (*domain.Booking, error) {
	b, err := s.bookings.GetByReference(ctx, strings.ToUpper(strings.TrimSpace(reference)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !admin && b.UserID != userID {
		return nil, ErrForbidden
	}
	return b, nil
}

// Cancel releases the held seats and marks the booking cancelled. Paid
// bookings take the refund path instead. Cancelling a booking that is
// already cancelled or refunded changes nothing and returns it as is.
func (s *Service) Cancel(ctx context.Context, reference string, userID int64, admin bool, reason string) (*domain.Booking, error) {
	b, err := s.Get(ctx, reference, userID, admin)
	if err != nil {
		return nil, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "Customer request"
	}
	now := time.Now()

	if b.PaymentStatus == domain.PaymentPaid {
		refunded, err := s.payments.RefundForBooking(ctx, b.ID, now)
		if err != nil {
			if errors.Is(err, repository.ErrInvalidStatusTransition) {
				return nil, fmt.Errorf("%w: this booking can no longer be cancelled", ErrInvalidState)
			}
			return nil, err
		}
		if refunded {
			out, err := s.bookings.GetByID(ctx, b.ID)
			if err != nil {
				return nil, err
			}
			if u, uerr := s.users.GetByID(ctx, out.UserID); uerr == nil {
				notification.SendAsync(s.mail, "booking", notification.BookingCancelledEmail(u, out, true))
			}
			return out, nil
		}
		// No successful payment on record, fall through to a plain cancel.
	}

	cancelled, released, err := s.bookings.Cancel(ctx, b.ID, reason, now)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidStatusTransition) {
			return nil, fmt.Errorf("%w: this booking can no longer be cancelled", ErrInvalidState)
		}
		return nil, err
	}

	if released {
		if u, uerr := s.users.GetByID(ctx, cancelled.UserID); uerr == nil {
			notification.SendAsync(s.mail, "booking", notification.BookingCancelledEmail(u, cancelled, false))
		}
	}
	return cancelled, nil
}

// Complete marks a confirmed booking completed once the trip has run.
func (s *Service) Complete(ctx context.Context, id int64) (*domain.Booking, error) {
	err := s.bookings.Complete(ctx, id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrBookingNotFound
	case errors.Is(err, repository.ErrInvalidStatusTransition):
		return nil, fmt.Errorf("%w: only confirmed bookings can be completed", ErrInvalidState)
	case err != nil:
		return nil, err
	}
	return s.bookings.GetByID(ctx, id)
}

// Ticket renders the e-ticket PDF for a paid booking.
func (s *Service) Ticket(ctx context.Context, reference string, userID int64, admin bool) ([]byte, string, error) {
	b, err := s.Get(ctx, reference, userID, admin)
	if err != nil {
		return nil, "", err
	}
	if b.Status != domain.BookingConfirmed && b.Status != domain.BookingCompleted {
		return nil, "", fmt.Errorf("%w: e-tickets are only issued for paid bookings", ErrInvalidState)
	}

	t, err := s.trips.GetByID(ctx, b.TripID)
	if err != nil {
		return nil, "", err
	}
	u, err := s.users.GetByID(ctx, b.UserID)
	if err != nil {
		return nil, "", err
	}
	return notification.ETicketPDF(u, b, t)
}
