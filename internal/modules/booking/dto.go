package booking

import (
	"time"

	"kayexpress/internal/domain"
)

type CreateBookingRequest struct {
	TripID int64 `json:"trip_id" binding:"required,gt=0"`
	Seats  int   `json:"seats" binding:"required,min=1,max=10"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

// View decorates a booking with the expiry flag. The flag is computed
// at read time, no background job flips expired bookings.
type View struct {
	*domain.Booking
	Expired bool `json:"expired"`
}

func NewView(b *domain.Booking, now time.Time) View {
	return View{Booking: b, Expired: b.PaymentExpired(now)}
}

func NewViews(bs []domain.Booking, now time.Time) []View {
	out := make([]View, 0, len(bs))
	for i := range bs {
		out = append(out, NewView(&bs[i], now))
	}
	return out
}
