package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
	BookingRefunded  BookingStatus = "refunded"
)

// Final reports whether no further status transition is allowed.
func (s BookingStatus) Final() bool {
	return s == BookingCancelled || s == BookingCompleted || s == BookingRefunded
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentPartial  PaymentStatus = "partial"
)

// BookingFee is the flat service fee added to every booking, in GHS.
const BookingFee = 2.00

type Booking struct {
	ID                 int64         `json:"id"`
	Reference          string        `json:"reference_number" gorm:"uniqueIndex;size:20"`
	UserID             int64         `json:"user_id" gorm:"index"`
	TripID             int64         `json:"trip_id" gorm:"index"`
	Seats              int           `json:"seats"`
	FarePerSeat        float64       `json:"fare_per_seat"`
	TotalFare          float64       `json:"total_fare"`
	BookingFee         float64       `json:"booking_fee"`
	TotalAmount        float64       `json:"total_amount"`
	Status             BookingStatus `json:"status" gorm:"size:20;index"`
	PaymentStatus      PaymentStatus `json:"payment_status" gorm:"size:20"`
	PaymentDeadline    time.Time     `json:"payment_deadline"`
	CancelledAt        *time.Time    `json:"cancelled_at,omitempty"`
	CancellationReason string        `json:"cancellation_reason,omitempty" gorm:"type:text"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Trip *Trip `json:"trip,omitempty" gorm:"foreignKey:TripID"`
}

// PaymentExpired reports whether the passive payment deadline has passed
// for a booking still awaiting payment.
func (b *Booking) PaymentExpired(now time.Time) bool {
	return b.Status == BookingPending && b.PaymentStatus == PaymentPending && now.After(b.PaymentDeadline)
}
