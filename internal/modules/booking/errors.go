package booking

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrBookingNotFound = errors.New("booking not found")
	ErrTripNotFound    = errors.New("trip not found")
	ErrNotBookable     = errors.New("trip is not open for booking")
	ErrForbidden       = errors.New("booking belongs to another account")
	ErrInvalidState    = errors.New("invalid booking state")
)
