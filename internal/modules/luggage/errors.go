package luggage

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrLuggageNotFound   = errors.New("luggage not found")
	ErrTypeNotFound      = errors.New("luggage type not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrForbidden         = errors.New("booking belongs to another account")
	ErrNotCheckable      = errors.New("luggage cannot be added to this booking")
	ErrOverweight        = errors.New("weight exceeds the luggage type limit")
	ErrTypeExists        = errors.New("luggage type name already in use")
	ErrInvalidTransition = errors.New("invalid luggage status transition")
)
