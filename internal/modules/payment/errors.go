package payment

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrForbidden       = errors.New("payment belongs to another account")
	ErrAlreadyPaid     = errors.New("booking is already paid")
	ErrNotPayable      = errors.New("booking is not payable")
	ErrPaymentDeadline = errors.New("payment deadline has passed")
	ErrInvalidState    = errors.New("invalid payment state")
	ErrAmountMismatch  = errors.New("gateway amount does not match the payment")
)
