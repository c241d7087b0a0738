package quote

import "errors"

var (
	ErrValidation    = errors.New("validation failed")
	ErrQuoteNotFound = errors.New("quote request not found")
	ErrTooManyQuotes = errors.New("too many quote requests from this phone number")
	ErrAlreadyQuoted = errors.New("quote request has already been priced")
	ErrBadTransition = errors.New("invalid quote status transition")
)
