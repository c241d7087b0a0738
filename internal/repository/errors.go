package repository

import "errors"

var (
	ErrInsufficientSeats       = errors.New("not enough available seats")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrConcurrentModification  = errors.New("record was modified concurrently")
)
