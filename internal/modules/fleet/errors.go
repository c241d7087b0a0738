package fleet

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrTerminalNotFound  = errors.New("terminal not found")
	ErrBusNotFound       = errors.New("bus not found")
	ErrRouteNotFound     = errors.New("route not found")
	ErrDuplicatePlate    = errors.New("plate number already registered")
	ErrDuplicateRoute    = errors.New("route already exists for this terminal pair")
	ErrSameTerminals     = errors.New("origin and destination must differ")
	ErrInvalidTransition = errors.New("invalid status transition")
)
