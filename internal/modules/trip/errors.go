package trip

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrTripNotFound      = errors.New("trip not found")
	ErrRouteNotFound     = errors.New("route not found")
	ErrBusNotFound       = errors.New("bus not found")
	ErrRouteInactive     = errors.New("route is not active")
	ErrBusUnavailable    = errors.New("bus is not available for service")
	ErrTripLocked        = errors.New("only scheduled trips can be edited")
	ErrInvalidTransition = errors.New("invalid status transition")
)
