package trip

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kayexpress/internal/domain"
	"kayexpress/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	trips    TripRepository
	routes   RouteReader
	buses    BusReader
	bookings BookingSweeper
}

func NewService(trips TripRepository, routes RouteReader, buses BusReader, bookings BookingSweeper) *Service {
	return &Service{
		trips:    trips,
		routes:   routes,
		buses:    buses,
		bookings: bookings,
	}
}

// CreateTrip schedules a departure. Seats start at the bus capacity and
// the fare falls back to the route's base fare.
func (s *Service) CreateTrip(ctx context.Context, req CreateTripRequest) (*domain.Trip, error) {
	route, err := s.routes.GetByID(ctx, req.RouteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}
	if !route.IsActive {
		return nil, ErrRouteInactive
	}

	bus, err := s.buses.GetByID(ctx, req.BusID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusNotFound
		}
		return nil, err
	}
	if bus.Status != domain.BusActive {
		return nil, ErrBusUnavailable
	}

	if !req.DepartureTime.After(time.Now()) {
		return nil, fmt.Errorf("%w: departure must be in the future", ErrValidation)
	}

	arrival := req.DepartureTime.Add(time.Duration(route.EstimatedDuration) * time.Minute)
	if req.ArrivalTime != nil {
		if !req.ArrivalTime.After(req.DepartureTime) {
			return nil, fmt.Errorf("%w: arrival must be after departure", ErrValidation)
		}
		arrival = *req.ArrivalTime
	}

	fare := route.BaseFare
	if req.Fare > 0 {
		fare = req.Fare
	}

	t := &domain.Trip{
		RouteID:        req.RouteID,
		BusID:          req.BusID,
		DepartureTime:  req.DepartureTime,
		ArrivalTime:    arrival,
		Fare:           fare,
		TotalSeats:     bus.TotalSeats,
		AvailableSeats: bus.TotalSeats,
		Status:         domain.TripScheduled,
	}

	if err := s.trips.Create(ctx, t); err != nil {
		return nil, err
	}
	t.Route = route
	t.Bus = bus
	return t, nil
}

// UpdateTrip reschedules a trip that has not started boarding.
func (s *Service) UpdateTrip(ctx context.Context, id int64, req UpdateTripRequest) (*domain.Trip, error) {
	t, err := s.trips.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	if t.Status != domain.TripScheduled {
		return nil, ErrTripLocked
	}

	dep := t.DepartureTime
	arr := t.ArrivalTime
	if req.DepartureTime != nil {
		if !req.DepartureTime.After(time.Now()) {
			return nil, fmt.Errorf("%w: departure must be in the future", ErrValidation)
		}
		dep = *req.DepartureTime
		if req.ArrivalTime == nil && t.Route != nil {
			arr = dep.Add(time.Duration(t.Route.EstimatedDuration) * time.Minute)
		}
	}
	if req.ArrivalTime != nil {
		arr = *req.ArrivalTime
	}
	if !arr.After(dep) {
		return nil, fmt.Errorf("%w: arrival must be after departure", ErrValidation)
	}

	fare := t.Fare
	if req.Fare > 0 {
		fare = req.Fare
	}

	if err := s.trips.UpdateSchedule(ctx, id, dep, arr, fare); err != nil {
		if errors.Is(err, repository.ErrInvalidStatusTransition) {
			return nil, ErrTripLocked
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}

	t.DepartureTime = dep
	t.ArrivalTime = arr
	t.Fare = fare
	return t, nil
}

// SetTripStatus walks a trip through its lifecycle. Cancelling sweeps
// the active bookings on it, completing closes out the confirmed ones.
// Seats are not touched either way, the trip is no longer sellable.
func (s *Service) SetTripStatus(ctx context.Context, id int64, status, reason string) (*domain.Trip, int64, error) {
	next := domain.TripStatus(status)
	if !validTripStatus(next) {
		return nil, 0, fmt.Errorf("%w: unknown trip status %q", ErrValidation, status)
	}

	t, err := s.trips.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrTripNotFound
		}
		return nil, 0, err
	}
	if !t.Status.CanTransitionTo(next) {
		return nil, 0, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.Status, next)
	}

	if err := s.trips.SetStatus(ctx, id, t.Status, next); err != nil {
		if errors.Is(err, repository.ErrInvalidStatusTransition) {
			return nil, 0, fmt.Errorf("%w: trip moved concurrently", ErrInvalidTransition)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrTripNotFound
		}
		return nil, 0, err
	}
	t.Status = next

	var swept int64
	switch next {
	case domain.TripCancelled:
		ids, err := s.bookings.CancelForTrip(ctx, id, reason, time.Now())
		if err != nil {
			return t, 0, err
		}
		swept = int64(len(ids))
	case domain.TripCompleted:
		swept, err = s.bookings.CompleteForTrip(ctx, id)
		if err != nil {
			return t, 0, err
		}
	}

	return t, swept, nil
}

func (s *Service) GetTrip(ctx context.Context, id int64) (*domain.Trip, error) {
	t, err := s.trips.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return t, nil
}

// SearchTrips is the rider-facing search: scheduled departures that
// still have seats.
func (s *Service) SearchTrips(ctx context.Context, f repository.TripFilters) ([]domain.Trip, int64, error) {
	f.Status = domain.TripScheduled
	if f.MinSeats < 1 {
		f.MinSeats = 1
	}
	return s.trips.Search(ctx, f)
}

// ListTrips is the admin listing with no forced filters.
func (s *Service) ListTrips(ctx context.Context, f repository.TripFilters) ([]domain.Trip, int64, error) {
	return s.trips.Search(ctx, f)
}

func validTripStatus(s domain.TripStatus) bool {
	switch s {
	case domain.TripScheduled, domain.TripBoarding, domain.TripInTransit, domain.TripCompleted, domain.TripCancelled:
		return true
	}
	return false
}
