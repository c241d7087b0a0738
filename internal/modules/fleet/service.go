package fleet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kayexpress/internal/domain"
	"kayexpress/internal/refnum"
	"kayexpress/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	terminals TerminalRepository
	buses     BusRepository
	routes    RouteRepository
	refs      ReferenceSource
}

func NewService(terminals TerminalRepository, buses BusRepository, routes RouteRepository, refs ReferenceSource) *Service {
	return &Service{
		terminals: terminals,
		buses:     buses,
		routes:    routes,
		refs:      refs,
	}
}

/* ---------- TERMINALS ---------- */

func (s *Service) CreateTerminal(ctx context.Context, req CreateTerminalRequest) (*domain.Terminal, error) {
	if !validTerminalType(domain.TerminalType(req.TerminalType)) {
		return nil, fmt.Errorf("%w: unknown terminal type %q", ErrValidation, req.TerminalType)
	}

	t := &domain.Terminal{
		Name:         strings.TrimSpace(req.Name),
		TerminalType: domain.TerminalType(req.TerminalType),
		Region:       req.Region,
		CityTown:     req.CityTown,
		Address:      req.Address,
		GPSAddress:   req.GPSAddress,
		ContactPhone: req.ContactPhone,
		IsActive:     true,
	}

	if err := s.terminals.Create(ctx, t); err != nil {
		if refnum.IsDuplicateKey(err) {
			return nil, fmt.Errorf("%w: terminal name already in use", ErrValidation)
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) UpdateTerminal(ctx context.Context, id int64, req UpdateTerminalRequest) (*domain.Terminal, error) {
	t, err := s.terminals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTerminalNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		t.Name = strings.TrimSpace(req.Name)
	}
	if req.TerminalType != "" {
		if !validTerminalType(domain.TerminalType(req.TerminalType)) {
			return nil, fmt.Errorf("%w: unknown terminal type %q", ErrValidation, req.TerminalType)
		}
		t.TerminalType = domain.TerminalType(req.TerminalType)
	}
	if req.CityTown != "" {
		t.CityTown = req.CityTown
	}
	if req.Address != "" {
		t.Address = req.Address
	}
	if req.GPSAddress != "" {
		t.GPSAddress = req.GPSAddress
	}
	if req.ContactPhone != "" {
		t.ContactPhone = req.ContactPhone
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	if err := s.terminals.Update(ctx, t); err != nil {
		if refnum.IsDuplicateKey(err) {
			return nil, fmt.Errorf("%w: terminal name already in use", ErrValidation)
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) GetTerminal(ctx context.Context, id int64) (*domain.Terminal, error) {
	t, err := s.terminals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTerminalNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) ListTerminals(ctx context.Context, f repository.TerminalFilters) ([]domain.Terminal, int64, error) {
	if f.Region != "" && !domain.ValidRegion(f.Region) {
		return nil, 0, fmt.Errorf("%w: unknown region %q", ErrValidation, f.Region)
	}
	return s.terminals.List(ctx, f)
}

/* ---------- BUSES ---------- */

// RegisterBus assigns the next KE fleet number and adds the bus as
// active.
func (s *Service) RegisterBus(ctx context.Context, req CreateBusRequest) (*domain.Bus, error) {
	if !validBusType(domain.BusType(req.BusType)) {
		return nil, fmt.Errorf("%w: unknown bus type %q", ErrValidation, req.BusType)
	}
	if req.HomeTerminalID != nil {
		if _, err := s.terminals.GetByID(ctx, *req.HomeTerminalID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTerminalNotFound
			}
			return nil, err
		}
	}

	b := &domain.Bus{
		PlateNumber:    strings.ToUpper(strings.TrimSpace(req.PlateNumber)),
		BusType:        domain.BusType(req.BusType),
		Status:         domain.BusActive,
		TotalSeats:     req.TotalSeats,
		Manufacturer:   req.Manufacturer,
		Model:          req.Model,
		YearOfMake:     req.YearOfMake,
		HasAC:          req.HasAC,
		HasWifi:        req.HasWifi,
		HasToilet:      req.HasToilet,
		HomeTerminalID: req.HomeTerminalID,
	}

	for attempt := 0; ; attempt++ {
		number, err := s.refs.NextSequential(nil, "KE", "", 3)
		if err != nil {
			return nil, err
		}
		b.BusNumber = number

		err = s.buses.Create(ctx, b)
		if err == nil {
			return b, nil
		}
		if !refnum.IsDuplicateKey(err) {
			return nil, err
		}
		// Plate collisions are permanent, fleet number collisions mean
		// the counter is behind the table, so draw again.
		if !strings.Contains(strings.ToLower(err.Error()), "bus_number") {
			return nil, ErrDuplicatePlate
		}
		if attempt+1 >= refnum.MaxAttempts {
			return nil, refnum.ErrDuplicateReference
		}
	}
}

// UpdateBus edits bus master data. The fleet number is fixed for the
// life of the bus; status changes go through SetBusStatus.
func (s *Service) UpdateBus(ctx context.Context, id int64, req UpdateBusRequest) (*domain.Bus, error) {
	b, err := s.buses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusNotFound
		}
		return nil, err
	}

	if req.PlateNumber != "" {
		b.PlateNumber = strings.ToUpper(strings.TrimSpace(req.PlateNumber))
	}
	if req.BusType != "" {
		if !validBusType(domain.BusType(req.BusType)) {
			return nil, fmt.Errorf("%w: unknown bus type %q", ErrValidation, req.BusType)
		}
		b.BusType = domain.BusType(req.BusType)
	}
	if req.TotalSeats > 0 {
		b.TotalSeats = req.TotalSeats
	}
	if req.Manufacturer != "" {
		b.Manufacturer = req.Manufacturer
	}
	if req.Model != "" {
		b.Model = req.Model
	}
	if req.YearOfMake > 0 {
		b.YearOfMake = req.YearOfMake
	}
	if req.HasAC != nil {
		b.HasAC = *req.HasAC
	}
	if req.HasWifi != nil {
		b.HasWifi = *req.HasWifi
	}
	if req.HasToilet != nil {
		b.HasToilet = *req.HasToilet
	}
	if req.HomeTerminalID != nil {
		if _, err := s.terminals.GetByID(ctx, *req.HomeTerminalID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTerminalNotFound
			}
			return nil, err
		}
		b.HomeTerminalID = req.HomeTerminalID
		// The preloaded terminal is stale once the ID moves.
		b.HomeTerminal = nil
	}
	if req.LastServicedAt != nil {
		b.LastServicedAt = req.LastServicedAt
	}

	if err := s.buses.Update(ctx, b); err != nil {
		if refnum.IsDuplicateKey(err) {
			return nil, ErrDuplicatePlate
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) GetBus(ctx context.Context, id int64) (*domain.Bus, error) {
	b, err := s.buses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) ListBuses(ctx context.Context, f repository.BusFilters) ([]domain.Bus, int64, error) {
	return s.buses.List(ctx, f)
}

// SetBusStatus moves a bus through its lifecycle. Retired buses never
// come back.
func (s *Service) SetBusStatus(ctx context.Context, id int64, status string) (*domain.Bus, error) {
	next := domain.BusStatus(status)
	if !validBusStatus(next) {
		return nil, fmt.Errorf("%w: unknown bus status %q", ErrValidation, status)
	}

	b, err := s.buses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusNotFound
		}
		return nil, err
	}
	if b.Status == next {
		return b, nil
	}
	if !b.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, next)
	}

	if err := s.buses.SetStatus(ctx, id, next); err != nil {
		return nil, err
	}
	b.Status = next
	return b, nil
}

/* ---------- ROUTES ---------- */

func (s *Service) CreateRoute(ctx context.Context, req CreateRouteRequest) (*domain.Route, error) {
	if req.OriginID == req.DestinationID {
		return nil, ErrSameTerminals
	}

	for _, id := range []int64{req.OriginID, req.DestinationID} {
		t, err := s.terminals.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTerminalNotFound
			}
			return nil, err
		}
		if !t.IsActive {
			return nil, fmt.Errorf("%w: terminal %q is inactive", ErrValidation, t.Name)
		}
	}

	exists, err := s.routes.ExistsByPair(ctx, req.OriginID, req.DestinationID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateRoute
	}

	route := &domain.Route{
		Name:              strings.TrimSpace(req.Name),
		OriginID:          req.OriginID,
		DestinationID:     req.DestinationID,
		DistanceKM:        req.DistanceKM,
		EstimatedDuration: req.EstimatedDuration,
		BaseFare:          req.BaseFare,
		IsActive:          true,
	}

	if err := s.routes.Create(ctx, route); err != nil {
		if refnum.IsDuplicateKey(err) {
			return nil, ErrDuplicateRoute
		}
		return nil, err
	}
	return route, nil
}

func (s *Service) UpdateRoute(ctx context.Context, id int64, req UpdateRouteRequest) (*domain.Route, error) {
	route, err := s.routes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}

	if req.DistanceKM > 0 {
		route.DistanceKM = req.DistanceKM
	}
	if req.EstimatedDuration > 0 {
		route.EstimatedDuration = req.EstimatedDuration
	}
	if req.BaseFare > 0 {
		route.BaseFare = req.BaseFare
	}
	if req.IsActive != nil {
		route.IsActive = *req.IsActive
	}

	if err := s.routes.Update(ctx, route); err != nil {
		return nil, err
	}
	return route, nil
}

func (s *Service) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	route, err := s.routes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}
	return route, nil
}

func (s *Service) ListRoutes(ctx context.Context, f repository.RouteFilters) ([]domain.Route, int64, error) {
	return s.routes.List(ctx, f)
}

/* ---------- STATS ---------- */

func (s *Service) Stats(ctx context.Context) (*FleetStats, error) {
	counts, err := s.buses.Counts(ctx)
	if err != nil {
		return nil, err
	}
	terminals, err := s.terminals.Count(ctx, true)
	if err != nil {
		return nil, err
	}
	activeRoutes, err := s.routes.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	return &FleetStats{
		BusesByStatus: counts.ByStatus,
		BusesByType:   counts.ByType,
		TotalSeats:    counts.TotalSeats,
		Terminals:     terminals,
		ActiveRoutes:  activeRoutes,
	}, nil
}

func validTerminalType(t domain.TerminalType) bool {
	switch t {
	case domain.TerminalMainStation, domain.TerminalSubStation, domain.TerminalPickupPoint, domain.TerminalDropOff:
		return true
	}
	return false
}

func validBusType(t domain.BusType) bool {
	switch t {
	case domain.BusStandard, domain.BusLuxury, domain.BusVIP, domain.BusExecutive, domain.BusSleeper:
		return true
	}
	return false
}

func validBusStatus(s domain.BusStatus) bool {
	switch s {
	case domain.BusActive, domain.BusMaintenance, domain.BusOutOfService, domain.BusRetired:
		return true
	}
	return false
}
