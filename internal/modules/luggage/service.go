package luggage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"kayexpress/internal/domain"
	"kayexpress/internal/refnum"
)

// Service handles checked baggage: pricing and tagging at check-in,
// tracking events along the route, and the luggage type catalogue.
type Service struct {
	luggage  LuggageRepository
	bookings BookingSource
	trips    TripSource
	users    UserSource
}

func NewService(luggage LuggageRepository, bookings BookingSource, trips TripSource, users UserSource) *Service {
	return &Service{luggage: luggage, bookings: bookings, trips: trips, users: users}
}

func (s *Service) CreateType(ctx context.Context, req CreateLuggageTypeRequest) (*domain.LuggageType, error) {
	t := &domain.LuggageType{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		MaxWeightKG: req.MaxWeightKG,
		BasePrice:   req.BasePrice,
		PricePerKG:  req.PricePerKG,
		IsActive:    true,
	}
	if err := s.luggage.CreateType(ctx, t); err != nil {
		if refnum.IsDuplicateKey(err) {
			return nil, ErrTypeExists
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) UpdateType(ctx context.Context, id int64, req UpdateLuggageTypeRequest) (*domain.LuggageType, error) {
	t, err := s.luggage.GetTypeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTypeNotFound
		}
		return nil, err
	}

	if req.Description != "" {
		t.Description = req.Description
	}
	if req.MaxWeightKG > 0 {
		t.MaxWeightKG = req.MaxWeightKG
	}
	if req.BasePrice != nil {
		t.BasePrice = *req.BasePrice
	}
	if req.PricePerKG != nil {
		t.PricePerKG = *req.PricePerKG
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	if err := s.luggage.UpdateType(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) ListTypes(ctx context.Context, activeOnly bool) ([]domain.LuggageType, error) {
	return s.luggage.ListTypes(ctx, activeOnly)
}

// CheckIn registers a piece of luggage against a booking, prices it
// and issues the tag printed on the physical sticker.
func (s *Service) CheckIn(ctx context.Context, userID int64, admin bool, req CheckInLuggageRequest) (*domain.Luggage, error) {
	b, err := s.bookings.GetByReference(ctx, strings.ToUpper(strings.TrimSpace(req.BookingReference)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !admin && b.UserID != userID {
		return nil, ErrForbidden
	}
	if b.Status == domain.BookingCancelled || b.Status == domain.BookingRefunded {
		return nil, fmt.Errorf("%w: booking is %s", ErrNotCheckable, b.Status)
	}

	t, err := s.luggage.GetTypeByID(ctx, req.LuggageTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTypeNotFound
		}
		return nil, err
	}
	if !t.IsActive {
		return nil, fmt.Errorf("%w: %s is no longer offered", ErrValidation, t.Name)
	}
	if req.WeightKG > t.MaxWeightKG {
		return nil, fmt.Errorf("%w: %s allows up to %.1f kg", ErrOverweight, t.Name, t.MaxWeightKG)
	}

	insurance := 0.0
	if req.IsValuable && req.DeclaredValue > 0 {
		insurance = math.Round(req.DeclaredValue*domain.InsuranceRate*100) / 100
	}

	// Check-in location is the origin terminal of the booked trip,
	// resolved best effort.
	location := ""
	if trip, terr := s.trips.GetByID(ctx, b.TripID); terr == nil && trip.Route != nil && trip.Route.Origin != nil {
		location = trip.Route.Origin.Name
	}

	now := time.Now()
	l := &domain.Luggage{
		BookingID:     b.ID,
		LuggageTypeID: t.ID,
		Description:   strings.TrimSpace(req.Description),
		WeightKG:      req.WeightKG,
		IsValuable:    req.IsValuable,
		DeclaredValue: req.DeclaredValue,
		HandlingFee:   t.HandlingFeeFor(req.WeightKG),
		InsuranceFee:  insurance,
		Status:        domain.LuggageRegistered,
	}

	// The tag is the only unique column on luggage, so a duplicate key
	// can only mean the random draw collided. Draw again.
	for attempt := 0; ; attempt++ {
		l.Reference = refnum.Random("LG", now, 6)

		err = s.luggage.Create(ctx, l, userID, location)
		if err == nil {
			break
		}
		if !refnum.IsDuplicateKey(err) {
			return nil, err
		}
		if attempt+1 >= refnum.MaxAttempts {
			return nil, refnum.ErrDuplicateReference
		}
	}

	l.LuggageType = t
	return l, nil
}

// ListForBooking returns the pieces checked in against a booking.
func (s *Service) ListForBooking(ctx context.Context, reference string, userID int64, admin bool) ([]domain.Luggage, error) {
	b, err := s.bookings.GetByReference(ctx, strings.ToUpper(strings.TrimSpace(reference)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !admin && b.UserID != userID {
		return nil, ErrForbidden
	}
	return s.luggage.ListByBooking(ctx, b.ID)
}

// Track returns the public tracking payload for a tag.
func (s *Service) Track(ctx context.Context, tag string) (*TrackView, error) {
	l, err := s.luggage.GetByReference(ctx, strings.ToUpper(strings.TrimSpace(tag)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLuggageNotFound
		}
		return nil, err
	}

	events, err := s.luggage.GetEvents(ctx, l.ID)
	if err != nil {
		return nil, err
	}

	view := &TrackView{
		Reference: l.Reference,
		Status:    l.Status,
		WeightKG:  l.WeightKG,
		Events:    events,
	}
	if l.LuggageType != nil {
		view.TypeName = l.LuggageType.Name
	}
	if b, berr := s.bookings.GetByID(ctx, l.BookingID); berr == nil {
		if u, uerr := s.users.GetByID(ctx, b.UserID); uerr == nil {
			view.OwnerPhone = domain.MaskPhone(u.Phone)
		}
	}
	return view, nil
}

// AddEvent moves a piece of luggage along the handling flow and
// appends the tracking entry in the same transaction.
func (s *Service) AddEvent(ctx context.Context, tag string, recordedBy int64, req AddEventRequest) (*domain.Luggage, error) {
	next := domain.LuggageStatus(req.Status)
	if !validStatus(next) {
		return nil, fmt.Errorf("%w: unknown luggage status %q", ErrValidation, req.Status)
	}

	l, err := s.luggage.GetByReference(ctx, strings.ToUpper(strings.TrimSpace(tag)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLuggageNotFound
		}
		return nil, err
	}
	if !l.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s cannot move to %s", ErrInvalidTransition, l.Status, next)
	}

	if err := s.luggage.SetStatus(ctx, l.ID, l.Status, next, strings.TrimSpace(req.Location), strings.TrimSpace(req.Notes), recordedBy, time.Now()); err != nil {
		return nil, err
	}
	return s.luggage.GetByReference(ctx, l.Reference)
}

func validStatus(s domain.LuggageStatus) bool {
	switch s {
	case domain.LuggageRegistered, domain.LuggageLoaded, domain.LuggageInTransit,
		domain.LuggageArrived, domain.LuggageCollected, domain.LuggageUnclaimed,
		domain.LuggageLost, domain.LuggageDamaged:
		return true
	}
	return false
}
