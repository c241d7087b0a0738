package quote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kayexpress/internal/domain"
	"kayexpress/internal/notification"
	"kayexpress/internal/refnum"
	"kayexpress/internal/repository"

	"gorm.io/gorm"
)

// Service handles charter quote requests.
type Service struct {
	quotes QuoteRepository
	refs   ReferenceSource
	mail   notification.Sender

	throttleWindow time.Duration
	throttleMax    int
}

func NewService(quotes QuoteRepository, refs ReferenceSource, mail notification.Sender, throttleWindow time.Duration, throttleMax int) *Service {
	return &Service{
		quotes:         quotes,
		refs:           refs,
		mail:           mail,
		throttleWindow: throttleWindow,
		throttleMax:    throttleMax,
	}
}

// settlements maps a target status to the states it is reachable from.
// Quoted is never set through here, only through Respond.
var settlements = map[domain.QuoteStatus][]domain.QuoteStatus{
	domain.QuoteAccepted:  {domain.QuoteQuoted},
	domain.QuoteRejected:  {domain.QuotePending, domain.QuoteQuoted},
	domain.QuoteCompleted: {domain.QuoteAccepted},
}

// Submit files a charter request. Requests are throttled per phone
// number to keep the public form from being scripted.
func (s *Service) Submit(ctx context.Context, req CreateQuoteRequest) (*domain.Quote, error) {
	tripType := domain.TripType(req.TripType)
	if !validTripType(tripType) {
		return nil, fmt.Errorf("%w: unknown trip type %q", ErrValidation, req.TripType)
	}
	if !validContactMethod(req.PreferredContactMethod) {
		return nil, fmt.Errorf("%w: unknown contact method %q", ErrValidation, req.PreferredContactMethod)
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if req.TravelDate.Before(today) {
		return nil, fmt.Errorf("%w: travel date is in the past", ErrValidation)
	}

	returnDate := req.ReturnDate
	switch tripType {
	case domain.TripOneWay:
		returnDate = nil
	case domain.TripRoundTrip:
		if returnDate == nil {
			return nil, fmt.Errorf("%w: round trips need a return date", ErrValidation)
		}
	}
	if returnDate != nil && returnDate.Before(req.TravelDate) {
		return nil, fmt.Errorf("%w: return date is before the travel date", ErrValidation)
	}

	phone := strings.TrimSpace(req.Phone)

	recent, err := s.quotes.CountRecentByPhone(ctx, phone, now.Add(-s.throttleWindow))
	if err != nil {
		return nil, err
	}
	if recent >= int64(s.throttleMax) {
		return nil, ErrTooManyQuotes
	}

	q := &domain.Quote{
		FullName:               strings.TrimSpace(req.FullName),
		Phone:                  phone,
		Email:                  strings.ToLower(strings.TrimSpace(req.Email)),
		PickupLocation:         strings.TrimSpace(req.PickupLocation),
		Destination:            strings.TrimSpace(req.Destination),
		TravelDate:             req.TravelDate,
		ReturnDate:             returnDate,
		Passengers:             req.Passengers,
		TripType:               tripType,
		PreferredContactMethod: req.PreferredContactMethod,
		AdditionalRequirements: strings.TrimSpace(req.AdditionalRequirements),
		Status:                 domain.QuotePending,
	}

	period := now.Format("200601")
	for attempt := 0; ; attempt++ {
		ref, err := s.refs.NextSequential(nil, "BQ", period, 3)
		if err != nil {
			return nil, err
		}
		q.Reference = ref

		err = s.quotes.Create(ctx, q)
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

	notification.SendAsync(s.mail, "quote", notification.QuoteReceivedEmail(q))

	return q, nil
}

// Track looks a request up by its public reference.
func (s *Service) Track(ctx context.Context, reference string) (*domain.Quote, error) {
	q, err := s.quotes.GetByReference(ctx, strings.ToUpper(strings.TrimSpace(reference)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}
	return q, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Quote, error) {
	q, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}
	return q, nil
}

func (s *Service) List(ctx context.Context, f repository.QuoteFilters) ([]domain.Quote, int64, error) {
	return s.quotes.List(ctx, f)
}

// Respond prices a pending request and emails the requester. Pricing
// is one-shot, a second response to the same request is refused.
func (s *Service) Respond(ctx context.Context, id int64, req RespondQuoteRequest) (*domain.Quote, error) {
	if err := s.quotes.MarkQuoted(ctx, id, req.Amount, strings.TrimSpace(req.Notes), time.Now()); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrQuoteNotFound
		case errors.Is(err, repository.ErrInvalidStatusTransition):
			return nil, ErrAlreadyQuoted
		}
		return nil, err
	}

	q, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	notification.SendAsync(s.mail, "quote", notification.QuoteReadyEmail(q))

	return q, nil
}

// SetStatus settles a request after it was priced: the customer
// accepts or rejects, and an accepted charter is completed once run.
func (s *Service) SetStatus(ctx context.Context, id int64, status string) (*domain.Quote, error) {
	to := domain.QuoteStatus(status)
	from, ok := settlements[to]
	if !ok {
		return nil, fmt.Errorf("%w: status must be accepted, rejected or completed", ErrValidation)
	}

	if err := s.quotes.SetStatus(ctx, id, to, from...); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrQuoteNotFound
		case errors.Is(err, repository.ErrInvalidStatusTransition):
			return nil, fmt.Errorf("%w: cannot move to %s", ErrBadTransition, to)
		}
		return nil, err
	}

	return s.quotes.GetByID(ctx, id)
}

func validTripType(t domain.TripType) bool {
	switch t {
	case domain.TripOneWay, domain.TripRoundTrip, domain.TripCharter:
		return true
	}
	return false
}

func validContactMethod(m string) bool {
	switch m {
	case "phone", "email", "whatsapp":
		return true
	}
	return false
}
