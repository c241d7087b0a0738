package agent

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

// Service handles applications to the KayExpress agent network.
type Service struct {
	agents AgentRepository
	refs   ReferenceSource
	mail   notification.Sender
}

func NewService(agents AgentRepository, refs ReferenceSource, mail notification.Sender) *Service {
	return &Service{agents: agents, refs: refs, mail: mail}
}

// Apply files a new application. References are sequential within the
// month (AG202601001, AG202601002, ...); a referral code, when given,
// must belong to an already approved agent.
func (s *Service) Apply(ctx context.Context, req RegisterAgentRequest) (*domain.Agent, error) {
	if !validIDType(req.IDType) {
		return nil, fmt.Errorf("%w: unknown id type %q", ErrValidation, req.IDType)
	}
	if !validAvailability(req.Availability) {
		return nil, fmt.Errorf("%w: unknown availability %q", ErrValidation, req.Availability)
	}

	if req.ReferralCode != "" {
		referrer, err := s.agents.GetByReference(ctx, strings.ToUpper(strings.TrimSpace(req.ReferralCode)))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBadReferral
			}
			return nil, err
		}
		if referrer.Status != domain.AgentApproved {
			return nil, ErrBadReferral
		}
	}

	phone := strings.TrimSpace(req.Phone)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.agents.ExistsByPhoneOrEmail(ctx, phone, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyApplied
	}

	a := &domain.Agent{
		FullName:     strings.TrimSpace(req.FullName),
		Phone:        phone,
		Email:        email,
		IDType:       req.IDType,
		IDNumber:     strings.TrimSpace(req.IDNumber),
		Region:       req.Region,
		CityTown:     strings.TrimSpace(req.CityTown),
		AreaSuburb:   strings.TrimSpace(req.AreaSuburb),
		MomoProvider: req.MomoProvider,
		MomoNumber:   strings.TrimSpace(req.MomoNumber),
		Availability: req.Availability,
		ReferralCode: strings.ToUpper(strings.TrimSpace(req.ReferralCode)),
		WhyJoin:      strings.TrimSpace(req.WhyJoin),
		Status:       domain.AgentPending,
	}

	period := time.Now().Format("200601")
	for attempt := 0; ; attempt++ {
		ref, err := s.refs.NextSequential(nil, "AG", period, 3)
		if err != nil {
			return nil, err
		}
		a.Reference = ref

		err = s.agents.Create(ctx, a)
		if err == nil {
			break
		}
		if !refnum.IsDuplicateKey(err) {
			return nil, err
		}
		// A contact collision is permanent; a reference collision means
		// the counter is behind the table, so draw again.
		if !strings.Contains(strings.ToLower(err.Error()), "reference") {
			return nil, ErrAlreadyApplied
		}
		if attempt+1 >= refnum.MaxAttempts {
			return nil, refnum.ErrDuplicateReference
		}
	}

	notification.SendAsync(s.mail, "agent", notification.AgentReceivedEmail(a))

	return a, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Agent, error) {
	a, err := s.agents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, f repository.AgentFilters) ([]domain.Agent, int64, error) {
	if f.Region != "" && !domain.ValidRegion(f.Region) {
		return nil, 0, fmt.Errorf("%w: unknown region %q", ErrValidation, f.Region)
	}
	return s.agents.List(ctx, f)
}

// Review settles a pending application. Approvals and rejections are
// one-shot, a second review of the same application is refused.
func (s *Service) Review(ctx context.Context, id int64, req ReviewAgentRequest) (*domain.Agent, error) {
	to := domain.AgentStatus(req.Status)
	if to != domain.AgentApproved && to != domain.AgentRejected {
		return nil, fmt.Errorf("%w: status must be approved or rejected", ErrValidation)
	}

	if err := s.agents.SetStatus(ctx, id, to, strings.TrimSpace(req.Notes), time.Now()); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrAgentNotFound
		case errors.Is(err, repository.ErrInvalidStatusTransition):
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	return s.agents.GetByID(ctx, id)
}

func validIDType(t string) bool {
	switch t {
	case "ghana_card", "passport", "voters_id", "drivers_license":
		return true
	}
	return false
}

func validAvailability(a string) bool {
	switch a {
	case "full_time", "part_time", "weekends", "flexible":
		return true
	}
	return false
}
