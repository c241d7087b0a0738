package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"kayexpress/internal/domain"
	"kayexpress/internal/notification"
	"kayexpress/internal/refnum"
	"kayexpress/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockAgentRepository struct {
	mock.Mock
}

func (m *MockAgentRepository) Create(ctx context.Context, a *domain.Agent) error {
	args := m.Called(ctx, a)
	if args.Error(0) == nil && a.ID == 0 {
		a.ID = 1
	}
	return args.Error(0)
}

func (m *MockAgentRepository) GetByID(ctx context.Context, id int64) (*domain.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}

func (m *MockAgentRepository) GetByReference(ctx context.Context, ref string) (*domain.Agent, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}

func (m *MockAgentRepository) ExistsByPhoneOrEmail(ctx context.Context, phone, email string) (bool, error) {
	args := m.Called(ctx, phone, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockAgentRepository) List(ctx context.Context, f repository.AgentFilters) ([]domain.Agent, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Agent), args.Get(1).(int64), args.Error(2)
}

func (m *MockAgentRepository) SetStatus(ctx context.Context, id int64, status domain.AgentStatus, notes string, at time.Time) error {
	args := m.Called(ctx, id, status, notes, at)
	return args.Error(0)
}

type MockReferenceSource struct {
	mock.Mock
}

func (m *MockReferenceSource) NextSequential(tx *gorm.DB, prefix, period string, width int) (string, error) {
	args := m.Called(tx, prefix, period, width)
	return args.String(0), args.Error(1)
}

type recordingSender struct {
	ch chan notification.Email
}

func (r recordingSender) Send(_ context.Context, e notification.Email) error {
	r.ch <- e
	return nil
}

func newTestService() (*Service, *MockAgentRepository, *MockReferenceSource) {
	agents := new(MockAgentRepository)
	refs := new(MockReferenceSource)
	return NewService(agents, refs, notification.Noop{}), agents, refs
}

func validApplication() RegisterAgentRequest {
	return RegisterAgentRequest{
		FullName:     "Kwame Boateng",
		Phone:        "+233244123456",
		Email:        "Kwame.Boateng@example.com",
		IDType:       "ghana_card",
		IDNumber:     "GHA-710000000-1",
		Region:       "ashanti",
		CityTown:     "Kumasi",
		AreaSuburb:   "Asokwa",
		MomoProvider: "mtn_momo",
		MomoNumber:   "0244123456",
		Availability: "full_time",
		WhyJoin:      "I know the Kumasi terminals well and want steady work.",
	}
}

func TestApply_Success(t *testing.T) {
	service, agents, refs := newTestService()
	period := time.Now().Format("200601")

	agents.On("ExistsByPhoneOrEmail", mock.Anything, "+233244123456", "kwame.boateng@example.com").Return(false, nil)
	refs.On("NextSequential", mock.Anything, "AG", period, 3).Return("AG"+period+"001", nil)
	agents.On("Create", mock.Anything, mock.Anything).Return(nil)

	a, err := service.Apply(context.Background(), validApplication())

	assert.NoError(t, err)
	assert.Equal(t, "AG"+period+"001", a.Reference)
	assert.Equal(t, domain.AgentPending, a.Status)
	assert.Equal(t, "kwame.boateng@example.com", a.Email)
	assert.Equal(t, int64(1), a.ID)

	agents.AssertExpectations(t)
	refs.AssertExpectations(t)
}

func TestApply_SendsAcknowledgement(t *testing.T) {
	agents := new(MockAgentRepository)
	refs := new(MockReferenceSource)
	rec := recordingSender{ch: make(chan notification.Email, 1)}
	service := NewService(agents, refs, rec)
	period := time.Now().Format("200601")

	agents.On("ExistsByPhoneOrEmail", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	refs.On("NextSequential", mock.Anything, "AG", period, 3).Return("AG"+period+"004", nil)
	agents.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := service.Apply(context.Background(), validApplication())
	assert.NoError(t, err)

	select {
	case email := <-rec.ch:
		assert.Equal(t, "kwame.boateng@example.com", email.To)
		assert.Contains(t, email.Subject, "AG"+period+"004")
	case <-time.After(time.Second):
		t.Fatal("no acknowledgement email sent")
	}
}

func TestApply_UnknownAvailability(t *testing.T) {
	service, _, _ := newTestService()

	req := validApplication()
	req.Availability = "whenever"

	_, err := service.Apply(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestApply_DuplicateContact(t *testing.T) {
	service, agents, refs := newTestService()

	agents.On("ExistsByPhoneOrEmail", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

	_, err := service.Apply(context.Background(), validApplication())
	assert.ErrorIs(t, err, ErrAlreadyApplied)
	refs.AssertNotCalled(t, "NextSequential", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Two applications with the same phone can pass the existence check at
// the same time. The loser hits the unique constraint.
func TestApply_DuplicateRace(t *testing.T) {
	service, agents, refs := newTestService()
	period := time.Now().Format("200601")

	agents.On("ExistsByPhoneOrEmail", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	refs.On("NextSequential", mock.Anything, "AG", period, 3).Return("AG"+period+"007", nil)
	agents.On("Create", mock.Anything, mock.Anything).
		Return(errors.New("UNIQUE constraint failed: agents.email"))

	_, err := service.Apply(context.Background(), validApplication())
	assert.ErrorIs(t, err, ErrAlreadyApplied)
}

func TestApply_RetriesOnReferenceCollision(t *testing.T) {
	service, agents, refs := newTestService()
	period := time.Now().Format("200601")

	agents.On("ExistsByPhoneOrEmail", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	refs.On("NextSequential", mock.Anything, "AG", period, 3).Return("AG"+period+"002", nil).Once()
	refs.On("NextSequential", mock.Anything, "AG", period, 3).Return("AG"+period+"003", nil).Once()
	agents.On("Create", mock.Anything, mock.Anything).
		Return(errors.New("UNIQUE constraint failed: agents.reference")).Once()
	agents.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	a, err := service.Apply(context.Background(), validApplication())

	assert.NoError(t, err)
	assert.Equal(t, "AG"+period+"003", a.Reference)
	refs.AssertNumberOfCalls(t, "NextSequential", 2)
}

func TestApply_GivesUpAfterMaxAttempts(t *testing.T) {
	service, agents, refs := newTestService()
	period := time.Now().Format("200601")

	agents.On("ExistsByPhoneOrEmail", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	refs.On("NextSequential", mock.Anything, "AG", period, 3).Return("AG"+period+"009", nil)
	agents.On("Create", mock.Anything, mock.Anything).
		Return(errors.New("UNIQUE constraint failed: agents.reference"))

	_, err := service.Apply(context.Background(), validApplication())

	assert.ErrorIs(t, err, refnum.ErrDuplicateReference)
	agents.AssertNumberOfCalls(t, "Create", refnum.MaxAttempts)
}

func TestApply_ReferralUnknown(t *testing.T) {
	service, agents, _ := newTestService()

	agents.On("GetByReference", mock.Anything, "AG202501001").Return(nil, gorm.ErrRecordNotFound)

	req := validApplication()
	req.ReferralCode = "AG202501001"

	_, err := service.Apply(context.Background(), req)
	assert.ErrorIs(t, err, ErrBadReferral)
}

func TestApply_ReferralMustBeApproved(t *testing.T) {
	service, agents, _ := newTestService()

	agents.On("GetByReference", mock.Anything, "AG202501001").Return(&domain.Agent{
		ID:        4,
		Reference: "AG202501001",
		Status:    domain.AgentPending,
	}, nil)

	req := validApplication()
	req.ReferralCode = "AG202501001"

	_, err := service.Apply(context.Background(), req)
	assert.ErrorIs(t, err, ErrBadReferral)
}

func TestApply_WithApprovedReferral(t *testing.T) {
	service, agents, refs := newTestService()
	period := time.Now().Format("200601")

	// Codes are matched uppercase no matter how the form was filled in.
	agents.On("GetByReference", mock.Anything, "AG202501001").Return(&domain.Agent{
		ID:        4,
		Reference: "AG202501001",
		Status:    domain.AgentApproved,
	}, nil)
	agents.On("ExistsByPhoneOrEmail", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	refs.On("NextSequential", mock.Anything, "AG", period, 3).Return("AG"+period+"011", nil)
	agents.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := validApplication()
	req.ReferralCode = "ag202501001"

	a, err := service.Apply(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, "AG202501001", a.ReferralCode)
	agents.AssertExpectations(t)
}

func TestReview_Approve(t *testing.T) {
	service, agents, _ := newTestService()

	agents.On("SetStatus", mock.Anything, int64(5), domain.AgentApproved, "good references", mock.Anything).Return(nil)
	agents.On("GetByID", mock.Anything, int64(5)).Return(&domain.Agent{
		ID:         5,
		Status:     domain.AgentApproved,
		AdminNotes: "good references",
	}, nil)

	a, err := service.Review(context.Background(), 5, ReviewAgentRequest{
		Status: "approved",
		Notes:  "good references",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.AgentApproved, a.Status)
	agents.AssertExpectations(t)
}

func TestReview_AlreadyReviewed(t *testing.T) {
	service, agents, _ := newTestService()

	agents.On("SetStatus", mock.Anything, int64(5), domain.AgentRejected, "", mock.Anything).
		Return(repository.ErrInvalidStatusTransition)

	_, err := service.Review(context.Background(), 5, ReviewAgentRequest{Status: "rejected"})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestReview_UnknownAgent(t *testing.T) {
	service, agents, _ := newTestService()

	agents.On("SetStatus", mock.Anything, int64(99), domain.AgentApproved, "", mock.Anything).
		Return(gorm.ErrRecordNotFound)

	_, err := service.Review(context.Background(), 99, ReviewAgentRequest{Status: "approved"})
	assert.ErrorIs(t, err, ErrAgentNotFound)
}

func TestReview_BadStatus(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Review(context.Background(), 5, ReviewAgentRequest{Status: "maybe"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestList_BadRegion(t *testing.T) {
	service, _, _ := newTestService()

	_, _, err := service.List(context.Background(), repository.AgentFilters{Region: "atlantis"})
	assert.ErrorIs(t, err, ErrValidation)
}
