package agent

import (
	"context"
	"time"

	"kayexpress/internal/domain"
	"kayexpress/internal/repository"

	"gorm.io/gorm"
)

// AgentRepository covers the slice of the agent repository the service
// uses.
type AgentRepository interface {
	Create(ctx context.Context, a *domain.Agent) error
	GetByID(ctx context.Context, id int64) (*domain.Agent, error)
	GetByReference(ctx context.Context, ref string) (*domain.Agent, error)
	ExistsByPhoneOrEmail(ctx context.Context, phone, email string) (bool, error)
	List(ctx context.Context, f repository.AgentFilters) ([]domain.Agent, int64, error)
	SetStatus(ctx context.Context, id int64, status domain.AgentStatus, notes string, at time.Time) error
}

// ReferenceSource issues application reference numbers. Satisfied by
// *refnum.Generator.
type ReferenceSource interface {
	NextSequential(tx *gorm.DB, prefix, period string, width int) (string, error)
}
