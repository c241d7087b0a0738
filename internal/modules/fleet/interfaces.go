package fleet

import (
	"context"

	"kayexpress/internal/domain"
	"kayexpress/internal/repository"

	"gorm.io/gorm"
)

// ReferenceSource issues fleet numbers. Satisfied by *refnum.Generator.
type ReferenceSource interface {
	NextSequential(tx *gorm.DB, prefix, period string, width int) (string, error)
}

// TerminalRepository is the slice of terminal persistence the fleet
// module needs.
type TerminalRepository interface {
	Create(ctx context.Context, t *domain.Terminal) error
	GetByID(ctx context.Context, id int64) (*domain.Terminal, error)
	List(ctx context.Context, f repository.TerminalFilters) ([]domain.Terminal, int64, error)
	Update(ctx context.Context, t *domain.Terminal) error
	Count(ctx context.Context, activeOnly bool) (int64, error)
}

type BusRepository interface {
	Create(ctx context.Context, b *domain.Bus) error
	GetByID(ctx context.Context, id int64) (*domain.Bus, error)
	List(ctx context.Context, f repository.BusFilters) ([]domain.Bus, int64, error)
	Update(ctx context.Context, b *domain.Bus) error
	SetStatus(ctx context.Context, id int64, status domain.BusStatus) error
	Counts(ctx context.Context) (*repository.BusCounts, error)
}

type RouteRepository interface {
	Create(ctx context.Context, route *domain.Route) error
	GetByID(ctx context.Context, id int64) (*domain.Route, error)
	List(ctx context.Context, f repository.RouteFilters) ([]domain.Route, int64, error)
	Update(ctx context.Context, route *domain.Route) error
	ExistsByPair(ctx context.Context, originID, destinationID int64) (bool, error)
	CountActive(ctx context.Context) (int64, error)
}
