package auth

import (
	"context"

	"kayexpress/internal/domain"
	"kayexpress/internal/repository"
)

// UserRepository — only the methods the auth service uses
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// BookingStatsReader feeds the profile endpoint its booking rollup.
// Implemented by the booking repository.
type BookingStatsReader interface {
	GetStatsByUser(ctx context.Context, userID int64) (*repository.BookingStats, error)
}
