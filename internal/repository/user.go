package repository

import (
	"context"

	"github.com/ErlanBelekov/projecthub/internal/domain"
)

type UserRepository interface {
	// Create returns domain.ErrEmailInUse when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id, name, email string) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	// Delete removes the user; owned projects cascade, assigned tasks are unassigned.
	Delete(ctx context.Context, id string) error
	ListWithCounts(ctx context.Context) ([]*domain.UserSummary, error)
}
