package repository

import (
	"context"

	"github.com/ErlanBelekov/projecthub/internal/domain"
)

type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// ListForUser returns projects owned by or shared with userID, newest first.
	ListForUser(ctx context.Context, userID string) ([]*domain.Project, error)
	Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}
