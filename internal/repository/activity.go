package repository

import (
	"context"

	"github.com/ErlanBelekov/projecthub/internal/domain"
)

type ActivityRepository interface {
	Create(ctx context.Context, a *domain.Activity) error
	ListRecent(ctx context.Context, limit int) ([]*domain.Activity, error)
}
