package repository

import (
	"context"
	"time"

	"github.com/ErlanBelekov/projecthub/internal/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	// ListByProject populates Task.Assignee, newest first.
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) (*domain.Task, error)

	// CountByProject returns total/done tallies keyed by project ID.
	// Projects without tasks are absent from the map.
	CountByProject(ctx context.Context, projectIDs []string) (map[string]domain.TaskCounts, error)
	// ListDueBetween returns open, assigned tasks with from <= due_date < to.
	ListDueBetween(ctx context.Context, from, to time.Time) ([]*domain.DueTask, error)
}
