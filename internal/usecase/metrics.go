package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"github.com/ErlanBelekov/projecthub/internal/repository"
)

type MetricsUsecase struct {
	projects repository.ProjectRepository
	tasks    repository.TaskRepository
}

func NewMetricsUsecase(projects repository.ProjectRepository, tasks repository.TaskRepository) *MetricsUsecase {
	return &MetricsUsecase{projects: projects, tasks: tasks}
}

// ForUser aggregates the dashboard figures over every project userID can see.
func (u *MetricsUsecase) ForUser(ctx context.Context, userID string) (*domain.UserMetrics, error) {
	projects, err := u.projects.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}

	counts := map[string]domain.TaskCounts{}
	if len(ids) > 0 {
		counts, err = u.tasks.CountByProject(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("count tasks: %w", err)
		}
	}

	m := &domain.UserMetrics{
		TotalProjects:          len(projects),
		ProjectsWithCompletion: make([]domain.ProjectCompletion, 0, len(projects)),
	}
	team := make(map[string]struct{})
	var total, done int

	for _, p := range projects {
		if p.Status.Active() {
			m.ActiveProjects++
		}

		team[p.OwnerID] = struct{}{}
		for _, member := range p.Members {
			team[member] = struct{}{}
		}

		c := counts[p.ID]
		total += c.Total
		done += c.Done
		m.ProjectsWithCompletion = append(m.ProjectsWithCompletion, domain.ProjectCompletion{
			ID:             p.ID,
			Name:           p.Name,
			CompletionRate: completionRate(c.Done, c.Total),
		})
	}

	m.CompletedTasks = done
	m.ActiveTasks = total - done
	m.TeamMembers = len(team)
	m.OverallCompletionRate = completionRate(done, total)
	return m, nil
}

// completionRate is a percentage rounded to one decimal; 0 when there is nothing to complete.
func completionRate(done, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(done)/float64(total)*1000) / 10
}
