package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"github.com/ErlanBelekov/projecthub/internal/repository"
)

// ActivityRecorder appends best-effort entries to the activity feed.
type ActivityRecorder interface {
	Record(ctx context.Context, actor *domain.User, typ domain.ActivityType, action domain.ActivityAction, targetName string)
}

type ProjectUsecase struct {
	repo     repository.ProjectRepository
	activity ActivityRecorder
}

func NewProjectUsecase(repo repository.ProjectRepository, activity ActivityRecorder) *ProjectUsecase {
	return &ProjectUsecase{repo: repo, activity: activity}
}

type CreateProjectInput struct {
	Name        string
	Description string
	Status      domain.ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Members     []string
	Tags        []string
}

func (u *ProjectUsecase) CreateProject(ctx context.Context, actor *domain.User, in CreateProjectInput) (*domain.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Status == "" {
		in.Status = domain.ProjectPlanning
	}
	if !in.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if err := checkDateRange(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}
	if len(in.Members) == 0 {
		in.Members = []string{actor.ID}
	}

	p, err := u.repo.Create(ctx, &domain.Project{
		Name:        name,
		Description: in.Description,
		Status:      in.Status,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Members:     in.Members,
		Tags:        in.Tags,
		OwnerID:     actor.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	u.activity.Record(ctx, actor, domain.ActivityProject, domain.ActionCreated, p.Name)
	return p, nil
}

func (u *ProjectUsecase) ListProjects(ctx context.Context, userID string) ([]*domain.Project, error) {
	projects, err := u.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns domain.ErrProjectNotFound for projects the caller cannot
// see, so their existence is not leaked.
func (u *ProjectUsecase) GetProject(ctx context.Context, userID, id string) (*domain.Project, error) {
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	if !p.VisibleTo(userID) {
		return nil, domain.ErrProjectNotFound
	}
	return p, nil
}

func (u *ProjectUsecase) UpdateProject(ctx context.Context, actor *domain.User, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	current, err := u.GetProject(ctx, actor.ID, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return nil, domain.ErrInvalidInput
		}
		patch.Name = &trimmed
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	start, end := current.StartDate, current.EndDate
	if patch.ClearStartDate {
		start = nil
	} else if patch.StartDate != nil {
		start = patch.StartDate
	}
	if patch.ClearEndDate {
		end = nil
	} else if patch.EndDate != nil {
		end = patch.EndDate
	}
	if err := checkDateRange(start, end); err != nil {
		return nil, err
	}

	p, err := u.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update project: %w", err)
	}

	u.activity.Record(ctx, actor, domain.ActivityProject, domain.ActionUpdated, p.Name)
	return p, nil
}

// DeleteProject is restricted to the owner. Members get domain.ErrNotProjectOwner.
func (u *ProjectUsecase) DeleteProject(ctx context.Context, actor *domain.User, id string) error {
	p, err := u.GetProject(ctx, actor.ID, id)
	if err != nil {
		return err
	}
	if p.OwnerID != actor.ID {
		return domain.ErrNotProjectOwner
	}

	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return err
		}
		return fmt.Errorf("delete project: %w", err)
	}

	u.activity.Record(ctx, actor, domain.ActivityProject, domain.ActionDeleted, p.Name)
	return nil
}

func checkDateRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return domain.ErrInvalidDateRange
	}
	return nil
}
