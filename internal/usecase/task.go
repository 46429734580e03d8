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

type TaskUsecase struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	activity ActivityRecorder
}

func NewTaskUsecase(tasks repository.TaskRepository, projects repository.ProjectRepository, activity ActivityRecorder) *TaskUsecase {
	return &TaskUsecase{tasks: tasks, projects: projects, activity: activity}
}

type CreateTaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.Priority
	AssignedTo  string
	DueDate     *time.Time
	Completed   bool
}

func (u *TaskUsecase) ListTasks(ctx context.Context, userID, projectID string) ([]*domain.Task, error) {
	if err := u.requireVisible(ctx, userID, projectID); err != nil {
		return nil, err
	}
	tasks, err := u.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (u *TaskUsecase) CreateTask(ctx context.Context, actor *domain.User, projectID string, in CreateTaskInput) (*domain.Task, error) {
	if err := u.requireVisible(ctx, actor.ID, projectID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Status == "" {
		in.Status = domain.TaskTodo
	}
	if !in.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if in.Priority == "" {
		in.Priority = domain.PriorityMedium
	}
	if !in.Priority.Valid() {
		return nil, domain.ErrInvalidPriority
	}

	var assignedTo *string
	if a := strings.TrimSpace(in.AssignedTo); a != "" {
		assignedTo = &a
	}

	t, err := u.tasks.Create(ctx, &domain.Task{
		ProjectID:   projectID,
		Title:       title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		AssignedTo:  assignedTo,
		DueDate:     in.DueDate,
		Completed:   in.Completed,
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	u.activity.Record(ctx, actor, domain.ActivityTask, domain.ActionCreated, t.Title)
	return t, nil
}

func (u *TaskUsecase) UpdateTask(ctx context.Context, actor *domain.User, taskID string, patch domain.TaskPatch) (*domain.Task, error) {
	if _, err := u.visibleTask(ctx, actor.ID, taskID); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return nil, domain.ErrInvalidInput
		}
		patch.Title = &trimmed
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return nil, domain.ErrInvalidPriority
	}

	t, err := u.tasks.Update(ctx, taskID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update task: %w", err)
	}

	u.activity.Record(ctx, actor, domain.ActivityTask, domain.ActionUpdated, t.Title)
	return t, nil
}

func (u *TaskUsecase) DeleteTask(ctx context.Context, actor *domain.User, taskID string) error {
	if _, err := u.visibleTask(ctx, actor.ID, taskID); err != nil {
		return err
	}

	t, err := u.tasks.Delete(ctx, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return err
		}
		return fmt.Errorf("delete task: %w", err)
	}

	u.activity.Record(ctx, actor, domain.ActivityTask, domain.ActionDeleted, t.Title)
	return nil
}

// visibleTask hides tasks of projects the caller cannot see behind
// domain.ErrTaskNotFound.
func (u *TaskUsecase) visibleTask(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	t, err := u.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	if err := u.requireVisible(ctx, userID, t.ProjectID); err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return t, nil
}

func (u *TaskUsecase) requireVisible(ctx context.Context, userID, projectID string) error {
	p, err := u.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return err
		}
		return fmt.Errorf("get project: %w", err)
	}
	if !p.VisibleTo(userID) {
		return domain.ErrProjectNotFound
	}
	return nil
}
