package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"github.com/ErlanBelekov/projecthub/internal/usecase"
)

type fakeTaskRepo struct {
	create         func(ctx context.Context, t *domain.Task) (*domain.Task, error)
	getByID        func(ctx context.Context, id string) (*domain.Task, error)
	listByProject  func(ctx context.Context, projectID string) ([]*domain.Task, error)
	update         func(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	delete         func(ctx context.Context, id string) (*domain.Task, error)
	countByProject func(ctx context.Context, projectIDs []string) (map[string]domain.TaskCounts, error)
	listDue        func(ctx context.Context, from, to time.Time) ([]*domain.DueTask, error)
}

func (r *fakeTaskRepo) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	return r.create(ctx, t)
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return r.getByID(ctx, id)
}

func (r *fakeTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return r.listByProject(ctx, projectID)
}

func (r *fakeTaskRepo) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	return r.update(ctx, id, patch)
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id string) (*domain.Task, error) {
	return r.delete(ctx, id)
}

func (r *fakeTaskRepo) CountByProject(ctx context.Context, projectIDs []string) (map[string]domain.TaskCounts, error) {
	return r.countByProject(ctx, projectIDs)
}

func (r *fakeTaskRepo) ListDueBetween(ctx context.Context, from, to time.Time) ([]*domain.DueTask, error) {
	return r.listDue(ctx, from, to)
}

func projectsWithShared() *fakeProjectRepo {
	return &fakeProjectRepo{getByID: func(_ context.Context, id string) (*domain.Project, error) {
		if id != "p-1" {
			return nil, domain.ErrProjectNotFound
		}
		return sharedProject(), nil
	}}
}

func TestCreateTask_Defaults(t *testing.T) {
	var stored *domain.Task
	tasks := &fakeTaskRepo{create: func(_ context.Context, task *domain.Task) (*domain.Task, error) {
		stored = task
		return task, nil
	}}
	rec := &fakeRecorder{}
	uc := usecase.NewTaskUsecase(tasks, projectsWithShared(), rec)

	_, err := uc.CreateTask(context.Background(), member, "p-1", usecase.CreateTaskInput{Title: " Write docs ", AssignedTo: "  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Title != "Write docs" || stored.Status != domain.TaskTodo || stored.Priority != domain.PriorityMedium {
		t.Errorf("stored = %+v", stored)
	}
	if stored.AssignedTo != nil {
		t.Errorf("AssignedTo = %q, want nil", *stored.AssignedTo)
	}
	if stored.ProjectID != "p-1" {
		t.Errorf("ProjectID = %q", stored.ProjectID)
	}
	if len(rec.entries) != 1 || rec.entries[0].typ != domain.ActivityTask || rec.entries[0].target != "Write docs" {
		t.Errorf("activity = %+v", rec.entries)
	}
}

func TestCreateTask_Rejections(t *testing.T) {
	uc := usecase.NewTaskUsecase(&fakeTaskRepo{}, projectsWithShared(), &fakeRecorder{})

	cases := []struct {
		name      string
		actor     *domain.User
		projectID string
		in        usecase.CreateTaskInput
		want      error
	}{
		{"outsider", other, "p-1", usecase.CreateTaskInput{Title: "x"}, domain.ErrProjectNotFound},
		{"unknown project", member, "p-2", usecase.CreateTaskInput{Title: "x"}, domain.ErrProjectNotFound},
		{"blank title", member, "p-1", usecase.CreateTaskInput{Title: ""}, domain.ErrInvalidInput},
		{"bad status", member, "p-1", usecase.CreateTaskInput{Title: "x", Status: "blocked"}, domain.ErrInvalidStatus},
		{"bad priority", member, "p-1", usecase.CreateTaskInput{Title: "x", Priority: "urgent"}, domain.ErrInvalidPriority},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.CreateTask(context.Background(), tc.actor, tc.projectID, tc.in); !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestUpdateTask_HiddenProjectReadsAsTaskNotFound(t *testing.T) {
	tasks := &fakeTaskRepo{getByID: func(_ context.Context, id string) (*domain.Task, error) {
		return &domain.Task{ID: id, ProjectID: "p-1", Title: "Ship"}, nil
	}}
	uc := usecase.NewTaskUsecase(tasks, projectsWithShared(), &fakeRecorder{})

	title := "Renamed"
	_, err := uc.UpdateTask(context.Background(), other, "t-1", domain.TaskPatch{Title: &title})
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("err = %v, want ErrTaskNotFound", err)
	}
}

func TestUpdateTask_TrimsTitle(t *testing.T) {
	var got domain.TaskPatch
	tasks := &fakeTaskRepo{
		getByID: func(_ context.Context, id string) (*domain.Task, error) {
			return &domain.Task{ID: id, ProjectID: "p-1", Title: "Ship"}, nil
		},
		update: func(_ context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
			got = patch
			return &domain.Task{ID: id, ProjectID: "p-1", Title: *patch.Title}, nil
		},
	}
	rec := &fakeRecorder{}
	uc := usecase.NewTaskUsecase(tasks, projectsWithShared(), rec)

	title := "  Ship it  "
	if _, err := uc.UpdateTask(context.Background(), owner, "t-1", domain.TaskPatch{Title: &title}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *got.Title != "Ship it" {
		t.Errorf("patched title = %q", *got.Title)
	}
	if len(rec.entries) != 1 || rec.entries[0].action != domain.ActionUpdated {
		t.Errorf("activity = %+v", rec.entries)
	}
}

func TestDeleteTask_MissingTask(t *testing.T) {
	tasks := &fakeTaskRepo{getByID: func(_ context.Context, _ string) (*domain.Task, error) {
		return nil, domain.ErrTaskNotFound
	}}
	uc := usecase.NewTaskUsecase(tasks, projectsWithShared(), &fakeRecorder{})

	if err := uc.DeleteTask(context.Background(), owner, "t-404"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("err = %v, want ErrTaskNotFound", err)
	}
}
