package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id, project_id, title, description, status, priority,
	assigned_to, due_date, completed, created_at, updated_at`

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (project_id, title, description, status, priority, assigned_to, due_date, completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+taskColumns,
		t.ProjectID, t.Title, t.Description, t.Status, t.Priority, t.AssignedTo, t.DueDate, t.Completed,
	)
	return scanTask(row)
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return scanTask(r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.project_id, t.title, t.description, t.status, t.priority,
		       t.assigned_to, t.due_date, t.completed, t.created_at, t.updated_at,
		       u.name, u.email
		FROM tasks t
		LEFT JOIN users u ON u.id = t.assigned_to
		WHERE t.project_id = $1
		ORDER BY t.created_at DESC, t.id DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		var (
			t                        domain.Task
			assigneeName, assigneeEm *string
		)
		if err := rows.Scan(
			&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.Priority,
			&t.AssignedTo, &t.DueDate, &t.Completed, &t.CreatedAt, &t.UpdatedAt,
			&assigneeName, &assigneeEm,
		); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		if t.AssignedTo != nil && assigneeName != nil {
			t.Assignee = &domain.Assignee{ID: *t.AssignedTo, Name: *assigneeName, Email: *assigneeEm}
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	args := []any{id}
	set := []string{"updated_at = NOW()"}
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.Priority != nil {
		add("priority", *patch.Priority)
	}
	if patch.AssignedTo != nil {
		if *patch.AssignedTo == "" {
			set = append(set, "assigned_to = NULL")
		} else {
			add("assigned_to", *patch.AssignedTo)
		}
	}
	if patch.ClearDueDate {
		set = append(set, "due_date = NULL")
	} else if patch.DueDate != nil {
		add("due_date", *patch.DueDate)
	}
	if patch.Completed != nil {
		add("completed", *patch.Completed)
	}

	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(set, ", "), taskColumns)
	return scanTask(r.pool.QueryRow(ctx, query, args...))
}

func (r *TaskRepository) Delete(ctx context.Context, id string) (*domain.Task, error) {
	return scanTask(r.pool.QueryRow(ctx, `DELETE FROM tasks WHERE id = $1 RETURNING `+taskColumns, id))
}

func (r *TaskRepository) CountByProject(ctx context.Context, projectIDs []string) (map[string]domain.TaskCounts, error) {
	counts := make(map[string]domain.TaskCounts, len(projectIDs))
	if len(projectIDs) == 0 {
		return counts, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT project_id::text, COUNT(*), COUNT(*) FILTER (WHERE status = 'done')
		FROM tasks
		WHERE project_id::text = ANY($1::text[])
		GROUP BY project_id`, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id string
			c  domain.TaskCounts
		)
		if err := rows.Scan(&id, &c.Total, &c.Done); err != nil {
			return nil, fmt.Errorf("scan task counts: %w", err)
		}
		counts[id] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate task counts: %w", err)
	}
	return counts, nil
}

func (r *TaskRepository) ListDueBetween(ctx context.Context, from, to time.Time) ([]*domain.DueTask, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.title, t.due_date, u.name, u.email
		FROM tasks t
		JOIN users u ON u.id = t.assigned_to
		WHERE t.due_date >= $1 AND t.due_date < $2
		  AND NOT t.completed
		  AND t.status <> 'done'
		  AND u.email <> ''
		ORDER BY t.due_date ASC`, from, to)
	if err != nil {
		return nil, fmt.Errorf("list due tasks: %w", err)
	}
	defer rows.Close()

	var due []*domain.DueTask
	for rows.Next() {
		var d domain.DueTask
		if err := rows.Scan(&d.TaskID, &d.Title, &d.DueDate, &d.AssigneeName, &d.AssigneeEmail); err != nil {
			return nil, fmt.Errorf("scan due task: %w", err)
		}
		due = append(due, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate due tasks: %w", err)
	}
	return due, nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.AssignedTo, &t.DueDate, &t.Completed, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &t, nil
}
