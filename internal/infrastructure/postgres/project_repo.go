package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

const projectColumns = `id, name, description, status, start_date, end_date,
	members, tags, owner_id, created_at, updated_at`

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO projects (name, description, status, start_date, end_date, members, tags, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+projectColumns,
		p.Name, p.Description, p.Status, p.StartDate, p.EndDate,
		nonNil(p.Members), nonNil(p.Tags), p.OwnerID,
	)
	return scanProject(row)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	return scanProject(row)
}

func (r *ProjectRepository) ListForUser(ctx context.Context, userID string) ([]*domain.Project, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+projectColumns+`
		FROM projects
		WHERE owner_id = $1 OR $1::text = ANY(members)
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	args := []any{id}
	set := []string{"updated_at = NOW()"}
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.ClearStartDate {
		set = append(set, "start_date = NULL")
	} else if patch.StartDate != nil {
		add("start_date", *patch.StartDate)
	}
	if patch.ClearEndDate {
		set = append(set, "end_date = NULL")
	} else if patch.EndDate != nil {
		add("end_date", *patch.EndDate)
	}
	if patch.Members != nil {
		add("members", nonNil(*patch.Members))
	}
	if patch.Tags != nil {
		add("tags", nonNil(*patch.Tags))
	}

	query := fmt.Sprintf(`UPDATE projects SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(set, ", "), projectColumns)
	return scanProject(r.pool.QueryRow(ctx, query, args...))
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Status, &p.StartDate, &p.EndDate,
		&p.Members, &p.Tags, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("scan project: %w", err)
	}
	return &p, nil
}

// nonNil keeps NOT NULL array columns from receiving NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
