package postgres

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ActivityRepository struct {
	pool *pgxpool.Pool
}

func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

func (r *ActivityRepository) Create(ctx context.Context, a *domain.Activity) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO activities (type, action, target_type, target_name, actor_id, actor_name)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.Type, a.Action, a.TargetType, a.TargetName, a.ActorID, a.ActorName,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Activity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, type, action, target_type, target_name, actor_id, actor_name, timestamp
		FROM activities
		ORDER BY timestamp DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var out []*domain.Activity
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.ID, &a.Type, &a.Action, &a.TargetType, &a.TargetName,
			&a.ActorID, &a.ActorName, &a.Timestamp); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}
	return out, nil
}
