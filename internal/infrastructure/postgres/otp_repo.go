package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OTPRepository struct {
	pool *pgxpool.Pool
}

func NewOTPRepository(pool *pgxpool.Pool) *OTPRepository {
	return &OTPRepository{pool: pool}
}

// Upsert keeps a single row per email; the last writer wins.
func (r *OTPRepository) Upsert(ctx context.Context, email, code string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO otps (email, code, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE
		SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at, created_at = NOW()`,
		email, code, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("upsert otp: %w", err)
	}
	return nil
}

func (r *OTPRepository) FindByEmail(ctx context.Context, email string) (*domain.OneTimePasscode, error) {
	var o domain.OneTimePasscode
	err := r.pool.QueryRow(ctx,
		`SELECT email, code, expires_at, created_at FROM otps WHERE email = $1`, email,
	).Scan(&o.Email, &o.Code, &o.ExpiresAt, &o.CreatedAt)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrOTPNotFound
		}
		return nil, fmt.Errorf("find otp: %w", err)
	}
	return &o, nil
}

func (r *OTPRepository) Delete(ctx context.Context, email string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM otps WHERE email = $1`, email); err != nil {
		return fmt.Errorf("delete otp: %w", err)
	}
	return nil
}
