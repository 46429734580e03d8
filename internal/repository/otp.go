package repository

import (
	"context"
	"time"

	"github.com/ErlanBelekov/projecthub/internal/domain"
)

// OTPRepository keeps at most one passcode per email.
type OTPRepository interface {
	// Upsert replaces any existing record for email.
	Upsert(ctx context.Context, email, code string, expiresAt time.Time) error
	// FindByEmail returns domain.ErrOTPNotFound when no record exists.
	FindByEmail(ctx context.Context, email string) (*domain.OneTimePasscode, error)
	Delete(ctx context.Context, email string) error
}
