// Package otp issues and checks the six-digit codes that prove control of a
// mailbox before sign-up.
package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"github.com/ErlanBelekov/projecthub/internal/repository"
)

const (
	DefaultTTL = 10 * time.Minute

	codeMin  = 100000
	codeSpan = 900000 // codes fall in [100000, 999999]
)

type Engine struct {
	repo   repository.OTPRepository
	ttl    time.Duration
	now    func() time.Time
	random io.Reader
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithTTL(ttl time.Duration) Option {
	return func(e *Engine) { e.ttl = ttl }
}

// WithRandom replaces crypto/rand as the code source.
func WithRandom(r io.Reader) Option {
	return func(e *Engine) { e.random = r }
}

func NewEngine(repo repository.OTPRepository, opts ...Option) *Engine {
	e := &Engine{
		repo:   repo,
		ttl:    DefaultTTL,
		now:    time.Now,
		random: rand.Reader,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TTL is how long an issued code stays valid.
func (e *Engine) TTL() time.Duration { return e.ttl }

// Issue generates a fresh code for email and replaces any previous one.
// email must already be normalized.
func (e *Engine) Issue(ctx context.Context, email string) (*domain.OneTimePasscode, error) {
	n, err := rand.Int(e.random, big.NewInt(codeSpan))
	if err != nil {
		return nil, fmt.Errorf("generate otp: %w", err)
	}
	now := e.now()
	code := fmt.Sprintf("%06d", n.Int64()+codeMin)
	expiresAt := now.Add(e.ttl)

	if err := e.repo.Upsert(ctx, email, code, expiresAt); err != nil {
		return nil, fmt.Errorf("store otp: %w", err)
	}
	return &domain.OneTimePasscode{
		Email:     email,
		Code:      code,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}, nil
}

// Verify consumes the code for email. Expiry is checked before equality so an
// expired record is always removed, even when the guess is right. A wrong guess
// on a live record leaves it in place.
func (e *Engine) Verify(ctx context.Context, email, code string) error {
	rec, err := e.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrOTPNotFound) {
			return domain.ErrOTPNotFound
		}
		return fmt.Errorf("find otp: %w", err)
	}

	if rec.Expired(e.now()) {
		if err := e.repo.Delete(ctx, email); err != nil {
			return fmt.Errorf("%w (cleanup failed: %v)", domain.ErrOTPExpired, err)
		}
		return domain.ErrOTPExpired
	}

	if subtle.ConstantTimeCompare([]byte(rec.Code), []byte(code)) != 1 {
		return domain.ErrOTPMismatch
	}

	if err := e.repo.Delete(ctx, email); err != nil {
		return fmt.Errorf("consume otp: %w", err)
	}
	return nil
}
