package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUserNotFound      = errors.New("user not found")
	ErrAlreadyRegistered = errors.New("email is already registered")
	ErrEmailInUse        = errors.New("email already in use")
	ErrWrongPassword     = errors.New("password incorrect")
	ErrFederatedOnly     = errors.New("account has no password")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrFederatedDisabled = errors.New("federated login is not configured")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrTokenInvalid      = errors.New("token is invalid or expired")
	ErrDeliveryFailed    = errors.New("email delivery failed")
	ErrOTPNotFound       = errors.New("otp not found")
	ErrOTPExpired        = errors.New("otp expired")
	ErrOTPMismatch       = errors.New("otp mismatch")
)

// Provider tags stored on User.Authentication.
const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
)

const MaxNameLength = 120

type User struct {
	ID             string
	Name           string
	Email          string
	PasswordHash   string // empty for federated-only accounts
	Authentication string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasPassword reports whether the account can sign in with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

type OneTimePasscode struct {
	Email     string
	Code      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired treats the expiry instant itself as expired.
func (o *OneTimePasscode) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// NormalizeEmail trims and lowercases addr and checks that it is a bare
// address (no display name).
func NormalizeEmail(addr string) (string, error) {
	addr = strings.ToLower(strings.TrimSpace(addr))
	if addr == "" {
		return "", ErrInvalidInput
	}
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != addr {
		return "", ErrInvalidInput
	}
	return addr, nil
}

// NormalizeName trims whitespace and truncates to MaxNameLength runes.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if r := []rune(name); len(r) > MaxNameLength {
		name = string(r[:MaxNameLength])
	}
	return name
}
