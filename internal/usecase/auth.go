package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"github.com/ErlanBelekov/projecthub/internal/email"
	"github.com/ErlanBelekov/projecthub/internal/federated"
	"github.com/ErlanBelekov/projecthub/internal/metrics"
	"github.com/ErlanBelekov/projecthub/internal/otp"
	"github.com/ErlanBelekov/projecthub/internal/password"
	"github.com/ErlanBelekov/projecthub/internal/repository"
	"github.com/ErlanBelekov/projecthub/internal/token"
)

// FederatedVerifier checks a third-party identity token.
// Satisfied by *federated.GoogleVerifier.
type FederatedVerifier interface {
	Verify(ctx context.Context, credential string) (*federated.Identity, error)
}

type AuthUsecase struct {
	users     repository.UserRepository
	otps      *otp.Engine
	hasher    *password.Hasher
	tokens    *token.Issuer
	federated FederatedVerifier // nil when federated login is disabled
	email     email.Sender
	logger    *slog.Logger
}

func NewAuthUsecase(
	users repository.UserRepository,
	otps *otp.Engine,
	hasher *password.Hasher,
	tokens *token.Issuer,
	fed FederatedVerifier,
	emailSender email.Sender,
	logger *slog.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		otps:      otps,
		hasher:    hasher,
		tokens:    tokens,
		federated: fed,
		email:     emailSender,
		logger:    logger.With("component", "auth_usecase"),
	}
}

// AuthResult is returned by every flow that signs the caller in.
type AuthResult struct {
	Token string
	User  *domain.User
}

// SendOTP issues a passcode for an unregistered address and mails it.
// A delivery failure leaves the stored code valid.
func (u *AuthUsecase) SendOTP(ctx context.Context, rawEmail string) (receipt email.Receipt, err error) {
	defer observe("send_otp", &err)

	addr, err := domain.NormalizeEmail(rawEmail)
	if err != nil {
		return email.Receipt{}, err
	}

	if _, err = u.users.FindByEmail(ctx, addr); err == nil {
		return email.Receipt{}, domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return email.Receipt{}, fmt.Errorf("find user: %w", err)
	}

	code, err := u.otps.Issue(ctx, addr)
	if err != nil {
		return email.Receipt{}, err
	}
	metrics.OTPIssuedTotal.Inc()

	receipt, err = u.email.Send(ctx, email.OTPMessage(addr, code.Code, u.otps.TTL()))
	if err != nil {
		return email.Receipt{}, fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	return receipt, nil
}

// VerifyOTP consumes the passcode for rawEmail. Outcomes are
// domain.ErrOTPNotFound, domain.ErrOTPExpired, domain.ErrOTPMismatch or nil.
func (u *AuthUsecase) VerifyOTP(ctx context.Context, rawEmail, code string) (err error) {
	defer observe("verify_otp", &err)

	addr, err := domain.NormalizeEmail(rawEmail)
	code = strings.TrimSpace(code)
	if err != nil || code == "" {
		return domain.ErrInvalidInput
	}
	return u.otps.Verify(ctx, addr, code)
}

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register creates an email/password account. It does not require a prior
// OTP verification.
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (res *AuthResult, err error) {
	defer observe("register", &err)

	name := domain.NormalizeName(in.Name)
	addr, emailErr := domain.NormalizeEmail(in.Email)
	if name == "" || emailErr != nil || in.Password == "" ||
		in.Password != in.ConfirmPassword || len(in.Password) > password.MaxLength {
		return nil, domain.ErrInvalidInput
	}

	if _, err = u.users.FindByEmail(ctx, addr); err == nil {
		return nil, domain.ErrEmailInUse
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.users.Create(ctx, &domain.User{
		Name:           name,
		Email:          addr,
		PasswordHash:   hash,
		Authentication: domain.ProviderEmail,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailInUse) {
			return nil, domain.ErrEmailInUse
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return u.signIn(user)
}

// Login checks an email/password pair. The returned error always matches
// domain.ErrInvalidCredential on rejection, and additionally one of
// domain.ErrUserNotFound, domain.ErrFederatedOnly or domain.ErrWrongPassword.
func (u *AuthUsecase) Login(ctx context.Context, rawEmail, plain string) (res *AuthResult, err error) {
	defer observe("login", &err)

	if plain == "" {
		return nil, domain.ErrInvalidInput
	}
	addr, err := domain.NormalizeEmail(rawEmail)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCredential, domain.ErrUserNotFound)
	}

	user, err := u.users.FindByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCredential, domain.ErrUserNotFound)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !user.HasPassword() {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCredential, domain.ErrFederatedOnly)
	}
	if !u.hasher.Verify(plain, user.PasswordHash) {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCredential, domain.ErrWrongPassword)
	}

	return u.signIn(user)
}

// FederatedLogin verifies a provider token and signs the caller in, creating
// a password-less account on first use.
func (u *AuthUsecase) FederatedLogin(ctx context.Context, credential string) (res *AuthResult, err error) {
	defer observe("federated_login", &err)

	if u.federated == nil {
		return nil, domain.ErrFederatedDisabled
	}
	if strings.TrimSpace(credential) == "" {
		return nil, domain.ErrInvalidInput
	}

	identity, err := u.federated.Verify(ctx, credential)
	if err != nil {
		u.logger.WarnContext(ctx, "federated token rejected", "reason", federated.ReasonOf(err), "error", err)
		if errors.Is(err, domain.ErrInvalidCredential) {
			return nil, domain.ErrInvalidCredential
		}
		return nil, fmt.Errorf("verify federated token: %w", err)
	}

	addr, err := domain.NormalizeEmail(identity.Email)
	if err != nil {
		u.logger.WarnContext(ctx, "federated token carries unusable email", "email", identity.Email)
		return nil, domain.ErrInvalidCredential
	}

	user, err := u.users.FindByEmail(ctx, addr)
	if errors.Is(err, domain.ErrUserNotFound) {
		user, err = u.provisionFederated(ctx, addr, identity.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve federated user: %w", err)
	}

	return u.signIn(user)
}

func (u *AuthUsecase) provisionFederated(ctx context.Context, addr, name string) (*domain.User, error) {
	name = domain.NormalizeName(name)
	if name == "" {
		name = strings.SplitN(addr, "@", 2)[0]
	}

	user, err := u.users.Create(ctx, &domain.User{
		Name:           name,
		Email:          addr,
		PasswordHash:   "",
		Authentication: domain.ProviderGoogle,
	})
	if errors.Is(err, domain.ErrEmailInUse) {
		// lost a race with a concurrent first login
		return u.users.FindByEmail(ctx, addr)
	}
	if err != nil {
		return nil, err
	}
	u.logger.InfoContext(ctx, "provisioned federated account", "user_id", user.ID)
	return user, nil
}

func (u *AuthUsecase) signIn(user *domain.User) (*AuthResult, error) {
	signed, err := u.tokens.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: signed, User: user}, nil
}

func observe(flow string, errp *error) {
	outcome := "success"
	if *errp != nil {
		outcome = "failure"
	}
	metrics.AuthAttemptsTotal.WithLabelValues(flow, outcome).Inc()
}
