package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"github.com/ErlanBelekov/projecthub/internal/email"
	"github.com/ErlanBelekov/projecthub/internal/password"
	"github.com/ErlanBelekov/projecthub/internal/repository"
)

type UserUsecase struct {
	users      repository.UserRepository
	hasher     *password.Hasher
	email      email.Sender
	inviteLink string
	logger     *slog.Logger
}

func NewUserUsecase(
	users repository.UserRepository,
	hasher *password.Hasher,
	emailSender email.Sender,
	inviteLink string,
	logger *slog.Logger,
) *UserUsecase {
	return &UserUsecase{
		users:      users,
		hasher:     hasher,
		email:      emailSender,
		inviteLink: inviteLink,
		logger:     logger.With("component", "user_usecase"),
	}
}

// UpdateProfile changes name and/or email. Nil fields keep their value.
func (u *UserUsecase) UpdateProfile(ctx context.Context, current *domain.User, name, rawEmail *string) (*domain.User, error) {
	newName, newEmail := current.Name, current.Email

	if name != nil {
		newName = domain.NormalizeName(*name)
		if newName == "" {
			return nil, domain.ErrInvalidInput
		}
	}
	if rawEmail != nil {
		addr, err := domain.NormalizeEmail(*rawEmail)
		if err != nil {
			return nil, err
		}
		newEmail = addr
	}

	user, err := u.users.UpdateProfile(ctx, current.ID, newName, newEmail)
	if err != nil {
		if errors.Is(err, domain.ErrEmailInUse) || errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

func (u *UserUsecase) DeleteAccount(ctx context.Context, userID string) error {
	if err := u.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("delete account: %w", err)
	}
	u.logger.InfoContext(ctx, "account deleted", "user_id", userID)
	return nil
}

// ResetPassword replaces the password after checking the current one.
// Federated-only accounts have nothing to reset.
func (u *UserUsecase) ResetPassword(ctx context.Context, current *domain.User, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" || len(newPassword) > password.MaxLength {
		return domain.ErrInvalidInput
	}
	if !current.HasPassword() {
		return domain.ErrFederatedOnly
	}
	if !u.hasher.Verify(currentPassword, current.PasswordHash) {
		return domain.ErrWrongPassword
	}

	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := u.users.UpdatePasswordHash(ctx, current.ID, hash); err != nil {
		return fmt.Errorf("store password: %w", err)
	}
	return nil
}

func (u *UserUsecase) ListUsers(ctx context.Context) ([]*domain.UserSummary, error) {
	users, err := u.users.ListWithCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Invite mails the sign-up link to rawEmail. A blank subject falls back to the
// message builder's default.
func (u *UserUsecase) Invite(ctx context.Context, rawEmail, subject string) (email.Receipt, error) {
	addr, err := domain.NormalizeEmail(rawEmail)
	if err != nil {
		return email.Receipt{}, err
	}
	receipt, err := u.email.Send(ctx, email.InviteMessage(addr, strings.TrimSpace(subject), u.inviteLink))
	if err != nil {
		return email.Receipt{}, fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	return receipt, nil
}
