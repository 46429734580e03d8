package usecase_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"github.com/ErlanBelekov/projecthub/internal/password"
	"github.com/ErlanBelekov/projecthub/internal/usecase"
)

const inviteLink = "https://app.projecthub.test/signup"

func newUserFixture(t *testing.T, seed ...*domain.User) (*usecase.UserUsecase, *memUsers, *fakeSender, *password.Hasher) {
	t.Helper()
	hasher, err := password.NewHasher(4)
	if err != nil {
		t.Fatal(err)
	}
	users := newMemUsers(seed...)
	sender := &fakeSender{}
	return usecase.NewUserUsecase(users, hasher, sender, inviteLink, slog.Default()), users, sender, hasher
}

func TestUpdateProfile(t *testing.T) {
	ada := &domain.User{ID: "u1", Name: "Ada", Email: "ada@test.com"}
	taken := &domain.User{ID: "u2", Name: "Bob", Email: "bob@test.com"}
	uc, _, _, _ := newUserFixture(t, ada, taken)

	name := "  Ada Lovelace "
	got, err := uc.UpdateProfile(context.Background(), ada, &name, nil)
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if got.Name != "Ada Lovelace" || got.Email != "ada@test.com" {
		t.Errorf("got %+v", got)
	}

	bad := "nope"
	if _, err := uc.UpdateProfile(context.Background(), ada, nil, &bad); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("bad email: err = %v, want ErrInvalidInput", err)
	}

	clash := "BOB@test.com"
	if _, err := uc.UpdateProfile(context.Background(), ada, nil, &clash); !errors.Is(err, domain.ErrEmailInUse) {
		t.Errorf("taken email: err = %v, want ErrEmailInUse", err)
	}

	blank := " "
	if _, err := uc.UpdateProfile(context.Background(), ada, &blank, nil); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("blank name: err = %v, want ErrInvalidInput", err)
	}
}

func TestResetPassword(t *testing.T) {
	uc, users, _, hasher := newUserFixture(t)
	hash, err := hasher.Hash("old-secret")
	if err != nil {
		t.Fatal(err)
	}
	user, err := users.Create(context.Background(), &domain.User{Name: "Ada", Email: "ada@test.com", PasswordHash: hash})
	if err != nil {
		t.Fatal(err)
	}
	federatedOnly := &domain.User{ID: "fed", Email: "g@test.com", Authentication: domain.ProviderGoogle}

	cases := []struct {
		name     string
		user     *domain.User
		current  string
		proposed string
		want     error
	}{
		{"missing current", user, "", "new-secret", domain.ErrInvalidInput},
		{"missing new", user, "old-secret", "", domain.ErrInvalidInput},
		{"too long", user, "old-secret", strings.Repeat("x", password.MaxLength+1), domain.ErrInvalidInput},
		{"federated only", federatedOnly, "anything", "new-secret", domain.ErrFederatedOnly},
		{"wrong current", user, "guess", "new-secret", domain.ErrWrongPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := uc.ResetPassword(context.Background(), tc.user, tc.current, tc.proposed); !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}

	if err := uc.ResetPassword(context.Background(), user, "old-secret", "new-secret"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	stored, _ := users.FindByID(context.Background(), user.ID)
	if !hasher.Verify("new-secret", stored.PasswordHash) {
		t.Error("stored hash does not match the new password")
	}
	if hasher.Verify("old-secret", stored.PasswordHash) {
		t.Error("old password still verifies")
	}
}

func TestInvite(t *testing.T) {
	uc, _, sender, _ := newUserFixture(t)

	receipt, err := uc.Invite(context.Background(), " Friend@Test.com ", "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.MessageID == "" {
		t.Error("empty receipt")
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}
	msg := sender.sent[0]
	if msg.To != "friend@test.com" || msg.Subject != "You are invited to ProjectHub!" {
		t.Errorf("message = %+v", msg)
	}
	if !strings.Contains(msg.HTML, inviteLink) {
		t.Errorf("invite body lacks link: %s", msg.HTML)
	}

	if _, err := uc.Invite(context.Background(), "friend@test.com", " Join us "); err != nil {
		t.Fatalf("custom subject: %v", err)
	}
	if got := sender.sent[1].Subject; got != "Join us" {
		t.Errorf("custom subject = %q, want %q", got, "Join us")
	}
}

func TestInvite_Failures(t *testing.T) {
	uc, _, sender, _ := newUserFixture(t)

	if _, err := uc.Invite(context.Background(), "not-an-email", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("bad address: err = %v, want ErrInvalidInput", err)
	}

	sender.err = errors.New("provider down")
	if _, err := uc.Invite(context.Background(), "friend@test.com", "Join us"); !errors.Is(err, domain.ErrDeliveryFailed) {
		t.Errorf("delivery: err = %v, want ErrDeliveryFailed", err)
	}
}
