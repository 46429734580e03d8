package handler_test

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"github.com/ErlanBelekov/projecthub/internal/email"
	"github.com/ErlanBelekov/projecthub/internal/transport/http/handler"
	"github.com/gin-gonic/gin"
)

type fakeUserUsecase struct {
	updateProfile func(ctx context.Context, current *domain.User, name, email *string) (*domain.User, error)
	deleteAccount func(ctx context.Context, userID string) error
	resetPassword func(ctx context.Context, current *domain.User, currentPassword, newPassword string) error
	listUsers     func(ctx context.Context) ([]*domain.UserSummary, error)
	invite        func(ctx context.Context, email, subject string) (email.Receipt, error)
}

func (f *fakeUserUsecase) UpdateProfile(ctx context.Context, current *domain.User, name, addr *string) (*domain.User, error) {
	return f.updateProfile(ctx, current, name, addr)
}

func (f *fakeUserUsecase) DeleteAccount(ctx context.Context, userID string) error {
	return f.deleteAccount(ctx, userID)
}

func (f *fakeUserUsecase) ResetPassword(ctx context.Context, current *domain.User, currentPassword, newPassword string) error {
	return f.resetPassword(ctx, current, currentPassword, newPassword)
}

func (f *fakeUserUsecase) ListUsers(ctx context.Context) ([]*domain.UserSummary, error) {
	return f.listUsers(ctx)
}

func (f *fakeUserUsecase) Invite(ctx context.Context, addr, subject string) (email.Receipt, error) {
	return f.invite(ctx, addr, subject)
}

func newUserEngine(uc *fakeUserUsecase) *gin.Engine {
	h := handler.NewUserHandler(uc, slog.Default())

	r := gin.New()
	g := r.Group("/users", withUser)
	g.PUT("/me", h.UpdateMe)
	g.DELETE("/me", h.DeleteMe)
	g.POST("/reset-password", h.ResetPassword)
	g.GET("/allUsers", h.List)
	g.POST("/invite", h.Invite)
	return r
}

func TestUpdateMe_OnlyProvidedFields(t *testing.T) {
	uc := &fakeUserUsecase{updateProfile: func(_ context.Context, _ *domain.User, name, addr *string) (*domain.User, error) {
		if name == nil || *name != "Ada L." {
			t.Errorf("name = %v", name)
		}
		if addr != nil {
			t.Errorf("email should be absent, got %q", *addr)
		}
		u := *testUser
		u.Name = *name
		return &u, nil
	}}

	w := doJSON(newUserEngine(uc), http.MethodPut, "/users/me", `{"name":"Ada L."}`)
	if w.Code != http.StatusOK || decode(t, w)["name"] != "Ada L." {
		t.Errorf("status = %d body = %s", w.Code, w.Body.String())
	}
}

func TestUpdateMe_DuplicateEmail_Returns409(t *testing.T) {
	uc := &fakeUserUsecase{updateProfile: func(_ context.Context, _ *domain.User, _, _ *string) (*domain.User, error) {
		return nil, domain.ErrEmailInUse
	}}
	w := doJSON(newUserEngine(uc), http.MethodPut, "/users/me", `{"email":"taken@example.com"}`)
	assertMessage(t, w, http.StatusConflict, "Email already in use")
}

func TestDeleteMe_ReturnsSuccess(t *testing.T) {
	uc := &fakeUserUsecase{deleteAccount: func(_ context.Context, userID string) error {
		if userID != testUser.ID {
			t.Errorf("userID = %q", userID)
		}
		return nil
	}}
	w := doJSON(newUserEngine(uc), http.MethodDelete, "/users/me", "")
	if w.Code != http.StatusOK || decode(t, w)["success"] != true {
		t.Errorf("status = %d body = %s", w.Code, w.Body.String())
	}
}

func TestResetPassword_Mapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{nil, http.StatusOK, "Password updated successfully"},
		{domain.ErrWrongPassword, http.StatusBadRequest, "Current password is incorrect"},
		{domain.ErrFederatedOnly, http.StatusBadRequest, "This account signs in with Google and has no password"},
	}
	for _, tc := range cases {
		t.Run(tc.msg, func(t *testing.T) {
			uc := &fakeUserUsecase{resetPassword: func(_ context.Context, _ *domain.User, _, _ string) error {
				return tc.err
			}}
			w := doJSON(newUserEngine(uc), http.MethodPost, "/users/reset-password", `{"currentPassword":"a","newPassword":"b"}`)
			assertMessage(t, w, tc.status, tc.msg)
		})
	}
}

func TestListUsers_Counts(t *testing.T) {
	uc := &fakeUserUsecase{listUsers: func(_ context.Context) ([]*domain.UserSummary, error) {
		return []*domain.UserSummary{{ID: "u-1", Name: "Ada", Email: "ada@example.com", ProjectsCount: 2, TasksCount: 5}}, nil
	}}
	w := doJSON(newUserEngine(uc), http.MethodGet, "/users/allUsers", "")
	if !containsAll(w.Body.String(), `"projectsCount":2`, `"tasksCount":5`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestInvite_Mapping(t *testing.T) {
	t.Run("missing email", func(t *testing.T) {
		w := doJSON(newUserEngine(&fakeUserUsecase{}), http.MethodPost, "/users/invite", `{}`)
		assertMessage(t, w, http.StatusBadRequest, "Email is required")
	})

	t.Run("delivery failure", func(t *testing.T) {
		uc := &fakeUserUsecase{invite: func(_ context.Context, _, _ string) (email.Receipt, error) {
			return email.Receipt{}, fmt.Errorf("%w: 502", domain.ErrDeliveryFailed)
		}}
		w := doJSON(newUserEngine(uc), http.MethodPost, "/users/invite", `{"email":"bob@example.com"}`)
		assertMessage(t, w, http.StatusInternalServerError, "Failed to send invite")
	})

	t.Run("sent", func(t *testing.T) {
		uc := &fakeUserUsecase{invite: func(_ context.Context, addr, subject string) (email.Receipt, error) {
			if addr != "bob@example.com" || subject != "Join us" {
				t.Errorf("invite(%q, %q)", addr, subject)
			}
			return email.Receipt{MessageID: "m-7"}, nil
		}}
		w := doJSON(newUserEngine(uc), http.MethodPost, "/users/invite", `{"email":"bob@example.com","subject":"Join us"}`)
		if !containsAll(w.Body.String(), `"success":true`, `"messageId":"m-7"`) {
			t.Errorf("body = %s", w.Body.String())
		}
	})
}
