package federated

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

type stubValidator struct {
	payload  *idtoken.Payload
	err      error
	audience string
}

func (s *stubValidator) Validate(_ context.Context, _, audience string) (*idtoken.Payload, error) {
	s.audience = audience
	return s.payload, s.err
}

func TestNewGoogleVerifier_RequiresClientID(t *testing.T) {
	_, err := NewGoogleVerifier(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrFederatedDisabled)
}

func TestVerify_ReturnsIdentity(t *testing.T) {
	stub := &stubValidator{payload: &idtoken.Payload{
		Subject: "google-123",
		Claims: map[string]any{
			"email":          "g@test.com",
			"email_verified": true,
			"name":           "Grace",
		},
	}}
	g := &GoogleVerifier{validator: stub, clientID: "client-1"}

	id, err := g.Verify(context.Background(), "cred")
	require.NoError(t, err)
	require.Equal(t, &Identity{Subject: "google-123", Email: "g@test.com", Name: "Grace"}, id)
	require.Equal(t, "client-1", stub.audience)
}

func TestVerify_Rejections(t *testing.T) {
	cases := []struct {
		name string
		stub *stubValidator
		want Reason
	}{
		{"bad audience", &stubValidator{err: errors.New("idtoken: audience provided does not match aud claim in the JWT")}, ReasonAudience},
		{"expired", &stubValidator{err: errors.New("idtoken: token expired: now=1 exp=0")}, ReasonExpired},
		{"signature", &stubValidator{err: errors.New("idtoken: could not find matching cert keyId for the token provided")}, ReasonSignature},
		{"garbage", &stubValidator{err: errors.New("idtoken: invalid token, token must have three segments")}, ReasonMalformed},
		{"no email", &stubValidator{payload: &idtoken.Payload{Claims: map[string]any{}}}, ReasonMissingEmail},
		{"unverified", &stubValidator{payload: &idtoken.Payload{Claims: map[string]any{
			"email":          "g@test.com",
			"email_verified": false,
		}}}, ReasonUnverifiedEmail},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := &GoogleVerifier{validator: tc.stub, clientID: "client-1"}
			_, err := g.Verify(context.Background(), "cred")
			require.ErrorIs(t, err, domain.ErrInvalidCredential)
			require.Equal(t, tc.want, ReasonOf(err))
		})
	}
}

func TestReasonOf(t *testing.T) {
	require.Equal(t, Reason(""), ReasonOf(errors.New("plain")))
	require.Equal(t, Reason(""), ReasonOf(nil))

	wrapped := fmt.Errorf("login: %w", &VerifyError{Reason: ReasonExpired})
	require.Equal(t, ReasonExpired, ReasonOf(wrapped))
	require.ErrorIs(t, wrapped, domain.ErrInvalidCredential)
}
