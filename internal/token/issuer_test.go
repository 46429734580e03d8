package token_test

import (
	"testing"
	"time"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"github.com/ErlanBelekov/projecthub/internal/token"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var key = []byte("issuer-test-key-0123456789abcdef")

func TestNewIssuer(t *testing.T) {
	_, err := token.NewIssuer(nil, time.Hour)
	require.ErrorIs(t, err, token.ErrMissingKey)

	i, err := token.NewIssuer(key, 0)
	require.NoError(t, err)

	raw, err := i.Issue("u1", "a@test.com", "Ada")
	require.NoError(t, err)
	claims, err := i.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, token.DefaultTTL, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	i, err := token.NewIssuer(key, time.Hour)
	require.NoError(t, err)

	raw, err := i.Issue("u1", "a@test.com", "Ada")
	require.NoError(t, err)

	claims, err := i.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.Subject)
	require.Equal(t, "a@test.com", claims.Email)
	require.Equal(t, "Ada", claims.Name)
}

func TestVerify_Expired(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	i, err := token.NewIssuer(key, time.Hour, token.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	raw, err := i.Issue("u1", "a@test.com", "Ada")
	require.NoError(t, err)

	now = now.Add(59 * time.Minute)
	_, err = i.Verify(raw)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = i.Verify(raw)
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerify_Rejections(t *testing.T) {
	i, err := token.NewIssuer(key, time.Hour)
	require.NoError(t, err)
	other, err := token.NewIssuer([]byte("a-completely-different-signing-key"), time.Hour)
	require.NoError(t, err)

	foreign, err := other.Issue("u1", "a@test.com", "Ada")
	require.NoError(t, err)

	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{Subject: "u1", ExpiresAt: exp}).SignedString(key)
	require.NoError(t, err)
	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ExpiresAt: exp}).SignedString(key)
	require.NoError(t, err)
	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u1"}).SignedString(key)
	require.NoError(t, err)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "u1", ExpiresAt: exp}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := map[string]string{
		"garbage":     "not.a.jwt",
		"empty":       "",
		"foreign key": foreign,
		"wrong alg":   hs512,
		"no subject":  noSubject,
		"no expiry":   noExpiry,
		"alg none":    unsigned,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := i.Verify(raw)
			require.ErrorIs(t, err, domain.ErrTokenInvalid)
		})
	}
}
