package redisstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"github.com/ErlanBelekov/projecthub/internal/infrastructure/redisstore"
	"github.com/ErlanBelekov/projecthub/internal/otp"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

const addr = "ada@test.com"

func newRepo(t *testing.T) (*redisstore.OTPRepository, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	repo := redisstore.NewOTPRepositoryWithClient(redis.NewClient(&redis.Options{Addr: srv.Addr()}))
	t.Cleanup(func() { _ = repo.Close() })
	return repo, srv
}

func TestUpsert_ReplacesPreviousCode(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()
	exp := time.Date(2025, 3, 1, 12, 10, 0, 0, time.UTC)

	require.NoError(t, repo.Upsert(ctx, addr, "111111", exp))
	require.NoError(t, repo.Upsert(ctx, addr, "222222", exp.Add(time.Minute)))

	rec, err := repo.FindByEmail(ctx, addr)
	require.NoError(t, err)
	require.Equal(t, "222222", rec.Code)
	require.True(t, rec.ExpiresAt.Equal(exp.Add(time.Minute)))
	require.Equal(t, addr, rec.Email)
}

func TestFindByEmail_Missing(t *testing.T) {
	repo, _ := newRepo(t)

	_, err := repo.FindByEmail(context.Background(), "nobody@test.com")
	require.ErrorIs(t, err, domain.ErrOTPNotFound)
}

func TestEngine_ExpiredThenNotFound(t *testing.T) {
	repo, srv := newRepo(t)
	ctx := context.Background()
	now := time.Now()
	engine := otp.NewEngine(repo, otp.WithClock(func() time.Time { return now }))

	rec, err := engine.Issue(ctx, addr)
	require.NoError(t, err)

	// Well past expiry, on both the server and the engine clock.
	srv.FastForward(2 * time.Hour)
	now = now.Add(2 * time.Hour)

	require.ErrorIs(t, engine.Verify(ctx, addr, rec.Code), domain.ErrOTPExpired)
	require.ErrorIs(t, engine.Verify(ctx, addr, rec.Code), domain.ErrOTPNotFound)
	require.False(t, srv.Exists("otp:"+addr))
}

func TestEngine_MismatchKeepsRecord(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()
	engine := otp.NewEngine(repo)

	rec, err := engine.Issue(ctx, addr)
	require.NoError(t, err)

	require.ErrorIs(t, engine.Verify(ctx, addr, "000000"), domain.ErrOTPMismatch)
	require.NoError(t, engine.Verify(ctx, addr, rec.Code))
	require.ErrorIs(t, engine.Verify(ctx, addr, rec.Code), domain.ErrOTPNotFound)
}

func TestPing(t *testing.T) {
	repo, _ := newRepo(t)
	require.NoError(t, repo.Ping(context.Background()))
}
