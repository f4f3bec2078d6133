package redisrepo_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jrsteele09/gymbuddy-web/internal/errors"
	"github.com/jrsteele09/gymbuddy-web/sessions"
	"github.com/jrsteele09/gymbuddy-web/sessions/redisrepo"
	"github.com/jrsteele09/gymbuddy-web/users"
	"github.com/stretchr/testify/require"
)

const ttl = time.Minute

type testFixture struct {
	mr   *miniredis.Miniredis
	repo *redisrepo.Repo
}

func setupTestFixture(t *testing.T) testFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := redisrepo.NewClient(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return testFixture{mr: mr, repo: redisrepo.New(client, ttl)}
}

func testSession() sessions.Session {
	return sessions.Session{
		Email:     "mo@gym.test",
		Token:     "tok",
		Role:      users.RoleMember,
		MemberID:  "3",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func checkRoundTrip(t *testing.T, repo *redisrepo.Repo) {
	t.Helper()
	ctx := context.Background()
	sid := uuid.NewString()

	_, err := repo.Get(ctx, sid)
	require.ErrorIs(t, err, errors.ErrSessionNotFound)

	want := testSession()
	require.NoError(t, repo.Upsert(ctx, sid, want))

	got, err := repo.Get(ctx, sid)
	require.NoError(t, err)
	require.Equal(t, want, got)

	require.NoError(t, repo.Delete(ctx, sid))
	_, err = repo.Get(ctx, sid)
	require.ErrorIs(t, err, errors.ErrSessionNotFound)
}

func TestRepo(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		f := setupTestFixture(t)
		checkRoundTrip(t, f.repo)
	})

	t.Run("Upsert sets the ttl", func(t *testing.T) {
		f := setupTestFixture(t)
		sid := uuid.NewString()
		require.NoError(t, f.repo.Upsert(context.Background(), sid, testSession()))
		require.True(t, f.mr.Exists("gymbuddy:session:"+sid))
		require.Equal(t, ttl, f.mr.TTL("gymbuddy:session:"+sid))
	})

	t.Run("Expired sessions are gone", func(t *testing.T) {
		f := setupTestFixture(t)
		ctx := context.Background()
		sid := uuid.NewString()
		require.NoError(t, f.repo.Upsert(ctx, sid, testSession()))

		f.mr.FastForward(ttl + time.Second)
		_, err := f.repo.Get(ctx, sid)
		require.ErrorIs(t, err, errors.ErrSessionNotFound)
	})

	t.Run("Zero ttl never expires", func(t *testing.T) {
		f := setupTestFixture(t)
		client, err := redisrepo.NewClient(context.Background(), f.mr.Addr(), "", 0)
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })

		sid := uuid.NewString()
		require.NoError(t, redisrepo.New(client, 0).Upsert(context.Background(), sid, testSession()))
		require.Zero(t, f.mr.TTL("gymbuddy:session:"+sid))
	})
}

// Runs against a real Redis when REDIS_TEST_ADDR is set, e.g. REDIS_TEST_ADDR=localhost:6379.
func TestRepoRealRedis(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client, err := redisrepo.NewClient(context.Background(), addr, "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	checkRoundTrip(t, redisrepo.New(client, ttl))
}

func TestNewClientUnreachable(t *testing.T) {
	_, err := redisrepo.NewClient(context.Background(), "127.0.0.1:1", "", 0)
	require.Error(t, err)
}
