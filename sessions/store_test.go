package sessions_test

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/gymbuddy-web/internal/errors"
	"github.com/jrsteele09/gymbuddy-web/internal/utils"
	"github.com/jrsteele09/gymbuddy-web/sessions"
	"github.com/jrsteele09/gymbuddy-web/users"
	"github.com/stretchr/testify/require"
)

const testSessionID = "session-1"

type testFixture struct {
	repo  *sessions.InMemoryRepo
	store *sessions.Store
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()
	repo := sessions.NewInMemoryRepo()
	return &testFixture{repo: repo, store: sessions.NewStore(repo)}
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func TestStartFromLogin(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	t.Run("stores exactly the login fields", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"sub": float64(42)})
		session, err := f.store.StartFromLogin(ctx, testSessionID, "tina@gym.test", sessions.LoginResult{
			Token:     token,
			Role:      "Trainer",
			TrainerID: "7",
		})
		require.NoError(t, err)
		require.Equal(t, "tina@gym.test", session.Email)
		require.Equal(t, token, session.Token)
		require.Equal(t, users.RoleTrainer, session.Role)
		require.Equal(t, "42", session.ID)
		require.Equal(t, "7", session.TrainerID)
		require.True(t, session.Authenticated())
	})

	t.Run("clears ids the new login does not carry", func(t *testing.T) {
		_, err := f.store.Set(ctx, testSessionID, sessions.Fields{AdminID: utils.Ptr("99")})
		require.NoError(t, err)

		session, err := f.store.StartFromLogin(ctx, testSessionID, "mo@gym.test", sessions.LoginResult{
			Token:    "opaque-token",
			Role:     "Member",
			MemberID: "3",
		})
		require.NoError(t, err)

		stored, err := f.store.Get(ctx, testSessionID)
		require.NoError(t, err)
		require.Equal(t, session, stored)
		require.Equal(t, "3", stored.MemberID)
		require.Empty(t, stored.TrainerID)
		require.Empty(t, stored.AdminID)
		require.Empty(t, stored.ID, "an opaque token has no subject")
	})

	t.Run("rejects an unknown role and keeps the previous session", func(t *testing.T) {
		_, err := f.store.StartFromLogin(ctx, testSessionID, "x@gym.test", sessions.LoginResult{Token: "t", Role: "Coach"})
		require.ErrorIs(t, err, errors.ErrUnknownRole)

		stored, err := f.store.Get(ctx, testSessionID)
		require.NoError(t, err)
		require.Equal(t, "mo@gym.test", stored.Email)
	})

	t.Run("rejects a missing token", func(t *testing.T) {
		_, err := f.store.StartFromLogin(ctx, "other", "x@gym.test", sessions.LoginResult{Role: "Admin"})
		require.ErrorIs(t, err, errors.ErrNotAuthenticated)
	})
}

func TestSet(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	_, err := f.store.StartFromLogin(ctx, testSessionID, "ann@gym.test", sessions.LoginResult{Token: "t", Role: "Admin", AdminID: "1"})
	require.NoError(t, err)

	t.Run("overwrites only the named fields", func(t *testing.T) {
		session, err := f.store.Set(ctx, testSessionID, sessions.Fields{Email: utils.Ptr("anne@gym.test"), Role: utils.Ptr("trainer")})
		require.NoError(t, err)
		require.Equal(t, "anne@gym.test", session.Email)
		require.Equal(t, users.RoleTrainer, session.Role)
		require.Equal(t, "t", session.Token)
		require.Equal(t, "1", session.AdminID)
	})

	t.Run("unknown role leaves the session untouched", func(t *testing.T) {
		_, err := f.store.Set(ctx, testSessionID, sessions.Fields{Email: utils.Ptr("changed@gym.test"), Role: utils.Ptr("Coach")})
		require.ErrorIs(t, err, errors.ErrUnknownRole)

		stored, err := f.store.Get(ctx, testSessionID)
		require.NoError(t, err)
		require.Equal(t, "anne@gym.test", stored.Email)
	})

	t.Run("empty role clears authentication", func(t *testing.T) {
		session, err := f.store.Set(ctx, testSessionID, sessions.Fields{Role: utils.Ptr("")})
		require.NoError(t, err)
		require.False(t, session.Authenticated())
	})

	t.Run("creates a session when none exists", func(t *testing.T) {
		session, err := f.store.Set(ctx, "fresh", sessions.Fields{Email: utils.Ptr("new@gym.test")})
		require.NoError(t, err)
		require.Equal(t, "new@gym.test", session.Email)
		require.False(t, session.CreatedAt.IsZero())
	})
}

func TestClear(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	_, err := f.store.StartFromLogin(ctx, testSessionID, "mo@gym.test", sessions.LoginResult{Token: "t", Role: "Member", MemberID: "3"})
	require.NoError(t, err)

	require.NoError(t, f.store.Clear(ctx, testSessionID))
	_, err = f.store.Get(ctx, testSessionID)
	require.ErrorIs(t, err, errors.ErrSessionNotFound)

	require.NoError(t, f.store.Clear(ctx, testSessionID), "clearing twice is fine")
}

func TestInMemoryRepoRequiresID(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	require.Error(t, f.repo.Upsert(ctx, "", sessions.Session{}))
	_, err := f.repo.Get(ctx, "")
	require.Error(t, err)
	require.Error(t, f.repo.Delete(ctx, ""))
}

func TestSubjectFromToken(t *testing.T) {
	require.Equal(t, "user-1", sessions.SubjectFromToken(signedToken(t, jwt.MapClaims{"sub": "user-1"})))
	require.Equal(t, "5", sessions.SubjectFromToken(signedToken(t, jwt.MapClaims{"sub": float64(5)})))
	require.Empty(t, sessions.SubjectFromToken(signedToken(t, jwt.MapClaims{"role": "Admin"})))
	require.Empty(t, sessions.SubjectFromToken("not-a-jwt"))
}
