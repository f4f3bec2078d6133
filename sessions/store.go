package sessions

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/gymbuddy-web/internal/errors"
	"github.com/jrsteele09/gymbuddy-web/internal/utils"
	"github.com/jrsteele09/gymbuddy-web/users"
)

// Store is the only reader and writer of sessions. Concurrent writes to one session
// are not coordinated: the last write wins.
type Store struct {
	repo Repo
	now  func() time.Time
}

func NewStore(repo Repo) *Store {
	return &Store{repo: repo, now: time.Now}
}

// Get returns the session for sessionID, or errors.ErrSessionNotFound
func (s *Store) Get(ctx context.Context, sessionID string) (Session, error) {
	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return Session{}, errors.Wrapf(err, "[sessions Get]")
	}
	return session, nil
}

// Set overwrites the named fields, creating the session if needed. A role must name a known role;
// an empty role clears it. Tokens are stored as given.
func (s *Store) Set(ctx context.Context, sessionID string, fields Fields) (Session, error) {
	session, err := s.repo.Get(ctx, sessionID)
	if err != nil && !errors.Is(err, errors.ErrSessionNotFound) {
		return Session{}, errors.Wrapf(err, "[sessions Set]")
	}

	if fields.Role != nil {
		role := users.Role("")
		if *fields.Role != "" {
			if role, err = users.ParseRole(*fields.Role); err != nil {
				return Session{}, errors.Wrapf(err, "[sessions Set]")
			}
		}
		session.Role = role
	}
	assign(&session.Email, fields.Email)
	assign(&session.Token, fields.Token)
	assign(&session.ID, fields.ID)
	assign(&session.MemberID, fields.MemberID)
	assign(&session.TrainerID, fields.TrainerID)
	assign(&session.AdminID, fields.AdminID)
	if session.CreatedAt.IsZero() {
		session.CreatedAt = s.now()
	}

	if err := s.repo.Upsert(ctx, sessionID, session); err != nil {
		return Session{}, errors.Wrapf(err, "[sessions Set]")
	}
	return session, nil
}

func assign(dst *string, src *string) {
	if src != nil {
		*dst = utils.Value(src)
	}
}

// Clear removes every field of the session
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return errors.Wrapf(err, "[sessions Clear]")
	}
	return nil
}

// StartFromLogin replaces the session with the login result. Role-specific ids missing from the
// result are cleared so nothing carries over from an earlier login on the same browser.
func (s *Store) StartFromLogin(ctx context.Context, sessionID, email string, login LoginResult) (Session, error) {
	if login.Token == "" {
		return Session{}, errors.Wrapf(errors.ErrNotAuthenticated, "[sessions StartFromLogin] no access token")
	}
	role, err := users.ParseRole(login.Role)
	if err != nil {
		return Session{}, errors.Wrapf(err, "[sessions StartFromLogin]")
	}

	session := Session{
		Email:     email,
		Token:     login.Token,
		Role:      role,
		ID:        SubjectFromToken(login.Token),
		MemberID:  login.MemberID,
		TrainerID: login.TrainerID,
		AdminID:   login.AdminID,
		CreatedAt: s.now(),
	}
	if err := s.repo.Upsert(ctx, sessionID, session); err != nil {
		return Session{}, errors.Wrapf(err, "[sessions StartFromLogin]")
	}
	return session, nil
}

// SubjectFromToken returns the unverified "sub" claim of a JWT access token, or "" when the token
// is not a JWT or has no subject. The signature and expiry are not checked.
func SubjectFromToken(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	switch sub := claims["sub"].(type) {
	case string:
		return sub
	case float64:
		return strconv.FormatFloat(sub, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(sub)
	}
}
