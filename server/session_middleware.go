package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/gymbuddy-web/internal/errors"
	"github.com/jrsteele09/gymbuddy-web/sessions"
	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeySessionID stores the session cookie value
	ContextKeySessionID ContextKey = "session_id"
	// ContextKeySession stores the loaded sessions.Session
	ContextKeySession ContextKey = "session"
)

const msgNotLoggedIn = "You are not logged in or role information is missing."

// LoadSession puts the browser's session, if any, into the request context
func (s *Server) LoadSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var session sessions.Session
		sessionID := s.sessionIDFromCookie(r)
		if sessionID != "" {
			var err error
			session, err = s.sessions.Get(r.Context(), sessionID)
			if err != nil && !errors.Is(err, errors.ErrSessionNotFound) {
				log.Err(err).Msg("Failed to load session")
			}
		}

		ctx := context.WithValue(r.Context(), ContextKeySessionID, sessionID)
		ctx = context.WithValue(ctx, ContextKeySession, session)
		next(w, r.WithContext(ctx))
	}
}

// RequireSession redirects to the login page unless the session holds a token and a role.
// Must run after LoadSession.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !sessionFromContext(r.Context()).Authenticated() {
				redirectWithError(w, r, RouteLogin, msgNotLoggedIn)
				return
			}
			next(w, r)
		}
	}
}

func sessionFromContext(ctx context.Context) sessions.Session {
	session, _ := ctx.Value(ContextKeySession).(sessions.Session)
	return session
}

func sessionIDFromContext(ctx context.Context) string {
	sessionID, _ := ctx.Value(ContextKeySessionID).(string)
	return sessionID
}
