package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

func (s *Server) sessionIDFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(s.config.GetSessionCookieName())
	if err != nil {
		return ""
	}
	return cookie.Value
}

// newSessionID returns a fresh cookie value. A new id is issued at every login.
func newSessionID() string {
	return uuid.NewString()
}

// SetSessionCookie sets the session cookie; a negative maxAge deletes it
func (s *Server) SetSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string, maxAge int) {
	isSecure := s.config.GetSecureCookies() || getScheme(r) == "https"

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.GetSessionCookieName(),
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

func (s *Server) sessionMaxAgeSeconds() int {
	return int(s.config.GetSessionMaxAge().Seconds())
}

// withQuery appends key=value to path, which may already carry a query
func withQuery(path, key, value string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + key + "=" + url.QueryEscape(value)
}

// redirectSuccess helper for htmx-aware success redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent) // 204 - no content, just redirect instruction
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// redirectWithError helper for htmx-aware error redirects
func redirectWithError(w http.ResponseWriter, r *http.Request, path, errorMsg string) {
	redirectSuccess(w, r, withQuery(path, "error", errorMsg))
}

// redirectWithMessage redirects and shows msg in the page's success banner
func redirectWithMessage(w http.ResponseWriter, r *http.Request, path, msg string) {
	redirectSuccess(w, r, withQuery(path, "message", msg))
}

// htmxAlert answers an htmx request with no swap and asks the page to show msg in an alert
func htmxAlert(w http.ResponseWriter, msg string) {
	trigger, _ := json.Marshal(map[string]string{"showAlert": msg})
	w.Header().Set("HX-Trigger", string(trigger))
	w.Header().Set("HX-Reswap", "none")
	w.WriteHeader(http.StatusOK)
}

// isHTMXRequest checks if the request was initiated by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
