package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/gymbuddy-web/gymapi"
	"github.com/jrsteele09/gymbuddy-web/internal/errors"
	"github.com/jrsteele09/gymbuddy-web/internal/utils"
	"github.com/jrsteele09/gymbuddy-web/sessions"
	"github.com/jrsteele09/gymbuddy-web/users"
	"github.com/rs/zerolog/log"
)

const (
	msgGenericFailure = "An error occurred. Please try again later."
	msgLoginRequired  = "Please enter both email and password."
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	Email string // Preserve email on error
}

// LoginPageHandler displays the login page (GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("email")
		if email == "" {
			email = sessionFromContext(r.Context()).Email
		}
		s.render(w, r, http.StatusOK, "login.html", "Login", LoginPageData{Email: email})
	}
}

// LoginSubmissionHandler exchanges the credentials for a token and starts a new session
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		ctx := r.Context()
		email := strings.TrimSpace(r.FormValue("email"))
		password := r.FormValue("password")
		loginPath := withQuery(RouteLogin, "email", email)

		if email == "" || password == "" {
			redirectWithError(w, r, loginPath, msgLoginRequired)
			return
		}

		resp, err := s.api.Login(ctx, email, password)
		if err != nil {
			if errors.Is(err, errors.ErrUnexpectedResponse) {
				log.Warn().Err(err).Str("email", email).Msg("Login response has no access token")
				redirectWithError(w, r, loginPath, "Unexpected response structure.")
				return
			}
			if gymapi.StatusCode(err) == 0 {
				log.Err(err).Str("email", email).Msg("Login request failed")
				redirectWithError(w, r, loginPath, msgGenericFailure)
				return
			}
			msg := utils.FirstNonEmpty(gymapi.Message(err), "Invalid credentials. Please try again.")
			redirectWithError(w, r, loginPath, msg)
			return
		}

		previousID := sessionIDFromContext(ctx)
		sessionID := newSessionID()
		session, err := s.sessions.StartFromLogin(ctx, sessionID, email, sessions.LoginResult{
			Token:     resp.AccessToken,
			Role:      resp.Role,
			MemberID:  resp.MemberID.String(),
			TrainerID: resp.TrainerID.String(),
			AdminID:   resp.AdminID.String(),
		})
		if err != nil {
			if errors.Is(err, errors.ErrUnknownRole) {
				log.Warn().Str("email", email).Str("role", resp.Role).Msg("Login returned an unrecognized role")
				redirectWithError(w, r, loginPath, "Unrecognized role in login response.")
				return
			}
			log.Err(err).Msg("Failed to start session")
			redirectWithError(w, r, loginPath, msgGenericFailure)
			return
		}
		if previousID != "" {
			if err := s.sessions.Clear(ctx, previousID); err != nil {
				log.Err(err).Msg("Failed to clear previous session")
			}
		}

		s.SetSessionCookie(w, r, sessionID, s.sessionMaxAgeSeconds())
		log.Info().Str("email", email).Str("role", session.Role.String()).Msg("User logged in")

		msg := utils.FirstNonEmpty(resp.Message, "Login successful!")
		redirectWithMessage(w, r, RouteDashboard, msg)
	}
}

// SignupPageData contains data for rendering the sign-up page
type SignupPageData struct {
	Error  string
	Name   string
	Email  string
	RoleID string
	Roles  []users.SignupRole
}

func (s *Server) SignupGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, "register.html", "Sign Up", SignupPageData{Roles: users.SignupRoles()})
	}
}

func (s *Server) SignupPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		req := gymapi.SignUpRequest{
			Name:     strings.TrimSpace(r.FormValue("name")),
			Email:    strings.TrimSpace(r.FormValue("email")),
			Password: r.FormValue("password"),
			RoleID:   r.FormValue("role_id"),
		}
		data := SignupPageData{Name: req.Name, Email: req.Email, RoleID: req.RoleID, Roles: users.SignupRoles()}

		switch {
		case req.Name == "" || req.Email == "" || req.Password == "":
			data.Error = "Please fill in your name, email and password."
		case !users.ValidSignupRoleID(req.RoleID):
			data.Error = "Please choose a valid role."
		}
		if data.Error != "" {
			s.render(w, r, http.StatusUnprocessableEntity, "register.html", "Sign Up", data)
			return
		}

		resp, err := s.api.SignUp(r.Context(), req)
		if err != nil {
			data.Error = gymapi.Message(err)
			if data.Error == "" {
				log.Err(err).Str("email", req.Email).Msg("Sign up failed")
				data.Error = "Something went wrong. Please try again."
			}
			s.render(w, r, http.StatusUnprocessableEntity, "register.html", "Sign Up", data)
			return
		}

		msg := utils.FirstNonEmpty(resp.Message, "Registration successful. Please log in.")
		redirectWithMessage(w, r, withQuery(RouteLogin, "email", req.Email), msg)
	}
}

// LogoutHandler clears the session and its cookie
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessionID := sessionIDFromContext(r.Context()); sessionID != "" {
			if err := s.sessions.Clear(r.Context(), sessionID); err != nil {
				log.Err(err).Msg("Logout: failed to clear session")
			}
		}
		s.SetSessionCookie(w, r, "", -1) // Delete cookie
		redirectWithMessage(w, r, RouteLogin, "Logged out successfully.")
	}
}
