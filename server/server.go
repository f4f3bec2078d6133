package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/jrsteele09/gymbuddy-web/gymapi"
	"github.com/jrsteele09/gymbuddy-web/internal/config"
	"github.com/jrsteele09/gymbuddy-web/server/ui"
	"github.com/jrsteele09/gymbuddy-web/sessions"
	"github.com/rs/zerolog/log"
)

// GymAPI is the part of the GymBuddy API the pages use
type GymAPI interface {
	Login(ctx context.Context, email, password string) (gymapi.LoginResponse, error)
	SignUp(ctx context.Context, req gymapi.SignUpRequest) (gymapi.MessageResponse, error)
	ListClasses(ctx context.Context, token string) ([]gymapi.Class, error)
	CreateClass(ctx context.Context, token string, req gymapi.CreateClassRequest) (gymapi.Class, error)
	AssignMemberToClass(ctx context.Context, token string, req gymapi.AssignMemberRequest) (gymapi.MessageResponse, error)
	ListBookings(ctx context.Context, token string, filter gymapi.BookingFilter) ([]gymapi.Booking, error)
	BookClass(ctx context.Context, token string, req gymapi.BookClassRequest) (gymapi.BookClassResponse, error)
	ListMembers(ctx context.Context, token string) ([]gymapi.Member, error)
	DeleteMember(ctx context.Context, token, id string) error
	UpdateMember(ctx context.Context, token, id string, req gymapi.UpdateMemberRequest) error
	CreateWorkoutPlan(ctx context.Context, token string, req gymapi.CreateWorkoutPlanRequest) (gymapi.MessageResponse, error)
	ListWorkoutPlans(ctx context.Context, token string) ([]gymapi.WorkoutPlan, error)
	ListProgress(ctx context.Context, token, memberID string) ([]gymapi.ProgressLog, error)
	LogProgress(ctx context.Context, token string, entry gymapi.ProgressEntry) error
	UpdateProgress(ctx context.Context, token, id string, entry gymapi.ProgressEntry) error
}

var _ GymAPI = (*gymapi.Client)(nil)

type Server struct {
	env         string // Environment (e.g., "DEV", "PROD")
	appName     string
	mux         *http.ServeMux
	routes      []string
	config      config.Config
	api         GymAPI
	sessions    *sessions.Store
	pages       map[string]*template.Template
	csrfProtect func(http.Handler) http.Handler
}

func New(config config.Config, api GymAPI, sessionStore *sessions.Store) (*Server, error) {
	s := &Server{
		env:      config.GetEnv(),
		appName:  config.GetAppName(),
		mux:      http.NewServeMux(),
		config:   config,
		api:      api,
		sessions: sessionStore,
	}

	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse templates: %w", err)
	}
	s.pages = pages

	if config.GetCSRFEnabled() {
		key, err := config.GetCSRFKey()
		if err != nil {
			return nil, fmt.Errorf("[Server New] failed to load CSRF key: %w", err)
		}
		s.csrfProtect = csrf.Protect(
			key,
			csrf.Secure(config.GetSecureCookies()),
			csrf.Path("/"),
			csrf.TrustedOrigins(config.GetTrustedOrigins()),
			csrf.ErrorHandler(http.HandlerFunc(csrfFailureHandler)),
		)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", ui.ColouredMethod(method), path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
