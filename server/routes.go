package server

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET /{$}", ChainMiddleware(s.HomeHandler(), s.HTMLMiddleWare()...))

	// AUTH
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteRegister, ChainMiddleware(s.SignupGetHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteRegister, ChainMiddleware(s.SignupPostHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// Pages below require a session holding a token and a role
	protected := s.HTMLMiddleWare(s.RequireSession())

	s.RegisterRouteHandler("GET "+RouteDashboard, ChainMiddleware(s.DashboardHandler(), protected...))
	s.RegisterRouteHandler("POST "+RouteDashboardAccount, ChainMiddleware(s.AccountUpdateHandler(), protected...))
	s.RegisterRouteHandler("POST "+RouteDashboardClasses, ChainMiddleware(s.CreateClassHandler(), protected...))
	s.RegisterRouteHandler("POST "+RouteDashboardAssign, ChainMiddleware(s.AssignMemberHandler(), protected...))

	s.RegisterRouteHandler("GET "+RouteClassSchedule, ChainMiddleware(s.ClassScheduleHandler(), protected...))
	s.RegisterRouteHandler("POST "+RouteClassScheduleBook, ChainMiddleware(s.BookClassHandler(), protected...))
	s.RegisterRouteHandler("GET "+RouteClasses, ChainMiddleware(s.ClassesHandler(), protected...))

	s.RegisterRouteHandler("GET "+RouteMemberList, ChainMiddleware(s.MemberListHandler(), protected...))
	s.RegisterRouteHandler("POST "+RouteMemberUpdate, ChainMiddleware(s.UpdateMemberHandler(), protected...))
	s.RegisterRouteHandler("POST "+RouteMemberDelete, ChainMiddleware(s.DeleteMemberHandler(), protected...))

	s.RegisterRouteHandler("GET "+RouteCreateWorkout, ChainMiddleware(s.WorkoutPlanGetHandler(), protected...))
	s.RegisterRouteHandler("POST "+RouteCreateWorkout, ChainMiddleware(s.WorkoutPlanPostHandler(), protected...))

	s.RegisterRouteHandler("GET "+RouteProgress, ChainMiddleware(s.ProgressHandler(), protected...))
	s.RegisterRouteHandler("GET "+RouteProgressTracker, ChainMiddleware(s.ProgressHandler(), protected...))
	s.RegisterRouteHandler("POST "+RouteProgress, ChainMiddleware(s.LogProgressHandler(), protected...))
	s.RegisterRouteHandler("POST "+RouteProgressUpdate, ChainMiddleware(s.UpdateProgressHandler(), protected...))

	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteStaticJS, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleWare()...))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.URL.Path, "/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		err := StreamFile(w, r, filePath)
		if err != nil {
			log.Warn().Str("method", r.Method).Str("path", filePath).Err(err).Msg("Static file not found")
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}
