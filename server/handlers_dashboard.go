package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/gymbuddy-web/gymapi"
	"github.com/jrsteele09/gymbuddy-web/internal/errors"
	"github.com/jrsteele09/gymbuddy-web/internal/utils"
	"github.com/jrsteele09/gymbuddy-web/sessions"
	"github.com/jrsteele09/gymbuddy-web/users"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DashboardPageData holds what the dashboard shows for the session's role
type DashboardPageData struct {
	Editing       bool
	Roles         []users.Role
	Bookings      []gymapi.Booking
	BookingsError string
	WorkoutPlans  []gymapi.WorkoutPlan
	Classes       []gymapi.Class
	Members       []gymapi.Member
}

func (s *Server) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session := sessionFromContext(ctx)
		data := DashboardPageData{
			Editing: r.URL.Query().Get("edit") == "1",
			Roles:   users.Roles(),
		}

		switch {
		case session.Role.IsTrainer():
			s.loadTrainerDashboard(ctx, session, &data)
		case session.Role.IsMember():
			s.loadBookings(ctx, session, &data)
		}

		s.render(w, r, http.StatusOK, "dashboard.html", "Dashboard", data)
	}
}

// bookingFilter narrows bookings to the session's own role-specific id
func bookingFilter(session sessions.Session) gymapi.BookingFilter {
	switch session.Role {
	case users.RoleMember:
		return gymapi.BookingFilter{MemberID: session.MemberID}
	case users.RoleTrainer:
		return gymapi.BookingFilter{TrainerID: session.TrainerID}
	}
	return gymapi.BookingFilter{}
}

func (s *Server) loadBookings(ctx context.Context, session sessions.Session, data *DashboardPageData) {
	bookings, err := s.api.ListBookings(ctx, session.Token, bookingFilter(session))
	if err != nil {
		log.Err(err).Msg("Failed to fetch booked classes")
		data.BookingsError = "Failed to fetch booked classes. Please try again."
		return
	}
	data.Bookings = bookings
}

// loadTrainerDashboard fetches the trainer's collections concurrently. Each failure is handled on its own.
func (s *Server) loadTrainerDashboard(ctx context.Context, session sessions.Session, data *DashboardPageData) {
	var g errgroup.Group
	g.Go(func() error {
		s.loadBookings(ctx, session, data)
		return nil
	})
	g.Go(func() error {
		plans, err := s.api.ListWorkoutPlans(ctx, session.Token)
		if err != nil {
			log.Err(err).Msg("Failed to fetch workout plans")
			return nil
		}
		data.WorkoutPlans = plans
		return nil
	})
	g.Go(func() error {
		classes, err := s.api.ListClasses(ctx, session.Token)
		if err != nil {
			log.Err(err).Msg("Failed to fetch classes")
			return nil
		}
		data.Classes = classes
		return nil
	})
	g.Go(func() error {
		members, err := s.api.ListMembers(ctx, session.Token)
		if err != nil {
			log.Err(err).Msg("Failed to fetch members")
			return nil
		}
		data.Members = members
		return nil
	})
	_ = g.Wait()
}

// AccountUpdateHandler edits the signed-in account's email and, for admins, its role.
// Only the session changes; the API is not called.
func (s *Server) AccountUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		ctx := r.Context()
		session := sessionFromContext(ctx)
		editPath := withQuery(RouteDashboard, "edit", "1")

		email := strings.TrimSpace(r.FormValue("email"))
		if email == "" {
			redirectWithError(w, r, editPath, "Email is required.")
			return
		}
		fields := sessions.Fields{Email: utils.Ptr(email)}
		if role := r.FormValue("role"); role != "" && session.Role.CanChangeRole() {
			fields.Role = utils.Ptr(role)
		}

		if _, err := s.sessions.Set(ctx, sessionIDFromContext(ctx), fields); err != nil {
			if errors.Is(err, errors.ErrUnknownRole) {
				redirectWithError(w, r, editPath, "Please choose a valid role.")
				return
			}
			log.Err(err).Msg("Failed to update account details")
			redirectWithError(w, r, editPath, "Failed to update account details.")
			return
		}
		redirectWithMessage(w, r, RouteDashboard, "Account details updated successfully!")
	}
}

func (s *Server) CreateClassHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		ctx := r.Context()
		req := gymapi.CreateClassRequest{
			Name:        strings.TrimSpace(r.FormValue("name")),
			Description: strings.TrimSpace(r.FormValue("description")),
		}
		if req.Name == "" {
			redirectWithError(w, r, RouteDashboard, "Please enter a class name.")
			return
		}

		if _, err := s.api.CreateClass(ctx, sessionFromContext(ctx).Token, req); err != nil {
			log.Err(err).Str("class", req.Name).Msg("Failed to create class")
			redirectWithError(w, r, RouteDashboard, "Failed to create class. Please try again.")
			return
		}
		redirectWithMessage(w, r, RouteDashboard, "Class created successfully!")
	}
}

func (s *Server) AssignMemberHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		ctx := r.Context()
		req := gymapi.AssignMemberRequest{
			MemberID: r.FormValue("member_id"),
			ClassID:  r.FormValue("class_id"),
		}
		if req.MemberID == "" || req.ClassID == "" {
			redirectWithError(w, r, RouteDashboard, "Please select both a member and a class.")
			return
		}

		resp, err := s.api.AssignMemberToClass(ctx, sessionFromContext(ctx).Token, req)
		if err != nil {
			log.Err(err).Msg("Failed to assign member to class")
			msg := utils.FirstNonEmpty(gymapi.Message(err), "Failed to assign member to class. Please try again.")
			redirectWithError(w, r, RouteDashboard, msg)
			return
		}
		msg := utils.FirstNonEmpty(resp.Message, "Member assigned to class successfully!")
		redirectWithMessage(w, r, RouteDashboard, msg)
	}
}
