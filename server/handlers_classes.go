package server

import (
	"context"
	"net/http"
	"time"

	"github.com/jrsteele09/gymbuddy-web/gymapi"
	"github.com/jrsteele09/gymbuddy-web/internal/errors"
	"github.com/jrsteele09/gymbuddy-web/internal/utils"
	"github.com/jrsteele09/gymbuddy-web/sessions"
	"github.com/rs/zerolog/log"
)

// datetime-local input layouts, with and without seconds
var bookingTimeLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05"}

// ClassSchedulePageData holds the bookable classes, the member's bookings and the booking form state
type ClassSchedulePageData struct {
	Error     string
	Classes   []gymapi.Class
	Bookings  []gymapi.Booking
	ClassID   string
	StartTime string
	EndTime   string
}

func (s *Server) ClassScheduleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		data := s.loadClassSchedule(ctx, sessionFromContext(ctx))
		s.render(w, r, http.StatusOK, "class_schedule.html", "Class Scheduling", data)
	}
}

func (s *Server) loadClassSchedule(ctx context.Context, session sessions.Session) ClassSchedulePageData {
	var data ClassSchedulePageData

	classes, err := s.api.ListClasses(ctx, session.Token)
	if err != nil {
		log.Err(err).Msg("Failed to fetch classes")
		data.Error = "Failed to fetch classes. Please try again."
	}
	data.Classes = classes

	if session.MemberID == "" {
		data.Error = "Member ID not found. Please log in again."
		return data
	}
	bookings, err := s.api.ListBookings(ctx, session.Token, gymapi.BookingFilter{MemberID: session.MemberID})
	if err != nil {
		log.Err(err).Msg("Failed to fetch booked classes")
		data.Error = "Failed to fetch booked classes. Please try again."
	}
	data.Bookings = bookings
	return data
}

type bookingForm struct {
	ClassID   string
	StartTime string
	EndTime   string
}

// validate checks the form without calling the API
func (f bookingForm) validate() error {
	if f.ClassID == "" || f.StartTime == "" || f.EndTime == "" {
		return errors.Wrapf(errors.ErrMissingField, "class, start time and end time")
	}
	start, err := parseBookingTime(f.StartTime)
	if err != nil {
		return err
	}
	end, err := parseBookingTime(f.EndTime)
	if err != nil {
		return err
	}
	if !start.Before(end) {
		return errors.ErrInvalidBookingWindow
	}
	return nil
}

func parseBookingTime(value string) (time.Time, error) {
	for _, layout := range bookingTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Wrapf(errors.ErrMissingField, "invalid time %q", value)
}

// classTrainer returns the trainer id of the class with id.
func classTrainer(classes []gymapi.Class, id string) (string, error) {
	for _, c := range classes {
		if c.ID.String() != id {
			continue
		}
		if c.TrainerID == "" {
			return "", errors.ErrTrainerNotFound
		}
		return c.TrainerID.String(), nil
	}
	return "", errors.ErrClassNotFound
}

// BookClassHandler validates the booking form, resolves the class trainer and books the class
func (s *Server) BookClassHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		ctx := r.Context()
		session := sessionFromContext(ctx)
		form := bookingForm{
			ClassID:   r.FormValue("class_id"),
			StartTime: r.FormValue("start_time"),
			EndTime:   r.FormValue("end_time"),
		}

		fail := func(msg string) {
			data := s.loadClassSchedule(ctx, session)
			data.Error = msg
			data.ClassID, data.StartTime, data.EndTime = form.ClassID, form.StartTime, form.EndTime
			s.render(w, r, http.StatusUnprocessableEntity, "class_schedule.html", "Class Scheduling", data)
		}

		if err := form.validate(); err != nil {
			if errors.Is(err, errors.ErrInvalidBookingWindow) {
				fail("Start time must be before end time.")
				return
			}
			fail("Please select a class and provide start/end times.")
			return
		}

		classes, err := s.api.ListClasses(ctx, session.Token)
		if err != nil {
			log.Err(err).Msg("Failed to fetch classes")
			fail("Failed to fetch classes. Please try again.")
			return
		}
		trainerID, err := classTrainer(classes, form.ClassID)
		switch {
		case errors.Is(err, errors.ErrTrainerNotFound):
			fail("Trainer not found for the selected class.")
			return
		case err != nil:
			fail("Class not found.")
			return
		}

		resp, err := s.api.BookClass(ctx, session.Token, gymapi.BookClassRequest{
			ClassID:   form.ClassID,
			TrainerID: trainerID,
			StartTime: form.StartTime,
			EndTime:   form.EndTime,
		})
		if err != nil {
			log.Err(err).Str("class_id", form.ClassID).Msg("Failed to book class")
			msg := utils.FirstNonEmpty(gymapi.Message(err), "Failed to book class. Please try again.")
			fail(msg)
			return
		}
		if !resp.Success {
			msg := utils.FirstNonEmpty(resp.Message, "Unknown error occurred while booking.")
			fail(msg)
			return
		}

		redirectWithMessage(w, r, RouteClassSchedule, "Class booked successfully!")
	}
}

// ClassesPageData lists every class
type ClassesPageData struct {
	Error   string
	Classes []gymapi.Class
}

func (s *Server) ClassesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var data ClassesPageData
		classes, err := s.api.ListClasses(ctx, sessionFromContext(ctx).Token)
		if err != nil {
			log.Err(err).Msg("Failed to fetch classes")
			data.Error = "Failed to fetch classes. Please try again later."
		}
		data.Classes = classes
		s.render(w, r, http.StatusOK, "classes.html", "Classes", data)
	}
}
