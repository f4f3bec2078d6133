package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/gymbuddy-web/gymapi"
	"github.com/jrsteele09/gymbuddy-web/internal/utils"
	"github.com/rs/zerolog/log"
)

// WorkoutPlanPageData holds the create-plan form state
type WorkoutPlanPageData struct {
	Error       string
	Success     string
	Name        string
	Description string
}

func (s *Server) WorkoutPlanGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, "create_workout.html", "Create Workout Plan", WorkoutPlanPageData{})
	}
}

// WorkoutPlanPostHandler creates a plan owned by the session's trainer id
func (s *Server) WorkoutPlanPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		ctx := r.Context()
		session := sessionFromContext(ctx)
		data := WorkoutPlanPageData{
			Name:        strings.TrimSpace(r.FormValue("name")),
			Description: strings.TrimSpace(r.FormValue("description")),
		}

		resp, err := s.api.CreateWorkoutPlan(ctx, session.Token, gymapi.CreateWorkoutPlanRequest{
			Name:        data.Name,
			Description: data.Description,
			TrainerID:   session.TrainerID,
		})
		if err != nil {
			log.Err(err).Msg("Error creating workout plan")
			data.Error = utils.FirstNonEmpty(gymapi.Message(err), "Error creating workout plan. Please try again.")
			s.render(w, r, http.StatusUnprocessableEntity, "create_workout.html", "Create Workout Plan", data)
			return
		}

		data = WorkoutPlanPageData{Success: utils.FirstNonEmpty(resp.Message, "Workout plan created successfully!")}
		s.render(w, r, http.StatusOK, "create_workout.html", "Create Workout Plan", data)
	}
}
