package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/jrsteele09/gymbuddy-web/gymapi"
	"github.com/rs/zerolog/log"
)

// ProgressPageData holds the member's logs and the log form state
type ProgressPageData struct {
	Logs    []gymapi.ProgressLog
	Editing *gymapi.ProgressLog
}

// ProgressHandler lists the session member's progress. Failures are logged and the list stays empty.
func (s *Server) ProgressHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session := sessionFromContext(ctx)
		var data ProgressPageData

		if session.MemberID == "" {
			log.Warn().Str("email", session.Email).Msg("No member id in session, skipping progress fetch")
		} else {
			logs, err := s.api.ListProgress(ctx, session.Token, session.MemberID)
			if err != nil {
				log.Err(err).Msg("Failed to fetch progress logs")
			}
			data.Logs = logs
		}

		if editID := r.URL.Query().Get("edit"); editID != "" {
			for i := range data.Logs {
				if data.Logs[i].ID.String() == editID {
					data.Editing = &data.Logs[i]
					break
				}
			}
		}

		s.render(w, r, http.StatusOK, "progress.html", "Progress Tracking", data)
	}
}

func parseProgressEntry(r *http.Request) (gymapi.ProgressEntry, error) {
	weight, err := strconv.ParseFloat(r.FormValue("weight"), 64)
	if err != nil {
		return gymapi.ProgressEntry{}, fmt.Errorf("weight: %w", err)
	}
	reps, err := strconv.Atoi(r.FormValue("reps"))
	if err != nil {
		return gymapi.ProgressEntry{}, fmt.Errorf("reps: %w", err)
	}
	sets, err := strconv.Atoi(r.FormValue("sets"))
	if err != nil {
		return gymapi.ProgressEntry{}, fmt.Errorf("sets: %w", err)
	}
	return gymapi.ProgressEntry{Weight: weight, Reps: reps, Sets: sets}, nil
}

func (s *Server) LogProgressHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		entry, err := parseProgressEntry(r)
		if err != nil {
			log.Err(err).Msg("Invalid progress entry")
			redirectSuccess(w, r, RouteProgress)
			return
		}
		if err := s.api.LogProgress(ctx, sessionFromContext(ctx).Token, entry); err != nil {
			log.Err(err).Msg("Error logging progress")
		}
		redirectSuccess(w, r, RouteProgress)
	}
}

func (s *Server) UpdateProgressHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := r.PathValue("id")
		entry, err := parseProgressEntry(r)
		if err != nil {
			log.Err(err).Str("progress_id", id).Msg("Invalid progress entry")
			redirectSuccess(w, r, withQuery(RouteProgress, "edit", id))
			return
		}
		if err := s.api.UpdateProgress(ctx, sessionFromContext(ctx).Token, id, entry); err != nil {
			log.Err(err).Str("progress_id", id).Msg("Error updating progress")
		}
		redirectSuccess(w, r, RouteProgress)
	}
}
