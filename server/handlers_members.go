package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/gymbuddy-web/gymapi"
	"github.com/jrsteele09/gymbuddy-web/users"
	"github.com/rs/zerolog/log"
)

// MemberListPageData holds the (filtered) members and the member being edited, if any
type MemberListPageData struct {
	Error   string
	Query   string
	Members []gymapi.Member
	Editing *gymapi.Member
	Roles   []users.Role
}

// filterMembers keeps members whose name, email or role contains query, ignoring case
func filterMembers(members []gymapi.Member, query string) []gymapi.Member {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return members
	}
	var filtered []gymapi.Member
	for _, m := range members {
		if strings.Contains(strings.ToLower(m.Name), query) ||
			strings.Contains(strings.ToLower(m.Email), query) ||
			strings.Contains(strings.ToLower(m.Role.String()), query) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

func (s *Server) MemberListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		data := MemberListPageData{Query: r.URL.Query().Get("q"), Roles: users.Roles()}

		members, err := s.api.ListMembers(ctx, sessionFromContext(ctx).Token)
		if err != nil {
			if gymapi.IsForbidden(err) {
				redirectWithError(w, r, RouteDashboard, "Access denied.")
				return
			}
			log.Err(err).Msg("Failed to fetch members")
			data.Error = "Network or server error. Please try again later."
		}

		if editID := r.URL.Query().Get("edit"); editID != "" {
			for i := range members {
				if members[i].ID.String() == editID {
					data.Editing = &members[i]
					break
				}
			}
		}
		data.Members = filterMembers(members, data.Query)

		s.render(w, r, http.StatusOK, "member_list.html", "Members", data)
	}
}

// failureReason is the server's message for err, else its status text, else a generic network error
func failureReason(err error) string {
	if msg := gymapi.Message(err); msg != "" {
		return msg
	}
	if status := gymapi.StatusCode(err); status != 0 {
		return http.StatusText(status)
	}
	return "network error"
}

// DeleteMemberHandler deletes a member. htmx callers get an empty body on success, which removes
// the row, and an alert with no swap on failure.
func (s *Server) DeleteMemberHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := r.PathValue("id")

		if err := s.api.DeleteMember(ctx, sessionFromContext(ctx).Token, id); err != nil {
			log.Err(err).Str("member_id", id).Msg("Failed to delete member")
			msg := "Failed to delete member: " + failureReason(err)
			if isHTMXRequest(r) {
				htmxAlert(w, msg)
				return
			}
			redirectWithError(w, r, RouteMemberList, msg)
			return
		}

		if isHTMXRequest(r) {
			w.WriteHeader(http.StatusOK)
			return
		}
		redirectSuccess(w, r, RouteMemberList)
	}
}

func (s *Server) UpdateMemberHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		ctx := r.Context()
		id := r.PathValue("id")
		req := gymapi.UpdateMemberRequest{
			Name:  strings.TrimSpace(r.FormValue("name")),
			Email: strings.TrimSpace(r.FormValue("email")),
			Role:  r.FormValue("role"),
		}

		if err := s.api.UpdateMember(ctx, sessionFromContext(ctx).Token, id, req); err != nil {
			log.Err(err).Str("member_id", id).Msg("Failed to update member")
			msg := "Failed to update member: " + failureReason(err)
			if gymapi.IsForbidden(err) {
				msg = "Access denied. You are not authorized to update this member."
			}
			redirectWithError(w, r, withQuery(RouteMemberList, "edit", id), msg)
			return
		}
		redirectSuccess(w, r, RouteMemberList)
	}
}
