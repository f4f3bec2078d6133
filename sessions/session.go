// Package sessions holds the signed-in state of a browser: the API token, the role and the
// role-specific ids returned at login.
package sessions

import (
	"time"

	"github.com/jrsteele09/gymbuddy-web/users"
)

type Session struct {
	Email     string     `json:"email"`
	Token     string     `json:"token"`
	Role      users.Role `json:"role"`
	ID        string     `json:"id,omitempty"`
	MemberID  string     `json:"member_id,omitempty"`
	TrainerID string     `json:"trainer_id,omitempty"`
	AdminID   string     `json:"admin_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Authenticated reports whether the session carries both a token and a role.
// The token is never checked for expiry; the API rejects stale tokens itself.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.Role != ""
}

// Fields names the session fields to overwrite. Nil fields are left as they are.
type Fields struct {
	Email     *string
	Token     *string
	Role      *string
	ID        *string
	MemberID  *string
	TrainerID *string
	AdminID   *string
}

// LoginResult is what a successful login hands to the session
type LoginResult struct {
	Token     string
	Role      string
	MemberID  string
	TrainerID string
	AdminID   string
}
