package users

import (
	"strings"

	"github.com/jrsteele09/gymbuddy-web/internal/errors"
)

// Role is the role the GymBuddy API assigns to an account at login
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleTrainer Role = "Trainer"
	RoleMember  Role = "Member"
)

// Roles lists every role in display order
func Roles() []Role {
	return []Role{RoleAdmin, RoleTrainer, RoleMember}
}

// ParseRole maps a role name to a Role, ignoring case and surrounding space.
// "User", the sign-up label for role id 1, is accepted as Member.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "trainer":
		return RoleTrainer, nil
	case "member", "user":
		return RoleMember, nil
	}
	return "", errors.Wrapf(errors.ErrUnknownRole, "[users ParseRole] %q", s)
}

func (r Role) String() string {
	return string(r)
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleTrainer || r == RoleMember
}

// IsTrainer reports whether the dashboard shows the class management forms and trainer data
func (r Role) IsTrainer() bool {
	return r == RoleTrainer
}

// IsMember reports whether the dashboard shows the member's own bookings
func (r Role) IsMember() bool {
	return r == RoleMember
}

// CanChangeRole reports whether the edit-account form offers a role selector
func (r Role) CanChangeRole() bool {
	return r == RoleAdmin
}

// SignupRole is an option of the sign-up form's role selector
type SignupRole struct {
	ID    string
	Label string
}

var signupRoles = []SignupRole{
	{ID: "1", Label: "User"},
	{ID: "2", Label: "Trainer"},
	{ID: "3", Label: "Admin"},
}

// SignupRoles returns the role ids accepted by the API's sign-up endpoint
func SignupRoles() []SignupRole {
	out := make([]SignupRole, len(signupRoles))
	copy(out, signupRoles)
	return out
}

// ValidSignupRoleID reports whether id is empty (server default) or one of SignupRoles
func ValidSignupRoleID(id string) bool {
	if id == "" {
		return true
	}
	for _, r := range signupRoles {
		if r.ID == id {
			return true
		}
	}
	return false
}
