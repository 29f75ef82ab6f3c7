package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/GriffinCanCode/fileengine/internal/shared/id"
)

// Role is the authorization class of a session.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole converts a stored role name into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

func (r Role) String() string { return string(r) }

// Session is the authenticated identity an engine runs on behalf of.
// It is created once at login and never mutated afterwards.
type Session struct {
	ID        id.SessionID `json:"id"`
	User      string       `json:"user"`
	Role      Role         `json:"role"`
	StartedAt time.Time    `json:"started_at"`
}

// NewSession creates a session for an already-authenticated user.
func NewSession(user string, role Role) Session {
	return Session{
		ID:        id.NewSessionID(),
		User:      user,
		Role:      role,
		StartedAt: time.Now(),
	}
}

// IsAdmin reports whether the session carries the admin role.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
