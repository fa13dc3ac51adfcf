package permissions

import "strings"

// Role is the clinic role carried in the session token. It is a closed
// enumeration; the administrator role unlocks the full-access fast path
// and the admin-only navigation modules.
type Role string

const (
	RoleAdministrator Role = "administrador"
	RoleDentist       Role = "odontologo"
	RoleAssistant     Role = "asistente"
)

// ParseRole normalizes a raw role string from a token claim. Unknown
// values map to the empty Role, which grants nothing.
func ParseRole(raw string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleAdministrator:
		return RoleAdministrator
	case RoleDentist:
		return RoleDentist
	case RoleAssistant:
		return RoleAssistant
	}
	return ""
}

// IsAdmin reports whether the role is the administrative role.
func (r Role) IsAdmin() bool {
	return r == RoleAdministrator
}

// Valid reports whether the role is one of the known clinic roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdministrator, RoleDentist, RoleAssistant:
		return true
	}
	return false
}
