package session

// Role is the closed set of user roles the backend can resolve an access
// key to. Using a dedicated type (instead of raw strings) forces every
// branch on role to handle the full set.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleInspector Role = "inspector"
	RoleReporter  Role = "reporter"
)

// ParseRole maps a role string coming from the backend or from a persisted
// session onto the closed set. Unknown values map to the zero Role, which
// fails Valid.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleInspector, RoleReporter:
		return Role(s)
	default:
		return ""
	}
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	return ParseRole(string(r)) != ""
}

// Home returns the landing path for a role.
func (r Role) Home() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleInspector:
		return "/inspector"
	case RoleReporter:
		return "/reporter"
	default:
		return "/login"
	}
}

// Label returns the role's display name.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleInspector:
		return "Inspector"
	case RoleReporter:
		return "Reporter"
	default:
		return "Unknown"
	}
}
