package identity

// Role represents the access level of a user
type Role string

const (
	RoleShopper Role = "shopper"
	RoleAdmin   Role = "admin"
)

// IsValid returns true if the role is a known value
func (r Role) IsValid() bool {
	switch r {
	case RoleShopper, RoleAdmin:
		return true
	}
	return false
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// IsAdmin returns true for the admin role
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
