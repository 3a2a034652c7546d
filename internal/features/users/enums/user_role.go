package users_enums

type UserRole string

const (
	UserRoleAdmin       UserRole = "ADMIN"
	UserRoleClientAdmin UserRole = "CLIENT_ADMIN"
	UserRoleClientUser  UserRole = "CLIENT_USER"
)

// IsValid validates the UserRole
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleClientAdmin, UserRoleClientUser:
		return true
	default:
		return false
	}
}
