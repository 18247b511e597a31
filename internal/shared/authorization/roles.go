package authorization

import "helpdesk/internal/shared/constants"

type UserRole string

const (
	RoleUser     UserRole = constants.RoleUser
	RoleOperator UserRole = constants.RoleOperator
	RoleAdmin    UserRole = constants.RoleAdmin
)

func (r UserRole) String() string {
	return string(r)
}

// IsOperator reports whether the role may act on any ticket's conversation.
// Admins are operators with extra privileges elsewhere in the system.
func (r UserRole) IsOperator() bool {
	return r == RoleOperator || r == RoleAdmin
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	return r == RoleUser || r == RoleOperator || r == RoleAdmin
}

func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleUser
}
