// Package constants defines shared constant values used across layers.
package constants

// Gin context keys populated by the auth middleware.
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
)

// Role names as they appear in JWT claims and the users table.
const (
	RoleUser     = "user"
	RoleOperator = "operator"
	RoleAdmin    = "admin"
)
