package domain

import "time"

// UserRole distinguishes administrators from regular employees.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleEmployee UserRole = "employee"
)

// Valid reports whether the role is one of the enumerated values.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// User is the domain model for account holders. Emails are unique
// case-insensitively; ID is immutable after creation.
type User struct {
	ID           string
	Email        string
	Name         string
	Role         UserRole
	PasswordHash string
	CreatedAt    time.Time
	LastLogin    *time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
