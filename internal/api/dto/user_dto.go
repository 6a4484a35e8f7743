package dto

import (
	"time"

	"github.com/spec-kit/suggestion-box/internal/domain"
)

// CreateUserRequest payload.
type CreateUserRequest struct {
	Email    string          `json:"email"`
	Name     string          `json:"name"`
	Role     domain.UserRole `json:"role"`
	Password string          `json:"password"`
}

// UpdateUserRequest carries a partial merge; absent fields are left alone.
type UpdateUserRequest struct {
	Email    *string          `json:"email"`
	Name     *string          `json:"name"`
	Role     *domain.UserRole `json:"role"`
	Password *string          `json:"password"`
}

// UserResponse is the account representation. The password hash never
// leaves the service.
type UserResponse struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Role      domain.UserRole `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
	LastLogin *time.Time      `json:"last_login,omitempty"`
}
