package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/suggestion-box/internal/auth"
	"github.com/spec-kit/suggestion-box/internal/domain"
	"github.com/spec-kit/suggestion-box/internal/repository"
	apperrors "github.com/spec-kit/suggestion-box/pkg/util/errorutil"
)

// UserService coordinates account management.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// UserCreateInput describes account creation payload.
type UserCreateInput struct {
	Email    string
	Name     string
	Role     domain.UserRole
	Password string
}

// UserUpdateInput carries a partial merge; nil fields are left alone.
// Suggestions keep the author name snapshotted at submission time, so a
// rename here deliberately does not ripple into existing suggestions.
type UserUpdateInput struct {
	Email    *string
	Name     *string
	Role     *domain.UserRole
	Password *string
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// Create allocates an account. LastLogin defaults to the creation time.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	email := strings.TrimSpace(input.Email)
	name := strings.TrimSpace(input.Name)
	if email == "" || name == "" {
		return nil, apperrors.NewValidationError("name and email required", nil)
	}
	if input.Password == "" {
		return nil, apperrors.NewValidationError("password required", nil)
	}
	role := input.Role
	if role == "" {
		role = domain.RoleEmployee
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("role must be admin or employee", map[string]any{"role": role})
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    now,
		LastLogin:    &now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get fetches a single account.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, userNotFound(err, id)
	}
	return user, nil
}

// List returns all accounts.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Update merges the given fields into the account.
func (s *UserService) Update(ctx context.Context, id string, input UserUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, userNotFound(err, id)
	}

	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email == "" {
			return nil, apperrors.NewValidationError("email required", nil)
		}
		if existing, err := s.users.GetByEmail(ctx, email); err == nil && existing.ID != id {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
		} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		user.Email = email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, apperrors.NewValidationError("role must be admin or employee", map[string]any{"role": *input.Role})
		}
		user.Role = *input.Role
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, userNotFound(err, id)
	}
	return user, nil
}

// Delete removes the account. Deleting an absent id is a no-op.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

func userNotFound(err error, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("user", map[string]any{"id": id})
	}
	return err
}
