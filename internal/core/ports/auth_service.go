package ports

import (
	"context"

	"github.com/workpulse/attendance-system/internal/core/domain"
)

// RegisterInput carries a registration request into the auth service.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	// Role defaults to employee when empty.
	Role string
	// SignupKey must match the configured admin key when Role is admin.
	SignupKey string
}

// AuthResult pairs a persisted user with a freshly issued token.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthService implements registration and login for the identity directory.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	// Login accepts either an email address or a human-readable employee ID.
	Login(ctx context.Context, identifier, password string) (*AuthResult, error)
}
