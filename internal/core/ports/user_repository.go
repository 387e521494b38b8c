package ports

import (
	"context"

	"github.com/workpulse/attendance-system/internal/core/domain"
)

// UserRepository defines persistence for the identity directory.
type UserRepository interface {
	// Create inserts a new user. A case-insensitive duplicate email surfaces
	// as domain.ErrEmailExists (backed by a unique index on the lowercased
	// email).
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByEmailOrEmployeeID resolves a login identifier: it matches either
	// the lowercased email or the uppercased human-readable employee ID.
	FindByEmailOrEmployeeID(ctx context.Context, identifier string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users for the given IDs keyed by ID. Unknown IDs
	// are simply absent from the result.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	ListByRole(ctx context.Context, role string) ([]*domain.User, error)
}

// CounterRepository mints monotonically increasing sequence values. Next must
// be atomic at the storage level so concurrent registrations never collide.
type CounterRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}
