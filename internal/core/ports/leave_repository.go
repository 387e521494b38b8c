package ports

import (
	"context"
	"time"

	"github.com/workpulse/attendance-system/internal/core/domain"
)

// LeaveRepository defines persistence for the leave ledger.
type LeaveRepository interface {
	Create(ctx context.Context, leave *domain.LeaveRequest) (*domain.LeaveRequest, error)
	FindByID(ctx context.Context, id string) (*domain.LeaveRequest, error)
	// ListForUser returns the user's requests, newest first.
	ListForUser(ctx context.Context, userID string) ([]*domain.LeaveRequest, error)
	// ListByStatus returns requests org-wide, newest first. An empty status
	// returns all requests.
	ListByStatus(ctx context.Context, status domain.LeaveStatus) ([]*domain.LeaveRequest, error)
	// ListStartingIn returns the user's requests in any of the given statuses
	// whose start date falls inside [from, to).
	ListStartingIn(ctx context.Context, userID string, statuses []domain.LeaveStatus, from, to time.Time) ([]*domain.LeaveRequest, error)
	// DecidePending atomically sets the status of a still-Pending request.
	// domain.ErrLeaveNotFound is returned when no Pending request with the
	// given id exists; callers distinguish missing from already-decided.
	DecidePending(ctx context.Context, id string, status domain.LeaveStatus, now time.Time) (*domain.LeaveRequest, error)
	CountByStatus(ctx context.Context, status domain.LeaveStatus) (int64, error)
}
