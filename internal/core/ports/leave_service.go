package ports

import (
	"context"
	"time"

	"github.com/workpulse/attendance-system/internal/core/domain"
)

// ApplyLeaveInput carries a leave application into the service.
type ApplyLeaveInput struct {
	UserID    string
	StartDate time.Time
	EndDate   time.Time
	Reason    string
}

// ApplyLeaveResult is returned on a successful application. LeaveBalance is
// the remaining quota for the start date's month after this request.
type ApplyLeaveResult struct {
	Leave        *domain.LeaveRequest
	LeaveBalance int
}

// LeaveEntry joins a request with its owner's identity for admin listings.
type LeaveEntry struct {
	Leave *domain.LeaveRequest
	User  *domain.Identity
}

// LeaveService defines the use-case operations of the leave ledger.
type LeaveService interface {
	// Apply validates the request and enforces the monthly quota, anchored to
	// the start date's calendar month.
	Apply(ctx context.Context, in ApplyLeaveInput, now time.Time) (*ApplyLeaveResult, error)
	// Decide resolves a Pending request. Deciding an already-terminal request
	// yields domain.ErrAlreadyDecided.
	Decide(ctx context.Context, id string, status domain.LeaveStatus, now time.Time) (*domain.LeaveRequest, error)
	ListOwn(ctx context.Context, userID string) ([]*domain.LeaveRequest, error)
	ListAll(ctx context.Context, status domain.LeaveStatus) ([]LeaveEntry, error)
}
