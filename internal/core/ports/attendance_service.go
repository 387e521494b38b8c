package ports

import (
	"context"
	"time"

	"github.com/workpulse/attendance-system/internal/core/domain"
)

// AttendanceEntry is a ledger record together with its derived values.
// User is populated only on admin listings.
type AttendanceEntry struct {
	Record          *domain.AttendanceRecord
	Status          domain.AttendanceStatus
	DurationMinutes int
	User            *domain.Identity
}

// AttendanceService defines the use-case operations of the attendance ledger.
type AttendanceService interface {
	ClockIn(ctx context.Context, userID string, now time.Time) (*AttendanceEntry, error)
	ClockOut(ctx context.Context, userID string, now time.Time) (*AttendanceEntry, error)
	// ListOwn returns the caller's records, optionally windowed to a month.
	ListOwn(ctx context.Context, userID string, month, year int) ([]AttendanceEntry, error)
	// ListAll is the admin view: records across users with identity joined.
	ListAll(ctx context.Context, filter AttendanceFilter) ([]AttendanceEntry, error)
	// ListEmployees returns the directory of employee-role users.
	ListEmployees(ctx context.Context) ([]domain.Identity, error)
}
