package ports

import (
	"context"
	"time"

	"github.com/workpulse/attendance-system/internal/core/domain"
)

// AttendanceFilter narrows attendance listings. The month window applies only
// when both Month and Year are set; UserID empty means all users.
type AttendanceFilter struct {
	UserID string
	Month  int // 1..12
	Year   int
}

// AttendanceRepository defines persistence for the attendance ledger. The two
// write operations are single conditional writes so that concurrent calls for
// the same (user, day) race on the storage layer, never on a read-then-write.
type AttendanceRepository interface {
	// ClockIn opens the day's record, creating it when absent. A record that
	// already has a clock-in time yields domain.ErrAlreadyClockedIn.
	ClockIn(ctx context.Context, userID string, day, now time.Time) (*domain.AttendanceRecord, error)
	// ClockOut closes the day's open record. When no record with a clock-in
	// and without a clock-out exists it yields domain.ErrNoOpenSession.
	ClockOut(ctx context.Context, userID string, day, now time.Time) (*domain.AttendanceRecord, error)
	// List returns matching records sorted by date, newest first.
	List(ctx context.Context, filter AttendanceFilter) ([]*domain.AttendanceRecord, error)
	// CountClockedInDays counts records with a clock-in inside [from, to).
	CountClockedInDays(ctx context.Context, userID string, from, to time.Time) (int64, error)
	// PresentUserIDs returns the IDs of users with a clocked-in record on day.
	PresentUserIDs(ctx context.Context, day time.Time) ([]string, error)
}
