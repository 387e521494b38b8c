package ports

import (
	"context"
	"time"

	"github.com/workpulse/attendance-system/internal/core/domain"
)

// EmployeeMonthlyStats is the per-employee dashboard for one calendar month.
// Every field is recomputed from the two ledgers; nothing here is stored.
type EmployeeMonthlyStats struct {
	DaysWorkedThisMonth     int64
	ApprovedLeavesThisMonth int
	PendingLeavesThisMonth  int
	TotalApprovedLeaveDays  int
	TotalPendingLeaveDays   int
	TotalLeaveDaysUsed      int
	LeaveBalance            int
	MaxLeavesPerMonth       int
}

// OrgDailySnapshot is the admin dashboard for one day.
type OrgDailySnapshot struct {
	AbsentToday        []domain.Identity
	PendingLeavesCount int64
}

// StatsService combines the attendance and leave ledgers into read-only
// aggregates.
type StatsService interface {
	EmployeeMonthlyStats(ctx context.Context, userID string, now time.Time) (*EmployeeMonthlyStats, error)
	OrgDailySnapshot(ctx context.Context, now time.Time) (*OrgDailySnapshot, error)
}
