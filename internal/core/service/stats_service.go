package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/workpulse/attendance-system/internal/core/domain"
	"github.com/workpulse/attendance-system/internal/core/ports"
)

// StatsService derives dashboard aggregates from the two ledgers. It holds no
// state of its own; every value is recomputed per request.
type StatsService struct {
	records ports.AttendanceRepository
	leaves  ports.LeaveRepository
	users   ports.UserRepository
	log     zerolog.Logger
}

func NewStatsService(records ports.AttendanceRepository, leaves ports.LeaveRepository, users ports.UserRepository, log zerolog.Logger) *StatsService {
	return &StatsService{records: records, leaves: leaves, users: users, log: log}
}

// EmployeeMonthlyStats summarises the user's current calendar month: days
// worked from the attendance ledger, leave usage and the remaining balance
// from the leave ledger.
func (s *StatsService) EmployeeMonthlyStats(ctx context.Context, userID string, now time.Time) (*ports.EmployeeMonthlyStats, error) {
	from, to := domain.MonthWindowFor(now)

	daysWorked, err := s.records.CountClockedInDays(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("employee stats: %w", err)
	}

	approved, err := s.leaves.ListStartingIn(ctx, userID, []domain.LeaveStatus{domain.LeaveApproved}, from, to)
	if err != nil {
		return nil, fmt.Errorf("employee stats: %w", err)
	}
	pending, err := s.leaves.ListStartingIn(ctx, userID, []domain.LeaveStatus{domain.LeavePending}, from, to)
	if err != nil {
		return nil, fmt.Errorf("employee stats: %w", err)
	}

	approvedDays := 0
	for _, l := range approved {
		approvedDays += l.DaySpan()
	}
	pendingDays := 0
	for _, l := range pending {
		pendingDays += l.DaySpan()
	}

	used := approvedDays + pendingDays
	balance := domain.MaxLeaveDaysPerMonth - used
	if balance < 0 {
		balance = 0
	}

	return &ports.EmployeeMonthlyStats{
		DaysWorkedThisMonth:     daysWorked,
		ApprovedLeavesThisMonth: len(approved),
		PendingLeavesThisMonth:  len(pending),
		TotalApprovedLeaveDays:  approvedDays,
		TotalPendingLeaveDays:   pendingDays,
		TotalLeaveDaysUsed:      used,
		LeaveBalance:            balance,
		MaxLeavesPerMonth:       domain.MaxLeaveDaysPerMonth,
	}, nil
}

// OrgDailySnapshot partitions the employee directory into present and absent
// for the given day and counts Pending requests org-wide. Present and absent
// are disjoint and together cover every employee.
func (s *StatsService) OrgDailySnapshot(ctx context.Context, now time.Time) (*ports.OrgDailySnapshot, error) {
	day := domain.StartOfDayUTC(now)

	employees, err := s.users.ListByRole(ctx, domain.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("org snapshot: %w", err)
	}

	presentIDs, err := s.records.PresentUserIDs(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("org snapshot: %w", err)
	}
	present := make(map[string]struct{}, len(presentIDs))
	for _, id := range presentIDs {
		present[id] = struct{}{}
	}

	absent := make([]domain.Identity, 0, len(employees))
	for _, e := range employees {
		if _, ok := present[e.ID]; !ok {
			absent = append(absent, e.Identity())
		}
	}

	pendingCount, err := s.leaves.CountByStatus(ctx, domain.LeavePending)
	if err != nil {
		return nil, fmt.Errorf("org snapshot: %w", err)
	}

	return &ports.OrgDailySnapshot{
		AbsentToday:        absent,
		PendingLeavesCount: pendingCount,
	}, nil
}
