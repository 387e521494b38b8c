package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/workpulse/attendance-system/internal/core/domain"
	"github.com/workpulse/attendance-system/internal/core/ports"
)

// quotaStatuses are the request states charged against the monthly quota.
var quotaStatuses = []domain.LeaveStatus{domain.LeavePending, domain.LeaveApproved}

// LeaveService implements the leave ledger use cases and the quota rule.
type LeaveService struct {
	leaves ports.LeaveRepository
	users  ports.UserRepository
	log    zerolog.Logger
}

func NewLeaveService(leaves ports.LeaveRepository, users ports.UserRepository, log zerolog.Logger) *LeaveService {
	return &LeaveService{leaves: leaves, users: users, log: log}
}

// Apply validates the request, charges it against the monthly quota of the
// start date's month, and persists it as Pending. The quota counts the day
// spans of the user's Pending and Approved requests whose start date falls in
// that month; a request spanning a month boundary is charged wholly to its
// start month.
func (s *LeaveService) Apply(ctx context.Context, in ports.ApplyLeaveInput, now time.Time) (*ports.ApplyLeaveResult, error) {
	reason := strings.TrimSpace(in.Reason)
	if reason == "" || len(reason) > domain.MaxReasonLength {
		return nil, domain.ErrInvalidReason
	}

	start := domain.StartOfDayUTC(in.StartDate)
	end := domain.StartOfDayUTC(in.EndDate)
	if end.Before(start) {
		return nil, domain.ErrInvalidRange
	}
	if start.Before(domain.StartOfDayUTC(now)) {
		return nil, domain.ErrPastDate
	}

	requested := domain.LeaveDaySpan(start, end)

	monthStart, monthEnd := domain.MonthWindowFor(start)
	existing, err := s.leaves.ListStartingIn(ctx, in.UserID, quotaStatuses, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("apply leave: %w", err)
	}

	used := 0
	for _, l := range existing {
		used += l.DaySpan()
	}

	if used+requested > domain.MaxLeaveDaysPerMonth {
		remaining := domain.MaxLeaveDaysPerMonth - used
		if remaining < 0 {
			remaining = 0
		}
		return nil, &domain.QuotaExceededError{Used: used, Requested: requested, Remaining: remaining}
	}

	leave := &domain.LeaveRequest{
		UserID:    in.UserID,
		StartDate: start,
		EndDate:   end,
		Reason:    reason,
		Status:    domain.LeavePending,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}

	created, err := s.leaves.Create(ctx, leave)
	if err != nil {
		return nil, fmt.Errorf("apply leave: %w", err)
	}

	s.log.Info().
		Str("user_id", in.UserID).
		Str("leave_id", created.ID).
		Int("days", requested).
		Msg("leave applied")

	return &ports.ApplyLeaveResult{
		Leave:        created,
		LeaveBalance: domain.MaxLeaveDaysPerMonth - (used + requested),
	}, nil
}

// Decide resolves a Pending request. The Pending-only conditional update keeps
// terminal states terminal: deciding twice yields domain.ErrAlreadyDecided.
// The quota is not re-checked here; it was charged at submission time.
func (s *LeaveService) Decide(ctx context.Context, id string, status domain.LeaveStatus, now time.Time) (*domain.LeaveRequest, error) {
	if !domain.ValidDecision(status) {
		return nil, domain.ErrInvalidDecision
	}

	decided, err := s.leaves.DecidePending(ctx, id, status, now.UTC())
	if err == nil {
		s.log.Info().Str("leave_id", id).Str("status", string(status)).Msg("leave decided")
		return decided, nil
	}
	if !errors.Is(err, domain.ErrLeaveNotFound) {
		return nil, fmt.Errorf("decide leave: %w", err)
	}

	// No Pending request matched: either the id is unknown or the request was
	// already decided.
	existing, findErr := s.leaves.FindByID(ctx, id)
	if findErr != nil {
		return nil, findErr
	}
	if existing.Status.Decided() {
		return nil, domain.ErrAlreadyDecided
	}
	return nil, err
}

func (s *LeaveService) ListOwn(ctx context.Context, userID string) ([]*domain.LeaveRequest, error) {
	leaves, err := s.leaves.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	return leaves, nil
}

// ListAll is the admin view: requests org-wide, optionally filtered by
// status, with each owner's identity joined.
func (s *LeaveService) ListAll(ctx context.Context, status domain.LeaveStatus) ([]ports.LeaveEntry, error) {
	leaves, err := s.leaves.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}

	ids := make([]string, 0, len(leaves))
	seen := make(map[string]struct{}, len(leaves))
	for _, l := range leaves {
		if _, ok := seen[l.UserID]; !ok {
			seen[l.UserID] = struct{}{}
			ids = append(ids, l.UserID)
		}
	}

	owners, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list leaves: join users: %w", err)
	}

	entries := make([]ports.LeaveEntry, 0, len(leaves))
	for _, l := range leaves {
		var identity *domain.Identity
		if owner, ok := owners[l.UserID]; ok {
			id := owner.Identity()
			identity = &id
		}
		entries = append(entries, ports.LeaveEntry{Leave: l, User: identity})
	}
	return entries, nil
}
