package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/workpulse/attendance-system/internal/core/domain"
	"github.com/workpulse/attendance-system/internal/core/ports"
)

// AttendanceService implements the attendance ledger use cases.
type AttendanceService struct {
	records ports.AttendanceRepository
	users   ports.UserRepository
	log     zerolog.Logger
}

func NewAttendanceService(records ports.AttendanceRepository, users ports.UserRepository, log zerolog.Logger) *AttendanceService {
	return &AttendanceService{records: records, users: users, log: log}
}

// ClockIn opens today's record for the user. The repository performs one
// conditional write, so a concurrent duplicate surfaces as
// domain.ErrAlreadyClockedIn rather than a second record.
func (s *AttendanceService) ClockIn(ctx context.Context, userID string, now time.Time) (*ports.AttendanceEntry, error) {
	now = now.UTC()
	record, err := s.records.ClockIn(ctx, userID, domain.StartOfDayUTC(now), now)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Time("date", record.Date).Msg("clocked in")
	return entryFor(record, nil), nil
}

// ClockOut closes today's open record for the user.
func (s *AttendanceService) ClockOut(ctx context.Context, userID string, now time.Time) (*ports.AttendanceEntry, error) {
	now = now.UTC()
	record, err := s.records.ClockOut(ctx, userID, domain.StartOfDayUTC(now), now)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Int("duration_minutes", record.DurationMinutes()).Msg("clocked out")
	return entryFor(record, nil), nil
}

func (s *AttendanceService) ListOwn(ctx context.Context, userID string, month, year int) ([]ports.AttendanceEntry, error) {
	records, err := s.records.List(ctx, ports.AttendanceFilter{UserID: userID, Month: month, Year: year})
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}

	entries := make([]ports.AttendanceEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, *entryFor(r, nil))
	}
	return entries, nil
}

// ListAll returns records across users with their owner's identity joined via
// a single batched lookup.
func (s *AttendanceService) ListAll(ctx context.Context, filter ports.AttendanceFilter) ([]ports.AttendanceEntry, error) {
	records, err := s.records.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}

	ids := make([]string, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, ok := seen[r.UserID]; !ok {
			seen[r.UserID] = struct{}{}
			ids = append(ids, r.UserID)
		}
	}

	owners, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list attendance: join users: %w", err)
	}

	entries := make([]ports.AttendanceEntry, 0, len(records))
	for _, r := range records {
		var identity *domain.Identity
		if owner, ok := owners[r.UserID]; ok {
			id := owner.Identity()
			identity = &id
		}
		entries = append(entries, *entryFor(r, identity))
	}
	return entries, nil
}

func (s *AttendanceService) ListEmployees(ctx context.Context) ([]domain.Identity, error) {
	users, err := s.users.ListByRole(ctx, domain.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	identities := make([]domain.Identity, 0, len(users))
	for _, u := range users {
		identities = append(identities, u.Identity())
	}
	return identities, nil
}

func entryFor(record *domain.AttendanceRecord, identity *domain.Identity) *ports.AttendanceEntry {
	return &ports.AttendanceEntry{
		Record:          record,
		Status:          record.Status(),
		DurationMinutes: record.DurationMinutes(),
		User:            identity,
	}
}
