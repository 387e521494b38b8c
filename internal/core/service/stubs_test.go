package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/workpulse/attendance-system/internal/core/domain"
	"github.com/workpulse/attendance-system/internal/core/ports"
)

// In-memory doubles for the repository ports, shared by the service tests.

type stubUserRepo struct {
	users  []*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{nextID: 1}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == strings.ToLower(user.Email) {
			return nil, domain.ErrEmailExists
		}
	}
	clone := *user
	clone.ID = fmt.Sprintf("user_%d", r.nextID)
	clone.Email = strings.ToLower(user.Email)
	r.nextID++
	r.users = append(r.users, &clone)
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmailOrEmployeeID(_ context.Context, identifier string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == strings.ToLower(identifier) || u.EmployeeID == strings.ToUpper(identifier) {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	out := make(map[string]*domain.User, len(ids))
	for _, id := range ids {
		for _, u := range r.users {
			if u.ID == id {
				out[id] = u
			}
		}
	}
	return out, nil
}

func (r *stubUserRepo) ListByRole(_ context.Context, role string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type stubCounterRepo struct {
	seqs  map[string]int64
	calls int
}

func newStubCounterRepo() *stubCounterRepo {
	return &stubCounterRepo{seqs: make(map[string]int64)}
}

func (r *stubCounterRepo) Next(_ context.Context, name string) (int64, error) {
	r.calls++
	r.seqs[name]++
	return r.seqs[name], nil
}

// stubThrottle blocks an identifier after blockAfter recorded failures.
type stubThrottle struct {
	failures   map[string]int
	blockAfter int
	resets     int
}

func newStubThrottle(blockAfter int) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), blockAfter: blockAfter}
}

func (t *stubThrottle) TooMany(_ context.Context, identifier string) (bool, error) {
	return t.failures[identifier] >= t.blockAfter, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, identifier string) error {
	t.failures[identifier]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, identifier string) error {
	t.resets++
	delete(t.failures, identifier)
	return nil
}

type stubAttendanceRepo struct {
	records []*domain.AttendanceRecord
	nextID  int
}

func newStubAttendanceRepo() *stubAttendanceRepo {
	return &stubAttendanceRepo{nextID: 1}
}

func (r *stubAttendanceRepo) find(userID string, day time.Time) *domain.AttendanceRecord {
	for _, rec := range r.records {
		if rec.UserID == userID && rec.Date.Equal(day) {
			return rec
		}
	}
	return nil
}

func (r *stubAttendanceRepo) ClockIn(_ context.Context, userID string, day, now time.Time) (*domain.AttendanceRecord, error) {
	if rec := r.find(userID, day); rec != nil {
		if rec.ClockInTime != nil {
			return nil, domain.ErrAlreadyClockedIn
		}
		in := now
		rec.ClockInTime = &in
		rec.UpdatedAt = now
		return rec, nil
	}
	in := now
	rec := &domain.AttendanceRecord{
		ID:          fmt.Sprintf("att_%d", r.nextID),
		UserID:      userID,
		Date:        day,
		ClockInTime: &in,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.nextID++
	r.records = append(r.records, rec)
	return rec, nil
}

func (r *stubAttendanceRepo) ClockOut(_ context.Context, userID string, day, now time.Time) (*domain.AttendanceRecord, error) {
	rec := r.find(userID, day)
	if rec == nil || rec.ClockInTime == nil || rec.ClockOutTime != nil {
		return nil, domain.ErrNoOpenSession
	}
	out := now
	rec.ClockOutTime = &out
	rec.UpdatedAt = now
	return rec, nil
}

func (r *stubAttendanceRepo) List(_ context.Context, filter ports.AttendanceFilter) ([]*domain.AttendanceRecord, error) {
	var from, to time.Time
	windowed := filter.Month >= 1 && filter.Month <= 12 && filter.Year > 0
	if windowed {
		from, to = domain.MonthWindowUTC(filter.Year, time.Month(filter.Month))
	}

	var out []*domain.AttendanceRecord
	for _, rec := range r.records {
		if filter.UserID != "" && rec.UserID != filter.UserID {
			continue
		}
		if windowed && (rec.Date.Before(from) || !rec.Date.Before(to)) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *stubAttendanceRepo) CountClockedInDays(_ context.Context, userID string, from, to time.Time) (int64, error) {
	var n int64
	for _, rec := range r.records {
		if rec.UserID == userID && rec.ClockInTime != nil && !rec.Date.Before(from) && rec.Date.Before(to) {
			n++
		}
	}
	return n, nil
}

func (r *stubAttendanceRepo) PresentUserIDs(_ context.Context, day time.Time) ([]string, error) {
	var ids []string
	for _, rec := range r.records {
		if rec.Date.Equal(day) && rec.ClockInTime != nil {
			ids = append(ids, rec.UserID)
		}
	}
	return ids, nil
}

type stubLeaveRepo struct {
	leaves []*domain.LeaveRequest
	nextID int
}

func newStubLeaveRepo() *stubLeaveRepo {
	return &stubLeaveRepo{nextID: 1}
}

func (r *stubLeaveRepo) Create(_ context.Context, leave *domain.LeaveRequest) (*domain.LeaveRequest, error) {
	clone := *leave
	clone.ID = fmt.Sprintf("leave_%d", r.nextID)
	r.nextID++
	r.leaves = append(r.leaves, &clone)
	return &clone, nil
}

func (r *stubLeaveRepo) FindByID(_ context.Context, id string) (*domain.LeaveRequest, error) {
	for _, l := range r.leaves {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, domain.ErrLeaveNotFound
}

func (r *stubLeaveRepo) ListForUser(_ context.Context, userID string) ([]*domain.LeaveRequest, error) {
	var out []*domain.LeaveRequest
	for _, l := range r.leaves {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubLeaveRepo) ListByStatus(_ context.Context, status domain.LeaveStatus) ([]*domain.LeaveRequest, error) {
	var out []*domain.LeaveRequest
	for _, l := range r.leaves {
		if status == "" || l.Status == status {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubLeaveRepo) ListStartingIn(_ context.Context, userID string, statuses []domain.LeaveStatus, from, to time.Time) ([]*domain.LeaveRequest, error) {
	allowed := make(map[domain.LeaveStatus]struct{}, len(statuses))
	for _, s := range statuses {
		allowed[s] = struct{}{}
	}

	var out []*domain.LeaveRequest
	for _, l := range r.leaves {
		if l.UserID != userID {
			continue
		}
		if _, ok := allowed[l.Status]; !ok {
			continue
		}
		if l.StartDate.Before(from) || !l.StartDate.Before(to) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *stubLeaveRepo) DecidePending(_ context.Context, id string, status domain.LeaveStatus, now time.Time) (*domain.LeaveRequest, error) {
	for _, l := range r.leaves {
		if l.ID == id && l.Status == domain.LeavePending {
			l.Status = status
			l.UpdatedAt = now
			return l, nil
		}
	}
	return nil, domain.ErrLeaveNotFound
}

func (r *stubLeaveRepo) CountByStatus(_ context.Context, status domain.LeaveStatus) (int64, error) {
	var n int64
	for _, l := range r.leaves {
		if l.Status == status {
			n++
		}
	}
	return n, nil
}
