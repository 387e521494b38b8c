package handler

import (
	"time"

	"github.com/workpulse/attendance-system/internal/core/domain"
	"github.com/workpulse/attendance-system/internal/core/ports"
)

const dateLayout = "2006-01-02"

func mapUser(u *domain.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		EmployeeID: u.EmployeeID,
	}
}

func mapIdentity(id *domain.Identity) *userResponse {
	if id == nil {
		return nil
	}
	return &userResponse{
		ID:         id.ID,
		Name:       id.Name,
		Email:      id.Email,
		Role:       id.Role,
		EmployeeID: id.EmployeeID,
	}
}

func mapIdentities(ids []domain.Identity) []userResponse {
	out := make([]userResponse, 0, len(ids))
	for i := range ids {
		out = append(out, *mapIdentity(&ids[i]))
	}
	return out
}

func mapAttendance(e *ports.AttendanceEntry) attendanceResponse {
	return attendanceResponse{
		ID:              e.Record.ID,
		UserID:          e.Record.UserID,
		Date:            e.Record.Date,
		ClockInTime:     e.Record.ClockInTime,
		ClockOutTime:    e.Record.ClockOutTime,
		DurationMinutes: e.DurationMinutes,
		Status:          string(e.Status),
		User:            mapIdentity(e.User),
	}
}

func mapAttendanceList(entries []ports.AttendanceEntry) []attendanceResponse {
	out := make([]attendanceResponse, 0, len(entries))
	for i := range entries {
		out = append(out, mapAttendance(&entries[i]))
	}
	return out
}

func mapLeave(l *domain.LeaveRequest, identity *domain.Identity) leaveResponse {
	return leaveResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		StartDate: l.StartDate.Format(dateLayout),
		EndDate:   l.EndDate.Format(dateLayout),
		Days:      l.DaySpan(),
		Reason:    l.Reason,
		Status:    string(l.Status),
		CreatedAt: l.CreatedAt,
		User:      mapIdentity(identity),
	}
}

func mapLeaveList(leaves []*domain.LeaveRequest) []leaveResponse {
	out := make([]leaveResponse, 0, len(leaves))
	for _, l := range leaves {
		out = append(out, mapLeave(l, nil))
	}
	return out
}

func mapLeaveEntries(entries []ports.LeaveEntry) []leaveResponse {
	out := make([]leaveResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, mapLeave(e.Leave, e.User))
	}
	return out
}

// parseDate accepts the SPA's date-only format and, as a fallback, a full
// RFC 3339 timestamp (the original clients sent both).
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
