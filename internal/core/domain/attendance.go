package domain

import (
	"errors"
	"time"
)

// AttendanceStatus is derived from the presence of the two timestamps on a
// record; it is never stored.
type AttendanceStatus string

const (
	AttendanceOpen     AttendanceStatus = "open"
	AttendanceComplete AttendanceStatus = "complete"
	AttendanceNone     AttendanceStatus = "none"
)

var ErrAlreadyClockedIn = errors.New("already clocked in today")
var ErrNoOpenSession = errors.New("no open clock-in found")

// AttendanceRecord is the ledger entry for one user on one calendar day.
// Date is normalised to UTC midnight; (UserID, Date) is unique.
type AttendanceRecord struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	UserID       string     `json:"user_id" bson:"user_id"`
	Date         time.Time  `json:"date" bson:"date"`
	ClockInTime  *time.Time `json:"clock_in_time,omitempty" bson:"clock_in_time,omitempty"`
	ClockOutTime *time.Time `json:"clock_out_time,omitempty" bson:"clock_out_time,omitempty"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}

// Status derives the record state from its timestamps.
func (r *AttendanceRecord) Status() AttendanceStatus {
	switch {
	case r.ClockInTime != nil && r.ClockOutTime != nil:
		return AttendanceComplete
	case r.ClockInTime != nil:
		return AttendanceOpen
	default:
		return AttendanceNone
	}
}

// DurationMinutes returns the worked minutes for a complete record, or 0 when
// the session is still open or never started.
func (r *AttendanceRecord) DurationMinutes() int {
	if r.ClockInTime == nil || r.ClockOutTime == nil {
		return 0
	}
	return int(r.ClockOutTime.Sub(*r.ClockInTime) / time.Minute)
}
