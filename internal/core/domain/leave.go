package domain

import (
	"errors"
	"fmt"
	"time"
)

// LeaveStatus represents the lifecycle state of a leave request.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "Pending"
	LeaveApproved LeaveStatus = "Approved"
	LeaveRejected LeaveStatus = "Rejected"
)

// MaxLeaveDaysPerMonth is the quota of Pending+Approved leave days an
// employee may accumulate within one calendar month, keyed on start date.
const MaxLeaveDaysPerMonth = 5

// MaxReasonLength bounds the free-text reason on a leave request.
const MaxReasonLength = 500

var ErrLeaveNotFound = errors.New("leave request not found")
var ErrInvalidRange = errors.New("end date must be on or after start date")
var ErrPastDate = errors.New("cannot apply leave for past dates")
var ErrInvalidReason = errors.New("reason is required and must be at most 500 characters")
var ErrAlreadyDecided = errors.New("leave request already decided")
var ErrInvalidDecision = errors.New("status must be Approved or Rejected")

// QuotaExceededError reports a rejected application together with the usage
// that caused it, so the client can render the remaining balance.
type QuotaExceededError struct {
	Used      int // Pending+Approved days already charged to the month
	Requested int // days the rejected application asked for
	Remaining int // quota minus used, floored at zero
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("leave limit exceeded: %d days pending/approved this month, %d requested, maximum %d",
		e.Used, e.Requested, MaxLeaveDaysPerMonth)
}

// LeaveRequest is one requested absence over an inclusive date range.
// Pending is initial; Approved and Rejected are terminal.
type LeaveRequest struct {
	ID        string      `json:"id" bson:"_id,omitempty"`
	UserID    string      `json:"user_id" bson:"user_id"`
	StartDate time.Time   `json:"start_date" bson:"start_date"`
	EndDate   time.Time   `json:"end_date" bson:"end_date"`
	Reason    string      `json:"reason" bson:"reason"`
	Status    LeaveStatus `json:"status" bson:"status"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" bson:"updated_at"`
}

// DaySpan returns the inclusive day count of the request's range.
func (l *LeaveRequest) DaySpan() int {
	return LeaveDaySpan(l.StartDate, l.EndDate)
}

// LeaveDaySpan counts the calendar days covered by [start, end] inclusively:
// a single day is 1. The count is symmetric in its arguments.
func LeaveDaySpan(start, end time.Time) int {
	diff := end.Sub(start)
	if diff < 0 {
		diff = -diff
	}
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		days++
	}
	return days + 1
}

// Decided reports whether the request has reached a terminal state.
func (s LeaveStatus) Decided() bool {
	return s == LeaveApproved || s == LeaveRejected
}

// ValidDecision reports whether s is an acceptable admin decision.
func ValidDecision(s LeaveStatus) bool {
	return s == LeaveApproved || s == LeaveRejected
}
