package handler

import "time"

// Request and response types owned by the transport layer. These are
// intentionally separate from ports/domain types so the JSON contract is not
// coupled to internal service changes. Field names follow the SPA's wire
// format (camelCase).

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin employee"`
	Key      string `json:"key"`
}

type loginRequest struct {
	EmailOrID string `json:"emailOrId" validate:"required"`
	Password  string `json:"password"  validate:"required"`
}

type userResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	EmployeeID string `json:"employeeId"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type attendanceResponse struct {
	ID              string        `json:"id"`
	UserID          string        `json:"userId"`
	Date            time.Time     `json:"date"`
	ClockInTime     *time.Time    `json:"clockInTime,omitempty"`
	ClockOutTime    *time.Time    `json:"clockOutTime,omitempty"`
	DurationMinutes int           `json:"durationMinutes"`
	Status          string        `json:"status"`
	User            *userResponse `json:"user,omitempty"`
}

type applyLeaveRequest struct {
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate"   validate:"required"`
	Reason    string `json:"reason"    validate:"required,max=500"`
}

type leaveResponse struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	StartDate string        `json:"startDate"`
	EndDate   string        `json:"endDate"`
	Days      int           `json:"days"`
	Reason    string        `json:"reason"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	User      *userResponse `json:"user,omitempty"`
}

type applyLeaveResponse struct {
	Message      string        `json:"message"`
	Leave        leaveResponse `json:"leave"`
	LeaveBalance int           `json:"leaveBalance"`
}

type decideLeaveRequest struct {
	Status string `json:"status" validate:"required,oneof=Approved Rejected"`
}

type decideLeaveResponse struct {
	Message string        `json:"message"`
	Leave   leaveResponse `json:"leave"`
}

type employeeStatsResponse struct {
	DaysWorkedThisMonth     int64 `json:"daysWorkedThisMonth"`
	ApprovedLeavesThisMonth int   `json:"approvedLeavesThisMonth"`
	PendingLeavesThisMonth  int   `json:"pendingLeavesThisMonth"`
	TotalApprovedLeaveDays  int   `json:"totalApprovedLeaveDays"`
	TotalPendingLeaveDays   int   `json:"totalPendingLeaveDays"`
	TotalLeaveDaysUsed      int   `json:"totalLeaveDaysUsed"`
	LeaveBalance            int   `json:"leaveBalance"`
	MaxLeavesPerMonth       int   `json:"maxLeavesPerMonth"`
}

type adminStatsResponse struct {
	AbsentToday        []userResponse `json:"absentToday"`
	PendingLeavesCount int64          `json:"pendingLeavesCount"`
}
