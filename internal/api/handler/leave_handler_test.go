package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/workpulse/attendance-system/internal/api/middleware"
	"github.com/workpulse/attendance-system/internal/core/domain"
	"github.com/workpulse/attendance-system/internal/core/ports"
)

type stubLeaveService struct {
	applyIn   *ports.ApplyLeaveInput
	decidedID string
	decided   domain.LeaveStatus
	result    *ports.ApplyLeaveResult
	leave     *domain.LeaveRequest
	err       error
}

func (s *stubLeaveService) Apply(_ context.Context, in ports.ApplyLeaveInput, _ time.Time) (*ports.ApplyLeaveResult, error) {
	s.applyIn = &in
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubLeaveService) Decide(_ context.Context, id string, status domain.LeaveStatus, _ time.Time) (*domain.LeaveRequest, error) {
	s.decidedID = id
	s.decided = status
	if s.err != nil {
		return nil, s.err
	}
	return s.leave, nil
}

func (s *stubLeaveService) ListOwn(_ context.Context, _ string) ([]*domain.LeaveRequest, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*domain.LeaveRequest{s.leave}, nil
}

func (s *stubLeaveService) ListAll(_ context.Context, _ domain.LeaveStatus) ([]ports.LeaveEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []ports.LeaveEntry{{Leave: s.leave}}, nil
}

func sampleLeave() *domain.LeaveRequest {
	return &domain.LeaveRequest{
		ID:        "leave_1",
		UserID:    "u1",
		StartDate: time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.September, 12, 0, 0, 0, 0, time.UTC),
		Reason:    "family visit",
		Status:    domain.LeavePending,
		CreatedAt: time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC),
	}
}

func asUser(c echo.Context) {
	c.Set(middleware.CtxUser, &domain.User{ID: "u1", Role: domain.RoleEmployee, EmployeeID: "EMP-1000"})
}

func TestLeaveHandler_Apply(t *testing.T) {
	leave := sampleLeave()
	svc := &stubLeaveService{result: &ports.ApplyLeaveResult{Leave: leave, LeaveBalance: 2}}
	h := NewLeaveHandler(svc)

	c, rec := newJSONContext(t, http.MethodPost, "/leaves",
		`{"startDate":"2026-09-10","endDate":"2026-09-12","reason":"family visit"}`)
	asUser(c)

	if err := h.Apply(c); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp applyLeaveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if resp.LeaveBalance != 2 {
		t.Fatalf("expected balance 2, got %d", resp.LeaveBalance)
	}
	if resp.Leave.Days != 3 {
		t.Fatalf("expected 3 days, got %d", resp.Leave.Days)
	}
	if resp.Leave.StartDate != "2026-09-10" {
		t.Fatalf("dates must render as 2006-01-02, got %q", resp.Leave.StartDate)
	}

	if svc.applyIn == nil || svc.applyIn.UserID != "u1" {
		t.Fatalf("service received wrong input: %+v", svc.applyIn)
	}
	if !svc.applyIn.StartDate.Equal(leave.StartDate) {
		t.Fatalf("start date parsed as %v", svc.applyIn.StartDate)
	}
}

func TestLeaveHandler_ApplyRejectsBadDates(t *testing.T) {
	h := NewLeaveHandler(&stubLeaveService{})

	cases := []struct {
		name string
		body string
	}{
		{"not a date", `{"startDate":"soon","endDate":"2026-09-12","reason":"x"}`},
		{"missing end", `{"startDate":"2026-09-10","reason":"x"}`},
		{"oversized reason", `{"startDate":"2026-09-10","endDate":"2026-09-12","reason":"` + strings.Repeat("x", 501) + `"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newJSONContext(t, http.MethodPost, "/leaves", tc.body)
			asUser(c)
			err := h.Apply(c)
			httpErr, ok := err.(*echo.HTTPError)
			if !ok {
				t.Fatalf("expected *echo.HTTPError, got %v", err)
			}
			if httpErr.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", httpErr.Code)
			}
		})
	}
}

func TestLeaveHandler_ApplyRequiresAuthenticatedUser(t *testing.T) {
	h := NewLeaveHandler(&stubLeaveService{})

	c, _ := newJSONContext(t, http.MethodPost, "/leaves",
		`{"startDate":"2026-09-10","endDate":"2026-09-12","reason":"x"}`)

	err := h.Apply(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth context, got %v", err)
	}
}

func TestLeaveHandler_Decide(t *testing.T) {
	leave := sampleLeave()
	leave.Status = domain.LeaveApproved
	svc := &stubLeaveService{leave: leave}
	h := NewLeaveHandler(svc)

	c, rec := newJSONContext(t, http.MethodPatch, "/leaves/leave_1/status", `{"status":"Approved"}`)
	c.SetParamNames("id")
	c.SetParamValues("leave_1")

	if err := h.Decide(c); err != nil {
		t.Fatalf("decide failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.decidedID != "leave_1" || svc.decided != domain.LeaveApproved {
		t.Fatalf("service received %q / %q", svc.decidedID, svc.decided)
	}

	var resp decideLeaveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if resp.Message != "Leave approved successfully" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestLeaveHandler_DecideRejectsBadStatus(t *testing.T) {
	h := NewLeaveHandler(&stubLeaveService{})

	c, _ := newJSONContext(t, http.MethodPatch, "/leaves/leave_1/status", `{"status":"Maybe"}`)
	c.SetParamNames("id")
	c.SetParamValues("leave_1")

	err := h.Decide(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %v", err)
	}
}

func TestLeaveHandler_ListAllValidatesStatus(t *testing.T) {
	h := NewLeaveHandler(&stubLeaveService{leave: sampleLeave()})

	c, _ := newJSONContext(t, http.MethodGet, "/leaves?status=Sideways", "")
	err := h.ListAll(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status filter, got %v", err)
	}

	c, rec := newJSONContext(t, http.MethodGet, "/leaves?status=Pending", "")
	if err := h.ListAll(c); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
