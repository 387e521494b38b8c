package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/workpulse/attendance-system/internal/api/metrics"
	"github.com/workpulse/attendance-system/internal/core/domain"
	"github.com/workpulse/attendance-system/internal/core/ports"
)

// LeaveHandler handles HTTP requests for the leave ledger.
type LeaveHandler struct {
	service ports.LeaveService
}

func NewLeaveHandler(service ports.LeaveService) *LeaveHandler {
	return &LeaveHandler{service: service}
}

// Apply submits a leave application for the caller.
//
// @Summary      Apply for leave
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      applyLeaveRequest  true  "Leave application"
// @Success      201   {object}  applyLeaveResponse
// @Failure      400   {object}  map[string]string
// @Router       /leaves [post]
func (h *LeaveHandler) Apply(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req applyLeaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.LeaveApplicationsTotal.WithLabelValues("invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		metrics.LeaveApplicationsTotal.WithLabelValues("invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "startDate must be a date in 2006-01-02 format")
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		metrics.LeaveApplicationsTotal.WithLabelValues("invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "endDate must be a date in 2006-01-02 format")
	}

	result, err := h.service.Apply(c.Request().Context(), ports.ApplyLeaveInput{
		UserID:    user.ID,
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
	}, time.Now())
	if err != nil {
		var qe *domain.QuotaExceededError
		switch {
		case errors.As(err, &qe):
			metrics.LeaveApplicationsTotal.WithLabelValues("quota_exceeded").Inc()
		case errors.Is(err, domain.ErrInvalidRange),
			errors.Is(err, domain.ErrPastDate),
			errors.Is(err, domain.ErrInvalidReason):
			metrics.LeaveApplicationsTotal.WithLabelValues("invalid").Inc()
		}
		return err
	}

	metrics.LeaveApplicationsTotal.WithLabelValues("created").Inc()

	return c.JSON(http.StatusCreated, applyLeaveResponse{
		Message:      "Leave applied successfully",
		Leave:        mapLeave(result.Leave, nil),
		LeaveBalance: result.LeaveBalance,
	})
}

// ListMine returns the caller's leave requests, newest first.
//
// @Summary      List own leave requests
// @Tags         leaves
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  leaveResponse
// @Router       /leaves/me [get]
func (h *LeaveHandler) ListMine(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	leaves, err := h.service.ListOwn(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapLeaveList(leaves))
}

// ListAll is the admin view of leave requests, optionally filtered by status.
//
// @Summary      List leave requests across users
// @Tags         leaves
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Pending, Approved or Rejected"
// @Success      200     {array}   leaveResponse
// @Failure      403     {object}  map[string]string
// @Router       /leaves [get]
func (h *LeaveHandler) ListAll(c echo.Context) error {
	status := domain.LeaveStatus(strings.TrimSpace(c.QueryParam("status")))
	if status != "" && status != domain.LeavePending && status != domain.LeaveApproved && status != domain.LeaveRejected {
		return echo.NewHTTPError(http.StatusBadRequest, "status must be Pending, Approved or Rejected")
	}

	entries, err := h.service.ListAll(c.Request().Context(), status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapLeaveEntries(entries))
}

// Decide approves or rejects a Pending leave request.
//
// @Summary      Decide a leave request
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Leave request id"
// @Param        body  body      decideLeaveRequest  true  "Decision"
// @Success      200   {object}  decideLeaveResponse
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /leaves/{id}/status [patch]
func (h *LeaveHandler) Decide(c echo.Context) error {
	var req decideLeaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	leave, err := h.service.Decide(c.Request().Context(), c.Param("id"), domain.LeaveStatus(req.Status), time.Now())
	if err != nil {
		return err
	}

	metrics.LeaveDecisionsTotal.WithLabelValues(req.Status).Inc()

	return c.JSON(http.StatusOK, decideLeaveResponse{
		Message: "Leave " + strings.ToLower(req.Status) + " successfully",
		Leave:   mapLeave(leave, nil),
	})
}
