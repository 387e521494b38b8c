package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/workpulse/attendance-system/internal/core/ports"
)

// StatsHandler serves the dashboard aggregates.
type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Mine returns the caller's stats for the current calendar month.
//
// @Summary      Own monthly stats
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  employeeStatsResponse
// @Router       /stats/me [get]
func (h *StatsHandler) Mine(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	stats, err := h.service.EmployeeMonthlyStats(c.Request().Context(), user.ID, time.Now())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, employeeStatsResponse{
		DaysWorkedThisMonth:     stats.DaysWorkedThisMonth,
		ApprovedLeavesThisMonth: stats.ApprovedLeavesThisMonth,
		PendingLeavesThisMonth:  stats.PendingLeavesThisMonth,
		TotalApprovedLeaveDays:  stats.TotalApprovedLeaveDays,
		TotalPendingLeaveDays:   stats.TotalPendingLeaveDays,
		TotalLeaveDaysUsed:      stats.TotalLeaveDaysUsed,
		LeaveBalance:            stats.LeaveBalance,
		MaxLeavesPerMonth:       stats.MaxLeavesPerMonth,
	})
}

// Admin returns today's org-wide presence snapshot.
//
// @Summary      Org daily snapshot
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  adminStatsResponse
// @Failure      403  {object}  map[string]string
// @Router       /stats/admin [get]
func (h *StatsHandler) Admin(c echo.Context) error {
	snapshot, err := h.service.OrgDailySnapshot(c.Request().Context(), time.Now())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, adminStatsResponse{
		AbsentToday:        mapIdentities(snapshot.AbsentToday),
		PendingLeavesCount: snapshot.PendingLeavesCount,
	})
}
