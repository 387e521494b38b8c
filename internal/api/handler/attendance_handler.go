package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/workpulse/attendance-system/internal/api/metrics"
	"github.com/workpulse/attendance-system/internal/core/domain"
	"github.com/workpulse/attendance-system/internal/core/ports"
)

// AttendanceHandler handles HTTP requests for the attendance ledger.
type AttendanceHandler struct {
	service ports.AttendanceService
}

func NewAttendanceHandler(service ports.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

// ClockIn opens today's attendance record for the caller.
//
// @Summary      Clock in
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  attendanceResponse
// @Failure      400  {object}  map[string]string
// @Router       /attendance/clock-in [post]
func (h *AttendanceHandler) ClockIn(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	entry, err := h.service.ClockIn(c.Request().Context(), user.ID, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyClockedIn) {
			metrics.ClockEventsTotal.WithLabelValues("clock_in", "rejected").Inc()
		} else {
			metrics.ClockEventsTotal.WithLabelValues("clock_in", "error").Inc()
		}
		return err
	}

	metrics.ClockEventsTotal.WithLabelValues("clock_in", "ok").Inc()
	return c.JSON(http.StatusCreated, mapAttendance(entry))
}

// ClockOut closes today's open attendance record for the caller.
//
// @Summary      Clock out
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  attendanceResponse
// @Failure      400  {object}  map[string]string
// @Router       /attendance/clock-out [post]
func (h *AttendanceHandler) ClockOut(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	entry, err := h.service.ClockOut(c.Request().Context(), user.ID, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNoOpenSession) {
			metrics.ClockEventsTotal.WithLabelValues("clock_out", "rejected").Inc()
		} else {
			metrics.ClockEventsTotal.WithLabelValues("clock_out", "error").Inc()
		}
		return err
	}

	metrics.ClockEventsTotal.WithLabelValues("clock_out", "ok").Inc()
	return c.JSON(http.StatusOK, mapAttendance(entry))
}

// ListMine returns the caller's records, optionally windowed to one month.
//
// @Summary      List own attendance
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        month  query     int  false  "Month (1-12), applied with year"
// @Param        year   query     int  false  "Year, applied with month"
// @Success      200    {array}   attendanceResponse
// @Router       /attendance/me [get]
func (h *AttendanceHandler) ListMine(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	month, year, err := monthYearParams(c)
	if err != nil {
		return err
	}

	entries, err := h.service.ListOwn(c.Request().Context(), user.ID, month, year)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapAttendanceList(entries))
}

// ListAll is the admin ledger view with owner identity joined.
//
// @Summary      List attendance across users
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        userId  query     string  false  "Filter by user"
// @Param        month   query     int     false  "Month (1-12), applied with year"
// @Param        year    query     int     false  "Year, applied with month"
// @Success      200     {array}   attendanceResponse
// @Failure      403     {object}  map[string]string
// @Router       /attendance [get]
func (h *AttendanceHandler) ListAll(c echo.Context) error {
	month, year, err := monthYearParams(c)
	if err != nil {
		return err
	}

	entries, err := h.service.ListAll(c.Request().Context(), ports.AttendanceFilter{
		UserID: c.QueryParam("userId"),
		Month:  month,
		Year:   year,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapAttendanceList(entries))
}

// Employees returns the directory of employee-role users.
//
// @Summary      List employees
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      403  {object}  map[string]string
// @Router       /attendance/employees [get]
func (h *AttendanceHandler) Employees(c echo.Context) error {
	identities, err := h.service.ListEmployees(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapIdentities(identities))
}

// monthYearParams parses the optional month/year query pair. The window is
// applied only when both are present, matching the SPA's calendar picker.
func monthYearParams(c echo.Context) (int, int, error) {
	monthParam := c.QueryParam("month")
	yearParam := c.QueryParam("year")
	if monthParam == "" || yearParam == "" {
		return 0, 0, nil
	}

	month, err := strconv.Atoi(monthParam)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "month must be a number between 1 and 12")
	}
	year, err := strconv.Atoi(yearParam)
	if err != nil || year < 1 {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "year must be a positive number")
	}
	return month, year, nil
}
