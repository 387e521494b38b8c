package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/workpulse/attendance-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// quotaErrorResponse extends the envelope with the usage that caused a
// rejected leave application, so clients can render the remaining balance.
type quotaErrorResponse struct {
	Error     string `json:"error"`
	Used      int    `json:"used"`
	Requested int    `json:"requested"`
	Remaining int    `json:"remaining"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var qe *domain.QuotaExceededError
		if errors.As(err, &qe) {
			_ = c.JSON(http.StatusBadRequest, quotaErrorResponse{
				Error:     qe.Error(),
				Used:      qe.Used,
				Requested: qe.Requested,
				Remaining: qe.Remaining,
			})
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "too many login attempts, try again later"
	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusConflict, "email already exists"
	case errors.Is(err, domain.ErrAdminKeyRequired):
		return http.StatusForbidden, "admin signup key required"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrAlreadyClockedIn):
		return http.StatusBadRequest, "already clocked in today"
	case errors.Is(err, domain.ErrNoOpenSession):
		return http.StatusBadRequest, "no open clock-in found"
	case errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrPastDate),
		errors.Is(err, domain.ErrInvalidReason),
		errors.Is(err, domain.ErrInvalidDecision):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrLeaveNotFound):
		return http.StatusNotFound, "leave request not found"
	case errors.Is(err, domain.ErrAlreadyDecided):
		return http.StatusConflict, "leave request already decided"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
