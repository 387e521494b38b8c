package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/workpulse/attendance-system/internal/core/domain"
)

func renderError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrTooManyAttempts, http.StatusTooManyRequests},
		{domain.ErrEmailExists, http.StatusConflict},
		{domain.ErrAdminKeyRequired, http.StatusForbidden},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrAlreadyClockedIn, http.StatusBadRequest},
		{domain.ErrNoOpenSession, http.StatusBadRequest},
		{domain.ErrInvalidRange, http.StatusBadRequest},
		{domain.ErrPastDate, http.StatusBadRequest},
		{domain.ErrInvalidReason, http.StatusBadRequest},
		{domain.ErrInvalidDecision, http.StatusBadRequest},
		{domain.ErrLeaveNotFound, http.StatusNotFound},
		{domain.ErrAlreadyDecided, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := renderError(t, tc.err)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}

			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON body: %v", err)
			}
			if _, ok := body["error"]; !ok {
				t.Fatalf("envelope missing error field: %s", rec.Body.String())
			}
		})
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	rec := renderError(t, fmt.Errorf("apply leave: %w", domain.ErrPastDate))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for wrapped domain error, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_QuotaEnvelope(t *testing.T) {
	rec := renderError(t, &domain.QuotaExceededError{Used: 4, Requested: 3, Remaining: 1})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body struct {
		Error     string `json:"error"`
		Used      int    `json:"used"`
		Requested int    `json:"requested"`
		Remaining int    `json:"remaining"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Used != 4 || body.Requested != 3 || body.Remaining != 1 {
		t.Fatalf("unexpected quota envelope: %+v", body)
	}
	if body.Error == "" {
		t.Fatalf("quota envelope missing error message")
	}
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	rec := renderError(t, echo.NewHTTPError(http.StatusNotFound, "route not found"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["error"] != "route not found" {
		t.Fatalf("unexpected message %q", body["error"])
	}
}

func TestHTTPErrorHandler_UnexpectedErrorIsGeneric(t *testing.T) {
	rec := renderError(t, errors.New("mongo: socket closed"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["error"] != "internal server error" {
		t.Fatalf("internal detail leaked to client: %q", body["error"])
	}
}
