package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/workpulse/attendance-system/internal/core/domain"
)

const testSecret = "test-secret"

// stubUserLoader implements ports.UserRepository over a fixed map; only
// FindByID matters to the middleware.
type stubUserLoader struct {
	users map[string]*domain.User
}

func (s *stubUserLoader) Create(_ context.Context, _ *domain.User) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserLoader) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserLoader) FindByEmailOrEmployeeID(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserLoader) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserLoader) FindByIDs(_ context.Context, _ []string) (map[string]*domain.User, error) {
	return nil, nil
}

func (s *stubUserLoader) ListByRole(_ context.Context, _ string) ([]*domain.User, error) {
	return nil, nil
}

func signToken(t *testing.T, secret, sub string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": sub,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func invokeAuth(t *testing.T, users *stubUserLoader, authHeader string) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/stats/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Auth(testSecret, users)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, c, h(c)
}

func TestAuth_ValidToken(t *testing.T) {
	user := &domain.User{ID: "u1", Name: "Asha", Role: domain.RoleEmployee, EmployeeID: "EMP-1000"}
	users := &stubUserLoader{users: map[string]*domain.User{"u1": user}}

	token := signToken(t, testSecret, "u1", time.Hour)
	rec, c, err := invokeAuth(t, users, "Bearer "+token)
	if err != nil {
		t.Fatalf("expected request to pass, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if got, _ := c.Get(CtxUserID).(string); got != "u1" {
		t.Fatalf("expected user_id u1 in context, got %q", got)
	}
	if got, _ := c.Get(CtxRole).(string); got != domain.RoleEmployee {
		t.Fatalf("expected role employee in context, got %q", got)
	}
	if got, _ := c.Get(CtxUser).(*domain.User); got != user {
		t.Fatalf("expected resolved user in context")
	}
}

func TestAuth_Rejections(t *testing.T) {
	users := &stubUserLoader{users: map[string]*domain.User{
		"u1": {ID: "u1", Role: domain.RoleEmployee},
	}}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not.a.token"},
		{"wrong secret", "Bearer " + signToken(t, "other-secret", "u1", time.Hour)},
		{"expired", "Bearer " + signToken(t, testSecret, "u1", -time.Hour)},
		{"missing subject", "Bearer " + signToken(t, testSecret, "", time.Hour)},
		{"deleted user", "Bearer " + signToken(t, testSecret, "ghost", time.Hour)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := invokeAuth(t, users, tc.header)
			httpErr, ok := err.(*echo.HTTPError)
			if !ok {
				t.Fatalf("expected *echo.HTTPError, got %v", err)
			}
			if httpErr.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", httpErr.Code)
			}
		})
	}
}
