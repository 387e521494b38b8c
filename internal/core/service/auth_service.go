package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/workpulse/attendance-system/internal/core/domain"
	"github.com/workpulse/attendance-system/internal/core/ports"
)

// Human-readable IDs are role-prefixed and sequential: the counter yields
// 1, 2, 3, ... per role and the base offsets turn that into EMP-1000,
// EMP-1001, ... and ADM-5000, ADM-5001, ...
const (
	employeeIDBase = 999
	adminIDBase    = 4999
)

// LoginThrottle abstracts the failed-login counter (Redis). A nil throttle
// disables throttling.
type LoginThrottle interface {
	// TooMany reports whether the identifier has exhausted its attempts.
	TooMany(ctx context.Context, identifier string) (bool, error)
	RecordFailure(ctx context.Context, identifier string) error
	Reset(ctx context.Context, identifier string) error
}

// AuthService implements registration and login.
type AuthService struct {
	users     ports.UserRepository
	counters  ports.CounterRepository
	throttle  LoginThrottle
	jwtSecret string
	tokenTTL  time.Duration
	adminKey  string
	log       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	counters ports.CounterRepository,
	throttle LoginThrottle,
	jwtSecret string,
	tokenTTL time.Duration,
	adminKey string,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		counters:  counters,
		throttle:  throttle,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		adminKey:  adminKey,
		log:       log,
	}
}

// Register creates a user, mints the next human-readable ID for the role, and
// returns the user with a signed token. The counter is incremented only after
// the duplicate-email check passes, so a rejected registration leaves no gap
// in the sequence.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleEmployee
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidCredentials, in.Role)
	}
	if role == domain.RoleAdmin && s.adminKey != "" && in.SignupKey != s.adminKey {
		return nil, domain.ErrAdminKeyRequired
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	employeeID, err := s.nextEmployeeID(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		EmployeeID:   employeeID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return nil, fmt.Errorf("register: sign token: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("employee_id", created.EmployeeID).Str("role", created.Role).Msg("user registered")

	return &ports.AuthResult{Token: token, User: created}, nil
}

// Login authenticates by email or human-readable employee ID.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*ports.AuthResult, error) {
	if identifier == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.TooMany(ctx, identifier)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle check failed, allowing attempt")
		} else if blocked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmailOrEmployeeID(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, identifier)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, identifier)
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, identifier); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, fmt.Errorf("login: sign token: %w", err)
	}

	return &ports.AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) recordFailure(ctx context.Context, identifier string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, identifier); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}

func (s *AuthService) nextEmployeeID(ctx context.Context, role string) (string, error) {
	seq, err := s.counters.Next(ctx, role)
	if err != nil {
		return "", fmt.Errorf("next id for %s: %w", role, err)
	}
	if role == domain.RoleAdmin {
		return fmt.Sprintf("ADM-%d", adminIDBase+seq), nil
	}
	return fmt.Sprintf("EMP-%d", employeeIDBase+seq), nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.ID,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
