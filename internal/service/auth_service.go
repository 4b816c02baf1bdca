package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sthanna/UsTaxesFree/internal/audit"
	"github.com/sthanna/UsTaxesFree/internal/auth"
	"github.com/sthanna/UsTaxesFree/internal/observability/metrics"
	"github.com/sthanna/UsTaxesFree/internal/storage/postgres"
)

var (
	// ErrEmailTaken is returned when registering an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned on a failed login. The message is
	// deliberately the same for unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserStore is the persistence surface the auth service needs.
type UserStore interface {
	Create(ctx context.Context, user *postgres.User) error
	GetByID(ctx context.Context, id string) (*postgres.User, error)
	GetByEmail(ctx context.Context, email string) (*postgres.User, error)
}

// AuthService handles registration and login.
type AuthService struct {
	Users     UserStore
	JWTSecret []byte
	TokenTTL  time.Duration
	Audit     audit.Logger
}

// NewAuthService wires an auth service. A nil audit logger degrades to
// a no-op.
func NewAuthService(users UserStore, jwtSecret []byte, tokenTTL time.Duration, auditLogger audit.Logger) *AuthService {
	if auditLogger == nil {
		auditLogger = audit.NopLogger{}
	}
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		Users:     users,
		JWTSecret: jwtSecret,
		TokenTTL:  tokenTTL,
		Audit:     auditLogger,
	}
}

// Register creates an account and returns the stored user.
func (s *AuthService) Register(ctx context.Context, email, password, firstName, lastName string) (*postgres.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("a valid email is required")
	}

	existing, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &postgres.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	_ = s.Audit.Log(ctx, audit.Entry{UserID: user.ID, Action: audit.ActionRegister, Resource: user.ID})
	return user, nil
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *postgres.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		metrics.IncLogin(metrics.ResultError)
		_ = s.Audit.Log(ctx, audit.Entry{Action: audit.ActionLogin, Resource: email, Detail: "failed"})
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.IssueToken(user.ID, user.Email, s.JWTSecret, s.TokenTTL)
	if err != nil {
		return "", nil, err
	}

	metrics.IncLogin(metrics.ResultSuccess)
	_ = s.Audit.Log(ctx, audit.Entry{UserID: user.ID, Action: audit.ActionLogin, Resource: user.ID})
	return token, user, nil
}
