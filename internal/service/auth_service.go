package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

const (
	msgUsernameTaken      = "Username already exists"
	msgEmailTaken         = "Email already exists"
	msgInvalidCredentials = "Invalid username or password"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL()),
		bcryptCost: cfg.BcryptCost,
	}
}

// RegisterInput carries a validated registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Username string
	Password string
	Role     string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// Register creates a new account. Username and email must both be unused.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if err := s.ensureUnused(ctx, s.users.GetByUsername, in.Username, msgUsernameTaken); err != nil {
		return nil, err
	}
	if err := s.ensureUnused(ctx, s.users.GetByEmail, in.Email, msgEmailTaken); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hash,
		Role:         in.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent registration can still win the race after the checks above.
		if field, ok := repository.IsUniqueViolation(err); ok {
			if field == "email" {
				return nil, apperrors.NewConflict(msgEmailTaken)
			}
			return nil, apperrors.NewConflict(msgUsernameTaken)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:   events.EventUserRegistered,
		UserID: user.ID,
		Payload: events.UserRegisteredPayload{
			Username: user.Username,
			Role:     user.Role,
		},
	})
	return user, nil
}

func (s *AuthService) ensureUnused(ctx context.Context, lookup func(context.Context, string) (*domain.User, error), value, msg string) error {
	_, err := lookup(ctx, value)
	switch {
	case err == nil:
		return apperrors.NewConflict(msg)
	case errors.Is(err, repository.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("lookup user: %w", err)
	}
}

// Login authenticates a user by username. Unknown usernames and wrong
// passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewUnauthorized(msgInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized(msgInvalidCredentials)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{User: user, Token: token, ExpiresAt: exp}, nil
}

// ListUsers returns every registered user.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
