package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/nutritrack/internal/auth"
	"github.com/mmynk/nutritrack/internal/models"
	"github.com/mmynk/nutritrack/internal/storage"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User  *UserDTO `json:"user"`
	Token string   `json:"-"`
}

// AuthService implements registration, login and session resolution.
type AuthService struct {
	authenticator auth.Authenticator
	tokens        auth.TokenService
	users         storage.UserRepository
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, tokens auth.TokenService, repos *storage.Repositories, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		authenticator: authenticator,
		tokens:        tokens,
		users:         repos.Users,
		logger:        logger,
	}
}

// Register creates a new user account and issues a session token.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	s.logger.Info("Register request", "email", req.Email)

	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Name) == "" {
		return nil, models.Validationf("email and name are required")
	}

	user, err := s.authenticator.Register(ctx, req.Email, req.Name, req.Password)
	if err != nil {
		s.logger.Warn("Registration failed", "email", req.Email, "error", err)
		return nil, err
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, err
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "email", user.Email)
	return &AuthResult{User: toUserDTO(user), Token: token}, nil
}

// Login authenticates a user and issues a session token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	s.logger.Info("Login request", "email", req.Email)

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, models.Validationf("email and password are required")
	}

	user, err := s.authenticator.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Email, "error", err)
		if errors.Is(err, models.ErrAuth) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, err
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID)
	return &AuthResult{User: toUserDTO(user), Token: token}, nil
}

// Logout ends a session. Tokens are stateless, so the transport clears the cookie.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if userID, err := s.tokens.CurrentUserID(token); err == nil {
		s.logger.Info("Logout request", "user_id", userID)
	} else {
		s.logger.Info("Logout request without a valid session")
	}
	return nil
}

// CurrentUser resolves the session token to its user.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*UserDTO, error) {
	userID, err := s.tokens.CurrentUserID(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, models.Authf("session user %s no longer exists", userID)
	}
	return toUserDTO(user), nil
}
