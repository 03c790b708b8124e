package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/nutritrack/internal/models"
	"github.com/mmynk/nutritrack/internal/storage"
)

// UpdateUserRequest changes profile fields. An empty CustomerID clears it.
type UpdateUserRequest struct {
	UserID     string  `json:"userId"`
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	CustomerID *string `json:"customerId,omitempty"`
}

// UserService manages user profiles.
type UserService struct {
	users storage.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repos *storage.Repositories) *UserService {
	return &UserService{users: repos.Users}
}

// Get returns the user, or nil when the account does not exist.
func (s *UserService) Get(ctx context.Context, userID string) (*UserDTO, error) {
	if err := models.RequireID("user id", userID); err != nil {
		return nil, err
	}
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, nil
	}
	return toUserDTO(user), nil
}

// GetByEmail returns the user with the given email, or nil.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*UserDTO, error) {
	if err := models.RequireID("email", email); err != nil {
		return nil, err
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, nil
	}
	return toUserDTO(user), nil
}

// Update applies a partial profile update. Emails stay unique.
func (s *UserService) Update(ctx context.Context, req UpdateUserRequest) (*UserDTO, error) {
	user, err := loadUser(ctx, s.users, req.UserID)
	if err != nil {
		return nil, err
	}
	if req.Email != nil {
		other, err := s.users.GetByEmail(ctx, *req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to look up email: %w", err)
		}
		if other != nil && other.ID != user.ID {
			return nil, models.Validationf("email already registered")
		}
	}
	if err := user.Apply(models.UserUpdate{Name: req.Name, Email: req.Email, CustomerID: req.CustomerID}); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	slog.Info("User updated", "user_id", user.ID)
	return toUserDTO(user), nil
}
