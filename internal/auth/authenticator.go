package auth

import (
	"context"

	"github.com/mmynk/nutritrack/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, passkeys, OAuth, etc.)
// without changing the service layer code.
type Authenticator interface {
	// Register creates a new user account with the given email and credential.
	// Returns the created user or an error if registration fails.
	Register(ctx context.Context, email, name, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}

// TokenService issues and verifies session tokens.
// Callers treat the user ID it resolves as trusted input.
type TokenService interface {
	GenerateToken(userID string) (string, error)
	ValidateToken(token string) bool
	CurrentUserID(token string) (string, error)
}
