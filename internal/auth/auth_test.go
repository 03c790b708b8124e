package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/nutritrack/internal/models"
	"github.com/mmynk/nutritrack/internal/storage"
	"github.com/mmynk/nutritrack/internal/storage/memory"
)

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.GenerateToken("user-1")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if !m.ValidateToken(token) {
		t.Error("expected generated token to validate")
	}
	userID, err := m.CurrentUserID(token)
	if err != nil {
		t.Fatalf("CurrentUserID failed: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("CurrentUserID = %q, want user-1", userID)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"wrong secret", mustToken(t, NewJWTManager("other-secret", time.Hour), "user-1")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if m.ValidateToken(tt.token) {
				t.Error("expected token to be rejected")
			}
			if _, err := m.CurrentUserID(tt.token); !errors.Is(err, models.ErrAuth) {
				t.Errorf("expected auth error, got %v", err)
			}
		})
	}
}

func TestJWTManagerExpiry(t *testing.T) {
	m := NewJWTManager("test-secret", 7*24*time.Hour)
	issued := time.Now()
	m.now = func() time.Time { return issued }
	token := mustToken(t, m, "user-1")

	m.now = func() time.Time { return issued.Add(6 * 24 * time.Hour) }
	if !m.ValidateToken(token) {
		t.Error("expected token to be valid before expiry")
	}
	m.now = func() time.Time { return issued.Add(8 * 24 * time.Hour) }
	if m.ValidateToken(token) {
		t.Error("expected token to be expired")
	}
}

func TestGenerateTokenRequiresUserID(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	if _, err := m.GenerateToken("  "); !errors.Is(err, models.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func mustToken(t *testing.T, m *JWTManager, userID string) string {
	t.Helper()
	token, err := m.GenerateToken(userID)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	return token
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	repos := storage.NewRepositories(memory.New())
	a := NewPasswordAuthenticator(repos.Users).WithCost(bcrypt.MinCost)

	user, err := a.Register(ctx, "Jane@Example.com", "Jane", "correct-horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.PasswordHash == "correct-horse" {
		t.Error("expected password to be hashed")
	}
	if user.Email != "jane@example.com" {
		t.Errorf("Email = %q, want lower-cased", user.Email)
	}

	t.Run("duplicate email", func(t *testing.T) {
		_, err := a.Register(ctx, "jane@example.com", "Other", "another-pass")
		if !errors.Is(err, ErrEmailExists) {
			t.Errorf("expected ErrEmailExists, got %v", err)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := a.Register(ctx, "new@example.com", "New", "short")
		if !errors.Is(err, ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("login", func(t *testing.T) {
		got, err := a.Authenticate(ctx, "JANE@example.com", "correct-horse")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("Authenticate returned %s, want %s", got.ID, user.ID)
		}
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		_, err1 := a.Authenticate(ctx, "jane@example.com", "wrong-password")
		_, err2 := a.Authenticate(ctx, "ghost@example.com", "correct-horse")
		if !errors.Is(err1, ErrInvalidCredentials) || !errors.Is(err2, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v and %v", err1, err2)
		}
	})
}
