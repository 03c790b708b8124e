package models

import (
	"net/mail"
	"strings"

	"github.com/google/uuid"
)

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the user's email address (unique, lower-cased).
	// Used for login.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"password_hash"`

	// CustomerID links the user to a billing customer, if any.
	CustomerID *string `json:"customer_id,omitempty"`

	// CreatedAt is the Unix timestamp when the user account was created.
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp of the last profile change.
	UpdatedAt int64 `json:"updated_at"`
}

// UserUpdate is a partial update for a user profile.
type UserUpdate struct {
	Name       *string
	Email      *string
	CustomerID *string
}

// NewUser creates a user with a generated ID and timestamps.
func NewUser(email, name, passwordHash string) (*User, error) {
	ts := now()
	u := &User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	if err := u.validate(); err != nil {
		return nil, err
	}
	if err := requireText("password hash", passwordHash); err != nil {
		return nil, err
	}
	return u, nil
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) validate() error {
	if err := requireText("user name", u.Name); err != nil {
		return err
	}
	if err := requireText("email", u.Email); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return Validationf("invalid email %q", u.Email)
	}
	return nil
}

// Apply validates and applies a partial update in one step.
// An empty CustomerID clears the billing link.
func (u *User) Apply(upd UserUpdate) error {
	next := *u
	if upd.Name != nil {
		next.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Email != nil {
		next.Email = NormalizeEmail(*upd.Email)
	}
	if upd.CustomerID != nil {
		if strings.TrimSpace(*upd.CustomerID) == "" {
			next.CustomerID = nil
		} else {
			id := strings.TrimSpace(*upd.CustomerID)
			next.CustomerID = &id
		}
	}
	if err := next.validate(); err != nil {
		return err
	}
	next.UpdatedAt = now()
	*u = next
	return nil
}
