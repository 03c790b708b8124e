package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/mmynk/nutritrack/internal/calculator"
)

// FakeMeal is a quick-log entry whose totals are stated directly,
// without an ingredient breakdown.
type FakeMeal struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Name      string  `json:"name"`
	Calories  float64 `json:"calories"`
	Protein   float64 `json:"protein"`
	CreatedAt int64   `json:"created_at"`
	UpdatedAt int64   `json:"updated_at"`
}

// FakeMealUpdate is a partial update for a fake meal.
type FakeMealUpdate struct {
	Name     *string
	Calories *float64
	Protein  *float64
}

// NewFakeMeal validates the inputs and returns a fake meal with a fresh ID.
func NewFakeMeal(userID, name string, calories, protein float64) (*FakeMeal, error) {
	if err := requireText("user id", userID); err != nil {
		return nil, err
	}
	ts := now()
	fm := &FakeMeal{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		Calories:  calories,
		Protein:   protein,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := fm.validate(); err != nil {
		return nil, err
	}
	return fm, nil
}

func (f *FakeMeal) validate() error {
	if err := requireText("fake meal name", f.Name); err != nil {
		return err
	}
	if err := requireNonNegative("calories", f.Calories); err != nil {
		return err
	}
	return requireNonNegative("protein", f.Protein)
}

// Nutrition returns the stated totals.
func (f *FakeMeal) Nutrition() calculator.Nutrition {
	return calculator.Nutrition{Calories: f.Calories, Protein: f.Protein}
}

// OwnedBy reports whether the fake meal belongs to userID.
func (f *FakeMeal) OwnedBy(userID string) bool {
	return f.UserID == userID
}

// Apply validates and applies a partial update in one step.
// On a validation failure the fake meal is left unchanged.
func (f *FakeMeal) Apply(u FakeMealUpdate) error {
	next := *f
	if u.Name != nil {
		next.Name = strings.TrimSpace(*u.Name)
	}
	if u.Calories != nil {
		next.Calories = *u.Calories
	}
	if u.Protein != nil {
		next.Protein = *u.Protein
	}
	if err := next.validate(); err != nil {
		return err
	}
	next.UpdatedAt = now()
	*f = next
	return nil
}
