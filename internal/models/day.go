package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used as a Day's identity.
const DateLayout = "2006-01-02"

// Day lists the meals a user logged on one calendar date.
// Entries reference either a Meal or a FakeMeal by ID, in logging order.
type Day struct {
	Date      string   `json:"date"`
	UserID    string   `json:"user_id"`
	MealIDs   []string `json:"meal_ids"`
	CreatedAt int64    `json:"created_at"`
	UpdatedAt int64    `json:"updated_at"`
}

// ParseDate validates a YYYY-MM-DD date string and returns it normalized.
func ParseDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", Validationf("date must not be empty")
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return "", Validationf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t.Format(DateLayout), nil
}

// DayKey is the unique storage key of a day: one per (user, date).
func DayKey(userID, date string) string {
	return fmt.Sprintf("%s_%s", userID, date)
}

// NewDay creates an empty day for userID.
func NewDay(date, userID string) (*Day, error) {
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	if err := requireText("user id", userID); err != nil {
		return nil, err
	}
	ts := now()
	return &Day{
		Date:      d,
		UserID:    userID,
		MealIDs:   []string{},
		CreatedAt: ts,
		UpdatedAt: ts,
	}, nil
}

// Key returns the day's storage key.
func (d *Day) Key() string {
	return DayKey(d.UserID, d.Date)
}

// MealsCount returns the number of logged meals.
func (d *Day) MealsCount() int {
	return len(d.MealIDs)
}

// HasMeal reports whether mealID is logged on this day.
func (d *Day) HasMeal(mealID string) bool {
	for _, id := range d.MealIDs {
		if id == mealID {
			return true
		}
	}
	return false
}

// AddMeal appends mealID. Adding a meal that is already logged is a no-op
// and returns false.
func (d *Day) AddMeal(mealID string) (bool, error) {
	if err := requireText("meal id", mealID); err != nil {
		return false, err
	}
	if d.HasMeal(mealID) {
		return false, nil
	}
	d.MealIDs = append(d.MealIDs, mealID)
	d.UpdatedAt = now()
	return true, nil
}

// RemoveMeal removes mealID from the day.
func (d *Day) RemoveMeal(mealID string) error {
	for i, id := range d.MealIDs {
		if id == mealID {
			d.MealIDs = append(d.MealIDs[:i:i], d.MealIDs[i+1:]...)
			d.UpdatedAt = now()
			return nil
		}
	}
	return NotFoundf("meal %s is not logged on %s", mealID, d.Date)
}
