package models

import (
	"errors"
	"testing"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2024-03-01", "2024-03-01", false},
		{" 2024-03-01 ", "2024-03-01", false},
		{"", "", true},
		{"2024-02-30", "", true},
		{"03/01/2024", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrValidation) {
				t.Errorf("ParseDate(%q): expected ErrValidation, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseDate(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestDayMeals(t *testing.T) {
	day, err := NewDay("2024-03-01", "user-1")
	if err != nil {
		t.Fatalf("NewDay failed: %v", err)
	}
	if day.MealsCount() != 0 {
		t.Errorf("MealsCount = %d, want 0", day.MealsCount())
	}

	added, err := day.AddMeal("meal-1")
	if err != nil || !added {
		t.Fatalf("AddMeal = %v, %v", added, err)
	}
	added, _ = day.AddMeal("meal-1")
	if added {
		t.Error("adding the same meal twice should be a no-op")
	}
	day.AddMeal("meal-2")
	if day.MealsCount() != 2 {
		t.Errorf("MealsCount = %d, want 2", day.MealsCount())
	}

	if err := day.RemoveMeal("meal-1"); err != nil {
		t.Fatalf("RemoveMeal failed: %v", err)
	}
	if day.HasMeal("meal-1") || !day.HasMeal("meal-2") {
		t.Errorf("unexpected meals after remove: %v", day.MealIDs)
	}
	if err := day.RemoveMeal("meal-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDayKey(t *testing.T) {
	day, _ := NewDay("2024-03-01", "user-1")
	if day.Key() != "user-1_2024-03-01" {
		t.Errorf("Key = %q", day.Key())
	}
}
