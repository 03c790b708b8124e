package calculator

import (
	"math"
	"testing"
)

func TestForQuantity(t *testing.T) {
	tests := []struct {
		name    string
		per100g Nutrition
		grams   float64
		want    Nutrition
	}{
		{
			name:    "chicken breast 200g",
			per100g: Nutrition{Calories: 165, Protein: 31},
			grams:   200,
			want:    Nutrition{Calories: 330, Protein: 62},
		},
		{
			name:    "exactly 100g returns basis",
			per100g: Nutrition{Calories: 200, Protein: 10},
			grams:   100,
			want:    Nutrition{Calories: 200, Protein: 10},
		},
		{
			name:    "half portion",
			per100g: Nutrition{Calories: 200, Protein: 0},
			grams:   50,
			want:    Nutrition{Calories: 100, Protein: 0},
		},
		{
			name:    "fractional grams",
			per100g: Nutrition{Calories: 52, Protein: 0.3},
			grams:   12.5,
			want:    Nutrition{Calories: 6.5, Protein: 0.0375},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForQuantity(tt.per100g, tt.grams)
			if math.Abs(got.Calories-tt.want.Calories) > 1e-9 {
				t.Errorf("Calories = %v, want %v", got.Calories, tt.want.Calories)
			}
			if math.Abs(got.Protein-tt.want.Protein) > 1e-9 {
				t.Errorf("Protein = %v, want %v", got.Protein, tt.want.Protein)
			}
		})
	}
}

func TestSum(t *testing.T) {
	if got := Sum(); !got.IsZero() {
		t.Errorf("Sum() = %+v, want zero", got)
	}

	got := Sum(
		Nutrition{Calories: 330, Protein: 62},
		Nutrition{Calories: 100, Protein: 0},
		Nutrition{Calories: 12.5, Protein: 1.5},
	)
	if got.Calories != 442.5 {
		t.Errorf("Calories = %v, want 442.5", got.Calories)
	}
	if got.Protein != 63.5 {
		t.Errorf("Protein = %v, want 63.5", got.Protein)
	}
}

func TestAddSub(t *testing.T) {
	a := Nutrition{Calories: 330, Protein: 62}
	b := Nutrition{Calories: 100, Protein: 2}

	sum := a.Add(b)
	if sum.Calories != 430 || sum.Protein != 64 {
		t.Errorf("Add = %+v, want {430 64}", sum)
	}
	back := sum.Sub(b)
	if back != a {
		t.Errorf("Sub = %+v, want %+v", back, a)
	}
}

func TestRound(t *testing.T) {
	got := Round(Nutrition{Calories: 123.456, Protein: 7.04})
	if got.Calories != 123.5 {
		t.Errorf("Calories = %v, want 123.5", got.Calories)
	}
	if got.Protein != 7.0 {
		t.Errorf("Protein = %v, want 7.0", got.Protein)
	}
}
