package models

import (
	"errors"
	"math"
	"testing"
)

func mustIngredient(t *testing.T, name string, calories, protein float64) *Ingredient {
	t.Helper()
	ing, err := NewIngredient(name, calories, protein)
	if err != nil {
		t.Fatalf("NewIngredient failed: %v", err)
	}
	return ing
}

func mustLine(t *testing.T, ing *Ingredient, grams float64) IngredientLine {
	t.Helper()
	line, err := NewIngredientLine(*ing, grams)
	if err != nil {
		t.Fatalf("NewIngredientLine failed: %v", err)
	}
	return *line
}

func TestIngredientLineNutrition(t *testing.T) {
	chicken := mustIngredient(t, "Chicken breast", 165, 31)
	line := mustLine(t, chicken, 200)

	if line.Calories() != 330 {
		t.Errorf("Calories = %v, want 330", line.Calories())
	}
	if line.Protein() != 62 {
		t.Errorf("Protein = %v, want 62", line.Protein())
	}
}

func TestNewIngredientLine_InvalidQuantity(t *testing.T) {
	chicken := mustIngredient(t, "Chicken breast", 165, 31)
	for _, q := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		if _, err := NewIngredientLine(*chicken, q); !errors.Is(err, ErrValidation) {
			t.Errorf("quantity %v: expected ErrValidation, got %v", q, err)
		}
	}
}

func TestNewIngredient_Validation(t *testing.T) {
	tests := []struct {
		name     string
		ingName  string
		calories float64
		protein  float64
		wantErr  bool
	}{
		{"valid", "Rice", 130, 2.7, false},
		{"zero protein allowed", "Sugar", 387, 0, false},
		{"empty name", "", 100, 1, true},
		{"whitespace name", "   ", 100, 1, true},
		{"negative calories", "Rice", -1, 1, true},
		{"negative protein", "Rice", 100, -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewIngredient(tt.ingName, tt.calories, tt.protein)
			if tt.wantErr && !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestMealTotals(t *testing.T) {
	chicken := mustIngredient(t, "Chicken breast", 165, 31)
	oats := mustIngredient(t, "Oats", 200, 0)

	meal, err := NewMeal("user-1", "Lunch", []IngredientLine{mustLine(t, chicken, 200)})
	if err != nil {
		t.Fatalf("NewMeal failed: %v", err)
	}
	if meal.Calories() != 330 {
		t.Errorf("Calories = %v, want 330", meal.Calories())
	}

	second := mustLine(t, oats, 50)
	if err := meal.AddIngredientLine(second); err != nil {
		t.Fatalf("AddIngredientLine failed: %v", err)
	}
	if meal.Calories() != 430 {
		t.Errorf("Calories after add = %v, want 430", meal.Calories())
	}
	if meal.Protein() != 62 {
		t.Errorf("Protein after add = %v, want 62", meal.Protein())
	}

	removed, err := meal.RemoveIngredientLine(oats.ID)
	if err != nil {
		t.Fatalf("RemoveIngredientLine failed: %v", err)
	}
	if removed.Calories() != 100 {
		t.Errorf("removed line calories = %v, want 100", removed.Calories())
	}
	if meal.Calories() != 330 {
		t.Errorf("Calories after remove = %v, want 330", meal.Calories())
	}
}

func TestMealRemoveIngredientLine_RemovesExactlyOne(t *testing.T) {
	rice := mustIngredient(t, "Rice", 130, 2.7)
	meal, err := NewMeal("user-1", "Rice bowl", []IngredientLine{
		mustLine(t, rice, 100),
		mustLine(t, rice, 50),
	})
	if err != nil {
		t.Fatalf("NewMeal failed: %v", err)
	}

	if _, err := meal.RemoveIngredientLine(rice.ID); err != nil {
		t.Fatalf("RemoveIngredientLine failed: %v", err)
	}
	if len(meal.IngredientLines) != 1 {
		t.Fatalf("expected 1 line left, got %d", len(meal.IngredientLines))
	}
	if meal.IngredientLines[0].QuantityInGrams != 50 {
		t.Errorf("expected the first matching line to be removed, remaining quantity %v", meal.IngredientLines[0].QuantityInGrams)
	}

	if _, err := meal.RemoveIngredientLine("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestNewMeal_Validation(t *testing.T) {
	rice := mustIngredient(t, "Rice", 130, 2.7)
	line := mustLine(t, rice, 100)

	if _, err := NewMeal("user-1", "", []IngredientLine{line}); !errors.Is(err, ErrValidation) {
		t.Errorf("empty name: expected ErrValidation, got %v", err)
	}
	if _, err := NewMeal("user-1", "Dinner", nil); !errors.Is(err, ErrValidation) {
		t.Errorf("no lines: expected ErrValidation, got %v", err)
	}
	if _, err := NewMeal("", "Dinner", []IngredientLine{line}); !errors.Is(err, ErrValidation) {
		t.Errorf("no user: expected ErrValidation, got %v", err)
	}
}

func TestMealApply(t *testing.T) {
	rice := mustIngredient(t, "Rice", 130, 2.7)
	meal, _ := NewMeal("user-1", "Dinner", []IngredientLine{mustLine(t, rice, 100)})

	name := "  Late dinner "
	if err := meal.Apply(MealUpdate{Name: &name}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if meal.Name != "Late dinner" {
		t.Errorf("Name = %q, want %q", meal.Name, "Late dinner")
	}

	empty := ""
	if err := meal.Apply(MealUpdate{Name: &empty}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	if meal.Name != "Late dinner" {
		t.Errorf("failed update must not change the name, got %q", meal.Name)
	}
}

func TestMealUpdateIngredientLine(t *testing.T) {
	rice := mustIngredient(t, "Rice", 100, 2)
	meal, _ := NewMeal("user-1", "Dinner", []IngredientLine{mustLine(t, rice, 100)})
	lineID := meal.IngredientLines[0].ID

	if err := meal.UpdateIngredientLine(lineID, 250); err != nil {
		t.Fatalf("UpdateIngredientLine failed: %v", err)
	}
	if meal.Calories() != 250 {
		t.Errorf("Calories = %v, want 250", meal.Calories())
	}
	if err := meal.UpdateIngredientLine(lineID, 0); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	if err := meal.UpdateIngredientLine("nope", 10); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRecipeKeepsAtLeastOneLine(t *testing.T) {
	rice := mustIngredient(t, "Rice", 130, 2.7)
	beans := mustIngredient(t, "Beans", 120, 8)

	recipe, err := NewRecipe("user-1", "Rice and beans", []IngredientLine{mustLine(t, rice, 100), mustLine(t, beans, 100)})
	if err != nil {
		t.Fatalf("NewRecipe failed: %v", err)
	}
	if recipe.Calories() != 250 {
		t.Errorf("Calories = %v, want 250", recipe.Calories())
	}

	if _, err := recipe.RemoveIngredientLine(rice.ID); err != nil {
		t.Fatalf("RemoveIngredientLine failed: %v", err)
	}
	if _, err := recipe.RemoveIngredientLine(beans.ID); !errors.Is(err, ErrValidation) {
		t.Errorf("removing the last line: expected ErrValidation, got %v", err)
	}
	if len(recipe.IngredientLines) != 1 {
		t.Errorf("expected 1 line, got %d", len(recipe.IngredientLines))
	}

	if _, err := NewRecipe("user-1", "Empty", nil); !errors.Is(err, ErrValidation) {
		t.Errorf("empty recipe: expected ErrValidation, got %v", err)
	}
}

func TestRecipeDuplicateAndToMeal(t *testing.T) {
	rice := mustIngredient(t, "Rice", 130, 2.7)
	recipe, _ := NewRecipe("user-1", "Rice", []IngredientLine{mustLine(t, rice, 200)})

	dup, err := recipe.Duplicate("Rice (copy)")
	if err != nil {
		t.Fatalf("Duplicate failed: %v", err)
	}
	if dup.ID == recipe.ID {
		t.Error("duplicate must have a new ID")
	}
	if dup.IngredientLines[0].ID == recipe.IngredientLines[0].ID {
		t.Error("duplicate lines must have new IDs")
	}
	if dup.Calories() != recipe.Calories() {
		t.Errorf("duplicate calories = %v, want %v", dup.Calories(), recipe.Calories())
	}

	meal, err := recipe.ToMeal("user-1")
	if err != nil {
		t.Fatalf("ToMeal failed: %v", err)
	}
	if meal.Name != "Rice" || meal.Calories() != recipe.Calories() {
		t.Errorf("meal = %q/%v, want Rice/%v", meal.Name, meal.Calories(), recipe.Calories())
	}
}
