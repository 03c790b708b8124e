package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mmynk/nutritrack/internal/calculator"
)

// Ingredient is a food with a fixed nutrition basis per 100 grams.
type Ingredient struct {
	// ID is the unique identifier for the ingredient (UUID format).
	ID string `json:"id"`

	// Name is the display name (e.g., "Chicken breast").
	Name string `json:"name"`

	// NutritionPer100g is the immutable basis every IngredientLine scales from.
	NutritionPer100g calculator.Nutrition `json:"nutrition_per_100g"`

	// CreatedAt is the Unix timestamp when the ingredient was created.
	CreatedAt int64 `json:"created_at"`
}

// NewIngredient validates the inputs and returns an ingredient with a fresh ID.
func NewIngredient(name string, caloriesPer100g, proteinPer100g float64) (*Ingredient, error) {
	ing := &Ingredient{
		ID:   uuid.New().String(),
		Name: strings.TrimSpace(name),
		NutritionPer100g: calculator.Nutrition{
			Calories: caloriesPer100g,
			Protein:  proteinPer100g,
		},
		CreatedAt: now(),
	}
	if err := ing.Validate(); err != nil {
		return nil, err
	}
	return ing, nil
}

// Validate checks the ingredient invariants.
func (i *Ingredient) Validate() error {
	if err := requireText("ingredient name", i.Name); err != nil {
		return err
	}
	if err := requireNonNegative("calories per 100g", i.NutritionPer100g.Calories); err != nil {
		return err
	}
	return requireNonNegative("protein per 100g", i.NutritionPer100g.Protein)
}

// IngredientLine is a quantity of one ingredient within a meal or recipe.
type IngredientLine struct {
	ID              string     `json:"id"`
	Ingredient      Ingredient `json:"ingredient"`
	QuantityInGrams float64    `json:"quantity_in_grams"`
}

// NewIngredientLine creates a line owning a copy of the ingredient.
func NewIngredientLine(ingredient Ingredient, quantityInGrams float64) (*IngredientLine, error) {
	line := &IngredientLine{
		ID:              uuid.New().String(),
		Ingredient:      ingredient,
		QuantityInGrams: quantityInGrams,
	}
	if err := line.Validate(); err != nil {
		return nil, err
	}
	return line, nil
}

// Validate checks the line and the ingredient it owns.
func (l IngredientLine) Validate() error {
	if err := l.Ingredient.Validate(); err != nil {
		return err
	}
	return requirePositive("quantity in grams", l.QuantityInGrams)
}

// Nutrition is the ingredient basis scaled to this line's quantity.
func (l IngredientLine) Nutrition() calculator.Nutrition {
	return calculator.ForQuantity(l.Ingredient.NutritionPer100g, l.QuantityInGrams)
}

// Calories returns the line's calories.
func (l IngredientLine) Calories() float64 {
	return l.Nutrition().Calories
}

// Protein returns the line's protein in grams.
func (l IngredientLine) Protein() float64 {
	return l.Nutrition().Protein
}

// IngredientLines is the ordered line list shared by meals and recipes.
type IngredientLines []IngredientLine

// Nutrition sums every line. It is recomputed on each call.
func (ls IngredientLines) Nutrition() calculator.Nutrition {
	values := make([]calculator.Nutrition, len(ls))
	for i, l := range ls {
		values[i] = l.Nutrition()
	}
	return calculator.Sum(values...)
}

func (ls IngredientLines) validate() error {
	for _, l := range ls {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (ls *IngredientLines) add(line IngredientLine) error {
	if err := line.Validate(); err != nil {
		return err
	}
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	*ls = append(*ls, line)
	return nil
}

// removeByIngredient drops the first line that references ingredientID.
func (ls *IngredientLines) removeByIngredient(ingredientID string) (IngredientLine, error) {
	for i, l := range *ls {
		if l.Ingredient.ID == ingredientID {
			*ls = append((*ls)[:i:i], (*ls)[i+1:]...)
			return l, nil
		}
	}
	return IngredientLine{}, NotFoundf("no ingredient line with ingredient %s", ingredientID)
}

func (ls IngredientLines) updateQuantity(lineID string, quantityInGrams float64) error {
	if err := requirePositive("quantity in grams", quantityInGrams); err != nil {
		return err
	}
	for i := range ls {
		if ls[i].ID == lineID {
			ls[i].QuantityInGrams = quantityInGrams
			return nil
		}
	}
	return NotFoundf("ingredient line %s", lineID)
}

// clone copies the lines with fresh line IDs.
func (ls IngredientLines) clone() IngredientLines {
	out := make(IngredientLines, len(ls))
	for i, l := range ls {
		l.ID = uuid.New().String()
		out[i] = l
	}
	return out
}

// ExternalIngredientRef maps an ingredient from a third-party food database
// to the local Ingredient created for it.
type ExternalIngredientRef struct {
	ExternalID   string `json:"external_id"`
	Source       string `json:"source"`
	IngredientID string `json:"ingredient_id"`
	CreatedAt    int64  `json:"created_at"`
}

// Key is the storage key of the reference: "{externalId}-{source}".
func (r ExternalIngredientRef) Key() string {
	return ExternalRefKey(r.ExternalID, r.Source)
}

// ExternalRefKey builds the storage key for an external ingredient reference.
func ExternalRefKey(externalID, source string) string {
	return fmt.Sprintf("%s-%s", externalID, source)
}
