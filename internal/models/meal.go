package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/mmynk/nutritrack/internal/calculator"
)

// Meal is a named list of ingredient lines a user ate.
// Totals are never cached; they are summed from the lines on every read.
type Meal struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Name            string          `json:"name"`
	IngredientLines IngredientLines `json:"ingredient_lines"`
	CreatedAt       int64           `json:"created_at"`
	UpdatedAt       int64           `json:"updated_at"`
}

// MealUpdate is a partial update for a meal. Nil fields are left unchanged.
type MealUpdate struct {
	Name *string
}

// NewMeal creates a meal. A meal needs at least one ingredient line at creation.
func NewMeal(userID, name string, lines []IngredientLine) (*Meal, error) {
	if err := requireText("user id", userID); err != nil {
		return nil, err
	}
	if err := requireText("meal name", name); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, Validationf("a meal needs at least one ingredient line")
	}
	ls := make(IngredientLines, 0, len(lines))
	for _, l := range lines {
		if err := ls.add(l); err != nil {
			return nil, err
		}
	}
	ts := now()
	return &Meal{
		ID:              uuid.New().String(),
		UserID:          userID,
		Name:            strings.TrimSpace(name),
		IngredientLines: ls,
		CreatedAt:       ts,
		UpdatedAt:       ts,
	}, nil
}

// Nutrition is the sum over the meal's ingredient lines.
func (m *Meal) Nutrition() calculator.Nutrition {
	return m.IngredientLines.Nutrition()
}

// Calories returns the meal's total calories.
func (m *Meal) Calories() float64 {
	return m.Nutrition().Calories
}

// Protein returns the meal's total protein in grams.
func (m *Meal) Protein() float64 {
	return m.Nutrition().Protein
}

// OwnedBy reports whether the meal belongs to userID.
func (m *Meal) OwnedBy(userID string) bool {
	return m.UserID == userID
}

// AddIngredientLine appends a line.
func (m *Meal) AddIngredientLine(line IngredientLine) error {
	if err := m.IngredientLines.add(line); err != nil {
		return err
	}
	m.touch()
	return nil
}

// RemoveIngredientLine removes exactly one line referencing ingredientID.
func (m *Meal) RemoveIngredientLine(ingredientID string) (IngredientLine, error) {
	removed, err := m.IngredientLines.removeByIngredient(ingredientID)
	if err != nil {
		return IngredientLine{}, err
	}
	m.touch()
	return removed, nil
}

// UpdateIngredientLine changes the quantity of one line.
func (m *Meal) UpdateIngredientLine(lineID string, quantityInGrams float64) error {
	if err := m.IngredientLines.updateQuantity(lineID, quantityInGrams); err != nil {
		return err
	}
	m.touch()
	return nil
}

// Apply validates and applies a partial update in one step.
func (m *Meal) Apply(u MealUpdate) error {
	if u.Name != nil {
		if err := requireText("meal name", *u.Name); err != nil {
			return err
		}
		m.Name = strings.TrimSpace(*u.Name)
	}
	m.touch()
	return nil
}

func (m *Meal) touch() {
	m.UpdatedAt = now()
}

// Recipe is a reusable list of ingredient lines.
// Unlike a meal, a recipe must keep at least one line for its whole life.
type Recipe struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Name            string          `json:"name"`
	IngredientLines IngredientLines `json:"ingredient_lines"`
	CreatedAt       int64           `json:"created_at"`
	UpdatedAt       int64           `json:"updated_at"`
}

// RecipeUpdate is a partial update for a recipe.
type RecipeUpdate struct {
	Name *string
}

// NewRecipe creates a recipe from at least one ingredient line.
func NewRecipe(userID, name string, lines []IngredientLine) (*Recipe, error) {
	if err := requireText("user id", userID); err != nil {
		return nil, err
	}
	if err := requireText("recipe name", name); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, Validationf("a recipe needs at least one ingredient line")
	}
	ls := make(IngredientLines, 0, len(lines))
	for _, l := range lines {
		if err := ls.add(l); err != nil {
			return nil, err
		}
	}
	ts := now()
	return &Recipe{
		ID:              uuid.New().String(),
		UserID:          userID,
		Name:            strings.TrimSpace(name),
		IngredientLines: ls,
		CreatedAt:       ts,
		UpdatedAt:       ts,
	}, nil
}

// Nutrition is the sum over the recipe's ingredient lines.
func (r *Recipe) Nutrition() calculator.Nutrition {
	return r.IngredientLines.Nutrition()
}

// Calories returns the recipe's total calories.
func (r *Recipe) Calories() float64 {
	return r.Nutrition().Calories
}

// Protein returns the recipe's total protein in grams.
func (r *Recipe) Protein() float64 {
	return r.Nutrition().Protein
}

// OwnedBy reports whether the recipe belongs to userID.
func (r *Recipe) OwnedBy(userID string) bool {
	return r.UserID == userID
}

// AddIngredientLine appends a line.
func (r *Recipe) AddIngredientLine(line IngredientLine) error {
	if err := r.IngredientLines.add(line); err != nil {
		return err
	}
	r.touch()
	return nil
}

// RemoveIngredientLine removes exactly one line referencing ingredientID.
// Removing the last line is rejected.
func (r *Recipe) RemoveIngredientLine(ingredientID string) (IngredientLine, error) {
	if len(r.IngredientLines) == 1 && r.IngredientLines[0].Ingredient.ID == ingredientID {
		return IngredientLine{}, Validationf("a recipe needs at least one ingredient line")
	}
	removed, err := r.IngredientLines.removeByIngredient(ingredientID)
	if err != nil {
		return IngredientLine{}, err
	}
	r.touch()
	return removed, nil
}

// UpdateIngredientLine changes the quantity of one line.
func (r *Recipe) UpdateIngredientLine(lineID string, quantityInGrams float64) error {
	if err := r.IngredientLines.updateQuantity(lineID, quantityInGrams); err != nil {
		return err
	}
	r.touch()
	return nil
}

// Apply validates and applies a partial update in one step.
func (r *Recipe) Apply(u RecipeUpdate) error {
	if u.Name != nil {
		if err := requireText("recipe name", *u.Name); err != nil {
			return err
		}
		r.Name = strings.TrimSpace(*u.Name)
	}
	r.touch()
	return nil
}

// Duplicate returns a copy of the recipe with a new ID, fresh line IDs and the given name.
func (r *Recipe) Duplicate(name string) (*Recipe, error) {
	return NewRecipe(r.UserID, name, r.IngredientLines.clone())
}

// ToMeal instantiates a meal for userID from the recipe's lines.
func (r *Recipe) ToMeal(userID string) (*Meal, error) {
	return NewMeal(userID, r.Name, r.IngredientLines.clone())
}

func (r *Recipe) touch() {
	r.UpdatedAt = now()
}
