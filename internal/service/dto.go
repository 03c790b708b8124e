package service

import (
	"github.com/mmynk/nutritrack/internal/calculator"
	"github.com/mmynk/nutritrack/internal/models"
)

// DTOs are the shapes returned to the HTTP, MCP and CLI layers.
// Nutrition values are rounded here and nowhere else.

// Meal kinds referenced by a day.
const (
	MealKindMeal = "meal"
	MealKindFake = "fake"
)

type IngredientDTO struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	CaloriesPer100g float64 `json:"caloriesPer100g"`
	ProteinPer100g  float64 `json:"proteinPer100g"`
}

type IngredientLineDTO struct {
	ID              string        `json:"id"`
	Ingredient      IngredientDTO `json:"ingredient"`
	QuantityInGrams float64       `json:"quantityInGrams"`
	Calories        float64       `json:"calories"`
	Protein         float64       `json:"protein"`
}

type MealDTO struct {
	ID              string              `json:"id"`
	UserID          string              `json:"userId"`
	Name            string              `json:"name"`
	IngredientLines []IngredientLineDTO `json:"ingredientLines"`
	Calories        float64             `json:"calories"`
	Protein         float64             `json:"protein"`
	CreatedAt       int64               `json:"createdAt"`
	UpdatedAt       int64               `json:"updatedAt"`
}

type RecipeDTO struct {
	ID              string              `json:"id"`
	UserID          string              `json:"userId"`
	Name            string              `json:"name"`
	IngredientLines []IngredientLineDTO `json:"ingredientLines"`
	Calories        float64             `json:"calories"`
	Protein         float64             `json:"protein"`
	CreatedAt       int64               `json:"createdAt"`
	UpdatedAt       int64               `json:"updatedAt"`
}

type FakeMealDTO struct {
	ID       string  `json:"id"`
	UserID   string  `json:"userId"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
}

// DayDTO is a day with unresolved meal references.
type DayDTO struct {
	Date       string   `json:"date"`
	UserID     string   `json:"userId"`
	MealIDs    []string `json:"mealIds"`
	MealsCount int      `json:"mealsCount"`
}

// MealSummaryDTO is one resolved entry of an assembled day.
type MealSummaryDTO struct {
	ID       string  `json:"id"`
	Kind     string  `json:"kind"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
}

// AssembledDayDTO is a day with every meal reference resolved and totals computed.
type AssembledDayDTO struct {
	Date       string           `json:"date"`
	UserID     string           `json:"userId"`
	Meals      []MealSummaryDTO `json:"meals"`
	MealsCount int              `json:"mealsCount"`
	Calories   float64          `json:"calories"`
	Protein    float64          `json:"protein"`
}

type UserDTO struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	CustomerID *string `json:"customerId,omitempty"`
	CreatedAt  int64   `json:"createdAt"`
}

type ExerciseDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ExerciseLineDTO struct {
	ExerciseID string  `json:"exerciseId"`
	Sets       int     `json:"sets"`
	Reps       int     `json:"reps"`
	WeightKg   float64 `json:"weightKg"`
}

type WorkoutTemplateDTO struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	Name      string            `json:"name"`
	Exercises []ExerciseLineDTO `json:"exercises"`
}

type WorkoutDTO struct {
	ID          string            `json:"id"`
	UserID      string            `json:"userId"`
	Name        string            `json:"name"`
	Date        string            `json:"date"`
	TemplateID  *string           `json:"templateId,omitempty"`
	Exercises   []ExerciseLineDTO `json:"exercises"`
	TotalVolume float64           `json:"totalVolume"`
}

func toIngredientDTO(i *models.Ingredient) IngredientDTO {
	return IngredientDTO{
		ID:              i.ID,
		Name:            i.Name,
		CaloriesPer100g: i.NutritionPer100g.Calories,
		ProteinPer100g:  i.NutritionPer100g.Protein,
	}
}

func toLineDTOs(lines models.IngredientLines) []IngredientLineDTO {
	out := make([]IngredientLineDTO, len(lines))
	for i, l := range lines {
		n := calculator.Round(l.Nutrition())
		out[i] = IngredientLineDTO{
			ID:              l.ID,
			Ingredient:      toIngredientDTO(&l.Ingredient),
			QuantityInGrams: l.QuantityInGrams,
			Calories:        n.Calories,
			Protein:         n.Protein,
		}
	}
	return out
}

func toMealDTO(m *models.Meal) *MealDTO {
	n := calculator.Round(m.Nutrition())
	return &MealDTO{
		ID:              m.ID,
		UserID:          m.UserID,
		Name:            m.Name,
		IngredientLines: toLineDTOs(m.IngredientLines),
		Calories:        n.Calories,
		Protein:         n.Protein,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toRecipeDTO(r *models.Recipe) *RecipeDTO {
	n := calculator.Round(r.Nutrition())
	return &RecipeDTO{
		ID:              r.ID,
		UserID:          r.UserID,
		Name:            r.Name,
		IngredientLines: toLineDTOs(r.IngredientLines),
		Calories:        n.Calories,
		Protein:         n.Protein,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func toFakeMealDTO(f *models.FakeMeal) *FakeMealDTO {
	n := calculator.Round(f.Nutrition())
	return &FakeMealDTO{
		ID:       f.ID,
		UserID:   f.UserID,
		Name:     f.Name,
		Calories: n.Calories,
		Protein:  n.Protein,
	}
}

func toDayDTO(d *models.Day) *DayDTO {
	ids := make([]string, len(d.MealIDs))
	copy(ids, d.MealIDs)
	return &DayDTO{
		Date:       d.Date,
		UserID:     d.UserID,
		MealIDs:    ids,
		MealsCount: d.MealsCount(),
	}
}

func toUserDTO(u *models.User) *UserDTO {
	return &UserDTO{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		CustomerID: u.CustomerID,
		CreatedAt:  u.CreatedAt,
	}
}

func toExerciseDTO(e *models.Exercise) *ExerciseDTO {
	return &ExerciseDTO{ID: e.ID, Name: e.Name}
}

func toExerciseLineDTOs(lines models.ExerciseLines) []ExerciseLineDTO {
	out := make([]ExerciseLineDTO, len(lines))
	for i, l := range lines {
		out[i] = ExerciseLineDTO{ExerciseID: l.ExerciseID, Sets: l.Sets, Reps: l.Reps, WeightKg: l.WeightKg}
	}
	return out
}

func toWorkoutTemplateDTO(t *models.WorkoutTemplate) *WorkoutTemplateDTO {
	return &WorkoutTemplateDTO{
		ID:        t.ID,
		UserID:    t.UserID,
		Name:      t.Name,
		Exercises: toExerciseLineDTOs(t.Exercises),
	}
}

func toWorkoutDTO(w *models.Workout) *WorkoutDTO {
	return &WorkoutDTO{
		ID:          w.ID,
		UserID:      w.UserID,
		Name:        w.Name,
		Date:        w.Date,
		TemplateID:  w.TemplateID,
		Exercises:   toExerciseLineDTOs(w.Exercises),
		TotalVolume: w.Exercises.TotalVolume(),
	}
}
