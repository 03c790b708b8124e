package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/nutritrack/internal/models"
	"github.com/mmynk/nutritrack/internal/storage"
)

// IngredientLineInput references an existing ingredient and a quantity.
type IngredientLineInput struct {
	IngredientID    string  `json:"ingredientId"`
	QuantityInGrams float64 `json:"quantityInGrams"`
}

type CreateMealRequest struct {
	UserID string                `json:"userId"`
	Name   string                `json:"name"`
	Lines  []IngredientLineInput `json:"lines"`
}

type UpdateMealRequest struct {
	ID     string  `json:"id"`
	UserID string  `json:"userId"`
	Name   *string `json:"name,omitempty"`
}

// AddLineRequest adds an ingredient line to a meal or recipe (ParentID).
type AddLineRequest struct {
	ParentID        string  `json:"parentId"`
	UserID          string  `json:"userId"`
	IngredientID    string  `json:"ingredientId"`
	QuantityInGrams float64 `json:"quantityInGrams"`
}

// RemoveLineRequest removes the first line referencing IngredientID.
type RemoveLineRequest struct {
	ParentID     string `json:"parentId"`
	UserID       string `json:"userId"`
	IngredientID string `json:"ingredientId"`
}

// UpdateLineRequest changes the quantity of one line.
type UpdateLineRequest struct {
	ParentID        string  `json:"parentId"`
	UserID          string  `json:"userId"`
	LineID          string  `json:"lineId"`
	QuantityInGrams float64 `json:"quantityInGrams"`
}

// MealService implements the meal use-cases.
type MealService struct {
	meals       storage.MealRepository
	ingredients storage.IngredientRepository
	days        storage.DayRepository
	users       storage.UserRepository
	tx          storage.Transactor
}

// NewMealService creates a new MealService.
func NewMealService(repos *storage.Repositories) *MealService {
	return &MealService{
		meals:       repos.Meals,
		ingredients: repos.Ingredients,
		days:        repos.Days,
		users:       repos.Users,
		tx:          repos.Tx,
	}
}

// Create builds a meal from existing ingredients.
func (s *MealService) Create(ctx context.Context, req CreateMealRequest) (*MealDTO, error) {
	if _, err := loadUser(ctx, s.users, req.UserID); err != nil {
		return nil, err
	}
	lines, err := resolveLines(ctx, s.ingredients, req.Lines)
	if err != nil {
		return nil, err
	}
	meal, err := models.NewMeal(req.UserID, req.Name, lines)
	if err != nil {
		return nil, err
	}
	if err := s.meals.Save(ctx, meal); err != nil {
		return nil, fmt.Errorf("failed to save meal: %w", err)
	}
	slog.Info("Meal created", "meal_id", meal.ID, "user_id", meal.UserID, "lines", len(meal.IngredientLines))
	return toMealDTO(meal), nil
}

// Get returns the meal, or nil when it does not exist.
func (s *MealService) Get(ctx context.Context, id, userID string) (*MealDTO, error) {
	if err := requireIDs("meal id", id, "user id", userID); err != nil {
		return nil, err
	}
	meal, err := getOwned(ctx, s.meals.Get, "meal", id, userID)
	if err != nil || meal == nil {
		return nil, err
	}
	return toMealDTO(meal), nil
}

// ListForUser returns the user's meals, oldest first.
func (s *MealService) ListForUser(ctx context.Context, userID string) ([]MealDTO, error) {
	if err := models.RequireID("user id", userID); err != nil {
		return nil, err
	}
	meals, err := s.meals.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	out := make([]MealDTO, len(meals))
	for i, m := range meals {
		out[i] = *toMealDTO(m)
	}
	return out, nil
}

// Update applies a partial update.
func (s *MealService) Update(ctx context.Context, req UpdateMealRequest) (*MealDTO, error) {
	meal, err := s.loadForWrite(ctx, req.ID, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := meal.Apply(models.MealUpdate{Name: req.Name}); err != nil {
		return nil, err
	}
	if err := s.meals.Save(ctx, meal); err != nil {
		return nil, fmt.Errorf("failed to save meal: %w", err)
	}
	slog.Info("Meal updated", "meal_id", meal.ID, "user_id", req.UserID)
	return toMealDTO(meal), nil
}

// Delete removes the meal and every reference to it from the user's days.
func (s *MealService) Delete(ctx context.Context, id, userID string) error {
	if err := requireIDs("meal id", id, "user id", userID); err != nil {
		return err
	}
	if _, err := loadUser(ctx, s.users, userID); err != nil {
		return err
	}
	var removed int
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := loadOwned(ctx, s.meals.Get, "meal", id, userID); err != nil {
			return err
		}
		if err := s.meals.Delete(ctx, id); err != nil {
			return err
		}
		var err error
		removed, err = removeFromDays(ctx, s.days, userID, id)
		return err
	})
	if err != nil {
		return err
	}
	slog.Info("Meal deleted", "meal_id", id, "user_id", userID, "days_updated", removed)
	return nil
}

// AddIngredientLine appends a line to the meal.
func (s *MealService) AddIngredientLine(ctx context.Context, req AddLineRequest) (*MealDTO, error) {
	meal, err := s.loadForWrite(ctx, req.ParentID, req.UserID)
	if err != nil {
		return nil, err
	}
	line, err := resolveLine(ctx, s.ingredients, req.IngredientID, req.QuantityInGrams)
	if err != nil {
		return nil, err
	}
	if err := meal.AddIngredientLine(*line); err != nil {
		return nil, err
	}
	if err := s.meals.Save(ctx, meal); err != nil {
		return nil, fmt.Errorf("failed to save meal: %w", err)
	}
	slog.Info("Ingredient line added", "meal_id", meal.ID, "ingredient_id", req.IngredientID)
	return toMealDTO(meal), nil
}

// RemoveIngredientLine removes exactly one line referencing the ingredient.
func (s *MealService) RemoveIngredientLine(ctx context.Context, req RemoveLineRequest) (*MealDTO, error) {
	if err := models.RequireID("ingredient id", req.IngredientID); err != nil {
		return nil, err
	}
	meal, err := s.loadForWrite(ctx, req.ParentID, req.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := meal.RemoveIngredientLine(req.IngredientID); err != nil {
		return nil, err
	}
	if err := s.meals.Save(ctx, meal); err != nil {
		return nil, fmt.Errorf("failed to save meal: %w", err)
	}
	slog.Info("Ingredient line removed", "meal_id", meal.ID, "ingredient_id", req.IngredientID)
	return toMealDTO(meal), nil
}

// UpdateIngredientLine changes one line's quantity.
func (s *MealService) UpdateIngredientLine(ctx context.Context, req UpdateLineRequest) (*MealDTO, error) {
	if err := models.RequireID("line id", req.LineID); err != nil {
		return nil, err
	}
	meal, err := s.loadForWrite(ctx, req.ParentID, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := meal.UpdateIngredientLine(req.LineID, req.QuantityInGrams); err != nil {
		return nil, err
	}
	if err := s.meals.Save(ctx, meal); err != nil {
		return nil, fmt.Errorf("failed to save meal: %w", err)
	}
	return toMealDTO(meal), nil
}

func (s *MealService) loadForWrite(ctx context.Context, id, userID string) (*models.Meal, error) {
	if err := requireIDs("meal id", id, "user id", userID); err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	return loadOwned(ctx, s.meals.Get, "meal", id, userID)
}
