package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/nutritrack/internal/models"
	"github.com/mmynk/nutritrack/internal/storage"
)

type CreateRecipeRequest struct {
	UserID string                `json:"userId"`
	Name   string                `json:"name"`
	Lines  []IngredientLineInput `json:"lines"`
}

type UpdateRecipeRequest struct {
	ID     string  `json:"id"`
	UserID string  `json:"userId"`
	Name   *string `json:"name,omitempty"`
}

// DuplicateRecipeRequest copies a recipe. An empty Name becomes "<name> (copy)".
type DuplicateRecipeRequest struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Name   string `json:"name,omitempty"`
}

// RecipeService implements the recipe use-cases.
type RecipeService struct {
	recipes     storage.RecipeRepository
	ingredients storage.IngredientRepository
	users       storage.UserRepository
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(repos *storage.Repositories) *RecipeService {
	return &RecipeService{
		recipes:     repos.Recipes,
		ingredients: repos.Ingredients,
		users:       repos.Users,
	}
}

// Create builds a recipe from existing ingredients. At least one line is required.
func (s *RecipeService) Create(ctx context.Context, req CreateRecipeRequest) (*RecipeDTO, error) {
	if _, err := loadUser(ctx, s.users, req.UserID); err != nil {
		return nil, err
	}
	lines, err := resolveLines(ctx, s.ingredients, req.Lines)
	if err != nil {
		return nil, err
	}
	recipe, err := models.NewRecipe(req.UserID, req.Name, lines)
	if err != nil {
		return nil, err
	}
	if err := s.recipes.Save(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}
	slog.Info("Recipe created", "recipe_id", recipe.ID, "user_id", recipe.UserID)
	return toRecipeDTO(recipe), nil
}

// Get returns the recipe, or nil when it does not exist.
func (s *RecipeService) Get(ctx context.Context, id, userID string) (*RecipeDTO, error) {
	if err := requireIDs("recipe id", id, "user id", userID); err != nil {
		return nil, err
	}
	recipe, err := getOwned(ctx, s.recipes.Get, "recipe", id, userID)
	if err != nil || recipe == nil {
		return nil, err
	}
	return toRecipeDTO(recipe), nil
}

// ListForUser returns the user's recipes, oldest first.
func (s *RecipeService) ListForUser(ctx context.Context, userID string) ([]RecipeDTO, error) {
	if err := models.RequireID("user id", userID); err != nil {
		return nil, err
	}
	recipes, err := s.recipes.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	out := make([]RecipeDTO, len(recipes))
	for i, r := range recipes {
		out[i] = *toRecipeDTO(r)
	}
	return out, nil
}

// Update applies a partial update (rename).
func (s *RecipeService) Update(ctx context.Context, req UpdateRecipeRequest) (*RecipeDTO, error) {
	recipe, err := s.loadForWrite(ctx, req.ID, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := recipe.Apply(models.RecipeUpdate{Name: req.Name}); err != nil {
		return nil, err
	}
	if err := s.recipes.Save(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}
	slog.Info("Recipe updated", "recipe_id", recipe.ID, "user_id", req.UserID)
	return toRecipeDTO(recipe), nil
}

// Duplicate stores a copy of the recipe with fresh IDs.
func (s *RecipeService) Duplicate(ctx context.Context, req DuplicateRecipeRequest) (*RecipeDTO, error) {
	recipe, err := s.loadForWrite(ctx, req.ID, req.UserID)
	if err != nil {
		return nil, err
	}
	name := req.Name
	if name == "" {
		name = recipe.Name + " (copy)"
	}
	dup, err := recipe.Duplicate(name)
	if err != nil {
		return nil, err
	}
	if err := s.recipes.Save(ctx, dup); err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}
	slog.Info("Recipe duplicated", "recipe_id", recipe.ID, "copy_id", dup.ID, "user_id", req.UserID)
	return toRecipeDTO(dup), nil
}

// Delete removes the recipe. Meals already created from it are kept.
func (s *RecipeService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.loadForWrite(ctx, id, userID); err != nil {
		return err
	}
	if err := s.recipes.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Recipe deleted", "recipe_id", id, "user_id", userID)
	return nil
}

// AddIngredientLine appends a line to the recipe.
func (s *RecipeService) AddIngredientLine(ctx context.Context, req AddLineRequest) (*RecipeDTO, error) {
	recipe, err := s.loadForWrite(ctx, req.ParentID, req.UserID)
	if err != nil {
		return nil, err
	}
	line, err := resolveLine(ctx, s.ingredients, req.IngredientID, req.QuantityInGrams)
	if err != nil {
		return nil, err
	}
	if err := recipe.AddIngredientLine(*line); err != nil {
		return nil, err
	}
	if err := s.recipes.Save(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}
	slog.Info("Ingredient line added", "recipe_id", recipe.ID, "ingredient_id", req.IngredientID)
	return toRecipeDTO(recipe), nil
}

// RemoveIngredientLine removes exactly one line. The last line cannot be removed.
func (s *RecipeService) RemoveIngredientLine(ctx context.Context, req RemoveLineRequest) (*RecipeDTO, error) {
	if err := models.RequireID("ingredient id", req.IngredientID); err != nil {
		return nil, err
	}
	recipe, err := s.loadForWrite(ctx, req.ParentID, req.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := recipe.RemoveIngredientLine(req.IngredientID); err != nil {
		return nil, err
	}
	if err := s.recipes.Save(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}
	slog.Info("Ingredient line removed", "recipe_id", recipe.ID, "ingredient_id", req.IngredientID)
	return toRecipeDTO(recipe), nil
}

// UpdateIngredientLine changes one line's quantity.
func (s *RecipeService) UpdateIngredientLine(ctx context.Context, req UpdateLineRequest) (*RecipeDTO, error) {
	if err := models.RequireID("line id", req.LineID); err != nil {
		return nil, err
	}
	recipe, err := s.loadForWrite(ctx, req.ParentID, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := recipe.UpdateIngredientLine(req.LineID, req.QuantityInGrams); err != nil {
		return nil, err
	}
	if err := s.recipes.Save(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}
	return toRecipeDTO(recipe), nil
}

func (s *RecipeService) loadForWrite(ctx context.Context, id, userID string) (*models.Recipe, error) {
	if err := requireIDs("recipe id", id, "user id", userID); err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	return loadOwned(ctx, s.recipes.Get, "recipe", id, userID)
}
