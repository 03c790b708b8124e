// Package service implements the application use-cases.
//
// Every mutating operation follows the same steps: validate primitive inputs,
// load the target and check ownership, mutate the entity (which re-validates its
// invariants), persist it and return a DTO.
package service

import (
	"context"
	"fmt"

	"github.com/mmynk/nutritrack/internal/models"
	"github.com/mmynk/nutritrack/internal/storage"
)

// loadUser returns a NotFound error when userID has no account.
func loadUser(ctx context.Context, users storage.UserRepository, userID string) (*models.User, error) {
	if err := models.RequireID("user id", userID); err != nil {
		return nil, err
	}
	user, err := users.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, models.NotFoundf("user %s", userID)
	}
	return user, nil
}

// loadOwned fetches an entity and checks that userID owns it.
// A missing entity is NotFound; one owned by someone else is an Auth error.
func loadOwned[E any, P interface {
	*E
	OwnedBy(userID string) bool
}](ctx context.Context, get func(context.Context, string) (P, error), kind, id, userID string) (P, error) {
	e, err := get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", kind, err)
	}
	if e == nil {
		return nil, models.NotFoundf("%s %s", kind, id)
	}
	if !e.OwnedBy(userID) {
		return nil, models.Authf("%s %s does not belong to user %s", kind, id, userID)
	}
	return e, nil
}

// getOwned is loadOwned for read paths: a missing entity is (nil, nil).
func getOwned[E any, P interface {
	*E
	OwnedBy(userID string) bool
}](ctx context.Context, get func(context.Context, string) (P, error), kind, id, userID string) (P, error) {
	e, err := get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", kind, err)
	}
	if e == nil {
		return nil, nil
	}
	if !e.OwnedBy(userID) {
		return nil, models.Authf("%s %s does not belong to user %s", kind, id, userID)
	}
	return e, nil
}

func requireIDs(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := models.RequireID(pairs[i], pairs[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// resolveLines loads each referenced ingredient and builds the lines.
func resolveLines(ctx context.Context, ingredients storage.IngredientRepository, inputs []IngredientLineInput) ([]models.IngredientLine, error) {
	lines := make([]models.IngredientLine, 0, len(inputs))
	for _, in := range inputs {
		line, err := resolveLine(ctx, ingredients, in.IngredientID, in.QuantityInGrams)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}
	return lines, nil
}

func resolveLine(ctx context.Context, ingredients storage.IngredientRepository, ingredientID string, grams float64) (*models.IngredientLine, error) {
	if err := models.RequireID("ingredient id", ingredientID); err != nil {
		return nil, err
	}
	ing, err := ingredients.Get(ctx, ingredientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredient: %w", err)
	}
	if ing == nil {
		return nil, models.NotFoundf("ingredient %s", ingredientID)
	}
	return models.NewIngredientLine(*ing, grams)
}

// removeFromDays drops mealID from every day of the user that logs it.
func removeFromDays(ctx context.Context, days storage.DayRepository, userID, mealID string) (int, error) {
	all, err := days.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, day := range all {
		if !day.HasMeal(mealID) {
			continue
		}
		if err := day.RemoveMeal(mealID); err != nil {
			return removed, err
		}
		if err := days.Save(ctx, day); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
