package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/nutritrack/internal/fooddb"
	"github.com/mmynk/nutritrack/internal/models"
	"github.com/mmynk/nutritrack/internal/storage"
)

// FoodDatabase is a third-party source of packaged food nutrition.
type FoodDatabase interface {
	ByBarcode(ctx context.Context, barcode string) (*fooddb.FoodProduct, error)
	Search(ctx context.Context, name string) ([]fooddb.FoodProduct, error)
}

// CreateIngredientRequest holds the nutrition basis per 100 grams.
type CreateIngredientRequest struct {
	Name            string  `json:"name"`
	CaloriesPer100g float64 `json:"caloriesPer100g"`
	ProteinPer100g  float64 `json:"proteinPer100g"`
}

// IngredientService manages ingredients and proxies the food database.
type IngredientService struct {
	ingredients storage.IngredientRepository
	external    storage.ExternalIngredientRepository
	tx          storage.Transactor
	foods       FoodDatabase
}

// NewIngredientService creates an IngredientService. foods may be nil,
// in which case barcode lookups only hit the local cache and search is unavailable.
func NewIngredientService(repos *storage.Repositories, foods FoodDatabase) *IngredientService {
	return &IngredientService{
		ingredients: repos.Ingredients,
		external:    repos.ExternalIngredients,
		tx:          repos.Tx,
		foods:       foods,
	}
}

// Create persists a new ingredient.
func (s *IngredientService) Create(ctx context.Context, req CreateIngredientRequest) (*IngredientDTO, error) {
	ing, err := models.NewIngredient(req.Name, req.CaloriesPer100g, req.ProteinPer100g)
	if err != nil {
		return nil, err
	}
	if err := s.ingredients.Save(ctx, ing); err != nil {
		return nil, fmt.Errorf("failed to save ingredient: %w", err)
	}
	slog.Info("Ingredient created", "ingredient_id", ing.ID, "name", ing.Name)
	dto := toIngredientDTO(ing)
	return &dto, nil
}

// Get returns the ingredient, or nil when it does not exist.
func (s *IngredientService) Get(ctx context.Context, id string) (*IngredientDTO, error) {
	if err := models.RequireID("ingredient id", id); err != nil {
		return nil, err
	}
	ing, err := s.ingredients.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredient: %w", err)
	}
	if ing == nil {
		return nil, nil
	}
	dto := toIngredientDTO(ing)
	return &dto, nil
}

// List returns every ingredient ordered by name.
func (s *IngredientService) List(ctx context.Context) ([]IngredientDTO, error) {
	items, err := s.ingredients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	out := make([]IngredientDTO, len(items))
	for i, ing := range items {
		out[i] = toIngredientDTO(ing)
	}
	return out, nil
}

// LookupByBarcode returns the local ingredient for a barcode, creating it from
// the food database on first use. Later lookups are served from the external reference.
func (s *IngredientService) LookupByBarcode(ctx context.Context, barcode string) (*IngredientDTO, error) {
	barcode = strings.TrimSpace(barcode)
	if err := models.RequireID("barcode", barcode); err != nil {
		return nil, err
	}

	ref, err := s.external.Get(ctx, barcode, fooddb.SourceOpenFoodFacts)
	if err != nil {
		return nil, fmt.Errorf("failed to load external ingredient: %w", err)
	}
	if ref != nil {
		ing, err := s.ingredients.Get(ctx, ref.IngredientID)
		if err != nil {
			return nil, fmt.Errorf("failed to load ingredient: %w", err)
		}
		if ing != nil {
			dto := toIngredientDTO(ing)
			return &dto, nil
		}
		slog.Warn("External ingredient points to missing ingredient", "barcode", barcode, "ingredient_id", ref.IngredientID)
	}

	if s.foods == nil {
		return nil, models.NotFoundf("no ingredient for barcode %s", barcode)
	}
	product, err := s.foods.ByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}

	ing, err := models.NewIngredient(product.Name, product.CaloriesPer100g, product.ProteinPer100g)
	if err != nil {
		return nil, err
	}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ingredients.Save(ctx, ing); err != nil {
			return err
		}
		return s.external.Save(ctx, &models.ExternalIngredientRef{
			ExternalID:   product.ExternalID,
			Source:       product.Source,
			IngredientID: ing.ID,
			CreatedAt:    ing.CreatedAt,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save looked up ingredient: %w", err)
	}

	slog.Info("Ingredient imported", "ingredient_id", ing.ID, "barcode", barcode, "source", product.Source)
	dto := toIngredientDTO(ing)
	return &dto, nil
}

// Search proxies a fuzzy name search to the food database. Results are not persisted.
func (s *IngredientService) Search(ctx context.Context, name string) ([]fooddb.FoodProduct, error) {
	if err := models.RequireID("name", name); err != nil {
		return nil, err
	}
	if s.foods == nil {
		return nil, models.Infrastructuref("food database is not configured")
	}
	return s.foods.Search(ctx, name)
}
