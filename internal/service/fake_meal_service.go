package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/nutritrack/internal/models"
	"github.com/mmynk/nutritrack/internal/storage"
)

type CreateFakeMealRequest struct {
	UserID   string  `json:"userId"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
}

type UpdateFakeMealRequest struct {
	ID       string   `json:"id"`
	UserID   string   `json:"userId"`
	Name     *string  `json:"name,omitempty"`
	Calories *float64 `json:"calories,omitempty"`
	Protein  *float64 `json:"protein,omitempty"`
}

// FakeMealService implements the quick-log meal use-cases.
type FakeMealService struct {
	fakeMeals storage.FakeMealRepository
	days      storage.DayRepository
	users     storage.UserRepository
	tx        storage.Transactor
}

// NewFakeMealService creates a new FakeMealService.
func NewFakeMealService(repos *storage.Repositories) *FakeMealService {
	return &FakeMealService{
		fakeMeals: repos.FakeMeals,
		days:      repos.Days,
		users:     repos.Users,
		tx:        repos.Tx,
	}
}

func (s *FakeMealService) Create(ctx context.Context, req CreateFakeMealRequest) (*FakeMealDTO, error) {
	if _, err := loadUser(ctx, s.users, req.UserID); err != nil {
		return nil, err
	}
	fm, err := models.NewFakeMeal(req.UserID, req.Name, req.Calories, req.Protein)
	if err != nil {
		return nil, err
	}
	if err := s.fakeMeals.Save(ctx, fm); err != nil {
		return nil, fmt.Errorf("failed to save fake meal: %w", err)
	}
	slog.Info("Fake meal created", "fake_meal_id", fm.ID, "user_id", fm.UserID)
	return toFakeMealDTO(fm), nil
}

func (s *FakeMealService) Get(ctx context.Context, id, userID string) (*FakeMealDTO, error) {
	if err := requireIDs("fake meal id", id, "user id", userID); err != nil {
		return nil, err
	}
	fm, err := getOwned(ctx, s.fakeMeals.Get, "fake meal", id, userID)
	if err != nil || fm == nil {
		return nil, err
	}
	return toFakeMealDTO(fm), nil
}

func (s *FakeMealService) ListForUser(ctx context.Context, userID string) ([]FakeMealDTO, error) {
	if err := models.RequireID("user id", userID); err != nil {
		return nil, err
	}
	items, err := s.fakeMeals.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fake meals: %w", err)
	}
	out := make([]FakeMealDTO, len(items))
	for i, fm := range items {
		out[i] = *toFakeMealDTO(fm)
	}
	return out, nil
}

func (s *FakeMealService) Update(ctx context.Context, req UpdateFakeMealRequest) (*FakeMealDTO, error) {
	fm, err := s.loadForWrite(ctx, req.ID, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := fm.Apply(models.FakeMealUpdate{Name: req.Name, Calories: req.Calories, Protein: req.Protein}); err != nil {
		return nil, err
	}
	if err := s.fakeMeals.Save(ctx, fm); err != nil {
		return nil, fmt.Errorf("failed to save fake meal: %w", err)
	}
	slog.Info("Fake meal updated", "fake_meal_id", fm.ID, "user_id", req.UserID)
	return toFakeMealDTO(fm), nil
}

// Delete removes the fake meal and its references from the user's days.
func (s *FakeMealService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.loadForWrite(ctx, id, userID); err != nil {
		return err
	}
	var removed int
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.fakeMeals.Delete(ctx, id); err != nil {
			return err
		}
		var err error
		removed, err = removeFromDays(ctx, s.days, userID, id)
		return err
	})
	if err != nil {
		return err
	}
	slog.Info("Fake meal deleted", "fake_meal_id", id, "user_id", userID, "days_updated", removed)
	return nil
}

func (s *FakeMealService) loadForWrite(ctx context.Context, id, userID string) (*models.FakeMeal, error) {
	if err := requireIDs("fake meal id", id, "user id", userID); err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	return loadOwned(ctx, s.fakeMeals.Get, "fake meal", id, userID)
}
