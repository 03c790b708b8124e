package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/nutritrack/internal/calculator"
	"github.com/mmynk/nutritrack/internal/models"
	"github.com/mmynk/nutritrack/internal/storage"
)

type AddMealToDayRequest struct {
	Date   string `json:"date"`
	UserID string `json:"userId"`
	MealID string `json:"mealId"`
}

type AddMealsToDayRequest struct {
	Date    string   `json:"date"`
	UserID  string   `json:"userId"`
	MealIDs []string `json:"mealIds"`
}

// DayMeals is one entry of a multiple-to-multiple addition.
type DayMeals struct {
	Date    string   `json:"date"`
	MealIDs []string `json:"mealIds"`
}

type AddFakeMealToDayRequest struct {
	Date     string  `json:"date"`
	UserID   string  `json:"userId"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
}

type AddRecipeToDayRequest struct {
	Date     string `json:"date"`
	UserID   string `json:"userId"`
	RecipeID string `json:"recipeId"`
}

// DayService implements day logging and day assembly.
type DayService struct {
	days      storage.DayRepository
	meals     storage.MealRepository
	fakeMeals storage.FakeMealRepository
	recipes   storage.RecipeRepository
	users     storage.UserRepository
	tx        storage.Transactor
}

// NewDayService creates a new DayService.
func NewDayService(repos *storage.Repositories) *DayService {
	return &DayService{
		days:      repos.Days,
		meals:     repos.Meals,
		fakeMeals: repos.FakeMeals,
		recipes:   repos.Recipes,
		users:     repos.Users,
		tx:        repos.Tx,
	}
}

// GetDay returns the day, or nil when nothing was logged on that date.
func (s *DayService) GetDay(ctx context.Context, date, userID string) (*DayDTO, error) {
	date, err := s.validate(date, userID)
	if err != nil {
		return nil, err
	}
	day, err := s.days.Get(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load day: %w", err)
	}
	if day == nil {
		return nil, nil
	}
	return toDayDTO(day), nil
}

// ListDays returns every day of the user ordered by date.
func (s *DayService) ListDays(ctx context.Context, userID string) ([]DayDTO, error) {
	if err := models.RequireID("user id", userID); err != nil {
		return nil, err
	}
	days, err := s.days.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list days: %w", err)
	}
	out := make([]DayDTO, len(days))
	for i, d := range days {
		out[i] = *toDayDTO(d)
	}
	return out, nil
}

// GetAssembledDay resolves every meal reference of the day and computes totals.
// It returns nil when the day does not exist.
func (s *DayService) GetAssembledDay(ctx context.Context, date, userID string) (*AssembledDayDTO, error) {
	date, err := s.validate(date, userID)
	if err != nil {
		return nil, err
	}
	day, err := s.days.Get(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load day: %w", err)
	}
	if day == nil {
		return nil, nil
	}
	return s.assemble(ctx, day)
}

// GetMultipleAssembledDays assembles each date in input order.
// Dates without a day get a nil placeholder.
func (s *DayService) GetMultipleAssembledDays(ctx context.Context, dates []string, userID string) ([]*AssembledDayDTO, error) {
	if err := models.RequireID("user id", userID); err != nil {
		return nil, err
	}
	out := make([]*AssembledDayDTO, len(dates))
	for i, date := range dates {
		day, err := s.GetAssembledDay(ctx, date, userID)
		if err != nil {
			return nil, err
		}
		out[i] = day
	}
	return out, nil
}

// AddMealToDay logs a meal or fake meal on a date, creating the day if needed.
// Logging a meal that is already on the day is a no-op.
func (s *DayService) AddMealToDay(ctx context.Context, req AddMealToDayRequest) (*DayDTO, error) {
	return s.AddMealsToDay(ctx, AddMealsToDayRequest{Date: req.Date, UserID: req.UserID, MealIDs: []string{req.MealID}})
}

// AddMealsToDay logs several meals on one date.
func (s *DayService) AddMealsToDay(ctx context.Context, req AddMealsToDayRequest) (*DayDTO, error) {
	days, err := s.AddMealsToMultipleDays(ctx, req.UserID, []DayMeals{{Date: req.Date, MealIDs: req.MealIDs}})
	if err != nil {
		return nil, err
	}
	return &days[0], nil
}

// AddMealsToMultipleDays logs meals on several dates in one transaction.
func (s *DayService) AddMealsToMultipleDays(ctx context.Context, userID string, entries []DayMeals) ([]DayDTO, error) {
	if err := models.RequireID("user id", userID); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, models.Validationf("at least one day is required")
	}
	normalized := make([]DayMeals, len(entries))
	for i, e := range entries {
		date, err := models.ParseDate(e.Date)
		if err != nil {
			return nil, err
		}
		if len(e.MealIDs) == 0 {
			return nil, models.Validationf("at least one meal id is required for %s", date)
		}
		for _, id := range e.MealIDs {
			if err := models.RequireID("meal id", id); err != nil {
				return nil, err
			}
		}
		normalized[i] = DayMeals{Date: date, MealIDs: e.MealIDs}
	}
	if _, err := loadUser(ctx, s.users, userID); err != nil {
		return nil, err
	}

	out := make([]DayDTO, 0, len(entries))
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, e := range normalized {
			for _, id := range e.MealIDs {
				if err := s.checkMealOwnership(ctx, id, userID); err != nil {
					return err
				}
			}
			day, err := s.addToDay(ctx, e.Date, userID, e.MealIDs...)
			if err != nil {
				return err
			}
			out = append(out, *toDayDTO(day))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AddFakeMealToDay creates a fake meal and logs it on the date in one transaction.
func (s *DayService) AddFakeMealToDay(ctx context.Context, req AddFakeMealToDayRequest) (*DayDTO, error) {
	date, err := s.validate(req.Date, req.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.users, req.UserID); err != nil {
		return nil, err
	}
	fm, err := models.NewFakeMeal(req.UserID, req.Name, req.Calories, req.Protein)
	if err != nil {
		return nil, err
	}

	var day *models.Day
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.fakeMeals.Save(ctx, fm); err != nil {
			return fmt.Errorf("failed to save fake meal: %w", err)
		}
		var err error
		day, err = s.addToDay(ctx, date, req.UserID, fm.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	slog.Info("Fake meal logged", "fake_meal_id", fm.ID, "user_id", req.UserID, "date", date)
	return toDayDTO(day), nil
}

// AddRecipeToDay instantiates a new meal from the recipe and logs it on the date.
func (s *DayService) AddRecipeToDay(ctx context.Context, req AddRecipeToDayRequest) (*DayDTO, error) {
	date, err := s.validate(req.Date, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := models.RequireID("recipe id", req.RecipeID); err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.users, req.UserID); err != nil {
		return nil, err
	}
	recipe, err := loadOwned(ctx, s.recipes.Get, "recipe", req.RecipeID, req.UserID)
	if err != nil {
		return nil, err
	}
	meal, err := recipe.ToMeal(req.UserID)
	if err != nil {
		return nil, err
	}

	var day *models.Day
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.meals.Save(ctx, meal); err != nil {
			return fmt.Errorf("failed to save meal: %w", err)
		}
		var err error
		day, err = s.addToDay(ctx, date, req.UserID, meal.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	slog.Info("Recipe logged", "recipe_id", recipe.ID, "meal_id", meal.ID, "user_id", req.UserID, "date", date)
	return toDayDTO(day), nil
}

// RemoveMealFromDay removes a meal reference. The meal itself is kept.
func (s *DayService) RemoveMealFromDay(ctx context.Context, date, userID, mealID string) (*DayDTO, error) {
	date, err := s.validate(date, userID)
	if err != nil {
		return nil, err
	}
	if err := models.RequireID("meal id", mealID); err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	day, err := s.days.Get(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load day: %w", err)
	}
	if day == nil {
		return nil, models.NotFoundf("day %s", date)
	}
	if err := day.RemoveMeal(mealID); err != nil {
		return nil, err
	}
	if err := s.days.Save(ctx, day); err != nil {
		return nil, fmt.Errorf("failed to save day: %w", err)
	}
	slog.Info("Meal removed from day", "meal_id", mealID, "user_id", userID, "date", date)
	return toDayDTO(day), nil
}

// DeleteDay removes the day. Logged meals are kept.
func (s *DayService) DeleteDay(ctx context.Context, date, userID string) error {
	date, err := s.validate(date, userID)
	if err != nil {
		return err
	}
	if _, err := loadUser(ctx, s.users, userID); err != nil {
		return err
	}
	day, err := s.days.Get(ctx, userID, date)
	if err != nil {
		return fmt.Errorf("failed to load day: %w", err)
	}
	if day == nil {
		return models.NotFoundf("day %s", date)
	}
	if err := s.days.Delete(ctx, userID, date); err != nil {
		return err
	}
	slog.Info("Day deleted", "user_id", userID, "date", date)
	return nil
}

func (s *DayService) validate(date, userID string) (string, error) {
	if err := models.RequireID("user id", userID); err != nil {
		return "", err
	}
	return models.ParseDate(date)
}

// addToDay loads or creates the day, appends the meal IDs and saves it.
func (s *DayService) addToDay(ctx context.Context, date, userID string, mealIDs ...string) (*models.Day, error) {
	day, err := s.days.Get(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load day: %w", err)
	}
	if day == nil {
		if day, err = models.NewDay(date, userID); err != nil {
			return nil, err
		}
	}
	added := 0
	for _, id := range mealIDs {
		ok, err := day.AddMeal(id)
		if err != nil {
			return nil, err
		}
		if ok {
			added++
		}
	}
	if err := s.days.Save(ctx, day); err != nil {
		return nil, fmt.Errorf("failed to save day: %w", err)
	}
	slog.Info("Meals added to day", "user_id", userID, "date", date, "added", added, "meals_count", day.MealsCount())
	return day, nil
}

// checkMealOwnership resolves id as a meal, then as a fake meal.
func (s *DayService) checkMealOwnership(ctx context.Context, id, userID string) error {
	meal, err := s.meals.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load meal: %w", err)
	}
	if meal != nil {
		if !meal.OwnedBy(userID) {
			return models.Authf("meal %s does not belong to user %s", id, userID)
		}
		return nil
	}
	_, err = loadOwned(ctx, s.fakeMeals.Get, "meal", id, userID)
	return err
}

// assemble resolves the day's meal references. References that resolve to
// neither a meal nor a fake meal of the user are skipped with a warning.
func (s *DayService) assemble(ctx context.Context, day *models.Day) (*AssembledDayDTO, error) {
	summaries := make([]MealSummaryDTO, 0, len(day.MealIDs))
	var values []calculator.Nutrition

	for _, id := range day.MealIDs {
		summary, n, err := s.resolve(ctx, id, day.UserID)
		if err != nil {
			return nil, err
		}
		if summary == nil {
			slog.Warn("Skipping dangling meal reference", "meal_id", id, "user_id", day.UserID, "date", day.Date)
			continue
		}
		summaries = append(summaries, *summary)
		values = append(values, n)
	}

	total := calculator.Round(calculator.Sum(values...))
	return &AssembledDayDTO{
		Date:       day.Date,
		UserID:     day.UserID,
		Meals:      summaries,
		MealsCount: len(summaries),
		Calories:   total.Calories,
		Protein:    total.Protein,
	}, nil
}

func (s *DayService) resolve(ctx context.Context, id, userID string) (*MealSummaryDTO, calculator.Nutrition, error) {
	meal, err := s.meals.Get(ctx, id)
	if err != nil {
		return nil, calculator.Nutrition{}, fmt.Errorf("failed to load meal: %w", err)
	}
	if meal != nil && meal.OwnedBy(userID) {
		n := meal.Nutrition()
		r := calculator.Round(n)
		return &MealSummaryDTO{ID: meal.ID, Kind: MealKindMeal, Name: meal.Name, Calories: r.Calories, Protein: r.Protein}, n, nil
	}

	fm, err := s.fakeMeals.Get(ctx, id)
	if err != nil {
		return nil, calculator.Nutrition{}, fmt.Errorf("failed to load fake meal: %w", err)
	}
	if fm != nil && fm.OwnedBy(userID) {
		n := fm.Nutrition()
		r := calculator.Round(n)
		return &MealSummaryDTO{ID: fm.ID, Kind: MealKindFake, Name: fm.Name, Calories: r.Calories, Protein: r.Protein}, n, nil
	}
	return nil, calculator.Nutrition{}, nil
}
