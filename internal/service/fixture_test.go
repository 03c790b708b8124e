package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/nutritrack/internal/models"
	"github.com/mmynk/nutritrack/internal/storage"
	"github.com/mmynk/nutritrack/internal/storage/memory"
)

// fixture wires every service over a fresh in-memory backend.
type fixture struct {
	ctx       context.Context
	repos     *storage.Repositories
	meals     *MealService
	recipes   *RecipeService
	fakeMeals *FakeMealService
	days      *DayService
	users     *UserService
	exercises *ExerciseService
	templates *WorkoutTemplateService
	workouts  *WorkoutService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := storage.NewRepositories(memory.New())
	return &fixture{
		ctx:       context.Background(),
		repos:     repos,
		meals:     NewMealService(repos),
		recipes:   NewRecipeService(repos),
		fakeMeals: NewFakeMealService(repos),
		days:      NewDayService(repos),
		users:     NewUserService(repos),
		exercises: NewExerciseService(repos),
		templates: NewWorkoutTemplateService(repos),
		workouts:  NewWorkoutService(repos),
	}
}

func (f *fixture) user(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := models.NewUser(email, "Test User", "hash")
	require.NoError(t, err)
	require.NoError(t, f.repos.Users.Save(f.ctx, u))
	return u
}

func (f *fixture) ingredient(t *testing.T, name string, calories, protein float64) *models.Ingredient {
	t.Helper()
	ing, err := models.NewIngredient(name, calories, protein)
	require.NoError(t, err)
	require.NoError(t, f.repos.Ingredients.Save(f.ctx, ing))
	return ing
}

func (f *fixture) meal(t *testing.T, userID string, lines ...IngredientLineInput) *MealDTO {
	t.Helper()
	m, err := f.meals.Create(f.ctx, CreateMealRequest{UserID: userID, Name: "Lunch", Lines: lines})
	require.NoError(t, err)
	return m
}
