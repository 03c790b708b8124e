package mcp

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mmynk/nutritrack/internal/app"
	"github.com/mmynk/nutritrack/internal/config"
	"github.com/mmynk/nutritrack/internal/models"
	"github.com/mmynk/nutritrack/internal/service"
	"github.com/mmynk/nutritrack/internal/storage/memory"
)

const testEmail = "ada@example.com"

// setupServer builds a server for a fresh user on a memory backend, pinned to 2024-03-01.
func setupServer(t *testing.T) (*Server, *app.Application) {
	t.Helper()

	cfg := &config.Config{
		Env:  config.EnvTest,
		Auth: config.AuthConfig{JWTSecret: "test-secret", TokenTTLDays: 7},
	}
	a, err := app.New(cfg, memory.New(), app.Options{})
	if err != nil {
		t.Fatalf("app.New failed: %v", err)
	}
	t.Cleanup(func() { a.Close() })

	user, err := models.NewUser(testEmail, "Ada", "hash")
	if err != nil {
		t.Fatalf("NewUser failed: %v", err)
	}
	if err := a.Repos.Users.Save(context.Background(), user); err != nil {
		t.Fatalf("Save user failed: %v", err)
	}

	server, err := NewServer(context.Background(), a, testEmail)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	server.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return server, a
}

func createMeal(t *testing.T, s *Server) *service.MealDTO {
	t.Helper()
	ctx := context.Background()
	ing, err := s.app.Ingredients.Create(ctx, service.CreateIngredientRequest{Name: "Chicken breast", CaloriesPer100g: 165, ProteinPer100g: 31})
	if err != nil {
		t.Fatalf("Create ingredient failed: %v", err)
	}
	meal, err := s.app.Meals.Create(ctx, service.CreateMealRequest{
		UserID: s.userID,
		Name:   "Lunch",
		Lines:  []service.IngredientLineInput{{IngredientID: ing.ID, QuantityInGrams: 200}},
	})
	if err != nil {
		t.Fatalf("Create meal failed: %v", err)
	}
	return meal
}

func TestNewServerUnknownEmail(t *testing.T) {
	_, a := setupServer(t)
	_, err := NewServer(context.Background(), a, "nobody@example.com")
	if err == nil {
		t.Fatal("Expected error for unknown email")
	}
}

func TestHandleGetDayDefaultsToToday(t *testing.T) {
	s, _ := setupServer(t)
	ctx := context.Background()

	_, out, err := s.handleGetDay(ctx, &mcp.CallToolRequest{}, dateInput{})
	if err != nil {
		t.Fatalf("handleGetDay failed: %v", err)
	}
	if out.Day != nil {
		t.Errorf("Expected no day, got %+v", out.Day)
	}
	if !strings.Contains(out.Message, "2024-03-01") {
		t.Errorf("Message = %q, want today's date", out.Message)
	}

	_, _, err = s.handleLogFakeMeal(ctx, &mcp.CallToolRequest{}, logFakeMealInput{Name: "Protein bar", Calories: 200, Protein: 20})
	if err != nil {
		t.Fatalf("handleLogFakeMeal failed: %v", err)
	}

	_, out, err = s.handleGetDay(ctx, &mcp.CallToolRequest{}, dateInput{Date: "2024-03-01"})
	if err != nil {
		t.Fatalf("handleGetDay failed: %v", err)
	}
	if out.Day == nil || out.Day.Calories != 200 || out.Day.Protein != 20 {
		t.Errorf("Day = %+v, want 200 kcal / 20 g", out.Day)
	}
}

func TestHandleAddAndRemoveMeal(t *testing.T) {
	s, _ := setupServer(t)
	ctx := context.Background()
	meal := createMeal(t, s)

	_, logged, err := s.handleAddMealToDay(ctx, &mcp.CallToolRequest{}, addMealInput{Date: "2024-02-28", MealIDs: []string{meal.ID}})
	if err != nil {
		t.Fatalf("handleAddMealToDay failed: %v", err)
	}
	if len(logged.Day.MealIDs) != 1 {
		t.Errorf("MealIDs = %v, want one entry", logged.Day.MealIDs)
	}

	_, days, err := s.handleGetDays(ctx, &mcp.CallToolRequest{}, datesInput{Dates: []string{"2024-02-28", "2024-02-29"}})
	if err != nil {
		t.Fatalf("handleGetDays failed: %v", err)
	}
	if len(days.Days) != 2 {
		t.Fatalf("got %d days, want 2", len(days.Days))
	}
	if days.Days[0].Day == nil || days.Days[0].Day.Calories != 330 {
		t.Errorf("first day = %+v, want 330 kcal", days.Days[0].Day)
	}
	if days.Days[1].Day != nil || days.Days[1].Date != "2024-02-29" {
		t.Errorf("second entry = %+v, want empty 2024-02-29", days.Days[1])
	}

	_, removed, err := s.handleRemoveMealFromDay(ctx, &mcp.CallToolRequest{}, removeMealInput{Date: "2024-02-28", MealID: meal.ID})
	if err != nil {
		t.Fatalf("handleRemoveMealFromDay failed: %v", err)
	}
	if len(removed.Day.MealIDs) != 0 {
		t.Errorf("MealIDs = %v, want empty", removed.Day.MealIDs)
	}

	_, _, err = s.handleAddMealToDay(ctx, &mcp.CallToolRequest{}, addMealInput{MealIDs: []string{"missing"}})
	if err == nil {
		t.Error("Expected error for unknown meal")
	}
}

func TestHandleAddRecipeAndLists(t *testing.T) {
	s, _ := setupServer(t)
	ctx := context.Background()
	meal := createMeal(t, s)

	recipe, err := s.app.Recipes.Create(ctx, service.CreateRecipeRequest{
		UserID: s.userID,
		Name:   "Chicken bowl",
		Lines: []service.IngredientLineInput{{
			IngredientID:    meal.IngredientLines[0].Ingredient.ID,
			QuantityInGrams: 100,
		}},
	})
	if err != nil {
		t.Fatalf("Create recipe failed: %v", err)
	}

	if _, _, err := s.handleAddRecipeToDay(ctx, &mcp.CallToolRequest{}, addRecipeInput{RecipeID: recipe.ID}); err != nil {
		t.Fatalf("handleAddRecipeToDay failed: %v", err)
	}

	_, meals, err := s.handleListMeals(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("handleListMeals failed: %v", err)
	}
	// The original meal plus the one instantiated from the recipe.
	if len(meals.Meals) != 2 {
		t.Errorf("got %d meals, want 2", len(meals.Meals))
	}

	_, recipes, err := s.handleListRecipes(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("handleListRecipes failed: %v", err)
	}
	if len(recipes.Recipes) != 1 || recipes.Recipes[0].Calories != 165 {
		t.Errorf("recipes = %+v, want one 165 kcal recipe", recipes.Recipes)
	}

	_, workouts, err := s.handleListWorkouts(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("handleListWorkouts failed: %v", err)
	}
	if workouts.Workouts == nil || len(workouts.Workouts) != 0 {
		t.Errorf("workouts = %v, want empty slice", workouts.Workouts)
	}
}

func TestTodayResource(t *testing.T) {
	s, _ := setupServer(t)
	ctx := context.Background()

	res, err := s.handleTodayResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handleTodayResource failed: %v", err)
	}
	if len(res.Contents) != 1 || !strings.Contains(res.Contents[0].Text, "Nothing logged") {
		t.Errorf("unexpected contents: %+v", res.Contents)
	}
}
