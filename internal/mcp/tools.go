package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mmynk/nutritrack/internal/service"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_day",
		Description: "Get the meals and calorie/protein totals logged on a date",
	}, s.handleGetDay)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_days",
		Description: "Get the assembled days for several dates, in the given order",
	}, s.handleGetDays)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_meal_to_day",
		Description: "Log one or more existing meals on a date",
	}, s.handleAddMealToDay)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_fake_meal",
		Description: "Quick-log a meal by its calories and protein only",
	}, s.handleLogFakeMeal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_recipe_to_day",
		Description: "Create a meal from a recipe and log it on a date",
	}, s.handleAddRecipeToDay)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "remove_meal_from_day",
		Description: "Remove a logged meal from a date. The meal itself is kept",
	}, s.handleRemoveMealFromDay)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_meals",
		Description: "List the user's meals with their totals",
	}, s.handleListMeals)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_recipes",
		Description: "List the user's recipes with their totals",
	}, s.handleListRecipes)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List the user's workouts, newest first",
	}, s.handleListWorkouts)
}

// Tool input/output types

type dateInput struct {
	Date string `json:"date,omitempty" jsonschema:"calendar date as YYYY-MM-DD, defaults to today"`
}

type datesInput struct {
	Dates []string `json:"dates" jsonschema:"calendar dates as YYYY-MM-DD"`
}

type addMealInput struct {
	Date    string   `json:"date,omitempty" jsonschema:"calendar date as YYYY-MM-DD, defaults to today"`
	MealIDs []string `json:"meal_ids" jsonschema:"IDs of meals or quick-logged meals to add"`
}

type logFakeMealInput struct {
	Date     string  `json:"date,omitempty" jsonschema:"calendar date as YYYY-MM-DD, defaults to today"`
	Name     string  `json:"name" jsonschema:"short description of what was eaten"`
	Calories float64 `json:"calories" jsonschema:"total calories (kcal)"`
	Protein  float64 `json:"protein" jsonschema:"total protein in grams"`
}

type addRecipeInput struct {
	Date     string `json:"date,omitempty" jsonschema:"calendar date as YYYY-MM-DD, defaults to today"`
	RecipeID string `json:"recipe_id" jsonschema:"ID of the recipe to log"`
}

type removeMealInput struct {
	Date   string `json:"date,omitempty" jsonschema:"calendar date as YYYY-MM-DD, defaults to today"`
	MealID string `json:"meal_id" jsonschema:"ID of the logged meal to remove"`
}

type emptyInput struct{}

type dayOutput struct {
	Day     *service.AssembledDayDTO `json:"day,omitempty"`
	Message string                   `json:"message"`
}

// dayEntry keeps the input date next to its day, which is absent when nothing was logged.
type dayEntry struct {
	Date string                   `json:"date"`
	Day  *service.AssembledDayDTO `json:"day,omitempty"`
}

type daysOutput struct {
	Days []dayEntry `json:"days"`
}

type loggedOutput struct {
	Day     *service.DayDTO `json:"day"`
	Message string          `json:"message"`
}

type mealsOutput struct {
	Meals []service.MealDTO `json:"meals"`
}

type recipesOutput struct {
	Recipes []service.RecipeDTO `json:"recipes"`
}

type workoutsOutput struct {
	Workouts []service.WorkoutDTO `json:"workouts"`
}

// Tool handlers

func (s *Server) handleGetDay(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, dayOutput, error) {
	date := s.dateOrToday(input.Date)
	day, err := s.app.Days.GetAssembledDay(ctx, date, s.userID)
	if err != nil {
		return nil, dayOutput{}, err
	}
	if day == nil {
		return nil, dayOutput{Message: fmt.Sprintf("Nothing logged on %s.", date)}, nil
	}
	return nil, dayOutput{
		Day:     day,
		Message: fmt.Sprintf("%s: %d meals, %.1f kcal, %.1f g protein", day.Date, day.MealsCount, day.Calories, day.Protein),
	}, nil
}

func (s *Server) handleGetDays(ctx context.Context, req *mcp.CallToolRequest, input datesInput) (*mcp.CallToolResult, daysOutput, error) {
	days, err := s.app.Days.GetMultipleAssembledDays(ctx, input.Dates, s.userID)
	if err != nil {
		return nil, daysOutput{}, err
	}
	out := daysOutput{Days: make([]dayEntry, len(days))}
	for i, day := range days {
		out.Days[i] = dayEntry{Date: input.Dates[i], Day: day}
	}
	return nil, out, nil
}

func (s *Server) handleAddMealToDay(ctx context.Context, req *mcp.CallToolRequest, input addMealInput) (*mcp.CallToolResult, loggedOutput, error) {
	day, err := s.app.Days.AddMealsToDay(ctx, service.AddMealsToDayRequest{
		Date:    s.dateOrToday(input.Date),
		UserID:  s.userID,
		MealIDs: input.MealIDs,
	})
	if err != nil {
		return nil, loggedOutput{}, err
	}
	return nil, loggedOutput{
		Day:     day,
		Message: fmt.Sprintf("Logged %d meal(s) on %s", len(input.MealIDs), day.Date),
	}, nil
}

func (s *Server) handleLogFakeMeal(ctx context.Context, req *mcp.CallToolRequest, input logFakeMealInput) (*mcp.CallToolResult, loggedOutput, error) {
	day, err := s.app.Days.AddFakeMealToDay(ctx, service.AddFakeMealToDayRequest{
		Date:     s.dateOrToday(input.Date),
		UserID:   s.userID,
		Name:     input.Name,
		Calories: input.Calories,
		Protein:  input.Protein,
	})
	if err != nil {
		return nil, loggedOutput{}, err
	}
	return nil, loggedOutput{
		Day:     day,
		Message: fmt.Sprintf("Logged %s (%.0f kcal) on %s", input.Name, input.Calories, day.Date),
	}, nil
}

func (s *Server) handleAddRecipeToDay(ctx context.Context, req *mcp.CallToolRequest, input addRecipeInput) (*mcp.CallToolResult, loggedOutput, error) {
	day, err := s.app.Days.AddRecipeToDay(ctx, service.AddRecipeToDayRequest{
		Date:     s.dateOrToday(input.Date),
		UserID:   s.userID,
		RecipeID: input.RecipeID,
	})
	if err != nil {
		return nil, loggedOutput{}, err
	}
	return nil, loggedOutput{
		Day:     day,
		Message: fmt.Sprintf("Logged recipe %s on %s", input.RecipeID, day.Date),
	}, nil
}

func (s *Server) handleRemoveMealFromDay(ctx context.Context, req *mcp.CallToolRequest, input removeMealInput) (*mcp.CallToolResult, loggedOutput, error) {
	day, err := s.app.Days.RemoveMealFromDay(ctx, s.dateOrToday(input.Date), s.userID, input.MealID)
	if err != nil {
		return nil, loggedOutput{}, err
	}
	return nil, loggedOutput{
		Day:     day,
		Message: fmt.Sprintf("Removed meal %s from %s", input.MealID, day.Date),
	}, nil
}

func (s *Server) handleListMeals(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, mealsOutput, error) {
	meals, err := s.app.Meals.ListForUser(ctx, s.userID)
	if err != nil {
		return nil, mealsOutput{}, err
	}
	return nil, mealsOutput{Meals: meals}, nil
}

func (s *Server) handleListRecipes(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, recipesOutput, error) {
	recipes, err := s.app.Recipes.ListForUser(ctx, s.userID)
	if err != nil {
		return nil, recipesOutput{}, err
	}
	return nil, recipesOutput{Recipes: recipes}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, workoutsOutput, error) {
	workouts, err := s.app.Workouts.ListForUser(ctx, s.userID)
	if err != nil {
		return nil, workoutsOutput{}, err
	}
	return nil, workoutsOutput{Workouts: workouts}, nil
}
