// Package app wires repositories, auth and services into one Application
// shared by the HTTP server, the MCP server and the CLI.
package app

import (
	"log/slog"

	"github.com/mmynk/nutritrack/internal/auth"
	"github.com/mmynk/nutritrack/internal/config"
	"github.com/mmynk/nutritrack/internal/fooddb"
	"github.com/mmynk/nutritrack/internal/models"
	"github.com/mmynk/nutritrack/internal/service"
	"github.com/mmynk/nutritrack/internal/storage"
)

// Options overrides pieces of the default wiring, mostly for tests.
type Options struct {
	Logger *slog.Logger
	// Foods replaces the Open Food Facts client.
	Foods service.FoodDatabase
	// BcryptCost overrides the password hashing cost.
	BcryptCost int
}

// Application holds every service built over one storage backend.
type Application struct {
	Config  *config.Config
	Backend storage.Backend
	Repos   *storage.Repositories
	Tokens  *auth.JWTManager
	Logger  *slog.Logger

	Auth             *service.AuthService
	Users            *service.UserService
	Ingredients      *service.IngredientService
	Meals            *service.MealService
	Recipes          *service.RecipeService
	FakeMeals        *service.FakeMealService
	Days             *service.DayService
	Exercises        *service.ExerciseService
	WorkoutTemplates *service.WorkoutTemplateService
	Workouts         *service.WorkoutService
}

// New builds the application. The backend stays owned by the caller.
func New(cfg *config.Config, backend storage.Backend, opts Options) (*Application, error) {
	if cfg == nil {
		return nil, models.Infrastructuref("config is required")
	}
	if backend == nil {
		return nil, models.Infrastructuref("storage backend is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	repos := storage.NewRepositories(backend)
	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.TokenTTL())

	authenticator := auth.NewPasswordAuthenticator(repos.Users)
	if opts.BcryptCost > 0 {
		authenticator = authenticator.WithCost(opts.BcryptCost)
	}

	foods := opts.Foods
	if foods == nil {
		foods = fooddb.NewClient(cfg.FoodDB.BaseURL, cfg.FoodDBTimeout())
	}

	a := &Application{
		Config:  cfg,
		Backend: backend,
		Repos:   repos,
		Tokens:  tokens,
		Logger:  logger,

		Auth:             service.NewAuthService(authenticator, tokens, repos, logger),
		Users:            service.NewUserService(repos),
		Ingredients:      service.NewIngredientService(repos, foods),
		Meals:            service.NewMealService(repos),
		Recipes:          service.NewRecipeService(repos),
		FakeMeals:        service.NewFakeMealService(repos),
		Days:             service.NewDayService(repos),
		Exercises:        service.NewExerciseService(repos),
		WorkoutTemplates: service.NewWorkoutTemplateService(repos),
		Workouts:         service.NewWorkoutService(repos),
	}
	logger.Debug("Application wired", "env", cfg.Env, "storage", cfg.Storage.Backend)
	return a, nil
}

// Close releases the storage backend.
func (a *Application) Close() error {
	return a.Backend.Close()
}
