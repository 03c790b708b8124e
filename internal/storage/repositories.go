package storage

import (
	"context"

	"github.com/mmynk/nutritrack/internal/models"
)

// Repository ports. Get methods return (nil, nil) when the entity does not exist;
// Delete methods return ErrNotFound. List methods return an empty slice, never nil,
// when there is nothing to return.

// IngredientRepository persists ingredients.
type IngredientRepository interface {
	Get(ctx context.Context, id string) (*models.Ingredient, error)
	List(ctx context.Context) ([]*models.Ingredient, error)
	Save(ctx context.Context, ingredient *models.Ingredient) error
	Delete(ctx context.Context, id string) error
}

// ExternalIngredientRepository maps third-party food IDs to local ingredients.
type ExternalIngredientRepository interface {
	Get(ctx context.Context, externalID, source string) (*models.ExternalIngredientRef, error)
	Save(ctx context.Context, ref *models.ExternalIngredientRef) error
}

// MealRepository persists meals.
type MealRepository interface {
	Get(ctx context.Context, id string) (*models.Meal, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Meal, error)
	Save(ctx context.Context, meal *models.Meal) error
	Delete(ctx context.Context, id string) error
}

// RecipeRepository persists recipes.
type RecipeRepository interface {
	Get(ctx context.Context, id string) (*models.Recipe, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Recipe, error)
	Save(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, id string) error
}

// FakeMealRepository persists fake meals.
type FakeMealRepository interface {
	Get(ctx context.Context, id string) (*models.FakeMeal, error)
	ListByUser(ctx context.Context, userID string) ([]*models.FakeMeal, error)
	Save(ctx context.Context, fakeMeal *models.FakeMeal) error
	Delete(ctx context.Context, id string) error
}

// DayRepository persists days, keyed by (user, date).
type DayRepository interface {
	Get(ctx context.Context, userID, date string) (*models.Day, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Day, error)
	Save(ctx context.Context, day *models.Day) error
	Delete(ctx context.Context, userID, date string) error
}

// UserRepository persists user accounts.
type UserRepository interface {
	Get(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

// ExerciseRepository persists the exercise catalog.
type ExerciseRepository interface {
	Get(ctx context.Context, id string) (*models.Exercise, error)
	List(ctx context.Context) ([]*models.Exercise, error)
	Save(ctx context.Context, exercise *models.Exercise) error
	Delete(ctx context.Context, id string) error
}

// WorkoutRepository persists workouts.
type WorkoutRepository interface {
	Get(ctx context.Context, id string) (*models.Workout, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Workout, error)
	Save(ctx context.Context, workout *models.Workout) error
	Delete(ctx context.Context, id string) error
}

// WorkoutTemplateRepository persists workout templates, including soft deleted ones.
type WorkoutTemplateRepository interface {
	Get(ctx context.Context, id string) (*models.WorkoutTemplate, error)
	ListByUser(ctx context.Context, userID string) ([]*models.WorkoutTemplate, error)
	Save(ctx context.Context, template *models.WorkoutTemplate) error
}

// Repositories bundles every repository built over one Backend.
type Repositories struct {
	Ingredients         IngredientRepository
	ExternalIngredients ExternalIngredientRepository
	Meals               MealRepository
	Recipes             RecipeRepository
	FakeMeals           FakeMealRepository
	Days                DayRepository
	Users               UserRepository
	Exercises           ExerciseRepository
	Workouts            WorkoutRepository
	WorkoutTemplates    WorkoutTemplateRepository
	Tx                  Transactor
}

// NewRepositories builds JSON document repositories on top of backend.
func NewRepositories(backend Backend) *Repositories {
	return &Repositories{
		Ingredients:         &ingredientRepo{docs: newDocuments[models.Ingredient](backend, CollectionIngredients)},
		ExternalIngredients: &externalIngredientRepo{docs: newDocuments[models.ExternalIngredientRef](backend, CollectionExternalIngredients)},
		Meals:               &mealRepo{docs: newDocuments[models.Meal](backend, CollectionMeals)},
		Recipes:             &recipeRepo{docs: newDocuments[models.Recipe](backend, CollectionRecipes)},
		FakeMeals:           &fakeMealRepo{docs: newDocuments[models.FakeMeal](backend, CollectionFakeMeals)},
		Days:                &dayRepo{docs: newDocuments[models.Day](backend, CollectionDays)},
		Users:               &userRepo{docs: newDocuments[models.User](backend, CollectionUsers)},
		Exercises:           &exerciseRepo{docs: newDocuments[models.Exercise](backend, CollectionExercises)},
		Workouts:            &workoutRepo{docs: newDocuments[models.Workout](backend, CollectionWorkouts)},
		WorkoutTemplates:    &workoutTemplateRepo{docs: newDocuments[models.WorkoutTemplate](backend, CollectionWorkoutTemplates)},
		Tx:                  backend,
	}
}
