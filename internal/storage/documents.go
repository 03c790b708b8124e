package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mmynk/nutritrack/internal/models"
)

// documents is a typed view over one backend collection.
type documents[T any] struct {
	backend    Backend
	collection string
}

func newDocuments[T any](backend Backend, collection string) documents[T] {
	return documents[T]{backend: backend, collection: collection}
}

// get returns (nil, nil) when the document does not exist.
func (d documents[T]) get(ctx context.Context, key string) (*T, error) {
	data, err := d.backend.Get(ctx, d.collection, key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", d.collection, key, err)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to decode %s/%s: %w", d.collection, key, err)
	}
	return &v, nil
}

func (d documents[T]) put(ctx context.Context, key string, v *T) error {
	if v == nil {
		return fmt.Errorf("cannot save nil document in %s", d.collection)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", d.collection, key, err)
	}
	if err := d.backend.Put(ctx, d.collection, key, data); err != nil {
		return fmt.Errorf("failed to save %s/%s: %w", d.collection, key, err)
	}
	return nil
}

func (d documents[T]) delete(ctx context.Context, key string) error {
	if err := d.backend.Delete(ctx, d.collection, key); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", d.collection, key, err)
	}
	return nil
}

// list decodes every document and keeps those accepted by keep (nil keeps all).
func (d documents[T]) list(ctx context.Context, keep func(*T) bool) ([]*T, error) {
	raw, err := d.backend.List(ctx, d.collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", d.collection, err)
	}
	out := make([]*T, 0, len(raw))
	for _, data := range raw {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to decode document in %s: %w", d.collection, err)
		}
		if keep == nil || keep(&v) {
			out = append(out, &v)
		}
	}
	return out, nil
}

// byCreation orders entities oldest first, breaking ties by ID.
func byCreation[T any](items []*T, createdAt func(*T) int64, id func(*T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := createdAt(items[i]), createdAt(items[j])
		if ci != cj {
			return ci < cj
		}
		return id(items[i]) < id(items[j])
	})
}

type ingredientRepo struct {
	docs documents[models.Ingredient]
}

func (r *ingredientRepo) Get(ctx context.Context, id string) (*models.Ingredient, error) {
	return r.docs.get(ctx, id)
}

func (r *ingredientRepo) List(ctx context.Context) ([]*models.Ingredient, error) {
	items, err := r.docs.list(ctx, nil)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return items, nil
}

func (r *ingredientRepo) Save(ctx context.Context, ingredient *models.Ingredient) error {
	return r.docs.put(ctx, ingredient.ID, ingredient)
}

func (r *ingredientRepo) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}

type externalIngredientRepo struct {
	docs documents[models.ExternalIngredientRef]
}

func (r *externalIngredientRepo) Get(ctx context.Context, externalID, source string) (*models.ExternalIngredientRef, error) {
	return r.docs.get(ctx, models.ExternalRefKey(externalID, source))
}

func (r *externalIngredientRepo) Save(ctx context.Context, ref *models.ExternalIngredientRef) error {
	return r.docs.put(ctx, ref.Key(), ref)
}

type mealRepo struct {
	docs documents[models.Meal]
}

func (r *mealRepo) Get(ctx context.Context, id string) (*models.Meal, error) {
	return r.docs.get(ctx, id)
}

func (r *mealRepo) ListByUser(ctx context.Context, userID string) ([]*models.Meal, error) {
	items, err := r.docs.list(ctx, func(m *models.Meal) bool { return m.UserID == userID })
	if err != nil {
		return nil, err
	}
	byCreation(items, func(m *models.Meal) int64 { return m.CreatedAt }, func(m *models.Meal) string { return m.ID })
	return items, nil
}

func (r *mealRepo) Save(ctx context.Context, meal *models.Meal) error {
	return r.docs.put(ctx, meal.ID, meal)
}

func (r *mealRepo) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}

type recipeRepo struct {
	docs documents[models.Recipe]
}

func (r *recipeRepo) Get(ctx context.Context, id string) (*models.Recipe, error) {
	return r.docs.get(ctx, id)
}

func (r *recipeRepo) ListByUser(ctx context.Context, userID string) ([]*models.Recipe, error) {
	items, err := r.docs.list(ctx, func(rc *models.Recipe) bool { return rc.UserID == userID })
	if err != nil {
		return nil, err
	}
	byCreation(items, func(rc *models.Recipe) int64 { return rc.CreatedAt }, func(rc *models.Recipe) string { return rc.ID })
	return items, nil
}

func (r *recipeRepo) Save(ctx context.Context, recipe *models.Recipe) error {
	return r.docs.put(ctx, recipe.ID, recipe)
}

func (r *recipeRepo) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}

type fakeMealRepo struct {
	docs documents[models.FakeMeal]
}

func (r *fakeMealRepo) Get(ctx context.Context, id string) (*models.FakeMeal, error) {
	return r.docs.get(ctx, id)
}

func (r *fakeMealRepo) ListByUser(ctx context.Context, userID string) ([]*models.FakeMeal, error) {
	items, err := r.docs.list(ctx, func(f *models.FakeMeal) bool { return f.UserID == userID })
	if err != nil {
		return nil, err
	}
	byCreation(items, func(f *models.FakeMeal) int64 { return f.CreatedAt }, func(f *models.FakeMeal) string { return f.ID })
	return items, nil
}

func (r *fakeMealRepo) Save(ctx context.Context, fakeMeal *models.FakeMeal) error {
	return r.docs.put(ctx, fakeMeal.ID, fakeMeal)
}

func (r *fakeMealRepo) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}

type dayRepo struct {
	docs documents[models.Day]
}

func (r *dayRepo) Get(ctx context.Context, userID, date string) (*models.Day, error) {
	return r.docs.get(ctx, models.DayKey(userID, date))
}

// ListByUser returns the user's days ordered by date.
func (r *dayRepo) ListByUser(ctx context.Context, userID string) ([]*models.Day, error) {
	items, err := r.docs.list(ctx, func(d *models.Day) bool { return d.UserID == userID })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date < items[j].Date })
	return items, nil
}

func (r *dayRepo) Save(ctx context.Context, day *models.Day) error {
	return r.docs.put(ctx, day.Key(), day)
}

func (r *dayRepo) Delete(ctx context.Context, userID, date string) error {
	return r.docs.delete(ctx, models.DayKey(userID, date))
}

type userRepo struct {
	docs documents[models.User]
}

func (r *userRepo) Get(ctx context.Context, id string) (*models.User, error) {
	return r.docs.get(ctx, id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = models.NormalizeEmail(email)
	items, err := r.docs.list(ctx, func(u *models.User) bool { return u.Email == email })
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0], nil
}

func (r *userRepo) Save(ctx context.Context, user *models.User) error {
	return r.docs.put(ctx, user.ID, user)
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}

type exerciseRepo struct {
	docs documents[models.Exercise]
}

func (r *exerciseRepo) Get(ctx context.Context, id string) (*models.Exercise, error) {
	return r.docs.get(ctx, id)
}

func (r *exerciseRepo) List(ctx context.Context) ([]*models.Exercise, error) {
	items, err := r.docs.list(ctx, nil)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return items, nil
}

func (r *exerciseRepo) Save(ctx context.Context, exercise *models.Exercise) error {
	return r.docs.put(ctx, exercise.ID, exercise)
}

func (r *exerciseRepo) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}

type workoutRepo struct {
	docs documents[models.Workout]
}

func (r *workoutRepo) Get(ctx context.Context, id string) (*models.Workout, error) {
	return r.docs.get(ctx, id)
}

// ListByUser returns the user's workouts, most recent date first.
func (r *workoutRepo) ListByUser(ctx context.Context, userID string) ([]*models.Workout, error) {
	items, err := r.docs.list(ctx, func(w *models.Workout) bool { return w.UserID == userID })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date > items[j].Date
		}
		return items[i].CreatedAt > items[j].CreatedAt
	})
	return items, nil
}

func (r *workoutRepo) Save(ctx context.Context, workout *models.Workout) error {
	return r.docs.put(ctx, workout.ID, workout)
}

func (r *workoutRepo) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}

type workoutTemplateRepo struct {
	docs documents[models.WorkoutTemplate]
}

func (r *workoutTemplateRepo) Get(ctx context.Context, id string) (*models.WorkoutTemplate, error) {
	return r.docs.get(ctx, id)
}

func (r *workoutTemplateRepo) ListByUser(ctx context.Context, userID string) ([]*models.WorkoutTemplate, error) {
	items, err := r.docs.list(ctx, func(t *models.WorkoutTemplate) bool { return t.UserID == userID })
	if err != nil {
		return nil, err
	}
	byCreation(items,
		func(t *models.WorkoutTemplate) int64 { return t.CreatedAt },
		func(t *models.WorkoutTemplate) string { return t.ID })
	return items, nil
}

func (r *workoutTemplateRepo) Save(ctx context.Context, template *models.WorkoutTemplate) error {
	return r.docs.put(ctx, template.ID, template)
}
