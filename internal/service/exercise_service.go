package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/nutritrack/internal/models"
	"github.com/mmynk/nutritrack/internal/storage"
)

// ExerciseService manages the shared exercise catalog.
type ExerciseService struct {
	exercises storage.ExerciseRepository
}

// NewExerciseService creates a new ExerciseService.
func NewExerciseService(repos *storage.Repositories) *ExerciseService {
	return &ExerciseService{exercises: repos.Exercises}
}

func (s *ExerciseService) Create(ctx context.Context, name string) (*ExerciseDTO, error) {
	e, err := models.NewExercise(name)
	if err != nil {
		return nil, err
	}
	if err := s.exercises.Save(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to save exercise: %w", err)
	}
	slog.Info("Exercise created", "exercise_id", e.ID, "name", e.Name)
	return toExerciseDTO(e), nil
}

// Get returns the exercise, or nil.
func (s *ExerciseService) Get(ctx context.Context, id string) (*ExerciseDTO, error) {
	if err := models.RequireID("exercise id", id); err != nil {
		return nil, err
	}
	e, err := s.exercises.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load exercise: %w", err)
	}
	if e == nil {
		return nil, nil
	}
	return toExerciseDTO(e), nil
}

func (s *ExerciseService) List(ctx context.Context) ([]ExerciseDTO, error) {
	items, err := s.exercises.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	out := make([]ExerciseDTO, len(items))
	for i, e := range items {
		out[i] = *toExerciseDTO(e)
	}
	return out, nil
}

func (s *ExerciseService) Update(ctx context.Context, id string, name *string) (*ExerciseDTO, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := e.Apply(models.ExerciseUpdate{Name: name}); err != nil {
		return nil, err
	}
	if err := s.exercises.Save(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to save exercise: %w", err)
	}
	return toExerciseDTO(e), nil
}

// Delete removes the exercise from the catalog.
func (s *ExerciseService) Delete(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.exercises.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Exercise deleted", "exercise_id", id)
	return nil
}

func (s *ExerciseService) load(ctx context.Context, id string) (*models.Exercise, error) {
	if err := models.RequireID("exercise id", id); err != nil {
		return nil, err
	}
	e, err := s.exercises.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load exercise: %w", err)
	}
	if e == nil {
		return nil, models.NotFoundf("exercise %s", id)
	}
	return e, nil
}
