package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/nutritrack/internal/models"
	"github.com/mmynk/nutritrack/internal/storage"
)

// ExerciseLineInput references a catalog exercise.
type ExerciseLineInput struct {
	ExerciseID string  `json:"exerciseId"`
	Sets       int     `json:"sets"`
	Reps       int     `json:"reps"`
	WeightKg   float64 `json:"weightKg"`
}

type CreateWorkoutTemplateRequest struct {
	UserID    string              `json:"userId"`
	Name      string              `json:"name"`
	Exercises []ExerciseLineInput `json:"exercises"`
}

type UpdateWorkoutTemplateRequest struct {
	ID     string  `json:"id"`
	UserID string  `json:"userId"`
	Name   *string `json:"name,omitempty"`
}

// CreateWorkoutRequest creates a workout. With a TemplateID the template's
// exercises are copied and Exercises is ignored; Name then overrides the template name.
type CreateWorkoutRequest struct {
	UserID     string              `json:"userId"`
	Name       string              `json:"name"`
	Date       string              `json:"date"`
	TemplateID string              `json:"templateId,omitempty"`
	Exercises  []ExerciseLineInput `json:"exercises"`
}

type UpdateWorkoutRequest struct {
	ID     string  `json:"id"`
	UserID string  `json:"userId"`
	Name   *string `json:"name,omitempty"`
	Date   *string `json:"date,omitempty"`
}

// ExerciseChange adds or removes an exercise line on a workout or template (ParentID).
type ExerciseChange struct {
	ParentID string            `json:"parentId"`
	UserID   string            `json:"userId"`
	Line     ExerciseLineInput `json:"line"`
}

func resolveExerciseLines(ctx context.Context, exercises storage.ExerciseRepository, inputs []ExerciseLineInput) ([]models.ExerciseLine, error) {
	lines := make([]models.ExerciseLine, 0, len(inputs))
	for _, in := range inputs {
		line, err := resolveExerciseLine(ctx, exercises, in)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func resolveExerciseLine(ctx context.Context, exercises storage.ExerciseRepository, in ExerciseLineInput) (models.ExerciseLine, error) {
	line, err := models.NewExerciseLine(in.ExerciseID, in.Sets, in.Reps, in.WeightKg)
	if err != nil {
		return models.ExerciseLine{}, err
	}
	e, err := exercises.Get(ctx, in.ExerciseID)
	if err != nil {
		return models.ExerciseLine{}, fmt.Errorf("failed to load exercise: %w", err)
	}
	if e == nil {
		return models.ExerciseLine{}, models.NotFoundf("exercise %s", in.ExerciseID)
	}
	return line, nil
}

// WorkoutTemplateService manages reusable workout blueprints. Deletion is soft.
type WorkoutTemplateService struct {
	templates storage.WorkoutTemplateRepository
	exercises storage.ExerciseRepository
	users     storage.UserRepository
}

// NewWorkoutTemplateService creates a new WorkoutTemplateService.
func NewWorkoutTemplateService(repos *storage.Repositories) *WorkoutTemplateService {
	return &WorkoutTemplateService{
		templates: repos.WorkoutTemplates,
		exercises: repos.Exercises,
		users:     repos.Users,
	}
}

func (s *WorkoutTemplateService) Create(ctx context.Context, req CreateWorkoutTemplateRequest) (*WorkoutTemplateDTO, error) {
	if _, err := loadUser(ctx, s.users, req.UserID); err != nil {
		return nil, err
	}
	lines, err := resolveExerciseLines(ctx, s.exercises, req.Exercises)
	if err != nil {
		return nil, err
	}
	t, err := models.NewWorkoutTemplate(req.UserID, req.Name, lines)
	if err != nil {
		return nil, err
	}
	if err := s.templates.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save workout template: %w", err)
	}
	slog.Info("Workout template created", "template_id", t.ID, "user_id", t.UserID)
	return toWorkoutTemplateDTO(t), nil
}

// Get returns the template, or nil when it does not exist or was deleted.
func (s *WorkoutTemplateService) Get(ctx context.Context, id, userID string) (*WorkoutTemplateDTO, error) {
	if err := requireIDs("template id", id, "user id", userID); err != nil {
		return nil, err
	}
	t, err := getOwned(ctx, s.templates.Get, "workout template", id, userID)
	if err != nil || t == nil || t.IsDeleted() {
		return nil, err
	}
	return toWorkoutTemplateDTO(t), nil
}

// ListForUser returns the user's templates that are not deleted.
func (s *WorkoutTemplateService) ListForUser(ctx context.Context, userID string) ([]WorkoutTemplateDTO, error) {
	if err := models.RequireID("user id", userID); err != nil {
		return nil, err
	}
	items, err := s.templates.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workout templates: %w", err)
	}
	out := make([]WorkoutTemplateDTO, 0, len(items))
	for _, t := range items {
		if t.IsDeleted() {
			continue
		}
		out = append(out, *toWorkoutTemplateDTO(t))
	}
	return out, nil
}

func (s *WorkoutTemplateService) Update(ctx context.Context, req UpdateWorkoutTemplateRequest) (*WorkoutTemplateDTO, error) {
	t, err := s.loadForWrite(ctx, req.ID, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := t.Apply(models.WorkoutTemplateUpdate{Name: req.Name}); err != nil {
		return nil, err
	}
	return s.save(ctx, t)
}

// Delete marks the template as deleted. Deleting it twice is NotFound.
func (s *WorkoutTemplateService) Delete(ctx context.Context, id, userID string) error {
	t, err := s.loadForWrite(ctx, id, userID)
	if err != nil {
		return err
	}
	t.MarkAsDeleted()
	if err := s.templates.Save(ctx, t); err != nil {
		return fmt.Errorf("failed to save workout template: %w", err)
	}
	slog.Info("Workout template deleted", "template_id", id, "user_id", userID)
	return nil
}

func (s *WorkoutTemplateService) AddExercise(ctx context.Context, req ExerciseChange) (*WorkoutTemplateDTO, error) {
	t, err := s.loadForWrite(ctx, req.ParentID, req.UserID)
	if err != nil {
		return nil, err
	}
	line, err := resolveExerciseLine(ctx, s.exercises, req.Line)
	if err != nil {
		return nil, err
	}
	if err := t.AddExercise(line); err != nil {
		return nil, err
	}
	return s.save(ctx, t)
}

func (s *WorkoutTemplateService) RemoveExercise(ctx context.Context, req ExerciseChange) (*WorkoutTemplateDTO, error) {
	if err := models.RequireID("exercise id", req.Line.ExerciseID); err != nil {
		return nil, err
	}
	t, err := s.loadForWrite(ctx, req.ParentID, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := t.RemoveExercise(req.Line.ExerciseID); err != nil {
		return nil, err
	}
	return s.save(ctx, t)
}

func (s *WorkoutTemplateService) save(ctx context.Context, t *models.WorkoutTemplate) (*WorkoutTemplateDTO, error) {
	if err := s.templates.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save workout template: %w", err)
	}
	slog.Info("Workout template updated", "template_id", t.ID, "user_id", t.UserID)
	return toWorkoutTemplateDTO(t), nil
}

// loadForWrite treats a deleted template as missing.
func (s *WorkoutTemplateService) loadForWrite(ctx context.Context, id, userID string) (*models.WorkoutTemplate, error) {
	if err := requireIDs("template id", id, "user id", userID); err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	t, err := loadOwned(ctx, s.templates.Get, "workout template", id, userID)
	if err != nil {
		return nil, err
	}
	if t.IsDeleted() {
		return nil, models.NotFoundf("workout template %s", id)
	}
	return t, nil
}

// WorkoutService manages dated workouts.
type WorkoutService struct {
	workouts  storage.WorkoutRepository
	templates storage.WorkoutTemplateRepository
	exercises storage.ExerciseRepository
	users     storage.UserRepository
}

// NewWorkoutService creates a new WorkoutService.
func NewWorkoutService(repos *storage.Repositories) *WorkoutService {
	return &WorkoutService{
		workouts:  repos.Workouts,
		templates: repos.WorkoutTemplates,
		exercises: repos.Exercises,
		users:     repos.Users,
	}
}

func (s *WorkoutService) Create(ctx context.Context, req CreateWorkoutRequest) (*WorkoutDTO, error) {
	if _, err := loadUser(ctx, s.users, req.UserID); err != nil {
		return nil, err
	}

	var w *models.Workout
	if strings.TrimSpace(req.TemplateID) != "" {
		t, err := loadOwned(ctx, s.templates.Get, "workout template", req.TemplateID, req.UserID)
		if err != nil {
			return nil, err
		}
		if w, err = models.NewWorkoutFromTemplate(t, req.Date); err != nil {
			return nil, err
		}
		if strings.TrimSpace(req.Name) != "" {
			name := req.Name
			if err := w.Apply(models.WorkoutUpdate{Name: &name}); err != nil {
				return nil, err
			}
		}
	} else {
		lines, err := resolveExerciseLines(ctx, s.exercises, req.Exercises)
		if err != nil {
			return nil, err
		}
		if w, err = models.NewWorkout(req.UserID, req.Name, req.Date, lines); err != nil {
			return nil, err
		}
	}

	if err := s.workouts.Save(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to save workout: %w", err)
	}
	slog.Info("Workout created", "workout_id", w.ID, "user_id", w.UserID, "date", w.Date)
	return toWorkoutDTO(w), nil
}

// Get returns the workout, or nil.
func (s *WorkoutService) Get(ctx context.Context, id, userID string) (*WorkoutDTO, error) {
	if err := requireIDs("workout id", id, "user id", userID); err != nil {
		return nil, err
	}
	w, err := getOwned(ctx, s.workouts.Get, "workout", id, userID)
	if err != nil || w == nil {
		return nil, err
	}
	return toWorkoutDTO(w), nil
}

// ListForUser returns the user's workouts, most recent first.
func (s *WorkoutService) ListForUser(ctx context.Context, userID string) ([]WorkoutDTO, error) {
	if err := models.RequireID("user id", userID); err != nil {
		return nil, err
	}
	items, err := s.workouts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	out := make([]WorkoutDTO, len(items))
	for i, w := range items {
		out[i] = *toWorkoutDTO(w)
	}
	return out, nil
}

func (s *WorkoutService) Update(ctx context.Context, req UpdateWorkoutRequest) (*WorkoutDTO, error) {
	w, err := s.loadForWrite(ctx, req.ID, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := w.Apply(models.WorkoutUpdate{Name: req.Name, Date: req.Date}); err != nil {
		return nil, err
	}
	return s.save(ctx, w)
}

// Delete removes the workout.
func (s *WorkoutService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.loadForWrite(ctx, id, userID); err != nil {
		return err
	}
	if err := s.workouts.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Workout deleted", "workout_id", id, "user_id", userID)
	return nil
}

func (s *WorkoutService) AddExercise(ctx context.Context, req ExerciseChange) (*WorkoutDTO, error) {
	w, err := s.loadForWrite(ctx, req.ParentID, req.UserID)
	if err != nil {
		return nil, err
	}
	line, err := resolveExerciseLine(ctx, s.exercises, req.Line)
	if err != nil {
		return nil, err
	}
	if err := w.AddExercise(line); err != nil {
		return nil, err
	}
	return s.save(ctx, w)
}

func (s *WorkoutService) RemoveExercise(ctx context.Context, req ExerciseChange) (*WorkoutDTO, error) {
	if err := models.RequireID("exercise id", req.Line.ExerciseID); err != nil {
		return nil, err
	}
	w, err := s.loadForWrite(ctx, req.ParentID, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := w.RemoveExercise(req.Line.ExerciseID); err != nil {
		return nil, err
	}
	return s.save(ctx, w)
}

func (s *WorkoutService) save(ctx context.Context, w *models.Workout) (*WorkoutDTO, error) {
	if err := s.workouts.Save(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to save workout: %w", err)
	}
	slog.Info("Workout updated", "workout_id", w.ID, "user_id", w.UserID)
	return toWorkoutDTO(w), nil
}

func (s *WorkoutService) loadForWrite(ctx context.Context, id, userID string) (*models.Workout, error) {
	if err := requireIDs("workout id", id, "user id", userID); err != nil {
		return nil, err
	}
	if _, err := loadUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	return loadOwned(ctx, s.workouts.Get, "workout", id, userID)
}
