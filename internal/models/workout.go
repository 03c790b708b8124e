package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutTemplate is a reusable workout blueprint owned by a user.
// Templates are soft deleted so that workouts created from them keep a valid reference.
type WorkoutTemplate struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Name      string        `json:"name"`
	Exercises ExerciseLines `json:"exercises"`
	DeletedAt *int64        `json:"deleted_at,omitempty"`
	CreatedAt int64         `json:"created_at"`
	UpdatedAt int64         `json:"updated_at"`
}

// WorkoutTemplateUpdate is a partial update for a template.
type WorkoutTemplateUpdate struct {
	Name *string
}

// NewWorkoutTemplate creates a template. It may start without exercises.
func NewWorkoutTemplate(userID, name string, exercises []ExerciseLine) (*WorkoutTemplate, error) {
	if err := requireText("user id", userID); err != nil {
		return nil, err
	}
	if err := requireText("template name", name); err != nil {
		return nil, err
	}
	lines := ExerciseLines(exercises).clone()
	if err := lines.validate(); err != nil {
		return nil, err
	}
	ts := now()
	return &WorkoutTemplate{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      normalizeName(name),
		Exercises: lines,
		CreatedAt: ts,
		UpdatedAt: ts,
	}, nil
}

// OwnedBy reports whether the template belongs to userID.
func (t *WorkoutTemplate) OwnedBy(userID string) bool {
	return t.UserID == userID
}

// IsDeleted reports whether the template was soft deleted.
func (t *WorkoutTemplate) IsDeleted() bool {
	return t.DeletedAt != nil
}

// MarkAsDeleted soft deletes the template.
func (t *WorkoutTemplate) MarkAsDeleted() {
	ts := now()
	t.DeletedAt = &ts
	t.UpdatedAt = ts
}

// AddExercise appends an exercise line.
func (t *WorkoutTemplate) AddExercise(line ExerciseLine) error {
	if err := t.Exercises.add(line); err != nil {
		return err
	}
	t.UpdatedAt = now()
	return nil
}

// RemoveExercise removes the first line for exerciseID.
func (t *WorkoutTemplate) RemoveExercise(exerciseID string) error {
	if err := t.Exercises.removeByExercise(exerciseID); err != nil {
		return err
	}
	t.UpdatedAt = now()
	return nil
}

// Apply validates and applies a partial update in one step.
func (t *WorkoutTemplate) Apply(u WorkoutTemplateUpdate) error {
	if u.Name != nil {
		if err := requireText("template name", *u.Name); err != nil {
			return err
		}
		t.Name = normalizeName(*u.Name)
	}
	t.UpdatedAt = now()
	return nil
}

// Workout is a dated training session, optionally derived from a template.
type Workout struct {
	ID         string        `json:"id"`
	UserID     string        `json:"user_id"`
	Name       string        `json:"name"`
	Date       string        `json:"date"`
	TemplateID *string       `json:"template_id,omitempty"`
	Exercises  ExerciseLines `json:"exercises"`
	CreatedAt  int64         `json:"created_at"`
	UpdatedAt  int64         `json:"updated_at"`
}

// WorkoutUpdate is a partial update for a workout.
type WorkoutUpdate struct {
	Name *string
	Date *string
}

// NewWorkout creates a workout on date (YYYY-MM-DD).
func NewWorkout(userID, name, date string, exercises []ExerciseLine) (*Workout, error) {
	if err := requireText("user id", userID); err != nil {
		return nil, err
	}
	if err := requireText("workout name", name); err != nil {
		return nil, err
	}
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	lines := ExerciseLines(exercises).clone()
	if err := lines.validate(); err != nil {
		return nil, err
	}
	ts := now()
	return &Workout{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      normalizeName(name),
		Date:      d,
		Exercises: lines,
		CreatedAt: ts,
		UpdatedAt: ts,
	}, nil
}

// NewWorkoutFromTemplate copies the template's name and exercise lines into a new workout.
func NewWorkoutFromTemplate(t *WorkoutTemplate, date string) (*Workout, error) {
	if t.IsDeleted() {
		return nil, NotFoundf("workout template %s", t.ID)
	}
	w, err := NewWorkout(t.UserID, t.Name, date, t.Exercises)
	if err != nil {
		return nil, err
	}
	id := t.ID
	w.TemplateID = &id
	return w, nil
}

// OwnedBy reports whether the workout belongs to userID.
func (w *Workout) OwnedBy(userID string) bool {
	return w.UserID == userID
}

// AddExercise appends an exercise line.
func (w *Workout) AddExercise(line ExerciseLine) error {
	if err := w.Exercises.add(line); err != nil {
		return err
	}
	w.UpdatedAt = now()
	return nil
}

// RemoveExercise removes the first line for exerciseID.
func (w *Workout) RemoveExercise(exerciseID string) error {
	if err := w.Exercises.removeByExercise(exerciseID); err != nil {
		return err
	}
	w.UpdatedAt = now()
	return nil
}

// Apply validates and applies a partial update in one step.
func (w *Workout) Apply(u WorkoutUpdate) error {
	next := *w
	if u.Name != nil {
		if err := requireText("workout name", *u.Name); err != nil {
			return err
		}
		next.Name = normalizeName(*u.Name)
	}
	if u.Date != nil {
		d, err := ParseDate(*u.Date)
		if err != nil {
			return err
		}
		next.Date = d
	}
	next.UpdatedAt = now()
	*w = next
	return nil
}

// StartedOn parses the workout date.
func (w *Workout) StartedOn() time.Time {
	t, _ := time.Parse(DateLayout, w.Date)
	return t
}
