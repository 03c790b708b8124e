package models

import (
	"strings"

	"github.com/google/uuid"
)

// Exercise is an entry in the shared exercise catalog (e.g., "Bench press").
type Exercise struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

// ExerciseUpdate is a partial update for an exercise.
type ExerciseUpdate struct {
	Name *string
}

// NewExercise creates a catalog exercise.
func NewExercise(name string) (*Exercise, error) {
	if err := requireText("exercise name", name); err != nil {
		return nil, err
	}
	ts := now()
	return &Exercise{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		CreatedAt: ts,
		UpdatedAt: ts,
	}, nil
}

// Apply validates and applies a partial update in one step.
func (e *Exercise) Apply(u ExerciseUpdate) error {
	if u.Name != nil {
		if err := requireText("exercise name", *u.Name); err != nil {
			return err
		}
		e.Name = strings.TrimSpace(*u.Name)
	}
	e.UpdatedAt = now()
	return nil
}

// ExerciseLine prescribes sets of one exercise within a workout or template.
type ExerciseLine struct {
	ExerciseID string  `json:"exercise_id"`
	Sets       int     `json:"sets"`
	Reps       int     `json:"reps"`
	WeightKg   float64 `json:"weight_kg"`
}

// NewExerciseLine validates and returns an exercise line.
func NewExerciseLine(exerciseID string, sets, reps int, weightKg float64) (ExerciseLine, error) {
	l := ExerciseLine{ExerciseID: exerciseID, Sets: sets, Reps: reps, WeightKg: weightKg}
	return l, l.Validate()
}

// Validate checks the line invariants.
func (l ExerciseLine) Validate() error {
	if err := requireText("exercise id", l.ExerciseID); err != nil {
		return err
	}
	if l.Sets <= 0 {
		return Validationf("sets must be greater than zero, got %d", l.Sets)
	}
	if l.Reps <= 0 {
		return Validationf("reps must be greater than zero, got %d", l.Reps)
	}
	return requireNonNegative("weight", l.WeightKg)
}

// Volume is sets × reps × weight.
func (l ExerciseLine) Volume() float64 {
	return float64(l.Sets*l.Reps) * l.WeightKg
}

// ExerciseLines is the ordered list of lines shared by workouts and templates.
type ExerciseLines []ExerciseLine

func (ls ExerciseLines) validate() error {
	for _, l := range ls {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (ls *ExerciseLines) add(line ExerciseLine) error {
	if err := line.Validate(); err != nil {
		return err
	}
	*ls = append(*ls, line)
	return nil
}

// removeByExercise drops the first line for exerciseID.
func (ls *ExerciseLines) removeByExercise(exerciseID string) error {
	for i, l := range *ls {
		if l.ExerciseID == exerciseID {
			*ls = append((*ls)[:i:i], (*ls)[i+1:]...)
			return nil
		}
	}
	return NotFoundf("no exercise line for exercise %s", exerciseID)
}

func (ls ExerciseLines) clone() ExerciseLines {
	out := make(ExerciseLines, len(ls))
	copy(out, ls)
	return out
}

// TotalVolume sums the volume of every line.
func (ls ExerciseLines) TotalVolume() float64 {
	var total float64
	for _, l := range ls {
		total += l.Volume()
	}
	return total
}

// ExerciseIDs lists the referenced exercise IDs in order.
func (ls ExerciseLines) ExerciseIDs() []string {
	ids := make([]string, len(ls))
	for i, l := range ls {
		ids[i] = l.ExerciseID
	}
	return ids
}

func normalizeName(s string) string {
	return strings.TrimSpace(s)
}
