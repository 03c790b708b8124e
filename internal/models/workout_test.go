package models

import (
	"errors"
	"testing"
)

func TestExerciseLineValidation(t *testing.T) {
	if _, err := NewExerciseLine("ex-1", 3, 10, 60); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewExerciseLine("ex-1", 3, 10, 0); err != nil {
		t.Fatalf("bodyweight line should be valid: %v", err)
	}
	invalid := []ExerciseLine{
		{ExerciseID: "", Sets: 3, Reps: 10},
		{ExerciseID: "ex-1", Sets: 0, Reps: 10},
		{ExerciseID: "ex-1", Sets: 3, Reps: 0},
		{ExerciseID: "ex-1", Sets: 3, Reps: 10, WeightKg: -5},
	}
	for _, l := range invalid {
		if err := l.Validate(); !errors.Is(err, ErrValidation) {
			t.Errorf("%+v: expected ErrValidation, got %v", l, err)
		}
	}
}

func TestWorkoutTemplateSoftDelete(t *testing.T) {
	line, _ := NewExerciseLine("ex-1", 5, 5, 100)
	tpl, err := NewWorkoutTemplate("user-1", "Strength A", []ExerciseLine{line})
	if err != nil {
		t.Fatalf("NewWorkoutTemplate failed: %v", err)
	}
	if tpl.IsDeleted() {
		t.Fatal("new template should not be deleted")
	}
	tpl.MarkAsDeleted()
	if !tpl.IsDeleted() {
		t.Error("template should be deleted")
	}
	if _, err := NewWorkoutFromTemplate(tpl, "2024-03-01"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for deleted template, got %v", err)
	}
}

func TestNewWorkoutFromTemplate(t *testing.T) {
	squat, _ := NewExerciseLine("squat", 5, 5, 100)
	bench, _ := NewExerciseLine("bench", 5, 5, 80)
	tpl, _ := NewWorkoutTemplate("user-1", "Strength A", []ExerciseLine{squat, bench})

	w, err := NewWorkoutFromTemplate(tpl, "2024-03-01")
	if err != nil {
		t.Fatalf("NewWorkoutFromTemplate failed: %v", err)
	}
	if w.TemplateID == nil || *w.TemplateID != tpl.ID {
		t.Errorf("TemplateID = %v, want %s", w.TemplateID, tpl.ID)
	}
	if len(w.Exercises) != 2 {
		t.Fatalf("expected 2 exercises, got %d", len(w.Exercises))
	}

	// Changing the workout must not touch the template.
	if err := w.RemoveExercise("squat"); err != nil {
		t.Fatalf("RemoveExercise failed: %v", err)
	}
	if len(tpl.Exercises) != 2 {
		t.Errorf("template exercises changed: %d", len(tpl.Exercises))
	}
	if w.Exercises.TotalVolume() != 2000 {
		t.Errorf("TotalVolume = %v, want 2000", w.Exercises.TotalVolume())
	}
}

func TestWorkoutApply(t *testing.T) {
	w, err := NewWorkout("user-1", "Run", "2024-03-01", nil)
	if err != nil {
		t.Fatalf("NewWorkout failed: %v", err)
	}
	bad := "not-a-date"
	if err := w.Apply(WorkoutUpdate{Date: &bad}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	if w.Date != "2024-03-01" {
		t.Errorf("failed update changed the date to %q", w.Date)
	}
	good := "2024-03-02"
	name := "Long run"
	if err := w.Apply(WorkoutUpdate{Name: &name, Date: &good}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if w.Name != "Long run" || w.Date != "2024-03-02" {
		t.Errorf("got %q on %q", w.Name, w.Date)
	}
}
