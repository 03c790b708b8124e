package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/mmynk/nutritrack/internal/service"
)

func TestPadRight(t *testing.T) {
	tests := []struct {
		input  string
		length int
		want   string
	}{
		{"abc", 6, "abc   "},
		{"abcdef", 3, "abcdef"},
		{"", 2, "  "},
	}
	for _, tt := range tests {
		if got := padRight(tt.input, tt.length); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
		}
	}
}

func TestPrintDay(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	var buf bytes.Buffer
	printDay(&buf, "2024-03-01", nil)
	if !strings.Contains(buf.String(), "Nothing logged.") {
		t.Errorf("empty day output = %q", buf.String())
	}

	buf.Reset()
	printDay(&buf, "2024-03-01", &service.AssembledDayDTO{
		Date: "2024-03-01",
		Meals: []service.MealSummaryDTO{
			{ID: "1", Kind: service.MealKindMeal, Name: "Lunch", Calories: 330, Protein: 62},
			{ID: "2", Kind: service.MealKindFake, Name: "Protein bar", Calories: 200, Protein: 20},
		},
		MealsCount: 2,
		Calories:   530,
		Protein:    82,
	})
	out := buf.String()
	for _, want := range []string{"Lunch", "330.0 kcal", "Protein bar", "(quick)", "530.0 kcal", "82.0 g protein"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{"serve": false, "mcp": false, "user": false, "day": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}
