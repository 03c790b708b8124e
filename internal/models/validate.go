package models

import (
	"math"
	"strings"
	"time"
)

// requireText rejects empty and whitespace-only strings.
func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return Validationf("%s must not be empty", field)
	}
	return nil
}

// requireNonNegative rejects negative, NaN and infinite values.
func requireNonNegative(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return Validationf("%s must be a non-negative number, got %v", field, value)
	}
	return nil
}

// requirePositive rejects zero, negative, NaN and infinite values.
func requirePositive(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return Validationf("%s must be greater than zero, got %v", field, value)
	}
	return nil
}

// RequireID validates a primitive identifier passed into a use-case.
func RequireID(field, value string) error {
	return requireText(field, value)
}

func now() int64 {
	return time.Now().Unix()
}
