package models

import (
	"errors"
	"fmt"
)

// Error kinds shared by the domain, services and adapters.
// Wrap them with the constructors below and test with errors.Is.
var (
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("not found")
	ErrAuth           = errors.New("not authorized")
	ErrInfrastructure = errors.New("infrastructure error")
)

// Validationf returns an error wrapping ErrValidation.
func Validationf(format string, args ...any) error {
	return wrapf(ErrValidation, format, args...)
}

// NotFoundf returns an error wrapping ErrNotFound.
func NotFoundf(format string, args ...any) error {
	return wrapf(ErrNotFound, format, args...)
}

// Authf returns an error wrapping ErrAuth.
func Authf(format string, args ...any) error {
	return wrapf(ErrAuth, format, args...)
}

// Infrastructuref returns an error wrapping ErrInfrastructure.
func Infrastructuref(format string, args ...any) error {
	return wrapf(ErrInfrastructure, format, args...)
}

func wrapf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
