// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Backend when a document does not exist.
var ErrNotFound = errors.New("document not found")

// Collection names shared by every backend.
const (
	CollectionIngredients         = "ingredients"
	CollectionExternalIngredients = "external_ingredients"
	CollectionMeals               = "meals"
	CollectionRecipes             = "recipes"
	CollectionFakeMeals           = "fake_meals"
	CollectionDays                = "days"
	CollectionUsers               = "users"
	CollectionExercises           = "exercises"
	CollectionWorkouts            = "workouts"
	CollectionWorkoutTemplates    = "workout_templates"
)

// Backend defines the document store every repository is built on.
// This abstraction allows swapping storage backends (memory, filesystem, SQLite)
// without changing the service layer.
type Backend interface {
	// Get returns the document stored under key, or ErrNotFound.
	Get(ctx context.Context, collection, key string) ([]byte, error)

	// Put creates or replaces the document stored under key.
	Put(ctx context.Context, collection, key string, doc []byte) error

	// Delete removes the document stored under key, or returns ErrNotFound.
	Delete(ctx context.Context, collection, key string) error

	// List returns every document in the collection, in no particular order.
	List(ctx context.Context, collection string) ([][]byte, error)

	Transactor

	// Close releases any resources held by the backend.
	Close() error
}

// Transactor groups several repository writes.
// It is best effort: commit and abort semantics are whatever the backend offers.
// Repositories called with the ctx passed to fn take part in the transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TransactorFunc adapts a function to the Transactor interface.
type TransactorFunc func(ctx context.Context, fn func(ctx context.Context) error) error

// WithinTransaction calls f(ctx, fn).
func (f TransactorFunc) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return f(ctx, fn)
}

// Passthrough runs fn directly. Backends without transactions use it.
var Passthrough = TransactorFunc(func(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
})
