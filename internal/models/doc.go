// Package models defines the core domain entities for nutritrack.
//
// # Nutrition
//
//   - Ingredient: a food with calories and protein per 100g
//   - IngredientLine: a quantity of one ingredient inside a meal or recipe
//   - Meal / Recipe: named lists of ingredient lines owned by a user
//   - FakeMeal: a quick-log entry with totals stated directly
//   - Day: the meals a user logged on one calendar date, by id
//
// # Training
//
//   - Exercise: an entry in the shared exercise catalog
//   - WorkoutTemplate: a reusable list of exercise lines (soft deleted)
//   - Workout: a dated session, optionally created from a template
//
// # Design Principles
//
//  1. Totals are computed on read from ingredient lines and never stored.
//  2. Relationships between aggregates use ID strings, not pointers.
//     IngredientLine is the exception: it owns a copy of its Ingredient.
//  3. Constructors and Apply methods validate, so an entity that exists is valid.
//  4. Partial updates use XUpdate structs with pointer fields; nil means "leave as is".
package models
