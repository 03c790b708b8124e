package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/nutritrack/internal/models"
)

func TestDayService_GetDayMissing(t *testing.T) {
	f := newFixture(t)

	day, err := f.days.GetDay(f.ctx, "2024-01-01", "user-1")
	require.NoError(t, err)
	assert.Nil(t, day)

	assembled, err := f.days.GetAssembledDay(f.ctx, "2024-01-01", "user-1")
	require.NoError(t, err)
	assert.Nil(t, assembled)

	_, err = f.days.GetDay(f.ctx, "01/01/2024", "user-1")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestDayService_AssembledDay(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "a@example.com")
	chicken := f.ingredient(t, "Chicken breast", 165, 31)
	meal := f.meal(t, user.ID, IngredientLineInput{IngredientID: chicken.ID, QuantityInGrams: 200})

	day, err := f.days.AddMealToDay(f.ctx, AddMealToDayRequest{Date: "2024-02-10", UserID: user.ID, MealID: meal.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, day.MealsCount)

	day, err = f.days.AddFakeMealToDay(f.ctx, AddFakeMealToDayRequest{
		Date: "2024-02-10", UserID: user.ID, Name: "Protein bar", Calories: 200, Protein: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, day.MealsCount)

	assembled, err := f.days.GetAssembledDay(f.ctx, "2024-02-10", user.ID)
	require.NoError(t, err)
	require.NotNil(t, assembled)
	assert.Equal(t, 530.0, assembled.Calories)
	assert.Equal(t, 82.0, assembled.Protein)
	require.Len(t, assembled.Meals, 2)
	assert.Equal(t, MealKindMeal, assembled.Meals[0].Kind)
	assert.Equal(t, MealKindFake, assembled.Meals[1].Kind)
}

func TestDayService_EmptyDayHasZeroTotals(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "a@example.com")
	chicken := f.ingredient(t, "Chicken breast", 165, 31)
	meal := f.meal(t, user.ID, IngredientLineInput{IngredientID: chicken.ID, QuantityInGrams: 200})

	_, err := f.days.AddMealToDay(f.ctx, AddMealToDayRequest{Date: "2024-02-11", UserID: user.ID, MealID: meal.ID})
	require.NoError(t, err)
	_, err = f.days.RemoveMealFromDay(f.ctx, "2024-02-11", user.ID, meal.ID)
	require.NoError(t, err)

	assembled, err := f.days.GetAssembledDay(f.ctx, "2024-02-11", user.ID)
	require.NoError(t, err)
	require.NotNil(t, assembled)
	assert.Zero(t, assembled.Calories)
	assert.Zero(t, assembled.Protein)
	assert.Zero(t, assembled.MealsCount)
	assert.Empty(t, assembled.Meals)
}

func TestDayService_AddMealIsIdempotent(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "a@example.com")
	chicken := f.ingredient(t, "Chicken breast", 165, 31)
	meal := f.meal(t, user.ID, IngredientLineInput{IngredientID: chicken.ID, QuantityInGrams: 200})

	req := AddMealToDayRequest{Date: "2024-02-12", UserID: user.ID, MealID: meal.ID}
	_, err := f.days.AddMealToDay(f.ctx, req)
	require.NoError(t, err)
	day, err := f.days.AddMealToDay(f.ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []string{meal.ID}, day.MealIDs)
}

func TestDayService_AddMealOwnership(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner@example.com")
	other := f.user(t, "other@example.com")
	chicken := f.ingredient(t, "Chicken breast", 165, 31)
	meal := f.meal(t, owner.ID, IngredientLineInput{IngredientID: chicken.ID, QuantityInGrams: 200})

	_, err := f.days.AddMealToDay(f.ctx, AddMealToDayRequest{Date: "2024-02-12", UserID: other.ID, MealID: meal.ID})
	assert.ErrorIs(t, err, models.ErrAuth)

	_, err = f.days.AddMealToDay(f.ctx, AddMealToDayRequest{Date: "2024-02-12", UserID: owner.ID, MealID: "missing"})
	assert.ErrorIs(t, err, models.ErrNotFound)

	day, err := f.days.GetDay(f.ctx, "2024-02-12", other.ID)
	require.NoError(t, err)
	assert.Nil(t, day, "failed addition must not create a day")
}

func TestDayService_MultipleDays(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "a@example.com")
	chicken := f.ingredient(t, "Chicken breast", 165, 31)
	m1 := f.meal(t, user.ID, IngredientLineInput{IngredientID: chicken.ID, QuantityInGrams: 100})
	m2 := f.meal(t, user.ID, IngredientLineInput{IngredientID: chicken.ID, QuantityInGrams: 200})

	days, err := f.days.AddMealsToMultipleDays(f.ctx, user.ID, []DayMeals{
		{Date: "2024-03-01", MealIDs: []string{m1.ID, m2.ID}},
		{Date: "2024-03-03", MealIDs: []string{m2.ID}},
	})
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, 2, days[0].MealsCount)

	assembled, err := f.days.GetMultipleAssembledDays(f.ctx, []string{"2024-03-03", "2024-03-02", "2024-03-01"}, user.ID)
	require.NoError(t, err)
	require.Len(t, assembled, 3)
	require.NotNil(t, assembled[0])
	assert.Equal(t, "2024-03-03", assembled[0].Date)
	assert.Equal(t, 330.0, assembled[0].Calories)
	assert.Nil(t, assembled[1])
	require.NotNil(t, assembled[2])
	assert.Equal(t, 495.0, assembled[2].Calories)

	list, err := f.days.ListDays(f.ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2024-03-01", list[0].Date)
}

func TestDayService_AddRecipeToDay(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "a@example.com")
	oats := f.ingredient(t, "Oats", 380, 13)
	recipe, err := f.recipes.Create(f.ctx, CreateRecipeRequest{
		UserID: user.ID, Name: "Porridge", Lines: []IngredientLineInput{{IngredientID: oats.ID, QuantityInGrams: 50}},
	})
	require.NoError(t, err)

	day, err := f.days.AddRecipeToDay(f.ctx, AddRecipeToDayRequest{Date: "2024-04-01", UserID: user.ID, RecipeID: recipe.ID})
	require.NoError(t, err)
	require.Len(t, day.MealIDs, 1)
	assert.NotEqual(t, recipe.ID, day.MealIDs[0], "a new meal is instantiated")

	meal, err := f.meals.Get(f.ctx, day.MealIDs[0], user.ID)
	require.NoError(t, err)
	require.NotNil(t, meal)
	assert.Equal(t, "Porridge", meal.Name)
	assert.Equal(t, 190.0, meal.Calories)
}

func TestDayService_DanglingReferenceIsSkipped(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "a@example.com")

	day, err := models.NewDay("2024-06-01", user.ID)
	require.NoError(t, err)
	_, err = day.AddMeal("gone")
	require.NoError(t, err)
	require.NoError(t, f.repos.Days.Save(f.ctx, day))

	assembled, err := f.days.GetAssembledDay(f.ctx, "2024-06-01", user.ID)
	require.NoError(t, err)
	require.NotNil(t, assembled)
	assert.Empty(t, assembled.Meals)
	assert.Zero(t, assembled.Calories)
}

func TestDayService_Delete(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "a@example.com")

	err := f.days.DeleteDay(f.ctx, "2024-07-01", user.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = f.days.AddFakeMealToDay(f.ctx, AddFakeMealToDayRequest{Date: "2024-07-01", UserID: user.ID, Name: "Snack", Calories: 100})
	require.NoError(t, err)
	require.NoError(t, f.days.DeleteDay(f.ctx, "2024-07-01", user.ID))

	day, err := f.days.GetDay(f.ctx, "2024-07-01", user.ID)
	require.NoError(t, err)
	assert.Nil(t, day)

	_, err = f.days.RemoveMealFromDay(f.ctx, "2024-07-01", user.ID, "x")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
