package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTotals(t *testing.T) {
	meal := &Meal{
		Name: "Post-workout plate",
		Type: MealLunch,
		Items: []MealItem{
			{
				Name:     "Chicken breast",
				Quantity: 150,
				Unit:     "g",
				Calories: floatPtr(247.5),
				Protein:  floatPtr(14.8),
				Carbs:    floatPtr(0),
				Fat:      floatPtr(5.4),
			},
			{
				Name:     "Brown rice",
				Quantity: 100,
				Unit:     "g",
				Calories: floatPtr(102.9),
				Protein:  floatPtr(2.6),
				Carbs:    floatPtr(40),
				Fat:      floatPtr(4.55),
				Fiber:    floatPtr(4),
			},
		},
	}

	meal.CalculateTotals()

	require.NotNil(t, meal.TotalCalories)
	assert.Equal(t, 350.0, *meal.TotalCalories) // 350.4 rounds down
	assert.Equal(t, 17.4, *meal.TotalProtein)
	assert.Equal(t, 40.0, *meal.TotalCarbs)
	assert.Equal(t, 10.0, *meal.TotalFat) // 9.95 rounds up at the tenth
	assert.Equal(t, 4.0, *meal.TotalFiber)
}

func TestCalculateTotalsMissingMacrosCountAsZero(t *testing.T) {
	meal := &Meal{
		Items: []MealItem{
			{Name: "Black coffee", Quantity: 1, Unit: "cup"},
			{Name: "Banana", Quantity: 1, Unit: "piece", Calories: floatPtr(105), Carbs: floatPtr(27)},
		},
	}

	meal.CalculateTotals()

	require.NotNil(t, meal.TotalCalories)
	assert.Equal(t, 105.0, *meal.TotalCalories)
	assert.Equal(t, 0.0, *meal.TotalProtein)
	assert.Equal(t, 27.0, *meal.TotalCarbs)
	assert.Equal(t, 0.0, *meal.TotalFat)
	assert.Equal(t, 0.0, *meal.TotalFiber)
}

func TestCalculateTotalsIdempotent(t *testing.T) {
	meal := &Meal{
		Items: []MealItem{
			{Name: "Oats", Quantity: 80, Unit: "g", Calories: floatPtr(303.3), Protein: floatPtr(10.55)},
		},
	}

	meal.CalculateTotals()
	first := *meal.TotalCalories
	firstProtein := *meal.TotalProtein

	meal.CalculateTotals()

	assert.Equal(t, first, *meal.TotalCalories)
	assert.Equal(t, firstProtein, *meal.TotalProtein)
}

func TestCalculateTotalsRoundsHalfUp(t *testing.T) {
	meal := &Meal{
		Items: []MealItem{
			{Name: "a", Quantity: 1, Unit: "g", Calories: floatPtr(10.5), Protein: floatPtr(1.25)},
		},
	}

	meal.CalculateTotals()

	assert.Equal(t, 11.0, *meal.TotalCalories)
	assert.Equal(t, 1.3, *meal.TotalProtein)
}
