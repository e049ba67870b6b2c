package domain

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealType classifies a meal.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealStatus tracks coach review of a meal.
type MealStatus string

const (
	MealPending  MealStatus = "pending"
	MealApproved MealStatus = "approved"
	MealRejected MealStatus = "rejected"
)

// MealItem is one food entry inside a meal. Macro values are per the
// stated quantity; a missing value counts as zero when aggregating.
type MealItem struct {
	Name     string  `bson:"name" json:"name"`
	Icon     string  `bson:"icon,omitempty" json:"icon,omitempty"`
	Quantity float64 `bson:"quantity" json:"quantity"`
	Unit     string  `bson:"unit" json:"unit"`

	Calories *float64 `bson:"calories,omitempty" json:"calories,omitempty"`
	Protein  *float64 `bson:"protein,omitempty" json:"protein,omitempty"`
	Carbs    *float64 `bson:"carbs,omitempty" json:"carbs,omitempty"`
	Fat      *float64 `bson:"fat,omitempty" json:"fat,omitempty"`
	Fiber    *float64 `bson:"fiber,omitempty" json:"fiber,omitempty"`
}

// Meal is a named list of food items with aggregated macro totals.
type Meal struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Type        MealType           `bson:"type" json:"type"`
	Items       []MealItem         `bson:"items,omitempty" json:"items"`

	// Totals are recomputed from Items before every persist whenever
	// Items is non-empty. With an empty item list they keep whatever
	// value was supplied explicitly.
	TotalCalories *float64 `bson:"totalCalories,omitempty" json:"totalCalories,omitempty"`
	TotalProtein  *float64 `bson:"totalProtein,omitempty" json:"totalProtein,omitempty"`
	TotalCarbs    *float64 `bson:"totalCarbs,omitempty" json:"totalCarbs,omitempty"`
	TotalFat      *float64 `bson:"totalFat,omitempty" json:"totalFat,omitempty"`
	TotalFiber    *float64 `bson:"totalFiber,omitempty" json:"totalFiber,omitempty"`

	ImageURL    string              `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Status      MealStatus          `bson:"status" json:"status"`
	ReviewedBy  *primitive.ObjectID `bson:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
	ReviewNotes string              `bson:"reviewNotes,omitempty" json:"reviewNotes,omitempty"`

	IsActive   bool                 `bson:"isActive" json:"isActive"`
	CreatedBy  primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	AssignedTo *primitive.ObjectID  `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	Tags       []string             `bson:"tags,omitempty" json:"tags,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func itemValue(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// roundHalfUp rounds to the nearest integer, halves away from zero upward.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// roundTenth rounds to one decimal place, half up.
func roundTenth(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// CalculateTotals sums the item macros into the meal's total fields,
// treating missing values as zero. Calories are rounded to the nearest
// integer, the other macros to one decimal place. The computation is
// idempotent: re-running it on an unchanged item list yields identical
// totals. Callers must skip it when Items is empty so explicitly supplied
// totals survive.
func (m *Meal) CalculateTotals() {
	var calories, protein, carbs, fat, fiber float64
	for _, item := range m.Items {
		calories += itemValue(item.Calories)
		protein += itemValue(item.Protein)
		carbs += itemValue(item.Carbs)
		fat += itemValue(item.Fat)
		fiber += itemValue(item.Fiber)
	}

	totalCalories := roundHalfUp(calories)
	totalProtein := roundTenth(protein)
	totalCarbs := roundTenth(carbs)
	totalFat := roundTenth(fat)
	totalFiber := roundTenth(fiber)

	m.TotalCalories = &totalCalories
	m.TotalProtein = &totalProtein
	m.TotalCarbs = &totalCarbs
	m.TotalFat = &totalFat
	m.TotalFiber = &totalFiber
}
