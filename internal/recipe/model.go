package recipe

import (
	"errors"
	"time"
)

// ErrNotFound is returned by updates and deletes that touch no row.
var ErrNotFound = errors.New("not found")

// Recipe is one stored recipe. Markup holds the rich-text recipe body the
// shopping-list extractor consumes; it may be empty or malformed, which the
// extractor tolerates.
type Recipe struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Markup      string `json:"markup" db:"markup"`
	Price       int    `json:"price" db:"price"`
	ImageURL    string `json:"image_url" db:"image_url"`
}

// PlanDay assigns a recipe (optionally) to one labeled day slot.
type PlanDay struct {
	Day      string `json:"day" db:"day_label"`
	RecipeID string `json:"recipe_id,omitempty" db:"recipe_id"`
}

// MealPlan is a saved plan: an ordered sequence of day slots.
type MealPlan struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Days      []PlanDay `json:"days,omitempty"`
}

// DayMarkup pairs a plan day's label with the markup of its recipe, empty
// when the slot has no recipe. This is the shopping-list builder's input
// shape.
type DayMarkup struct {
	Day    string `db:"day_label"`
	Markup string `db:"markup"`
}
