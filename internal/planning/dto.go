package planning

import (
	"time"

	"github.com/google/uuid"
)

// PlannedMealDTO is one suggested meal slot.
type PlannedMealDTO struct {
	RecipeID   uuid.UUID `json:"recipe_id"`
	RecipeName string    `json:"recipe_name"`
	MealType   string    `json:"meal_type"`
}

// MealPlanDayDTO groups the suggested meals of a single day.
type MealPlanDayDTO struct {
	Date  string           `json:"date"`
	Meals []PlannedMealDTO `json:"meals"`
}

// MealPlanDTO is the suggested plan over consecutive days starting today.
type MealPlanDTO struct {
	StartDate    string           `json:"start_date"`
	NumDays      int              `json:"num_days"`
	TotalRecipes int              `json:"total_recipes"`
	Days         []MealPlanDayDTO `json:"days"`
}

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
