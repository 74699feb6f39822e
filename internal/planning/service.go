package planning

import (
	"context"
	"fmt"
	"time"

	"github.com/lmarchal/grocerly-backend/pkg/db/models"
	"github.com/lmarchal/grocerly-backend/pkg/enums"
	pkgerrors "github.com/lmarchal/grocerly-backend/pkg/errors"
	"github.com/lmarchal/grocerly-backend/pkg/pagination"
)

const (
	defaultPlanDays    = 7
	defaultMealsPerDay = 2
	maxPlanDays        = 31
	maxPlanMealsPerDay = 6
)

// Service suggests meal plans from the recipe catalog.
type Service interface {
	Suggest(ctx context.Context, input SuggestInput) (*MealPlanDTO, error)
}

// SuggestInput holds the tunables of a plan suggestion. Zero values fall back
// to a one-week plan with lunch and dinner.
type SuggestInput struct {
	NumDays     int
	MealsPerDay int
	Season      *enums.Season
}

type recipeLister interface {
	List(ctx context.Context, params pagination.Params, search string, season *enums.Season) ([]models.Recipe, int64, error)
}

// service implements the planning service.
type service struct {
	recipes recipeLister
	now     func() time.Time
}

// NewService constructs a planning service instance.
func NewService(recipes recipeLister) (Service, error) {
	if recipes == nil {
		return nil, fmt.Errorf("recipe lister required")
	}
	return &service{recipes: recipes, now: time.Now}, nil
}

// Suggest walks the catalog and fills the plan slot by slot, first meal of the
// day as lunch and the rest as dinner. When the catalog runs out of recipes
// the remaining days stay empty rather than repeating dishes.
func (s *service) Suggest(ctx context.Context, input SuggestInput) (*MealPlanDTO, error) {
	numDays := input.NumDays
	if numDays == 0 {
		numDays = defaultPlanDays
	}
	mealsPerDay := input.MealsPerDay
	if mealsPerDay == 0 {
		mealsPerDay = defaultMealsPerDay
	}
	if numDays < 1 || numDays > maxPlanDays {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("num_days must be between 1 and %d", maxPlanDays))
	}
	if mealsPerDay < 1 || mealsPerDay > maxPlanMealsPerDay {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("meals_per_day must be between 1 and %d", maxPlanMealsPerDay))
	}
	if input.Season != nil && !input.Season.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown season")
	}

	needed := numDays * mealsPerDay
	recipes, _, err := s.recipes.List(ctx, pagination.Params{Skip: 0, Limit: needed}, "", input.Season)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: list recipes for plan")
	}

	start := s.now()
	plan := &MealPlanDTO{
		StartDate: formatDate(start),
		NumDays:   numDays,
		Days:      make([]MealPlanDayDTO, 0, numDays),
	}

	next := 0
	for day := 0; day < numDays; day++ {
		entry := MealPlanDayDTO{
			Date:  formatDate(start.AddDate(0, 0, day)),
			Meals: []PlannedMealDTO{},
		}
		for meal := 0; meal < mealsPerDay && next < len(recipes); meal++ {
			mealType := enums.MealDinner
			if meal == 0 {
				mealType = enums.MealLunch
			}
			entry.Meals = append(entry.Meals, PlannedMealDTO{
				RecipeID:   recipes[next].ID,
				RecipeName: recipes[next].Name,
				MealType:   mealType.String(),
			})
			next++
		}
		plan.Days = append(plan.Days, entry)
	}
	plan.TotalRecipes = next
	return plan, nil
}
