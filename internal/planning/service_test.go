package planning

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/lmarchal/grocerly-backend/pkg/db/models"
	"github.com/lmarchal/grocerly-backend/pkg/enums"
	pkgerrors "github.com/lmarchal/grocerly-backend/pkg/errors"
	"github.com/lmarchal/grocerly-backend/pkg/pagination"
)

type stubLister struct {
	recipes []models.Recipe
	season  *enums.Season
	limit   int
}

func (s *stubLister) List(_ context.Context, params pagination.Params, _ string, season *enums.Season) ([]models.Recipe, int64, error) {
	s.season = season
	s.limit = params.Limit
	end := len(s.recipes)
	if params.Limit < end {
		end = params.Limit
	}
	return s.recipes[:end], int64(len(s.recipes)), nil
}

func namedRecipes(names ...string) []models.Recipe {
	recipes := make([]models.Recipe, 0, len(names))
	for _, name := range names {
		recipes = append(recipes, models.Recipe{ID: uuid.New(), Name: name})
	}
	return recipes
}

func newTestService(t *testing.T, lister recipeLister) Service {
	t.Helper()
	svc, err := NewService(lister)
	require.NoError(t, err)
	return svc
}

func TestSuggestFillsLunchThenDinner(t *testing.T) {
	svc := newTestService(t, &stubLister{recipes: namedRecipes("A", "B", "C", "D")})

	plan, err := svc.Suggest(context.Background(), SuggestInput{NumDays: 2})
	require.NoError(t, err)
	require.Equal(t, 2, plan.NumDays)
	require.Equal(t, 4, plan.TotalRecipes)
	require.Len(t, plan.Days, 2)

	require.Equal(t, "LUNCH", plan.Days[0].Meals[0].MealType)
	require.Equal(t, "DINNER", plan.Days[0].Meals[1].MealType)
	require.Equal(t, "A", plan.Days[0].Meals[0].RecipeName)
	require.Equal(t, "B", plan.Days[0].Meals[1].RecipeName)
	require.Equal(t, "C", plan.Days[1].Meals[0].RecipeName)
}

func TestSuggestStopsWhenCatalogRunsOut(t *testing.T) {
	svc := newTestService(t, &stubLister{recipes: namedRecipes("Only One")})

	plan, err := svc.Suggest(context.Background(), SuggestInput{NumDays: 3})
	require.NoError(t, err)
	require.Equal(t, 1, plan.TotalRecipes)
	require.Len(t, plan.Days, 3)
	require.Len(t, plan.Days[0].Meals, 1)
	require.Empty(t, plan.Days[1].Meals)
	require.Empty(t, plan.Days[2].Meals)
}

func TestSuggestDefaults(t *testing.T) {
	lister := &stubLister{recipes: namedRecipes("A", "B")}
	svc := newTestService(t, lister)

	plan, err := svc.Suggest(context.Background(), SuggestInput{})
	require.NoError(t, err)
	require.Equal(t, 7, plan.NumDays)
	require.Equal(t, 14, lister.limit)
}

func TestSuggestPassesSeasonFilter(t *testing.T) {
	lister := &stubLister{recipes: namedRecipes("Stew")}
	svc := newTestService(t, lister)

	winter := enums.SeasonWinter
	_, err := svc.Suggest(context.Background(), SuggestInput{NumDays: 1, Season: &winter})
	require.NoError(t, err)
	require.NotNil(t, lister.season)
	require.Equal(t, enums.SeasonWinter, *lister.season)
}

func TestSuggestValidatesBounds(t *testing.T) {
	svc := newTestService(t, &stubLister{})
	ctx := context.Background()

	for _, input := range []SuggestInput{
		{NumDays: -1},
		{NumDays: 40},
		{MealsPerDay: -2},
		{MealsPerDay: 9},
	} {
		_, err := svc.Suggest(ctx, input)
		require.Error(t, err)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	}
}
