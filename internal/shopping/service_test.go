package shopping

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/lmarchal/grocerly-backend/pkg/db/models"
	"github.com/lmarchal/grocerly-backend/pkg/enums"
	pkgerrors "github.com/lmarchal/grocerly-backend/pkg/errors"
	"github.com/lmarchal/grocerly-backend/pkg/pagination"
)

func TestGenerateConsolidatesAcrossRecipes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tomato := mustCreateIngredient(t, env.conn, "Tomato", enums.CategoryFreshMarket)
	pasta := mustCreateIngredient(t, env.conn, "Pasta", enums.CategoryDry)

	soup := mustCreateRecipe(t, env.conn, "Tomato Soup", []models.RecipeRequirement{
		{IngredientID: tomato.ID, Quantity: decimal.RequireFromString("0.5"), Unit: enums.UnitKilogram},
	})
	pomodoro := mustCreateRecipe(t, env.conn, "Pasta al Pomodoro", []models.RecipeRequirement{
		{IngredientID: tomato.ID, Quantity: decimal.RequireFromString("0.3"), Unit: enums.UnitKilogram},
		{IngredientID: pasta.ID, Quantity: decimal.NewFromInt(400), Unit: enums.UnitGram},
	})

	dto, err := env.service.Generate(ctx, GenerateInput{
		Name: "Week 36",
		Selections: []RecipeSelection{
			{RecipeID: soup.ID},
			{RecipeID: pomodoro.ID},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "Week 36", dto.Name)
	require.Len(t, dto.Items, 2)

	byName := make(map[string]ShoppingListItemDTO, len(dto.Items))
	for _, item := range dto.Items {
		byName[item.IngredientName] = item
	}
	require.True(t, byName["Tomato"].Quantity.Equal(decimal.RequireFromString("0.8")))
	require.Equal(t, "KG", byName["Tomato"].Unit)
	require.True(t, byName["Pasta"].Quantity.Equal(decimal.NewFromInt(400)))
	require.Equal(t, "G", byName["Pasta"].Unit)
}

func TestGenerateAppliesMultiplier(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	egg := mustCreateIngredient(t, env.conn, "Egg", enums.CategoryFreshMarket)
	omelette := mustCreateRecipe(t, env.conn, "Omelette", []models.RecipeRequirement{
		{IngredientID: egg.ID, Quantity: decimal.NewFromInt(3), Unit: enums.UnitPiece},
	})

	double := decimal.NewFromInt(2)
	dto, err := env.service.Generate(ctx, GenerateInput{
		Name:       "Brunch",
		Selections: []RecipeSelection{{RecipeID: omelette.ID, Multiplier: &double}},
	})
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)
	require.True(t, dto.Items[0].Quantity.Equal(decimal.NewFromInt(6)))
}

func TestGenerateSkipsUnknownRecipes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	rice := mustCreateIngredient(t, env.conn, "Rice", enums.CategoryDry)
	bowl := mustCreateRecipe(t, env.conn, "Rice Bowl", []models.RecipeRequirement{
		{IngredientID: rice.ID, Quantity: decimal.NewFromInt(200), Unit: enums.UnitGram},
	})

	dto, err := env.service.Generate(ctx, GenerateInput{
		Name: "Partial",
		Selections: []RecipeSelection{
			{RecipeID: bowl.ID},
			{RecipeID: uuid.New()},
		},
	})
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)
	require.Equal(t, "Rice", dto.Items[0].IngredientName)
}

func TestGenerateEmptySelection(t *testing.T) {
	env := newTestEnv(t)

	dto, err := env.service.Generate(context.Background(), GenerateInput{Name: "Empty Week"})
	require.NoError(t, err)
	require.Empty(t, dto.Items)
}

func TestGenerateRejectsNonPositiveMultiplier(t *testing.T) {
	env := newTestEnv(t)

	zero := decimal.Zero
	_, err := env.service.Generate(context.Background(), GenerateInput{
		Name:       "Broken",
		Selections: []RecipeSelection{{RecipeID: uuid.New(), Multiplier: &zero}},
	})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestGenerateRepeatedSelectionAddsUp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	milk := mustCreateIngredient(t, env.conn, "Milk", enums.CategoryFreshMarket)
	pancakes := mustCreateRecipe(t, env.conn, "Pancakes", []models.RecipeRequirement{
		{IngredientID: milk.ID, Quantity: decimal.RequireFromString("0.25"), Unit: enums.UnitLiter},
	})

	dto, err := env.service.Generate(ctx, GenerateInput{
		Name: "Double Batch",
		Selections: []RecipeSelection{
			{RecipeID: pancakes.ID},
			{RecipeID: pancakes.ID},
		},
	})
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)
	require.True(t, dto.Items[0].Quantity.Equal(decimal.RequireFromString("0.5")))
}

func TestOrganizeByCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	flour := mustCreateIngredient(t, env.conn, "Flour", enums.CategoryDry)
	salmon := mustCreateIngredient(t, env.conn, "Salmon", enums.CategoryFreshArtisan)
	basil := mustCreateIngredient(t, env.conn, "Basil", enums.CategoryFreshMarket)

	dinner := mustCreateRecipe(t, env.conn, "Salmon Dinner", []models.RecipeRequirement{
		{IngredientID: flour.ID, Quantity: decimal.NewFromInt(100), Unit: enums.UnitGram},
		{IngredientID: salmon.ID, Quantity: decimal.NewFromInt(300), Unit: enums.UnitGram},
		{IngredientID: basil.ID, Quantity: decimal.NewFromInt(1), Unit: enums.UnitPiece},
	})

	dto, err := env.service.Generate(ctx, GenerateInput{
		Name:       "Friday",
		Selections: []RecipeSelection{{RecipeID: dinner.ID}},
	})
	require.NoError(t, err)

	organized, err := env.service.OrganizeByCategory(ctx, dto.ID)
	require.NoError(t, err)
	require.Len(t, organized, 3)
	require.Len(t, organized["DRY"], 1)
	require.Equal(t, "Flour", organized["DRY"][0].IngredientName)
	require.Len(t, organized["FRESH_ARTISAN"], 1)
	require.Len(t, organized["FRESH_MARKET"], 1)
}

func TestSetCheckedTogglesAllUnitsOfIngredient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	flour := mustCreateIngredient(t, env.conn, "Flour", enums.CategoryDry)
	bread := mustCreateRecipe(t, env.conn, "Bread", []models.RecipeRequirement{
		{IngredientID: flour.ID, Quantity: decimal.NewFromInt(500), Unit: enums.UnitGram},
	})
	cake := mustCreateRecipe(t, env.conn, "Cake", []models.RecipeRequirement{
		{IngredientID: flour.ID, Quantity: decimal.NewFromInt(1), Unit: enums.UnitKilogram},
	})

	dto, err := env.service.Generate(ctx, GenerateInput{
		Name: "Baking Day",
		Selections: []RecipeSelection{
			{RecipeID: bread.ID},
			{RecipeID: cake.ID},
		},
	})
	require.NoError(t, err)
	require.Len(t, dto.Items, 2)

	updated, err := env.service.SetChecked(ctx, dto.ID, flour.ID, true)
	require.NoError(t, err)
	require.True(t, updated)

	reloaded, err := env.service.Get(ctx, dto.ID)
	require.NoError(t, err)
	for _, item := range reloaded.Items {
		require.True(t, item.Checked)
	}
}

func TestSetCheckedIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	butter := mustCreateIngredient(t, env.conn, "Butter", enums.CategoryFreshArtisan)
	toast := mustCreateRecipe(t, env.conn, "Toast", []models.RecipeRequirement{
		{IngredientID: butter.ID, Quantity: decimal.NewFromInt(20), Unit: enums.UnitGram},
	})

	dto, err := env.service.Generate(ctx, GenerateInput{
		Name:       "Breakfast",
		Selections: []RecipeSelection{{RecipeID: toast.ID}},
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		updated, err := env.service.SetChecked(ctx, dto.ID, butter.ID, true)
		require.NoError(t, err)
		require.True(t, updated)
	}

	reloaded, err := env.service.Get(ctx, dto.ID)
	require.NoError(t, err)
	require.True(t, reloaded.Items[0].Checked)
}

func TestSetCheckedUnknownIngredient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	dto, err := env.service.CreateList(ctx, "Empty")
	require.NoError(t, err)

	updated, err := env.service.SetChecked(ctx, dto.ID, uuid.New(), true)
	require.NoError(t, err)
	require.False(t, updated)
}

func TestSetCheckedUnknownList(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.SetChecked(context.Background(), uuid.New(), uuid.New(), true)
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestRenameAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	dto, err := env.service.CreateList(ctx, "Old Name")
	require.NoError(t, err)

	renamed, err := env.service.Rename(ctx, dto.ID, "New Name")
	require.NoError(t, err)
	require.Equal(t, "New Name", renamed.Name)

	require.NoError(t, env.service.Delete(ctx, dto.ID))
	err = env.service.Delete(ctx, dto.ID)
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestListPaginates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, name := range []string{"One", "Two", "Three"} {
		_, err := env.service.CreateList(ctx, name)
		require.NoError(t, err)
	}

	result, err := env.service.List(ctx, pagination.Params{Skip: 0, Limit: 2})
	require.NoError(t, err)
	require.EqualValues(t, 3, result.Total)
	require.Len(t, result.Items, 2)
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	require.Equal(t, code, typed.Code())
}
