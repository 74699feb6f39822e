package recipe

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

func TestCreateAppliesDefaults(t *testing.T) {
	env := newTestEnv(t)

	dto, err := env.service.Create(context.Background(), CreateRecipeInput{Name: "Plain Pasta"})
	require.NoError(t, err)
	require.Equal(t, "ALL_YEAR", dto.Season)
	require.Equal(t, "MEDIUM", dto.Difficulty)
	require.Equal(t, 2, dto.Servings)
	require.Empty(t, dto.Requirements)
}

func TestCreateWithRequirements(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tomato := mustCreateIngredient(t, env.conn, "Tomato", enums.CategoryFreshMarket)
	pasta := mustCreateIngredient(t, env.conn, "Pasta", enums.CategoryDry)

	dto, err := env.service.Create(ctx, CreateRecipeInput{
		Name:     "Pasta al Pomodoro",
		Season:   enums.SeasonSummer,
		Servings: 4,
		Requirements: []RequirementInput{
			{IngredientID: tomato.ID, Quantity: decimal.RequireFromString("0.5"), Unit: enums.UnitKilogram},
			{IngredientID: pasta.ID, Quantity: decimal.NewFromInt(400), Unit: enums.UnitGram},
		},
	})
	require.NoError(t, err)
	require.Len(t, dto.Requirements, 2)
	require.Equal(t, "Tomato", dto.Requirements[0].IngredientName)
	require.Equal(t, "FRESH_MARKET", dto.Requirements[0].Category)
	require.True(t, dto.Requirements[0].Quantity.Equal(decimal.RequireFromString("0.5")))
}

func TestCreateRejectsUnknownIngredient(t *testing.T) {
	env := newTestEnv(t)

	missing := uuid.New()
	_, err := env.service.Create(context.Background(), CreateRecipeInput{
		Name: "Mystery Soup",
		Requirements: []RequirementInput{
			{IngredientID: missing, Quantity: decimal.NewFromInt(1), Unit: enums.UnitPiece},
		},
	})
	requireCode(t, err, pkgerrors.CodeValidation)

	typed := pkgerrors.As(err)
	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	require.Contains(t, details["missing_ingredient_ids"], missing.String())
}

func TestCreateRejectsDuplicateRequirement(t *testing.T) {
	env := newTestEnv(t)
	onion := mustCreateIngredient(t, env.conn, "Onion", enums.CategoryFreshMarket)

	_, err := env.service.Create(context.Background(), CreateRecipeInput{
		Name: "Onion Soup",
		Requirements: []RequirementInput{
			{IngredientID: onion.ID, Quantity: decimal.NewFromInt(2), Unit: enums.UnitPiece},
			{IngredientID: onion.ID, Quantity: decimal.NewFromInt(3), Unit: enums.UnitPiece},
		},
	})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateRejectsNonPositiveQuantity(t *testing.T) {
	env := newTestEnv(t)
	salt := mustCreateIngredient(t, env.conn, "Salt", enums.CategoryDry)

	_, err := env.service.Create(context.Background(), CreateRecipeInput{
		Name: "Salted Nothing",
		Requirements: []RequirementInput{
			{IngredientID: salt.ID, Quantity: decimal.Zero, Unit: enums.UnitPinch},
		},
	})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdateReplacesRequirements(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	rice := mustCreateIngredient(t, env.conn, "Rice", enums.CategoryDry)
	fish := mustCreateIngredient(t, env.conn, "Salmon", enums.CategoryFreshArtisan)

	created, err := env.service.Create(ctx, CreateRecipeInput{
		Name: "Rice Bowl",
		Requirements: []RequirementInput{
			{IngredientID: rice.ID, Quantity: decimal.NewFromInt(200), Unit: enums.UnitGram},
		},
	})
	require.NoError(t, err)

	newReqs := []RequirementInput{
		{IngredientID: fish.ID, Quantity: decimal.NewFromInt(150), Unit: enums.UnitGram},
	}
	hard := enums.DifficultyHard
	updated, err := env.service.Update(ctx, created.ID, UpdateRecipeInput{
		Difficulty:   &hard,
		Requirements: &newReqs,
	})
	require.NoError(t, err)
	require.Equal(t, "HARD", updated.Difficulty)
	require.Len(t, updated.Requirements, 1)
	require.Equal(t, fish.ID, updated.Requirements[0].IngredientID)
}

func TestUpdateNotFound(t *testing.T) {
	env := newTestEnv(t)

	name := "Ghost"
	_, err := env.service.Update(context.Background(), uuid.New(), UpdateRecipeInput{Name: &name})
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestDeleteCascadesRequirements(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	egg := mustCreateIngredient(t, env.conn, "Egg", enums.CategoryFreshMarket)
	created, err := env.service.Create(ctx, CreateRecipeInput{
		Name: "Omelette",
		Requirements: []RequirementInput{
			{IngredientID: egg.ID, Quantity: decimal.NewFromInt(3), Unit: enums.UnitPiece},
		},
	})
	require.NoError(t, err)

	require.NoError(t, env.service.Delete(ctx, created.ID))

	remaining, err := NewRepository(env.conn).RequirementsForRecipe(ctx, created.ID)
	require.NoError(t, err)
	require.Empty(t, remaining)

	err = env.service.Delete(ctx, created.ID)
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestDeleteLeavesShoppingListItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	egg := mustCreateIngredient(t, env.conn, "Egg", enums.CategoryFreshMarket)
	created, err := env.service.Create(ctx, CreateRecipeInput{
		Name: "Omelette",
		Requirements: []RequirementInput{
			{IngredientID: egg.ID, Quantity: decimal.NewFromInt(3), Unit: enums.UnitPiece},
		},
	})
	require.NoError(t, err)

	list := &models.ShoppingList{ID: uuid.New(), Name: "Week 2"}
	require.NoError(t, env.conn.Create(list).Error)
	require.NoError(t, env.conn.Create(&models.ShoppingListItem{
		ShoppingListID: list.ID, IngredientID: egg.ID, Unit: enums.UnitPiece, Quantity: decimal.NewFromInt(3),
	}).Error)

	require.NoError(t, env.service.Delete(ctx, created.ID))

	// Items generated from the recipe are snapshots; they survive its deletion.
	var items []models.ShoppingListItem
	require.NoError(t, env.conn.Where("shopping_list_id = ?", list.ID).Find(&items).Error)
	require.Len(t, items, 1)
	require.Equal(t, egg.ID, items[0].IngredientID)
}

func TestListSearchesAndFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.service.Create(ctx, CreateRecipeInput{Name: "Tomato Soup", Season: enums.SeasonSummer})
	require.NoError(t, err)
	_, err = env.service.Create(ctx, CreateRecipeInput{Name: "Pumpkin Soup", Season: enums.SeasonAutumn})
	require.NoError(t, err)
	_, err = env.service.Create(ctx, CreateRecipeInput{Name: "Caesar Salad", Season: enums.SeasonSummer})
	require.NoError(t, err)

	result, err := env.service.List(ctx, ListRecipesInput{Search: "soup"})
	require.NoError(t, err)
	require.EqualValues(t, 2, result.Total)
	require.Equal(t, "Pumpkin Soup", result.Items[0].Name)
	require.Equal(t, "Tomato Soup", result.Items[1].Name)

	summer := enums.SeasonSummer
	result, err = env.service.List(ctx, ListRecipesInput{Search: "soup", Season: &summer})
	require.NoError(t, err)
	require.EqualValues(t, 1, result.Total)
	require.Equal(t, "Tomato Soup", result.Items[0].Name)
}

func TestListNormalizesPagination(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.service.List(context.Background(), ListRecipesInput{
		Pagination: pagination.Params{Skip: -1, Limit: 5000},
	})
	require.NoError(t, err)
	require.Equal(t, 0, result.Skip)
	require.Equal(t, pagination.MaxLimit, result.Limit)
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	require.Equal(t, code, typed.Code())
}
