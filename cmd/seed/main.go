package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	ingredient "github.com/lmarchal/grocerly-backend/internal/ingredients"
	recipe "github.com/lmarchal/grocerly-backend/internal/recipes"
	"github.com/lmarchal/grocerly-backend/pkg/config"
	"github.com/lmarchal/grocerly-backend/pkg/db"
	"github.com/lmarchal/grocerly-backend/pkg/enums"
	pkgerrors "github.com/lmarchal/grocerly-backend/pkg/errors"
	"github.com/lmarchal/grocerly-backend/pkg/logger"
)

type seedIngredient struct {
	name     string
	category enums.IngredientCategory
	search   string
}

type seedRequirement struct {
	ingredient string
	quantity   string
	unit       enums.Unit
}

type seedRecipe struct {
	name         string
	season       enums.Season
	difficulty   enums.Difficulty
	servings     int
	requirements []seedRequirement
}

var starterIngredients = []seedIngredient{
	{name: "Tomato", category: enums.CategoryFreshMarket, search: "tomato"},
	{name: "Onion", category: enums.CategoryFreshMarket, search: "onion"},
	{name: "Carrot", category: enums.CategoryFreshMarket, search: "carrot"},
	{name: "Chicken breast", category: enums.CategoryFreshArtisan, search: "chicken"},
	{name: "Rice", category: enums.CategoryDry, search: "rice"},
	{name: "Olive oil", category: enums.CategoryDry, search: "olive oil"},
}

var starterRecipes = []seedRecipe{
	{
		name:       "Chicken and rice",
		season:     enums.SeasonAllYear,
		difficulty: enums.DifficultyEasy,
		servings:   2,
		requirements: []seedRequirement{
			{ingredient: "Chicken breast", quantity: "0.4", unit: enums.UnitKilogram},
			{ingredient: "Rice", quantity: "0.25", unit: enums.UnitKilogram},
			{ingredient: "Olive oil", quantity: "2", unit: enums.UnitTablespoon},
		},
	},
	{
		name:       "Tomato soup",
		season:     enums.SeasonSummer,
		difficulty: enums.DifficultyEasy,
		servings:   4,
		requirements: []seedRequirement{
			{ingredient: "Tomato", quantity: "1", unit: enums.UnitKilogram},
			{ingredient: "Onion", quantity: "2", unit: enums.UnitPiece},
			{ingredient: "Carrot", quantity: "0.2", unit: enums.UnitKilogram},
		},
	},
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	ctx := logg.WithField(context.Background(), "env", cfg.App.Env)
	if err := run(ctx, logg, dbClient); err != nil {
		logg.Error(ctx, "seed finished with errors", err)
		os.Exit(1)
	}
	logg.Info(ctx, "seed complete")
}

// run inserts the starter catalog. Already-seeded rows are skipped so the
// command stays idempotent; everything else is aggregated and reported.
func run(ctx context.Context, logg *logger.Logger, dbClient *db.Client) error {
	ingredientRepo := ingredient.NewRepository(dbClient.DB())
	ingredientService, err := ingredient.NewService(ingredientRepo)
	if err != nil {
		return err
	}
	recipeRepo := recipe.NewRepository(dbClient.DB())
	recipeService, err := recipe.NewService(recipeRepo, dbClient, ingredientRepo)
	if err != nil {
		return err
	}

	var errs error
	ingredientIDs := map[string]ingredient.IngredientDTO{}
	for _, row := range starterIngredients {
		search := row.search
		dto, err := ingredientService.Create(ctx, ingredient.CreateIngredientInput{
			Name:       row.name,
			Category:   row.category,
			SearchTerm: &search,
		})
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeDuplicate {
				logg.Info(logg.WithField(ctx, "ingredient", row.name), "ingredient already seeded")
				continue
			}
			errs = multierr.Append(errs, fmt.Errorf("ingredient %q: %w", row.name, err))
			continue
		}
		ingredientIDs[row.name] = *dto
	}

	for _, row := range starterRecipes {
		input, ok := buildRecipeInput(row, ingredientIDs)
		if !ok {
			logg.Warn(logg.WithField(ctx, "recipe", row.name), "skipping recipe, ingredients not seeded in this run")
			continue
		}
		if _, err := recipeService.Create(ctx, input); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("recipe %q: %w", row.name, err))
		}
	}
	return errs
}

func buildRecipeInput(row seedRecipe, ingredients map[string]ingredient.IngredientDTO) (recipe.CreateRecipeInput, bool) {
	input := recipe.CreateRecipeInput{
		Name:       row.name,
		Season:     row.season,
		Difficulty: row.difficulty,
		Servings:   row.servings,
	}
	for _, req := range row.requirements {
		dto, ok := ingredients[req.ingredient]
		if !ok {
			return recipe.CreateRecipeInput{}, false
		}
		input.Requirements = append(input.Requirements, recipe.RequirementInput{
			IngredientID: dto.ID,
			Quantity:     decimal.RequireFromString(req.quantity),
			Unit:         req.unit,
		})
	}
	return input, true
}
