package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lmarchal/grocerly-backend/pkg/db"
	dbmodels "github.com/lmarchal/grocerly-backend/pkg/db/models"
	"github.com/lmarchal/grocerly-backend/pkg/enums"
	pkgerrors "github.com/lmarchal/grocerly-backend/pkg/errors"
	"github.com/lmarchal/grocerly-backend/pkg/pagination"
)

// Service exposes recipe management operations.
type Service interface {
	Create(ctx context.Context, input CreateRecipeInput) (*RecipeDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*RecipeDTO, error)
	List(ctx context.Context, input ListRecipesInput) (*RecipeListResult, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateRecipeInput) (*RecipeDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RequirementInput is one validated ingredient line of a recipe payload.
type RequirementInput struct {
	IngredientID uuid.UUID
	Quantity     decimal.Decimal
	Unit         enums.Unit
}

// CreateRecipeInput holds the validated payload to create a recipe.
type CreateRecipeInput struct {
	Name            string
	Description     *string
	Season          enums.Season
	Difficulty      enums.Difficulty
	Servings        int
	PrepTimeMinutes int
	CookTimeMinutes int
	Instructions    string
	Requirements    []RequirementInput
}

// UpdateRecipeInput holds optional mutation values for a recipe. A non-nil
// Requirements slice replaces the full requirement set.
type UpdateRecipeInput struct {
	Name            *string
	Description     *string
	Season          *enums.Season
	Difficulty      *enums.Difficulty
	Servings        *int
	PrepTimeMinutes *int
	CookTimeMinutes *int
	Instructions    *string
	Requirements    *[]RequirementInput
}

// ListRecipesInput carries paging, the optional search term, and the optional
// season filter.
type ListRecipesInput struct {
	Pagination pagination.Params
	Search     string
	Season     *enums.Season
}

type ingredientLoader interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]dbmodels.Ingredient, error)
}

// service implements the recipe service.
type service struct {
	repo        *Repository
	dbClient    *db.Client
	ingredients ingredientLoader
}

// NewService constructs a recipe service instance.
func NewService(repo *Repository, dbClient *db.Client, ingredients ingredientLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("recipe repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if ingredients == nil {
		return nil, fmt.Errorf("ingredient loader required")
	}
	return &service{repo: repo, dbClient: dbClient, ingredients: ingredients}, nil
}

// Create persists the recipe and its requirement lines in one transaction.
func (s *service) Create(ctx context.Context, input CreateRecipeInput) (*RecipeDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	season, difficulty, err := normalizeRecipeEnums(input.Season, input.Difficulty)
	if err != nil {
		return nil, err
	}
	servings := input.Servings
	if servings == 0 {
		servings = 2
	}
	if err := validateRecipeNumbers(servings, input.PrepTimeMinutes, input.CookTimeMinutes); err != nil {
		return nil, err
	}
	byIngredient, err := s.checkRequirements(ctx, input.Requirements)
	if err != nil {
		return nil, err
	}

	recipe := &dbmodels.Recipe{
		Name:            name,
		Description:     input.Description,
		Season:          season,
		Difficulty:      difficulty,
		Servings:        servings,
		PrepTimeMinutes: input.PrepTimeMinutes,
		CookTimeMinutes: input.CookTimeMinutes,
		Instructions:    input.Instructions,
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		created, err := txRepo.Create(ctx, recipe)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: insert recipe")
		}
		rows := requirementRows(created.ID, input.Requirements)
		if err := txRepo.ReplaceRequirements(ctx, created.ID, rows); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: insert recipe requirements")
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return toRecipeDTO(recipe, requirementDTOs(requirementRows(recipe.ID, input.Requirements), byIngredient)), nil
}

// Get loads one recipe with its requirement lines resolved against the
// ingredient catalog.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*RecipeDTO, error) {
	recipe, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "recipe not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: load recipe")
	}

	requirements, err := s.repo.RequirementsForRecipe(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: load recipe requirements")
	}
	byIngredient, err := s.loadIngredients(ctx, ingredientIDsOf(requirements))
	if err != nil {
		return nil, err
	}
	return toRecipeDTO(recipe, requirementDTOs(requirements, byIngredient)), nil
}

// List returns a name-ordered page of recipe summaries.
func (s *service) List(ctx context.Context, input ListRecipesInput) (*RecipeListResult, error) {
	if input.Season != nil && !input.Season.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown season")
	}
	params := pagination.Normalize(input.Pagination)

	recipes, total, err := s.repo.List(ctx, params, input.Search, input.Season)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: list recipes")
	}

	items := make([]RecipeSummaryDTO, 0, len(recipes))
	for i := range recipes {
		items = append(items, toRecipeSummaryDTO(&recipes[i]))
	}
	return &RecipeListResult{Items: items, Total: total, Skip: params.Skip, Limit: params.Limit}, nil
}

// Update applies the provided fields; a non-nil requirement slice replaces
// every existing line. Metadata and requirements change in one transaction.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateRecipeInput) (*RecipeDTO, error) {
	recipe, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "recipe not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: load recipe")
	}

	if err := applyRecipeUpdate(recipe, input); err != nil {
		return nil, err
	}
	if input.Requirements != nil {
		if _, err := s.checkRequirements(ctx, *input.Requirements); err != nil {
			return nil, err
		}
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.Update(ctx, recipe); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: update recipe")
		}
		if input.Requirements != nil {
			rows := requirementRows(recipe.ID, *input.Requirements)
			if err := txRepo.ReplaceRequirements(ctx, recipe.ID, rows); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: replace recipe requirements")
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete removes the recipe and its requirement lines.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "recipe not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: delete recipe")
	}
	return nil
}

// checkRequirements validates every line and verifies all referenced
// ingredients exist, returning the loaded catalog rows keyed by ID.
func (s *service) checkRequirements(ctx context.Context, requirements []RequirementInput) (map[uuid.UUID]dbmodels.Ingredient, error) {
	seen := make(map[uuid.UUID]struct{}, len(requirements))
	ids := make([]uuid.UUID, 0, len(requirements))
	for _, req := range requirements {
		if req.IngredientID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "requirement ingredient_id is required")
		}
		if _, dup := seen[req.IngredientID]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("ingredient %s appears more than once", req.IngredientID))
		}
		seen[req.IngredientID] = struct{}{}
		ids = append(ids, req.IngredientID)

		if !req.Quantity.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "requirement quantity must be positive")
		}
		if !req.Unit.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown unit")
		}
	}

	byIngredient, err := s.loadIngredients(ctx, ids)
	if err != nil {
		return nil, err
	}
	missing := make([]string, 0)
	for _, id := range ids {
		if _, ok := byIngredient[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown ingredients in requirements").
			WithDetails(map[string]any{"missing_ingredient_ids": missing})
	}
	return byIngredient, nil
}

func (s *service) loadIngredients(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]dbmodels.Ingredient, error) {
	ingredients, err := s.ingredients.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: load ingredients")
	}
	byID := make(map[uuid.UUID]dbmodels.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID] = ing
	}
	return byID, nil
}

func normalizeRecipeEnums(season enums.Season, difficulty enums.Difficulty) (enums.Season, enums.Difficulty, error) {
	if season == "" {
		season = enums.SeasonAllYear
	}
	if difficulty == "" {
		difficulty = enums.DifficultyMedium
	}
	if !season.IsValid() {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "unknown season")
	}
	if !difficulty.IsValid() {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "unknown difficulty")
	}
	return season, difficulty, nil
}

func validateRecipeNumbers(servings, prep, cook int) error {
	if servings < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "servings must be at least 1")
	}
	if prep < 0 || cook < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "preparation times cannot be negative")
	}
	return nil
}

func applyRecipeUpdate(recipe *dbmodels.Recipe, input UpdateRecipeInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		recipe.Name = name
	}
	if input.Description != nil {
		recipe.Description = input.Description
	}
	if input.Season != nil {
		if !input.Season.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown season")
		}
		recipe.Season = *input.Season
	}
	if input.Difficulty != nil {
		if !input.Difficulty.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown difficulty")
		}
		recipe.Difficulty = *input.Difficulty
	}
	if input.Servings != nil {
		recipe.Servings = *input.Servings
	}
	if input.PrepTimeMinutes != nil {
		recipe.PrepTimeMinutes = *input.PrepTimeMinutes
	}
	if input.CookTimeMinutes != nil {
		recipe.CookTimeMinutes = *input.CookTimeMinutes
	}
	if input.Instructions != nil {
		recipe.Instructions = *input.Instructions
	}
	return validateRecipeNumbers(recipe.Servings, recipe.PrepTimeMinutes, recipe.CookTimeMinutes)
}

func requirementRows(recipeID uuid.UUID, requirements []RequirementInput) []dbmodels.RecipeRequirement {
	rows := make([]dbmodels.RecipeRequirement, 0, len(requirements))
	for _, req := range requirements {
		rows = append(rows, dbmodels.RecipeRequirement{
			RecipeID:     recipeID,
			IngredientID: req.IngredientID,
			Quantity:     req.Quantity,
			Unit:         req.Unit,
		})
	}
	return rows
}

func requirementDTOs(rows []dbmodels.RecipeRequirement, byIngredient map[uuid.UUID]dbmodels.Ingredient) []RequirementDTO {
	dtos := make([]RequirementDTO, 0, len(rows))
	for _, row := range rows {
		dto := RequirementDTO{
			IngredientID: row.IngredientID,
			Quantity:     row.Quantity,
			Unit:         row.Unit.String(),
		}
		if ing, ok := byIngredient[row.IngredientID]; ok {
			dto.IngredientName = ing.Name
			dto.Category = ing.Category.String()
		}
		dtos = append(dtos, dto)
	}
	return dtos
}

func ingredientIDsOf(rows []dbmodels.RecipeRequirement) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.IngredientID)
	}
	return ids
}
