package shopping

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
	"github.com/lmarchal/grocerly-backend/pkg/logger"
	"github.com/lmarchal/grocerly-backend/pkg/pagination"
)

// Service exposes shopping list operations, including list generation from a
// recipe selection.
type Service interface {
	CreateList(ctx context.Context, name string) (*ShoppingListDTO, error)
	Generate(ctx context.Context, input GenerateInput) (*ShoppingListDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ShoppingListDTO, error)
	OrganizeByCategory(ctx context.Context, id uuid.UUID) (CategorizedItems, error)
	SetChecked(ctx context.Context, listID, ingredientID uuid.UUID, checked bool) (bool, error)
	List(ctx context.Context, params pagination.Params) (*ShoppingListListResult, error)
	Rename(ctx context.Context, id uuid.UUID, name string) (*ShoppingListDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RecipeSelection picks one recipe for generation, optionally scaled. A nil
// multiplier means the recipe counts once.
type RecipeSelection struct {
	RecipeID   uuid.UUID
	Multiplier *decimal.Decimal
}

// GenerateInput holds the validated payload to generate a shopping list.
type GenerateInput struct {
	Name       string
	Selections []RecipeSelection
}

type recipeReader interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]dbmodels.Recipe, error)
	RequirementsForRecipes(ctx context.Context, recipeIDs []uuid.UUID) ([]dbmodels.RecipeRequirement, error)
}

type ingredientLoader interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]dbmodels.Ingredient, error)
}

// service implements the shopping list service.
type service struct {
	repo        *Repository
	dbClient    *db.Client
	recipes     recipeReader
	ingredients ingredientLoader
	logg        *logger.Logger
}

// NewService constructs a shopping list service instance.
func NewService(repo *Repository, dbClient *db.Client, recipes recipeReader, ingredients ingredientLoader, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("shopping repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if recipes == nil {
		return nil, fmt.Errorf("recipe reader required")
	}
	if ingredients == nil {
		return nil, fmt.Errorf("ingredient loader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, dbClient: dbClient, recipes: recipes, ingredients: ingredients, logg: logg}, nil
}

// CreateList inserts an empty named list.
func (s *service) CreateList(ctx context.Context, name string) (*ShoppingListDTO, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	list, err := s.repo.CreateList(ctx, &dbmodels.ShoppingList{Name: trimmed})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: insert shopping list")
	}
	return toShoppingListDTO(list, nil), nil
}

// Generate builds a new list from the selected recipes. Requirements across
// the selection are scaled by their multiplier and summed per (ingredient,
// unit) pair. Selections pointing at recipes that no longer exist are skipped
// rather than failing the whole generation; an empty selection still produces
// an empty list.
func (s *service) Generate(ctx context.Context, input GenerateInput) (*ShoppingListDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	multipliers, err := multipliersBySelection(input.Selections)
	if err != nil {
		return nil, err
	}

	requested := make([]uuid.UUID, 0, len(multipliers))
	for id := range multipliers {
		requested = append(requested, id)
	}
	found, err := s.recipes.FindByIDs(ctx, requested)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: load recipes")
	}
	foundIDs := make([]uuid.UUID, 0, len(found))
	foundSet := make(map[uuid.UUID]struct{}, len(found))
	for _, recipe := range found {
		foundIDs = append(foundIDs, recipe.ID)
		foundSet[recipe.ID] = struct{}{}
	}
	for _, id := range requested {
		if _, ok := foundSet[id]; !ok {
			s.logg.Warn(s.logg.WithField(ctx, "recipe_id", id.String()), "skipping unknown recipe during list generation")
		}
	}

	requirements, err := s.recipes.RequirementsForRecipes(ctx, foundIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: load recipe requirements")
	}
	lines := Aggregate(requirements, multipliers)

	list := &dbmodels.ShoppingList{Name: name}
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		created, err := txRepo.CreateList(ctx, list)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: insert shopping list")
		}
		items := make([]dbmodels.ShoppingListItem, 0, len(lines))
		for _, line := range lines {
			items = append(items, dbmodels.ShoppingListItem{
				ShoppingListID: created.ID,
				IngredientID:   line.IngredientID,
				Unit:           line.Unit,
				Quantity:       line.Quantity,
			})
		}
		if err := txRepo.ReplaceItems(ctx, created.ID, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: insert shopping list items")
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return s.Get(ctx, list.ID)
}

// Get loads the list with its items resolved against the ingredient catalog.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*ShoppingListDTO, error) {
	list, items, err := s.loadListWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return toShoppingListDTO(list, items), nil
}

// OrganizeByCategory groups the list items by ingredient category, matching
// the sections of a grocery store run. Items whose ingredient cannot be
// resolved fall under the uncategorized bucket.
func (s *service) OrganizeByCategory(ctx context.Context, id uuid.UUID) (CategorizedItems, error) {
	_, items, err := s.loadListWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	organized := make(CategorizedItems)
	for _, item := range items {
		category := item.Category
		if category == "" {
			category = enums.CategoryUncategorized
		}
		organized[category] = append(organized[category], item)
	}
	return organized, nil
}

// SetChecked toggles an ingredient of the list on or off. When the ingredient
// was aggregated under several units, all of its rows flip together. Returns
// false when the list has no such ingredient; repeating the same toggle is
// harmless.
func (s *service) SetChecked(ctx context.Context, listID, ingredientID uuid.UUID, checked bool) (bool, error) {
	if _, err := s.repo.FindListByID(ctx, listID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, pkgerrors.New(pkgerrors.CodeNotFound, "shopping list not found")
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: load shopping list")
	}
	affected, err := s.repo.SetItemChecked(ctx, listID, ingredientID, checked)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: update item checked state")
	}
	return affected > 0, nil
}

// List returns a page of shopping list summaries, most recent first.
func (s *service) List(ctx context.Context, params pagination.Params) (*ShoppingListListResult, error) {
	normalized := pagination.Normalize(params)
	lists, total, err := s.repo.ListLists(ctx, normalized)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: list shopping lists")
	}
	items := make([]ShoppingListSummaryDTO, 0, len(lists))
	for i := range lists {
		items = append(items, toShoppingListSummaryDTO(&lists[i]))
	}
	return &ShoppingListListResult{Items: items, Total: total, Skip: normalized.Skip, Limit: normalized.Limit}, nil
}

// Rename changes the list name.
func (s *service) Rename(ctx context.Context, id uuid.UUID, name string) (*ShoppingListDTO, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	list, err := s.repo.FindListByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shopping list not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: load shopping list")
	}
	list.Name = trimmed
	if _, err := s.repo.UpdateList(ctx, list); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: rename shopping list")
	}
	return s.Get(ctx, id)
}

// Delete removes the list and its items.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteList(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "shopping list not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: delete shopping list")
	}
	return nil
}

func (s *service) loadListWithItems(ctx context.Context, id uuid.UUID) (*dbmodels.ShoppingList, []ShoppingListItemDTO, error) {
	list, err := s.repo.FindListByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "shopping list not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: load shopping list")
	}

	rows, err := s.repo.ItemsForList(ctx, id)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: load shopping list items")
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.IngredientID)
	}
	ingredients, err := s.ingredients.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: load ingredients")
	}
	byID := make(map[uuid.UUID]dbmodels.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID] = ing
	}

	items := make([]ShoppingListItemDTO, 0, len(rows))
	for _, row := range rows {
		item := ShoppingListItemDTO{
			IngredientID: row.IngredientID,
			Quantity:     row.Quantity,
			Unit:         row.Unit.String(),
			Checked:      row.Checked,
		}
		if ing, ok := byID[row.IngredientID]; ok {
			item.IngredientName = ing.Name
			item.Category = ing.Category.String()
		}
		items = append(items, item)
	}
	return list, items, nil
}

// multipliersBySelection validates the selection and folds it into a multiplier
// map. Selecting the same recipe twice adds its multipliers together.
func multipliersBySelection(selections []RecipeSelection) (map[uuid.UUID]decimal.Decimal, error) {
	multipliers := make(map[uuid.UUID]decimal.Decimal, len(selections))
	for _, sel := range selections {
		if sel.RecipeID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "selection recipe_id is required")
		}
		multiplier := decimal.NewFromInt(1)
		if sel.Multiplier != nil {
			if !sel.Multiplier.IsPositive() {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "selection multiplier must be positive")
			}
			multiplier = *sel.Multiplier
		}
		multipliers[sel.RecipeID] = multipliers[sel.RecipeID].Add(multiplier)
	}
	return multipliers, nil
}
