package ingredient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lmarchal/grocerly-backend/pkg/db"
	dbmodels "github.com/lmarchal/grocerly-backend/pkg/db/models"
	"github.com/lmarchal/grocerly-backend/pkg/enums"
	pkgerrors "github.com/lmarchal/grocerly-backend/pkg/errors"
	"github.com/lmarchal/grocerly-backend/pkg/pagination"
)

const nameUniqueConstraint = "ingredients_name_key"

// Service exposes ingredient catalog operations.
type Service interface {
	Create(ctx context.Context, input CreateIngredientInput) (*IngredientDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*IngredientDTO, error)
	List(ctx context.Context, input ListIngredientsInput) (*IngredientListResult, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateIngredientInput) (*IngredientDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateIngredientInput holds the validated payload to create an ingredient.
type CreateIngredientInput struct {
	Name       string
	Category   enums.IngredientCategory
	SearchTerm *string
}

// UpdateIngredientInput holds optional mutation values for an ingredient.
// The name is the ingredient's identity and stays immutable.
type UpdateIngredientInput struct {
	Category   *enums.IngredientCategory
	SearchTerm *string
}

// ListIngredientsInput carries paging and the optional category filter.
type ListIngredientsInput struct {
	Pagination pagination.Params
	Category   *enums.IngredientCategory
}

// service implements the ingredient service.
type service struct {
	repo *Repository
}

// NewService constructs an ingredient service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ingredient repository required")
	}
	return &service{repo: repo}, nil
}

// Create inserts a new catalog entry. Names collide case-sensitively; a
// repeated name yields a duplicate identity error rather than an upsert.
func (s *service) Create(ctx context.Context, input CreateIngredientInput) (*IngredientDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown ingredient category")
	}

	ingredient := &dbmodels.Ingredient{
		Name:       name,
		Category:   input.Category,
		SearchTerm: trimOptional(input.SearchTerm),
	}

	created, err := s.repo.Create(ctx, ingredient)
	if err != nil {
		if db.IsUniqueViolation(err, nameUniqueConstraint) {
			return nil, pkgerrors.New(pkgerrors.CodeDuplicate, fmt.Sprintf("ingredient %q already exists", name))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: insert ingredient")
	}
	return toIngredientDTO(created), nil
}

// Get loads one ingredient by ID.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*IngredientDTO, error) {
	ingredient, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ingredient not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: load ingredient")
	}
	return toIngredientDTO(ingredient), nil
}

// List returns a name-ordered page of the catalog.
func (s *service) List(ctx context.Context, input ListIngredientsInput) (*IngredientListResult, error) {
	if input.Category != nil && !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown ingredient category")
	}
	params := pagination.Normalize(input.Pagination)

	ingredients, total, err := s.repo.List(ctx, params, input.Category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: list ingredients")
	}

	items := make([]IngredientDTO, 0, len(ingredients))
	for i := range ingredients {
		items = append(items, *toIngredientDTO(&ingredients[i]))
	}
	return &IngredientListResult{
		Items: items,
		Total: total,
		Skip:  params.Skip,
		Limit: params.Limit,
	}, nil
}

// Update applies the editable fields. A nil field leaves the current value.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateIngredientInput) (*IngredientDTO, error) {
	if input.Category != nil && !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown ingredient category")
	}

	ingredient, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ingredient not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: load ingredient")
	}

	applyIngredientUpdate(ingredient, input)

	updated, err := s.repo.Update(ctx, ingredient)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: update ingredient")
	}
	return toIngredientDTO(updated), nil
}

// Delete removes the ingredient and, through cascades, every recipe
// requirement and shopping list item that referenced it.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "ingredient not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "db: delete ingredient")
	}
	return nil
}

func applyIngredientUpdate(ingredient *dbmodels.Ingredient, input UpdateIngredientInput) {
	if input.Category != nil {
		ingredient.Category = *input.Category
	}
	if input.SearchTerm != nil {
		ingredient.SearchTerm = trimOptional(input.SearchTerm)
	}
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
