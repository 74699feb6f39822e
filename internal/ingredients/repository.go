package ingredient

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lmarchal/grocerly-backend/pkg/db/models"
	"github.com/lmarchal/grocerly-backend/pkg/enums"
	"github.com/lmarchal/grocerly-backend/pkg/pagination"
)

// Repository wires together ingredient persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new ingredient row, assigning an ID when none is set.
func (r *Repository) Create(ctx context.Context, ingredient *models.Ingredient) (*models.Ingredient, error) {
	if ingredient.ID == uuid.Nil {
		ingredient.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(ingredient).Error; err != nil {
		return nil, err
	}
	return ingredient, nil
}

// FindByID loads one ingredient.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// FindByIDs loads the ingredients matching the given IDs. Missing IDs are
// simply absent from the result; the caller decides whether that matters.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ingredients []models.Ingredient
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// Update saves the full ingredient row.
func (r *Repository) Update(ctx context.Context, ingredient *models.Ingredient) (*models.Ingredient, error) {
	if err := r.db.WithContext(ctx).Save(ingredient).Error; err != nil {
		return nil, err
	}
	return ingredient, nil
}

// Delete removes an ingredient by ID together with every requirement and
// shopping list item referencing it. Dependent rows are deleted explicitly so
// the behavior does not lean on driver-level FK cascades. Recipes and lists
// that referenced the ingredient survive with the remaining rows.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ingredient_id = ?", id).Delete(&models.RecipeRequirement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("ingredient_id = ?", id).Delete(&models.ShoppingListItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Ingredient{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// List returns a page of ingredients ordered by name, optionally filtered by
// category, plus the total count for the same filter.
func (r *Repository) List(ctx context.Context, params pagination.Params, category *enums.IngredientCategory) ([]models.Ingredient, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Ingredient{})
	if category != nil {
		query = query.Where("category = ?", *category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ingredients []models.Ingredient
	if err := query.
		Order("name ASC").
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&ingredients).Error; err != nil {
		return nil, 0, err
	}
	return ingredients, total, nil
}
