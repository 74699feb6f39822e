package recipe

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lmarchal/grocerly-backend/pkg/db/models"
	"github.com/lmarchal/grocerly-backend/pkg/enums"
	"github.com/lmarchal/grocerly-backend/pkg/pagination"
)

// Repository wires together recipe and requirement persistence helpers.
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

// Create inserts a new recipe row, assigning an ID when none is set.
func (r *Repository) Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// FindByID loads the recipe without its requirements.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// FindByIDs loads the recipes matching the given IDs. IDs without a matching
// row are absent from the result.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var recipes []models.Recipe
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Update saves the full recipe row.
func (r *Repository) Update(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	if err := r.db.WithContext(ctx).Save(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// Delete removes a recipe by ID together with its requirement rows. Dependent
// rows are deleted explicitly so the behavior does not lean on driver-level FK
// cascades. Shopping list items generated from the recipe stay untouched.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeRequirement{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Recipe{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// List returns a page of recipes ordered by name. The search term matches name
// or description case-insensitively; season narrows to recipes for that season.
func (r *Repository) List(ctx context.Context, params pagination.Params, search string, season *enums.Season) ([]models.Recipe, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Recipe{})
	if term := strings.TrimSpace(search); term != "" {
		pattern := "%" + term + "%"
		query = query.Where("(lower(name) LIKE lower(?) OR lower(description) LIKE lower(?))", pattern, pattern)
	}
	if season != nil {
		query = query.Where("season = ?", *season)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []models.Recipe
	if err := query.
		Order("name ASC").
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// ReplaceRequirements swaps the full requirement set of the recipe.
func (r *Repository) ReplaceRequirements(ctx context.Context, recipeID uuid.UUID, requirements []models.RecipeRequirement) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeRequirement{}).Error; err != nil {
		return err
	}
	if len(requirements) == 0 {
		return nil
	}
	return tx.Create(&requirements).Error
}

// RequirementsForRecipe loads all requirement rows of one recipe.
func (r *Repository) RequirementsForRecipe(ctx context.Context, recipeID uuid.UUID) ([]models.RecipeRequirement, error) {
	var requirements []models.RecipeRequirement
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Find(&requirements).Error; err != nil {
		return nil, err
	}
	return requirements, nil
}

// RequirementsForRecipes loads requirement rows across several recipes in one
// query, for aggregation over a selection.
func (r *Repository) RequirementsForRecipes(ctx context.Context, recipeIDs []uuid.UUID) ([]models.RecipeRequirement, error) {
	if len(recipeIDs) == 0 {
		return nil, nil
	}
	var requirements []models.RecipeRequirement
	if err := r.db.WithContext(ctx).
		Where("recipe_id IN ?", recipeIDs).
		Find(&requirements).Error; err != nil {
		return nil, err
	}
	return requirements, nil
}
