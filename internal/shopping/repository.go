package shopping

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lmarchal/grocerly-backend/pkg/db/models"
	"github.com/lmarchal/grocerly-backend/pkg/pagination"
)

// Repository wires together shopping list persistence helpers.
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

// CreateList inserts a new shopping list row, assigning an ID when none is set.
func (r *Repository) CreateList(ctx context.Context, list *models.ShoppingList) (*models.ShoppingList, error) {
	if list.ID == uuid.Nil {
		list.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// FindListByID loads one shopping list without its items.
func (r *Repository) FindListByID(ctx context.Context, id uuid.UUID) (*models.ShoppingList, error) {
	var list models.ShoppingList
	if err := r.db.WithContext(ctx).First(&list, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// UpdateList saves the full shopping list row.
func (r *Repository) UpdateList(ctx context.Context, list *models.ShoppingList) (*models.ShoppingList, error) {
	if err := r.db.WithContext(ctx).Save(list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteList removes a shopping list together with its item rows. Dependent
// rows are deleted explicitly so the behavior does not lean on driver-level FK
// cascades.
func (r *Repository) DeleteList(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shopping_list_id = ?", id).Delete(&models.ShoppingListItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.ShoppingList{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListLists returns a page of shopping lists, most recent first.
func (r *Repository) ListLists(ctx context.Context, params pagination.Params) ([]models.ShoppingList, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ShoppingList{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var lists []models.ShoppingList
	if err := query.
		Order("created_at DESC").
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&lists).Error; err != nil {
		return nil, 0, err
	}
	return lists, total, nil
}

// ReplaceItems swaps the full item set of the list.
func (r *Repository) ReplaceItems(ctx context.Context, listID uuid.UUID, items []models.ShoppingListItem) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("shopping_list_id = ?", listID).Delete(&models.ShoppingListItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

// ItemsForList loads all item rows of the list in stable order.
func (r *Repository) ItemsForList(ctx context.Context, listID uuid.UUID) ([]models.ShoppingListItem, error) {
	var items []models.ShoppingListItem
	if err := r.db.WithContext(ctx).
		Where("shopping_list_id = ?", listID).
		Order("ingredient_id ASC, unit ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// SetItemChecked flips the checked flag on every row of the ingredient in the
// list, whatever unit it was aggregated under. Returns the number of rows hit.
func (r *Repository) SetItemChecked(ctx context.Context, listID, ingredientID uuid.UUID, checked bool) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ShoppingListItem{}).
		Where("shopping_list_id = ? AND ingredient_id = ?", listID, ingredientID).
		Update("checked", checked)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
