package shopping

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lmarchal/grocerly-backend/pkg/db/models"
)

// ShoppingListDTO represents a shopping list with its consolidated items.
type ShoppingListDTO struct {
	ID        uuid.UUID             `json:"id"`
	Name      string                `json:"name"`
	Items     []ShoppingListItemDTO `json:"items"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// ShoppingListItemDTO is one consolidated line with the catalog data resolved.
type ShoppingListItemDTO struct {
	IngredientID   uuid.UUID       `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Category       string          `json:"category"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	Checked        bool            `json:"checked"`
}

// CategorizedItems groups list items under their ingredient category value.
type CategorizedItems map[string][]ShoppingListItemDTO

// ShoppingListSummaryDTO is the list-view shape without items.
type ShoppingListSummaryDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ShoppingListListResult pairs a page of summaries with the total count.
type ShoppingListListResult struct {
	Items []ShoppingListSummaryDTO `json:"items"`
	Total int64                    `json:"total"`
	Skip  int                      `json:"skip"`
	Limit int                      `json:"limit"`
}

func toShoppingListDTO(m *models.ShoppingList, items []ShoppingListItemDTO) *ShoppingListDTO {
	if items == nil {
		items = []ShoppingListItemDTO{}
	}
	return &ShoppingListDTO{
		ID:        m.ID,
		Name:      m.Name,
		Items:     items,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toShoppingListSummaryDTO(m *models.ShoppingList) ShoppingListSummaryDTO {
	return ShoppingListSummaryDTO{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
