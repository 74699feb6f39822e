package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EstimatedItemDTO is the priced view of one shopping list line.
type EstimatedItemDTO struct {
	IngredientID uuid.UUID       `json:"ingredient_id"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	ProductID    string          `json:"product_id"`
}

// EstimateDTO is the total cost estimate of a shopping list.
type EstimateDTO struct {
	ShoppingListID uuid.UUID          `json:"shopping_list_id"`
	TotalCost      decimal.Decimal    `json:"total_cost"`
	Currency       string             `json:"currency"`
	Items          []EstimatedItemDTO `json:"items"`
	ItemCount      int                `json:"item_count"`
}
