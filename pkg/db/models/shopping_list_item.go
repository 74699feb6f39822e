package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lmarchal/grocerly-backend/pkg/enums"
)

// ShoppingListItem is one consolidated aggregation line. The primary key
// includes the unit so the same ingredient can appear once per unit; the
// checked toggle deliberately matches on (list, ingredient) only.
type ShoppingListItem struct {
	ShoppingListID uuid.UUID       `gorm:"column:shopping_list_id;type:uuid;primaryKey"`
	IngredientID   uuid.UUID       `gorm:"column:ingredient_id;type:uuid;primaryKey"`
	Unit           enums.Unit      `gorm:"column:unit;type:unit;primaryKey"`
	Quantity       decimal.Decimal `gorm:"column:quantity;type:numeric(10,2);not null"`
	Checked        bool            `gorm:"column:checked;not null;default:false"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
}
