package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lmarchal/grocerly-backend/pkg/enums"
)

// RecipeRequirement links a recipe to one ingredient with an exact decimal
// quantity and unit. An ingredient appears at most once per recipe; both
// foreign keys cascade on delete.
type RecipeRequirement struct {
	RecipeID     uuid.UUID       `gorm:"column:recipe_id;type:uuid;primaryKey"`
	IngredientID uuid.UUID       `gorm:"column:ingredient_id;type:uuid;primaryKey"`
	Quantity     decimal.Decimal `gorm:"column:quantity;type:numeric(10,2);not null"`
	Unit         enums.Unit      `gorm:"column:unit;type:unit;not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// TableName keeps the historical table name.
func (RecipeRequirement) TableName() string {
	return "recipe_requirements"
}
