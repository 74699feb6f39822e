package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lmarchal/grocerly-backend/pkg/enums"
)

// Ingredient is a canonical catalog entry. The name is its identity and is
// unique case-sensitively; category and search term stay editable.
type Ingredient struct {
	ID         uuid.UUID                `gorm:"column:id;type:uuid;primaryKey"`
	Name       string                   `gorm:"column:name;size:100;not null;uniqueIndex:ingredients_name_key"`
	Category   enums.IngredientCategory `gorm:"column:category;type:ingredient_category;not null;index:ingredients_category_idx"`
	SearchTerm *string                  `gorm:"column:search_term;size:200"`
	CreatedAt  time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
