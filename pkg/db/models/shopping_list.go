package models

import (
	"time"

	"github.com/google/uuid"
)

// ShoppingList is the named container the aggregator fills. It is created
// before any items so it always has an identity.
type ShoppingList struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;size:200;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
