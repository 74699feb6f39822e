package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lmarchal/grocerly-backend/pkg/enums"
)

// Recipe carries the cooking metadata; its ingredient needs live in
// RecipeRequirement rows.
type Recipe struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	Name            string           `gorm:"column:name;size:200;not null"`
	Description     *string          `gorm:"column:description;type:text"`
	Season          enums.Season     `gorm:"column:season;type:season;not null;default:'ALL_YEAR';index:recipes_season_idx"`
	Difficulty      enums.Difficulty `gorm:"column:difficulty;type:difficulty;not null;default:'MEDIUM'"`
	Servings        int              `gorm:"column:servings;not null;default:2"`
	PrepTimeMinutes int              `gorm:"column:prep_time_minutes;not null;default:0"`
	CookTimeMinutes int              `gorm:"column:cook_time_minutes;not null;default:0"`
	Instructions    string           `gorm:"column:instructions;type:text"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
