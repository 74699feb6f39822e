package recipe

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lmarchal/grocerly-backend/pkg/db/models"
)

// RecipeDTO represents the full recipe payload including its requirements.
type RecipeDTO struct {
	ID              uuid.UUID        `json:"id"`
	Name            string           `json:"name"`
	Description     *string          `json:"description,omitempty"`
	Season          string           `json:"season"`
	Difficulty      string           `json:"difficulty"`
	Servings        int              `json:"servings"`
	PrepTimeMinutes int              `json:"prep_time_minutes"`
	CookTimeMinutes int              `json:"cook_time_minutes"`
	Instructions    string           `json:"instructions"`
	Requirements    []RequirementDTO `json:"requirements"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// RequirementDTO is one ingredient line of a recipe, with the catalog data
// resolved for display.
type RequirementDTO struct {
	IngredientID   uuid.UUID       `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Category       string          `json:"category"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
}

// RecipeSummaryDTO is the list-view shape without requirement lines.
type RecipeSummaryDTO struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Season          string    `json:"season"`
	Difficulty      string    `json:"difficulty"`
	Servings        int       `json:"servings"`
	PrepTimeMinutes int       `json:"prep_time_minutes"`
	CookTimeMinutes int       `json:"cook_time_minutes"`
	CreatedAt       time.Time `json:"created_at"`
}

// RecipeListResult pairs a page of recipe summaries with the total count.
type RecipeListResult struct {
	Items []RecipeSummaryDTO `json:"items"`
	Total int64              `json:"total"`
	Skip  int                `json:"skip"`
	Limit int                `json:"limit"`
}

func toRecipeDTO(m *models.Recipe, requirements []RequirementDTO) *RecipeDTO {
	if requirements == nil {
		requirements = []RequirementDTO{}
	}
	return &RecipeDTO{
		ID:              m.ID,
		Name:            m.Name,
		Description:     m.Description,
		Season:          m.Season.String(),
		Difficulty:      m.Difficulty.String(),
		Servings:        m.Servings,
		PrepTimeMinutes: m.PrepTimeMinutes,
		CookTimeMinutes: m.CookTimeMinutes,
		Instructions:    m.Instructions,
		Requirements:    requirements,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toRecipeSummaryDTO(m *models.Recipe) RecipeSummaryDTO {
	return RecipeSummaryDTO{
		ID:              m.ID,
		Name:            m.Name,
		Season:          m.Season.String(),
		Difficulty:      m.Difficulty.String(),
		Servings:        m.Servings,
		PrepTimeMinutes: m.PrepTimeMinutes,
		CookTimeMinutes: m.CookTimeMinutes,
		CreatedAt:       m.CreatedAt,
	}
}
