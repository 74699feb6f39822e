package ingredient

import (
	"time"

	"github.com/google/uuid"

	"github.com/lmarchal/grocerly-backend/pkg/db/models"
)

// IngredientDTO represents the ingredient payload returned to clients.
type IngredientDTO struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	SearchTerm *string   `json:"search_term,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IngredientListResult pairs a page of ingredients with the total count.
type IngredientListResult struct {
	Items []IngredientDTO `json:"items"`
	Total int64           `json:"total"`
	Skip  int             `json:"skip"`
	Limit int             `json:"limit"`
}

func toIngredientDTO(m *models.Ingredient) *IngredientDTO {
	return &IngredientDTO{
		ID:         m.ID,
		Name:       m.Name,
		Category:   m.Category.String(),
		SearchTerm: m.SearchTerm,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
