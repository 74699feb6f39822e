package ingredients

import (
	ingredientsvc "github.com/lmarchal/grocerly-backend/internal/ingredients"
	"github.com/lmarchal/grocerly-backend/pkg/enums"
	pkgerrors "github.com/lmarchal/grocerly-backend/pkg/errors"
)

// CreateIngredientRequest is the POST /ingredients payload.
type CreateIngredientRequest struct {
	Name       string  `json:"name" validate:"required,min=1,max=100"`
	Category   string  `json:"category" validate:"required"`
	SearchTerm *string `json:"search_term,omitempty" validate:"omitempty,max=200"`
}

// UpdateIngredientRequest is the PUT /ingredients/{id} payload.
type UpdateIngredientRequest struct {
	Category   *string `json:"category,omitempty"`
	SearchTerm *string `json:"search_term,omitempty" validate:"omitempty,max=200"`
}

func toCreateInput(payload CreateIngredientRequest) (ingredientsvc.CreateIngredientInput, error) {
	category, err := enums.ParseIngredientCategory(payload.Category)
	if err != nil {
		return ingredientsvc.CreateIngredientInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}
	return ingredientsvc.CreateIngredientInput{
		Name:       payload.Name,
		Category:   category,
		SearchTerm: payload.SearchTerm,
	}, nil
}

func toUpdateInput(payload UpdateIngredientRequest) (ingredientsvc.UpdateIngredientInput, error) {
	input := ingredientsvc.UpdateIngredientInput{SearchTerm: payload.SearchTerm}
	if payload.Category != nil {
		category, err := enums.ParseIngredientCategory(*payload.Category)
		if err != nil {
			return ingredientsvc.UpdateIngredientInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		input.Category = &category
	}
	return input, nil
}
