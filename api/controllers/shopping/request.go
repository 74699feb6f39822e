package shopping

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	shoppingsvc "github.com/lmarchal/grocerly-backend/internal/shopping"
)

// CreateListRequest is the POST /shopping-lists payload.
type CreateListRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// RecipeSelectionRequest picks one recipe for list generation.
type RecipeSelectionRequest struct {
	RecipeID   uuid.UUID        `json:"recipe_id" validate:"required"`
	Multiplier *decimal.Decimal `json:"multiplier,omitempty"`
}

// GenerateRequest is the POST /shopping-lists/generate payload. An empty or
// omitted recipe selection is valid and yields an empty list.
type GenerateRequest struct {
	Name    string                   `json:"name" validate:"required,min=1,max=200"`
	Recipes []RecipeSelectionRequest `json:"recipes" validate:"omitempty,dive"`
}

// RenameListRequest is the PUT /shopping-lists/{id} payload.
type RenameListRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// CheckItemRequest is the PATCH payload toggling one item.
type CheckItemRequest struct {
	Checked bool `json:"checked"`
}

func toGenerateInput(payload GenerateRequest) shoppingsvc.GenerateInput {
	selections := make([]shoppingsvc.RecipeSelection, 0, len(payload.Recipes))
	for _, sel := range payload.Recipes {
		selections = append(selections, shoppingsvc.RecipeSelection{
			RecipeID:   sel.RecipeID,
			Multiplier: sel.Multiplier,
		})
	}
	return shoppingsvc.GenerateInput{Name: payload.Name, Selections: selections}
}
