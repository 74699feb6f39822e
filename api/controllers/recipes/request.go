package recipes

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	recipesvc "github.com/lmarchal/grocerly-backend/internal/recipes"
	"github.com/lmarchal/grocerly-backend/pkg/enums"
	pkgerrors "github.com/lmarchal/grocerly-backend/pkg/errors"
)

// RequirementRequest is one ingredient line of a recipe payload.
type RequirementRequest struct {
	IngredientID uuid.UUID       `json:"ingredient_id" validate:"required"`
	Quantity     decimal.Decimal `json:"quantity" validate:"required"`
	Unit         string          `json:"unit" validate:"required"`
}

// CreateRecipeRequest is the POST /recipes payload.
type CreateRecipeRequest struct {
	Name            string               `json:"name" validate:"required,min=1,max=200"`
	Description     *string              `json:"description,omitempty"`
	Season          string               `json:"season,omitempty"`
	Difficulty      string               `json:"difficulty,omitempty"`
	Servings        int                  `json:"servings,omitempty" validate:"omitempty,min=1"`
	PrepTimeMinutes int                  `json:"prep_time_minutes,omitempty" validate:"omitempty,min=0"`
	CookTimeMinutes int                  `json:"cook_time_minutes,omitempty" validate:"omitempty,min=0"`
	Instructions    string               `json:"instructions,omitempty"`
	Requirements    []RequirementRequest `json:"requirements,omitempty" validate:"omitempty,dive"`
}

// UpdateRecipeRequest is the PUT /recipes/{id} payload.
type UpdateRecipeRequest struct {
	Name            *string               `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description     *string               `json:"description,omitempty"`
	Season          *string               `json:"season,omitempty"`
	Difficulty      *string               `json:"difficulty,omitempty"`
	Servings        *int                  `json:"servings,omitempty" validate:"omitempty,min=1"`
	PrepTimeMinutes *int                  `json:"prep_time_minutes,omitempty" validate:"omitempty,min=0"`
	CookTimeMinutes *int                  `json:"cook_time_minutes,omitempty" validate:"omitempty,min=0"`
	Instructions    *string               `json:"instructions,omitempty"`
	Requirements    *[]RequirementRequest `json:"requirements,omitempty" validate:"omitempty,dive"`
}

func toRequirementInputs(payload []RequirementRequest) ([]recipesvc.RequirementInput, error) {
	inputs := make([]recipesvc.RequirementInput, 0, len(payload))
	for _, req := range payload {
		unit, err := enums.ParseUnit(req.Unit)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid unit")
		}
		inputs = append(inputs, recipesvc.RequirementInput{
			IngredientID: req.IngredientID,
			Quantity:     req.Quantity,
			Unit:         unit,
		})
	}
	return inputs, nil
}

func toCreateInput(payload CreateRecipeRequest) (recipesvc.CreateRecipeInput, error) {
	input := recipesvc.CreateRecipeInput{
		Name:            payload.Name,
		Description:     payload.Description,
		Servings:        payload.Servings,
		PrepTimeMinutes: payload.PrepTimeMinutes,
		CookTimeMinutes: payload.CookTimeMinutes,
		Instructions:    payload.Instructions,
	}
	if payload.Season != "" {
		season, err := enums.ParseSeason(payload.Season)
		if err != nil {
			return recipesvc.CreateRecipeInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid season")
		}
		input.Season = season
	}
	if payload.Difficulty != "" {
		difficulty, err := enums.ParseDifficulty(payload.Difficulty)
		if err != nil {
			return recipesvc.CreateRecipeInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid difficulty")
		}
		input.Difficulty = difficulty
	}
	requirements, err := toRequirementInputs(payload.Requirements)
	if err != nil {
		return recipesvc.CreateRecipeInput{}, err
	}
	input.Requirements = requirements
	return input, nil
}

func toUpdateInput(payload UpdateRecipeRequest) (recipesvc.UpdateRecipeInput, error) {
	input := recipesvc.UpdateRecipeInput{
		Name:            payload.Name,
		Description:     payload.Description,
		Servings:        payload.Servings,
		PrepTimeMinutes: payload.PrepTimeMinutes,
		CookTimeMinutes: payload.CookTimeMinutes,
		Instructions:    payload.Instructions,
	}
	if payload.Season != nil {
		season, err := enums.ParseSeason(*payload.Season)
		if err != nil {
			return recipesvc.UpdateRecipeInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid season")
		}
		input.Season = &season
	}
	if payload.Difficulty != nil {
		difficulty, err := enums.ParseDifficulty(*payload.Difficulty)
		if err != nil {
			return recipesvc.UpdateRecipeInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid difficulty")
		}
		input.Difficulty = &difficulty
	}
	if payload.Requirements != nil {
		requirements, err := toRequirementInputs(*payload.Requirements)
		if err != nil {
			return recipesvc.UpdateRecipeInput{}, err
		}
		input.Requirements = &requirements
	}
	return input, nil
}
