package shopping

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lmarchal/grocerly-backend/pkg/db/models"
	"github.com/lmarchal/grocerly-backend/pkg/enums"
)

// ItemLine is one consolidated output line of the aggregator.
type ItemLine struct {
	IngredientID uuid.UUID
	Unit         enums.Unit
	Quantity     decimal.Decimal
}

type lineKey struct {
	ingredientID uuid.UUID
	unit         enums.Unit
}

// Aggregate folds requirement rows into consolidated lines. Quantities are
// scaled by the per-recipe multiplier (1 when absent) and summed per
// (ingredient, unit) pair. Units are never converted into each other, so the
// same ingredient in grams and kilograms yields two lines. The result is
// sorted by ingredient then unit to keep output deterministic.
func Aggregate(requirements []models.RecipeRequirement, multipliers map[uuid.UUID]decimal.Decimal) []ItemLine {
	totals := make(map[lineKey]decimal.Decimal, len(requirements))
	for _, req := range requirements {
		multiplier := decimal.NewFromInt(1)
		if m, ok := multipliers[req.RecipeID]; ok {
			multiplier = m
		}
		key := lineKey{ingredientID: req.IngredientID, unit: req.Unit}
		totals[key] = totals[key].Add(req.Quantity.Mul(multiplier))
	}

	lines := make([]ItemLine, 0, len(totals))
	for key, quantity := range totals {
		lines = append(lines, ItemLine{
			IngredientID: key.ingredientID,
			Unit:         key.unit,
			Quantity:     quantity,
		})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].IngredientID != lines[j].IngredientID {
			return lines[i].IngredientID.String() < lines[j].IngredientID.String()
		}
		return lines[i].Unit < lines[j].Unit
	})
	return lines
}
