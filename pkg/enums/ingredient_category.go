package enums

import "fmt"

// IngredientCategory drives the shopping strategy: dry goods keep, fresh
// supermarket produce, and fresh artisan produce are bought differently.
type IngredientCategory string

const (
	CategoryDry          IngredientCategory = "DRY"
	CategoryFreshMarket  IngredientCategory = "FRESH_MARKET"
	CategoryFreshArtisan IngredientCategory = "FRESH_ARTISAN"
)

// CategoryUncategorized is the fallback bucket used by the by-category view
// when an item's ingredient can no longer be resolved. It is not a storable
// ingredient category.
const CategoryUncategorized = "UNCATEGORIZED"

var validIngredientCategories = []IngredientCategory{
	CategoryDry,
	CategoryFreshMarket,
	CategoryFreshArtisan,
}

// String implements fmt.Stringer.
func (c IngredientCategory) String() string {
	return string(c)
}

// IsValid reports whether the category is recognized.
func (c IngredientCategory) IsValid() bool {
	for _, candidate := range validIngredientCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseIngredientCategory converts a raw string into an IngredientCategory.
func ParseIngredientCategory(value string) (IngredientCategory, error) {
	for _, candidate := range validIngredientCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid ingredient category %q", value)
}
