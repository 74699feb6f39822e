package enums

import "fmt"

// MealType labels a slot in a suggested meal plan.
type MealType string

const (
	MealLunch  MealType = "LUNCH"
	MealDinner MealType = "DINNER"
)

var validMealTypes = []MealType{
	MealLunch,
	MealDinner,
}

// String implements fmt.Stringer.
func (m MealType) String() string {
	return string(m)
}

// IsValid reports whether the meal type is recognized.
func (m MealType) IsValid() bool {
	for _, candidate := range validMealTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMealType converts a raw string into a MealType.
func ParseMealType(value string) (MealType, error) {
	for _, candidate := range validMealTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid meal type %q", value)
}
