package enums

import "fmt"

// Unit is the closed set of measurement units shared by recipe requirements
// and shopping list items. Aggregation keys on it, so parsing is strict and
// no conversion between members is ever attempted.
type Unit string

const (
	UnitPiece      Unit = "PIECE"
	UnitKilogram   Unit = "KG"
	UnitGram       Unit = "G"
	UnitLiter      Unit = "L"
	UnitMilliliter Unit = "ML"
	UnitTablespoon Unit = "TBSP"
	UnitTeaspoon   Unit = "TSP"
	UnitPinch      Unit = "PINCH"
)

var validUnits = []Unit{
	UnitPiece,
	UnitKilogram,
	UnitGram,
	UnitLiter,
	UnitMilliliter,
	UnitTablespoon,
	UnitTeaspoon,
	UnitPinch,
}

// String implements fmt.Stringer.
func (u Unit) String() string {
	return string(u)
}

// IsValid reports whether the unit is recognized.
func (u Unit) IsValid() bool {
	for _, candidate := range validUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUnit converts a raw string into a Unit.
func ParseUnit(value string) (Unit, error) {
	for _, candidate := range validUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid unit %q", value)
}
