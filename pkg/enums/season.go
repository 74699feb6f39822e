package enums

import "fmt"

// Season tags a recipe with its recommended time of year.
type Season string

const (
	SeasonSpring  Season = "SPRING"
	SeasonSummer  Season = "SUMMER"
	SeasonAutumn  Season = "AUTUMN"
	SeasonWinter  Season = "WINTER"
	SeasonAllYear Season = "ALL_YEAR"
)

var validSeasons = []Season{
	SeasonSpring,
	SeasonSummer,
	SeasonAutumn,
	SeasonWinter,
	SeasonAllYear,
}

// String implements fmt.Stringer.
func (s Season) String() string {
	return string(s)
}

// IsValid reports whether the season is recognized.
func (s Season) IsValid() bool {
	for _, candidate := range validSeasons {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSeason converts a raw string into a Season.
func ParseSeason(value string) (Season, error) {
	for _, candidate := range validSeasons {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid season %q", value)
}
