package domain

import (
	"fmt"
	"time"
)

// ClothingCategory groups recommended items.
type ClothingCategory string

const (
	CategoryOuterwear   ClothingCategory = "outerwear"
	CategoryLayers      ClothingCategory = "layers"
	CategoryAccessories ClothingCategory = "accessories"
	CategoryFootwear    ClothingCategory = "footwear"
)

// TemperatureCategory is one of the five ordered temperature bands.
type TemperatureCategory int

const (
	TempWinter TemperatureCategory = iota
	TempCool
	TempModerate
	TempWarm
	TempHot
)

var temperatureLabels = [...]string{
	TempWinter:   "Winter",
	TempCool:     "Cool",
	TempModerate: "Moderate",
	TempWarm:     "Warm",
	TempHot:      "Hot",
}

// String returns the display label ("Winter", "Cool", ...).
func (c TemperatureCategory) String() string {
	if c < TempWinter || c > TempHot {
		return "Unknown"
	}
	return temperatureLabels[c]
}

// IsCold reports whether the band is Winter or Cool.
func (c TemperatureCategory) IsCold() bool {
	return c == TempWinter || c == TempCool
}

// MarshalText encodes the category as its label.
func (c TemperatureCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a label produced by MarshalText.
func (c *TemperatureCategory) UnmarshalText(text []byte) error {
	parsed, err := ParseTemperatureCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseTemperatureCategory maps a label back to its category.
func ParseTemperatureCategory(label string) (TemperatureCategory, error) {
	for i, l := range temperatureLabels {
		if l == label {
			return TemperatureCategory(i), nil
		}
	}
	return 0, fmt.Errorf("domain: unknown temperature category %q", label)
}

// ClothingItem is a single recommended item. Priority 1 is essential,
// 2 recommended, 3 optional.
type ClothingItem struct {
	Name     string           `json:"name"`
	Category ClothingCategory `json:"category"`
	Reason   string           `json:"reason"`
	Priority int              `json:"priority"`
}

// ClothingRecommendation is the complete advice for one weather observation.
type ClothingRecommendation struct {
	Weather               WeatherData         `json:"weather"`
	Items                 []ClothingItem      `json:"items"`
	TemperatureCategory   TemperatureCategory `json:"temperature_category"`
	Summary               string              `json:"summary"`
	SpecialConsiderations []string            `json:"special_considerations"`
}

// RecommendationRecord is a persisted recommendation.
type RecommendationRecord struct {
	ID             int64                  `json:"id"`
	ZipCode        string                 `json:"zip_code"`
	Recommendation ClothingRecommendation `json:"recommendation"`
	CreatedAt      time.Time              `json:"created_at"`
}
