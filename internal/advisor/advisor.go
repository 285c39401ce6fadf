package advisor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/clothingadvisor/backend/internal/domain"
)

// Bounds on the number of items in a recommendation (SC-002).
const (
	MinItems = 3
	MaxItems = 5
)

// maxPadAttempts bounds the filler loop; a shorter list is accepted once it is exhausted.
const maxPadAttempts = 3

// Advisor generates clothing recommendations. The zero value is ready to use.
type Advisor struct{}

// New returns an Advisor.
func New() *Advisor {
	return &Advisor{}
}

// Generate produces a recommendation for w.
func (a *Advisor) Generate(w domain.WeatherData) domain.ClothingRecommendation {
	return Generate(w)
}

// Generate produces a recommendation for w: classification, rule tables,
// de-duplication, priority ordering, count enforcement and summary.
func Generate(w domain.WeatherData) domain.ClothingRecommendation {
	cat := Classify(w.Temperature)

	candidates := make([]domain.ClothingItem, 0, 8)
	candidates = append(candidates, temperatureItems(cat, w.Temperature)...)
	if w.HasPrecipitation() {
		candidates = append(candidates, precipitationItems(w.PrecipitationType, cat)...)
	}
	candidates = append(candidates, windItems(w.WindSpeed, cat)...)

	items := enforceCount(dedupeAndPrioritize(candidates), cat)

	return domain.ClothingRecommendation{
		Weather:               copyWeather(w),
		Items:                 items,
		TemperatureCategory:   cat,
		Summary:               summarize(w, cat),
		SpecialConsiderations: considerations(w, cat),
	}
}

// dedupeAndPrioritize drops items whose name matches an earlier one
// case-insensitively, then stable-sorts by priority.
func dedupeAndPrioritize(items []domain.ClothingItem) []domain.ClothingItem {
	seen := make(map[string]struct{}, len(items))
	unique := make([]domain.ClothingItem, 0, len(items))

	for _, it := range items {
		key := strings.ToLower(it.Name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, it)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Priority < unique[j].Priority
	})
	return unique
}

// enforceCount truncates to MaxItems or pads towards MinItems with fillers.
func enforceCount(items []domain.ClothingItem, cat domain.TemperatureCategory) []domain.ClothingItem {
	if len(items) > MaxItems {
		return items[:MaxItems]
	}

	for attempt := 0; len(items) < MinItems && attempt < maxPadAttempts; attempt++ {
		filler, ok := nextFiller(items, cat)
		if !ok {
			break
		}
		items = append(items, filler)
	}
	return items
}

// nextFiller picks the first applicable filler whose name is not already present.
func nextFiller(items []domain.ClothingItem, cat domain.TemperatureCategory) (domain.ClothingItem, bool) {
	var choices []domain.ClothingItem

	if !hasCategory(items, domain.CategoryFootwear) {
		if cat.IsCold() {
			choices = append(choices, item("Comfortable closed-toe shoes", domain.CategoryFootwear, "Appropriate footwear for cooler weather", 3))
		} else {
			choices = append(choices, item("Comfortable shoes", domain.CategoryFootwear, "Appropriate footwear for the weather", 3))
		}
	}
	if cat.IsCold() {
		choices = append(choices, item("Long pants", domain.CategoryLayers, "Keeps legs warm in cooler weather", 3))
	} else {
		choices = append(choices, item("Light hat or cap", domain.CategoryAccessories, "Optional sun protection", 3))
	}

	for _, c := range choices {
		if !hasName(items, c.Name) {
			return c, true
		}
	}
	return domain.ClothingItem{}, false
}

func hasCategory(items []domain.ClothingItem, cat domain.ClothingCategory) bool {
	for _, it := range items {
		if it.Category == cat {
			return true
		}
	}
	return false
}

func hasName(items []domain.ClothingItem, name string) bool {
	for _, it := range items {
		if strings.EqualFold(it.Name, name) {
			return true
		}
	}
	return false
}

// summarize renders the one-sentence description of weather and advice.
func summarize(w domain.WeatherData, cat domain.TemperatureCategory) string {
	var b strings.Builder
	fmt.Fprintf(&b, "For %s at %.0f°F (%s weather)", w.Location, w.Temperature, strings.ToLower(cat.String()))

	if w.HasPrecipitation() {
		fmt.Fprintf(&b, " with %s", w.PrecipitationType)
	}
	if w.WindSpeed > BreezyAboveMPH {
		fmt.Fprintf(&b, " and %.0f mph winds", w.WindSpeed)
	}

	b.WriteString(": dress in layers appropriate for the conditions.")
	return b.String()
}

func copyWeather(w domain.WeatherData) domain.WeatherData {
	if w.PrecipitationProbability != nil {
		p := *w.PrecipitationProbability
		w.PrecipitationProbability = &p
	}
	return w
}
