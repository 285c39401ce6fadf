package advisor

import (
	"fmt"

	"github.com/clothingadvisor/backend/internal/domain"
)

// Wind and humidity thresholds.
const (
	BreezyAboveMPH   = 15.0
	WindyAboveMPH    = 25.0
	HumidHumidityPct = 70
)

const (
	noteHighWinds     = "High winds expected"
	noteBreezy        = "Breezy conditions"
	noteHighHumidity  = "High humidity - choose breathable fabrics"
	notePrecipitation = "Precipitation expected: %s"
)

func item(name string, cat domain.ClothingCategory, reason string, priority int) domain.ClothingItem {
	return domain.ClothingItem{Name: name, Category: cat, Reason: reason, Priority: priority}
}

// temperatureItems returns the fixed bundle for a band.
func temperatureItems(cat domain.TemperatureCategory, tempF float64) []domain.ClothingItem {
	t := fmt.Sprintf("%.0f°F", tempF)

	switch cat {
	case domain.TempWinter:
		return []domain.ClothingItem{
			item("Heavy winter coat", domain.CategoryOuterwear, "Essential for "+t+" freezing temperatures", 1),
			item("Warm layers (thermal underwear or fleece)", domain.CategoryLayers, "Provides insulation under your coat", 1),
			item("Winter hat and gloves", domain.CategoryAccessories, "Protects extremities from cold", 1),
			item("Insulated boots", domain.CategoryFootwear, "Keeps feet warm and dry", 2),
		}
	case domain.TempCool:
		return []domain.ClothingItem{
			item("Medium-weight jacket", domain.CategoryOuterwear, "Appropriate for "+t+" cool weather", 1),
			item("Long-sleeve shirt or sweater", domain.CategoryLayers, "Provides comfortable warmth", 1),
			item("Light scarf (optional)", domain.CategoryAccessories, "Extra warmth for neck area", 3),
		}
	case domain.TempModerate:
		return []domain.ClothingItem{
			item("Light jacket or cardigan", domain.CategoryOuterwear, "Perfect for "+t+" mild temperatures", 2),
			item("Long-sleeve shirt or light layers", domain.CategoryLayers, "Versatile for changing conditions", 1),
		}
	case domain.TempWarm:
		return []domain.ClothingItem{
			item("Short-sleeve shirt or light top", domain.CategoryLayers, "Comfortable for "+t+" warm weather", 1),
			item("Light pants or shorts", domain.CategoryLayers, "Keeps you cool in warm temperatures", 1),
			item("Sunglasses", domain.CategoryAccessories, "Protection from sun", 2),
		}
	default:
		return []domain.ClothingItem{
			item("Lightweight, breathable clothing", domain.CategoryLayers, "Essential for "+t+" hot weather", 1),
			item("Shorts or light skirt", domain.CategoryLayers, "Maximum airflow and comfort", 1),
			item("Wide-brim hat or cap", domain.CategoryAccessories, "Sun protection for face and neck", 1),
			item("Sunglasses", domain.CategoryAccessories, "Eye protection from sun", 2),
		}
	}
}

// precipitationItems returns items for rain or snow. Unknown kinds add nothing.
func precipitationItems(kind domain.PrecipitationType, cat domain.TemperatureCategory) []domain.ClothingItem {
	switch kind {
	case domain.PrecipitationRain:
		return []domain.ClothingItem{
			item("Waterproof jacket or rain coat", domain.CategoryOuterwear, "Stay dry in the rain", 1),
			item("Umbrella", domain.CategoryAccessories, "Additional rain protection", 2),
			item("Waterproof shoes or boots", domain.CategoryFootwear, "Keep feet dry", 1),
		}
	case domain.PrecipitationSnow:
		items := []domain.ClothingItem{
			item("Waterproof winter boots", domain.CategoryFootwear, "Essential for snow and slush", 1),
		}
		// the Winter bundle already carries gloves
		if cat != domain.TempWinter {
			items = append(items, item("Waterproof gloves", domain.CategoryAccessories, "Keeps hands warm and dry in snow", 1))
		}
		return items
	default:
		return nil
	}
}

// windItems returns items for wind above the breezy threshold.
func windItems(windMPH float64, cat domain.TemperatureCategory) []domain.ClothingItem {
	if windMPH <= BreezyAboveMPH {
		return nil
	}

	if windMPH > WindyAboveMPH {
		if cat.IsCold() {
			return []domain.ClothingItem{
				item("Wind-resistant outer layer", domain.CategoryOuterwear, fmt.Sprintf("Blocks %.0f mph winds", windMPH), 1),
			}
		}
		return []domain.ClothingItem{
			item("Windbreaker", domain.CategoryOuterwear, fmt.Sprintf("Protection from %.0f mph winds", windMPH), 1),
		}
	}

	if cat.IsCold() || cat == domain.TempModerate {
		return []domain.ClothingItem{
			item("Light windbreaker or jacket", domain.CategoryOuterwear, "Light wind protection for breezy conditions", 2),
		}
	}
	return nil
}

// considerations collects the advisory notes in rule order.
func considerations(w domain.WeatherData, cat domain.TemperatureCategory) []string {
	notes := make([]string, 0, 3)

	if w.HasPrecipitation() {
		notes = append(notes, fmt.Sprintf(notePrecipitation, w.PrecipitationType))
	}

	if w.WindSpeed > BreezyAboveMPH {
		if w.WindSpeed > WindyAboveMPH {
			notes = append(notes, noteHighWinds)
		} else {
			notes = append(notes, noteBreezy)
		}
	}

	if (cat == domain.TempWarm || cat == domain.TempHot) && w.Humidity > HumidHumidityPct {
		notes = append(notes, noteHighHumidity)
	}

	return notes
}
