package workflow

import (
	"strings"
	"testing"

	"github.com/clothingadvisor/backend/internal/domain"
)

func TestFormatResponse(t *testing.T) {
	rec := domain.ClothingRecommendation{
		Weather: domain.WeatherData{IsMock: true},
		Summary: "For Austin at 95°F (hot weather): dress in layers appropriate for the conditions.",
		Items: []domain.ClothingItem{
			{Name: "Shorts or light skirt", Reason: "Stay cool", Priority: 1},
			{Name: "Sunglasses", Reason: "Sun protection", Priority: 2},
			{Name: "Light hat or cap", Reason: "Shade", Priority: 3},
		},
		SpecialConsiderations: []string{"Stay hydrated"},
	}

	got := FormatResponse(rec)
	want := []string{
		rec.Summary,
		"- Shorts or light skirt (essential): Stay cool",
		"- Sunglasses (recommended): Sun protection",
		"- Light hat or cap (optional): Shade",
		"Good to know:\n- Stay hydrated",
		"demo weather data",
	}
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("response missing %q:\n%s", w, got)
		}
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("trailing newline")
	}
}

func TestFormatResponse_NoConsiderations(t *testing.T) {
	got := FormatResponse(domain.ClothingRecommendation{Summary: "s", SpecialConsiderations: []string{}})
	if strings.Contains(got, "Good to know") || strings.Contains(got, "demo weather") {
		t.Errorf("unexpected sections:\n%s", got)
	}
}
