package advisor

import (
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/clothingadvisor/backend/internal/domain"
)

func weather(temp float64, precip domain.PrecipitationType, wind float64, humidity int) domain.WeatherData {
	return domain.WeatherData{
		ZipCode:           "10001",
		Location:          "New York",
		Temperature:       temp,
		FeelsLike:         temp,
		Humidity:          humidity,
		WindSpeed:         wind,
		Description:       "test conditions",
		PrecipitationType: precip,
	}
}

func names(items []domain.ClothingItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestGenerate_Invariants(t *testing.T) {
	temps := []float64{-20, 10, 31.9, 32, 40, 49.9, 50, 60, 69.9, 70, 80, 84.9, 85, 100}
	precips := []domain.PrecipitationType{domain.PrecipitationNone, domain.PrecipitationRain, domain.PrecipitationSnow}
	winds := []float64{0, 15, 15.1, 20, 25, 25.1, 40}
	humidities := []int{20, 70, 71, 95}

	for _, temp := range temps {
		for _, p := range precips {
			for _, wind := range winds {
				for _, h := range humidities {
					rec := Generate(weather(temp, p, wind, h))

					if n := len(rec.Items); n < MinItems || n > MaxItems {
						t.Fatalf("temp=%v precip=%q wind=%v: got %d items %v", temp, p, wind, n, names(rec.Items))
					}

					seen := map[string]bool{}
					for i, it := range rec.Items {
						key := strings.ToLower(it.Name)
						if seen[key] {
							t.Fatalf("temp=%v precip=%q wind=%v: duplicate item %q", temp, p, wind, it.Name)
						}
						seen[key] = true
						if i > 0 && rec.Items[i-1].Priority > it.Priority {
							t.Fatalf("temp=%v precip=%q wind=%v: priorities not ordered %v", temp, p, wind, rec.Items)
						}
					}
				}
			}
		}
	}
}

func TestGenerate_Rain(t *testing.T) {
	rec := Generate(weather(55, domain.PrecipitationRain, 5, 60))

	if rec.TemperatureCategory != domain.TempModerate {
		t.Fatalf("category = %s; want Moderate", rec.TemperatureCategory)
	}

	want := []string{
		"Long-sleeve shirt or light layers",
		"Waterproof jacket or rain coat",
		"Waterproof shoes or boots",
		"Light jacket or cardigan",
		"Umbrella",
	}
	if got := names(rec.Items); !reflect.DeepEqual(got, want) {
		t.Fatalf("items = %v; want %v", got, want)
	}

	found := false
	for _, it := range rec.Items {
		lower := strings.ToLower(it.Name)
		if it.Category == domain.CategoryOuterwear && (strings.Contains(lower, "waterproof") || strings.Contains(lower, "rain")) {
			found = true
		}
	}
	if !found {
		t.Error("expected a waterproof outerwear item")
	}

	if !reflect.DeepEqual(rec.SpecialConsiderations, []string{"Precipitation expected: rain"}) {
		t.Errorf("considerations = %v", rec.SpecialConsiderations)
	}
}

func TestGenerate_HighWind(t *testing.T) {
	rec := Generate(weather(60, domain.PrecipitationNone, 30, 40))

	want := []string{"Long-sleeve shirt or light layers", "Windbreaker", "Light jacket or cardigan"}
	if got := names(rec.Items); !reflect.DeepEqual(got, want) {
		t.Fatalf("items = %v; want %v", got, want)
	}
	if rec.Items[1].Category != domain.CategoryOuterwear || rec.Items[1].Reason != "Protection from 30 mph winds" {
		t.Errorf("wind item = %+v", rec.Items[1])
	}
	if !reflect.DeepEqual(rec.SpecialConsiderations, []string{"High winds expected"}) {
		t.Errorf("considerations = %v", rec.SpecialConsiderations)
	}
}

func TestGenerate_HighWindCold(t *testing.T) {
	rec := Generate(weather(40, domain.PrecipitationNone, 30, 40))

	if !containsName(rec.Items, "Wind-resistant outer layer") {
		t.Errorf("items = %v; want wind-resistant outer layer", names(rec.Items))
	}
}

func TestGenerate_Breezy(t *testing.T) {
	tests := []struct {
		name     string
		temp     float64
		wantItem bool
	}{
		{"winter", 20, true},
		{"cool", 40, true},
		{"moderate", 60, true},
		{"warm", 75, false},
		{"hot", 95, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Generate(weather(tt.temp, domain.PrecipitationNone, 20, 40))
			if got := containsName(rec.Items, "Light windbreaker or jacket"); got != tt.wantItem {
				t.Errorf("windbreaker present = %v; want %v (%v)", got, tt.wantItem, names(rec.Items))
			}
			if !reflect.DeepEqual(rec.SpecialConsiderations, []string{"Breezy conditions"}) {
				t.Errorf("considerations = %v", rec.SpecialConsiderations)
			}
		})
	}
}

func TestGenerate_WindThresholdIsExclusive(t *testing.T) {
	rec := Generate(weather(60, domain.PrecipitationNone, 15, 40))
	if len(rec.SpecialConsiderations) != 0 {
		t.Errorf("considerations = %v; want none at exactly 15 mph", rec.SpecialConsiderations)
	}

	rec = Generate(weather(60, domain.PrecipitationNone, 25, 40))
	if !reflect.DeepEqual(rec.SpecialConsiderations, []string{"Breezy conditions"}) {
		t.Errorf("considerations = %v; want breezy at exactly 25 mph", rec.SpecialConsiderations)
	}
}

func TestGenerate_HotHumid(t *testing.T) {
	rec := Generate(weather(90, domain.PrecipitationNone, 5, 80))

	if rec.TemperatureCategory != domain.TempHot {
		t.Fatalf("category = %s; want Hot", rec.TemperatureCategory)
	}
	if !reflect.DeepEqual(rec.SpecialConsiderations, []string{"High humidity - choose breathable fabrics"}) {
		t.Errorf("considerations = %v", rec.SpecialConsiderations)
	}
	if n := len(rec.Items); n < MinItems || n > MaxItems {
		t.Errorf("got %d items", n)
	}
}

func TestGenerate_HumidityNoteOnlyWhenWarm(t *testing.T) {
	rec := Generate(weather(60, domain.PrecipitationNone, 5, 90))
	if len(rec.SpecialConsiderations) != 0 {
		t.Errorf("considerations = %v; want none for moderate temperatures", rec.SpecialConsiderations)
	}

	rec = Generate(weather(75, domain.PrecipitationNone, 5, 70))
	if len(rec.SpecialConsiderations) != 0 {
		t.Errorf("considerations = %v; want none at exactly 70%%", rec.SpecialConsiderations)
	}
}

func TestGenerate_SnowInWinterSkipsGloves(t *testing.T) {
	rec := Generate(weather(20, domain.PrecipitationSnow, 5, 50))

	want := []string{
		"Heavy winter coat",
		"Warm layers (thermal underwear or fleece)",
		"Winter hat and gloves",
		"Waterproof winter boots",
		"Insulated boots",
	}
	if got := names(rec.Items); !reflect.DeepEqual(got, want) {
		t.Fatalf("items = %v; want %v", got, want)
	}
}

func TestGenerate_SnowWhenCoolAddsGloves(t *testing.T) {
	rec := Generate(weather(35, domain.PrecipitationSnow, 5, 50))

	want := []string{
		"Medium-weight jacket",
		"Long-sleeve shirt or sweater",
		"Waterproof winter boots",
		"Waterproof gloves",
		"Light scarf (optional)",
	}
	if got := names(rec.Items); !reflect.DeepEqual(got, want) {
		t.Fatalf("items = %v; want %v", got, want)
	}
	if !reflect.DeepEqual(rec.SpecialConsiderations, []string{"Precipitation expected: snow"}) {
		t.Errorf("considerations = %v", rec.SpecialConsiderations)
	}
}

func TestGenerate_TruncatesToMax(t *testing.T) {
	rec := Generate(weather(20, domain.PrecipitationRain, 30, 50))

	want := []string{
		"Heavy winter coat",
		"Warm layers (thermal underwear or fleece)",
		"Winter hat and gloves",
		"Waterproof jacket or rain coat",
		"Waterproof shoes or boots",
	}
	if got := names(rec.Items); !reflect.DeepEqual(got, want) {
		t.Fatalf("items = %v; want %v", got, want)
	}
	wantNotes := []string{"Precipitation expected: rain", "High winds expected"}
	if !reflect.DeepEqual(rec.SpecialConsiderations, wantNotes) {
		t.Errorf("considerations = %v; want %v", rec.SpecialConsiderations, wantNotes)
	}
}

func TestGenerate_PadsModerateCalm(t *testing.T) {
	rec := Generate(weather(60, domain.PrecipitationNone, 5, 50))

	want := []string{"Long-sleeve shirt or light layers", "Light jacket or cardigan", "Comfortable shoes"}
	if got := names(rec.Items); !reflect.DeepEqual(got, want) {
		t.Fatalf("items = %v; want %v", got, want)
	}
	last := rec.Items[2]
	if last.Category != domain.CategoryFootwear || last.Priority != 3 {
		t.Errorf("filler = %+v", last)
	}
	if rec.SpecialConsiderations == nil {
		t.Error("considerations should be empty, not nil")
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	p := 0.8
	w := weather(45, domain.PrecipitationRain, 20, 75)
	w.PrecipitationProbability = &p

	first := Generate(w)
	second := Generate(w)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ:\n%+v\n%+v", first, second)
	}

	p = 0.1
	if *first.Weather.PrecipitationProbability != 0.8 {
		t.Error("recommendation should hold its own copy of the weather input")
	}
}

func TestGenerate_Concurrent(t *testing.T) {
	w := weather(28, domain.PrecipitationSnow, 27, 30)
	want := Generate(w)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Generate(w); !reflect.DeepEqual(got, want) {
				t.Errorf("concurrent result differs")
			}
		}()
	}
	wg.Wait()
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name string
		w    domain.WeatherData
		want string
	}{
		{
			name: "plain",
			w:    domain.WeatherData{Location: "Denver", Temperature: 72.4, WindSpeed: 3},
			want: "For Denver at 72°F (warm weather): dress in layers appropriate for the conditions.",
		},
		{
			name: "precipitation and wind",
			w:    domain.WeatherData{Location: "Seattle", Temperature: 45.4, WindSpeed: 20, PrecipitationType: domain.PrecipitationRain},
			want: "For Seattle at 45°F (cool weather) with rain and 20 mph winds: dress in layers appropriate for the conditions.",
		},
		{
			name: "wind only",
			w:    domain.WeatherData{Location: "Chicago", Temperature: 10, WindSpeed: 31},
			want: "For Chicago at 10°F (winter weather) and 31 mph winds: dress in layers appropriate for the conditions.",
		},
		{
			name: "snow at wind threshold",
			w:    domain.WeatherData{Location: "Boston", Temperature: 30, WindSpeed: 15, PrecipitationType: domain.PrecipitationSnow},
			want: "For Boston at 30°F (winter weather) with snow: dress in layers appropriate for the conditions.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.w).Summary; got != tt.want {
				t.Errorf("summary = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestDedupeAndPrioritize(t *testing.T) {
	in := []domain.ClothingItem{
		{Name: "Sunglasses", Category: domain.CategoryAccessories, Priority: 2, Reason: "first"},
		{Name: "Coat", Category: domain.CategoryOuterwear, Priority: 1},
		{Name: "SUNGLASSES", Category: domain.CategoryAccessories, Priority: 1, Reason: "second"},
		{Name: "Hat", Category: domain.CategoryAccessories, Priority: 2},
		{Name: "Boots", Category: domain.CategoryFootwear, Priority: 1},
	}

	got := dedupeAndPrioritize(in)

	want := []string{"Coat", "Boots", "Sunglasses", "Hat"}
	if !reflect.DeepEqual(names(got), want) {
		t.Fatalf("names = %v; want %v", names(got), want)
	}
	if got[2].Reason != "first" {
		t.Errorf("first occurrence should win, got reason %q", got[2].Reason)
	}
}

func TestEnforceCount(t *testing.T) {
	t.Run("pads cold list with shoes then pants", func(t *testing.T) {
		in := []domain.ClothingItem{{Name: "Coat", Category: domain.CategoryOuterwear, Priority: 1}}
		got := enforceCount(in, domain.TempCool)
		want := []string{"Coat", "Comfortable closed-toe shoes", "Long pants"}
		if !reflect.DeepEqual(names(got), want) {
			t.Errorf("names = %v; want %v", names(got), want)
		}
	})

	t.Run("pads warm list with hat when footwear exists", func(t *testing.T) {
		in := []domain.ClothingItem{
			{Name: "Tee", Category: domain.CategoryLayers, Priority: 1},
			{Name: "Sandals", Category: domain.CategoryFootwear, Priority: 2},
		}
		got := enforceCount(in, domain.TempWarm)
		want := []string{"Tee", "Sandals", "Light hat or cap"}
		if !reflect.DeepEqual(names(got), want) {
			t.Errorf("names = %v; want %v", names(got), want)
		}
	})

	t.Run("stops when every filler is present", func(t *testing.T) {
		in := []domain.ClothingItem{
			{Name: "Comfortable shoes", Category: domain.CategoryFootwear, Priority: 3},
			{Name: "light hat or cap", Category: domain.CategoryAccessories, Priority: 3},
		}
		got := enforceCount(in, domain.TempHot)
		if len(got) != 2 {
			t.Errorf("got %d items %v; want the list unchanged", len(got), names(got))
		}
	})

	t.Run("stops on empty cold list after attempts", func(t *testing.T) {
		got := enforceCount(nil, domain.TempWinter)
		want := []string{"Comfortable closed-toe shoes", "Long pants"}
		if !reflect.DeepEqual(names(got), want) {
			t.Errorf("names = %v; want %v", names(got), want)
		}
	})

	t.Run("truncates to max", func(t *testing.T) {
		in := make([]domain.ClothingItem, 7)
		for i := range in {
			in[i] = domain.ClothingItem{Name: string(rune('a' + i)), Priority: 1}
		}
		got := enforceCount(in, domain.TempHot)
		if !reflect.DeepEqual(names(got), []string{"a", "b", "c", "d", "e"}) {
			t.Errorf("names = %v", names(got))
		}
	})
}

func containsName(items []domain.ClothingItem, name string) bool {
	return hasName(items, name)
}
