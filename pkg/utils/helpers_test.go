package utils

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		value, min, max, want float64
	}{
		{-0.5, 0, 1, 0},
		{0.4, 0, 1, 0.4},
		{1.7, 0, 1, 1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.value, tt.min, tt.max); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v; want %v", tt.value, tt.min, tt.max, got, tt.want)
		}
	}

	if got := ClampInt(130, 0, 100); got != 100 {
		t.Errorf("ClampInt(130) = %d; want 100", got)
	}
	if got := ClampInt(-3, 0, 100); got != 0 {
		t.Errorf("ClampInt(-3) = %d; want 0", got)
	}
}

func TestRoundTo(t *testing.T) {
	if got := RoundTo(45.678, 1); got != 45.7 {
		t.Errorf("RoundTo(45.678, 1) = %v; want 45.7", got)
	}
	if got := RoundTo(12.25, 0); got != 12 {
		t.Errorf("RoundTo(12.25, 0) = %v; want 12", got)
	}
}

func TestIsZipCode(t *testing.T) {
	tests := map[string]bool{
		"10001":  true,
		"02134":  true,
		"1000":   false,
		"100011": false,
		"1000a":  false,
		"":       false,
	}
	for in, want := range tests {
		if got := IsZipCode(in); got != want {
			t.Errorf("IsZipCode(%q) = %v; want %v", in, got, want)
		}
	}
}
