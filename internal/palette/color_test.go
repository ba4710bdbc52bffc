package palette

import "testing"

func TestNormalize_AddsMissingHash(t *testing.T) {
	got := Normalize("2A9D8F")
	if got != "#2A9D8F" {
		t.Errorf("expected #2A9D8F, got %s", got)
	}
}

func TestNormalize_DarkColorPassesThrough(t *testing.T) {
	tests := []string{"#355070", "#000000", "#d81b60"}
	for _, in := range tests {
		if got := Normalize(in); got != in {
			t.Errorf("Normalize(%s) = %s, expected unchanged", in, got)
		}
	}
}

func TestNormalize_DarkensLightColor(t *testing.T) {
	// #F4A261 has luminance ≈ 0.70. At 22% each channel drops by
	// 255*22/100 = 56: (244,162,97) → (188,106,41) = #BC6A29.
	got := Normalize("#F4A261")
	if got != "#BC6A29" {
		t.Errorf("expected #BC6A29, got %s", got)
	}
}

func TestNormalize_InvalidFallsBackToFamilyColor(t *testing.T) {
	tests := []string{"", "#12", "#12345", "#1234567", "not-a-color", "#GGGGGG", "12345Z"}
	for _, in := range tests {
		if got := Normalize(in); got != FamilyColor {
			t.Errorf("Normalize(%q) = %s, expected FamilyColor %s", in, got, FamilyColor)
		}
	}
}

func TestNormalizeBy_ClampsChannelsAtZero(t *testing.T) {
	got := NormalizeBy("#FFFFFF", 100)
	if got != "#000000" {
		t.Errorf("expected #000000, got %s", got)
	}
}

func TestNormalize_IdempotentOverAssignableColors(t *testing.T) {
	colors := append([]string{FamilyColor}, Colors...)
	for _, c := range colors {
		once := Normalize(c)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %s: %s then %s", c, once, twice)
		}
	}
}

func TestIsLight(t *testing.T) {
	tests := []struct {
		hex  string
		want bool
	}{
		{"#FFFFFF", true},
		{"FFFFFF", true}, // missing '#' coerced
		{"#000000", false},
		{"#355070", false},
		{"#F4A261", true},
		{"garbage", false}, // malformed judged dark, like the fallback color
		{"", false},
	}
	for _, tt := range tests {
		if got := IsLight(tt.hex); got != tt.want {
			t.Errorf("IsLight(%q) = %v, expected %v", tt.hex, got, tt.want)
		}
	}
}

func TestContrastText(t *testing.T) {
	tests := []struct {
		background string
		want       string
	}{
		{"#FFFFFF", "#1A1A1A"},
		{"#355070", "#FFFFFF"},
		{"#000000", "#FFFFFF"},
		{"invalid", "#FFFFFF"}, // malformed backgrounds degrade to FamilyColor, which is dark
	}
	for _, tt := range tests {
		if got := ContrastText(tt.background); got != tt.want {
			t.Errorf("ContrastText(%q) = %s, expected %s", tt.background, got, tt.want)
		}
	}
}

// Normalized colors that land at or below the light threshold must always
// get white text: the normalizer and the contrast resolver share one
// luminance judgment, so they can never disagree on a rendered badge.
func TestContrastText_AgreesWithNormalize(t *testing.T) {
	samples := append([]string{"#FFFFFF", "#F4A261", "#E0E0E0", FamilyColor}, Colors...)
	for _, c := range samples {
		normalized := Normalize(c)
		if !IsLight(normalized) && ContrastText(normalized) != "#FFFFFF" {
			t.Errorf("dark normalized color %s (from %s) did not get white text", normalized, c)
		}
	}
}
