package palette

import "testing"

func TestEventColor_NoParticipantsUsesFallback(t *testing.T) {
	got := EventColor(nil, "#457B9D")
	if got != "#457B9D" {
		t.Errorf("expected normalized fallback #457B9D, got %s", got)
	}
}

func TestEventColor_SingleParticipant(t *testing.T) {
	got := EventColor([]*string{strPtr("#2A9D8F")}, "#000000")
	if got != "#2A9D8F" {
		t.Errorf("expected #2A9D8F, got %s", got)
	}
}

func TestEventColor_SingleLightParticipantIsDarkened(t *testing.T) {
	got := EventColor([]*string{strPtr("#F4A261")}, "#000000")
	if got != "#BC6A29" {
		t.Errorf("expected darkened #BC6A29, got %s", got)
	}
}

func TestEventColor_MultipleParticipantsUseFamilyColor(t *testing.T) {
	colors := []*string{strPtr("#E63946"), strPtr("#2A9D8F")}
	got := EventColor(colors, "#000000")
	if got != FamilyColor {
		t.Errorf("expected FamilyColor %s, got %s", FamilyColor, got)
	}
}

func TestEventColor_NilAndEmptySkipped(t *testing.T) {
	colors := []*string{nil, strPtr(""), strPtr("#588157")}
	got := EventColor(colors, "#000000")
	if got != "#588157" {
		t.Errorf("expected #588157 (only assigned color), got %s", got)
	}
}

func TestEventColorWith_CustomFamilyColor(t *testing.T) {
	colors := []*string{strPtr("#E63946"), strPtr("#2A9D8F")}
	got := EventColorWith(colors, "#000000", "#6D597A")
	if got != "#6D597A" {
		t.Errorf("expected custom family color #6D597A, got %s", got)
	}
}

// The shared-color convention, not channel blending, is the default for
// multi-participant events. A blend of two palette colors must never leak
// into EventColor output.
func TestEventColor_DefaultPolicyIsSharedColorNotBlend(t *testing.T) {
	a, b := "#E63946", "#2A9D8F"
	resolved := EventColor([]*string{strPtr(a), strPtr(b)}, "#000000")
	blended := Blend([]string{a, b})

	if resolved != FamilyColor {
		t.Fatalf("expected shared FamilyColor, got %s", resolved)
	}
	if resolved == blended {
		t.Errorf("event color %s matches the blend; policies must stay distinct", resolved)
	}
}

func TestBlend_BlackAndWhite(t *testing.T) {
	got := Blend([]string{"#FFFFFF", "#000000"})
	if got != "#808080" {
		t.Errorf("expected #808080, got %s", got)
	}
}

func TestBlend_EmptyReturnsFamilyColor(t *testing.T) {
	if got := Blend(nil); got != FamilyColor {
		t.Errorf("expected FamilyColor %s, got %s", FamilyColor, got)
	}
}

func TestBlend_SkipsUnparsableEntries(t *testing.T) {
	got := Blend([]string{"nonsense", "#000000"})
	if got != "#000000" {
		t.Errorf("expected #000000, got %s", got)
	}
}

func TestBlend_RoundsChannelsToNearest(t *testing.T) {
	// Blue channel mean is 2/3 ≈ 0.67, rounding to 1.
	got := Blend([]string{"#000000", "#000001", "#000001"})
	if got != "#000001" {
		t.Errorf("expected #000001, got %s", got)
	}
}

func TestBlend_CoercesMissingHash(t *testing.T) {
	got := Blend([]string{"FFFFFF", "000000"})
	if got != "#808080" {
		t.Errorf("expected #808080, got %s", got)
	}
}
