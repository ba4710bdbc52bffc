package palette

import (
	"math/rand"
	"testing"
	"time"
)

// strPtr returns a pointer to s, for building nullable color slices.
func strPtr(s string) *string {
	return &s
}

func TestNextAvailable_EmptyReturnsFirst(t *testing.T) {
	got := NextAvailable(nil)
	if got != Colors[0] {
		t.Errorf("expected first palette color %s, got %s", Colors[0], got)
	}
}

func TestNextAvailable_SkipsUsedInOrder(t *testing.T) {
	used := []*string{strPtr(Colors[0]), strPtr(Colors[2])}
	got := NextAvailable(used)
	if got != Colors[1] {
		t.Errorf("expected %s (first unused), got %s", Colors[1], got)
	}
}

func TestNextAvailable_IgnoresNilAndEmpty(t *testing.T) {
	used := []*string{nil, strPtr(""), strPtr(Colors[0])}
	got := NextAvailable(used)
	if got != Colors[1] {
		t.Errorf("expected %s, got %s", Colors[1], got)
	}
}

func TestNextAvailable_UnknownColorsDontBlock(t *testing.T) {
	// A member with a hand-picked off-palette color doesn't consume a slot.
	used := []*string{strPtr("#123456")}
	got := NextAvailable(used)
	if got != Colors[0] {
		t.Errorf("expected %s, got %s", Colors[0], got)
	}
}

func TestNextAvailable_ExhaustedReturnsPaletteMember(t *testing.T) {
	SetRandSource(rand.New(rand.NewSource(42)))
	t.Cleanup(func() {
		SetRandSource(rand.New(rand.NewSource(time.Now().UnixNano())))
	})

	used := make([]*string, len(Colors))
	for i, c := range Colors {
		used[i] = strPtr(c)
	}

	for i := 0; i < 50; i++ {
		got := NextAvailable(used)
		found := false
		for _, c := range Colors {
			if c == got {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("exhausted fallback returned %s, not a palette member", got)
		}
	}
}

func TestNextAvailable_ExhaustedIsDeterministicWithSeed(t *testing.T) {
	t.Cleanup(func() {
		SetRandSource(rand.New(rand.NewSource(time.Now().UnixNano())))
	})

	used := make([]*string, len(Colors))
	for i, c := range Colors {
		used[i] = strPtr(c)
	}

	SetRandSource(rand.New(rand.NewSource(7)))
	first := NextAvailable(used)
	SetRandSource(rand.New(rand.NewSource(7)))
	second := NextAvailable(used)

	if first != second {
		t.Errorf("same seed produced %s then %s", first, second)
	}
}

func TestFamilyColorNotInPalette(t *testing.T) {
	for _, c := range Colors {
		if c == FamilyColor {
			t.Fatalf("FamilyColor %s must not be allocatable to a single member", FamilyColor)
		}
	}
}
