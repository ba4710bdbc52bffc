package palette

import (
	"fmt"
	"math"
	"strings"
)

// Two distinct policies exist for coloring an event with several
// participants, and callers must pick one explicitly:
//
//   - EventColor: the shared-color convention. Multi-person events render in
//     FamilyColor so they are visually distinct from any single member's
//     color. This is what event rendering uses.
//   - Blend: a channel-averaged mix of the inputs. Only for surfaces that
//     want an explicit visual blend (e.g. a combined-availability bar).
//
// They are kept as separately named operations on purpose; merging them
// would let a blend silently replace the shared-color convention.

// EventColor returns the display color for an event given its participants'
// colors. Nil and empty entries (members without an assigned color) are
// skipped. No valid colors → the normalized fallback; exactly one → that
// member's normalized color; two or more → the normalized FamilyColor.
func EventColor(participantColors []*string, fallback string) string {
	return EventColorWith(participantColors, fallback, FamilyColor)
}

// EventColorWith is EventColor with an explicit shared color, for families
// that have customized theirs.
func EventColorWith(participantColors []*string, fallback, familyColor string) string {
	valid := make([]string, 0, len(participantColors))
	for _, c := range participantColors {
		if c != nil && *c != "" {
			valid = append(valid, *c)
		}
	}

	switch len(valid) {
	case 0:
		return Normalize(fallback)
	case 1:
		return Normalize(valid[0])
	default:
		return Normalize(familyColor)
	}
}

// Blend averages the R, G, and B channels independently across all input
// colors, rounding each channel to the nearest integer, and returns the
// re-hexed result. Unparsable entries are skipped; with no usable input it
// returns FamilyColor.
func Blend(colors []string) string {
	var rSum, gSum, bSum float64
	n := 0
	for _, c := range colors {
		hex := c
		if !strings.HasPrefix(hex, "#") {
			hex = "#" + hex
		}
		if !hexColorPattern.MatchString(hex) {
			continue
		}
		r, g, b := channels(hex)
		rSum += float64(r)
		gSum += float64(g)
		bSum += float64(b)
		n++
	}

	if n == 0 {
		return FamilyColor
	}

	round := func(sum float64) int {
		return clampChannel(int(math.Round(sum / float64(n))))
	}
	return fmt.Sprintf("#%02X%02X%02X", round(rSum), round(gSum), round(bSum))
}
