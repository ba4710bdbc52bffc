package palette

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultDarkenPercent is how much Normalize darkens a light color: each
// channel loses this percentage of the full 255 range.
const DefaultDarkenPercent = 22

// Text colors returned by ContrastText.
const (
	textOnLight = "#1A1A1A"
	textOnDark  = "#FFFFFF"
)

// lightThreshold is the luminance cutoff separating "light" from "dark".
// Normalize, IsLight, and ContrastText all share it so a normalized color
// and its contrasting text can never disagree.
const lightThreshold = 0.5

// hexColorPattern matches the canonical color form: '#' plus six hex digits.
var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Normalize coerces input to canonical #RRGGBB form and darkens it if it is
// too light to carry white text. Shorthand for NormalizeBy with
// DefaultDarkenPercent.
func Normalize(input string) string {
	return NormalizeBy(input, DefaultDarkenPercent)
}

// NormalizeBy prepends a missing '#', validates the six-hex-digit form, and
// returns FamilyColor for anything unparsable. Colors judged light
// (luminance above the shared threshold) have each channel reduced by
// darkenPercent% of 255, clamped at zero; dark colors pass through
// unchanged apart from the '#' coercion.
//
// A single darkening pass is not guaranteed to cross the threshold for
// extreme inputs (pure white at 22% lands at #C7C7C7, still light). The
// palette entries are chosen so one pass suffices, making NormalizeBy
// idempotent over every color this app assigns.
func NormalizeBy(input string, darkenPercent int) string {
	hex := input
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if !hexColorPattern.MatchString(hex) {
		return FamilyColor
	}

	r, g, b := channels(hex)
	if luminance(r, g, b) <= lightThreshold {
		return hex
	}

	delta := 255 * darkenPercent / 100
	return fmt.Sprintf("#%02X%02X%02X", clampChannel(r-delta), clampChannel(g-delta), clampChannel(b-delta))
}

// IsLight reports whether hex is judged light by the shared luminance test.
// Malformed input is judged dark, matching the FamilyColor fallback (which
// is itself dark).
func IsLight(hex string) bool {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if !hexColorPattern.MatchString(hex) {
		return false
	}
	r, g, b := channels(hex)
	return luminance(r, g, b) > lightThreshold
}

// ContrastText returns the legible text color for the given background:
// near-black on light backgrounds, white on dark ones.
func ContrastText(background string) string {
	if IsLight(background) {
		return textOnLight
	}
	return textOnDark
}

// luminance is the weighted sRGB luminance over 0–255 channels, scaled to
// 0.0–1.0. The 0.299/0.587/0.114 weights are the classic perceived-brightness
// coefficients.
func luminance(r, g, b int) float64 {
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
}

// channels splits a validated #RRGGBB string into its 0–255 components.
// Callers must have matched hexColorPattern first.
func channels(hex string) (r, g, b int) {
	rv, _ := strconv.ParseUint(hex[1:3], 16, 8)
	gv, _ := strconv.ParseUint(hex[3:5], 16, 8)
	bv, _ := strconv.ParseUint(hex[5:7], 16, 8)
	return int(rv), int(gv), int(bv)
}

// clampChannel clamps a channel value into the 0–255 range.
func clampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
