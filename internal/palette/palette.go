// Package palette owns the color rules used everywhere a member or event
// appears in Hearth: the reserved member palette, allocation of a
// distinguishing color to each family member, darkening of pastel colors so
// badges stay readable, text-contrast selection, and the display color for
// events with multiple participants.
//
// Everything here is a pure function over value inputs. The only randomness
// is the exhausted-palette fallback in NextAvailable, which draws from a
// swappable source so tests stay deterministic.
package palette

import (
	"math/rand"
	"sync"
	"time"
)

// FamilyColor is the shared color used to render anything owned by the whole
// family rather than one member: events with two or more participants, and
// any color that fails to parse. It is deliberately not part of Colors so a
// single member can never claim it.
const FamilyColor = "#355070"

// Colors is the fixed, ordered set of colors reserved for family members.
// The order defines allocation priority: new members get the earliest entry
// not already in use. It never changes at runtime; adding or reordering
// entries would silently recolor existing families on their next allocation.
var Colors = []string{
	"#E63946", // red
	"#2A9D8F", // teal
	"#457B9D", // steel blue
	"#F4A261", // sandy orange
	"#8E7DBE", // lavender
	"#588157", // moss green
	"#D81B60", // raspberry
	"#6D597A", // dusk purple
	"#B56576", // rose
	"#00796B", // pine
	"#DDA15E", // tan
}

// rng backs the exhausted-palette fallback. Guarded by rngMu because
// *rand.Rand is not safe for concurrent use and badge allocation can race
// with list renders.
var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// SetRandSource replaces the random source used when the palette is
// exhausted. Tests install a seeded source for deterministic output.
func SetRandSource(r *rand.Rand) {
	rngMu.Lock()
	rng = r
	rngMu.Unlock()
}

// NextAvailable returns the first palette color not present in used, walking
// Colors in fixed order. Nil and empty entries in used are treated as
// unassigned. Once every palette entry is taken the palette is oversubscribed
// and a uniformly-random entry is returned instead; duplicates are expected.
func NextAvailable(used []*string) string {
	taken := make(map[string]bool, len(used))
	for _, c := range used {
		if c != nil && *c != "" {
			taken[*c] = true
		}
	}

	for _, c := range Colors {
		if !taken[c] {
			return c
		}
	}

	rngMu.Lock()
	c := Colors[rng.Intn(len(Colors))]
	rngMu.Unlock()
	return c
}
