// Package fingerprint builds the canonical encodings the solver uses
// to classify game states and tableau shapes as equivalent, then
// reduces each encoding to a 64-bit digest with cespare/xxhash — the
// same hash the teacher's cmd/mlproducer package reaches for to turn a
// canonical id string into a cache key.
package fingerprint

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash"

	"github.com/kstatic/klondike-solver/internal/cards"
	"github.com/kstatic/klondike-solver/internal/state"
)

const sep = '|'

// State returns the 64-bit fingerprint of s under canFlip, per
// SPEC_FULL.md §4.4: two states sharing a fingerprint are mutually
// reducible, so the search driver treats either as a stand-in for the
// other.
func State(s state.State, canFlip bool) uint64 {
	var b strings.Builder

	if canFlip {
		b.WriteByte('1')
	} else {
		b.WriteByte('0')
	}
	b.WriteByte(sep)

	// The waste index and the full stock+waste sequence, so two states
	// collide only when they share an identical future draw path.
	b.WriteString(strconv.Itoa(s.WasteCount))
	for _, c := range s.Stock {
		b.WriteString(c.Code())
	}
	b.WriteByte(sep)

	for suit := 0; suit < cards.NumSuits; suit++ {
		r := s.Foundation[suit]
		if r >= 0 {
			b.WriteString(strconv.Itoa(int(r)))
		} else {
			b.WriteString("-")
		}
		b.WriteByte(',')
	}
	b.WriteByte(sep)

	for _, col := range sortedColumns(s) {
		b.WriteString(col)
		b.WriteByte(sep)
	}

	return xxhash.Sum64String(b.String())
}

// Tableau returns the 64-bit fingerprint of the tableau shape alone
// (face-down counts plus face-up runs, column order preserved), the
// key the tableau-move cache uses to memoize step 6 of the move
// generator.
func Tableau(s state.State) uint64 {
	var b strings.Builder
	for i, col := range s.Tableau {
		b.WriteString(strconv.Itoa(i))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(len(col.FaceDown)))
		b.WriteByte(':')
		for _, c := range col.FaceUp {
			b.WriteString(c.Code())
		}
		b.WriteByte(sep)
	}
	return xxhash.Sum64String(b.String())
}

// Run fingerprints a single face-up card run (bottom to top), the key
// the search driver's seenStacks guard uses to recognize a
// tableau-to-tableau move that only rearranges already-seen material.
func Run(run []cards.Card) uint64 {
	var b strings.Builder
	for _, c := range run {
		b.WriteString(c.Code())
	}
	return xxhash.Sum64String(b.String())
}

// sortedColumns renders each tableau column to a string fingerprint,
// then orders them per SPEC_FULL.md §4.4: columns with face-down cards
// first (by index, to preserve their face-down identities), then
// columns with only a face-up run (by their first face-up card), then
// empty columns. This erases column-identity permutations that are
// strategically equivalent while keeping face-down provenance where it
// matters.
func sortedColumns(s state.State) []string {
	type col struct {
		str      string
		hasDown  bool
		index    int
		firstKey string
	}
	cols := make([]col, len(s.Tableau))
	for i, c := range s.Tableau {
		var b strings.Builder
		if len(c.FaceDown) > 0 {
			b.WriteString(strconv.Itoa(i))
			b.WriteString(strconv.Itoa(len(c.FaceDown)))
		}
		for _, card := range c.FaceUp {
			b.WriteString(card.Code())
		}
		firstKey := ""
		if len(c.FaceUp) > 0 {
			firstKey = c.FaceUp[0].Code()
		}
		cols[i] = col{
			str:      b.String(),
			hasDown:  len(c.FaceDown) > 0,
			index:    i,
			firstKey: firstKey,
		}
	}

	out := make([]string, 0, len(cols))
	// face-down columns, by index
	for _, c := range cols {
		if c.hasDown {
			out = append(out, c.str)
		}
	}
	// face-up-only columns, by first face-up card
	faceUpOnly := make([]col, 0)
	for _, c := range cols {
		if !c.hasDown && len(c.firstKey) > 0 {
			faceUpOnly = append(faceUpOnly, c)
		}
	}
	sort.Slice(faceUpOnly, func(i, j int) bool {
		return faceUpOnly[i].firstKey < faceUpOnly[j].firstKey
	})
	for _, c := range faceUpOnly {
		out = append(out, c.str)
	}
	// empty columns last
	for _, c := range cols {
		if !c.hasDown && len(c.firstKey) == 0 {
			out = append(out, c.str)
		}
	}
	return out
}
