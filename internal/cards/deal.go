package cards

import (
	"fmt"
	"math/rand"
)

// LineLength is the exact length of a valid input line: 52 cards, two
// characters each.
const LineLength = NumCards * 2

// Deal is a fully specified 52-card arrangement, in the order it was
// read off the input line (or generated, for test fixtures).
type Deal [NumCards]Card

// ParseDeal decodes one input line into a Deal. It is the only place
// that validates card-count and duplicate-card invariants on raw input;
// callers in the I/O shell treat any returned error as malformed input.
func ParseDeal(line string) (Deal, error) {
	var deal Deal
	if len(line) != LineLength {
		return deal, fmt.Errorf("deal line: want %d chars, got %d", LineLength, len(line))
	}
	var seen [NumCards]bool
	for i := 0; i < NumCards; i++ {
		c, err := ParseCard(line[i*2 : i*2+2])
		if err != nil {
			return deal, fmt.Errorf("deal line: card %d: %w", i, err)
		}
		idx := int(c.Suit)*NumRanks + int(c.Rank)
		if seen[idx] {
			return deal, fmt.Errorf("deal line: duplicate card %s", c)
		}
		seen[idx] = true
		deal[i] = c
	}
	return deal, nil
}

// Line renders the deal back into the wire format ParseDeal accepts.
func (d Deal) Line() string {
	buf := make([]byte, 0, LineLength)
	for _, c := range d {
		buf = append(buf, c.Code()...)
	}
	return string(buf)
}

// Codes returns the deal as an array of two-char card codes, the shape
// the "deck" output field uses.
func (d Deal) Codes() []string {
	out := make([]string, NumCards)
	for i, c := range d {
		out[i] = c.Code()
	}
	return out
}

// ShuffledDeck returns a freshly shuffled 52-card deck using the given
// source, carried over from the original solver's getShuffledDeck() for
// use as a test fixture and by the CLI's --random smoke-test mode.
func ShuffledDeck(r *rand.Rand) Deal {
	var deck Deal
	i := 0
	for suit := Suit(0); suit < NumSuits; suit++ {
		for rank := Rank(0); rank < NumRanks; rank++ {
			deck[i] = Card{Suit: suit, Rank: rank}
			i++
		}
	}
	r.Shuffle(NumCards, func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}
