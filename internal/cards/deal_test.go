package cards

import (
	"math/rand"
	"testing"

	"github.com/matryer/is"
)

func solvedOrderLine() string {
	// Four full suits, King down to Ace, concatenated: a valid,
	// duplicate-free deal line.
	suits := []byte{'S', 'H', 'D', 'C'}
	ranks := []byte{'K', 'Q', 'J', 'T', '9', '8', '7', '6', '5', '4', '3', '2', 'A'}
	line := make([]byte, 0, LineLength)
	for _, s := range suits {
		for _, r := range ranks {
			line = append(line, r, s)
		}
	}
	return string(line)
}

func TestParseDealRoundTrip(t *testing.T) {
	is := is.New(t)
	line := solvedOrderLine()
	deal, err := ParseDeal(line)
	is.NoErr(err)
	is.Equal(deal.Line(), line)
	is.Equal(len(deal.Codes()), NumCards)
}

func TestParseDealWrongLength(t *testing.T) {
	is := is.New(t)
	_, err := ParseDeal("ASKH")
	is.True(err != nil)
}

func TestParseDealDuplicateCard(t *testing.T) {
	is := is.New(t)
	line := solvedOrderLine()
	// duplicate the first card over the second
	bad := line[:0] + line[0:2] + line[0:2] + line[4:]
	_, err := ParseDeal(bad)
	is.True(err != nil)
}

func TestShuffledDeckIsAPermutation(t *testing.T) {
	is := is.New(t)
	r := rand.New(rand.NewSource(42))
	deck := ShuffledDeck(r)
	seen := map[Card]bool{}
	for _, c := range deck {
		is.True(!seen[c])
		seen[c] = true
	}
	is.Equal(len(seen), NumCards)
}
