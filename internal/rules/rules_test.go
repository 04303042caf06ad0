package rules

import (
	"testing"

	"github.com/matryer/is"

	"github.com/kstatic/klondike-solver/internal/cards"
	"github.com/kstatic/klondike-solver/internal/move"
	"github.com/kstatic/klondike-solver/internal/state"
)

func solvedDeal() cards.Deal {
	var d cards.Deal
	suits := []cards.Suit{cards.Spades, cards.Hearts, cards.Diamonds, cards.Clubs}
	i := 0
	for _, s := range suits {
		for r := cards.King; r >= cards.Ace; r-- {
			d[i] = cards.Card{Suit: s, Rank: r}
			i++
		}
	}
	return d
}

func TestDrawAdvancesWasteAndWraps(t *testing.T) {
	is := is.New(t)
	s := state.New(solvedDeal(), 3)
	is.True(Legal(s, move.NewDraw()))

	s = Apply(s, move.NewDraw())
	is.Equal(s.WasteLen(), 3)
	is.Equal(s.StockLen(), 21)

	// Draw through the whole stock.
	for s.StockLen() > 0 {
		s = Apply(s, move.NewDraw())
	}
	is.Equal(s.StockLen(), 0)
	is.Equal(s.WasteLen(), 24)

	// One more draw wraps the waste back into the stock.
	is.True(Legal(s, move.NewDraw()))
	s = Apply(s, move.NewDraw())
	is.Equal(s.WasteLen(), 3)
	is.Equal(s.StockLen(), 21)
}

func TestWasteToFoundationRequiresNextRank(t *testing.T) {
	is := is.New(t)
	s := state.New(solvedDeal(), 1)
	// The stock draws 3H first, then up through KH; the 12th draw is AS.
	s = Apply(s, move.NewDraw())
	top, ok := s.WasteTop()
	is.True(ok)
	is.Equal(top, cards.Card{Suit: cards.Hearts, Rank: cards.Three})
	is.True(!Legal(s, move.NewWasteToFoundation())) // hearts foundation is still empty

	for i := 0; i < 11; i++ {
		s = Apply(s, move.NewDraw())
	}
	top, ok = s.WasteTop()
	is.True(ok)
	is.Equal(top.Rank, cards.Ace)

	is.True(Legal(s, move.NewWasteToFoundation()))
	s = Apply(s, move.NewWasteToFoundation())
	is.Equal(s.Foundation[top.Suit], cards.Ace)
	is.Equal(s.WasteLen(), 11)
}

func TestTableauToTableauKingOntoEmptyOnly(t *testing.T) {
	is := is.New(t)
	s := state.New(solvedDeal(), 1)
	// Column 0 shows AC and column 1 shows 8C, so AC cannot go there.
	m := move.NewTableauToTableau(0, 0, 1)
	is.True(!Legal(s, m))

	// Once AC goes to its foundation, column 0 is empty: column 5's KD
	// may move there, column 1's 8C may not.
	s = Apply(s, move.NewTableauToFoundation(0))
	is.True(Legal(s, move.NewTableauToTableau(5, 0, 0)))
	is.True(!Legal(s, move.NewTableauToTableau(1, 0, 0)))
}

func TestRevealPassFlipsExposedFaceDown(t *testing.T) {
	is := is.New(t)
	s := state.New(solvedDeal(), 1)
	before := len(s.Tableau[6].FaceDown)
	is.True(before > 0)

	m := move.NewTableauToFoundation(6)
	is.True(!Legal(s, m)) // column 6's face-up top isn't an Ace, foundation wants Ace first

	// Play column 0's Ace (bottom-dealt single-card column) to foundation,
	// then nothing is revealed there since faceDown was already empty.
	m0 := move.NewTableauToFoundation(0)
	is.True(Legal(s, m0))
	s2 := Apply(s, m0)
	is.Equal(len(s2.Tableau[0].FaceUp), 0)
	is.Equal(len(s2.Tableau[0].FaceDown), 0)

	// Column 2 shows AD over face-down 3C and 9C; playing AD flips 9C up.
	m2 := move.NewTableauToFoundation(2)
	is.True(Legal(s2, m2))
	s3 := Apply(s2, m2)
	is.Equal(s3.Tableau[2].FaceUp, []cards.Card{{Suit: cards.Clubs, Rank: cards.Nine}})
	is.Equal(len(s3.Tableau[2].FaceDown), 1)
}

func TestWonState(t *testing.T) {
	is := is.New(t)
	var s state.State
	for i := range s.Foundation {
		s.Foundation[i] = cards.King
	}
	is.True(Won(s))
}
