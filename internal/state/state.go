// Package state defines the immutable-by-convention Klondike game
// state: foundations, the stock/waste sequence, and the seven tableau
// columns.
package state

import (
	"strings"

	"github.com/kstatic/klondike-solver/internal/cards"
)

// NumColumns is the number of tableau columns in Klondike.
const NumColumns = 7

// EmptyFoundation marks a suit with no cards on its foundation yet.
const EmptyFoundation = cards.Rank(-1)

// Column is one tableau pile, split into its face-down and face-up
// runs. FaceUp[len(FaceUp)-1] is the top (playable) card.
type Column struct {
	FaceDown []cards.Card
	FaceUp   []cards.Card
}

func (c Column) clone() Column {
	out := Column{}
	if len(c.FaceDown) > 0 {
		out.FaceDown = append([]cards.Card(nil), c.FaceDown...)
	}
	if len(c.FaceUp) > 0 {
		out.FaceUp = append([]cards.Card(nil), c.FaceUp...)
	}
	return out
}

// Top returns the column's playable card, if any.
func (c Column) Top() (cards.Card, bool) {
	if len(c.FaceUp) == 0 {
		return cards.Card{}, false
	}
	return c.FaceUp[len(c.FaceUp)-1], true
}

// State is a single snapshot of a Klondike game in progress. The zero
// value is not meaningful; build one with New.
//
// Stock/waste representation ("Sequence S + waste index W", per
// SPEC_FULL.md §9): Stock holds the not-yet-placed cards in a fixed
// relative order, shrinking as cards leave for the foundation or
// tableau. The last WasteCount entries of Stock are the waste, so the
// stock (face-down, undrawn) occupies indices [0, len(Stock)-WasteCount),
// with the next card to draw at index len(Stock)-WasteCount-1, and the
// waste occupies indices [len(Stock)-WasteCount, len(Stock)), with the
// playable waste top at index len(Stock)-WasteCount (the low-index end
// of that range, exposed first as each draw batch extends the waste
// region leftward).
type State struct {
	DrawSize   int
	Foundation [cards.NumSuits]cards.Rank
	Stock      []cards.Card // sequence S: 24 cards at the deal, shrinking as cards leave
	WasteCount int          // W: how many of Stock's tail are drawn (waste)
	Tableau    [NumColumns]Column
}

// New builds the initial state for a deal, dealing into the tableau in
// the canonical order: for row = 0..6, for column = row..6, pop from
// the top (the end) of the deal; the face-up card of column c is dealt
// when row == column. The remaining 24 cards become the initial stock, in
// the order they were read.
func New(deal cards.Deal, drawSize int) State {
	s := State{DrawSize: drawSize}
	for i := range s.Foundation {
		s.Foundation[i] = EmptyFoundation
	}

	cardsInDeck := len(deal)
	for row := 0; row < NumColumns; row++ {
		for col := row; col < NumColumns; col++ {
			card := deal[cardsInDeck-1]
			cardsInDeck--
			if row == col {
				s.Tableau[col].FaceUp = append(s.Tableau[col].FaceUp, card)
			} else {
				s.Tableau[col].FaceDown = append(s.Tableau[col].FaceDown, card)
			}
		}
	}

	s.Stock = append([]cards.Card(nil), deal[:cardsInDeck]...)
	s.WasteCount = 0
	return s
}

// Clone returns a deep-enough copy: every slice this State owns is
// freshly allocated, so mutating the clone never affects the original.
func (s State) Clone() State {
	out := s
	out.Stock = append([]cards.Card(nil), s.Stock...)
	for i := range out.Tableau {
		out.Tableau[i] = s.Tableau[i].clone()
	}
	return out
}

// StockLen returns how many cards remain face-down in the stock.
func (s State) StockLen() int {
	return len(s.Stock) - s.WasteCount
}

// WasteLen returns how many cards are in the waste.
func (s State) WasteLen() int {
	return s.WasteCount
}

// WasteTop returns the card on top of the waste, if any.
func (s State) WasteTop() (cards.Card, bool) {
	if s.WasteCount == 0 {
		return cards.Card{}, false
	}
	return s.Stock[len(s.Stock)-s.WasteCount], true
}

// Won reports whether the game is trivially completable: no cards left
// in stock/waste and every tableau column free of face-down cards.
func (s State) Won() bool {
	if s.StockLen() > 0 || s.WasteLen() > 0 {
		return false
	}
	for _, col := range s.Tableau {
		if len(col.FaceDown) > 0 {
			return false
		}
	}
	return true
}

// Render draws a plain-text board snapshot for diagnostics: a header
// line (stock indicator, waste top, foundations) followed by one row
// per tableau depth, carried over from original_source's
// Solitaire::toConsoleString (ASCII, since this renders into a log
// line rather than a terminal).
func (s State) Render() string {
	var b strings.Builder
	if s.StockLen() > 0 {
		b.WriteString("[] ")
	} else {
		b.WriteString("   ")
	}
	if top, ok := s.WasteTop(); ok {
		b.WriteString(top.Code())
		b.WriteByte(' ')
	} else {
		b.WriteString("   ")
	}
	b.WriteString("  ")
	for suit := 0; suit < cards.NumSuits; suit++ {
		r := s.Foundation[suit]
		if r >= 0 {
			b.WriteString(cards.Card{Suit: cards.Suit(suit), Rank: r}.Code())
		} else {
			b.WriteString("--")
		}
		b.WriteByte(' ')
	}
	height := 0
	for _, col := range s.Tableau {
		h := len(col.FaceDown) + len(col.FaceUp)
		if h > height {
			height = h
		}
	}
	for row := 0; row < height; row++ {
		b.WriteString("\n    ")
		for _, col := range s.Tableau {
			switch {
			case row < len(col.FaceDown):
				b.WriteString("## ")
			case row < len(col.FaceDown)+len(col.FaceUp):
				b.WriteString(col.FaceUp[row-len(col.FaceDown)].Code())
				b.WriteByte(' ')
			default:
				b.WriteString("   ")
			}
		}
	}
	return b.String()
}
