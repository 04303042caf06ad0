// Package rules implements the two pure Klondike operations: legality
// checking and state mutation for a single move. Apply is defined only
// on moves Legal has already approved; the move generator is specified
// to emit only legal moves, so ErrInvariantViolation signals a bug in
// this program, not a reachable runtime condition.
package rules

import (
	"errors"

	"github.com/kstatic/klondike-solver/internal/cards"
	"github.com/kstatic/klondike-solver/internal/move"
	"github.com/kstatic/klondike-solver/internal/state"
)

// ErrInvariantViolation marks a move the generator emitted that Legal
// rejects, or a state that fails the invariants in SPEC_FULL.md §3.
// Reaching this is a programming bug, never a normal outcome.
var ErrInvariantViolation = errors.New("rules: invariant violation")

// Legal reports whether m is playable in state s.
func Legal(s state.State, m move.Move) bool {
	switch m.Kind {
	case move.Draw:
		return s.StockLen()+s.WasteLen() > 0

	case move.WasteToFoundation:
		top, ok := s.WasteTop()
		if !ok {
			return false
		}
		return top.Rank == s.Foundation[top.Suit]+1

	case move.WasteToTableau:
		dst := int(m.Extras[0])
		top, ok := s.WasteTop()
		if !ok || dst < 0 || dst >= state.NumColumns {
			return false
		}
		return cardFitsOnColumn(top, s.Tableau[dst])

	case move.TableauToFoundation:
		src := int(m.Extras[0])
		if src < 0 || src >= state.NumColumns {
			return false
		}
		top, ok := s.Tableau[src].Top()
		if !ok {
			return false
		}
		return top.Rank == s.Foundation[top.Suit]+1

	case move.TableauToTableau:
		src, row, dst := int(m.Extras[0]), int(m.Extras[1]), int(m.Extras[2])
		if src < 0 || src >= state.NumColumns || dst < 0 || dst >= state.NumColumns {
			return false
		}
		faceUp := s.Tableau[src].FaceUp
		if row < 0 || row >= len(faceUp) {
			return false
		}
		return cardFitsOnColumn(faceUp[row], s.Tableau[dst])

	default:
		return false
	}
}

// cardFitsOnColumn reports whether c may be placed on top of dst: a
// King onto an empty column, or a card one rank below and the opposite
// color of dst's current top otherwise.
func cardFitsOnColumn(c cards.Card, dst state.Column) bool {
	top, ok := dst.Top()
	if !ok {
		return c.Rank == cards.King
	}
	return c.OppositeColor(top) && c.Rank == top.Rank-1
}

// Apply returns the state resulting from playing m in s, followed by
// the mandatory reveal pass: any column left with an empty face-up run
// and a non-empty face-down run has its top face-down card flipped up.
// Apply assumes Legal(s, m) already holds.
func Apply(s state.State, m move.Move) state.State {
	out := s.Clone()

	switch m.Kind {
	case move.Draw:
		if out.WasteCount == len(out.Stock) {
			out.WasteCount = 0
		}
		remaining := len(out.Stock) - out.WasteCount
		advance := out.DrawSize
		if advance > remaining {
			advance = remaining
		}
		out.WasteCount += advance

	case move.WasteToFoundation:
		idx := len(out.Stock) - out.WasteCount
		top := out.Stock[idx]
		out.Foundation[top.Suit] = top.Rank
		out.Stock = append(out.Stock[:idx], out.Stock[idx+1:]...)
		out.WasteCount--

	case move.WasteToTableau:
		dst := int(m.Extras[0])
		idx := len(out.Stock) - out.WasteCount
		top := out.Stock[idx]
		out.Tableau[dst].FaceUp = append(out.Tableau[dst].FaceUp, top)
		out.Stock = append(out.Stock[:idx], out.Stock[idx+1:]...)
		out.WasteCount--

	case move.TableauToFoundation:
		src := int(m.Extras[0])
		col := &out.Tableau[src]
		top := col.FaceUp[len(col.FaceUp)-1]
		col.FaceUp = col.FaceUp[:len(col.FaceUp)-1]
		out.Foundation[top.Suit] = top.Rank

	case move.TableauToTableau:
		src, row, dst := int(m.Extras[0]), int(m.Extras[1]), int(m.Extras[2])
		moving := append([]cards.Card(nil), out.Tableau[src].FaceUp[row:]...)
		out.Tableau[dst].FaceUp = append(out.Tableau[dst].FaceUp, moving...)
		out.Tableau[src].FaceUp = out.Tableau[src].FaceUp[:row]
	}

	reveal(&out)
	return out
}

// reveal flips the top face-down card of any column whose face-up run
// is empty while its face-down run is not, restoring the invariant
// that no state visible to the solver has both empty.
func reveal(s *state.State) {
	for i := range s.Tableau {
		col := &s.Tableau[i]
		if len(col.FaceUp) == 0 && len(col.FaceDown) > 0 {
			last := len(col.FaceDown) - 1
			col.FaceUp = append(col.FaceUp, col.FaceDown[last])
			col.FaceDown = col.FaceDown[:last]
		}
	}
}

// Won reports whether s is a won position.
func Won(s state.State) bool {
	return s.Won()
}
