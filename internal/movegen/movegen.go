// Package movegen produces the legal moves from a state in the fixed
// priority order the search driver relies on for determinism: ace
// moves first, then other foundation moves, then tableau-to-tableau
// moves that reveal a card, then waste-to-tableau moves, then draw,
// then tableau-to-tableau moves that don't reveal a card. Grounded in
// original_source/Solver.cpp's _getValidMoves and its five _add*
// helpers.
package movegen

import (
	"sort"

	"github.com/kstatic/klondike-solver/internal/fingerprint"
	"github.com/kstatic/klondike-solver/internal/lru"
	"github.com/kstatic/klondike-solver/internal/move"
	"github.com/kstatic/klondike-solver/internal/rules"
	"github.com/kstatic/klondike-solver/internal/state"
)

// Moves returns the legal moves the search tries from s, in priority
// order. A move of a column's whole face-up run is included only when
// it reveals a face-down card, so not every legal move is listed. tableauCache
// may be nil, in which case step 6 (non-revealing tableau-to-tableau
// moves) is recomputed every call instead of memoized by tableau shape.
func Moves(s state.State, tableauCache *lru.Cache[[]move.Move]) []move.Move {
	var moves []move.Move

	addAceMoves(s, &moves)
	addToFoundationMoves(s, &moves)
	addCardRevealingMoves(s, &moves)
	addWasteToTableauMoves(s, &moves)
	addDrawMove(s, &moves)
	addNonRevealingTableauMoves(s, &moves, tableauCache)

	return moves
}

// addAceMoves plays any ace straight to its foundation: from the
// waste, then from each tableau column's face-up top, in column order.
// An ace is always legal to play once its foundation is still empty,
// so there's no need for a full legality check here.
func addAceMoves(s state.State, moves *[]move.Move) {
	if top, ok := s.WasteTop(); ok && top.Rank == 0 {
		*moves = append(*moves, move.NewWasteToFoundation())
	}
	for col := 0; col < state.NumColumns; col++ {
		if top, ok := s.Tableau[col].Top(); ok && top.Rank == 0 {
			*moves = append(*moves, move.NewTableauToFoundation(col))
		}
	}
}

// addToFoundationMoves plays every remaining (non-ace) legal
// waste/tableau-top card to its foundation, in the same waste-then-
// columns order as addAceMoves.
func addToFoundationMoves(s state.State, moves *[]move.Move) {
	if top, ok := s.WasteTop(); ok && top.Rank != 0 {
		m := move.NewWasteToFoundation()
		if rules.Legal(s, m) {
			*moves = append(*moves, m)
		}
	}
	for col := 0; col < state.NumColumns; col++ {
		if top, ok := s.Tableau[col].Top(); ok && top.Rank != 0 {
			m := move.NewTableauToFoundation(col)
			if rules.Legal(s, m) {
				*moves = append(*moves, m)
			}
		}
	}
}

// addCardRevealingMoves finds every tableau-to-tableau move of a
// column's full face-up run (row 0) that would expose a face-down
// card, then orders them by a needsKingSpace heuristic: when no
// tableau column is currently empty, moving a shorter face-down run
// out of the way is prioritized (fewer rows to grind through before the
// payoff); once a column is already empty, the opposite preference
// applies, since clearing a second column stops being urgent. Ties
// break by ascending source column.
func addCardRevealingMoves(s state.State, moves *[]move.Move) {
	needsKingSpace := true
	for col := 0; col < state.NumColumns; col++ {
		if len(s.Tableau[col].FaceUp) == 0 {
			needsKingSpace = false
			break
		}
	}

	var candidates []move.Move
	for src := 0; src < state.NumColumns; src++ {
		srcCol := s.Tableau[src]
		if len(srcCol.FaceUp) == 0 || len(srcCol.FaceDown) == 0 {
			continue
		}
		for dst := 0; dst < state.NumColumns; dst++ {
			if src == dst {
				continue
			}
			m := move.NewTableauToTableau(src, 0, dst)
			if rules.Legal(s, m) {
				candidates = append(candidates, m)
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		lhsCol := int(candidates[i].Extras[0])
		rhsCol := int(candidates[j].Extras[0])
		lhsCount := len(s.Tableau[lhsCol].FaceDown)
		rhsCount := len(s.Tableau[rhsCol].FaceDown)
		if lhsCount == rhsCount {
			return lhsCol < rhsCol
		}
		if needsKingSpace {
			return lhsCount < rhsCount
		}
		return rhsCount < lhsCount
	})

	*moves = append(*moves, candidates...)
}

// addWasteToTableauMoves tries playing the waste top onto every
// column, in column order.
func addWasteToTableauMoves(s state.State, moves *[]move.Move) {
	for dst := 0; dst < state.NumColumns; dst++ {
		m := move.NewWasteToTableau(dst)
		if rules.Legal(s, m) {
			*moves = append(*moves, m)
		}
	}
}

// addDrawMove appends the draw move, if legal.
func addDrawMove(s state.State, moves *[]move.Move) {
	m := move.NewDraw()
	if rules.Legal(s, m) {
		*moves = append(*moves, m)
	}
}

// addNonRevealingTableauMoves finds every tableau-to-tableau move
// starting at row 1 or later (so neither a card-revealing move nor a
// same-column no-op), memoized by the tableau's shape: the set of
// valid such moves depends only on the face-down counts and face-up
// runs of each column, not on the foundation or stock/waste, so two
// states with an identical tableau shape always produce an identical
// move set here.
func addNonRevealingTableauMoves(s state.State, moves *[]move.Move, tableauCache *lru.Cache[[]move.Move]) {
	var key uint64
	if tableauCache != nil {
		key = fingerprint.Tableau(s)
		if cached, ok := tableauCache.Get(key); ok {
			*moves = append(*moves, cached...)
			return
		}
	}

	var found []move.Move
	for src := 0; src < state.NumColumns; src++ {
		faceUp := s.Tableau[src].FaceUp
		for row := 1; row < len(faceUp); row++ {
			for dst := 0; dst < state.NumColumns; dst++ {
				if src == dst {
					continue
				}
				m := move.NewTableauToTableau(src, row, dst)
				if rules.Legal(s, m) {
					found = append(found, m)
				}
			}
		}
	}

	if tableauCache != nil {
		tableauCache.Add(key, found)
	}
	*moves = append(*moves, found...)
}
