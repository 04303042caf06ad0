// Package solver implements the depth-first backtracking search that
// decides whether a deal is winnable, grounded in
// original_source/Solver.cpp's solve/_solveImpl/_maybeApplyMove
// co-recursion and structured the way the teacher's
// endgame/alphabeta.Solver holds its caches and config alongside the
// search.
package solver

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/kstatic/klondike-solver/internal/fingerprint"
	"github.com/kstatic/klondike-solver/internal/lru"
	"github.com/kstatic/klondike-solver/internal/move"
	"github.com/kstatic/klondike-solver/internal/movegen"
	"github.com/kstatic/klondike-solver/internal/rules"
	"github.com/kstatic/klondike-solver/internal/state"
)

// Status names the four terminal states a solve can end in.
type Status int

const (
	Running Status = iota
	Solved
	TimedOut
	NoSolution
)

func (s Status) String() string {
	switch s {
	case Solved:
		return "win"
	case TimedOut:
		return "timeout"
	case NoSolution:
		return "lose"
	default:
		return "running"
	}
}

// Result is what a completed solve returns.
type Result struct {
	Status          Status
	Moves           []move.Move
	MovesConsidered int
	Elapsed         time.Duration
}

// Solver owns the two bounded caches and the diagnostic logger for a
// single deal. A fresh Solver is constructed per solve; caches are
// never shared across deals.
type Solver struct {
	timeout             time.Duration
	diagnosticsInterval int
	stateCache          *lru.Cache[struct{}]
	tableauCache        *lru.Cache[[]move.Move]
	logger              zerolog.Logger

	startTime time.Time
	numCalls  int
}

// New builds a Solver with the given timeout and cache sizes.
// diagnosticsInterval <= 0 disables periodic diagnostic logging.
func New(timeout time.Duration, stateCacheSize, moveCacheSize, diagnosticsInterval int, logger zerolog.Logger) *Solver {
	return &Solver{
		timeout:             timeout,
		diagnosticsInterval: diagnosticsInterval,
		stateCache:          lru.New[struct{}](stateCacheSize),
		tableauCache:        lru.New[[]move.Move](moveCacheSize),
		logger:              logger,
	}
}

// Solve runs the search to completion (win, timeout, or exhaustion) and
// returns the outcome.
func (s *Solver) Solve(initial state.State) Result {
	s.startTime = time.Now()
	s.numCalls = 0

	seenStacks := make(map[uint64]int)
	moves := s.solveImpl(initial, seenStacks, false, 0)

	elapsed := time.Since(s.startTime)
	result := Result{MovesConsidered: s.numCalls, Elapsed: elapsed}
	switch {
	case moves != nil:
		result.Status = Solved
		result.Moves = moves
	case elapsed >= s.timeout:
		result.Status = TimedOut
	default:
		result.Status = NoSolution
	}
	return result
}

// solveImpl is step 1-5 of SPEC_FULL.md §4.3: timeout check, base case,
// state dedup, expand, return the first winning continuation. A nil
// return (as opposed to an empty, non-nil slice) means "no solution
// found along this path"; a won state returns a non-nil empty slice.
func (s *Solver) solveImpl(st state.State, seenStacks map[uint64]int, canFlip bool, depth int) []move.Move {
	if time.Since(s.startTime) >= s.timeout {
		return nil
	}

	if rules.Won(st) {
		return []move.Move{}
	}

	key := fingerprint.State(st, canFlip)
	if _, ok := s.stateCache.Get(key); ok {
		return nil
	}
	s.stateCache.Add(key, struct{}{})

	s.numCalls++
	if s.diagnosticsInterval > 0 && s.numCalls%s.diagnosticsInterval == 0 {
		s.logDiagnostics(st, depth)
	}

	for _, m := range movegen.Moves(st, s.tableauCache) {
		if remaining := s.tryMove(m, st, seenStacks, canFlip, depth); remaining != nil {
			return append([]move.Move{m}, remaining...)
		}
	}
	return nil
}

// tryMove is _maybeApplyMove: the canFlip stock-cycle guard, the
// clone-and-apply, the seenStacks scoped stack-revisit guard, and the
// recursive call, with the scoped insertions always removed afterward
// regardless of outcome.
func (s *Solver) tryMove(m move.Move, st state.State, seenStacks map[uint64]int, canFlip bool, depth int) []move.Move {
	switch {
	case m.Kind == move.Draw && st.StockLen() == 0:
		if canFlip {
			canFlip = false
		} else {
			return nil
		}
	case m.Kind == move.WasteToFoundation || m.Kind == move.WasteToTableau:
		canFlip = true
	}

	next := rules.Apply(st, m)

	var inserted []uint64
	if m.Kind == move.TableauToTableau {
		srcCol := int(m.Extras[0])
		dstCol := int(m.Extras[2])
		srcKey := fingerprint.Run(next.Tableau[srcCol].FaceUp)
		dstKey := fingerprint.Run(next.Tableau[dstCol].FaceUp)
		_, srcSeen := seenStacks[srcKey]
		_, dstSeen := seenStacks[dstKey]
		if srcSeen && dstSeen {
			return nil
		}
		if !srcSeen {
			seenStacks[srcKey]++
			inserted = append(inserted, srcKey)
		}
		if !dstSeen {
			seenStacks[dstKey]++
			inserted = append(inserted, dstKey)
		}
	}

	remaining := s.solveImpl(next, seenStacks, canFlip, depth+1)

	for _, k := range inserted {
		delete(seenStacks, k)
	}

	return remaining
}

func (s *Solver) logDiagnostics(st state.State, depth int) {
	s.logger.Debug().
		Int("calls", s.numCalls).
		Int("depth", depth).
		Int("state_cache_size", s.stateCache.Len()).
		Int("move_cache_size", s.tableauCache.Len()).
		Dur("elapsed", time.Since(s.startTime)).
		Msg(st.Render())
}
