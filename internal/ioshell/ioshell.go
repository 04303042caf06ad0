// Package ioshell is the external collaborator around the solver: it
// parses one deal per input line and emits one structured JSON record
// per line, the boundary SPEC_FULL.md §6 describes and the teacher's
// own line-oriented CLI tools (cmd/shell) follow for stdin handling.
package ioshell

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/kstatic/klondike-solver/internal/cards"
	"github.com/kstatic/klondike-solver/internal/config"
	"github.com/kstatic/klondike-solver/internal/solver"
	"github.com/kstatic/klondike-solver/internal/state"
)

// Version tags every emitted record, per SPEC_FULL.md §6.
const Version = "klondike-solve/1"

// ErrMalformedLine marks an input line that isn't a valid 104-char
// deal. main checks for it with errors.Is to choose exit code 1.
var ErrMalformedLine = errors.New("ioshell: malformed input line")

// MoveRecord is one entry of a Record's winningMoves array.
type MoveRecord struct {
	Type   int   `json:"type"`
	Extras []int `json:"extras"`
}

// Record is the one JSON object emitted per deal run through the
// solver; a malformed input line gets no record.
type Record struct {
	Status          string       `json:"status"`
	Deck            []string     `json:"deck"`
	WinningMoves    []MoveRecord `json:"winningMoves"`
	MovesConsidered int          `json:"movesConsidered"`
	ElapsedSeconds  int          `json:"elapsedSeconds"`
	TimeoutSeconds  int          `json:"timeoutSeconds"`
	Version         string       `json:"version"`
}

// ParseLine decodes a single input line into a Deal, wrapping any
// parse failure in ErrMalformedLine.
func ParseLine(line string) (cards.Deal, error) {
	deal, err := cards.ParseDeal(line)
	if err != nil {
		return cards.Deal{}, fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}
	return deal, nil
}

// SolveDeal runs one deal through a fresh Solver and renders the
// resulting Record.
func SolveDeal(deal cards.Deal, cfg *config.Config, logger zerolog.Logger) Record {
	st := state.New(deal, cfg.DrawSize)
	sv := solver.New(cfg.Timeout, cfg.StateCacheSize, cfg.MoveCacheSize, cfg.DiagnosticsInterval, logger)
	result := sv.Solve(st)

	rec := Record{
		Status:          result.Status.String(),
		Deck:            deal.Codes(),
		MovesConsidered: result.MovesConsidered,
		ElapsedSeconds:  int(result.Elapsed.Seconds()),
		TimeoutSeconds:  int(cfg.Timeout.Seconds()),
		Version:         Version,
	}
	if result.Status == solver.Solved {
		rec.WinningMoves = make([]MoveRecord, len(result.Moves))
		for i, m := range result.Moves {
			rec.WinningMoves[i] = MoveRecord{Type: int(m.Kind), Extras: m.ExtrasSlice()}
		}
	}
	return rec
}

// Run reads one deal per line from r, solves each, and writes one JSON
// record per line to w. It returns ErrMalformedLine (wrapped) on the
// first malformed line, per spec.md §7's "no partial output" rule: the
// caller should stop without emitting a record for that line.
func Run(r io.Reader, w io.Writer, cfg *config.Config, logger zerolog.Logger) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		deal, err := ParseLine(scanner.Text())
		if err != nil {
			return err
		}
		if err := encoder.Encode(SolveDeal(deal, cfg, logger)); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// RunRandom solves count freshly shuffled deals (a smoke-testing mode
// supplementing the line-reading path with the same random-deal source
// original_source/Solitaire.h's default constructor uses) and writes
// one record per line to w.
func RunRandom(w io.Writer, cfg *config.Config, logger zerolog.Logger, count int, nextDeal func() cards.Deal) error {
	encoder := json.NewEncoder(w)
	for i := 0; i < count; i++ {
		if err := encoder.Encode(SolveDeal(nextDeal(), cfg, logger)); err != nil {
			return err
		}
	}
	return nil
}
