// Command klondike-solve reads one Klondike deal per stdin line and
// writes one JSON result record per stdout line, per SPEC_FULL.md §6.
// It follows the teacher's cmd/shell and root main.go in wiring
// config, logging, and the domain work together behind a thin main.
package main

import (
	"errors"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/kstatic/klondike-solver/internal/cards"
	"github.com/kstatic/klondike-solver/internal/config"
	"github.com/kstatic/klondike-solver/internal/ioshell"
	"github.com/kstatic/klondike-solver/internal/logctx"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

func run(args []string, stdin io.Reader, stdout io.Writer) int {
	cfg, err := config.Load(args)
	if err != nil {
		errPrintln(err.Error())
		return 1
	}
	logger := logctx.New(cfg)

	if cfg.Random {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		err = ioshell.RunRandom(stdout, cfg, logger, cfg.RandomCount, func() cards.Deal {
			return cards.ShuffledDeck(rng)
		})
	} else {
		err = ioshell.Run(stdin, stdout, cfg, logger)
	}

	if err != nil {
		if errors.Is(err, ioshell.ErrMalformedLine) {
			errPrintln(err.Error())
			return 1
		}
		logger.Error().Err(err).Msg("klondike-solve: fatal")
		return 1
	}
	return 0
}

func errPrintln(msg string) {
	os.Stderr.WriteString(msg)
	os.Stderr.WriteString("\n")
}
