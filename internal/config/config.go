// Package config resolves the solver's tunables from CLI flags and
// environment variables, generalizing the teacher's config.Config (a
// single namsral/flag parse call bound to package-scattered fields)
// into a value that's constructed fresh per call and safe to build in
// a test. Flags win over environment, which wins over defaults — the
// precedence viper always applies.
package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds every tunable named in SPEC_FULL.md §4.5/§6.
type Config struct {
	Timeout             time.Duration
	StateCacheSize      int
	MoveCacheSize       int
	LogLevel            zerolog.Level
	DiagnosticsInterval int
	DrawSize            int
	Random              bool
	RandomCount         int
}

// Load parses args (typically os.Args[1:]) into a Config, falling back
// to KLONDIKE_-prefixed environment variables and then the defaults
// below.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("klondike-solve", pflag.ContinueOnError)
	fs.Int64("timeout", 30, "wall-clock solve timeout, in seconds")
	fs.Int("state_cache_size", 1_000_000, "max entries in the seen-state cache")
	fs.Int("move_cache_size", 100_000, "max entries in the tableau move cache")
	fs.String("log-level", "info", "zerolog level: debug, info, warn, error")
	fs.Int("diagnostics-interval", 5000, "emit a diagnostic log line every N recursive calls")
	fs.Int("draw-size", 3, "cards moved from stock to waste per DRAW (1 or 3 in classical play)")
	fs.Bool("random", false, "solve freshly shuffled deals instead of reading stdin")
	fs.Int("random-count", 1, "number of random deals to solve with --random")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("KLONDIKE")
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	level, err := zerolog.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &Config{
		Timeout:             time.Duration(v.GetInt64("timeout")) * time.Second,
		StateCacheSize:      v.GetInt("state_cache_size"),
		MoveCacheSize:       v.GetInt("move_cache_size"),
		LogLevel:            level,
		DiagnosticsInterval: v.GetInt("diagnostics-interval"),
		DrawSize:            v.GetInt("draw-size"),
		Random:              v.GetBool("random"),
		RandomCount:         v.GetInt("random-count"),
	}, nil
}
