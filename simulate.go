package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/robalobadob/mastermind/internal/config"
	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/judge"
	"github.com/robalobadob/mastermind/internal/sim"
)

func runSimulate(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	games := fs.Int("games", 1000, "number of games")
	workers := fs.Int("workers", 0, "worker goroutines (0 = one per CPU)")
	length := fs.Int("length", cfg.Game.Length, "positions per code")
	colors := fs.Int("colors", cfg.Game.Colors, "number of colours")
	turns := fs.Int("turns", cfg.Game.MaxTurns, "turns before a game is lost")
	rule := fs.String("rule", cfg.Game.Rule.String(), "scoring rule: distinct or classic")
	seed := fs.Uint64("seed", uint64(time.Now().UnixNano()), "random seed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r, err := judge.ParseRule(*rule)
	if err != nil {
		return err
	}
	opts := sim.Options{
		Games:   *games,
		Workers: *workers,
		Config:  game.Config{Length: *length, Colors: *colors, MaxTurns: *turns, Rule: r},
		Seed:    *seed,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bar := progressbar.Default(int64(opts.Games), "simulating")
	start := time.Now()
	sum, err := sim.Run(ctx, opts, func(sim.Outcome) { _ = bar.Add(1) })
	_ = bar.Finish()
	err = interrupted(err, sum.Games, opts.Games)
	if err != nil && sum.Games == 0 {
		return err
	}

	log.Info().
		Int("games", sum.Games).
		Int("wins", sum.Wins).
		Int("losses", sum.Losses).
		Int("exhausted", sum.Exhausted).
		Float64("winRate", sum.WinRate()).
		Float64("avgTurnsToWin", sum.AvgTurnsToWin()).
		Uint64("seed", opts.Seed).
		Dur("took", time.Since(start)).
		Msg("simulation finished")
	return err
}

// interrupted treats a cancelled run as a clean stop; the partial summary is
// still logged by the caller.
func interrupted(err error, finished, requested int) error {
	if errors.Is(err, context.Canceled) {
		log.Warn().Int("finished", finished).Int("requested", requested).Msg("simulation interrupted")
		return nil
	}
	return err
}
