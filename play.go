package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/config"
	"github.com/robalobadob/mastermind/internal/console"
	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/judge"
	"github.com/robalobadob/mastermind/internal/player"
)

func runPlay(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	mode := fs.String("mode", "", "auto or manual (asked when empty)")
	length := fs.Int("length", cfg.Game.Length, "positions per code")
	colors := fs.Int("colors", cfg.Game.Colors, "number of colours")
	turns := fs.Int("turns", cfg.Game.MaxTurns, "turns before the game is lost")
	rule := fs.String("rule", cfg.Game.Rule.String(), "scoring rule: distinct or classic")
	hidden := fs.String("hidden", "", "hidden code, e.g. 1,4,3,2")
	seed := fs.Uint64("seed", 0, "seed for the automatic player (0 = random)")
	noColor := fs.Bool("no-color", false, "disable coloured output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r, err := judge.ParseRule(*rule)
	if err != nil {
		return err
	}
	gc := game.Config{Length: *length, Colors: *colors, MaxTurns: *turns, Rule: r}
	if err := gc.Validate(); err != nil {
		return err
	}

	con := console.New(os.Stdin, os.Stdout, !*noColor && !color.NoColor)

	m, err := chooseMode(con, *mode)
	if err != nil {
		return quietEOF(err)
	}

	code, err := chooseHidden(con, m, *hidden, gc)
	if err != nil {
		return quietEOF(err)
	}
	g, err := game.New(gc, code)
	if err != nil {
		return err
	}

	var next console.Guesser
	if m == console.ModeAuto {
		var rng *rand.Rand
		if *seed != 0 {
			rng = rand.New(rand.NewPCG(*seed, *seed))
		}
		auto := player.NewAuto(rng)
		next = func(int) ([]int, error) { return auto.Next(gc.Length, gc.Colors) }
	} else {
		next = func(int) ([]int, error) { return con.ReadSequence("query", gc.Length, gc.Colors) }
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if m == console.ModeAuto {
		con.Printf("The computer guesses; it never repeats a query.\n")
	}
	log.Debug().Str("gameId", g.ID).Str("mode", string(m)).Msg("game started")
	state, err := con.Play(ctx, g, next)
	if err != nil {
		return quietEOF(err)
	}
	log.Debug().Str("gameId", g.ID).Str("state", string(state)).Int("turns", len(g.Turns)).
		Str("hidden", game.FormatSequence(g.Hidden())).Msg("game over")
	return nil
}

func chooseMode(con *console.Console, flagValue string) (console.Mode, error) {
	if flagValue != "" {
		return console.ParseMode(flagValue)
	}
	return con.ChooseMode()
}

// chooseHidden returns nil for a random code. In auto mode the person at the
// keyboard is not guessing, so they may pick the code themselves.
func chooseHidden(con *console.Console, m console.Mode, flagValue string, gc game.Config) ([]int, error) {
	if flagValue != "" {
		return game.ParseSequence(flagValue, gc.Length, gc.Colors)
	}
	if m != console.ModeAuto {
		return nil, nil
	}
	own, err := con.ReadYesNo("Do you want to choose the hidden sequence? Otherwise it will be generated")
	if err != nil || !own {
		return nil, err
	}
	return con.ReadSequence("hidden", gc.Length, gc.Colors)
}

// quietEOF turns end of input into a clean exit.
func quietEOF(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		log.Info().Msg("bye")
		return nil
	}
	return err
}
