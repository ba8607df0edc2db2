// main.go
//
// Entry point for the mastermind binary.
//
// Subcommands:
//   serve     HTTP API (see internal/httpserver)
//   play      console game, auto or manual guessing
//   simulate  self-play statistics for the automatic player
//
// Configuration comes from the environment (and .env); see internal/config.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/config"
)

const usage = `usage: mastermind <command> [flags]

commands:
  serve      start the HTTP API
  play       play a game in the terminal
  simulate   run automatic games and report statistics
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	cmd, args := os.Args[1], os.Args[2:]
	if cmd != "serve" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	switch cmd {
	case "serve":
		err = runServe(cfg, args)
	case "play":
		err = runPlay(cfg, args)
	case "simulate":
		err = runSimulate(cfg, args)
	case "help", "-h", "--help":
		fmt.Fprint(os.Stdout, usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", cmd).Msg("exited")
	}
}
