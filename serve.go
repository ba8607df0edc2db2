package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/config"
	"github.com/robalobadob/mastermind/internal/httpserver"
	"github.com/robalobadob/mastermind/internal/store"
)

func runServe(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.String("port", cfg.Port, "listen port")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := httpserver.New(cfg, store.NewMemoryStore())
	log.Info().
		Str("port", *port).
		Int("length", cfg.Game.Length).
		Int("colors", cfg.Game.Colors).
		Int("turns", cfg.Game.MaxTurns).
		Stringer("rule", cfg.Game.Rule).
		Msg("starting mastermind server")
	return srv.Run(ctx, ":"+*port)
}
