// internal/config/config.go
//
// Runtime configuration loaded from the environment.
// A `.env` file in the working directory is read first (development only);
// real environment variables always win because godotenv never overrides them.
//
// Environment variables:
//   PORT                     HTTP listen port (5175)
//   LOG_LEVEL                zerolog level name (info)
//   CLIENT_ORIGIN            CORS origin allowed with credentials (http://localhost:5173)
//   SESSION_SECRET           HMAC key for player tokens (dev default)
//   SESSION_TTL_HOURS        player token lifetime (720)
//   DAILY_SALT               secret mixed into the code of the day (local_dev_salt)
//   GAME_LENGTH/GAME_COLORS/GAME_TURNS  default board (4/4/10)
//   SCORING_RULE             distinct | classic (distinct)
//   REQUEST_TIMEOUT_SECONDS  per-request handler bound (10)
//   GAME_TTL_MINUTES         idle time before a free-play game is dropped (60)
//   NODE_ENV                 "production" switches cookies to Secure/SameSite=None

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/judge"
)

const devSecret = "dev_secret_change_me"

type Config struct {
	Port           string
	LogLevel       zerolog.Level
	ClientOrigin   string
	SessionSecret  []byte
	SessionTTL     time.Duration
	DailySalt      string
	Game           game.Config
	RequestTimeout time.Duration
	GameTTL        time.Duration
	Production     bool
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	c := &Config{
		Port:          getEnv("PORT", "5175"),
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		SessionSecret: []byte(getEnv("SESSION_SECRET", devSecret)),
		DailySalt:     getEnv("DAILY_SALT", "local_dev_salt"),
		Production:    os.Getenv("NODE_ENV") == "production",
	}

	lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	c.LogLevel = lvl

	ttl, err := envInt("SESSION_TTL_HOURS", 720)
	if err != nil {
		return nil, err
	}
	c.SessionTTL = time.Duration(ttl) * time.Hour

	timeout, err := envInt("REQUEST_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	c.RequestTimeout = time.Duration(timeout) * time.Second

	gameTTL, err := envInt("GAME_TTL_MINUTES", 60)
	if err != nil {
		return nil, err
	}
	c.GameTTL = time.Duration(gameTTL) * time.Minute

	def := game.DefaultConfig()
	if c.Game.Length, err = envInt("GAME_LENGTH", def.Length); err != nil {
		return nil, err
	}
	if c.Game.Colors, err = envInt("GAME_COLORS", def.Colors); err != nil {
		return nil, err
	}
	if c.Game.MaxTurns, err = envInt("GAME_TURNS", def.MaxTurns); err != nil {
		return nil, err
	}
	if c.Game.Rule, err = judge.ParseRule(os.Getenv("SCORING_RULE")); err != nil {
		return nil, fmt.Errorf("SCORING_RULE: %w", err)
	}
	if err := c.Game.Validate(); err != nil {
		return nil, fmt.Errorf("GAME_*: %w", err)
	}
	if c.Production && string(c.SessionSecret) == devSecret {
		return nil, fmt.Errorf("SESSION_SECRET must be set in production")
	}
	return c, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt parses k as a positive integer, falling back to def when unset.
func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: want a positive integer, got %q", k, v)
	}
	return n, nil
}
