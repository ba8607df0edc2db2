// internal/game/types.go
//
// Core type definitions for a Mastermind session.
// Defines:
//   - Config: board dimensions, turn limit and scoring rule.
//   - State:  coarse lifecycle of a session (playing/won/lost).
//   - Turn:   one scored guess.
//   - Game:   state for a single in-progress or finished session.

package game

import (
	"errors"
	"fmt"

	"github.com/robalobadob/mastermind/internal/judge"
)

// Limits keep the board printable and the random draws cheap.
const (
	MaxLength = 16
	MaxColors = 9
)

var (
	ErrFinished       = errors.New("game finished")
	ErrDuplicateGuess = errors.New("guess already submitted")
)

// Config describes the shape of a game.
type Config struct {
	Length   int        `json:"length"` // positions per code (L)
	Colors   int        `json:"colors"` // alphabet bound (k)
	MaxTurns int        `json:"turns"`  // guesses before the game is lost
	Rule     judge.Rule `json:"rule"`
}

// DefaultConfig mirrors the classic console setup: 4 pegs, 4 colours, 10 turns.
func DefaultConfig() Config {
	return Config{Length: 4, Colors: 4, MaxTurns: 10, Rule: judge.RuleDistinct}
}

// Validate reports the first out-of-bounds field.
func (c Config) Validate() error {
	switch {
	case c.Length < 1 || c.Length > MaxLength:
		return fmt.Errorf("length must be 1-%d, got %d", MaxLength, c.Length)
	case c.Colors < 1 || c.Colors > MaxColors:
		return fmt.Errorf("colors must be 1-%d, got %d", MaxColors, c.Colors)
	case c.MaxTurns < 1:
		return fmt.Errorf("turns must be positive, got %d", c.MaxTurns)
	}
	return nil
}

// State is the lifecycle of a game.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Turn records one accepted guess and its feedback.
type Turn struct {
	Guess    []int          `json:"guess"`
	Feedback judge.Feedback `json:"feedback"`
}

// Game holds the state of a single session. The hidden code is set once
// in New and never leaves the package except through Hidden().
type Game struct {
	ID       string // random hex identifier
	Owner    string // player that created the game (may be empty)
	Config   Config
	Turns    []Turn
	Finished bool
	Won      bool

	hidden []int
	used   map[string]struct{} // keys of guesses already submitted
}
