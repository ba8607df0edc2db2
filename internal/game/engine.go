// internal/game/engine.go
//
// Turn loop for a single Mastermind session.
// Responsibilities:
//   - Create games with a supplied or random hidden code.
//   - Reject guesses once finished, and reject repeats of earlier guesses.
//   - Score guesses through the judge package.
//   - Track state transitions: playing → won/lost.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"slices"
	"strconv"
	"strings"

	"github.com/robalobadob/mastermind/internal/judge"
)

// New constructs a game. A nil hidden draws a random code.
func New(cfg Config, hidden []int) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if hidden == nil {
		hidden = RandomCode(cfg.Length, cfg.Colors)
	} else {
		hidden = slices.Clone(hidden)
	}
	if len(hidden) != cfg.Length {
		return nil, fmt.Errorf("hidden code: %w: want %d symbols, got %d", judge.ErrLengthMismatch, cfg.Length, len(hidden))
	}
	if err := judge.Validate(cfg.Colors, hidden); err != nil {
		return nil, fmt.Errorf("hidden code: %w", err)
	}
	return &Game{
		ID:     randomID(),
		Config: cfg,
		Turns:  []Turn{},
		hidden: hidden,
		used:   make(map[string]struct{}),
	}, nil
}

// ApplyGuess scores a guess and advances the game.
//
// Rejections leave the game untouched:
//   - ErrFinished once the game is won or lost.
//   - ErrDuplicateGuess if the same sequence was already scored.
//   - judge.ErrLengthMismatch / judge.ErrOutOfRange for malformed guesses.
func (g *Game) ApplyGuess(guess []int) (judge.Feedback, State, error) {
	if g.Finished {
		return judge.Feedback{}, g.State(), ErrFinished
	}
	fb, err := judge.CheckWith(g.Config.Rule, g.Config.Colors, g.hidden, guess)
	if err != nil {
		return judge.Feedback{}, g.State(), err
	}
	if g.Submitted(guess) {
		return judge.Feedback{}, g.State(), ErrDuplicateGuess
	}
	g.used[Key(guess)] = struct{}{}
	g.Turns = append(g.Turns, Turn{Guess: slices.Clone(guess), Feedback: fb})

	if fb.Solved(g.Config.Length) {
		g.Finished, g.Won = true, true
	} else if len(g.Turns) >= g.Config.MaxTurns {
		g.Finished = true
	}
	return fb, g.State(), nil
}

// State reports the current lifecycle state.
func (g *Game) State() State {
	if g.Finished {
		if g.Won {
			return StateWon
		}
		return StateLost
	}
	return StatePlaying
}

// Remaining is the number of guesses left.
func (g *Game) Remaining() int {
	return max(g.Config.MaxTurns-len(g.Turns), 0)
}

// Hidden returns a copy of the hidden code.
func (g *Game) Hidden() []int { return slices.Clone(g.hidden) }

// Submitted reports whether guess was already scored in this game.
func (g *Game) Submitted(guess []int) bool {
	_, ok := g.used[Key(guess)]
	return ok
}

// RandomCode draws length symbols uniformly from [1, colors] using crypto/rand.
func RandomCode(length, colors int) []int {
	out := make([]int, length)
	limit := big.NewInt(int64(colors))
	for i := range out {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			panic(fmt.Sprintf("crypto/rand: %v", err))
		}
		out[i] = int(n.Int64()) + 1
	}
	return out
}

// Key is the canonical string form of a sequence, used for set membership.
func Key(seq []int) string {
	var b strings.Builder
	for i, v := range seq {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
