// internal/player/auto.go
//
// Automatic player that guesses at random without repeating itself.
//
// Each query is drawn uniformly from [1, colors]^length. A query that was
// already issued is discarded and redrawn, up to min(colors^length, 100)
// draws per call; past that the player gives up with ErrExhausted.

package player

import (
	"errors"
	"math/rand/v2"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/game"
)

const maxDraws = 100

// ErrExhausted is returned when no unused query was found within the draw limit.
var ErrExhausted = errors.New("unable to generate unique query")

// Auto remembers every query it has produced. Not safe for concurrent use.
type Auto struct {
	rng  *rand.Rand
	used map[string]struct{}
}

// NewAuto builds a player on rng. A nil rng uses an unseeded source.
func NewAuto(rng *rand.Rand) *Auto {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Auto{rng: rng, used: make(map[string]struct{})}
}

// Next returns a query of the given shape that this player has not issued before.
func (a *Auto) Next(length, colors int) ([]int, error) {
	limit := drawLimit(length, colors)
	for attempt := 0; attempt < limit; attempt++ {
		q := make([]int, length)
		for i := range q {
			q[i] = 1 + a.rng.IntN(colors)
		}
		key := game.Key(q)
		if _, dup := a.used[key]; dup {
			log.Debug().Str("query", key).Int("attempt", attempt).Msg("query duplicated, redrawing")
			continue
		}
		a.used[key] = struct{}{}
		return q, nil
	}
	return nil, ErrExhausted
}

// Issued is the number of distinct queries produced so far.
func (a *Auto) Issued() int { return len(a.used) }

// drawLimit is min(colors^length, maxDraws) without overflowing.
func drawLimit(length, colors int) int {
	n := 1
	for i := 0; i < length; i++ {
		n *= colors
		if n >= maxDraws {
			return maxDraws
		}
	}
	return n
}
