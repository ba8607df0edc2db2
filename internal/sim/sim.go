// internal/sim/sim.go
//
// Self-play simulation: many games, each with a random hidden code and an
// automatic player, spread over a pool of workers.
//
// Every game i draws from its own PCG stream seeded with (Seed, i), so a
// summary depends only on the options and not on worker scheduling.

package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync"

	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/player"
)

type Options struct {
	Games   int
	Workers int // <= 0 means one per CPU
	Config  game.Config
	Seed    uint64
}

// Outcome is the result of a single simulated game.
type Outcome struct {
	Index     int
	State     game.State
	Turns     int
	Queries   int  // distinct queries the player produced
	Exhausted bool // the player ran out of fresh queries
}

// Summary aggregates outcomes.
type Summary struct {
	Games      int `json:"games"`
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`
	Exhausted  int `json:"exhausted"`
	TotalTurns int `json:"totalTurns"` // summed over wins only
}

func (s Summary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

func (s Summary) AvgTurnsToWin() float64 {
	if s.Wins == 0 {
		return 0
	}
	return float64(s.TotalTurns) / float64(s.Wins)
}

// Run plays opts.Games games. onDone, if set, is called once per finished
// game from a single goroutine.
func Run(ctx context.Context, opts Options, onDone func(Outcome)) (Summary, error) {
	if opts.Games < 1 {
		return Summary{}, errors.New("sim: games must be positive")
	}
	if err := opts.Config.Validate(); err != nil {
		return Summary{}, fmt.Errorf("sim: %w", err)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, opts.Games)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	results := make(chan Outcome)
	errc := make(chan error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out, err := playOne(i, opts)
				if err != nil {
					errc <- err
					cancel()
					return
				}
				select {
				case results <- out:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < opts.Games; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var sum Summary
	for out := range results {
		sum.Games++
		switch {
		case out.State == game.StateWon:
			sum.Wins++
			sum.TotalTurns += out.Turns
		case out.Exhausted:
			sum.Exhausted++
		default:
			sum.Losses++
		}
		if onDone != nil {
			onDone(out)
		}
	}

	select {
	case err := <-errc:
		return sum, err
	default:
	}
	return sum, ctx.Err()
}

// playOne runs game i to completion.
func playOne(i int, opts Options) (Outcome, error) {
	rng := rand.New(rand.NewPCG(opts.Seed, uint64(i)))
	cfg := opts.Config

	hidden := make([]int, cfg.Length)
	for j := range hidden {
		hidden[j] = 1 + rng.IntN(cfg.Colors)
	}
	g, err := game.New(cfg, hidden)
	if err != nil {
		return Outcome{}, err
	}

	auto := player.NewAuto(rng)
	for !g.Finished {
		q, err := auto.Next(cfg.Length, cfg.Colors)
		if errors.Is(err, player.ErrExhausted) {
			return Outcome{Index: i, State: g.State(), Turns: len(g.Turns), Queries: auto.Issued(), Exhausted: true}, nil
		}
		if err != nil {
			return Outcome{}, err
		}
		if _, _, err := g.ApplyGuess(q); err != nil {
			return Outcome{}, fmt.Errorf("sim: game %d: %w", i, err)
		}
	}
	return Outcome{Index: i, State: g.State(), Turns: len(g.Turns), Queries: auto.Issued()}, nil
}
