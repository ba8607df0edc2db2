package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/robalobadob/mastermind/internal/game"
)

func TestRunDeterministic(t *testing.T) {
	opts := Options{Games: 40, Workers: 4, Config: game.Config{Length: 3, Colors: 3, MaxTurns: 12}, Seed: 42}

	var calls int
	a, err := Run(context.Background(), opts, func(Outcome) { calls++ })
	if err != nil {
		t.Fatal(err)
	}
	if calls != 40 || a.Games != 40 {
		t.Fatalf("calls=%d games=%d", calls, a.Games)
	}
	if a.Wins+a.Losses+a.Exhausted != a.Games {
		t.Fatalf("outcomes do not add up: %+v", a)
	}

	opts.Workers = 1
	b, err := Run(context.Background(), opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("summary depends on workers: %+v vs %+v", a, b)
	}
}

func TestRunTinyBoard(t *testing.T) {
	// One position, two colours, two turns. A miss leaves one fresh query,
	// but only two random draws to find it, so some games give up.
	var mismatched int
	sum, err := Run(context.Background(), Options{Games: 200, Workers: 3, Config: game.Config{Length: 1, Colors: 2, MaxTurns: 2}, Seed: 1}, func(o Outcome) {
		// every query the player produces is new to the game, so each one is a turn
		if o.Queries != o.Turns {
			mismatched++
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	if mismatched != 0 {
		t.Fatalf("%d outcomes with queries != turns", mismatched)
	}
	if sum.Losses != 0 || sum.Wins+sum.Exhausted != 200 {
		t.Fatalf("summary %+v", sum)
	}
	if sum.Wins == 0 || sum.Exhausted == 0 {
		t.Fatalf("expected both wins and exhausted games: %+v", sum)
	}
	if avg := sum.AvgTurnsToWin(); avg < 1 || avg > 2 {
		t.Fatalf("avg turns %v", avg)
	}
}

func TestRunValidation(t *testing.T) {
	if _, err := Run(context.Background(), Options{Games: 0, Config: game.DefaultConfig()}, nil); err == nil {
		t.Fatal("expected error for zero games")
	}
	if _, err := Run(context.Background(), Options{Games: 1}, nil); err == nil {
		t.Fatal("expected error for empty config")
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Options{Games: 1000, Workers: 2, Config: game.DefaultConfig()}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
}

func TestSummaryRatesOnEmpty(t *testing.T) {
	var s Summary
	if s.WinRate() != 0 || s.AvgTurnsToWin() != 0 {
		t.Fatal("empty summary should report zeros")
	}
}
