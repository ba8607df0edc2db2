// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Sessions live only as long as the process.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID in a map guarded by an RWMutex.
//   - Each game has its own mutex; Update holds it while fn runs, so two
//     guesses on the same game never interleave and other games are not held up.
//   - Every Save/Update stamps the entry; Sweep drops entries idle since a cutoff.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/mastermind/internal/game"
)

// ErrNotFound is returned for unknown game IDs.
var ErrNotFound = errors.New("game not found")

// Store defines the session interface used by the HTTP layer.
type Store interface {
	// Save adds or replaces a game.
	Save(ctx context.Context, g *game.Game) error

	// Update runs fn on the stored game while holding exclusive access to it.
	// The error from fn is returned unchanged.
	Update(ctx context.Context, id string, fn func(*game.Game) error) error

	// Delete removes a game; deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Sweep removes every game not saved or updated since cutoff and
	// returns how many were removed.
	Sweep(ctx context.Context, cutoff time.Time) (int, error)
}

type entry struct {
	mu      sync.Mutex
	g       *game.Game
	touched time.Time
	gone    bool // removed from the map while a caller waited on mu
}

type memory struct {
	mu    sync.RWMutex
	games map[string]*entry
	now   func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return newMemory(time.Now)
}

func newMemory(now func() time.Time) *memory {
	return &memory{games: make(map[string]*entry), now: now}
}

func (m *memory) Save(ctx context.Context, g *game.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.games[g.ID]; ok {
		old.mu.Lock()
		old.gone = true
		old.mu.Unlock()
	}
	m.games[g.ID] = &entry{g: g, touched: m.now()}
	return nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(*game.Game) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.RLock()
	e, ok := m.games[id]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gone {
		return ErrNotFound
	}
	e.touched = m.now()
	return fn(e.g)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	e, ok := m.games[id]
	delete(m.games, id)
	m.mu.Unlock()
	if ok {
		e.mu.Lock()
		e.gone = true
		e.mu.Unlock()
	}
	return nil
}

func (m *memory) Sweep(ctx context.Context, cutoff time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.games {
		e.mu.Lock()
		if e.touched.Before(cutoff) {
			e.gone = true
			delete(m.games, id)
			n++
		}
		e.mu.Unlock()
	}
	return n, nil
}
