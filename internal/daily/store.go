package daily

import (
	"slices"
	"sync"
)

// Result is one player's finished attempt at a day's code.
type Result struct {
	PlayerID  string `json:"playerId"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	Turns     int    `json:"turns"`
	ElapsedMs int64  `json:"elapsedMs"`
	Won       bool   `json:"won"`

	seq uint64 // insertion order, last tie-break
}

// Board keeps daily results in memory, one per player per date.
type Board struct {
	mu      sync.RWMutex
	byDate  map[string]map[string]Result
	counter uint64
}

func NewBoard() *Board {
	return &Board{byDate: make(map[string]map[string]Result)}
}

// AlreadyPlayed reports whether playerID has a result for date.
func (b *Board) AlreadyPlayed(playerID, date string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.byDate[date][playerID]
	return ok
}

// Record stores r unless the player already has a result for that date.
// It reports whether r was stored.
func (b *Board) Record(r Result) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	day := b.byDate[r.Date]
	if day == nil {
		day = make(map[string]Result)
		b.byDate[r.Date] = day
	}
	if _, ok := day[r.PlayerID]; ok {
		return false
	}
	b.counter++
	r.seq = b.counter
	day[r.PlayerID] = r
	return true
}

// Leaderboard returns up to limit winning results for date,
// fewest turns first, then fastest, then earliest recorded.
func (b *Board) Leaderboard(date string, limit int) []Result {
	if limit <= 0 {
		limit = 20
	}
	b.mu.RLock()
	out := make([]Result, 0, len(b.byDate[date]))
	for _, r := range b.byDate[date] {
		if r.Won {
			out = append(out, r)
		}
	}
	b.mu.RUnlock()

	slices.SortFunc(out, func(x, y Result) int {
		switch {
		case x.Turns != y.Turns:
			return x.Turns - y.Turns
		case x.ElapsedMs != y.ElapsedMs:
			if x.ElapsedMs < y.ElapsedMs {
				return -1
			}
			return 1
		case x.seq < y.seq:
			return -1
		case x.seq > y.seq:
			return 1
		}
		return 0
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
