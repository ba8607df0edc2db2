// internal/daily/daily.go
//
// Deterministic code of the day.
// The same (salt, date, shape) always yields the same code, so every
// player faces the same puzzle without the server storing it.

package daily

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/crypto/hkdf"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Code derives the hidden code for date from HKDF-SHA256(salt, date).
// Bytes are rejection-sampled so each symbol is uniform over [1, colors].
func Code(date time.Time, salt string, length, colors int) ([]int, error) {
	if length < 1 || colors < 1 || colors > 256 {
		return nil, errors.New("daily: invalid code shape")
	}
	r := hkdf.New(sha256.New, []byte(salt), nil, []byte("mastermind-daily:"+DateKey(date)))
	limit := 256 - 256%colors
	out := make([]int, 0, length)
	var b [1]byte
	for len(out) < length {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return nil, fmt.Errorf("daily: derive code: %w", err)
		}
		if int(b[0]) >= limit {
			continue
		}
		out = append(out, int(b[0])%colors+1)
	}
	return out, nil
}
