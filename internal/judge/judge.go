// internal/judge/judge.go
//
// Feedback evaluator for a Mastermind code.
// Responsibilities:
//   - Validate a hidden code and a guess against the alphabet bound k.
//   - Count exact matches (right symbol, right position).
//   - Count colour-only matches over the unconsumed positions.
//
// Notes:
//   - The default rule (RuleDistinct) counts each distinct colour of the
//     guess remainder at most once if it also appears in the hidden remainder.
//   - RuleClassic is the standard per-occurrence rule:
//     sum over colours of min(hidden count, guess count).
//   - Check is pure and keeps no state, so it is safe for concurrent use.

package judge

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLengthMismatch is returned when hidden and guess differ in length.
	ErrLengthMismatch = errors.New("sequences must be the same length")
	// ErrOutOfRange is returned when a symbol falls outside [1, k].
	ErrOutOfRange = errors.New("symbol out of range")
)

// Feedback is the result of scoring one guess.
type Feedback struct {
	Exact   int `json:"exact"`
	Partial int `json:"partial"`
}

// Solved reports whether every one of length positions matched exactly.
func (f Feedback) Solved(length int) bool { return f.Exact == length }

func (f Feedback) String() string {
	return fmt.Sprintf("exact=%d partial=%d", f.Exact, f.Partial)
}

// Rule selects how colour-only matches are counted.
type Rule int

const (
	RuleDistinct Rule = iota // once per distinct colour
	RuleClassic              // once per matched occurrence
)

func (r Rule) String() string {
	switch r {
	case RuleClassic:
		return "classic"
	default:
		return "distinct"
	}
}

// MarshalText lets Rule travel as "distinct"/"classic" in JSON.
func (r Rule) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Rule) UnmarshalText(b []byte) error {
	v, err := ParseRule(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// ParseRule maps a rule name to a Rule. The empty string is RuleDistinct.
func ParseRule(s string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "distinct":
		return RuleDistinct, nil
	case "classic":
		return RuleClassic, nil
	}
	return RuleDistinct, fmt.Errorf("unknown scoring rule %q", s)
}

// Check scores guess against hidden under RuleDistinct.
func Check(k int, hidden, guess []int) (Feedback, error) {
	return CheckWith(RuleDistinct, k, hidden, guess)
}

// CheckWith scores guess against hidden under the given rule.
// Invalid input yields a zero Feedback and an error wrapping
// ErrLengthMismatch or ErrOutOfRange.
func CheckWith(rule Rule, k int, hidden, guess []int) (Feedback, error) {
	if len(hidden) != len(guess) {
		return Feedback{}, fmt.Errorf("%w: hidden has %d, guess has %d", ErrLengthMismatch, len(hidden), len(guess))
	}
	if k < 1 {
		return Feedback{}, fmt.Errorf("%w: alphabet bound %d must be positive", ErrOutOfRange, k)
	}
	if err := Validate(k, hidden); err != nil {
		return Feedback{}, err
	}
	if err := Validate(k, guess); err != nil {
		return Feedback{}, err
	}

	var fb Feedback
	hiddenRem := make(map[int]int, len(hidden))
	guessRem := make(map[int]int, len(guess))

	// Pass 1: exact matches consume their positions.
	for i := range hidden {
		if hidden[i] == guess[i] {
			fb.Exact++
			continue
		}
		hiddenRem[hidden[i]]++
		guessRem[guess[i]]++
	}

	// Pass 2: colour matches over what is left.
	for color, n := range guessRem {
		h := hiddenRem[color]
		if h == 0 {
			continue
		}
		if rule == RuleClassic {
			fb.Partial += min(h, n)
		} else {
			fb.Partial++
		}
	}
	return fb, nil
}

// Validate checks that every symbol of seq lies in [1, k].
func Validate(k int, seq []int) error {
	for i, v := range seq {
		if v < 1 || v > k {
			return fmt.Errorf("%w: position %d holds %d, want 1..%d", ErrOutOfRange, i, v, k)
		}
	}
	return nil
}
