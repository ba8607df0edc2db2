package game

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseError describes textual input that is not a valid code.
// Callers re-prompt on it; the evaluator never sees the input.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Input, e.Reason)
}

// ParseSequence reads length symbols in [1, colors] separated by commas
// and/or whitespace, e.g. "1,2,3,4" or "1 2 3 4".
func ParseSequence(text string, length, colors int) ([]int, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields) == 0 {
		return nil, &ParseError{Input: text, Reason: "empty input"}
	}
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, &ParseError{Input: text, Reason: fmt.Sprintf("%q is not a number", f)}
		}
		out = append(out, n)
	}
	if len(out) != length {
		return nil, &ParseError{Input: text, Reason: fmt.Sprintf("need exactly %d numbers, got %d", length, len(out))}
	}
	for _, n := range out {
		if n < 1 || n > colors {
			return nil, &ParseError{Input: text, Reason: fmt.Sprintf("numbers must be in the range [1, %d]", colors)}
		}
	}
	return out, nil
}

// FormatSequence renders a code the way ParseSequence reads it.
func FormatSequence(seq []int) string { return Key(seq) }
