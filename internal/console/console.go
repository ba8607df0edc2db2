// internal/console/console.go
//
// Terminal front end for a single game.
// Responsibilities:
//   - Prompt for codes and re-prompt until the input parses.
//   - Ask for the game mode and yes/no answers.
//   - Render guesses as coloured pegs and feedback as ●/○ markers.
//   - Drive the turn loop until the game is won or lost.
//
// The console only collects input and prints results; scoring stays in the
// game and judge packages.

package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/judge"
)

// Mode selects who makes the guesses.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeManual Mode = "manual"
)

// ParseMode accepts "auto" or "manual" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeAuto, ModeManual:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q, want auto or manual", s)
}

// Guesser produces the next guess for the given 1-based turn.
type Guesser func(turn int) ([]int, error)

// Console reads from in and writes to out.
type Console struct {
	in  *bufio.Scanner
	out io.Writer

	pegs    []*color.Color // index 0 is symbol 1
	exact   *color.Color
	partial *color.Color
	muted   *color.Color
	alert   *color.Color
}

// New builds a console. useColor=false strips every escape sequence.
func New(in io.Reader, out io.Writer, useColor bool) *Console {
	c := &Console{
		in:      bufio.NewScanner(in),
		out:     out,
		exact:   color.New(color.FgRed, color.Bold),
		partial: color.New(color.FgWhite, color.Bold),
		muted:   color.New(color.Faint),
		alert:   color.New(color.FgYellow),
	}
	for _, a := range []color.Attribute{
		color.FgRed, color.FgGreen, color.FgYellow, color.FgBlue, color.FgMagenta,
		color.FgCyan, color.FgWhite, color.FgHiRed, color.FgHiGreen,
	} {
		c.pegs = append(c.pegs, color.New(a))
	}
	for _, col := range append([]*color.Color{c.exact, c.partial, c.muted, c.alert}, c.pegs...) {
		if useColor {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}
	return c
}

// Printf writes formatted text to the console.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// ReadLine prints prompt and returns the next trimmed line, or io.EOF.
func (c *Console) ReadLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// ReadSequence asks for a code until one parses.
func (c *Console) ReadSequence(label string, length, colors int) ([]int, error) {
	prompt := fmt.Sprintf("Give the %s sequence (%d numbers in the range [1, %d], separated by commas): ", label, length, colors)
	for {
		line, err := c.ReadLine(prompt)
		if err != nil {
			return nil, err
		}
		seq, err := game.ParseSequence(line, length, colors)
		var pe *game.ParseError
		if errors.As(err, &pe) {
			c.alert.Fprintf(c.out, "Wrong input. %s.\n", pe.Reason)
			continue
		}
		if err != nil {
			return nil, err
		}
		return seq, nil
	}
}

// ChooseMode asks for a game mode until the answer is valid.
func (c *Console) ChooseMode() (Mode, error) {
	for {
		line, err := c.ReadLine("Which game mode are you choosing? auto or manual: ")
		if err != nil {
			return "", err
		}
		if m, err := ParseMode(line); err == nil {
			return m, nil
		}
		c.alert.Fprintln(c.out, "Wrong input!")
	}
}

// ReadYesNo asks a y/n question until the answer is valid.
func (c *Console) ReadYesNo(question string) (bool, error) {
	for {
		line, err := c.ReadLine(question + " [y/n]: ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		c.alert.Fprintln(c.out, "Wrong input!")
	}
}

// RenderSequence draws each symbol as a coloured numbered peg.
func (c *Console) RenderSequence(seq []int) string {
	parts := make([]string, len(seq))
	for i, v := range seq {
		p := c.muted
		if v >= 1 && v <= len(c.pegs) {
			p = c.pegs[v-1]
		}
		parts[i] = p.Sprintf("●%d", v)
	}
	return strings.Join(parts, " ")
}

// RenderFeedback draws exact matches as ●, colour matches as ○ and pads
// the rest with · up to length.
func (c *Console) RenderFeedback(fb judge.Feedback, length int) string {
	var b strings.Builder
	b.WriteString(c.exact.Sprint(strings.Repeat("●", fb.Exact)))
	b.WriteString(c.partial.Sprint(strings.Repeat("○", fb.Partial)))
	if rest := length - fb.Exact - fb.Partial; rest > 0 {
		b.WriteString(c.muted.Sprint(strings.Repeat("·", rest)))
	}
	return b.String()
}

// RenderTurn prints one scored guess.
func (c *Console) RenderTurn(turn int, guess []int, fb judge.Feedback, length int) {
	fmt.Fprintf(c.out, "%2d  %s   %s  (exact %d, colour %d)\n",
		turn, c.RenderSequence(guess), c.RenderFeedback(fb, length), fb.Exact, fb.Partial)
}

// Play runs the turn loop. Guesses already made are refused and asked for
// again; any other error from next or from the game ends the loop.
func (c *Console) Play(ctx context.Context, g *game.Game, next Guesser) (game.State, error) {
	cfg := g.Config
	fmt.Fprintf(c.out, "%d positions, colours 1-%d, %d turns, %s scoring.\n", cfg.Length, cfg.Colors, cfg.MaxTurns, cfg.Rule)
	for !g.Finished {
		if err := ctx.Err(); err != nil {
			return g.State(), err
		}
		turn := len(g.Turns) + 1
		guess, err := next(turn)
		if err != nil {
			return g.State(), err
		}
		fb, _, err := g.ApplyGuess(guess)
		switch {
		case errors.Is(err, game.ErrDuplicateGuess):
			c.alert.Fprintf(c.out, "That query (%s) was already used, try another one.\n", game.FormatSequence(guess))
			continue
		case err != nil:
			return g.State(), err
		}
		c.RenderTurn(turn, guess, fb, cfg.Length)
	}

	if g.Won {
		c.exact.Fprintf(c.out, "win in %d turns\n", len(g.Turns))
	} else {
		c.alert.Fprintln(c.out, "lose")
	}
	fmt.Fprintf(c.out, "hidden: %s\n", c.RenderSequence(g.Hidden()))
	return g.State(), nil
}
