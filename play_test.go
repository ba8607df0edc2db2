package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/robalobadob/mastermind/internal/console"
	"github.com/robalobadob/mastermind/internal/game"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func quietConsole(input string) *console.Console {
	return console.New(strings.NewReader(input), io.Discard, false)
}

func TestChooseMode(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		input   string
		want    console.Mode
		wantErr bool
	}{
		{name: "flag wins over input", flag: "AUTO", input: "manual\n", want: console.ModeAuto},
		{name: "bad flag", flag: "robot", wantErr: true},
		{name: "prompt until valid", input: "robot\nmanual\n", want: console.ModeManual},
		{name: "prompt hits eof", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := chooseMode(quietConsole(tt.input), tt.flag)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("mode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChooseHidden(t *testing.T) {
	gc := game.DefaultConfig()
	tests := []struct {
		name  string
		mode  console.Mode
		flag  string
		input string
		want  []int
		err   error
	}{
		{name: "flag in manual mode", mode: console.ModeManual, flag: "1,2,3,4", want: []int{1, 2, 3, 4}},
		{name: "flag in auto mode skips prompt", mode: console.ModeAuto, flag: "4 4 1 1", input: "y\n1,1,1,1\n", want: []int{4, 4, 1, 1}},
		{name: "manual mode never asks", mode: console.ModeManual, input: "y\n1,1,1,1\n"},
		{name: "auto mode declines", mode: console.ModeAuto, input: "n\n"},
		{name: "auto mode picks own code", mode: console.ModeAuto, input: "maybe\ny\n5,1,1,1\n4,3,2,1\n", want: []int{4, 3, 2, 1}},
		{name: "auto mode eof", mode: console.ModeAuto, input: "", err: io.EOF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := chooseHidden(quietConsole(tt.input), tt.mode, tt.flag, gc)
			if !errors.Is(err, tt.err) {
				t.Fatalf("err = %v, want %v", err, tt.err)
			}
			if !slices.Equal(got, tt.want) {
				t.Fatalf("hidden = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChooseHiddenBadFlag(t *testing.T) {
	_, err := chooseHidden(quietConsole(""), console.ModeManual, "1,2,9,4", game.DefaultConfig())
	var pe *game.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("got %v, want ParseError", err)
	}
}

func TestQuietEOF(t *testing.T) {
	boom := errors.New("boom")
	for _, tc := range []struct {
		in, want error
	}{
		{io.EOF, nil},
		{fmt.Errorf("read: %w", io.EOF), nil},
		{context.Canceled, nil},
		{boom, boom},
		{nil, nil},
	} {
		if got := quietEOF(tc.in); !errors.Is(got, tc.want) || (tc.want == nil && got != nil) {
			t.Errorf("quietEOF(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestInterruptedSimulationIsCleanStop(t *testing.T) {
	if err := interrupted(context.Canceled, 12, 1000); err != nil {
		t.Fatalf("cancelled run: got %v", err)
	}
	if err := interrupted(fmt.Errorf("sim: %w", context.Canceled), 0, 10); err != nil {
		t.Fatalf("wrapped cancel: got %v", err)
	}
	boom := errors.New("boom")
	if err := interrupted(boom, 3, 10); !errors.Is(err, boom) {
		t.Fatalf("other errors pass through: got %v", err)
	}
	if err := interrupted(nil, 10, 10); err != nil {
		t.Fatalf("nil: got %v", err)
	}
}
