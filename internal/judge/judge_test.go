package judge

import (
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
)

func TestCheckExamples(t *testing.T) {
	tests := []struct {
		name    string
		k       int
		hidden  []int
		guess   []int
		exact   int
		partial int
	}{
		{"identical", 4, []int{1, 2, 3, 4}, []int{1, 2, 3, 4}, 4, 0},
		{"permutation", 4, []int{1, 2, 3, 4}, []int{4, 3, 2, 1}, 0, 4},
		{"repeated colour", 2, []int{1, 1, 2, 2}, []int{1, 1, 1, 1}, 2, 0},
		{"mixed", 4, []int{2, 3, 1, 2}, []int{2, 3, 1, 1}, 3, 0},
		{"disjoint", 6, []int{1, 2, 3, 1}, []int{4, 5, 6, 6}, 0, 0},
		{"repeats counted once", 3, []int{1, 1, 2, 3}, []int{2, 3, 1, 1}, 0, 3},
		{"empty", 4, []int{}, []int{}, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb, err := Check(tc.k, tc.hidden, tc.guess)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if fb.Exact != tc.exact || fb.Partial != tc.partial {
				t.Fatalf("got %v, want exact=%d partial=%d", fb, tc.exact, tc.partial)
			}
		})
	}
}

func TestCheckClassicRule(t *testing.T) {
	tests := []struct {
		hidden, guess []int
		exact, part   int
	}{
		{[]int{1, 1, 2, 2}, []int{2, 2, 1, 1}, 0, 4},
		{[]int{5, 4, 3, 2}, []int{1, 2, 3, 4}, 1, 2},
		{[]int{5, 4, 3, 2}, []int{4, 3, 2, 1}, 0, 3},
		{[]int{1, 1, 2, 3}, []int{2, 3, 1, 1}, 0, 4},
	}
	for _, tc := range tests {
		fb, err := CheckWith(RuleClassic, 6, tc.hidden, tc.guess)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fb.Exact != tc.exact || fb.Partial != tc.part {
			t.Errorf("classic(%v, %v) = %v, want exact=%d partial=%d", tc.hidden, tc.guess, fb, tc.exact, tc.part)
		}
	}
}

func TestCheckAsymmetricMultiplicity(t *testing.T) {
	hidden := []int{1, 1, 2, 3}
	guess := []int{2, 2, 1, 4}

	ab, err := Check(4, hidden, guess)
	if err != nil {
		t.Fatal(err)
	}
	ba, err := Check(4, guess, hidden)
	if err != nil {
		t.Fatal(err)
	}
	// Remainders: {1,1,2,3} and {2,2,1,4}; colours 1 and 2 are shared.
	if ab != (Feedback{Exact: 0, Partial: 2}) {
		t.Fatalf("forward = %v", ab)
	}
	if ab != ba {
		t.Fatalf("expected symmetric result, forward %v reverse %v", ab, ba)
	}

	classic, _ := CheckWith(RuleClassic, 4, hidden, guess)
	if classic.Partial != 2 {
		t.Fatalf("classic partial = %d, want 2", classic.Partial)
	}
}

func TestCheckErrors(t *testing.T) {
	tests := []struct {
		name   string
		k      int
		hidden []int
		guess  []int
		want   error
	}{
		{"length mismatch", 4, []int{1, 2, 3, 4}, []int{1, 2, 3}, ErrLengthMismatch},
		{"hidden above k", 4, []int{1, 2, 3, 5}, []int{1, 2, 3, 4}, ErrOutOfRange},
		{"guess zero", 4, []int{1, 2, 3, 4}, []int{0, 2, 3, 4}, ErrOutOfRange},
		{"negative", 4, []int{1, 2, 3, 4}, []int{1, -2, 3, 4}, ErrOutOfRange},
		{"bad bound", 0, []int{1}, []int{1}, ErrOutOfRange},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb, err := Check(tc.k, tc.hidden, tc.guess)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got err %v, want %v", err, tc.want)
			}
			if fb != (Feedback{}) {
				t.Fatalf("expected zero feedback on error, got %v", fb)
			}
		})
	}
}

func TestCheckBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 2000; i++ {
		k := 1 + rng.IntN(8)
		l := rng.IntN(7)
		hidden := randomSeq(rng, l, k)
		guess := randomSeq(rng, l, k)
		for _, rule := range []Rule{RuleDistinct, RuleClassic} {
			fb, err := CheckWith(rule, k, hidden, guess)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if fb.Exact < 0 || fb.Exact > l || fb.Partial < 0 || fb.Exact+fb.Partial > l {
				t.Fatalf("%v: bounds violated for %v vs %v: %v", rule, hidden, guess, fb)
			}
		}
		self, _ := Check(k, hidden, hidden)
		if self != (Feedback{Exact: l}) {
			t.Fatalf("self check of %v = %v", hidden, self)
		}
	}
}

func TestCheckConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				fb, err := Check(4, []int{1, 2, 3, 4}, []int{4, 3, 2, 1})
				if err != nil || fb.Partial != 4 {
					t.Errorf("got %v, %v", fb, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestParseRule(t *testing.T) {
	for in, want := range map[string]Rule{"": RuleDistinct, "distinct": RuleDistinct, " Classic ": RuleClassic} {
		got, err := ParseRule(in)
		if err != nil || got != want {
			t.Errorf("ParseRule(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseRule("fuzzy"); err == nil {
		t.Fatal("expected error for unknown rule")
	}
}

func randomSeq(rng *rand.Rand, l, k int) []int {
	out := make([]int, l)
	for i := range out {
		out[i] = 1 + rng.IntN(k)
	}
	return out
}
