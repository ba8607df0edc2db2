package daily

import (
	"slices"
	"testing"
	"time"

	"github.com/robalobadob/mastermind/internal/judge"
)

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	d := time.Date(2026, 3, 2, 5, 0, 0, 0, loc) // 2026-03-01 19:00 UTC
	if got := DateKey(d); got != "2026-03-01" {
		t.Fatalf("DateKey = %s", got)
	}
}

func TestCodeDeterministic(t *testing.T) {
	d := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	a, err := Code(d, "salt", 4, 6)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Code(d.Add(3*time.Hour), "salt", 4, 6)
	if !slices.Equal(a, b) {
		t.Fatalf("same day differs: %v vs %v", a, b)
	}
	if err := judge.Validate(6, a); err != nil || len(a) != 4 {
		t.Fatalf("invalid code %v: %v", a, err)
	}
}

func TestCodeVariesByDayAndSalt(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	first, _ := Code(base, "s1", 8, 9)
	var differs bool
	for i := 1; i <= 5; i++ {
		c, _ := Code(base.AddDate(0, 0, i), "s1", 8, 9)
		if !slices.Equal(c, first) {
			differs = true
		}
	}
	if !differs {
		t.Fatal("codes did not change across days")
	}
	other, _ := Code(base, "s2", 8, 9)
	if slices.Equal(other, first) {
		t.Fatal("codes did not change with salt")
	}
}

func TestCodeRejectsBadShape(t *testing.T) {
	if _, err := Code(time.Now(), "s", 0, 4); err == nil {
		t.Fatal("expected error for zero length")
	}
	if _, err := Code(time.Now(), "s", 4, 0); err == nil {
		t.Fatal("expected error for zero colours")
	}
}

func TestBoard(t *testing.T) {
	b := NewBoard()
	date := "2026-10-16"

	if b.AlreadyPlayed("p1", date) {
		t.Fatal("fresh board reports played")
	}
	if !b.Record(Result{PlayerID: "p1", Date: date, Turns: 5, ElapsedMs: 900, Won: true}) {
		t.Fatal("first record rejected")
	}
	if b.Record(Result{PlayerID: "p1", Date: date, Turns: 1, ElapsedMs: 1, Won: true}) {
		t.Fatal("second record for same day accepted")
	}
	b.Record(Result{PlayerID: "p2", Date: date, Turns: 3, ElapsedMs: 5000, Won: true})
	b.Record(Result{PlayerID: "p3", Date: date, Turns: 3, ElapsedMs: 100, Won: true})
	b.Record(Result{PlayerID: "p4", Date: date, Turns: 10, Won: false})
	b.Record(Result{PlayerID: "p5", Date: "2026-10-15", Turns: 1, Won: true})

	if !b.AlreadyPlayed("p4", date) {
		t.Fatal("loss should still lock the day")
	}

	top := b.Leaderboard(date, 0)
	var ids []string
	for _, r := range top {
		ids = append(ids, r.PlayerID)
	}
	if want := []string{"p3", "p2", "p1"}; !slices.Equal(ids, want) {
		t.Fatalf("leaderboard = %v, want %v", ids, want)
	}
	if got := b.Leaderboard(date, 1); len(got) != 1 || got[0].PlayerID != "p3" {
		t.Fatalf("limited leaderboard = %v", got)
	}
}
