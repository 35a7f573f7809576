package level

import (
	"testing"
	"time"

	"github.com/luca-patrignani/cardtris/domain/poker"
)

func TestIsHandValidStepFunction(t *testing.T) {
	// disqualifiedAt[c] is the first level at which c stops counting.
	disqualifiedAt := map[poker.Category]int{
		poker.OnePair:      2,
		poker.TwoPair:      3,
		poker.ThreeOfAKind: 4,
		poker.Straight:     5,
		poker.Flush:        6,
		poker.FullHouse:    7,
		poker.FourOfAKind:  8,
	}
	for level := 1; level <= 12; level++ {
		for _, c := range poker.Categories {
			want := c != poker.NoHand
			if at, ok := disqualifiedAt[c]; ok && level >= at {
				want = false
			}
			if got := IsHandValid(c, level); got != want {
				t.Fatalf("IsHandValid(%v, %d): expected %v, got %v", c, level, want, got)
			}
		}
	}
}

func TestIsHandValidMonotonic(t *testing.T) {
	for _, c := range poker.Categories {
		for level := 2; level <= 12; level++ {
			if IsHandValid(c, level) && !IsHandValid(c, level-1) {
				t.Fatalf("%v became valid again at level %d", c, level)
			}
		}
	}
	for level := 1; level <= 12; level++ {
		if !IsHandValid(poker.StraightFlush, level) || !IsHandValid(poker.RoyalFlush, level) {
			t.Fatalf("flush straights must count at level %d", level)
		}
	}
}

func TestAward(t *testing.T) {
	tests := []struct {
		base, level, want int
	}{
		{1000, 1, 1000},
		{25, 1, 25},
		{150, 3, 450},
		{2000, 9, 18000},
		{0, 4, 0},
	}
	for _, tt := range tests {
		if got := Award(tt.base, tt.level); got != tt.want {
			t.Fatalf("Award(%d, %d): expected %d, got %d", tt.base, tt.level, tt.want, got)
		}
	}
}

func TestDropInterval(t *testing.T) {
	base, minimum := 500*time.Millisecond, 200*time.Millisecond
	tests := []struct {
		level    int
		wildcard bool
		want     time.Duration
	}{
		{1, false, 500 * time.Millisecond},
		{2, false, 462500 * time.Microsecond},
		{9, false, 200 * time.Millisecond},
		{20, false, 200 * time.Millisecond},
		{1, true, 250 * time.Millisecond},
		{9, true, 200 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := DropInterval(tt.level, tt.wildcard, base, minimum); got != tt.want {
			t.Fatalf("DropInterval(%d, %v): expected %v, got %v", tt.level, tt.wildcard, tt.want, got)
		}
	}
	prev := DropInterval(1, false, base, minimum)
	for l := 2; l <= 15; l++ {
		d := DropInterval(l, false, base, minimum)
		if d > prev {
			t.Fatalf("drop interval grew from %v to %v at level %d", prev, d, l)
		}
		prev = d
	}
}

func TestParseInvalidHandPolicy(t *testing.T) {
	for in, want := range map[string]InvalidHandPolicy{"keep": Keep, "Clear": Clear, " KEEP ": Keep} {
		got, err := ParseInvalidHandPolicy(in)
		if err != nil || got != want {
			t.Fatalf("ParseInvalidHandPolicy(%q): expected %v, got %v (%v)", in, want, got, err)
		}
	}
	if _, err := ParseInvalidHandPolicy("discard"); err == nil {
		t.Fatal("expected an error for an unknown policy")
	}
}
