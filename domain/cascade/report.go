package cascade

import (
	"fmt"

	"github.com/luca-patrignani/cardtris/domain/grid"
	"github.com/luca-patrignani/cardtris/domain/level"
	"github.com/luca-patrignani/cardtris/domain/poker"
)

// Hand is one scored (or cleared) hand found on the board.
type Hand struct {
	Category    poker.Category
	Orientation grid.Orientation
	BaseScore   int
	Awarded     int
	// Positions are the cells of the cards that made the category, jokers
	// included.
	Positions []grid.Position
	// Result carries the concrete hand the jokers resolved to.
	Result poker.Result
}

func newHand(cand grid.Candidate, res poker.Result, lvl int) Hand {
	positions := make([]grid.Position, len(res.Matching))
	for i, idx := range res.Matching {
		positions[i] = cand.Positions[idx]
	}
	return Hand{
		Category:    res.Category,
		Orientation: cand.Orientation,
		BaseScore:   res.Score,
		Awarded:     level.Award(res.Score, lvl),
		Positions:   positions,
		Result:      res,
	}
}

// Message is the line shown to the player, e.g. "Full House: 300 points!".
func (h Hand) Message() string {
	return fmt.Sprintf("%s: %d points!", h.Category, h.Awarded)
}

// Pass is one Resolving/Settling round.
type Pass struct {
	Hands []Hand
	// Cleared are detected hands that no longer count but were removed
	// anyway under level.Clear.
	Cleared []Hand
	// Removed is the union of the cells of Hands and Cleared, in the order
	// they were first claimed.
	Removed []grid.Position
	Score   int
}

// Report sums up a whole cascade.
type Report struct {
	Passes []Pass
}

// Score is the total awarded across all passes.
func (r Report) Score() int {
	total := 0
	for _, p := range r.Passes {
		total += p.Score
	}
	return total
}

// Hands lists the scored hands of every pass in order.
func (r Report) Hands() []Hand {
	var out []Hand
	for _, p := range r.Passes {
		out = append(out, p.Hands...)
	}
	return out
}

// Removed is the number of cells cleared across all passes.
func (r Report) Removed() int {
	n := 0
	for _, p := range r.Passes {
		n += len(p.Removed)
	}
	return n
}

// Empty reports whether the cascade left the board untouched.
func (r Report) Empty() bool {
	return len(r.Passes) == 0
}
