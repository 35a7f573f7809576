package grid

import "github.com/luca-patrignani/cardtris/domain/card"

// RunLength is the number of contiguous cards that form a hand.
const RunLength = 5

type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// Candidate is a full run of five occupied cells in one row or column,
// ordered left to right or top to bottom.
type Candidate struct {
	Orientation Orientation
	Positions   [RunLength]Position
	Cards       [RunLength]card.Card
}

// Contains reports whether p is one of the candidate's cells.
func (c Candidate) Contains(p Position) bool {
	for _, q := range c.Positions {
		if q == p {
			return true
		}
	}
	return false
}

// ScanForHands returns every run of five occupied cells, rows first (top to
// bottom, left to right) then columns. Runs that contain a Blocker are
// skipped. Overlapping runs are all returned.
func (g *Grid) ScanForHands() []Candidate {
	var out []Candidate
	for y := 0; y < g.height; y++ {
		for x := 0; x+RunLength-1 < g.width; x++ {
			if c, ok := g.run(x, y, Horizontal); ok {
				out = append(out, c)
			}
		}
	}
	for x := 0; x < g.width; x++ {
		for y := 0; y+RunLength-1 < g.height; y++ {
			if c, ok := g.run(x, y, Vertical); ok {
				out = append(out, c)
			}
		}
	}
	return out
}

// ScanThrough returns only the runs that pass through p, in the same order
// ScanForHands would report them. After a single placement at p these are
// the only runs that placement can have created.
func (g *Grid) ScanThrough(p Position) []Candidate {
	if !g.inBounds(p.X, p.Y) {
		return nil
	}
	var out []Candidate
	for x := max(0, p.X-RunLength+1); x <= p.X && x+RunLength-1 < g.width; x++ {
		if c, ok := g.run(x, p.Y, Horizontal); ok {
			out = append(out, c)
		}
	}
	for y := max(0, p.Y-RunLength+1); y <= p.Y && y+RunLength-1 < g.height; y++ {
		if c, ok := g.run(p.X, y, Vertical); ok {
			out = append(out, c)
		}
	}
	return out
}

// run builds the candidate starting at (x, y). ok is false when a cell is
// empty or holds a Blocker.
func (g *Grid) run(x, y int, o Orientation) (Candidate, bool) {
	c := Candidate{Orientation: o}
	for i := 0; i < RunLength; i++ {
		px, py := x, y
		if o == Horizontal {
			px += i
		} else {
			py += i
		}
		cd := g.cells[py][px]
		if cd.IsZero() || cd.IsBlocker() {
			return Candidate{}, false
		}
		c.Positions[i] = Position{X: px, Y: py}
		c.Cards[i] = cd
	}
	return c, true
}
