package grid

import (
	"fmt"

	"github.com/luca-patrignani/cardtris/domain/card"
)

// Position addresses a cell. X is the column, Y the row; row 0 is the spawn
// row at the top and row Height-1 is the floor.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Grid is a fixed-size board of cells, each empty or holding one card.
// Empty cells hold the zero card.
type Grid struct {
	width  int
	height int
	cells  [][]card.Card // [y][x]
}

// New returns an empty width x height grid.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", width, height)
	}
	cells := make([][]card.Card, height)
	for y := range cells {
		cells[y] = make([]card.Card, width)
	}
	return &Grid{width: width, height: height, cells: cells}, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// IsValidPosition reports whether (x, y) is on the board and empty.
func (g *Grid) IsValidPosition(x, y int) bool {
	return g.inBounds(x, y) && g.cells[y][x].IsZero()
}

// PlaceCard puts c at (x, y) if the position is valid. It is a no-op
// returning false otherwise.
func (g *Grid) PlaceCard(c card.Card, x, y int) bool {
	if c.IsZero() || !g.IsValidPosition(x, y) {
		return false
	}
	g.cells[y][x] = c
	return true
}

// At returns the card at (x, y) and whether the cell is occupied.
func (g *Grid) At(x, y int) (card.Card, bool) {
	if !g.inBounds(x, y) {
		return card.Card{}, false
	}
	c := g.cells[y][x]
	return c, !c.IsZero()
}

// RemoveCards clears every listed cell, then settles the board. Empty or
// out-of-bounds positions are skipped. It reports whether gravity moved
// any card.
func (g *Grid) RemoveCards(positions []Position) bool {
	for _, p := range positions {
		if g.inBounds(p.X, p.Y) {
			g.cells[p.Y][p.X] = card.Card{}
		}
	}
	return g.ApplyGravity()
}

// ApplyGravity compacts every column downward, keeping the top-to-bottom
// order of its cards. A column holding k cards ends up with them in rows
// Height-k .. Height-1. It reports whether any card moved.
func (g *Grid) ApplyGravity() bool {
	moved := false
	for x := 0; x < g.width; x++ {
		write := g.height - 1
		for y := g.height - 1; y >= 0; y-- {
			c := g.cells[y][x]
			if c.IsZero() {
				continue
			}
			if y != write {
				g.cells[write][x] = c
				g.cells[y][x] = card.Card{}
				moved = true
			}
			write--
		}
	}
	return moved
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	n := 0
	for _, row := range g.cells {
		for _, c := range row {
			if !c.IsZero() {
				n++
			}
		}
	}
	return n
}

// Snapshot is a read-only copy of the cells, indexed [y][x]. Empty cells hold
// the zero card.
type Snapshot [][]card.Card

// Snapshot copies the current cells for a renderer.
func (g *Grid) Snapshot() Snapshot {
	out := make(Snapshot, g.height)
	for y, row := range g.cells {
		out[y] = append([]card.Card(nil), row...)
	}
	return out
}
