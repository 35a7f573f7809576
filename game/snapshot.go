package game

import (
	"github.com/luca-patrignani/cardtris/domain/card"
	"github.com/luca-patrignani/cardtris/domain/grid"
)

// Snapshot is what a renderer needs to draw one frame. It shares nothing
// with the game.
type Snapshot struct {
	Cells grid.Snapshot
	// Falling is nil before Start and after the game is over.
	Falling *Piece
	Next    card.Card
	Score   int
	Level   int
	Paused  bool
	Over    bool
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Cells:  g.grid.Snapshot(),
		Next:   g.next,
		Score:  g.score,
		Level:  g.Level(),
		Paused: g.paused,
		Over:   g.over,
	}
	if g.started && !g.over {
		p := g.current
		s.Falling = &p
	}
	return s
}
