package cascade

import (
	"log/slog"

	"github.com/luca-patrignani/cardtris/domain/card"
	"github.com/luca-patrignani/cardtris/domain/grid"
	"github.com/luca-patrignani/cardtris/domain/level"
	"github.com/luca-patrignani/cardtris/domain/poker"
)

// State is the phase the controller is in.
type State int

const (
	Idle State = iota
	Resolving
	Settling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Resolving:
		return "Resolving"
	case Settling:
		return "Settling"
	}
	return "Unknown"
}

// Returner takes back the cards that leave the board. *deck.Supply
// implements it.
type Returner interface {
	Return(cards ...card.Card)
}

// Controller resolves the board after a card locks: it scores every valid
// hand, removes the cards that made them, lets the rest fall and starts
// over until a pass finds nothing to remove.
type Controller struct {
	grid     *grid.Grid
	supply   Returner
	policy   level.InvalidHandPolicy
	logger   *slog.Logger
	onChange func(from, to State)
	state    State
}

type option func(Controller) Controller

// WithPolicy sets what happens to hands that no longer count. The default
// is level.Keep.
func WithPolicy(p level.InvalidHandPolicy) option {
	return func(c Controller) Controller {
		c.policy = p
		return c
	}
}

func WithLogger(l *slog.Logger) option {
	return func(c Controller) Controller {
		c.logger = l
		return c
	}
}

// WithTransitionHook registers fn to be called on every state change.
func WithTransitionHook(fn func(from, to State)) option {
	return func(c Controller) Controller {
		c.onChange = fn
		return c
	}
}

func New(g *grid.Grid, supply Returner, opts ...option) *Controller {
	c := Controller{
		grid:   g,
		supply: supply,
		policy: level.Keep,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		c = opt(c)
	}
	return &c
}

// State returns the current phase. Outside of Resolve it is always Idle.
func (c *Controller) State() State {
	return c.state
}

// Resolve runs the cascade to its fixed point at the given level and
// reports every pass that removed cards. Each valid hand scores in full
// even when it shares cells with another one; shared cells are removed
// once. A board with nothing to remove stays Idle.
func (c *Controller) Resolve(lvl int) Report {
	var report Report
	pass := c.scan(lvl)
	if len(pass.Removed) == 0 {
		return report
	}
	c.transition(Resolving)
	for len(pass.Removed) > 0 {
		c.logger.Debug("cascade pass",
			"pass", len(report.Passes)+1,
			"hands", len(pass.Hands),
			"cleared", len(pass.Cleared),
			"score", pass.Score,
			"removed", len(pass.Removed))

		returned := make([]card.Card, 0, len(pass.Removed))
		for _, p := range pass.Removed {
			if cd, ok := c.grid.At(p.X, p.Y); ok {
				returned = append(returned, cd)
			}
		}
		c.supply.Return(returned...)

		c.transition(Settling)
		c.grid.RemoveCards(pass.Removed)
		report.Passes = append(report.Passes, pass)
		c.transition(Resolving)
		pass = c.scan(lvl)
	}
	c.transition(Idle)
	return report
}

// scan evaluates every candidate on the board and collects the cells to
// remove. It does not change the board.
func (c *Controller) scan(lvl int) Pass {
	var pass Pass
	seen := make(map[grid.Position]bool)
	claim := func(positions []grid.Position) {
		for _, p := range positions {
			if !seen[p] {
				seen[p] = true
				pass.Removed = append(pass.Removed, p)
			}
		}
	}

	for _, cand := range c.grid.ScanForHands() {
		res := poker.Evaluate(cand.Cards)
		if res.Category == poker.NoHand {
			continue
		}
		h := newHand(cand, res, lvl)
		switch {
		case level.IsHandValid(res.Category, lvl):
			pass.Hands = append(pass.Hands, h)
			pass.Score += h.Awarded
			claim(h.Positions)
		case c.policy == level.Clear:
			h.Awarded = 0
			pass.Cleared = append(pass.Cleared, h)
			claim(h.Positions)
		}
	}
	return pass
}

func (c *Controller) transition(to State) {
	from := c.state
	if from == to {
		return
	}
	c.state = to
	if c.onChange != nil {
		c.onChange(from, to)
	}
}
