// Package game runs one play session: it spawns the falling card, applies
// player intents, advances the piece on the drop cadence and hands every
// lock to the cascade controller.
//
// A Game is owned by a single loop and is not safe for concurrent use.
package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/luca-patrignani/cardtris/config"
	"github.com/luca-patrignani/cardtris/domain/card"
	"github.com/luca-patrignani/cardtris/domain/cascade"
	"github.com/luca-patrignani/cardtris/domain/deck"
	"github.com/luca-patrignani/cardtris/domain/grid"
	"github.com/luca-patrignani/cardtris/domain/level"
)

// Piece is the card currently falling and where it is.
type Piece struct {
	Card     card.Card
	Position grid.Position
}

type Game struct {
	cfg      config.Config
	grid     *grid.Grid
	supply   *deck.Supply
	cascade  *cascade.Controller
	logger   *slog.Logger
	shuffler deck.Shuffler

	onGameOver func(score int)
	onCascade  func(cascade.Report)

	current Piece
	next    card.Card
	drawn   int
	score   int
	elapsed time.Duration

	started bool
	paused  bool
	over    bool
}

type option func(Game) Game

func WithLogger(l *slog.Logger) option {
	return func(g Game) Game {
		g.logger = l
		return g
	}
}

// WithShuffler replaces the supply's default shuffler.
func WithShuffler(s deck.Shuffler) option {
	return func(g Game) Game {
		g.shuffler = s
		return g
	}
}

// WithGameOverHook registers fn to receive the final score.
func WithGameOverHook(fn func(score int)) option {
	return func(g Game) Game {
		g.onGameOver = fn
		return g
	}
}

// WithCascadeHook registers fn to receive the report of every lock that
// removed cards.
func WithCascadeHook(fn func(cascade.Report)) option {
	return func(g Game) Game {
		g.onCascade = fn
		return g
	}
}

// New validates cfg and sets up an empty board at level 1. Call Start to
// spawn the first card.
func New(cfg config.Config, opts ...option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := Game{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		g = opt(g)
	}

	var err error
	g.grid, err = grid.New(cfg.BoardWidth, cfg.BoardHeight)
	if err != nil {
		return nil, fmt.Errorf("creating board: %w", err)
	}
	supplyOpts := []deck.Option{
		deck.WithWildcardsPerLevel(cfg.WildcardsPerLevel),
		deck.WithBlockers(cfg.BlockerCardsEnabled),
	}
	if g.shuffler != nil {
		supplyOpts = append(supplyOpts, deck.WithShuffler(g.shuffler))
	}
	g.supply, err = deck.NewSupply(1, supplyOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating supply: %w", err)
	}
	g.cascade = cascade.New(g.grid, g.supply,
		cascade.WithPolicy(cfg.InvalidHands),
		cascade.WithLogger(g.logger))
	return &g, nil
}

// Start draws the preview card and spawns the first piece. Calling it
// again has no effect.
func (g *Game) Start() {
	if g.started {
		return
	}
	g.started = true
	g.next = g.draw()
	g.spawn()
	g.logger.Info("game started",
		"width", g.cfg.BoardWidth,
		"height", g.cfg.BoardHeight,
		"level", g.Level())
}

// active reports whether the piece may move.
func (g *Game) active() bool {
	return g.started && !g.paused && !g.over
}

// MoveLeft shifts the piece one column left if that cell is free.
func (g *Game) MoveLeft() bool {
	return g.shift(-1)
}

// MoveRight shifts the piece one column right if that cell is free.
func (g *Game) MoveRight() bool {
	return g.shift(1)
}

func (g *Game) shift(dx int) bool {
	if !g.active() {
		return false
	}
	p := g.current.Position
	if !g.grid.IsValidPosition(p.X+dx, p.Y) {
		return false
	}
	g.current.Position.X += dx
	return true
}

// DropToColumn slides the piece toward column x for as long as the way is
// free, then drops and locks it.
func (g *Game) DropToColumn(x int) bool {
	if !g.active() || x < 0 || x >= g.grid.Width() {
		return false
	}
	for g.current.Position.X < x && g.shift(1) {
	}
	for g.current.Position.X > x && g.shift(-1) {
	}
	return g.DropToBottom()
}

// DropToBottom drops the piece as far as it goes in its column and locks it.
func (g *Game) DropToBottom() bool {
	if !g.active() {
		return false
	}
	for g.grid.IsValidPosition(g.current.Position.X, g.current.Position.Y+1) {
		g.current.Position.Y++
	}
	g.lock()
	return true
}

// LockNow ends the fall at once. Like any locked card, the piece settles
// onto whatever is below it in its column.
func (g *Game) LockNow() bool {
	if !g.active() {
		return false
	}
	g.lock()
	return true
}

// TogglePause pauses or resumes the game and returns the new paused state.
// It has no effect before Start or after the game is over.
func (g *Game) TogglePause() bool {
	if !g.started || g.over {
		return g.paused
	}
	g.paused = !g.paused
	g.elapsed = 0
	return g.paused
}

// Tick performs one gravity step of the falling piece: it moves down one
// row, or locks when it cannot.
func (g *Game) Tick() bool {
	if !g.active() {
		return false
	}
	p := g.current.Position
	if g.grid.IsValidPosition(p.X, p.Y+1) {
		g.current.Position.Y++
		return true
	}
	g.lock()
	return true
}

// Advance feeds elapsed host time to the game and performs one Tick per
// drop interval that has passed. It returns the number of ticks.
func (g *Game) Advance(elapsed time.Duration) int {
	if !g.active() {
		return 0
	}
	g.elapsed += elapsed
	ticks := 0
	for g.active() {
		interval := g.DropInterval()
		if g.elapsed < interval {
			break
		}
		g.elapsed -= interval
		g.Tick()
		ticks++
	}
	return ticks
}

// DropInterval is the current wait between two steps of the falling piece.
func (g *Game) DropInterval() time.Duration {
	return level.DropInterval(g.Level(), g.current.Card.IsWildcard(),
		g.cfg.BaseDropInterval, g.cfg.MinDropInterval)
}

func (g *Game) lock() {
	p := g.current.Position
	for g.grid.IsValidPosition(p.X, p.Y+1) {
		p.Y++
	}
	if !g.grid.PlaceCard(g.current.Card, p.X, p.Y) {
		g.endGame()
		return
	}
	g.elapsed = 0
	// The board held no removable hand before this lock and the new card
	// rests on the stack, so only a run through it can start a cascade.
	if len(g.grid.ScanThrough(p)) == 0 {
		g.spawn()
		return
	}
	report := g.cascade.Resolve(g.Level())
	if !report.Empty() {
		g.score += report.Score()
		g.logger.Info("hands scored",
			"hands", len(report.Hands()),
			"passes", len(report.Passes),
			"points", report.Score(),
			"score", g.score)
		if g.onCascade != nil {
			g.onCascade(report)
		}
	}
	g.spawn()
}

// spawn promotes the preview card to the falling piece at the top of the
// middle column. A blocked spawn cell ends the game.
func (g *Game) spawn() {
	g.current = Piece{
		Card:     g.next,
		Position: grid.Position{X: g.grid.Width() / 2, Y: 0},
	}
	g.next = g.draw()
	if !g.grid.IsValidPosition(g.current.Position.X, g.current.Position.Y) {
		g.endGame()
	}
}

// draw takes a card from the supply and moves to the next level every
// CardsPerLevel draws.
func (g *Game) draw() card.Card {
	c := g.supply.Draw()
	g.drawn++
	if g.drawn >= g.cfg.CardsPerLevel {
		g.drawn = 0
		g.supply.AdvanceLevel(g.supply.Level() + 1)
		g.logger.Info("level up", "level", g.Level(), "cards", g.supply.Composition())
	}
	return c
}

func (g *Game) endGame() {
	if g.over {
		return
	}
	g.over = true
	g.logger.Info("game over", "score", g.score, "level", g.Level())
	if g.onGameOver != nil {
		g.onGameOver(g.score)
	}
}

func (g *Game) Score() int {
	return g.score
}

func (g *Game) Level() int {
	return g.supply.Level()
}

func (g *Game) Over() bool {
	return g.over
}

func (g *Game) Paused() bool {
	return g.paused
}
