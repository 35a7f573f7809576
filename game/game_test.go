package game

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/luca-patrignani/cardtris/config"
	"github.com/luca-patrignani/cardtris/domain/card"
	"github.com/luca-patrignani/cardtris/domain/cascade"
	"github.com/luca-patrignani/cardtris/domain/grid"
	"github.com/luca-patrignani/cardtris/domain/poker"
)

// noShuffle keeps the supply in its built order, so the jokers come out
// first, then K♠, Q♠, J♠ and so on.
type noShuffle struct{}

func (noShuffle) Shuffle(int, func(i, j int)) {}

func newGame(t *testing.T, cfg config.Config, opts ...option) *Game {
	t.Helper()
	g, err := New(cfg, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func assertClosed(t *testing.T, g *Game) {
	t.Helper()
	inFlight := 2
	total := g.supply.Len() + g.grid.Count() + inFlight
	if total != g.supply.Composition() {
		t.Fatalf("%d cards in circulation, expected %d", total, g.supply.Composition())
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.BoardWidth = 4
	if _, err := New(cfg); !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestStartSpawnsAtTop(t *testing.T) {
	g := newGame(t, config.Default(), WithShuffler(noShuffle{}))
	if s := g.Snapshot(); s.Falling != nil {
		t.Fatal("expected no falling piece before Start")
	}
	g.Start()
	s := g.Snapshot()
	if s.Falling == nil {
		t.Fatal("expected a falling piece")
	}
	if s.Falling.Position != (grid.Position{X: 2, Y: 0}) {
		t.Fatalf("expected spawn at (2,0), got %v", s.Falling.Position)
	}
	if !s.Falling.Card.IsWildcard() || !s.Next.IsWildcard() {
		t.Fatalf("expected two jokers first, got %v and %v", s.Falling.Card, s.Next)
	}
	if s.Level != 1 || s.Score != 0 {
		t.Fatalf("expected level 1 and no score, got %d and %d", s.Level, s.Score)
	}
	assertClosed(t, g)
}

func TestTickFallsAndLocks(t *testing.T) {
	g := newGame(t, config.Default(), WithShuffler(noShuffle{}))
	g.Start()
	first := g.current.Card
	for i := 0; i < 9; i++ {
		if !g.Tick() {
			t.Fatalf("tick %d had no effect", i)
		}
	}
	if g.current.Position.Y != 9 {
		t.Fatalf("expected the piece on the floor, got %v", g.current.Position)
	}
	g.Tick()
	if c, ok := g.grid.At(2, 9); !ok || c != first {
		t.Fatalf("expected %v locked at (2,9), got %v", first, c)
	}
	if g.current.Position != (grid.Position{X: 2, Y: 0}) {
		t.Fatalf("expected a new piece at the top, got %v", g.current.Position)
	}
	assertClosed(t, g)
}

func TestLockNowSettlesPiece(t *testing.T) {
	g := newGame(t, config.Default(), WithShuffler(noShuffle{}))
	g.Start()
	g.grid.PlaceCard(card.NewBlocker(), 2, 9)
	first := g.current.Card
	g.Tick()
	g.Tick()
	if !g.LockNow() {
		t.Fatal("expected the lock to happen")
	}
	if _, ok := g.grid.At(2, 2); ok {
		t.Fatal("expected no card left in mid-air")
	}
	if c, ok := g.grid.At(2, 8); !ok || c != first {
		t.Fatalf("expected %v resting on the blocker at (2,8), got %v", first, c)
	}
}

func TestMoves(t *testing.T) {
	g := newGame(t, config.Default(), WithShuffler(noShuffle{}))
	g.Start()
	if !g.MoveLeft() || !g.MoveLeft() {
		t.Fatal("expected two moves left")
	}
	if g.MoveLeft() {
		t.Fatal("expected the left wall to stop the piece")
	}
	for i := 0; i < 4; i++ {
		g.MoveRight()
	}
	if g.current.Position.X != 4 || g.MoveRight() {
		t.Fatalf("expected the right wall to stop the piece at 4, got %v", g.current.Position)
	}

	g.grid.PlaceCard(card.NewBlocker(), 3, 0)
	if g.MoveLeft() {
		t.Fatal("expected an occupied cell to stop the piece")
	}
}

func TestDropToColumn(t *testing.T) {
	g := newGame(t, config.Default(), WithShuffler(noShuffle{}))
	g.Start()
	if !g.DropToColumn(0) {
		t.Fatal("expected the drop to happen")
	}
	if _, ok := g.grid.At(0, 9); !ok {
		t.Fatal("expected a card at (0,9)")
	}
	if g.DropToColumn(7) {
		t.Fatal("expected an out of range column to be ignored")
	}

	// a wall at (3,0) keeps the piece from sliding past it
	g.grid.PlaceCard(card.NewBlocker(), 3, 0)
	g.DropToColumn(4)
	if _, ok := g.grid.At(2, 9); !ok {
		t.Fatal("expected the piece to drop in column 2")
	}
}

func TestIntentsIgnoredWhilePaused(t *testing.T) {
	g := newGame(t, config.Default(), WithShuffler(noShuffle{}))
	if g.TogglePause() {
		t.Fatal("expected pause to be ignored before Start")
	}
	g.Start()
	if !g.TogglePause() {
		t.Fatal("expected the game to be paused")
	}
	before := g.Snapshot()
	intents := map[string]func() bool{
		"MoveLeft":     g.MoveLeft,
		"MoveRight":    g.MoveRight,
		"DropToColumn": func() bool { return g.DropToColumn(0) },
		"DropToBottom": g.DropToBottom,
		"LockNow":      g.LockNow,
		"Tick":         g.Tick,
	}
	for name, intent := range intents {
		if intent() {
			t.Fatalf("%s was applied while paused", name)
		}
	}
	if g.Advance(time.Hour) != 0 {
		t.Fatal("expected no ticks while paused")
	}
	after := g.Snapshot()
	if *after.Falling != *before.Falling || g.grid.Count() != 0 {
		t.Fatal("expected nothing to change while paused")
	}
	if g.TogglePause() {
		t.Fatal("expected the game to resume")
	}
	if !g.MoveLeft() {
		t.Fatal("expected moves to work again")
	}
}

func TestAdvanceUsesDropInterval(t *testing.T) {
	g := newGame(t, config.Default(), WithShuffler(noShuffle{}))
	g.Start()
	// the first piece is a joker, falling every 250ms
	if g.DropInterval() != 250*time.Millisecond {
		t.Fatalf("expected 250ms for a joker, got %v", g.DropInterval())
	}
	if n := g.Advance(600 * time.Millisecond); n != 2 {
		t.Fatalf("expected 2 ticks, got %d", n)
	}
	if n := g.Advance(150 * time.Millisecond); n != 1 {
		t.Fatalf("expected the leftover 100ms to count, got %d ticks", n)
	}
	if g.current.Position.Y != 3 {
		t.Fatalf("expected row 3, got %d", g.current.Position.Y)
	}
}

func TestLockScoresRoyalFlush(t *testing.T) {
	var reports []cascade.Report
	g := newGame(t, config.Default(),
		WithShuffler(noShuffle{}),
		WithCascadeHook(func(r cascade.Report) { reports = append(reports, r) }))
	g.Start()
	// ★ ★ K♠ Q♠ J♠ along the floor
	for x := 0; x < 5; x++ {
		g.DropToColumn(x)
	}
	if g.Score() != 2000 {
		t.Fatalf("expected a Royal Flush worth 2000, got %d", g.Score())
	}
	if len(reports) != 1 || reports[0].Hands()[0].Category != poker.RoyalFlush {
		t.Fatalf("expected one Royal Flush report, got %+v", reports)
	}
	if g.grid.Count() != 0 {
		t.Fatalf("expected an empty board, got %d cards", g.grid.Count())
	}
	assertClosed(t, g)
}

func TestLevelAdvance(t *testing.T) {
	cfg := config.Default()
	cfg.CardsPerLevel = 3
	g := newGame(t, cfg, WithShuffler(noShuffle{}))
	g.Start()
	if g.Level() != 1 {
		t.Fatalf("expected level 1 after two draws, got %d", g.Level())
	}
	g.DropToBottom()
	if g.Level() != 2 {
		t.Fatalf("expected level 2 after three draws, got %d", g.Level())
	}
	if g.supply.Composition() != 52+2*2 {
		t.Fatalf("expected two more jokers, got composition %d", g.supply.Composition())
	}
	assertClosed(t, g)
}

func TestGameOverOnBlockedSpawn(t *testing.T) {
	cfg := config.Default()
	cfg.BoardHeight = 5
	final := -1
	g := newGame(t, cfg, WithShuffler(noShuffle{}), WithGameOverHook(func(score int) { final = score }))
	g.Start()
	for y := 1; y < 5; y++ {
		g.grid.PlaceCard(card.NewBlocker(), 2, y)
	}
	g.DropToBottom()
	if !g.Over() {
		t.Fatal("expected the game to be over")
	}
	if final != 0 {
		t.Fatalf("expected the hook to get score 0, got %d", final)
	}
	if g.Snapshot().Falling != nil {
		t.Fatal("expected no falling piece after game over")
	}
	if g.MoveLeft() || g.Tick() || g.DropToBottom() || g.TogglePause() {
		t.Fatal("expected intents to be ignored after game over")
	}
}

func TestCardsStayInCirculation(t *testing.T) {
	r := rand.New(rand.NewSource(41))
	g := newGame(t, config.Default(), WithShuffler(rand.New(rand.NewSource(43))))
	g.Start()
	for i := 0; i < 400 && !g.Over(); i++ {
		switch r.Intn(4) {
		case 0:
			g.MoveLeft()
		case 1:
			g.MoveRight()
		case 2:
			g.Tick()
		default:
			g.DropToColumn(r.Intn(5))
		}
		assertClosed(t, g)
	}
}
