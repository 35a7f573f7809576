package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/luca-patrignani/cardtris/config"
	"github.com/luca-patrignani/cardtris/domain/cascade"
	"github.com/luca-patrignani/cardtris/game"
	"github.com/luca-patrignani/cardtris/ledger"
)

// frame is how often the board is redrawn and the game advanced.
const frame = 50 * time.Millisecond

func main() {
	// Create a new slog handler with the default PTerm logger
	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))

	cfg, err := config.Load(os.Args[1:]...)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("could not open the high-score store", "error", err)
		os.Exit(1)
	}
	defer closeStore()
	table, err := ledger.NewTable(ctx, store, cfg.MaxHighScores)
	if err != nil {
		logger.Error("could not load high scores", "error", err)
		os.Exit(1)
	}

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Card", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("tris", pterm.FgDarkGray.ToStyle()),
	).Render()
	pterm.Println(printHighScores(table.Entries()))

	for {
		score, quit, err := play(cfg)
		if err != nil {
			logger.Error("game failed", "error", err)
			os.Exit(1)
		}
		if !quit {
			record(ctx, table, score, logger)
		}
		pterm.Println(printHighScores(table.Entries()))
		again, _ := pterm.DefaultInteractiveConfirm.WithDefaultText("Play again?").WithDefaultValue(true).Show()
		if !again {
			return
		}
	}
}

// openStore picks PostgreSQL when a DSN is configured and the JSON file
// otherwise.
func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (ledger.Store, func(), error) {
	if cfg.HighScoreDSN == "" {
		logger.Debug("using high-score file", "path", cfg.HighScoreFile)
		return ledger.NewFileStore(cfg.HighScoreFile), func() {}, nil
	}
	pg, err := ledger.OpenPG(ctx, cfg.HighScoreDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pg.Migrate(ctx); err != nil {
		pg.Close()
		return nil, nil, fmt.Errorf("migrating high-score schema: %w", err)
	}
	return pg, pg.Close, nil
}

// play runs one game until it is over or the player quits, and returns the
// final score.
func play(cfg config.Config) (score int, quit bool, err error) {
	gameLogger := pterm.DefaultLogger.WithLevel(pterm.LogLevelWarn)
	if cfg.Verbose {
		gameLogger = pterm.DefaultLogger.WithLevel(pterm.LogLevelDebug)
	}

	var messages []string
	g, err := game.New(cfg,
		game.WithLogger(slog.New(pterm.NewSlogHandler(gameLogger))),
		game.WithCascadeHook(func(r cascade.Report) {
			messages = handMessages(r)
		}))
	if err != nil {
		return 0, false, err
	}

	commands := make(chan command, 16)
	var stop atomic.Bool
	done := make(chan error, 1)
	go func() {
		done <- listen(commands, &stop)
	}()

	area, err := pterm.DefaultArea.Start()
	if err != nil {
		return 0, false, err
	}
	g.Start()
	area.Update(printState(g.Snapshot(), messages))

	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	last := time.Now()
	for !g.Over() && !quit {
		select {
		case c, ok := <-commands:
			if !ok || !apply(g, c) {
				quit = true
			}
		case now := <-ticker.C:
			g.Advance(now.Sub(last))
			last = now
		}
		area.Update(printState(g.Snapshot(), messages))
	}
	stop.Store(true)
	area.Stop()

	if g.Over() {
		pterm.Info.Printfln("Game over! Final score: %d. Press any key to continue.", g.Score())
	}
	if err := <-done; err != nil {
		return g.Score(), quit, fmt.Errorf("reading keyboard: %w", err)
	}
	return g.Score(), quit, nil
}

// record asks for initials when score makes the table.
func record(ctx context.Context, table *ledger.Table, score int, logger *slog.Logger) {
	if !table.IsHighScore(score) {
		return
	}
	for {
		initials, _ := pterm.DefaultInteractiveTextInput.
			WithDefaultText("New high score! Enter your initials (3 letters)").
			Show()
		pterm.Println()
		_, _, err := table.Add(ctx, initials, score)
		switch {
		case errors.Is(err, ledger.ErrInvalidInitials):
			pterm.Error.Println(err.Error())
			continue
		case err != nil:
			logger.Error("could not save the high score", "error", err)
		default:
			pterm.Success.Printfln("Saved %d points", score)
		}
		return
	}
}
