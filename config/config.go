// Package config holds the options a game is started with. Values come from
// Default, optionally overridden by .env files and CARDTRIS_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/luca-patrignani/cardtris/domain/level"
)

// ErrInvalidConfig wraps every validation and parsing failure.
var ErrInvalidConfig = errors.New("invalid configuration")

const prefix = "CARDTRIS_"

type Config struct {
	BoardWidth          int
	BoardHeight         int
	BaseDropInterval    time.Duration
	MinDropInterval     time.Duration
	WildcardsPerLevel   int
	CardsPerLevel       int
	BlockerCardsEnabled bool
	InvalidHands        level.InvalidHandPolicy

	// HighScoreFile is where the high-score table is kept when no DSN is
	// given.
	HighScoreFile string
	// HighScoreDSN selects the PostgreSQL store.
	HighScoreDSN  string
	MaxHighScores int

	// Verbose lets game activity through to the terminal log.
	Verbose bool
}

// Default returns the classic 5x10 board setup.
func Default() Config {
	return Config{
		BoardWidth:          5,
		BoardHeight:         10,
		BaseDropInterval:    500 * time.Millisecond,
		MinDropInterval:     200 * time.Millisecond,
		WildcardsPerLevel:   2,
		CardsPerLevel:       52,
		BlockerCardsEnabled: false,
		InvalidHands:        level.Keep,
		HighScoreFile:       "cardtris-highscores.json",
		MaxHighScores:       5,
	}
}

// Load reads the given .env files (".env" when none is given, and then only
// if it exists), lets the process environment override them and applies
// the result over Default. The returned Config is validated.
func Load(files ...string) (Config, error) {
	fileValues, err := godotenv.Read(files...)
	if err != nil {
		if len(files) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("reading env files: %w", err)
		}
		fileValues = map[string]string{}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(prefix + key); ok {
			return v, true
		}
		v, ok := fileValues[prefix+key]
		return v, ok
	}

	cfg := Default()
	p := parser{lookup: lookup}
	p.intVar("BOARD_WIDTH", &cfg.BoardWidth)
	p.intVar("BOARD_HEIGHT", &cfg.BoardHeight)
	p.millisVar("BASE_DROP_INTERVAL_MS", &cfg.BaseDropInterval)
	p.millisVar("MIN_DROP_INTERVAL_MS", &cfg.MinDropInterval)
	p.intVar("WILDCARDS_PER_LEVEL", &cfg.WildcardsPerLevel)
	p.intVar("CARDS_PER_LEVEL", &cfg.CardsPerLevel)
	p.boolVar("BLOCKER_CARDS", &cfg.BlockerCardsEnabled)
	p.policyVar("INVALID_HANDS", &cfg.InvalidHands)
	p.stringVar("HIGHSCORE_FILE", &cfg.HighScoreFile)
	p.stringVar("HIGHSCORE_DSN", &cfg.HighScoreDSN)
	p.intVar("MAX_HIGHSCORES", &cfg.MaxHighScores)
	p.boolVar("VERBOSE", &cfg.Verbose)
	if p.err != nil {
		return Config{}, p.err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the game cannot run with.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}
	check(c.BoardWidth >= 5, "board width %d is less than 5, no run of five fits", c.BoardWidth)
	check(c.BoardHeight >= 5, "board height %d is less than 5", c.BoardHeight)
	check(c.MinDropInterval > 0, "minimum drop interval %v must be positive", c.MinDropInterval)
	check(c.BaseDropInterval >= c.MinDropInterval, "base drop interval %v is below the minimum %v", c.BaseDropInterval, c.MinDropInterval)
	check(c.WildcardsPerLevel >= 0, "wildcards per level %d is negative", c.WildcardsPerLevel)
	check(c.CardsPerLevel >= 1, "cards per level %d must be at least 1", c.CardsPerLevel)
	check(c.InvalidHands == level.Keep || c.InvalidHands == level.Clear, "unknown invalid hand policy %v", c.InvalidHands)
	check(c.MaxHighScores >= 1, "max high scores %d must be at least 1", c.MaxHighScores)
	return errors.Join(errs...)
}

// parser records the first failure so Load can read every key in a row.
type parser struct {
	lookup func(string) (string, bool)
	err    error
}

func (p *parser) value(key string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	v, ok := p.lookup(key)
	return strings.TrimSpace(v), ok
}

func (p *parser) fail(key, v string, err error) {
	p.err = fmt.Errorf("%w: %s%s=%q: %v", ErrInvalidConfig, prefix, key, v, err)
}

func (p *parser) intVar(key string, dst *int) {
	v, ok := p.value(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = n
}

func (p *parser) millisVar(key string, dst *time.Duration) {
	var ms int
	p.intVar(key, &ms)
	if _, ok := p.lookup(key); ok && p.err == nil {
		*dst = time.Duration(ms) * time.Millisecond
	}
}

func (p *parser) boolVar(key string, dst *bool) {
	v, ok := p.value(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = b
}

func (p *parser) policyVar(key string, dst *level.InvalidHandPolicy) {
	v, ok := p.value(key)
	if !ok {
		return
	}
	pol, err := level.ParseInvalidHandPolicy(v)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = pol
}

func (p *parser) stringVar(key string, dst *string) {
	if v, ok := p.value(key); ok {
		*dst = v
	}
}
