package ledger

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

var (
	ErrInvalidInitials = errors.New("initials must be exactly three letters")
	ErrBrokenChain     = errors.New("high-score table has been tampered with")
)

// DefaultMaxEntries is the size of the table when none is given.
const DefaultMaxEntries = 5

// Store persists a whole table at once.
type Store interface {
	Load(ctx context.Context) ([]Entry, error)
	Save(ctx context.Context, entries []Entry) error
}

// Table is the in-memory high-score table backed by a Store.
type Table struct {
	mu      sync.RWMutex
	entries []Entry
	max     int
	seq     int64
	store   Store
	now     func() time.Time
}

type option func(*Table)

// WithClock sets the source of entry dates.
func WithClock(now func() time.Time) option {
	return func(t *Table) {
		t.now = now
	}
}

// NewTable loads the table from store and verifies it. A size below 1
// means DefaultMaxEntries.
func NewTable(ctx context.Context, store Store, size int, opts ...option) (*Table, error) {
	if size < 1 {
		size = DefaultMaxEntries
	}
	t := &Table{max: size, store: store, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	entries, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading high scores: %w", err)
	}
	if err := verify(entries); err != nil {
		return nil, err
	}
	for _, e := range entries {
		t.seq = max(t.seq, e.Seq+1)
	}
	if len(entries) > size {
		entries = entries[:size]
		chain(entries)
	}
	t.entries = entries
	return t, nil
}

// IsHighScore reports whether score would enter the table: the table is not
// full yet, or score beats the lowest entry.
func (t *Table) IsHighScore(score int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.isHighScore(score)
}

func (t *Table) isHighScore(score int) bool {
	return len(t.entries) < t.max || score > t.entries[len(t.entries)-1].Score
}

// Add records score under initials, keeps the best max entries and saves
// the table. It returns the stored entry and whether it made the table.
// Initials are upper-cased.
func (t *Table) Add(ctx context.Context, initials string, score int) (Entry, bool, error) {
	initials, err := normalizeInitials(initials)
	if err != nil {
		return Entry{}, false, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	e := Entry{
		Initials: initials,
		Score:    score,
		Date:     t.now().UTC().Truncate(time.Second),
		Seq:      t.seq,
	}
	if !t.isHighScore(score) {
		return e, false, nil
	}
	t.seq++

	entries := append(slices.Clone(t.entries), e)
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(entries) > t.max {
		entries = entries[:t.max]
	}
	chain(entries)

	if err := t.store.Save(ctx, entries); err != nil {
		return Entry{}, false, fmt.Errorf("saving high scores: %w", err)
	}
	t.entries = entries
	for _, stored := range entries {
		if stored.Seq == e.Seq {
			return stored, true, nil
		}
	}
	return e, false, nil
}

// Entries returns a copy of the table, best first.
func (t *Table) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.entries)
}

func (t *Table) Max() int {
	return t.max
}

// Verify checks the hash chain of the table in memory.
func (t *Table) Verify() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return verify(t.entries)
}

func normalizeInitials(s string) (string, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidInitials, s)
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%w: %q", ErrInvalidInitials, s)
		}
	}
	return s, nil
}
