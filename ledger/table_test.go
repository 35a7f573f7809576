package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedClock() func() time.Time {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
}

func newTable(t *testing.T, store Store, size int) *Table {
	t.Helper()
	table, err := NewTable(context.Background(), store, size, WithClock(fixedClock()))
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func add(t *testing.T, table *Table, initials string, score int) (Entry, bool) {
	t.Helper()
	e, ok, err := table.Add(context.Background(), initials, score)
	if err != nil {
		t.Fatal(err)
	}
	return e, ok
}

func TestIsHighScore(t *testing.T) {
	table := newTable(t, &MemoryStore{}, 2)
	if !table.IsHighScore(0) {
		t.Fatal("expected any score to enter an empty table")
	}
	add(t, table, "AAA", 100)
	add(t, table, "BBB", 50)
	if table.IsHighScore(50) {
		t.Fatal("expected a tie with the last entry not to enter a full table")
	}
	if !table.IsHighScore(51) {
		t.Fatal("expected 51 to beat the last entry")
	}
}

func TestAddKeepsBestSorted(t *testing.T) {
	table := newTable(t, &MemoryStore{}, 3)
	add(t, table, "aaa", 100)
	add(t, table, "BBB", 300)
	add(t, table, "CCC", 100)
	add(t, table, "DDD", 200)
	if _, ok := add(t, table, "EEE", 10); ok {
		t.Fatal("expected 10 to miss a full table")
	}

	entries := table.Entries()
	want := []struct {
		initials string
		score    int
	}{{"BBB", 300}, {"DDD", 200}, {"AAA", 100}}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, w := range want {
		if entries[i].Initials != w.initials || entries[i].Score != w.score {
			t.Fatalf("entry %d: expected %s %d, got %s %d", i, w.initials, w.score, entries[i].Initials, entries[i].Score)
		}
		if entries[i].Index != i {
			t.Fatalf("entry %d has index %d", i, entries[i].Index)
		}
	}
	if err := table.Verify(); err != nil {
		t.Fatalf("expected a valid chain, got %v", err)
	}
}

func TestAddTieKeepsInsertionOrder(t *testing.T) {
	table := newTable(t, &MemoryStore{}, 5)
	add(t, table, "FST", 100)
	add(t, table, "SND", 100)
	add(t, table, "TOP", 200)
	add(t, table, "TRD", 100)
	entries := table.Entries()
	got := []string{entries[0].Initials, entries[1].Initials, entries[2].Initials, entries[3].Initials}
	want := []string{"TOP", "FST", "SND", "TRD"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestAddRejectsInitials(t *testing.T) {
	table := newTable(t, &MemoryStore{}, 5)
	for _, initials := range []string{"", "AB", "ABCD", "A1C", "A C", "ÀBC"} {
		if _, _, err := table.Add(context.Background(), initials, 10); !errors.Is(err, ErrInvalidInitials) {
			t.Fatalf("%q: expected ErrInvalidInitials, got %v", initials, err)
		}
	}
	if len(table.Entries()) != 0 {
		t.Fatal("expected rejected initials to leave the table empty")
	}
}

func TestFileStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	table := newTable(t, NewFileStore(path), 5)
	add(t, table, "abc", 1150)
	add(t, table, "XYZ", 2000)

	reloaded := newTable(t, NewFileStore(path), 5)
	entries := reloaded.Entries()
	if len(entries) != 2 || entries[0].Initials != "XYZ" || entries[1].Initials != "ABC" {
		t.Fatalf("unexpected entries after reload: %+v", entries)
	}
	if !entries[0].Date.Equal(table.Entries()[0].Date) {
		t.Fatalf("expected dates to survive, got %v", entries[0].Date)
	}
	// insertion order continues after a reload
	add(t, reloaded, "NEW", 1150)
	if got := reloaded.Entries()[2].Initials; got != "NEW" {
		t.Fatalf("expected the later tie last, got %s", got)
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	table := newTable(t, NewFileStore(filepath.Join(t.TempDir(), "none.json")), 5)
	if len(table.Entries()) != 0 {
		t.Fatal("expected an empty table")
	}
}

func TestTamperedTableIsRefused(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	table := newTable(t, NewFileStore(path), 5)
	add(t, table, "AAA", 100)
	add(t, table, "BBB", 50)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatal(err)
	}
	entries[1].Score = 99
	data, _ = json.Marshal(entries)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewTable(context.Background(), NewFileStore(path), 5); !errors.Is(err, ErrBrokenChain) {
		t.Fatalf("expected ErrBrokenChain, got %v", err)
	}
}

func TestNewTableTruncates(t *testing.T) {
	store := &MemoryStore{}
	big := newTable(t, store, 5)
	for _, s := range []int{500, 400, 300, 200, 100} {
		add(t, big, "ABC", s)
	}
	small := newTable(t, store, 3)
	if n := len(small.Entries()); n != 3 {
		t.Fatalf("expected 3 entries, got %d", n)
	}
	if err := small.Verify(); err != nil {
		t.Fatal(err)
	}
}
