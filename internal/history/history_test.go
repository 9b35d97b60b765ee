package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rnwolfe/lorefind/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := store.OpenPath(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s := NewStore(db.Conn())
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	s.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	}
	return s
}

func TestRecord_AssignsIDAndTime(t *testing.T) {
	s := newTestStore(t)

	e, err := s.Record(Entry{Query: "  lyra ", Source: "eldoria.json", Results: 2, Best: "Lyra the Bard"})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := uuid.Parse(e.ID); err != nil {
		t.Fatalf("expected a UUID id, got %q", e.ID)
	}
	if e.Query != "lyra" {
		t.Fatalf("query should be trimmed, got %q", e.Query)
	}
	if e.CreatedAt.IsZero() {
		t.Fatal("CreatedAt should be set")
	}

	got, err := s.Recent(0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 || got[0].ID != e.ID || got[0].Best != "Lyra the Bard" || got[0].Results != 2 {
		t.Fatalf("unexpected history: %+v", got)
	}
	if !got[0].CreatedAt.Equal(e.CreatedAt) {
		t.Fatalf("timestamp round-trip: want %v, got %v", e.CreatedAt, got[0].CreatedAt)
	}
}

func TestRecord_IgnoresBlankQuery(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Record(Entry{Query: "   "}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	got, _ := s.Recent(0)
	if len(got) != 0 {
		t.Fatalf("blank query should not be recorded, got %d rows", len(got))
	}
}

func TestRecent_NewestFirstWithLimit(t *testing.T) {
	s := newTestStore(t)
	for _, q := range []string{"one", "two", "three"} {
		if _, err := s.Record(Entry{Query: q}); err != nil {
			t.Fatalf("Record(%q): %v", q, err)
		}
	}

	if n, err := s.Count(); err != nil || n != 3 {
		t.Fatalf("Count = %d, %v; want 3", n, err)
	}

	got, err := s.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 || got[0].Query != "three" || got[1].Query != "two" {
		t.Fatalf("expected [three two], got %+v", got)
	}
}

func TestTop_GroupsCaseInsensitively(t *testing.T) {
	s := newTestStore(t)
	for _, q := range []string{"Lyra", "ironhold", "lyra", "LYRA", "ironhold", "road"} {
		if _, err := s.Record(Entry{Query: q}); err != nil {
			t.Fatalf("Record(%q): %v", q, err)
		}
	}

	got, err := s.Top(2)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %+v", got)
	}
	if got[0].Count != 3 || got[0].Query != "LYRA" {
		t.Fatalf("expected LYRA x3 first, got %+v", got[0])
	}
	if got[1].Count != 2 || got[1].Query != "ironhold" {
		t.Fatalf("expected ironhold x2 second, got %+v", got[1])
	}
}

func TestPruneAndClear(t *testing.T) {
	s := newTestStore(t)
	for _, q := range []string{"a", "b", "c", "d"} {
		if _, err := s.Record(Entry{Query: q}); err != nil {
			t.Fatalf("Record(%q): %v", q, err)
		}
	}

	n, err := s.Prune(1)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 pruned, got %d", n)
	}
	got, _ := s.Recent(0)
	if len(got) != 1 || got[0].Query != "d" {
		t.Fatalf("prune should keep the newest search, got %+v", got)
	}

	n, err = s.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 cleared, got %d", n)
	}
	if n, _ := s.Count(); n != 0 {
		t.Fatalf("Count after Clear = %d, want 0", n)
	}
}
