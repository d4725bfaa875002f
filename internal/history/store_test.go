package history

import (
	"context"
	"testing"
	"time"

	"github.com/noli-ai/liz-widget/internal/db"
)

func newTestStore(t *testing.T) (*Store, *db.DB) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database), database
}

func insertAt(t *testing.T, database *db.DB, id, query, outcome, timestamp string) {
	t.Helper()
	_, err := database.Exec(`
		INSERT INTO search_history (id, timestamp, query, agent_id, product_count, duration_ms, outcome)
		VALUES (?, ?, ?, '', 0, 0, ?)`,
		id, timestamp, query, outcome)
	if err != nil {
		t.Fatalf("inserting row: %v", err)
	}
}

func TestRecordSearchAndList(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	err := store.RecordSearch(ctx, "serum for acne", "agent-1", 3, 1200*time.Millisecond, "success")
	if err != nil {
		t.Fatalf("RecordSearch: %v", err)
	}

	entries, err := store.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.ID == "" {
		t.Error("entry missing generated id")
	}
	if e.Query != "serum for acne" || e.AgentID != "agent-1" {
		t.Errorf("entry = %+v", e)
	}
	if e.ProductCount != 3 {
		t.Errorf("ProductCount = %d", e.ProductCount)
	}
	if e.DurationMS != 1200 {
		t.Errorf("DurationMS = %d", e.DurationMS)
	}
	if e.Outcome != "success" {
		t.Errorf("Outcome = %q", e.Outcome)
	}
}

func TestRecordSearchRejectsUnknownOutcome(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.RecordSearch(context.Background(), "q", "", 0, 0, "maybe")
	if err == nil {
		t.Fatal("expected constraint error for unknown outcome")
	}
}

func TestListNewestFirst(t *testing.T) {
	store, database := newTestStore(t)

	insertAt(t, database, "e1", "oldest", "success", "2026-08-01 10:00:00")
	insertAt(t, database, "e2", "middle", "success", "2026-08-10 10:00:00")
	insertAt(t, database, "e3", "newest", "success", "2026-08-20 10:00:00")

	entries, err := store.List(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries", len(entries))
	}
	if entries[0].Query != "newest" || entries[2].Query != "oldest" {
		t.Errorf("order wrong: %q, %q, %q", entries[0].Query, entries[1].Query, entries[2].Query)
	}
}

func TestListFilters(t *testing.T) {
	store, database := newTestStore(t)

	insertAt(t, database, "e1", "old failure", "error", "2026-08-01 10:00:00")
	insertAt(t, database, "e2", "recent failure", "error", "2026-08-20 10:00:00")
	insertAt(t, database, "e3", "recent success", "success", "2026-08-21 10:00:00")

	ctx := context.Background()

	failed, err := store.List(ctx, Filter{Outcome: "error"})
	if err != nil {
		t.Fatalf("List(error): %v", err)
	}
	if len(failed) != 2 {
		t.Errorf("got %d error entries, want 2", len(failed))
	}

	since := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	recent, err := store.List(ctx, Filter{Since: &since})
	if err != nil {
		t.Fatalf("List(since): %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("got %d recent entries, want 2", len(recent))
	}

	limited, err := store.List(ctx, Filter{Limit: 1})
	if err != nil {
		t.Fatalf("List(limit): %v", err)
	}
	if len(limited) != 1 || limited[0].Query != "recent success" {
		t.Errorf("limited = %+v", limited)
	}

	paged, err := store.List(ctx, Filter{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("List(offset): %v", err)
	}
	if len(paged) != 1 || paged[0].Query != "recent failure" {
		t.Errorf("paged = %+v", paged)
	}
}

func TestPrune(t *testing.T) {
	store, database := newTestStore(t)

	insertAt(t, database, "e1", "ancient", "success", "2026-01-01 10:00:00")
	insertAt(t, database, "e2", "recent", "success", "2026-08-20 10:00:00")

	removed, err := store.Prune(context.Background(), time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	entries, err := store.List(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].Query != "recent" {
		t.Errorf("entries = %+v", entries)
	}
}
