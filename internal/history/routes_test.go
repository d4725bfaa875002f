package history

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/noli-ai/liz-widget/internal/db"
)

func newRoutesServer(t *testing.T) (*httptest.Server, *db.DB) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	r := chi.NewRouter()
	RegisterRoutes(r, NewStore(database))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, database
}

func TestHandleListEmpty(t *testing.T) {
	srv, _ := newRoutesServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/history/")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if entries == nil {
		t.Error("empty history must decode as [], not null")
	}
}

func TestHandleListWithFilters(t *testing.T) {
	srv, database := newRoutesServer(t)

	insertAt(t, database, "e1", "old failure", "error", "2026-08-01 10:00:00")
	insertAt(t, database, "e2", "new success", "success", "2026-08-20 10:00:00")

	resp, err := http.Get(srv.URL + "/api/v1/history/?outcome=error&limit=10")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(entries) != 1 || entries[0].Query != "old failure" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestHandlePrune(t *testing.T) {
	srv, database := newRoutesServer(t)

	insertAt(t, database, "e1", "ancient", "success", "2020-01-01 10:00:00")
	insertAt(t, database, "e2", "fresh", "success", "2026-08-25 10:00:00")

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/history/?before=2026-01-01T00:00:00Z", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]int64
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if body["removed"] != 1 {
		t.Errorf("removed = %d, want 1", body["removed"])
	}
}

func TestHandlePruneInvalidTimestamp(t *testing.T) {
	srv, _ := newRoutesServer(t)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/history/?before=yesterday", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
