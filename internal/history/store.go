// Package history keeps a log of search queries for analytics and
// debugging; nothing in the widget flow depends on it.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/noli-ai/liz-widget/internal/db"
)

// Entry is one recorded search.
type Entry struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Query        string    `json:"query"`
	AgentID      string    `json:"agent_id"`
	ProductCount int       `json:"product_count"`
	DurationMS   int64     `json:"duration_ms"`
	Outcome      string    `json:"outcome"`
}

// Store persists search history in SQLite.
type Store struct {
	db *db.DB
}

// NewStore creates a history store on the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// RecordSearch logs one completed search. It satisfies search.Recorder.
func (s *Store) RecordSearch(ctx context.Context, query, agentID string, productCount int, duration time.Duration, outcome string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO search_history (id, query, agent_id, product_count, duration_ms, outcome)
		VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), query, agentID, productCount, duration.Milliseconds(), outcome)
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}
	return nil
}

// Filter narrows List results.
type Filter struct {
	Outcome string
	Since   *time.Time
	Limit   int
	Offset  int
}

// List returns history entries, newest first.
func (s *Store) List(ctx context.Context, filter Filter) ([]Entry, error) {
	query := `SELECT id, timestamp, query, agent_id, product_count, duration_ms, outcome FROM search_history WHERE 1=1`
	var args []any

	if filter.Outcome != "" {
		query += ` AND outcome = ?`
		args = append(args, filter.Outcome)
	}
	if filter.Since != nil {
		query += ` AND timestamp >= ?`
		args = append(args, filter.Since.UTC().Format("2006-01-02 15:04:05"))
	}

	query += ` ORDER BY timestamp DESC`

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.ID, &ts, &e.Query, &e.AgentID, &e.ProductCount, &e.DurationMS, &e.Outcome); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if t, err := time.Parse("2006-01-02 15:04:05", ts); err == nil {
			e.Timestamp = t.UTC()
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune deletes entries older than the given cutoff and returns the number removed.
func (s *Store) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM search_history WHERE timestamp < ?`,
		before.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return 0, fmt.Errorf("pruning history: %w", err)
	}
	return res.RowsAffected()
}
