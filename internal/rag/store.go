// Package rag provides semantic search over the beauty knowledge base.
package rag

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	chromem "github.com/philippgille/chromem-go"

	"github.com/noli-ai/liz-widget/internal/embeddings"
)

const collectionName = "beauty-knowledge"

// Document is one knowledge-base snippet.
type Document struct {
	ID      string
	Content string
	// Concern is the beauty concern this snippet addresses (acne, dryness,
	// aging, ...), empty for general knowledge.
	Concern string
	Source  string
}

// Result is one semantic search hit.
type Result struct {
	Document   Document
	Similarity float32
}

// Store holds knowledge documents in a chromem-go collection.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
}

// NewStore creates an in-memory store using the given embedder.
func NewStore(embedder embeddings.Embedder) (*Store, error) {
	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)
	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("creating knowledge collection: %w", err)
	}
	return &Store{db: db, collection: col, embedFunc: ef}, nil
}

// Add inserts or updates documents in the store.
func (s *Store) Add(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	chromDocs := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		meta := map[string]string{"source": doc.Source}
		if doc.Concern != "" {
			meta["concern"] = doc.Concern
		}
		chromDocs[i] = chromem.Document{
			ID:       doc.ID,
			Content:  doc.Content,
			Metadata: meta,
		}
	}
	return s.collection.AddDocuments(ctx, chromDocs, 1)
}

// Search returns the documents most similar to the query, optionally
// restricted to one concern.
func (s *Store) Search(ctx context.Context, query string, limit int, concern string) ([]Result, error) {
	if limit <= 0 {
		limit = 5
	}

	// chromem-go requires nResults <= collection size.
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if limit > count {
		limit = count
	}

	var where map[string]string
	if concern != "" {
		where = map[string]string{"concern": concern}
	}

	hits, err := s.collection.Query(ctx, query, limit, where, nil)
	if err != nil {
		return nil, fmt.Errorf("knowledge query: %w", err)
	}

	results := make([]Result, len(hits))
	for i, h := range hits {
		results[i] = Result{
			Document: Document{
				ID:      h.ID,
				Content: h.Content,
				Concern: h.Metadata["concern"],
				Source:  h.Metadata["source"],
			},
			Similarity: h.Similarity,
		}
	}
	return results, nil
}

// Count returns the number of documents in the store.
func (s *Store) Count() int { return s.collection.Count() }

// Persist saves the store to the given directory.
func (s *Store) Persist(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating persist dir: %w", err)
	}
	if err := s.db.ExportToFile(filepath.Join(dir, "knowledge.gob.gz"), true, ""); err != nil {
		return fmt.Errorf("exporting knowledge store: %w", err)
	}
	return nil
}

// Load restores the store from the given directory.
func (s *Store) Load(ctx context.Context, dir string) error {
	if err := s.db.ImportFromFile(filepath.Join(dir, "knowledge.gob.gz"), ""); err != nil {
		return fmt.Errorf("importing knowledge store: %w", err)
	}

	// Re-acquire the collection reference after import.
	col := s.db.GetCollection(collectionName, s.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", collectionName)
	}
	s.collection = col
	return nil
}
