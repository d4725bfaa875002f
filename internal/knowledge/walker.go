// Package knowledge discovers knowledge-base source files for ingestion
// into the RAG store.
package knowledge

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultMaxFileSize is the maximum knowledge file size ingested (1 MB).
const DefaultMaxFileSize int64 = 1 << 20

// File is one discovered knowledge source.
type File struct {
	Path    string // Absolute path on disk.
	RelPath string // Path relative to the knowledge root.
	Concern string // Concern inferred from the top-level subdirectory.
	Content string
}

// WalkConfig controls knowledge discovery.
type WalkConfig struct {
	RootDir     string
	Include     []string // Glob patterns; empty includes everything.
	Exclude     []string // Glob patterns; empty excludes nothing.
	MaxFileSize int64    // 0 = DefaultMaxFileSize.
}

// Walk traverses the knowledge directory and returns every file passing
// the include/exclude filters, with its content loaded. The top-level
// subdirectory names the concern: knowledge/acne/cleansers.md is tagged
// "acne"; files at the root are untagged general knowledge.
func Walk(cfg WalkConfig) ([]File, error) {
	root, err := filepath.Abs(cfg.RootDir)
	if err != nil {
		return nil, fmt.Errorf("knowledge: resolve root: %w", err)
	}

	maxSize := cfg.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	var files []File
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Skip unreadable entries instead of aborting.
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel := filepath.ToSlash(relPath)

		if !matchesAny(rel, cfg.Include, true) {
			return nil
		}
		if matchesAny(rel, cfg.Exclude, false) {
			return nil
		}

		info, err := d.Info()
		if err != nil || info.Size() > maxSize {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil
		}

		files = append(files, File{
			Path:    path,
			RelPath: rel,
			Concern: concernFor(rel),
			Content: string(content),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("knowledge: walking %s: %w", root, err)
	}

	return files, nil
}

// matchesAny reports whether rel matches any pattern. emptyResult is
// returned for an empty pattern list: include-all, exclude-none.
func matchesAny(rel string, patterns []string, emptyResult bool) bool {
	if len(patterns) == 0 {
		return emptyResult
	}
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func concernFor(rel string) string {
	parts := strings.SplitN(rel, "/", 2)
	if len(parts) < 2 {
		return ""
	}
	return parts[0]
}

// Chunks splits a knowledge file into paragraph-sized snippets suitable
// for embedding. Blank-line-separated blocks shorter than a few words are
// merged into their successor.
func (f File) Chunks() []string {
	blocks := strings.Split(f.Content, "\n\n")
	var chunks []string
	var pending string

	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if pending != "" {
			block = pending + "\n\n" + block
			pending = ""
		}
		if len(strings.Fields(block)) < 8 {
			pending = block
			continue
		}
		chunks = append(chunks, block)
	}
	if pending != "" {
		chunks = append(chunks, pending)
	}
	return chunks
}
