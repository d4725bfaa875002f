package knowledge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeKnowledgeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func TestWalkTagsConcernBySubdirectory(t *testing.T) {
	root := t.TempDir()
	writeKnowledgeFile(t, root, "acne/cleansers.md", "salicylic acid content")
	writeKnowledgeFile(t, root, "dryness/moisturizers.md", "ceramide content")
	writeKnowledgeFile(t, root, "overview.md", "general content")

	files, err := Walk(WalkConfig{RootDir: root})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("got %d files, want 3", len(files))
	}

	byRel := map[string]File{}
	for _, f := range files {
		byRel[f.RelPath] = f
	}

	if f := byRel["acne/cleansers.md"]; f.Concern != "acne" {
		t.Errorf("concern = %q, want acne", f.Concern)
	}
	if f := byRel["dryness/moisturizers.md"]; f.Concern != "dryness" {
		t.Errorf("concern = %q, want dryness", f.Concern)
	}
	if f := byRel["overview.md"]; f.Concern != "" {
		t.Errorf("root file concern = %q, want empty", f.Concern)
	}
	if byRel["acne/cleansers.md"].Content != "salicylic acid content" {
		t.Error("file content not loaded")
	}
}

func TestWalkIncludeExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeKnowledgeFile(t, root, "acne/guide.md", "keep")
	writeKnowledgeFile(t, root, "acne/notes.txt", "drop by include")
	writeKnowledgeFile(t, root, "drafts/wip.md", "drop by exclude")

	files, err := Walk(WalkConfig{
		RootDir: root,
		Include: []string{"**/*.md"},
		Exclude: []string{"drafts/**"},
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1: %+v", len(files), files)
	}
	if files[0].RelPath != "acne/guide.md" {
		t.Errorf("RelPath = %q", files[0].RelPath)
	}
}

func TestWalkSkipsDotDirsAndOversizedFiles(t *testing.T) {
	root := t.TempDir()
	writeKnowledgeFile(t, root, ".git/config", "hidden")
	writeKnowledgeFile(t, root, "acne/small.md", "fine")
	writeKnowledgeFile(t, root, "acne/huge.md", strings.Repeat("x", 64))

	files, err := Walk(WalkConfig{RootDir: root, MaxFileSize: 32})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(files) != 1 || files[0].RelPath != "acne/small.md" {
		t.Errorf("files = %+v, want only acne/small.md", files)
	}
}

func TestChunks(t *testing.T) {
	f := File{Content: "First paragraph with more than eight words to stand on its own.\n\n" +
		"Short one.\n\n" +
		"Second full paragraph also containing well over eight separate words in total."}

	chunks := f.Chunks()
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks: %q", len(chunks), chunks)
	}
	if !strings.HasPrefix(chunks[0], "First paragraph") {
		t.Errorf("chunks[0] = %q", chunks[0])
	}
	// The short block is merged into its successor, not dropped.
	if !strings.Contains(chunks[1], "Short one.") || !strings.Contains(chunks[1], "Second full paragraph") {
		t.Errorf("chunks[1] = %q", chunks[1])
	}
}

func TestChunksTrailingShortBlockKept(t *testing.T) {
	f := File{Content: "A complete paragraph that has definitely more than eight words inside it.\n\nTiny tail."}
	chunks := f.Chunks()
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks: %q", len(chunks), chunks)
	}
	if chunks[1] != "Tiny tail." {
		t.Errorf("chunks[1] = %q", chunks[1])
	}
}

func TestChunksEmptyContent(t *testing.T) {
	f := File{Content: "  \n\n  "}
	if chunks := f.Chunks(); len(chunks) != 0 {
		t.Errorf("chunks = %q, want none", chunks)
	}
}
