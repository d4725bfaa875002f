package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/noli-ai/liz-widget/internal/config"
	"github.com/noli-ai/liz-widget/internal/embeddings"
	"github.com/noli-ai/liz-widget/internal/knowledge"
	"github.com/noli-ai/liz-widget/internal/rag"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest the beauty knowledge base for RAG search",
	Long: `Walks the configured knowledge directory, chunks each file into
paragraph-sized snippets, embeds them, and persists the knowledge store
used by /api/v1/rag/search.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for ingestion")
		}

		files, err := knowledge.Walk(knowledge.WalkConfig{
			RootDir: cfg.Knowledge.Dir,
			Include: cfg.Knowledge.Include,
			Exclude: cfg.Knowledge.Exclude,
		})
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no knowledge files found in %s", cfg.Knowledge.Dir)
		}

		embedder := embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(cfg.Embedding.Model))
		store, err := rag.NewStore(embedder)
		if err != nil {
			return fmt.Errorf("creating knowledge store: %w", err)
		}

		bar := progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("Ingesting knowledge"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)

		total := 0
		for _, file := range files {
			var docs []rag.Document
			for i, chunk := range file.Chunks() {
				docs = append(docs, rag.Document{
					ID:      fmt.Sprintf("%s#%d", file.RelPath, i),
					Content: chunk,
					Concern: file.Concern,
					Source:  file.RelPath,
				})
			}
			if err := store.Add(cmd.Context(), docs); err != nil {
				return fmt.Errorf("embedding %s: %w", file.RelPath, err)
			}
			total += len(docs)
			if verbose {
				fmt.Printf("  %s: %d snippets (concern=%s)\n", file.RelPath, len(docs), file.Concern)
			}
			bar.Add(1)
		}

		knowledgeDir := filepath.Join(cfg.DataDir, "knowledge")
		if err := store.Persist(cmd.Context(), knowledgeDir); err != nil {
			return err
		}

		fmt.Printf("Ingested %d snippets from %d files into %s\n", total, len(files), knowledgeDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}
