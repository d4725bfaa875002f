package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/noli-ai/liz-widget/internal/config"
	"github.com/noli-ai/liz-widget/internal/db"
	"github.com/noli-ai/liz-widget/internal/embeddings"
	"github.com/noli-ai/liz-widget/internal/embedjs"
	"github.com/noli-ai/liz-widget/internal/history"
	"github.com/noli-ai/liz-widget/internal/letta"
	"github.com/noli-ai/liz-widget/internal/rag"
	"github.com/noli-ai/liz-widget/internal/search"
	"github.com/noli-ai/liz-widget/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the widget service",
	Long: `Starts the HTTP server exposing the search API, the Letta agent
proxy, the widget bootstrap scripts, and RAG search over the knowledge base.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		database, err := db.Open(filepath.Join(cfg.DataDir, "lizwidget.db"))
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		lettaClient := letta.NewClient(cfg.Letta.BaseURL)
		if token := os.Getenv("LETTA_API_KEY"); token != "" {
			lettaClient.WithToken(token)
		}
		beauty := letta.NewBeautyAgent(lettaClient, cfg.Letta.AgentName)

		historyStore := history.NewStore(database)
		searchSvc := search.NewService(beauty, cfg.Quiz)

		srv := server.New(server.Config{
			Port:         cfg.Port,
			EmbedOrigins: cfg.EmbedOrigins,
			AllowAll:     cfg.AllowAll,
		})

		r := srv.Router()
		search.RegisterRoutes(r, searchSvc, historyStore)
		letta.RegisterRoutes(r, lettaClient)
		letta.RegisterChatRelay(r, lettaClient, beauty)
		history.RegisterRoutes(r, historyStore)
		embedjs.RegisterRoutes(r, cfg.Widget)

		// RAG search needs an embedder; without an API key the routes stay
		// unregistered and the rest of the service works normally.
		if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
			embedder := embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(cfg.Embedding.Model))
			store, err := rag.NewStore(embedder)
			if err != nil {
				return fmt.Errorf("creating knowledge store: %w", err)
			}
			knowledgeDir := filepath.Join(cfg.DataDir, "knowledge")
			if err := store.Load(cmd.Context(), knowledgeDir); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not load knowledge store from %s: %v\n", knowledgeDir, err)
				fmt.Fprintf(os.Stderr, "RAG search results will be empty. Run `lizwidget ingest` first.\n")
			}
			rag.RegisterRoutes(r, rag.NewService(store))
		} else {
			fmt.Fprintln(os.Stderr, "Warning: OPENAI_API_KEY not set, RAG search disabled")
		}

		// Graceful shutdown on SIGINT/SIGTERM.
		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-sigCh:
			fmt.Fprintf(os.Stderr, "received %s, shutting down\n", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
