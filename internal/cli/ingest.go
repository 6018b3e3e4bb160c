package cli

import (
	"github.com/spf13/cobra"

	"github.com/priyaank17/real-estate-ai-assistant/internal/agent/graph/nodes"
	"github.com/priyaank17/real-estate-ai-assistant/internal/estate"
	"github.com/priyaank17/real-estate-ai-assistant/internal/rag"
	logx "github.com/priyaank17/real-estate-ai-assistant/pkg/logger"
)

func newIngestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Embed project descriptions into the vector store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := cfg.Postgres.Open()
			if err != nil {
				return err
			}

			client, err := nodes.NewGenAIClient(ctx, cfg.APIKey, cfg.BaseURL)
			if err != nil {
				return err
			}

			store := rag.NewStore(db, rag.NewGeminiEmbedder(client, cfg.Embedding.Model))
			if err := store.Migrate(); err != nil {
				return err
			}

			projects, err := estate.NewStore(db).AllProjects(ctx)
			if err != nil {
				return err
			}

			n, err := rag.IngestProjects(ctx, store, projects)
			if err != nil {
				return err
			}

			logx.Info().Int("indexed", n).Int("projects", len(projects)).Msg("Ingest complete")
			return nil
		},
	}
}
