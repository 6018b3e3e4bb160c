package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/priyaank17/real-estate-ai-assistant/internal/agent/graph"
	"github.com/priyaank17/real-estate-ai-assistant/internal/agent/graph/nodes"
	"github.com/priyaank17/real-estate-ai-assistant/internal/agent/graph/tools"
	"github.com/priyaank17/real-estate-ai-assistant/internal/agent/repo"
	"github.com/priyaank17/real-estate-ai-assistant/internal/estate"
	"github.com/priyaank17/real-estate-ai-assistant/internal/rag"
	"github.com/priyaank17/real-estate-ai-assistant/internal/server"
	logx "github.com/priyaank17/real-estate-ai-assistant/pkg/logger"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP chat API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}
}

func runServe(ctx context.Context, cfg *AppConfig) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := cfg.Redis.New()
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer rdb.Close()

	db, err := cfg.Postgres.Open()
	if err != nil {
		return err
	}

	client, err := nodes.NewGenAIClient(ctx, cfg.APIKey, cfg.BaseURL)
	if err != nil {
		return err
	}

	projects := estate.NewStore(db)
	semantic := rag.NewStore(db, rag.NewGeminiEmbedder(client, cfg.Embedding.Model))
	if err := semantic.Migrate(); err != nil {
		return err
	}

	ttl, err := time.ParseDuration(cfg.Conversation.TTL)
	if err != nil {
		return fmt.Errorf("invalid CONVERSATION_TTL %q: %w", cfg.Conversation.TTL, err)
	}

	runner, err := graph.BuildResponseGraph(ctx, graph.Config{
		Client:           client,
		NLUModel:         cfg.NLU,
		ResponseModel:    cfg.Response,
		ResponsePrompt:   cfg.Prompt,
		Conversation:     cfg.Conversation,
		ConversationRepo: repo.NewRedisConversationRepository(rdb, ttl),
		Tools: &tools.Registry{
			Projects: projects,
			Semantic: semantic,
		},
	})
	if err != nil {
		return fmt.Errorf("build graph: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           server.New(runner, cfg.Environment()).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logx.Info().Str("addr", cfg.ServerAddr).Msg("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logx.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
