package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/priyaank17/real-estate-ai-assistant/internal/agent/model"
	"github.com/priyaank17/real-estate-ai-assistant/internal/core"
	"github.com/priyaank17/real-estate-ai-assistant/internal/estate"
	logx "github.com/priyaank17/real-estate-ai-assistant/pkg/logger"
	pkgredis "github.com/priyaank17/real-estate-ai-assistant/pkg/redis"
)

// AppConfig defines all configurable parameters for the service, sourced from
// environment variables (loaded from .env for local runs).
type AppConfig struct {
	Env string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure
	Redis    pkgredis.Config
	Postgres estate.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	NLU          model.NLUModelConfig
	Response     model.ResponseModelConfig
	Prompt       model.ResponsePromptConfig
	Conversation model.ConversationConfig
	Embedding    model.EmbeddingConfig

	// HTTP
	ServerAddr string `envconfig:"SERVER_ADDR" default:":8080"`
}

// Environment returns the parsed deployment environment.
func (c *AppConfig) Environment() core.Environment {
	return core.ParseEnvironment(c.Env)
}

func loadConfig() (*AppConfig, error) {
	if err := godotenv.Load(".env"); err != nil {
		logx.Warn().Err(err).Msg("Could not load .env file")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	logx.Init(logx.LoggerOpts{Environment: cfg.Environment()})
	return &cfg, nil
}

// NewRootCommand assembles the CLI.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "estate-assistant",
		Short:         "Conversational real estate assistant",
		Long:          "Silver Land Properties conversational assistant: HTTP chat API, property seeding, and semantic index management.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newSeedCommand())
	root.AddCommand(newIngestCommand())

	return root
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		logx.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
