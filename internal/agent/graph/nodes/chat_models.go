package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/priyaank17/real-estate-ai-assistant/internal/agent/model"
	logx "github.com/priyaank17/real-estate-ai-assistant/pkg/logger"
)

// ChatModelConfig holds the configuration for chat model creation
type ChatModelConfig struct {
	// Client is shared with the embedding layer so the process holds a single
	// Gemini connection pool.
	Client     *genai.Client
	NLUConfig  *model.NLUModelConfig
	RespConfig *model.ResponseModelConfig
}

// ChatModels holds both NLU and Response chat models
type ChatModels struct {
	NLU               *gemini.ChatModel
	Response          *gemini.ChatModel
	NLUModelName      string
	ResponseModelName string
}

// NewGenAIClient creates a Gemini client from an API key and optional base URL.
func NewGenAIClient(ctx context.Context, apiKey, baseURL string) (*genai.Client, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		clientCfg.HTTPOptions.BaseURL = baseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}
	return client, nil
}

// NewChatModels creates both NLU and Response chat models with the given configuration
func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {
	if config.Client == nil {
		return nil, fmt.Errorf("chat models require a Gemini client")
	}

	// Create NLU Chat Model
	chatModelNLU, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      config.Client,
		Model:       config.NLUConfig.Model,
		Temperature: &config.NLUConfig.Temperature,
		MaxTokens:   &config.NLUConfig.MaxTokens,
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: true,
			ThinkingBudget:  genai.Ptr(int32(2000)),
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating NLU model")
		return nil, fmt.Errorf("error creating NLU model: %w", err)
	}

	// Create Response Chat Model
	chatModelResponse, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      config.Client,
		Model:       config.RespConfig.Model,
		Temperature: &config.RespConfig.Temperature,
		MaxTokens:   &config.RespConfig.MaxTokens,
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: true,
			ThinkingBudget:  genai.Ptr(int32(2000)),
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Response model")
		return nil, fmt.Errorf("error creating Response model: %w", err)
	}

	return &ChatModels{
		NLU:               chatModelNLU,
		Response:          chatModelResponse,
		NLUModelName:      config.NLUConfig.Model,
		ResponseModelName: config.RespConfig.Model,
	}, nil
}

// BindToolsToResponseModel binds tools to the response chat model
func (cm *ChatModels) BindToolsToResponseModel(ctx context.Context, tools []*schema.ToolInfo) error {
	err := cm.Response.BindTools(tools)
	if err != nil {
		logx.Error().Err(err).Msg("Failed to bind tools")
		return fmt.Errorf("failed to bind tools: %w", err)
	}

	logx.Debug().Msg("Successfully bound tools to response model")
	return nil
}
