package prompts

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/priyaank17/real-estate-ai-assistant/internal/agent/graph/tools"
	"github.com/priyaank17/real-estate-ai-assistant/internal/agent/model"
)

//go:embed template/response_prompt.txt
var coreSystemPrompt string

// RenderResponseSystem renders the dynamic Response system prompt and triggers prompt callbacks.
func RenderResponseSystem(ctx context.Context, config model.ResponsePromptConfig, data model.ResponseData) (string, error) {
	// derive and normalize primary language for the template
	pl := strings.ToLower(strings.TrimSpace(data.Analysis.PrimaryLanguage))
	if pl == "" {
		pl = "eng"
	}
	switch pl {
	case "en":
		pl = "eng"
	case "ar":
		pl = "ara"
	case "hi":
		pl = "hin"
	}

	sentiment := data.Analysis.Sentiment.Label
	if sentiment == "" {
		sentiment = "neutral"
	}
	primaryIntent := data.Analysis.PrimaryIntent
	if primaryIntent == "" {
		primaryIntent = "unknown"
	}

	filtersJSON, err := json.Marshal(data.Filters)
	if err != nil {
		filtersJSON = []byte("{}")
	}

	// Render via Eino prompt component (Go template) to both format and emit callbacks
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(coreSystemPrompt),
	)
	vars := map[string]any{
		"BusinessType":    config.BusinessType,
		"BusinessName":    config.BusinessName,
		"PrimaryLanguage": pl,
		"PrimaryIntent":   primaryIntent,
		"SentimentLabel":  sentiment,
		"FiltersJSON":     string(filtersJSON),
		"IntentTool":      tools.ToolExtractIntent,
		"SearchTool":      tools.ToolSearchProperties,
		"RAGTool":         tools.ToolSearchRAG,
		"UITool":          tools.ToolUpdateUIContext,
		"BookingTool":     tools.ToolBookViewing,
		"CompareTool":     tools.ToolCompareProjects,
		"InvestmentTool":  tools.ToolAnalyzeInvestment,
		"AreaTool":        tools.ToolAreaInfo,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("response prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("response prompt render: empty result")
	}
	return msgs[0].Content, nil
}
