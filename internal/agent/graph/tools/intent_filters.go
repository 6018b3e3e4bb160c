package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/priyaank17/real-estate-ai-assistant/internal/agent/intent"
)

type ExtractIntentInput struct {
	Query string `json:"query"`
}

func (r *Registry) createExtractIntentTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolExtractIntent,
			Desc: "Extract structured filters from a fuzzy user request. Returns project_name, developer, city, price_min, price_max, currency, bedrooms, property_type, must_have_features, lead contact details, and routing flags. Call this first to ground other tool calls.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type:     "string",
					Desc:     "The user's message verbatim, including budget, city, bedrooms or any project/developer mention.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *ExtractIntentInput) (*intent.Filters, error) {
			if in.Query == "" {
				return nil, fmt.Errorf("query is required")
			}
			f := intent.Extract(in.Query)
			return &f, nil
		},
	)
}
