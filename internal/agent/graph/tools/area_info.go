package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

type AreaInfoInput struct {
	Query string `json:"query"`
}

type AreaInfoOutput struct {
	Answer string `json:"answer"`
}

// createAreaInfoTool serves neighbourhood questions from a small local
// knowledge table. Last-resort tool; project data always comes from the
// database or the vector store.
func createAreaInfoTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolAreaInfo,
			Desc: "Look up local area information around a project: schools, hospitals, transport. Use only when project data lacks the answer.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type:     "string",
					Desc:     "The area question, e.g. schools near Silver Heights.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *AreaInfoInput) (*AreaInfoOutput, error) {
			if strings.TrimSpace(in.Query) == "" {
				return nil, fmt.Errorf("query is required")
			}
			return &AreaInfoOutput{Answer: areaAnswer(in.Query)}, nil
		},
	)
}

func areaAnswer(query string) string {
	lower := strings.ToLower(query)
	switch {
	case strings.Contains(lower, "school"):
		return "There are several top-rated schools nearby, including St. Mary's High School and International Public School, both within a 2km radius."
	case strings.Contains(lower, "hospital"), strings.Contains(lower, "clinic"):
		return "City General Hospital is located 3km away, and there is a 24/7 clinic within the community."
	case strings.Contains(lower, "transport"), strings.Contains(lower, "metro"), strings.Contains(lower, "station"):
		return "The nearest metro station is 500m away, providing easy connectivity to the city center."
	default:
		return "The area is a developing neighbourhood with good infrastructure and increasing property value."
	}
}
