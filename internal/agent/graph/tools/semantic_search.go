package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

const ragTopK = 5

type SearchRAGInput struct {
	Query string `json:"query"`
}

type SearchRAGOutput struct {
	Total      int      `json:"total"`
	ProjectIDs []string `json:"project_ids"`
	Results    string   `json:"results"`
}

func (r *Registry) createSearchRAGTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolSearchRAG,
			Desc: "Semantic search over project descriptions and amenities. Use for fuzzy phrasing (sea view, near metro, child friendly, ready to move), for amenity questions about a named project, or to cross-sell alternatives when search_properties is empty.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type:     "string",
					Desc:     "Free-text description of what the buyer wants, or a project/developer name with the amenity question.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *SearchRAGInput) (*SearchRAGOutput, error) {
			if strings.TrimSpace(in.Query) == "" {
				return nil, fmt.Errorf("query is required")
			}

			matches, err := r.Semantic.Search(ctx, in.Query, ragTopK)
			if err != nil {
				return nil, err
			}

			out := &SearchRAGOutput{Total: len(matches)}
			if len(matches) == 0 {
				out.Results = "No relevant projects found matching the description."
				return out, nil
			}

			var blocks []string
			for _, m := range matches {
				out.ProjectIDs = append(out.ProjectIDs, m.ProjectID.String())
				blocks = append(blocks, fmt.Sprintf("Project: %s (match distance %.3f)\nDescription: %s\n---", m.ProjectName, m.Distance, m.Content))
			}
			out.Results = strings.Join(blocks, "\n")
			return out, nil
		},
	)
}
