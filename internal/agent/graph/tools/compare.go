package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/priyaank17/real-estate-ai-assistant/internal/estate"
)

type CompareProjectsInput struct {
	ProjectNames []string `json:"project_names"`
}

type CompareProjectsOutput struct {
	Total      int      `json:"total"`
	ProjectIDs []string `json:"project_ids"`
	Table      string   `json:"table"`
}

func (r *Registry) createCompareProjectsTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolCompareProjects,
			Desc: "Compare named projects side-by-side. Returns a markdown table with city, price, bedrooms, type, area, status, and developer per project.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"project_names": {
					Type:     "array",
					ElemInfo: &schema.ParameterInfo{Type: "string"},
					Desc:     "Names of the projects to compare, matched fuzzily.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *CompareProjectsInput) (*CompareProjectsOutput, error) {
			if len(in.ProjectNames) == 0 {
				return nil, fmt.Errorf("project names are required")
			}

			projects, err := r.Projects.ProjectsByNames(ctx, in.ProjectNames)
			if err != nil {
				return nil, err
			}

			out := &CompareProjectsOutput{Total: len(projects)}
			if len(projects) == 0 {
				out.Table = "I couldn't find any of the specified projects."
				return out, nil
			}

			for _, p := range projects {
				out.ProjectIDs = append(out.ProjectIDs, p.ID.String())
			}
			out.Table = estate.CompareTable(projects)
			return out, nil
		},
	)
}
