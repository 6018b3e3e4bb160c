package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/priyaank17/real-estate-ai-assistant/internal/estate"
)

type AnalyzeInvestmentInput struct {
	ProjectName string `json:"project_name"`
}

type AnalyzeInvestmentOutput struct {
	ProjectID string                    `json:"project_id"`
	Analysis  estate.InvestmentAnalysis `json:"analysis"`
	Summary   string                    `json:"summary"`
}

func (r *Registry) createAnalyzeInvestmentTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolAnalyzeInvestment,
			Desc: "Analyze the investment potential of a project: rental yield, estimated appreciation, and a 1-10 score with verdict, benchmarked against city comparables.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"project_name": {
					Type:     "string",
					Desc:     "Name of the project to analyze, matched fuzzily.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *AnalyzeInvestmentInput) (*AnalyzeInvestmentOutput, error) {
			if strings.TrimSpace(in.ProjectName) == "" {
				return nil, fmt.Errorf("project_name is required")
			}

			project, err := r.Projects.ProjectByNameLike(ctx, in.ProjectName)
			if err != nil {
				return nil, fmt.Errorf("couldn't find a project named %q to analyze", in.ProjectName)
			}

			prices, err := r.Projects.CityPrices(ctx, project.City)
			if err != nil {
				return nil, err
			}

			analysis := estate.AnalyzeInvestment(*project, prices)
			return &AnalyzeInvestmentOutput{
				ProjectID: project.ID.String(),
				Analysis:  analysis,
				Summary:   analysis.Summary(),
			}, nil
		},
	)
}
