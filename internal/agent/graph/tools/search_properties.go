package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/priyaank17/real-estate-ai-assistant/internal/estate"
)

type SearchPropertiesInput struct {
	City         string   `json:"city,omitempty"`
	PriceMin     float64  `json:"price_min,omitempty"`
	PriceMax     float64  `json:"price_max,omitempty"`
	Bedrooms     int      `json:"bedrooms,omitempty"`
	PropertyType string   `json:"property_type,omitempty"`
	Developer    string   `json:"developer,omitempty"`
	ProjectName  string   `json:"project_name,omitempty"`
	Features     []string `json:"features,omitempty"`
	MaxResults   int      `json:"max_results,omitempty"`
}

type ProjectSummary struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	City         string  `json:"city"`
	Price        float64 `json:"price"`
	Bedrooms     int     `json:"bedrooms"`
	PropertyType string  `json:"property_type"`
	Developer    string  `json:"developer"`
	Status       string  `json:"status"`
}

type SearchPropertiesOutput struct {
	Total           int              `json:"total"`
	ProjectIDs      []string         `json:"project_ids"`
	Projects        []ProjectSummary `json:"projects"`
	PreviewMarkdown string           `json:"preview_markdown,omitempty"`
	Note            string           `json:"note,omitempty"`
}

func (r *Registry) createSearchPropertiesTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolSearchProperties,
			Desc: "Structured search over the projects database. Primary tool for finding properties by city, price band (USD), bedrooms, property type, developer, project name, or feature keywords. Returns matching projects with IDs and a markdown preview table. Call with whatever filters are present, do not wait to gather every field.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"city": {
					Type: "string",
					Desc: "City filter, e.g. dubai, london, miami.",
				},
				"price_min": {
					Type: "number",
					Desc: "Minimum price in USD.",
				},
				"price_max": {
					Type: "number",
					Desc: "Maximum price in USD.",
				},
				"bedrooms": {
					Type: "number",
					Desc: "Exact number of bedrooms.",
				},
				"property_type": {
					Type: "string",
					Desc: "apartment, villa, or townhouse.",
				},
				"developer": {
					Type: "string",
					Desc: "Developer name, matched fuzzily.",
				},
				"project_name": {
					Type: "string",
					Desc: "Project name, matched fuzzily.",
				},
				"features": {
					Type:     "array",
					ElemInfo: &schema.ParameterInfo{Type: "string"},
					Desc:     "Must-have feature keywords, e.g. sea view, pool, gym.",
				},
				"max_results": {
					Type: "number",
					Desc: "Maximum rows to return (default 10, max 20).",
				},
			}),
		},
		func(ctx context.Context, in *SearchPropertiesInput) (*SearchPropertiesOutput, error) {
			filters := estate.SearchFilters{
				City:         in.City,
				PriceMin:     in.PriceMin,
				PriceMax:     in.PriceMax,
				Bedrooms:     in.Bedrooms,
				PropertyType: in.PropertyType,
				Developer:    in.Developer,
				ProjectName:  in.ProjectName,
				Features:     in.Features,
				Limit:        in.MaxResults,
			}
			if filters.IsEmpty() {
				return nil, fmt.Errorf("at least one filter is required")
			}

			projects, err := r.Projects.SearchProjects(ctx, filters)
			if err != nil {
				return nil, err
			}

			out := &SearchPropertiesOutput{Total: len(projects)}
			if len(projects) == 0 {
				out.Note = "No results found. Try search_rag with the same intent or relax the filters."
				return out, nil
			}

			for _, p := range projects {
				out.ProjectIDs = append(out.ProjectIDs, p.ID.String())
				out.Projects = append(out.Projects, ProjectSummary{
					ID:           p.ID.String(),
					Name:         p.Name,
					City:         p.City,
					Price:        p.Price,
					Bedrooms:     p.Bedrooms,
					PropertyType: p.PropertyType,
					Developer:    p.Developer,
					Status:       p.Status,
				})
			}
			out.PreviewMarkdown = estate.PreviewTable(projects)
			return out, nil
		},
	)
}
