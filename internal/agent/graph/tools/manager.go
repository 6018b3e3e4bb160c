package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/priyaank17/real-estate-ai-assistant/internal/estate"
	"github.com/priyaank17/real-estate-ai-assistant/internal/rag"
)

// Tool names bound to the response model.
const (
	ToolExtractIntent     = "extract_intent_filters"
	ToolSearchProperties  = "search_properties"
	ToolSearchRAG         = "search_rag"
	ToolUpdateUIContext   = "update_ui_context"
	ToolBookViewing       = "book_viewing"
	ToolCompareProjects   = "compare_projects"
	ToolAnalyzeInvestment = "analyze_investment"
	ToolAreaInfo          = "search_area_info"
)

// ProjectStore is the relational surface the tools depend on.
type ProjectStore interface {
	SearchProjects(ctx context.Context, f estate.SearchFilters) ([]estate.Project, error)
	ProjectsByNames(ctx context.Context, names []string) ([]estate.Project, error)
	ProjectByNameLike(ctx context.Context, name string) (*estate.Project, error)
	CityPrices(ctx context.Context, city string) ([]float64, error)
	BookViewing(ctx context.Context, req estate.BookingRequest) (*estate.BookingResult, error)
}

// SemanticSearcher is the vector-store surface the tools depend on.
type SemanticSearcher interface {
	Search(ctx context.Context, query string, k int) ([]rag.Match, error)
}

// Registry wires concrete stores into the business tools.
type Registry struct {
	Projects ProjectStore
	Semantic SemanticSearcher
}

// QueryTools returns every tool exposed to the response model.
func (r *Registry) QueryTools() []tool.BaseTool {
	return []tool.BaseTool{
		r.createExtractIntentTool(),
		r.createSearchPropertiesTool(),
		r.createSearchRAGTool(),
		createUpdateUIContextTool(),
		r.createBookViewingTool(),
		r.createCompareProjectsTool(),
		r.createAnalyzeInvestmentTool(),
		createAreaInfoTool(),
	}
}

// GetToolInfos resolves ToolInfo metadata for binding to the chat model.
func GetToolInfos(ctx context.Context, tools []tool.BaseTool) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(tools))
	for _, t := range tools {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}
