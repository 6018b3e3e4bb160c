package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

type UpdateUIContextInput struct {
	ShortlistedProjectIDs []string `json:"shortlisted_project_ids,omitempty"`
	BookingStatus         string   `json:"booking_status,omitempty"`
}

type UpdateUIContextOutput struct {
	Status string `json:"status"`
}

// createUpdateUIContextTool does nothing server-side; the graph lifts this
// tool call's arguments out of the message history so the HTTP layer can
// surface them to the frontend.
func createUpdateUIContextTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolUpdateUIContext,
			Desc: "Update the user interface with structured data. Call whenever a tool returned project IDs (dedupe them first) or when a booking status changes.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"shortlisted_project_ids": {
					Type:     "array",
					ElemInfo: &schema.ParameterInfo{Type: "string"},
					Desc:     "Project IDs to highlight or show in a list/map.",
				},
				"booking_status": {
					Type: "string",
					Desc: "Status of a booking, e.g. confirmed or pending.",
				},
			}),
		},
		func(ctx context.Context, in *UpdateUIContextInput) (*UpdateUIContextOutput, error) {
			return &UpdateUIContextOutput{Status: "UI Context Updated."}, nil
		},
	)
}
