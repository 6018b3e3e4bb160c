package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/priyaank17/real-estate-ai-assistant/internal/estate"
)

type BookViewingInput struct {
	ProjectID     string `json:"project_id,omitempty"`
	ProjectName   string `json:"project_name,omitempty"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	City          string `json:"city,omitempty"`
	Preferences   string `json:"preferences,omitempty"`
	PreferredDate string `json:"preferred_date,omitempty"`
}

type BookViewingOutput struct {
	BookingID    string `json:"booking_id"`
	ProjectID    string `json:"project_id"`
	ProjectName  string `json:"project_name"`
	Confirmation string `json:"confirmation"`
}

func (r *Registry) createBookViewingTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolBookViewing,
			Desc: "Book a property visit once the buyer has confirmed a project and provided name and email. Stores the visit in visit_bookings and upserts the lead by email.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"project_id": {
					Type: "string",
					Desc: "Project ID from a previous tool result. Preferred over project_name.",
				},
				"project_name": {
					Type: "string",
					Desc: "Project name when no ID is available; matched fuzzily.",
				},
				"customer_name": {
					Type:     "string",
					Desc:     "Buyer's full name.",
					Required: true,
				},
				"customer_email": {
					Type:     "string",
					Desc:     "Buyer's email address.",
					Required: true,
				},
				"city": {
					Type: "string",
					Desc: "Buyer's city, if offered.",
				},
				"preferences": {
					Type: "string",
					Desc: "Any stated preferences worth keeping on the lead record.",
				},
				"preferred_date": {
					Type: "string",
					Desc: "Preferred visit date in YYYY-MM-DD format, if offered.",
				},
			}),
		},
		func(ctx context.Context, in *BookViewingInput) (*BookViewingOutput, error) {
			result, err := r.Projects.BookViewing(ctx, estate.BookingRequest{
				ProjectID:     in.ProjectID,
				ProjectName:   in.ProjectName,
				CustomerName:  in.CustomerName,
				CustomerEmail: in.CustomerEmail,
				City:          in.City,
				Preferences:   in.Preferences,
				PreferredDate: in.PreferredDate,
			})
			if err != nil {
				return nil, err
			}

			confirmation := fmt.Sprintf(
				"Viewing booked successfully. Property: %s, Customer: %s, Email: %s, Booking ID: %s.",
				result.Project.Name, in.CustomerName, result.Lead.Email, result.Booking.ID,
			)
			if in.PreferredDate != "" {
				confirmation += " Date: " + in.PreferredDate + "."
			}

			return &BookViewingOutput{
				BookingID:    result.Booking.ID.String(),
				ProjectID:    result.Project.ID.String(),
				ProjectName:  result.Project.Name,
				Confirmation: confirmation,
			}, nil
		},
	)
}
