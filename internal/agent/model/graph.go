package model

import (
	"github.com/cloudwego/eino/schema"

	"github.com/priyaank17/real-estate-ai-assistant/internal/agent/intent"
)

// AppState stores per-invocation state for the Eino Graph.
// Concurrency model:
//   - This struct is registered as Graph Local State via compose.WithGenLocalState.
//   - All reads/writes happen only inside Eino state handlers:
//     WithStatePreHandler, WithStatePostHandler, or compose.ProcessState.
//   - Eino serializes access to state within these handlers, so no additional
//     mutex/atomic is required as long as you never touch it outside handlers.
//   - Do not access AppState directly from outside handlers. For persistence,
//     use repositories/services (e.g., MessagesManager).
type AppState struct {
	ConversationID       string
	History              []*schema.Message // mutated only inside Eino state handlers
	NLUAnalysis          *NLUResponse      // set by parser post-handler, read by assembler
	Filters              *intent.Filters   // deterministic extraction, set alongside NLU
	ToolCallCount        int               // maintained in handlers (reset/increment)
	ToolCallLimitReached bool              // set when tool call limit is exceeded
	ToolCallIDSeq        int               // local sequence to synthesize tool_call_id when provider omits

	// UI context accumulated from update_ui_context tool calls
	ShortlistedProjects []string
	BookingStatus       string
	ToolsUsed           []string

	// Accumulated total LLM cost (USD) across model invocations for this query
	TotalCostUSD float64
}

// QueryInput represents the input for processing user queries.
type QueryInput struct {
	ConversationID string `json:"conversation_id"`
	Query          string `json:"query"`
}

// ResponseData holds the data for the response.
type ResponseData struct {
	Analysis       NLUResponse    // NLU analysis result
	Filters        intent.Filters // deterministic filter extraction
	ConversationID string         // Conversation identifier from state
}

// ChatResult is the structured outcome of one graph invocation, surfaced to
// the HTTP layer.
type ChatResult struct {
	Reply               string   `json:"response"`
	ShortlistedProjects []string `json:"shortlisted_project_ids,omitempty"`
	BookingStatus       string   `json:"booking_status,omitempty"`
	ToolsUsed           []string `json:"tools_used,omitempty"`
	UsageCostUSD        float64  `json:"usage_cost_usd,omitempty"`
}
