package nodes

import (
	"github.com/cloudwego/eino/schema"

	"github.com/priyaank17/real-estate-ai-assistant/internal/agent/model"
	logx "github.com/priyaank17/real-estate-ai-assistant/pkg/logger"
)

const DefaultMaxToolCalls = 10

// Keys for structured results attached to the final assistant message.
const (
	ExtraShortlist     = "shortlisted_project_ids"
	ExtraBookingStatus = "booking_status"
	ExtraToolsUsed     = "tools_used"
	ExtraUsageCostUSD  = "usage_cost_total_usd"
)

// ===== Small helpers to keep handlers simple/readable =====
// normalizeMaxToolCalls returns a sane default when the provided value is invalid.
func normalizeMaxToolCalls(n int) int {
	if n <= 0 {
		return DefaultMaxToolCalls
	}
	return n
}

// checkAndMarkToolLimit evaluates whether another tool call would exceed the
// limit and, if so, marks the state accordingly. Returns true when marked now.
func checkAndMarkToolLimit(state *model.AppState, max int) bool {
	max = normalizeMaxToolCalls(max)
	if !state.ToolCallLimitReached && state.ToolCallCount >= max {
		state.ToolCallLimitReached = true
		return true
	}
	return false
}

// incrementToolCallAndCheck increments the count and marks the state if it
// exceeds the limit after incrementing. Returns true when exceeded.
func incrementToolCallAndCheck(state *model.AppState, max int) bool {
	max = normalizeMaxToolCalls(max)
	state.ToolCallCount++
	if state.ToolCallCount > max {
		state.ToolCallLimitReached = true
		return true
	}
	return false
}

// recordUsageCost accumulates USD cost for a model completion into state and
// logs it per call.
func recordUsageCost(out *schema.Message, state *model.AppState, modelName, node string) {
	if out == nil || out.ResponseMeta == nil || out.ResponseMeta.Usage == nil || !model.CostEnabled() {
		return
	}
	usage := out.ResponseMeta.Usage
	inCost, outCost, total := model.ComputeCost(usage, model.ResolvePricing(modelName))
	state.TotalCostUSD += total

	logx.Debug().
		Str("node", node).
		Str("model", modelName).
		Int("prompt_tokens", usage.PromptTokens).
		Int("completion_tokens", usage.CompletionTokens).
		Float64("input_cost_usd", inCost).
		Float64("output_cost_usd", outCost).
		Float64("total_cost_usd", total).
		Msg("Model usage cost")
}
