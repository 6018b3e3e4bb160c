package nodes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/priyaank17/real-estate-ai-assistant/internal/agent/graph/conversations"
	"github.com/priyaank17/real-estate-ai-assistant/internal/agent/graph/parsers"
	"github.com/priyaank17/real-estate-ai-assistant/internal/agent/graph/prompts"
	"github.com/priyaank17/real-estate-ai-assistant/internal/agent/graph/tools"
	"github.com/priyaank17/real-estate-ai-assistant/internal/agent/intent"
	"github.com/priyaank17/real-estate-ai-assistant/internal/agent/model"
	logx "github.com/priyaank17/real-estate-ai-assistant/pkg/logger"
)

// Graph node keys.
const (
	NodeInputConverter    = "input_converter"
	NodeNLUChatModel      = "nlu_chat_model"
	NodeParser            = "nlu_parser"
	NodeHumanHandoff      = "human_handoff"
	NodeResponseAssembler = "response_assembler"
	NodeResponseChatModel = "response_chat_model"
	NodeToolExecutor      = "tool_executor"
)

// NewInputConverterPreHandler creates the pre-handler for InputConverter node
func NewInputConverterPreHandler() func(context.Context, model.QueryInput, *model.AppState) (model.QueryInput, error) {
	return func(ctx context.Context, in model.QueryInput, s *model.AppState) (model.QueryInput, error) {
		if s.ConversationID == "" {
			s.ConversationID = in.ConversationID
		}
		// Reset per-query state
		s.ToolCallCount = 0
		s.ToolCallLimitReached = false
		s.ToolCallIDSeq = 0
		s.TotalCostUSD = 0
		s.ShortlistedProjects = nil
		s.BookingStatus = ""
		s.ToolsUsed = nil

		// Deterministic filter extraction runs up front so the assembler can
		// ground the response prompt even when the NLU model under-extracts.
		f := intent.Extract(in.Query)
		s.Filters = &f

		return in, nil
	}
}

// NewInputConverterNode creates the InputConverter node for NLU processing
func NewInputConverterNode(
	mm *conversations.MessagesManager,
	nluCfg *model.NLUModelConfig,
) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, input model.QueryInput) ([]*schema.Message, error) {
		conversationCtx, err := mm.ProcessNLUMessage(ctx, input.ConversationID, input.Query)
		if err != nil {
			return nil, fmt.Errorf("error getting conversation context: %w", err)
		}

		// Generate system prompt via Eino prompt component (enables prompt callbacks)
		systemPrompt, err := prompts.RenderNLUSystem(ctx, nluCfg)
		if err != nil {
			return nil, fmt.Errorf("render nlu system prompt: %w", err)
		}

		messages := []*schema.Message{
			schema.SystemMessage(systemPrompt),
			schema.UserMessage(conversationCtx),
		}

		return messages, nil
	})
}

// NewNLUChatModelPostHandler computes and logs usage cost for the NLU model.
func NewNLUChatModelPostHandler(modelName string) func(context.Context, *schema.Message, *model.AppState) (*schema.Message, error) {
	return func(ctx context.Context, out *schema.Message, state *model.AppState) (*schema.Message, error) {
		recordUsageCost(out, state, modelName, NodeNLUChatModel)
		return out, nil
	}
}

// NewParserNode creates the Parser node for NLU response parsing
func NewParserNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, resp *schema.Message) (model.NLUResponse, error) {
		result, err := parsers.ParseNLUResponse(resp.Content)
		if err != nil {
			logx.Error().Err(err).Msg("Error parsing NLU response")
			return model.NLUResponse{}, err
		}
		if result == nil {
			logx.Error().Msg("Parsing returned nil result")
			return model.NLUResponse{}, fmt.Errorf("parsing returned nil result")
		}
		return *result, nil
	})
}

// NewParserPostHandler creates the post-handler for Parser node
func NewParserPostHandler() func(context.Context, model.NLUResponse, *model.AppState) (model.NLUResponse, error) {
	return func(ctx context.Context, out model.NLUResponse, state *model.AppState) (model.NLUResponse, error) {
		// Save NLU to State
		state.NLUAnalysis = &out

		logx.Debug().
			Str("conversation_id", state.ConversationID).
			Str("primary_intent", out.PrimaryIntent).
			Float64("importance_score", out.ImportanceScore).
			Msg("NLU analysis stored")
		return out, nil
	}
}

// NewHumanHandoffCondition creates the condition function for routing to human handoff
func NewHumanHandoffCondition() func(context.Context, model.NLUResponse) (string, error) {
	return func(ctx context.Context, input model.NLUResponse) (string, error) {
		s := input.Sentiment
		if s.Label == "negative" && s.Confidence > 0.94 {
			logx.Debug().Str("sentiment_label", s.Label).Float64("sentiment_confidence", s.Confidence).
				Msg("Routing to agent handoff - high confidence negative sentiment detected")
			return NodeHumanHandoff, nil
		}
		return NodeResponseAssembler, nil
	}
}

// NewHumanHandoffNode creates the HumanHandoff node for escalating negative sentiment cases
func NewHumanHandoffNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, input model.NLUResponse) (*schema.Message, error) {
		sentiment := input.Sentiment
		logx.Warn().
			Str("sentiment_label", sentiment.Label).
			Float64("sentiment_confidence", sentiment.Confidence).
			Msg("Human intervention required for negative sentiment")

		return schema.AssistantMessage(
			"I'm sorry this has been frustrating. I've flagged this conversation for one of our property consultants, who will reach out to you shortly.",
			nil,
		), nil
	})
}

// NewResponseAssemblerNode creates the ResponseAssembler node for building response context
func NewResponseAssemblerNode(
	mm *conversations.MessagesManager,
	responsePromptConfig *model.ResponsePromptConfig,
) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, nluResult model.NLUResponse) ([]*schema.Message, error) {
		// Get data from state
		var data model.ResponseData
		err := compose.ProcessState(ctx, func(_ context.Context, state *model.AppState) error {
			if state.NLUAnalysis == nil {
				return fmt.Errorf("missing NLU analysis in state")
			}
			data = model.ResponseData{
				Analysis:       *state.NLUAnalysis,
				ConversationID: state.ConversationID,
			}
			if state.Filters != nil {
				data.Filters = *state.Filters
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to access state: %w", err)
		}

		respSysPrompt, err := prompts.RenderResponseSystem(ctx, *responsePromptConfig, data)
		if err != nil {
			return nil, fmt.Errorf("generate response prompt: %w", err)
		}

		// Build context with conversation history
		messages, err := mm.BuildResponseContext(ctx, data.ConversationID, respSysPrompt)
		if err != nil {
			return nil, fmt.Errorf("build response context: %w", err)
		}

		return messages, nil
	})
}

// NewResponseChatModelPreHandler creates the pre-handler for ResponseChatModel node
func NewResponseChatModelPreHandler(maxToolCalls int) func(context.Context, []*schema.Message, *model.AppState) ([]*schema.Message, error) {
	return func(ctx context.Context, in []*schema.Message, state *model.AppState) ([]*schema.Message, error) {
		// Heuristic fix for Gemini OpenAI-compat: ensure tool results carry tool_call_id
		if len(in) > 0 {
			last := in[len(in)-1]
			if last != nil && last.Role == schema.Tool && strings.TrimSpace(last.ToolCallID) == "" {
				for i := len(state.History) - 1; i >= 0; i-- {
					msg := state.History[i]
					if msg == nil || msg.Role != schema.Assistant || len(msg.ToolCalls) == 0 {
						continue
					}
					id := msg.ToolCalls[0].ID
					if strings.TrimSpace(id) != "" {
						last.ToolCallID = id
					}
					break
				}
			}
		}

		state.History = append(state.History, in...)

		if checkAndMarkToolLimit(state, maxToolCalls) {
			maxToolCalls = normalizeMaxToolCalls(maxToolCalls)
			wrapUp := &schema.Message{
				Role: schema.System,
				Content: fmt.Sprintf(
					"SYSTEM NOTICE: You have reached the maximum tool call limit (%d). "+
						"Please synthesize a helpful response using the information you've already gathered. "+
						"Acknowledge any limitations in your response if you couldn't complete all necessary tool calls.",
					maxToolCalls,
				),
			}
			state.History = append(state.History, wrapUp)
		}

		return state.History, nil
	}
}

// NewResponseChatModelPostHandler creates the post-handler for ResponseChatModel node
func NewResponseChatModelPostHandler(
	mm *conversations.MessagesManager,
	modelName string,
) func(context.Context, *schema.Message, *model.AppState) (*schema.Message, error) {
	return func(ctx context.Context, out *schema.Message, state *model.AppState) (*schema.Message, error) {
		recordUsageCost(out, state, modelName, NodeResponseChatModel)

		// Normalize tool calls: some providers (Gemini OpenAI-compat) may omit tool_call IDs.
		if out != nil && len(out.ToolCalls) > 0 {
			for i := range out.ToolCalls {
				if strings.TrimSpace(out.ToolCalls[i].ID) == "" {
					state.ToolCallIDSeq++
					out.ToolCalls[i].ID = fmt.Sprintf("call_%d", state.ToolCallIDSeq)
				}
			}
		}

		// Lift UI context arguments out of tool calls so the final payload can
		// carry the shortlist without another round-trip.
		captureUIContext(out, state)

		state.History = append(state.History, out)

		if len(out.ToolCalls) > 0 {
			logx.Debug().Int("tool_count", len(out.ToolCalls)).Msg("Calling tools")
		} else {
			logx.Debug().Msg("AI response ready")
		}

		// Save only when it's a final assistant message (no further tool calls),
		// or when we've reached the tool-call limit but still have a content response.
		final := out.Role == schema.Assistant && (len(out.ToolCalls) == 0 || state.ToolCallLimitReached) && strings.TrimSpace(out.Content) != ""
		if final {
			if err := mm.SaveResponse(ctx, state.ConversationID, out.Content); err != nil {
				logx.Error().
					Str("conversation_id", state.ConversationID).
					Err(err).
					Msg("Error saving assistant response in postHandlerResponse")
			}

			// Expose structured results on the outgoing message
			if out.Extra == nil {
				out.Extra = map[string]any{}
			}
			if len(state.ShortlistedProjects) > 0 {
				out.Extra[ExtraShortlist] = state.ShortlistedProjects
			}
			if state.BookingStatus != "" {
				out.Extra[ExtraBookingStatus] = state.BookingStatus
			}
			if len(state.ToolsUsed) > 0 {
				out.Extra[ExtraToolsUsed] = state.ToolsUsed
			}
			if state.TotalCostUSD > 0 {
				out.Extra[ExtraUsageCostUSD] = state.TotalCostUSD
			}
		}

		return out, nil
	}
}

// captureUIContext parses update_ui_context tool-call arguments into state.
func captureUIContext(out *schema.Message, state *model.AppState) {
	if out == nil {
		return
	}
	for _, tc := range out.ToolCalls {
		if tc.Function.Name != tools.ToolUpdateUIContext {
			continue
		}
		var args struct {
			ShortlistedProjectIDs []string `json:"shortlisted_project_ids"`
			BookingStatus         string   `json:"booking_status"`
		}
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
			logx.Warn().Err(err).Msg("Failed to parse update_ui_context arguments")
			continue
		}
		if len(args.ShortlistedProjectIDs) > 0 {
			state.ShortlistedProjects = dedupe(args.ShortlistedProjectIDs)
		}
		if args.BookingStatus != "" {
			state.BookingStatus = args.BookingStatus
		}
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// NewToolExecutorCondition creates the condition function for tool execution routing
func NewToolExecutorCondition() func(context.Context, *schema.Message) (string, error) {
	return func(ctx context.Context, input *schema.Message) (string, error) {
		// Check if tool limit was reached
		var limitReached bool
		compose.ProcessState(ctx, func(_ context.Context, state *model.AppState) error {
			limitReached = state.ToolCallLimitReached
			return nil
		})

		if limitReached {
			logx.Debug().Msg("Tool limit reached previously - routing to end")
			return compose.END, nil
		}

		if len(input.ToolCalls) > 0 {
			logx.Debug().Int("tool_count", len(input.ToolCalls)).Msg("Routing to ToolExecutor")
			return NodeToolExecutor, nil
		}

		return compose.END, nil
	}
}

// NewToolExecutorPreHandler creates the pre-handler for ToolExecutor node
func NewToolExecutorPreHandler(maxToolCalls int) func(context.Context, *schema.Message, *model.AppState) (*schema.Message, error) {
	return func(ctx context.Context, in *schema.Message, state *model.AppState) (*schema.Message, error) {
		// Record which tools this turn exercised, for the API payload
		for _, tc := range in.ToolCalls {
			name := strings.TrimSpace(tc.Function.Name)
			if name == "" {
				continue
			}
			state.ToolsUsed = appendUnique(state.ToolsUsed, name)
		}

		// Increment tool call counter
		exceeded := incrementToolCallAndCheck(state, maxToolCalls)

		logx.Debug().
			Int("tool_call_count", state.ToolCallCount).
			Str("conversation_id", state.ConversationID).
			Msg("Tool execution attempt")

		if exceeded {
			maxToolCalls = normalizeMaxToolCalls(maxToolCalls)
			logx.Warn().
				Int("tool_call_count", state.ToolCallCount).
				Int("max_tool_calls", maxToolCalls).
				Str("conversation_id", state.ConversationID).
				Msg("Tool call limit exceeded - flagging and continuing")
		}

		return in, nil
	}
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
