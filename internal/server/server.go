package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/priyaank17/real-estate-ai-assistant/internal/agent/graph"
	"github.com/priyaank17/real-estate-ai-assistant/internal/agent/model"
	"github.com/priyaank17/real-estate-ai-assistant/internal/core"
	logx "github.com/priyaank17/real-estate-ai-assistant/pkg/logger"

	"github.com/cloudwego/eino/schema"
)

const maxMessageLen = 8000

// Server exposes the agent graph over HTTP.
type Server struct {
	runner graph.Runner
	env    core.Environment
}

func New(runner graph.Runner, env core.Environment) *Server {
	return &Server{runner: runner, env: env}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	if s.env.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), CORS(), RequestLogger())

	api := r.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.POST("/conversations", s.handleCreateConversation)
		api.POST("/agents/chat", s.handleChat)
		api.POST("/agents/chat/stream", s.handleChatStream)
	}

	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type createConversationResponse struct {
	ConversationID string `json:"conversation_id"`
}

func (s *Server) handleCreateConversation(c *gin.Context) {
	c.JSON(http.StatusOK, createConversationResponse{ConversationID: uuid.NewString()})
}

type chatRequest struct {
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversation_id"`
}

type chatData struct {
	ShortlistedProjectIDs []string `json:"shortlisted_project_ids,omitempty"`
	BookingStatus         string   `json:"booking_status,omitempty"`
}

type chatResponse struct {
	Response       string    `json:"response"`
	ConversationID string    `json:"conversation_id"`
	Data           *chatData `json:"data,omitempty"`
	ToolsUsed      []string  `json:"tools_used,omitempty"`
	UsageCostUSD   float64   `json:"usage_cost_usd,omitempty"`
}

func (s *Server) bindChatRequest(c *gin.Context) (chatRequest, bool) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return req, false
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return req, false
	}
	if len(req.Message) > maxMessageLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message too long"})
		return req, false
	}
	if req.ConversationID == "" {
		req.ConversationID = uuid.NewString()
	}
	return req, true
}

func (s *Server) handleChat(c *gin.Context) {
	req, ok := s.bindChatRequest(c)
	if !ok {
		return
	}

	result, err := s.runner.Invoke(c.Request.Context(), model.QueryInput{
		ConversationID: req.ConversationID,
		Query:          req.Message,
	})
	if err != nil {
		logx.Error().Err(err).Str("conversation_id", req.ConversationID).Msg("Chat invocation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process message"})
		return
	}

	c.JSON(http.StatusOK, buildChatResponse(req.ConversationID, result))
}

func buildChatResponse(conversationID string, result model.ChatResult) chatResponse {
	resp := chatResponse{
		Response:       result.Reply,
		ConversationID: conversationID,
		ToolsUsed:      result.ToolsUsed,
		UsageCostUSD:   result.UsageCostUSD,
	}
	if len(result.ShortlistedProjects) > 0 || result.BookingStatus != "" {
		resp.Data = &chatData{
			ShortlistedProjectIDs: result.ShortlistedProjects,
			BookingStatus:         result.BookingStatus,
		}
	}
	return resp
}

type sseEvent struct {
	name string
	data any
}

func (s *Server) handleChatStream(c *gin.Context) {
	req, ok := s.bindChatRequest(c)
	if !ok {
		return
	}

	reader, err := s.runner.Stream(c.Request.Context(), model.QueryInput{
		ConversationID: req.ConversationID,
		Query:          req.Message,
	})
	if err != nil {
		logx.Error().Err(err).Str("conversation_id", req.ConversationID).Msg("Chat stream failed to start")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process message"})
		return
	}
	defer reader.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	events := make(chan sseEvent, 8)
	go pumpStream(c.Request.Context(), reader, req.ConversationID, events)

	c.Stream(func(w io.Writer) bool {
		ev, open := <-events
		if !open {
			return false
		}
		c.SSEvent(ev.name, ev.data)
		return true
	})
}

// pumpStream reads graph output chunks and converts them into SSE events. The
// terminal event carries the assembled structured payload.
func pumpStream(ctx context.Context, reader *schema.StreamReader[*schema.Message], conversationID string, events chan<- sseEvent) {
	defer close(events)

	var chunks []*schema.Message
	for {
		chunk, err := reader.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logx.Error().Err(err).Str("conversation_id", conversationID).Msg("Chat stream receive failed")
			select {
			case events <- sseEvent{name: "error", data: gin.H{"error": "stream interrupted"}}:
			case <-ctx.Done():
			}
			return
		}
		if chunk == nil {
			continue
		}
		chunks = append(chunks, chunk)
		if chunk.Content != "" {
			select {
			case events <- sseEvent{name: "message", data: gin.H{"text": chunk.Content}}:
			case <-ctx.Done():
				return
			}
		}
	}

	full, err := schema.ConcatMessages(chunks)
	if err != nil || full == nil {
		logx.Error().Err(err).Str("conversation_id", conversationID).Msg("Failed to assemble streamed message")
		select {
		case events <- sseEvent{name: "error", data: gin.H{"error": "stream interrupted"}}:
		case <-ctx.Done():
		}
		return
	}

	select {
	case events <- sseEvent{name: "done", data: buildChatResponse(conversationID, graph.ResultFromMessage(full))}:
	case <-ctx.Done():
	}
}
