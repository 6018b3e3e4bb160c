package conversations

import (
	"context"
	"fmt"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priyaank17/real-estate-ai-assistant/internal/agent/model"
)

type memoryRepo struct {
	messages map[string][]*schema.Message
	failAdd  bool
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{messages: map[string][]*schema.Message{}}
}

func (m *memoryRepo) AddMessage(ctx context.Context, conversationID string, msg *schema.Message) error {
	if m.failAdd {
		return fmt.Errorf("redis down")
	}
	m.messages[conversationID] = append(m.messages[conversationID], msg)
	return nil
}

func (m *memoryRepo) LoadHistory(ctx context.Context, conversationID string) (*model.ConversationHistory, error) {
	return &model.ConversationHistory{
		ConversationID: conversationID,
		Messages:       m.messages[conversationID],
	}, nil
}

func (m *memoryRepo) ClearHistory(ctx context.Context, conversationID string) error {
	delete(m.messages, conversationID)
	return nil
}

func (m *memoryRepo) GetMessageCount(ctx context.Context, conversationID string) (int, error) {
	return len(m.messages[conversationID]), nil
}

func newManager(repo model.ConversationRepository, maxTurns int) *MessagesManager {
	var cfg model.ConversationConfig
	cfg.NLU.MaxTurns = maxTurns
	return NewMessagesManager(repo, cfg)
}

func TestProcessNLUMessage_SavesAndBuildsContext(t *testing.T) {
	repo := newMemoryRepo()
	mm := newManager(repo, 5)

	out, err := mm.ProcessNLUMessage(context.Background(), "c1", "2br in dubai")
	require.NoError(t, err)

	assert.Contains(t, out, "<conversation_context>")
	assert.Contains(t, out, "UserMessage(2br in dubai)")
	assert.Contains(t, out, "<current_message_to_analyze>")
	require.Len(t, repo.messages["c1"], 1)
}

func TestProcessNLUMessage_AddFailure(t *testing.T) {
	repo := newMemoryRepo()
	repo.failAdd = true
	mm := newManager(repo, 5)

	_, err := mm.ProcessNLUMessage(context.Background(), "c1", "hello")
	assert.Error(t, err)
}

func TestBuildNLUContext_TrimsToMaxTurns(t *testing.T) {
	repo := newMemoryRepo()
	mm := newManager(repo, 2)

	ctx := context.Background()
	for i := 0; i < 4; i++ {
		_, err := mm.ProcessNLUMessage(ctx, "c1", fmt.Sprintf("message %d", i))
		require.NoError(t, err)
	}

	out, err := mm.ProcessNLUMessage(ctx, "c1", "latest")
	require.NoError(t, err)

	// only the last 2 turns survive in the context block
	assert.NotContains(t, out, "UserMessage(message 0)")
	assert.NotContains(t, out, "UserMessage(message 2)")
	assert.Contains(t, out, "UserMessage(message 3)")
}

func TestBuildResponseContext(t *testing.T) {
	repo := newMemoryRepo()
	mm := newManager(repo, 5)
	ctx := context.Background()

	require.NoError(t, repo.AddMessage(ctx, "c1", schema.UserMessage("hi")))
	require.NoError(t, mm.SaveResponse(ctx, "c1", "hello, how can I help?"))

	messages, err := mm.BuildResponseContext(ctx, "c1", "system prompt here")
	require.NoError(t, err)

	require.Len(t, messages, 3)
	assert.Equal(t, schema.System, messages[0].Role)
	assert.Equal(t, "system prompt here", messages[0].Content)
	assert.Equal(t, schema.User, messages[1].Role)
	assert.Equal(t, schema.Assistant, messages[2].Role)
}
