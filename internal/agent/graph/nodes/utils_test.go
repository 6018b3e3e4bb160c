package nodes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/priyaank17/real-estate-ai-assistant/internal/agent/model"
)

func TestNormalizeMaxToolCalls(t *testing.T) {
	assert.Equal(t, DefaultMaxToolCalls, normalizeMaxToolCalls(0))
	assert.Equal(t, DefaultMaxToolCalls, normalizeMaxToolCalls(-3))
	assert.Equal(t, 5, normalizeMaxToolCalls(5))
}

func TestCheckAndMarkToolLimit(t *testing.T) {
	state := &model.AppState{ToolCallCount: 2}
	assert.False(t, checkAndMarkToolLimit(state, 3))
	assert.False(t, state.ToolCallLimitReached)

	state.ToolCallCount = 3
	assert.True(t, checkAndMarkToolLimit(state, 3))
	assert.True(t, state.ToolCallLimitReached)

	// already marked: not marked "now" again
	assert.False(t, checkAndMarkToolLimit(state, 3))
}

func TestIncrementToolCallAndCheck(t *testing.T) {
	state := &model.AppState{}

	for i := 1; i <= 3; i++ {
		exceeded := incrementToolCallAndCheck(state, 3)
		assert.False(t, exceeded)
		assert.Equal(t, i, state.ToolCallCount)
	}

	assert.True(t, incrementToolCallAndCheck(state, 3))
	assert.True(t, state.ToolCallLimitReached)
}

func TestAppendUnique(t *testing.T) {
	list := appendUnique(nil, "search_properties")
	list = appendUnique(list, "search_rag")
	list = appendUnique(list, "search_properties")

	assert.Equal(t, []string{"search_properties", "search_rag"}, list)
}

func TestDedupe(t *testing.T) {
	out := dedupe([]string{" a ", "b", "a", "", "b"})
	assert.Equal(t, []string{"a", "b"}, out)
}
