package prompts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priyaank17/real-estate-ai-assistant/internal/agent/intent"
	"github.com/priyaank17/real-estate-ai-assistant/internal/agent/model"
)

func TestRenderNLUSystem(t *testing.T) {
	cfg := &model.NLUModelConfig{
		DefaultIntent:    "search_property:0.8",
		AdditionalIntent: "ask_price:0.6",
		DefaultEntity:    "city, budget",
		AdditionalEntity: "feature",
	}

	out, err := RenderNLUSystem(context.Background(), cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "search_property:0.8")
	assert.Contains(t, out, "ask_price:0.6")
	assert.Contains(t, out, "<||>")
	assert.Contains(t, out, "<|COMPLETE|>")
	assert.NotContains(t, out, "{TD}")
	assert.NotContains(t, out, "{default_intent}")
}

func TestRenderNLUSystem_NilConfig(t *testing.T) {
	_, err := RenderNLUSystem(context.Background(), nil)
	assert.Error(t, err)
}

func TestRenderResponseSystem(t *testing.T) {
	data := model.ResponseData{
		Analysis: model.NLUResponse{
			PrimaryIntent:   "search_property",
			PrimaryLanguage: "en",
			Sentiment:       model.Sentiment{Label: "positive"},
		},
		Filters:        intent.Filters{City: "dubai", Bedrooms: 2},
		ConversationID: "c1",
	}
	cfg := model.ResponsePromptConfig{
		BusinessType: "real estate brokerage",
		BusinessName: "Silver Land Properties",
	}

	out, err := RenderResponseSystem(context.Background(), cfg, data)
	require.NoError(t, err)

	assert.Contains(t, out, "Silver Land Properties")
	assert.Contains(t, out, "search_properties")
	assert.Contains(t, out, "update_ui_context")
	assert.Contains(t, out, "book_viewing")
	assert.Contains(t, out, `"city":"dubai"`)
	assert.Contains(t, out, "eng", "en must normalize to ISO 639-3")
	assert.Contains(t, out, "search_property")
	assert.Contains(t, out, "positive")
}

func TestRenderResponseSystem_Defaults(t *testing.T) {
	out, err := RenderResponseSystem(context.Background(), model.ResponsePromptConfig{}, model.ResponseData{})
	require.NoError(t, err)

	assert.Contains(t, out, "eng")
	assert.Contains(t, out, "neutral")
	assert.Contains(t, out, "unknown")
}
