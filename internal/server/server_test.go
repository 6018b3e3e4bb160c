package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priyaank17/real-estate-ai-assistant/internal/agent/graph/nodes"
	"github.com/priyaank17/real-estate-ai-assistant/internal/agent/model"
	"github.com/priyaank17/real-estate-ai-assistant/internal/core"
)

type stubRunner struct {
	result model.ChatResult
	chunks []*schema.Message
	err    error

	lastInput model.QueryInput
}

func (s *stubRunner) Invoke(ctx context.Context, in model.QueryInput) (model.ChatResult, error) {
	s.lastInput = in
	if s.err != nil {
		return model.ChatResult{}, s.err
	}
	return s.result, nil
}

func (s *stubRunner) Stream(ctx context.Context, in model.QueryInput) (*schema.StreamReader[*schema.Message], error) {
	s.lastInput = in
	if s.err != nil {
		return nil, s.err
	}
	return schema.StreamReaderFromArray(s.chunks), nil
}

func newTestServer(runner *stubRunner) *httptest.Server {
	return httptest.NewServer(New(runner, core.Testing).Router())
}

func postJSON(t *testing.T, url string, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealth(t *testing.T) {
	ts := newTestServer(&stubRunner{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestCreateConversation(t *testing.T) {
	ts := newTestServer(&stubRunner{})
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/conversations", `{}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body createConversationResponse
	decode(t, resp, &body)
	assert.NotEmpty(t, body.ConversationID)
}

func TestChat(t *testing.T) {
	runner := &stubRunner{result: model.ChatResult{
		Reply:               "Here are two options in Dubai.",
		ShortlistedProjects: []string{"id-1", "id-2"},
		ToolsUsed:           []string{"search_properties", "update_ui_context"},
		UsageCostUSD:        0.0021,
	}}
	ts := newTestServer(runner)
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/agents/chat", `{"message":"2br in dubai","conversation_id":"c1"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body chatResponse
	decode(t, resp, &body)

	assert.Equal(t, "Here are two options in Dubai.", body.Response)
	assert.Equal(t, "c1", body.ConversationID)
	require.NotNil(t, body.Data)
	assert.Equal(t, []string{"id-1", "id-2"}, body.Data.ShortlistedProjectIDs)
	assert.Equal(t, []string{"search_properties", "update_ui_context"}, body.ToolsUsed)
	assert.Equal(t, "2br in dubai", runner.lastInput.Query)
	assert.Equal(t, "c1", runner.lastInput.ConversationID)
}

func TestChat_MintsConversationID(t *testing.T) {
	runner := &stubRunner{result: model.ChatResult{Reply: "hello"}}
	ts := newTestServer(runner)
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/agents/chat", `{"message":"hello"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body chatResponse
	decode(t, resp, &body)
	assert.NotEmpty(t, body.ConversationID)
	assert.Nil(t, body.Data)
}

func TestChat_ValidationErrors(t *testing.T) {
	ts := newTestServer(&stubRunner{})
	defer ts.Close()

	for _, body := range []string{`{}`, `{"message":"   "}`, `not json`} {
		resp := postJSON(t, ts.URL+"/api/agents/chat", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body %q", body)
		resp.Body.Close()
	}
}

func TestChat_RunnerError(t *testing.T) {
	ts := newTestServer(&stubRunner{err: fmt.Errorf("graph exploded")})
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/agents/chat", `{"message":"hello"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	resp.Body.Close()
}

func TestChatStream(t *testing.T) {
	final := schema.AssistantMessage("Here you go.", nil)
	final.Extra = map[string]any{
		nodes.ExtraShortlist:     []string{"id-1"},
		nodes.ExtraBookingStatus: "confirmed",
	}
	runner := &stubRunner{chunks: []*schema.Message{final}}
	ts := newTestServer(runner)
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/agents/chat/stream", `{"message":"book it","conversation_id":"c9"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	out := readAll(t, resp)

	assert.Contains(t, out, "event:message")
	assert.Contains(t, out, "Here you go.")
	assert.Contains(t, out, "event:done")
	assert.Contains(t, out, `"booking_status":"confirmed"`)
	assert.Contains(t, out, `"conversation_id":"c9"`)
}

func TestChatStream_StopsWhenClientGone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := schema.StreamReaderFromArray([]*schema.Message{
		schema.AssistantMessage("", nil),
	})

	events := make(chan sseEvent) // no consumer, like a dropped connection
	finished := make(chan struct{})
	go func() {
		pumpStream(ctx, reader, "c9", events)
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("stream pump kept running after the client context was cancelled")
	}
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(&stubRunner{})
	defer ts.Close()

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/agents/chat", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
}

func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	var sb strings.Builder
	buf := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(buf)
		sb.Write(buf[:n])
		if err != nil {
			break
		}
	}
	return sb.String()
}
