package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient("test-token", WithBaseURL(server.URL))
	return client, server
}

func TestSendMessage(t *testing.T) {
	var gotPath string
	var gotPayload map[string]interface{}
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.Write([]byte(`{"ok": true, "result": {}}`))
	})
	defer server.Close()

	err := client.SendMessage(context.Background(), 12345, "안녕하세요")
	require.NoError(t, err)

	assert.Equal(t, "/bottest-token/sendMessage", gotPath)
	assert.Equal(t, float64(12345), gotPayload["chat_id"])
	assert.Equal(t, "안녕하세요", gotPayload["text"])
	assert.Equal(t, false, gotPayload["disable_web_page_preview"])
	assert.NotContains(t, gotPayload, "parse_mode")
}

func TestSendMessageAPIFailure(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok": false, "description": "Bad Request: chat not found"}`))
	})
	defer server.Close()

	err := client.SendMessage(context.Background(), 1, "x")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Bad Request: chat not found", apiErr.Description)
	assert.Equal(t, "sendMessage", apiErr.Method)
}

func TestGetUpdates(t *testing.T) {
	var gotPayload map[string]interface{}
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.Write([]byte(`{"ok": true, "result": [
			{"update_id": 42, "message": {"message_id": 1, "text": "/report", "chat": {"id": 777}}},
			{"update_id": 43, "message": {"message_id": 2, "text": "/list", "chat": {"id": 777}}}
		]}`))
	})
	defer server.Close()

	updates, err := client.GetUpdates(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, float64(42), gotPayload["offset"])
	assert.Equal(t, float64(DefaultPollSeconds), gotPayload["timeout"])
	assert.Equal(t, []interface{}{"message"}, gotPayload["allowed_updates"])

	require.Len(t, updates, 2)
	assert.Equal(t, int64(42), updates[0].UpdateID)
	assert.Equal(t, "/report", updates[0].Message.Text)
	assert.Equal(t, int64(777), updates[0].Message.Chat.ID)
}

func TestGetUpdatesEmpty(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"ok": true, "result": []}`))
	})
	defer server.Close()

	updates, err := client.GetUpdates(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, updates)
}

func TestMalformedEnvelopeIsAnError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`not json`))
	})
	defer server.Close()

	_, err := client.GetUpdates(context.Background(), 0)
	assert.Error(t, err)
}

func TestWithPollSeconds(t *testing.T) {
	c := NewClient("t", WithPollSeconds(5))
	assert.Equal(t, 5, c.pollSeconds)

	c = NewClient("t", WithPollSeconds(0))
	assert.Equal(t, DefaultPollSeconds, c.pollSeconds, "non-positive values keep the default")
}
