package openai_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/newsgenie"
	"github.com/fwojciec/newsgenie/openai"
	openaisdk "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc) openaisdk.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return openaisdk.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(srv.URL+"/v1/"),
		option.WithMaxRetries(0),
	)
}

func completion(content string) string {
	b, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 0,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	})
	return string(b)
}

func TestSummarizer_Summarize(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty text without calling the API", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		})

		_, err := openai.NewSummarizer(client).Summarize(context.Background(), " ")

		require.Error(t, err)
		assert.Equal(t, newsgenie.EINVALID, newsgenie.ErrorCode(err))
	})

	t.Run("sends the prompt and normalizes the answer", func(t *testing.T) {
		t.Parallel()

		var body map[string]any
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &body)
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, completion("1. First point.\n2. Second point.\n3. Third.\n4. Fourth.\n5. Fifth."))
		})

		got, err := openai.NewSummarizer(client).Summarize(context.Background(), "The council approved the budget.")

		require.NoError(t, err)
		assert.Equal(t, []string{"First point.", "Second point.", "Third.", "Fourth.", "Fifth."}, got.Bullets)
		assert.Equal(t, "gpt-4o-mini", body["model"])
		assert.InDelta(t, 0.2, body["temperature"], 0.001)
		messages, ok := body["messages"].([]any)
		require.True(t, ok)
		require.Len(t, messages, 1)
		msg, ok := messages[0].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, msg["content"], "The council approved the budget.")
	})

	t.Run("honors a model override", func(t *testing.T) {
		t.Parallel()

		var model string
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				Model string `json:"model"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			model = body.Model
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, completion("• a"))
		})

		got, err := openai.NewSummarizer(client, openai.WithModel("gpt-4.1-mini")).Summarize(context.Background(), "text")

		require.NoError(t, err)
		assert.Equal(t, "gpt-4.1-mini", model)
		assert.Len(t, got.Bullets, newsgenie.BulletCount)
	})

	t.Run("wraps API errors", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error":{"message":"bad key","type":"invalid_request_error"}}`)
		})

		_, err := openai.NewSummarizer(client).Summarize(context.Background(), "text")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "openai chat completion")
	})

	t.Run("reports missing choices", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"id":"x","object":"chat.completion","created":0,"model":"gpt-4o-mini","choices":[]}`)
		})

		_, err := openai.NewSummarizer(client).Summarize(context.Background(), "text")

		require.Error(t, err)
		assert.Equal(t, newsgenie.EINTERNAL, newsgenie.ErrorCode(err))
	})
}
