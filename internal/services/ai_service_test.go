package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/careertrackhq/careertrack-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatCompletionServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Authorization"), "Bearer ")

		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestChatCompletionClientPrimary(t *testing.T) {
	srv := chatCompletionServer(t, http.StatusOK, "Highlight measurable impact.")

	client := NewChatCompletionClient(&config.Config{
		OpenAIAPIKey: "test-key",
		OpenAIAPIURL: srv.URL,
		OpenAIModel:  "gpt-4o-mini",
	})

	reply, err := client.Reply(context.Background(), "How do I improve my resume?")
	require.NoError(t, err)
	assert.Equal(t, "Highlight measurable impact.", reply)
}

func TestChatCompletionClientFallsBack(t *testing.T) {
	primary := chatCompletionServer(t, http.StatusInternalServerError, "")
	fallback := chatCompletionServer(t, http.StatusOK, "fallback reply")

	client := NewChatCompletionClient(&config.Config{
		OpenAIAPIKey:   "test-key",
		OpenAIAPIURL:   primary.URL,
		OpenAIModel:    "gpt-4o-mini",
		DeepSeekAPIKey: "ds-key",
		DeepSeekAPIURL: fallback.URL,
		DeepSeekModel:  "deepseek-chat",
	})

	reply, err := client.Reply(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "fallback reply", reply)
}

func TestChatCompletionClientAllProvidersFail(t *testing.T) {
	primary := chatCompletionServer(t, http.StatusBadGateway, "")
	fallback := chatCompletionServer(t, http.StatusBadGateway, "")

	client := NewChatCompletionClient(&config.Config{
		OpenAIAPIKey:   "test-key",
		OpenAIAPIURL:   primary.URL,
		DeepSeekAPIKey: "ds-key",
		DeepSeekAPIURL: fallback.URL,
	})

	_, err := client.Reply(context.Background(), "hello")
	assert.Error(t, err)
}

func TestChatCompletionClientUnconfigured(t *testing.T) {
	client := NewChatCompletionClient(&config.Config{})

	reply, err := client.Reply(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, fallbackReply, reply)
}
