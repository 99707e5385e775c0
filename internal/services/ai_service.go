package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/careertrackhq/careertrack-backend/internal/config"
)

const assistantSystemPrompt = "You are an AI career coach. Be concise and practical."

// fallbackReply is returned when no provider is configured, so development
// setups keep working without an API key.
const fallbackReply = "AI is not configured. Rough tip: quantify achievements and use action verbs."

// AIClient produces an assistant reply for a user message.
type AIClient interface {
	Reply(ctx context.Context, message string) (string, error)
}

// ChatCompletionClient talks to OpenAI-compatible chat-completions endpoints,
// trying the primary provider first and falling back to DeepSeek.
type ChatCompletionClient struct {
	cfg    *config.Config
	client *http.Client
}

func NewChatCompletionClient(cfg *config.Config) *ChatCompletionClient {
	timeout := cfg.AITimeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &ChatCompletionClient{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *ChatCompletionClient) Reply(ctx context.Context, message string) (string, error) {
	if c.cfg.OpenAIAPIKey == "" && c.cfg.DeepSeekAPIKey == "" {
		return fallbackReply, nil
	}

	reply, err := c.callProvider(ctx, c.cfg.OpenAIAPIURL, c.cfg.OpenAIAPIKey, c.cfg.OpenAIModel, message)
	if err == nil {
		return reply, nil
	}
	slog.Warn("primary AI provider failed, trying DeepSeek", "error", err)

	if c.cfg.DeepSeekAPIKey != "" {
		reply, err = c.callProvider(ctx, c.cfg.DeepSeekAPIURL, c.cfg.DeepSeekAPIKey, c.cfg.DeepSeekModel, message)
		if err == nil {
			return reply, nil
		}
		slog.Warn("DeepSeek also failed", "error", err)
	}

	return "", fmt.Errorf("all AI providers failed: %w", err)
}

func (c *ChatCompletionClient) callProvider(ctx context.Context, apiURL, apiKey, model, message string) (string, error) {
	if apiKey == "" {
		return "", fmt.Errorf("API key not configured")
	}

	body, err := json.Marshal(chatCompletionRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: assistantSystemPrompt},
			{Role: "user", Content: message},
		},
		Temperature: 0.4,
		MaxTokens:   300,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("provider returned %d: %s", resp.StatusCode, string(raw))
	}

	var parsed chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("provider returned no choices")
	}

	reply := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if reply == "" {
		reply = "No response."
	}
	return reply, nil
}
