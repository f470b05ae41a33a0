package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jzq1291/chatbot/internal/core"
	"github.com/jzq1291/chatbot/pkg/retry"
)

// OpenAICompatible talks to any endpoint implementing the OpenAI chat
// completions API. Transient failures (transport errors, 429, 5xx) are
// retried with backoff; other failures surface immediately.
type OpenAICompatible struct {
	baseProvider
	authHeader   string
	authPrefix   string
	extraHeaders map[string]string
	retrier      *retry.Retrier
}

type OpenAICompatibleConfig struct {
	BaseURL      string
	APIKey       string
	Model        string
	AuthHeader   string // e.g., "Authorization"
	AuthPrefix   string // e.g., "Bearer "
	ExtraHeaders map[string]string
}

func NewOpenAICompatible(cfg OpenAICompatibleConfig) *OpenAICompatible {
	return &OpenAICompatible{
		baseProvider: newBaseProvider(cfg.BaseURL, cfg.APIKey, cfg.Model),
		authHeader:   cfg.AuthHeader,
		authPrefix:   cfg.AuthPrefix,
		extraHeaders: cfg.ExtraHeaders,
		retrier:      retry.NewDefaultRetrier(),
	}
}

func (o *OpenAICompatible) Complete(ctx context.Context, messages []core.Message) (string, error) {
	payload := map[string]any{
		"model":    o.model,
		"messages": messages,
	}

	headers := make(map[string]string)
	if o.authHeader != "" && o.apiKey != "" {
		headers[o.authHeader] = o.authPrefix + o.apiKey
	}
	for k, v := range o.extraHeaders {
		headers[k] = v
	}

	var reply string
	var permanent error

	err := o.retrier.Do(ctx, func() error {
		resp, err := o.doRequest(ctx, http.MethodPost, "/v1/chat/completions", payload, headers)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
		}

		// Anything else that fails here will not improve with a retry.
		if resp.StatusCode != http.StatusOK {
			permanent = fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
			return nil
		}

		reply, permanent = parseChatResponse(data)
		return nil
	})
	if err != nil {
		return "", err
	}
	if permanent != nil {
		return "", permanent
	}
	return reply, nil
}

func parseChatResponse(data []byte) (string, error) {
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty choices: %s", string(data))
	}
	return result.Choices[0].Message.Content, nil
}
