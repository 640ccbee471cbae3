package openrouter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"cvenhancer-backend/internal/llm"
)

const defaultBaseURL = "https://openrouter.ai/api/v1"

// Client implements llm.Client against the OpenRouter chat-completions API.
// OpenRouter fronts many upstream models behind OpenAI-shaped requests, so
// the model identifiers carry a provider prefix (e.g. "openai/gpt-4o").
type Client struct {
	apiKey string
	http   *resty.Client
}

// NewClient constructs an OpenRouter client.
func NewClient(apiKey string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY is required")
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		apiKey: apiKey,
		http:   resty.New().SetBaseURL(defaultBaseURL).SetTimeout(timeout),
	}, nil
}

// Complete sends one chat-completion request and returns the message content.
func (c *Client) Complete(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	if strings.TrimSpace(opts.Model) == "" {
		return "", fmt.Errorf("model is required")
	}

	messages := make([]map[string]string, 0, 2)
	if strings.TrimSpace(opts.System) != "" {
		messages = append(messages, map[string]string{"role": "system", "content": opts.System})
	}
	messages = append(messages, map[string]string{"role": "user", "content": prompt})

	body := map[string]any{
		"model":       opts.Model,
		"messages":    messages,
		"temperature": opts.Temperature,
	}
	if opts.MaxTokens > 0 {
		body["max_tokens"] = opts.MaxTokens
	}
	if opts.ForceJSON {
		body["response_format"] = map[string]string{"type": "json_object"}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("openrouter request timeout: %w", err)
		}
		return "", err
	}

	raw := resp.String()
	if apiErr := gjson.Get(raw, "error.message"); apiErr.Exists() {
		return "", fmt.Errorf("openrouter http status %d: %s", resp.StatusCode(), apiErr.String())
	}
	if resp.StatusCode() >= 400 {
		return "", fmt.Errorf("openrouter http status %d: %s", resp.StatusCode(), strings.TrimSpace(raw))
	}

	content := strings.TrimSpace(gjson.Get(raw, "choices.0.message.content").String())
	if content == "" {
		return "", llm.ErrEmptyCompletion
	}
	return content, nil
}

var _ llm.Client = (*Client)(nil)
