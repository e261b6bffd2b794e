package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Iron-Ham/oxdebate/internal/errors"
)

const (
	defaultBaseURL     = "https://api.openai.com/v1"
	completionsPath    = "/chat/completions"
	defaultModel       = "gpt-4o"
	defaultTemperature = 0.7
	defaultTimeout     = 120 * time.Second

	// maxErrorBody bounds how much of a failed response is read.
	maxErrorBody = 64 * 1024
)

// OpenAIClient implements Client against an OpenAI-compatible
// chat completions endpoint.
type OpenAIClient struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	timeout     time.Duration
	httpClient  *http.Client
}

// Option configures an OpenAIClient.
type Option func(*OpenAIClient)

// WithBaseURL sets the API base, e.g. "https://api.openai.com/v1".
func WithBaseURL(url string) Option {
	return func(c *OpenAIClient) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *OpenAIClient) {
		c.httpClient = client
	}
}

// WithModel sets the chat model.
func WithModel(model string) Option {
	return func(c *OpenAIClient) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(c *OpenAIClient) {
		c.temperature = t
	}
}

// WithMaxTokens caps the reply length. Zero leaves it to the API.
func WithMaxTokens(n int) Option {
	return func(c *OpenAIClient) {
		c.maxTokens = n
	}
}

// WithTimeout sets the per-request timeout. A client passed with
// WithHTTPClient is copied rather than modified.
func WithTimeout(d time.Duration) Option {
	return func(c *OpenAIClient) {
		c.timeout = d
	}
}

// NewOpenAIClient creates a new OpenAI client.
func NewOpenAIClient(apiKey string, opts ...Option) *OpenAIClient {
	c := &OpenAIClient{
		apiKey:      apiKey,
		baseURL:     defaultBaseURL,
		model:       defaultModel,
		temperature: defaultTemperature,
		httpClient:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 && c.httpClient.Timeout != c.timeout {
		client := *c.httpClient
		client.Timeout = c.timeout
		c.httpClient = &client
	}
	return c
}

// Model returns the chat model.
func (c *OpenAIClient) Model() string {
	return c.model
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type apiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Complete sends messages to the chat completions endpoint and returns the
// trimmed content of the first choice.
func (c *OpenAIClient) Complete(ctx context.Context, messages []Message) (string, error) {
	chatMsgs := make([]chatMessage, 0, len(messages))
	for _, m := range messages {
		chatMsgs = append(chatMsgs, chatMessage{Role: m.Role, Content: m.Content})
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    chatMsgs,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", errors.NewGenerationError("request failed", err).
			WithModel(c.model).
			WithRetryable(ctx.Err() == nil)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", c.handleError(resp)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", errors.NewGenerationError("failed to decode response", err).WithModel(c.model)
	}
	if len(chatResp.Choices) == 0 {
		return "", errors.NewGenerationError("no choices in response", errors.ErrEmptyCompletion).WithModel(c.model)
	}

	content := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.NewGenerationError("empty reply", errors.ErrEmptyCompletion).WithModel(c.model)
	}
	return content, nil
}

// handleError turns a non-200 response into a GenerationError.
func (c *OpenAIClient) handleError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	message := resp.Status
	var errResp apiErrorResponse
	if json.Unmarshal(raw, &errResp) == nil && errResp.Error.Message != "" {
		message = errResp.Error.Message
	} else if text := strings.TrimSpace(string(raw)); text != "" {
		message = resp.Status + ": " + text
	}

	return errors.NewGenerationError(message, statusCause(resp.StatusCode)).
		WithModel(c.model).
		WithStatusCode(resp.StatusCode)
}

// statusCause maps an HTTP status to a sentinel error, or nil.
func statusCause(code int) error {
	switch {
	case code == http.StatusTooManyRequests:
		return errors.ErrRateLimited
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return errors.ErrUnauthorized
	case code >= http.StatusInternalServerError:
		return errors.ErrUpstream
	default:
		return nil
	}
}
