package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rbs392/llmockapi/pkg/conversation"
)

// ClientConfig contains configuration for the upstream client.
type ClientConfig struct {
	// BaseURL is the provider's API base URL, e.g. "https://openrouter.ai/api".
	BaseURL string

	// APIKey is sent as a bearer token.
	APIKey string

	// Model is the model identifier included in every completion request.
	Model string

	// Timeout is the whole-request timeout. Zero means the http.Client
	// default (no timeout).
	Timeout time.Duration

	// MaxIdleConns is the connection pool size.
	MaxIdleConns int

	// IdleConnTimeout is how long an idle connection stays pooled.
	IdleConnTimeout time.Duration
}

// Client issues chat-completion calls to the upstream provider over a pooled
// HTTP transport. Each exchange is a single attempt; there is no retry loop.
type Client struct {
	config ClientConfig
	client *http.Client
	logger *slog.Logger
}

// NewClient creates a client with connection pooling.
func NewClient(config ClientConfig) *Client {
	transport := &http.Transport{
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConns,
		IdleConnTimeout:     config.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		config: config,
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
		logger: slog.Default().With("component", "llm.client"),
	}
}

// Complete sends the conversation to the provider's chat-completion endpoint
// and returns the model's raw answer text.
//
// Failure modes: a transport-level error is an UnreachableError; a non-2xx
// status, an unparseable body, or an envelope without choices is a
// ProtocolError.
func (c *Client) Complete(ctx context.Context, turns []conversation.Turn) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Model:    c.config.Model,
		Messages: turns,
	})
	if err != nil {
		return "", &ProtocolError{Message: "failed to encode request payload", Cause: err}
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + "/v1/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", &ProtocolError{Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("calling upstream",
		"url", url,
		"model", c.config.Model,
		"messages", len(turns),
	)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &UnreachableError{BaseURL: c.config.BaseURL, Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProtocolError{StatusCode: resp.StatusCode, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ProtocolError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var envelope completionResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", &ProtocolError{StatusCode: resp.StatusCode, Message: "response is not a completion envelope", Cause: err}
	}
	if len(envelope.Choices) == 0 {
		return "", &ProtocolError{StatusCode: resp.StatusCode, Message: "completion envelope has no choices"}
	}

	return envelope.Choices[0].Message.Content, nil
}

// Close releases pooled connections.
func (c *Client) Close() {
	c.client.CloseIdleConnections()
}
