// Package api handles communication with a chat-completion server that
// exposes /health, /models and /chat endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 60 * time.Second

// ConnectError reports that the server could not be reached at all.
// HTTP error statuses are NOT connect errors — any response, whatever
// the status, is returned as a decoded result.
type ConnectError struct {
	URL string
	Err error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("could not connect to %s: %v", e.URL, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// Client talks to the chat-completion server at a fixed base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// BaseURL returns the base URL this client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// Health issues GET /health and returns the status and body as
// received. The body is not decoded; health payloads are arbitrary.
func (c *Client) Health(ctx context.Context) (*HealthResult, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}
	return &HealthResult{Status: status, Body: body}, nil
}

// ListModels issues GET /models and attempts to decode the body as a
// descriptor array. Servers without a provider configured may return
// an arbitrary JSON value instead; that lands in Raw with Decoded
// false.
func (c *Client) ListModels(ctx context.Context) (*ModelList, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/models", nil)
	if err != nil {
		return nil, err
	}
	list := &ModelList{Status: status}
	if json.Valid(body) {
		list.Raw = json.RawMessage(body)
	}
	var models []ModelDescriptor
	if err := json.Unmarshal(body, &models); err == nil {
		list.Models = models
		list.Decoded = true
	}
	return list, nil
}

// Chat issues POST /chat with the given model and conversation history.
// Messages must be in chronological turn order. The result is a success
// reply when the body carried a "content" field, the raw body when it
// did not, and neither when the body was not JSON.
func (c *Client) Chat(ctx context.Context, model string, messages []Message) (*ChatResult, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/chat", chatRequest{Model: model, Messages: messages})
	if err != nil {
		return nil, err
	}
	res := &ChatResult{Status: status}
	if !json.Valid(body) {
		return res, nil
	}
	res.Raw = json.RawMessage(body)

	// Presence of "content" decides success vs error shape, so probe
	// with a pointer instead of relying on the zero value.
	var probe struct {
		Content *string        `json:"content"`
		Usage   map[string]any `json:"usage"`
	}
	if err := json.Unmarshal(body, &probe); err == nil && probe.Content != nil {
		res.Reply = &ChatReply{Content: *probe.Content, Usage: probe.Usage}
	}
	return res, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &ConnectError{URL: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, body, nil
}
