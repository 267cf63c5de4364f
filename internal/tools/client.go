// Package tools provides typed clients for the external collaborators the
// bot depends on: LLM chat, vision, audio, knowledge base, search,
// diagnostics, sandbox execution, long-term notes, and resource monitoring.
//
// Every collaborator is reached through the same JSON-over-HTTP contract:
// one POST per capability name against the tool server, a success payload
// or an error envelope back. Each call carries its own deadline so a hung
// collaborator cannot stall the dispatch loop indefinitely.
package tools

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
)

// ToolError is a failure reported by a collaborator, either as an error
// envelope or a non-success HTTP status.
type ToolError struct {
	Tool    string
	Message string
}

func (e *ToolError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tool %s failed", e.Tool)
	}
	return fmt.Sprintf("tool %s: %s", e.Tool, e.Message)
}

// Client speaks the tool server's JSON contract.
type Client struct {
	baseURL string
	logger  *slog.Logger
	http    *http.Client
}

// NewClient creates a tool client for the given base URL. The timeout
// bounds every individual call.
func NewClient(log *slog.Logger, baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("tool client: base url is required")
	}
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log.With(slog.String("client", "tools")),
		http: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// call POSTs payload to the named tool and decodes the response into out
// (which may be nil when only the status matters). Error envelopes become
// *ToolError values.
func (c *Client) call(ctx context.Context, name string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("tool %s: encode request: %w", name, err)
	}

	url := c.baseURL + "/v1/tools/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("tool %s: build request: %w", name, err)
	}
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("tool %s: %w", name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("tool %s: read response: %w", name, err)
	}

	c.logger.Debug("tool call",
		slog.String("tool", name),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(started)),
	)

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return &ToolError{Tool: name, Message: fmt.Sprintf("malformed response: %.80s", string(data))}
	}
	if env.Status == "error" || env.Error != "" {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		return &ToolError{Tool: name, Message: msg}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ToolError{Tool: name, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &ToolError{Tool: name, Message: fmt.Sprintf("decode response: %v", err)}
		}
	}
	return nil
}
