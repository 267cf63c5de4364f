package tools

import (
	"context"
	"fmt"
	"strings"
)

// ChatRequest is one prompt for the LLM/RAG backend. System optionally
// overrides the system prompt; MemoryQuery hints the backend's retrieval
// step with a narrower query than the prompt itself.
type ChatRequest struct {
	Prompt      string `json:"prompt"`
	System      string `json:"system,omitempty"`
	MemoryQuery string `json:"memory_query,omitempty"`
}

type chatResponse struct {
	envelope
	Content string `json:"content"`
}

// ChatClient talks to the conversational LLM/RAG backend.
type ChatClient struct {
	client *Client
}

// NewChatClient wraps a tool client for chat calls.
func NewChatClient(client *Client) *ChatClient {
	return &ChatClient{client: client}
}

// Query sends a prompt and returns the model's reply text.
func (c *ChatClient) Query(ctx context.Context, req ChatRequest) (string, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return "", fmt.Errorf("chat: prompt is required")
	}
	var resp chatResponse
	if err := c.client.call(ctx, "chat.query", req, &resp); err != nil {
		return "", err
	}
	if resp.Content == "" {
		return "", &ToolError{Tool: "chat.query", Message: "respuesta vacía"}
	}
	return resp.Content, nil
}

// Clear resets the backend's conversational memory.
func (c *ChatClient) Clear(ctx context.Context) error {
	return c.client.call(ctx, "chat.clear", struct{}{}, nil)
}
