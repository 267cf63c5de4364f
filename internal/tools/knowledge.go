package tools

import "context"

// Document is one entry of the ingested knowledge base.
type Document struct {
	Name       string `json:"name"`
	IngestedAt string `json:"ingested_at"`
}

// KnowledgeClient manages the RAG document store.
type KnowledgeClient struct {
	client *Client
}

// NewKnowledgeClient wraps a tool client for knowledge-base calls.
func NewKnowledgeClient(client *Client) *KnowledgeClient {
	return &KnowledgeClient{client: client}
}

// Ingest adds the document at path to the knowledge base and returns the
// backend's ingestion summary.
func (c *KnowledgeClient) Ingest(ctx context.Context, path string) (string, error) {
	req := struct {
		File string `json:"file"`
	}{File: path}

	var resp struct {
		envelope
	}
	if err := c.client.call(ctx, "knowledge.ingest", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// List enumerates the ingested documents.
func (c *KnowledgeClient) List(ctx context.Context) ([]Document, error) {
	var resp struct {
		envelope
		Documents []Document `json:"documents"`
	}
	if err := c.client.call(ctx, "knowledge.list", struct{}{}, &resp); err != nil {
		return nil, err
	}
	return resp.Documents, nil
}

// Note is one long-term memory entry.
type Note struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Content   string `json:"content"`
}

// NotesClient manages the long-term note store.
type NotesClient struct {
	client *Client
}

// NewNotesClient wraps a tool client for note-store calls.
func NewNotesClient(client *Client) *NotesClient {
	return &NotesClient{client: client}
}

// Save stores a note under a category.
func (c *NotesClient) Save(ctx context.Context, text, category string) error {
	req := struct {
		Text     string `json:"text"`
		Category string `json:"category"`
	}{Text: text, Category: category}
	return c.client.call(ctx, "memory.save", req, nil)
}

// List returns up to limit recent notes.
func (c *NotesClient) List(ctx context.Context, limit int) ([]Note, error) {
	req := struct {
		Limit int `json:"limit"`
	}{Limit: limit}

	var resp struct {
		envelope
		Memories []Note `json:"memories"`
	}
	if err := c.client.call(ctx, "memory.list", req, &resp); err != nil {
		return nil, err
	}
	return resp.Memories, nil
}

// Delete removes a note by id.
func (c *NotesClient) Delete(ctx context.Context, id string) error {
	req := struct {
		ID string `json:"id"`
	}{ID: id}
	return c.client.call(ctx, "memory.delete", req, nil)
}
