package bot

import (
	"context"

	"github.com/crodriguez/sienabot/internal/telegram"
	"github.com/crodriguez/sienabot/internal/tools"
)

// The dispatch loop reaches every external collaborator through these
// narrow capability interfaces. The concrete implementations live in
// internal/telegram (transport) and internal/tools (everything else);
// tests substitute in-memory fakes.

// Transport is the messaging channel: polling, replies, and media transfer.
type Transport interface {
	Check(ctx context.Context) ([]telegram.Inbound, error)
	Send(ctx context.Context, chatID, text string) error
	SendDocument(ctx context.Context, chatID, path, caption string) error
	SendPhoto(ctx context.Context, chatID, path, caption string) error
	SendVoice(ctx context.Context, chatID, path string) error
	Download(ctx context.Context, fileID, dest string) error
}

// Chat is the LLM/RAG conversational backend.
type Chat interface {
	Query(ctx context.Context, req tools.ChatRequest) (string, error)
	Clear(ctx context.Context) error
}

// Vision describes images.
type Vision interface {
	Analyze(ctx context.Context, imagePath, prompt string) (string, error)
}

// Audio transcribes voice notes and synthesizes spoken replies.
type Audio interface {
	Transcribe(ctx context.Context, path string) (string, error)
	Synthesize(ctx context.Context, text, lang, outputPath string) (string, error)
}

// Knowledge manages the RAG document store.
type Knowledge interface {
	Ingest(ctx context.Context, path string) (string, error)
	List(ctx context.Context) ([]tools.Document, error)
}

// Search performs web research, page scraping, and part marketplace search.
type Search interface {
	Web(ctx context.Context, query string) ([]tools.WebResult, error)
	Scrape(ctx context.Context, url string) (string, error)
	Parts(ctx context.Context, part, region string) ([]tools.PartResult, error)
}

// Diagnostics drives the vehicle scan simulator.
type Diagnostics interface {
	Simulate(ctx context.Context, kind tools.ScanKind) (tools.ScanData, error)
}

// Sandbox executes arbitrary code in isolation.
type Sandbox interface {
	Execute(ctx context.Context, code string) (tools.ExecResult, error)
}

// Notes is the long-term note store.
type Notes interface {
	Save(ctx context.Context, text, category string) error
	List(ctx context.Context, limit int) ([]tools.Note, error)
	Delete(ctx context.Context, id string) error
}

// Resources reports system metrics and alerts.
type Resources interface {
	Monitor(ctx context.Context) (tools.ResourceReport, error)
}

// Deps bundles every collaborator the bot needs.
type Deps struct {
	Transport   Transport
	Chat        Chat
	Vision      Vision
	Audio       Audio
	Knowledge   Knowledge
	Search      Search
	Diagnostics Diagnostics
	Sandbox     Sandbox
	Notes       Notes
	Resources   Resources
}
