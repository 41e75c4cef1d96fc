package llm

import (
	"context"
	"errors"
)

// Client abstracts LLM providers for fit analysis.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (Completion, error)
}

// CompletionRequest carries a rendered prompt and the model to run it against.
type CompletionRequest struct {
	Prompt string
	Model  string
}

// Completion is the raw textual reply plus optional usage accounting.
type Completion struct {
	Text  string
	Usage *Usage
}

// Usage reports token counts from the provider. Observability only.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm provider not configured")

// PlaceholderClient is a stub implementation used when no provider is wired.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, req CompletionRequest) (Completion, error) {
	_ = ctx
	_ = req
	return Completion{}, ErrNotConfigured
}

var _ Client = PlaceholderClient{}
