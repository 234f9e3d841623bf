package ai

import "context"

// Client defines the contract for LLM chat completion providers.
// Implementations must be safe for concurrent use: agents and the dialogue
// coordinator share one client across goroutines.
type Client interface {
	Name() string

	// Complete sends a single-turn completion request and returns the
	// model's text response.
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}

// CompletionRequest represents a single-turn chat completion request.
type CompletionRequest struct {
	System      string  // System prompt (role framing)
	Prompt      string  // User prompt
	Temperature float64 // 0 means use the client default
	MaxTokens   int64   // 0 means use the client default
}

// Completion represents the response from a completion request.
type Completion struct {
	Text  string
	Model string
	Usage Usage
}

// Usage tracks token consumption.
type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}
