package llm

import "context"

// Client is the interface that all LLM providers must implement.
// The rest of the system treats generation as an opaque capability that
// can fail, stall, or return malformed output.
type Client interface {
	// Chat sends a chat completion request and returns the response.
	Chat(ctx context.Context, model string, messages []Message, tools []map[string]any, opts Options) (*ChatResponse, error)

	// Ping checks if the provider is reachable.
	Ping(ctx context.Context) error
}
