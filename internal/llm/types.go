// Package llm provides LLM client implementations.
package llm

import "time"

// Message represents a chat message for the LLM.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"` // For tool responses
}

// ToolCall represents a tool call from the model.
type ToolCall struct {
	ID       string           `json:"id,omitempty"` // Provider-assigned ID, echoed back on the tool result
	Function ToolCallFunction `json:"function"`
}

// ToolCallFunction names the requested tool and carries its bound arguments.
type ToolCallFunction struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// Options control per-request generation behavior. Each agent profile
// carries its own Options; the zero value means provider defaults.
type Options struct {
	Temperature float64
	TopP        float64
	MaxTokens   int

	// ParallelToolCalls allows the model to propose multiple tool calls
	// in one turn. The executor runs calls sequentially regardless, but
	// disabling this at the provider keeps the model reasoning about one
	// result at a time.
	ParallelToolCalls bool

	// JSONOnly constrains the model to emit a single JSON object.
	// Used by the intent classifier.
	JSONOnly bool
}

// ChatResponse is the unified response from any LLM provider.
// Wire format conversion happens at provider boundaries (openai.go).
type ChatResponse struct {
	Model     string
	CreatedAt time.Time
	Message   Message
	Done      bool

	// FinishReason is the provider-neutral stop cause ("stop", "tool_calls",
	// "length"), when reported.
	FinishReason string

	// Token usage (provider-neutral)
	InputTokens  int
	OutputTokens int
}
