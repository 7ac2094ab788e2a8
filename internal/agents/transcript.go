package agents

import "github.com/m10dj/sms-agent/internal/llm"

// Transcript is the append-only conversation record for one request. The
// classifier and the executor share the same transcript, so the specialist
// sees the classification turn and every tool exchange in order. It is
// discarded when the request ends; cross-request memory lives in the
// contact record, not here.
type Transcript struct {
	turns []llm.Message
}

// NewTranscript starts a transcript, optionally seeded with system turns.
func NewTranscript(seed ...llm.Message) *Transcript {
	t := &Transcript{}
	t.turns = append(t.turns, seed...)
	return t
}

// AppendSystem adds a system turn.
func (t *Transcript) AppendSystem(content string) {
	t.turns = append(t.turns, llm.Message{Role: "system", Content: content})
}

// AppendUser adds a user turn.
func (t *Transcript) AppendUser(content string) {
	t.turns = append(t.turns, llm.Message{Role: "user", Content: content})
}

// AppendAssistant adds an assistant turn, including any tool calls it made.
func (t *Transcript) AppendAssistant(msg llm.Message) {
	msg.Role = "assistant"
	t.turns = append(t.turns, msg)
}

// AppendToolResult adds a tool turn answering the given tool call.
func (t *Transcript) AppendToolResult(toolCallID, content string) {
	t.turns = append(t.turns, llm.Message{
		Role:       "tool",
		Content:    content,
		ToolCallID: toolCallID,
	})
}

// Messages returns the turns in order. The slice must not be mutated.
func (t *Transcript) Messages() []llm.Message {
	return t.turns
}

// Len reports the number of turns.
func (t *Transcript) Len() int {
	return len(t.turns)
}
