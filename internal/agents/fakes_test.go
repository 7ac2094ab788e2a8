package agents

import (
	"context"
	"errors"

	"github.com/m10dj/sms-agent/internal/contacts"
	"github.com/m10dj/sms-agent/internal/exchanges"
	"github.com/m10dj/sms-agent/internal/llm"
	"github.com/m10dj/sms-agent/internal/tools"
)

// scriptedClient replays canned chat responses in order and records what
// it was asked.
type scriptedClient struct {
	responses []*llm.ChatResponse
	errs      []error
	calls     [][]llm.Message
	opts      []llm.Options
}

func (c *scriptedClient) Chat(ctx context.Context, model string, messages []llm.Message, defs []map[string]any, opts llm.Options) (*llm.ChatResponse, error) {
	c.calls = append(c.calls, append([]llm.Message(nil), messages...))
	c.opts = append(c.opts, opts)

	i := len(c.calls) - 1
	if i < len(c.errs) && c.errs[i] != nil {
		return nil, c.errs[i]
	}
	if i >= len(c.responses) {
		return nil, errors.New("scripted client exhausted")
	}
	return c.responses[i], nil
}

func (c *scriptedClient) Ping(ctx context.Context) error { return nil }

func textResponse(content string) *llm.ChatResponse {
	return &llm.ChatResponse{
		Message:      llm.Message{Role: "assistant", Content: content},
		Done:         true,
		FinishReason: "stop",
	}
}

func toolCallResponse(calls ...llm.ToolCall) *llm.ChatResponse {
	return &llm.ChatResponse{
		Message:      llm.Message{Role: "assistant", ToolCalls: calls},
		Done:         true,
		FinishReason: "tool_calls",
	}
}

// recordingRunner is a ToolRunner that logs executions and returns canned
// results per tool.
type recordingRunner struct {
	executed []tools.Name
	results  map[tools.Name]string
	errs     map[tools.Name]error
}

func (r *recordingRunner) Definitions(allowed []tools.Name) []map[string]any {
	var defs []map[string]any
	for _, name := range allowed {
		defs = append(defs, map[string]any{
			"type":     "function",
			"function": map[string]any{"name": string(name)},
		})
	}
	return defs
}

func (r *recordingRunner) Execute(ctx context.Context, name tools.Name, args map[string]any) (string, error) {
	r.executed = append(r.executed, name)
	if err := r.errs[name]; err != nil {
		return "", err
	}
	if result, ok := r.results[name]; ok {
		return result, nil
	}
	return `{"success":true}`, nil
}

// memoryContacts is an in-memory ContactReader.
type memoryContacts struct {
	contact   *contacts.Contact
	nameSet   bool
	findErr   error
	firstName string
	lastName  string
}

func (m *memoryContacts) FindByPhone(phone string) (*contacts.Contact, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.contact, nil
}

func (m *memoryContacts) SetNameIfEmpty(phone, firstName, lastName string) (bool, error) {
	m.firstName = firstName
	m.lastName = lastName
	m.nameSet = true
	return true, nil
}

// memorySink collects audit records, optionally failing.
type memorySink struct {
	records []*exchanges.Record
	err     error
}

func (m *memorySink) Insert(r *exchanges.Record) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, r)
	return nil
}
