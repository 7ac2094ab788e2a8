package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/m10dj/sms-agent/internal/llm"
	"github.com/m10dj/sms-agent/internal/tools"
)

// maxToolRounds bounds the generate/execute loop. A specialist that is
// still calling tools after this many rounds is looping, not working.
const maxToolRounds = 5

const (
	defaultGenerateTimeout = 30 * time.Second
	defaultToolTimeout     = 10 * time.Second
)

// ToolRunner is the slice of the tool registry the executor needs.
// Implemented by *tools.Registry; faked in tests.
type ToolRunner interface {
	Definitions(allowed []tools.Name) []map[string]any
	Execute(ctx context.Context, name tools.Name, args map[string]any) (string, error)
}

// Executor runs one specialist profile over a transcript until it
// produces a plain-text reply.
type Executor struct {
	client   llm.Client
	model    string
	registry ToolRunner
	logger   *slog.Logger

	generateTimeout time.Duration
	toolTimeout     time.Duration
}

// NewExecutor creates an executor for the given model and tool registry.
func NewExecutor(client llm.Client, model string, registry ToolRunner, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		client:          client,
		model:           model,
		registry:        registry,
		logger:          logger.With("component", "executor"),
		generateTimeout: defaultGenerateTimeout,
		toolTimeout:     defaultToolTimeout,
	}
}

// Run drives the profile's generate/tool loop. Tool calls within a round
// run strictly one at a time, in the order the model emitted them, and
// every result lands in the transcript before the next call runs. A tool
// failure degrades into a structured error result the model can read; a
// generation failure, the round cap, or an empty final reply is an
// ExecutionError.
func (e *Executor) Run(ctx context.Context, profile Profile, t *Transcript) (string, error) {
	allowed := make(map[tools.Name]bool, len(profile.Tools))
	for _, name := range profile.Tools {
		allowed[name] = true
	}
	defs := e.registry.Definitions(profile.Tools)

	for round := 1; round <= maxToolRounds; round++ {
		messages := make([]llm.Message, 0, t.Len()+1)
		messages = append(messages, llm.Message{Role: "system", Content: profile.Instructions})
		messages = append(messages, t.Messages()...)

		genCtx, cancel := context.WithTimeout(ctx, e.generateTimeout)
		resp, err := e.client.Chat(genCtx, e.model, messages, defs, profile.Options)
		cancel()
		if err != nil {
			return "", &ExecutionError{Agent: profile.Name, Err: fmt.Errorf("round %d: %w", round, err)}
		}

		t.AppendAssistant(resp.Message)

		if len(resp.Message.ToolCalls) == 0 {
			reply := strings.TrimSpace(resp.Message.Content)
			if reply == "" {
				return "", &ExecutionError{Agent: profile.Name, Err: fmt.Errorf("empty reply after %d round(s)", round)}
			}
			e.logger.Debug("specialist replied", "agent", profile.Name, "rounds", round)
			return reply, nil
		}

		for _, call := range resp.Message.ToolCalls {
			t.AppendToolResult(call.ID, e.runTool(ctx, allowed, call))
		}
	}

	return "", &ExecutionError{Agent: profile.Name, Err: fmt.Errorf("no reply after %d tool rounds", maxToolRounds)}
}

// runTool executes one tool call, folding every failure into a structured
// result so the specialist can explain the situation instead of dying.
func (e *Executor) runTool(ctx context.Context, allowed map[tools.Name]bool, call llm.ToolCall) string {
	name, known := tools.ParseName(call.Function.Name)
	if !known || !allowed[name] {
		e.logger.Warn("disallowed tool requested", "tool", call.Function.Name)
		return errorResult(fmt.Sprintf("tool %q is not available to this agent", call.Function.Name))
	}

	toolCtx, cancel := context.WithTimeout(ctx, e.toolTimeout)
	defer cancel()

	result, err := e.registry.Execute(toolCtx, name, call.Function.Arguments)
	if err != nil {
		return errorResult(err.Error())
	}
	return result
}

func errorResult(msg string) string {
	encoded, _ := json.Marshal(map[string]any{"success": false, "error": msg})
	return string(encoded)
}
