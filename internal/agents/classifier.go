package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/m10dj/sms-agent/internal/llm"
)

// Classifier assigns an intent category to the transcript's latest
// message. One classification per request; the result is never revised.
type Classifier struct {
	client llm.Client
	model  string
	logger *slog.Logger
}

// NewClassifier creates a classifier using the given model.
func NewClassifier(client llm.Client, model string, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		client: client,
		model:  model,
		logger: logger.With("component", "classifier"),
	}
}

// Classify runs the classification call over the transcript and appends
// the verdict as an assistant turn, so the routed specialist sees what the
// classifier concluded. Failures are ClassificationError; they are not
// retried here.
func (c *Classifier) Classify(ctx context.Context, t *Transcript) (ClassificationResult, error) {
	messages := make([]llm.Message, 0, t.Len()+1)
	messages = append(messages, llm.Message{Role: "system", Content: classifierInstructions})
	messages = append(messages, t.Messages()...)

	resp, err := c.client.Chat(ctx, c.model, messages, nil, ClassifierOptions)
	if err != nil {
		return ClassificationResult{}, &ClassificationError{Err: err}
	}

	result, err := parseClassification(resp.Message.Content)
	if err != nil {
		c.logger.Warn("unparseable classification", "content", resp.Message.Content, "error", err)
		return ClassificationResult{}, &ClassificationError{Err: err}
	}

	raw, _ := json.Marshal(result)
	t.AppendAssistant(llm.Message{Content: string(raw)})

	c.logger.Info("message classified",
		"agent", ClassifierName,
		"category", result.Category,
		"confidence", result.Confidence,
		"intent", result.DetectedIntent,
	)
	return result, nil
}

// parseClassification decodes the model's JSON verdict. Models sometimes
// wrap JSON in a markdown fence even in JSON mode; strip it before
// decoding. An unknown category string still routes (to general_question),
// but an undecodable body is a failure.
func parseClassification(content string) (ClassificationResult, error) {
	trimmed := strings.TrimSpace(content)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if trimmed == "" {
		return ClassificationResult{}, fmt.Errorf("empty classification")
	}

	var wire struct {
		Category       string  `json:"category"`
		Confidence     float64 `json:"confidence"`
		DetectedIntent string  `json:"detected_intent"`
	}
	if err := json.Unmarshal([]byte(trimmed), &wire); err != nil {
		return ClassificationResult{}, fmt.Errorf("decode classification: %w", err)
	}
	if wire.Category == "" {
		return ClassificationResult{}, fmt.Errorf("classification has no category")
	}

	if wire.Confidence < 0 {
		wire.Confidence = 0
	}
	if wire.Confidence > 1 {
		wire.Confidence = 1
	}

	return ClassificationResult{
		Category:       ParseCategory(wire.Category),
		Confidence:     wire.Confidence,
		DetectedIntent: wire.DetectedIntent,
	}, nil
}
