package agents

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/m10dj/sms-agent/internal/contacts"
	"github.com/m10dj/sms-agent/internal/llm"
)

const testFallback = "Thanks for contacting M10 DJ Company! 🎵 Ben will personally respond within 30 minutes. For immediate assistance, call (901) 410-2020."

func newTestWorkflow(client *scriptedClient, dir ContactReader, sink AuditSink) *Workflow {
	classifier := NewClassifier(client, "gpt-4o-mini", slog.Default())
	executor := NewExecutor(client, "gpt-4o-mini", &recordingRunner{}, slog.Default())
	return NewWorkflow(classifier, executor, dir, sink, testFallback, slog.Default())
}

func TestProcessSuccess(t *testing.T) {
	client := &scriptedClient{responses: []*llm.ChatResponse{
		textResponse(`{"category":"get_pricing","confidence":0.9,"detected_intent":"asking about wedding pricing"}`),
		textResponse("Wedding packages run $1,200-$2,500. Want a personalized quote?"),
	}}
	sink := &memorySink{}
	w := newTestWorkflow(client, &memoryContacts{}, sink)

	resp := w.Process(context.Background(), Request{
		PhoneNumber: "9015550142",
		Message:     "How much for a wedding DJ?",
	})
	if !resp.Success {
		t.Fatalf("response = %+v", resp)
	}
	if resp.Classification != CategoryGetPricing {
		t.Errorf("classification = %q", resp.Classification)
	}
	if resp.AgentUsed != "Pricing Specialist" {
		t.Errorf("agent = %q", resp.AgentUsed)
	}
	if resp.Confidence != 0.9 {
		t.Errorf("confidence = %v", resp.Confidence)
	}

	// The audit row mirrors the exchange.
	if len(sink.records) != 1 {
		t.Fatalf("audit records = %d, want 1", len(sink.records))
	}
	rec := sink.records[0]
	if rec.PhoneNumber != "9015550142" || rec.Classification != "get_pricing" {
		t.Errorf("record = %+v", rec)
	}
	if rec.Response != resp.OutputText {
		t.Errorf("record response = %q", rec.Response)
	}
}

func TestProcessClassificationFailureFallsBack(t *testing.T) {
	client := &scriptedClient{errs: []error{errors.New("model down")}}
	sink := &memorySink{}
	w := newTestWorkflow(client, &memoryContacts{}, sink)

	resp := w.Process(context.Background(), Request{
		PhoneNumber: "9015550142",
		Message:     "hello?",
	})
	if resp.Success {
		t.Error("expected success = false")
	}
	if resp.OutputText != testFallback {
		t.Errorf("output = %q, want the fallback reply", resp.OutputText)
	}
	if !strings.Contains(resp.OutputText, "(901) 410-2020") {
		t.Error("fallback must carry the phone number")
	}
	if resp.Error == "" {
		t.Error("expected an internal error description")
	}
}

func TestProcessExecutionFailureFallsBack(t *testing.T) {
	client := &scriptedClient{
		responses: []*llm.ChatResponse{
			textResponse(`{"category":"general_question"}`),
		},
		errs: []error{nil, errors.New("model down")},
	}
	w := newTestWorkflow(client, &memoryContacts{}, &memorySink{})

	resp := w.Process(context.Background(), Request{PhoneNumber: "9015550142", Message: "hi"})
	if resp.Success {
		t.Error("expected success = false")
	}
	if resp.OutputText != testFallback {
		t.Errorf("output = %q", resp.OutputText)
	}
}

func TestProcessAuditFailureDoesNotChangeReply(t *testing.T) {
	client := &scriptedClient{responses: []*llm.ChatResponse{
		textResponse(`{"category":"general_question","confidence":0.7}`),
		textResponse("We have a 100,000+ song library and take requests!"),
	}}
	sink := &memorySink{err: errors.New("disk full")}
	w := newTestWorkflow(client, &memoryContacts{}, sink)

	resp := w.Process(context.Background(), Request{PhoneNumber: "9015550142", Message: "Do you take requests?"})
	if !resp.Success {
		t.Errorf("audit failure flipped success: %+v", resp)
	}
	if resp.AgentUsed != "Information Specialist" {
		t.Errorf("agent = %q", resp.AgentUsed)
	}
	if !strings.Contains(resp.OutputText, "requests") {
		t.Errorf("output = %q", resp.OutputText)
	}
}

func TestProcessPreloadsCustomerContext(t *testing.T) {
	client := &scriptedClient{responses: []*llm.ChatResponse{
		textResponse(`{"category":"existing_customer","confidence":0.8}`),
		textResponse("Your June 15 wedding is all set, Sarah!"),
	}}
	dir := &memoryContacts{contact: &contacts.Contact{
		FirstName:  "Sarah",
		LastName:   "Jones",
		Phone:      "9015550142",
		EventType:  "wedding",
		EventDate:  "2026-06-15",
		LeadStatus: contacts.StatusConfirmed,
	}}
	w := newTestWorkflow(client, dir, &memorySink{})

	resp := w.Process(context.Background(), Request{PhoneNumber: "9015550142", Message: "Checking on my quote"})
	if !resp.Success {
		t.Fatalf("response = %+v", resp)
	}

	// The classifier call saw a system turn describing the customer,
	// after its own instructions.
	first := client.calls[0]
	if len(first) < 3 {
		t.Fatalf("classifier saw %d turns", len(first))
	}
	ctxTurn := first[1]
	if ctxTurn.Role != "system" || !strings.Contains(ctxTurn.Content, "Sarah Jones") {
		t.Errorf("context turn = %+v", ctxTurn)
	}
	if !strings.Contains(ctxTurn.Content, "wedding") || !strings.Contains(ctxTurn.Content, "2026-06-15") {
		t.Errorf("context content = %q", ctxTurn.Content)
	}
}

func TestProcessFillsMissingName(t *testing.T) {
	client := &scriptedClient{responses: []*llm.ChatResponse{
		textResponse(`{"category":"general_question"}`),
		textResponse("Nice to meet you, Chris!"),
	}}
	dir := &memoryContacts{contact: &contacts.Contact{FirstName: "New", LastName: "Lead", Phone: "9015550142"}}
	w := newTestWorkflow(client, dir, &memorySink{})

	w.Process(context.Background(), Request{
		PhoneNumber: "9015550142",
		Message:     "Hey, I'm Chris Anderson",
	})
	if !dir.nameSet {
		t.Fatal("expected name fill to be attempted")
	}
	if dir.firstName != "Chris" || dir.lastName != "Anderson" {
		t.Errorf("name = %q %q", dir.firstName, dir.lastName)
	}
}

func TestProcessContextLookupFailureContinues(t *testing.T) {
	client := &scriptedClient{responses: []*llm.ChatResponse{
		textResponse(`{"category":"general_question"}`),
		textResponse("Happy to help!"),
	}}
	dir := &memoryContacts{findErr: errors.New("db down")}
	w := newTestWorkflow(client, dir, &memorySink{})

	resp := w.Process(context.Background(), Request{PhoneNumber: "9015550142", Message: "hi"})
	if !resp.Success {
		t.Errorf("context lookup failure broke the pipeline: %+v", resp)
	}
}

func TestFallbackText(t *testing.T) {
	got := FallbackText("M10 DJ Company", "Ben", "(901) 410-2020")
	if got != testFallback {
		t.Errorf("fallback = %q", got)
	}
}
