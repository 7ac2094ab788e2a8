package agents

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/m10dj/sms-agent/internal/contacts"
	"github.com/m10dj/sms-agent/internal/exchanges"
)

const defaultClassifyTimeout = 15 * time.Second

// ContactReader is the slice of the contact store the workflow reads for
// customer context.
type ContactReader interface {
	FindByPhone(phone string) (*contacts.Contact, error)
	SetNameIfEmpty(phone, firstName, lastName string) (bool, error)
}

// AuditSink records completed exchanges. Implemented by *exchanges.Store.
type AuditSink interface {
	Insert(r *exchanges.Record) error
}

// Request is one inbound SMS message.
type Request struct {
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message"`

	// CustomerContext optionally carries caller-supplied context; when
	// empty the workflow loads it from the contact record itself.
	CustomerContext string `json:"customer_context,omitempty"`
}

// Response is the workflow's verdict for one message. OutputText is
// always safe to send to the customer, fallback included.
type Response struct {
	Success        bool     `json:"success"`
	OutputText     string   `json:"output_text"`
	Classification Category `json:"classification,omitempty"`
	AgentUsed      string   `json:"agent_used,omitempty"`
	Confidence     float64  `json:"confidence,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// FallbackText builds the canned reply used when classification or
// execution fails. It promises a human follow-up and gives a phone
// number; it never exposes what went wrong.
func FallbackText(businessName, ownerName, phone string) string {
	return fmt.Sprintf("Thanks for contacting %s! 🎵 %s will personally respond within 30 minutes. For immediate assistance, call %s.",
		businessName, ownerName, phone)
}

// Workflow wires classification, routing, execution, and auditing into
// the per-message lifecycle. It is the only place an unhandled failure
// from the pipeline is caught and turned into customer-safe text.
type Workflow struct {
	classifier *Classifier
	executor   *Executor
	contacts   ContactReader
	audit      AuditSink
	fallback   string
	logger     *slog.Logger

	classifyTimeout time.Duration
}

// NewWorkflow assembles the message workflow. contacts and audit may be
// nil in reduced setups; the pipeline then runs without customer context
// and without audit rows.
func NewWorkflow(classifier *Classifier, executor *Executor, dir ContactReader, audit AuditSink, fallback string, logger *slog.Logger) *Workflow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workflow{
		classifier:      classifier,
		executor:        executor,
		contacts:        dir,
		audit:           audit,
		fallback:        fallback,
		logger:          logger.With("component", "workflow"),
		classifyTimeout: defaultClassifyTimeout,
	}
}

// Process runs one inbound message through the full pipeline and always
// returns a sendable reply. Only classification and execution failures
// reach the fallback path; tool and persistence trouble degrade inside
// their own stages.
func (w *Workflow) Process(ctx context.Context, req Request) Response {
	start := time.Now()
	transcript := NewTranscript()

	contact := w.preloadContext(transcript, req)
	w.noteLeadInfo(req, contact)
	transcript.AppendUser(req.Message)

	classifyCtx, cancel := context.WithTimeout(ctx, w.classifyTimeout)
	result, err := w.classifier.Classify(classifyCtx, transcript)
	cancel()
	if err != nil {
		w.logger.Error("classification failed", "phone", req.PhoneNumber, "error", err)
		return w.fallbackResponse(err)
	}

	profile := ProfileFor(result.Category)

	reply, err := w.executor.Run(ctx, profile, transcript)
	if err != nil {
		w.logger.Error("execution failed",
			"phone", req.PhoneNumber,
			"agent", profile.Name,
			"error", err,
		)
		return w.fallbackResponse(err)
	}

	resp := Response{
		Success:        true,
		OutputText:     reply,
		Classification: result.Category,
		AgentUsed:      profile.Name,
		Confidence:     result.Confidence,
	}

	// The reply is final at this point. Auditing is best-effort and must
	// never alter what the customer receives.
	w.persist(req, resp)

	w.logger.Info("message processed",
		"phone", req.PhoneNumber,
		"classification", resp.Classification,
		"agent", resp.AgentUsed,
		"duration", time.Since(start),
	)
	return resp
}

func (w *Workflow) fallbackResponse(err error) Response {
	return Response{
		Success:    false,
		OutputText: w.fallback,
		Error:      err.Error(),
	}
}

// preloadContext seeds the transcript with what the business already
// knows about the sender, so specialists "remember" customers from the
// contact record rather than from any cross-request state.
func (w *Workflow) preloadContext(t *Transcript, req Request) *contacts.Contact {
	if req.CustomerContext != "" {
		t.AppendSystem(req.CustomerContext)
		return nil
	}
	if w.contacts == nil {
		return nil
	}

	contact, err := w.contacts.FindByPhone(req.PhoneNumber)
	if err != nil {
		w.logger.Warn("customer context lookup failed", "phone", req.PhoneNumber, "error", err)
		return nil
	}
	if contact == nil {
		return nil
	}

	t.AppendSystem(customerContextLine(contact))
	return contact
}

func customerContextLine(c *contacts.Contact) string {
	var b strings.Builder
	b.WriteString("Known customer")
	if name := c.FullName(); name != "" && name != "New Lead" {
		b.WriteString(": " + name)
	}
	b.WriteString(".")
	if c.EventType != "" {
		b.WriteString(" Event: " + c.EventType)
		if c.EventDate != "" {
			b.WriteString(" on " + c.EventDate)
		}
		if c.VenueName != "" {
			b.WriteString(" at " + c.VenueName)
		}
		b.WriteString(".")
	}
	if c.GuestCount > 0 {
		fmt.Fprintf(&b, " Around %d guests.", c.GuestCount)
	}
	b.WriteString(" Lead status: " + c.LeadStatus + ".")
	return b.String()
}

// noteLeadInfo scans the message for volunteered details and fills in the
// contact's name when the record has none. Best-effort throughout.
func (w *Workflow) noteLeadInfo(req Request, contact *contacts.Contact) {
	info := ExtractLeadInfo(req.Message)
	if info.EventType != "" || info.PossibleDate != "" || info.GuestCount > 0 {
		w.logger.Debug("lead details mentioned",
			"phone", req.PhoneNumber,
			"event_type", info.EventType,
			"possible_date", info.PossibleDate,
			"guest_count", info.GuestCount,
		)
	}
	if !info.NameDetected || contact == nil || w.contacts == nil {
		return
	}

	set, err := w.contacts.SetNameIfEmpty(req.PhoneNumber, info.FirstName, info.LastName)
	if err != nil {
		w.logger.Warn("name update failed", "phone", req.PhoneNumber, "error", err)
		return
	}
	if set {
		w.logger.Info("contact name detected", "phone", req.PhoneNumber, "name", info.FirstName+" "+info.LastName)
	}
}

// persist writes the audit row. It runs after the reply is finalized and
// swallows every failure; the caller's context does not apply because the
// row should land even when the caller has already gone away.
func (w *Workflow) persist(req Request, resp Response) {
	if w.audit == nil {
		return
	}
	rec := &exchanges.Record{
		PhoneNumber:    req.PhoneNumber,
		Message:        req.Message,
		Response:       resp.OutputText,
		AgentUsed:      resp.AgentUsed,
		Classification: string(resp.Classification),
	}
	if err := w.audit.Insert(rec); err != nil {
		w.logger.Error("audit write failed", "phone", req.PhoneNumber, "error", err)
	}
}
