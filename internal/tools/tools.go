// Package tools defines the five operations the SMS agents may invoke.
//
// The tool set is a closed enum: dispatch is a switch over [Name], so an
// agent profile's allowed-tool list can be checked exhaustively and a new
// tool cannot be added without the compiler noticing the switch.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/m10dj/sms-agent/internal/contacts"
	"github.com/m10dj/sms-agent/internal/followup"
	"github.com/m10dj/sms-agent/internal/links"
)

// Name identifies one tool. The values are wire contracts shared with the
// model and the external store.
type Name string

const (
	CheckAvailability     Name = "check_availability"
	GetPricingInfo        Name = "get_pricing_info"
	GenerateServiceLink   Name = "generate_service_link"
	UpdateLeadInformation Name = "update_lead_information"
	CreateFollowUpTask    Name = "create_follow_up_task"
)

// All lists every tool in stable order.
var All = []Name{
	CheckAvailability,
	GetPricingInfo,
	GenerateServiceLink,
	UpdateLeadInformation,
	CreateFollowUpTask,
}

// ParseName reports whether s names a known tool.
func ParseName(s string) (Name, bool) {
	switch Name(s) {
	case CheckAvailability, GetPricingInfo, GenerateServiceLink,
		UpdateLeadInformation, CreateFollowUpTask:
		return Name(s), true
	}
	return "", false
}

// Event types accepted by tools that take one.
var eventTypes = map[string]bool{
	"wedding":       true,
	"corporate":     true,
	"private_party": true,
	"school":        true,
	"other":         true,
}

// EventTypeValues lists the accepted event types for schema enums.
var EventTypeValues = []string{"wedding", "corporate", "private_party", "school", "other"}

// ContactDirectory is the slice of the contact store the tools need.
type ContactDirectory interface {
	FindByPhone(phone string) (*contacts.Contact, error)
	Create(c *contacts.Contact) error
	UpdateByPhone(phone string, u contacts.Updates) ([]string, error)
	ConfirmedBookingsOn(date string) (int, error)
}

// TaskCreator creates admin follow-up tasks.
type TaskCreator interface {
	CreateTask(t *followup.Task) error
}

// Config carries the business facts tools embed in customer-facing text.
type Config struct {
	BusinessPhone string // appears in degraded-lookup messages
	OwnerName     string // appears in follow-up promises
	EmailDomain   string // synthesizes addresses for SMS-only leads
}

// Registry binds the tool contracts to their backing stores and clients.
type Registry struct {
	contacts ContactDirectory
	tasks    TaskCreator
	links    links.Issuer
	cfg      Config
	logger   *slog.Logger
}

// NewRegistry creates a tool registry over the given collaborators.
func NewRegistry(dir ContactDirectory, tasks TaskCreator, issuer links.Issuer, cfg Config, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		contacts: dir,
		tasks:    tasks,
		links:    issuer,
		cfg:      cfg,
		logger:   logger.With("component", "tools"),
	}
}

// Definitions returns LLM-facing tool definitions for the allowed subset,
// in the order given.
func (r *Registry) Definitions(allowed []Name) []map[string]any {
	var defs []map[string]any
	for _, name := range allowed {
		if schema, ok := schemas[name]; ok {
			defs = append(defs, map[string]any{
				"type": "function",
				"function": map[string]any{
					"name":        string(name),
					"description": schema.description,
					"parameters":  schema.parameters,
				},
			})
		}
	}
	return defs
}

// Execute runs a tool by name and returns its result as a JSON document.
// Validation failures and I/O failures that a tool cannot express in its
// own result contract are returned as errors; the caller is responsible
// for folding those into a structured error turn. Execute never panics on
// malformed args.
func (r *Registry) Execute(ctx context.Context, name Name, args map[string]any) (string, error) {
	start := time.Now()

	var (
		result any
		err    error
	)
	switch name {
	case CheckAvailability:
		result, err = r.checkAvailability(ctx, args)
	case GetPricingInfo:
		result, err = r.getPricingInfo(args)
	case GenerateServiceLink:
		result, err = r.generateServiceLink(ctx, args)
	case UpdateLeadInformation:
		result, err = r.updateLeadInformation(args)
	case CreateFollowUpTask:
		result, err = r.createFollowUpTask(args)
	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}

	if err != nil {
		r.logger.Warn("tool failed", "tool", name, "error", err, "duration", time.Since(start))
		return "", err
	}

	encoded, mErr := json.Marshal(result)
	if mErr != nil {
		return "", fmt.Errorf("encode result: %w", mErr)
	}

	r.logger.Debug("tool executed", "tool", name, "duration", time.Since(start))
	return string(encoded), nil
}

// Argument binding helpers. Tool arguments arrive as map[string]any from
// the model; JSON numbers decode as float64.

func argString(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func argInt(args map[string]any, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

func argBool(args map[string]any, key string) bool {
	b, _ := args[key].(bool)
	return b
}

func validEventType(s string) bool {
	return eventTypes[s]
}

// parseEventDate validates YYYY-MM-DD calendar dates.
func parseEventDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("event_date must be YYYY-MM-DD: %q", s)
	}
	return t, nil
}
