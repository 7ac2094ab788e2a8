package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/m10dj/sms-agent/internal/contacts"
	"github.com/m10dj/sms-agent/internal/links"
)

// serviceLinkResult is the generate_service_link contract. Issuer outages
// degrade into a success=false result so the agent can promise a manual
// follow-up instead of dropping the conversation.
type serviceLinkResult struct {
	Success   bool   `json:"success"`
	Link      string `json:"link,omitempty"`
	ShortLink string `json:"short_link,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (r *Registry) generateServiceLink(ctx context.Context, args map[string]any) (any, error) {
	phone := argString(args, "phone_number")
	if phone == "" {
		return nil, fmt.Errorf("phone_number is required")
	}
	eventType := argString(args, "event_type")
	if eventType == "" {
		return nil, fmt.Errorf("event_type is required")
	}
	if !validEventType(eventType) {
		return nil, fmt.Errorf("unknown event_type %q", eventType)
	}
	eventDate := argString(args, "event_date")
	if eventDate != "" {
		if _, err := parseEventDate(eventDate); err != nil {
			return nil, err
		}
	}

	contact, err := r.ensureContact(phone, args, eventType, eventDate)
	if err != nil {
		r.logger.Error("service link contact lookup failed", "phone", phone, "error", err)
		return r.linkUnavailable(), nil
	}

	email := argString(args, "email")
	if email == "" {
		email = contact.Email
	}
	if email == "" {
		// SMS-only leads get a synthetic address the booking site accepts.
		email = fmt.Sprintf("sms-%s@%s", contacts.NormalizePhone(phone), r.cfg.EmailDomain)
	}

	// ForceNewToken stays false so a lead who asks twice gets the same
	// link back instead of invalidating the one already texted to them.
	link, err := r.links.Generate(ctx, links.Request{
		Email:     email,
		ContactID: contact.ID.String(),
		EventType: eventType,
		EventDate: eventDate,
	})
	if err != nil {
		r.logger.Error("service link generation failed", "phone", phone, "error", err)
		return r.linkUnavailable(), nil
	}

	return serviceLinkResult{
		Success:   true,
		Link:      link,
		ShortLink: r.links.Shorten(link),
		Message:   "Here's your personalized link to view packages, select services, and reserve your date with a deposit.",
	}, nil
}

func (r *Registry) linkUnavailable() serviceLinkResult {
	return serviceLinkResult{
		Success: false,
		Error: fmt.Sprintf("Unable to generate link right now. %s will text you a personalized quote within 30 minutes!",
			r.cfg.OwnerName),
	}
}

// ensureContact finds the active contact for phone or creates a minimal
// one, then records any details the model passed along.
func (r *Registry) ensureContact(phone string, args map[string]any, eventType, eventDate string) (*contacts.Contact, error) {
	contact, err := r.contacts.FindByPhone(phone)
	if err != nil {
		return nil, err
	}

	first := strings.TrimSpace(argString(args, "first_name"))
	last := strings.TrimSpace(argString(args, "last_name"))

	if contact == nil {
		c := &contacts.Contact{
			FirstName:  first,
			LastName:   last,
			Phone:      phone,
			Email:      argString(args, "email"),
			EventType:  eventType,
			EventDate:  eventDate,
			LeadStatus: contacts.StatusNew,
			Source:     "sms",
		}
		if c.FirstName == "" {
			c.FirstName = "New"
			c.LastName = "Lead"
		}
		if err := r.contacts.Create(c); err != nil {
			return nil, err
		}
		return c, nil
	}

	u := contacts.Updates{EventType: &eventType}
	if first != "" {
		u.FirstName = &first
	}
	if last != "" {
		u.LastName = &last
	}
	if eventDate != "" {
		u.EventDate = &eventDate
	}
	if email := argString(args, "email"); email != "" {
		u.Email = &email
	}
	if _, err := r.contacts.UpdateByPhone(phone, u); err != nil {
		// The link matters more than the bookkeeping; log and continue.
		r.logger.Warn("contact update before link failed", "phone", phone, "error", err)
	}
	return contact, nil
}
