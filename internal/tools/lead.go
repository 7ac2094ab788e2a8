package tools

import (
	"fmt"
	"strings"

	"github.com/m10dj/sms-agent/internal/contacts"
)

type leadUpdateResult struct {
	Success       bool     `json:"success"`
	UpdatedFields []string `json:"updated_fields"`
	Message       string   `json:"message"`
}

func (r *Registry) updateLeadInformation(args map[string]any) (any, error) {
	phone := argString(args, "phone_number")
	if phone == "" {
		return nil, fmt.Errorf("phone_number is required")
	}
	fields, ok := args["updates"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("updates object is required")
	}

	u, err := leadUpdates(fields)
	if err != nil {
		return nil, err
	}

	updated, err := r.contacts.UpdateByPhone(phone, u)
	if err != nil {
		return nil, fmt.Errorf("update lead: %w", err)
	}

	return leadUpdateResult{
		Success:       true,
		UpdatedFields: updated,
		Message:       fmt.Sprintf("Saved %d detail(s) to the lead record.", len(updated)),
	}, nil
}

// leadUpdateFields is the closed set of keys accepted inside updates.
var leadUpdateFields = map[string]bool{
	"first_name":       true,
	"last_name":        true,
	"email":            true,
	"event_type":       true,
	"event_date":       true,
	"venue_name":       true,
	"guest_count":      true,
	"budget_range":     true,
	"special_requests": true,
}

// leadUpdates binds the bounded updatable fields from the updates object.
// Keys outside leadUpdateFields are validation errors, as are known keys
// with invalid values.
func leadUpdates(args map[string]any) (contacts.Updates, error) {
	var u contacts.Updates

	for key := range args {
		if !leadUpdateFields[key] {
			return u, fmt.Errorf("unknown update field %q", key)
		}
	}

	str := func(key string, dst **string) {
		if s := strings.TrimSpace(argString(args, key)); s != "" {
			*dst = &s
		}
	}

	str("first_name", &u.FirstName)
	str("last_name", &u.LastName)
	str("email", &u.Email)
	str("venue_name", &u.VenueName)
	str("budget_range", &u.BudgetRange)
	str("special_requests", &u.SpecialRequests)

	if et := argString(args, "event_type"); et != "" {
		if !validEventType(et) {
			return u, fmt.Errorf("unknown event_type %q", et)
		}
		u.EventType = &et
	}
	if ed := argString(args, "event_date"); ed != "" {
		if _, err := parseEventDate(ed); err != nil {
			return u, err
		}
		u.EventDate = &ed
	}
	if n, ok := argInt(args, "guest_count"); ok {
		if n <= 0 {
			return u, fmt.Errorf("guest_count must be positive")
		}
		u.GuestCount = &n
	}
	return u, nil
}
