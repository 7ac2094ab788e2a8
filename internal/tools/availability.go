package tools

import (
	"context"
	"fmt"
	"time"
)

// availabilityResult is the check_availability contract. Available is a
// pointer so a calendar-lookup failure can report "unknown" rather than
// guessing either way.
type availabilityResult struct {
	Available        *bool    `json:"available"`
	Date             string   `json:"date,omitempty"`
	AlternativeDates []string `json:"alternative_dates,omitempty"`
	Message          string   `json:"message"`
}

const maxAlternativeDates = 3

func (r *Registry) checkAvailability(ctx context.Context, args map[string]any) (any, error) {
	dateStr := argString(args, "event_date")
	if dateStr == "" {
		return nil, fmt.Errorf("event_date is required")
	}
	date, err := parseEventDate(dateStr)
	if err != nil {
		return nil, err
	}
	if et := argString(args, "event_type"); et != "" && !validEventType(et) {
		return nil, fmt.Errorf("unknown event_type %q", et)
	}

	booked, err := r.bookedOn(date)
	if err != nil {
		r.logger.Error("availability lookup failed", "date", dateStr, "error", err)
		return availabilityResult{
			Available: nil,
			Date:      dateStr,
			Message: fmt.Sprintf("I couldn't check the calendar just now. Please call %s to confirm availability for %s.",
				r.cfg.BusinessPhone, dateStr),
		}, nil
	}

	pretty := date.Format("Monday, January 2, 2006")
	if !booked {
		yes := true
		return availabilityResult{
			Available: &yes,
			Date:      dateStr,
			Message:   fmt.Sprintf("Great news! %s is available for your event!", pretty),
		}, nil
	}

	no := false
	result := availabilityResult{
		Available:        &no,
		Date:             dateStr,
		AlternativeDates: r.nearbyOpenDates(date),
		Message:          fmt.Sprintf("Unfortunately %s is already booked.", pretty),
	}
	if len(result.AlternativeDates) > 0 {
		result.Message += " Here are some nearby dates that are open."
	}
	return result, nil
}

func (r *Registry) bookedOn(date time.Time) (bool, error) {
	n, err := r.contacts.ConfirmedBookingsOn(date.Format("2006-01-02"))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// nearbyOpenDates probes outward from the requested date, one day at a
// time in both directions, and collects up to three open dates. At equal
// distance the later date is offered first. Lookup errors during probing
// just end the scan; whatever was found so far is still useful.
func (r *Registry) nearbyOpenDates(date time.Time) []string {
	var open []string
	for offset := 1; offset <= 7 && len(open) < maxAlternativeDates; offset++ {
		for _, candidate := range []time.Time{
			date.AddDate(0, 0, offset),
			date.AddDate(0, 0, -offset),
		} {
			if len(open) == maxAlternativeDates {
				break
			}
			booked, err := r.bookedOn(candidate)
			if err != nil {
				r.logger.Warn("alternative-date probe failed", "date", candidate.Format("2006-01-02"), "error", err)
				return open
			}
			if !booked {
				open = append(open, candidate.Format("2006-01-02"))
			}
		}
	}
	return open
}
