package agents

import (
	"regexp"
	"strconv"
	"strings"
)

// LeadInfo is what a quick scan of one inbound message reveals about the
// sender. It feeds the owner notification and, when the contact has no
// name yet, an opportunistic name update. It never overrides what the
// specialist saves through tools.
type LeadInfo struct {
	FirstName    string
	LastName     string
	NameDetected bool
	EventType    string
	PossibleDate string
	GuestCount   int
}

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:hi|hey|hello)[,\s]+(?:this is|i'?m|i am|my name is)\s+([A-Za-z]+(?:\s+[A-Za-z]+)?)`),
	regexp.MustCompile(`(?i)^this is\s+([A-Za-z]+(?:\s+[A-Za-z]+)?)`),
	regexp.MustCompile(`(?i)my name is\s+([A-Za-z]+(?:\s+[A-Za-z]+)?)`),
	regexp.MustCompile(`(?i)(?:^|\.\s+)i\s+am\s+([A-Za-z]+(?:\s+[A-Za-z]+)?)`),
	regexp.MustCompile(`^([A-Z][a-z]+\s+[A-Z][a-z]+)\s+here\b`),
}

// nonNameWords are words the introduction patterns tend to capture that
// are never actually names.
var nonNameWords = map[string]bool{
	"calling": true, "texting": true, "reaching": true, "contacting": true,
	"interested": true, "looking": true, "needing": true, "asking": true,
	"inquiring": true, "wondering": true, "hoping": true, "wanting": true,
	"about": true, "regarding": true, "concerning": true, "booking": true,
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"for": true, "with": true, "from": true, "in": true, "my": true,
	"just": true, "so": true, "very": true, "really": true,
}

var eventKeywords = []struct {
	eventType string
	keywords  []string
}{
	{"wedding", []string{"wedding", "marry", "bride", "groom", "reception"}},
	{"corporate", []string{"corporate", "company", "business", "office"}},
	{"private_party", []string{"birthday", "bday", "party", "celebration", "anniversary"}},
	{"school", []string{"school", "prom", "homecoming", "graduation"}},
	{"other", []string{"holiday", "christmas", "thanksgiving", "new year", "halloween"}},
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{4}\b`),
	regexp.MustCompile(`\b\d{4}[/-]\d{1,2}[/-]\d{1,2}\b`),
	regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2}(?:,?\s+\d{4})?\b`),
}

var guestPattern = regexp.MustCompile(`(?i)(\d+)\s*(?:guests?|people|persons?)`)

// ExtractLeadInfo scans an inbound message for details the sender
// volunteered. Pattern matching only; anything it misses the specialist
// can still save through tools.
func ExtractLeadInfo(message string) LeadInfo {
	var info LeadInfo

	if first, last, ok := extractName(message); ok {
		info.FirstName = first
		info.LastName = last
		info.NameDetected = true
	}

	lower := strings.ToLower(message)
	for _, e := range eventKeywords {
		for _, kw := range e.keywords {
			if strings.Contains(lower, kw) {
				info.EventType = e.eventType
				break
			}
		}
		if info.EventType != "" {
			break
		}
	}

	for _, p := range datePatterns {
		if m := p.FindString(message); m != "" {
			info.PossibleDate = m
			break
		}
	}

	if m := guestPattern.FindStringSubmatch(message); m != nil {
		info.GuestCount, _ = strconv.Atoi(m[1])
	}

	return info
}

func extractName(message string) (first, last string, ok bool) {
	for _, p := range namePatterns {
		m := p.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		full := strings.Trim(strings.TrimSpace(m[1]), ",;:!?.")
		if len(full) < 2 || len(full) > 50 {
			continue
		}

		parts := strings.Fields(full)
		if len(parts) == 0 || nonNameWords[strings.ToLower(parts[0])] {
			continue
		}
		// A trailing verb like "Chris calling" keeps the name part.
		if len(parts) > 1 && nonNameWords[strings.ToLower(parts[1])] {
			parts = parts[:1]
		}

		first = title(parts[0])
		if len(parts) > 1 {
			last = title(parts[1])
		}
		return first, last, true
	}
	return "", "", false
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
