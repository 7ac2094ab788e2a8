package agents

import "testing"

func TestExtractName(t *testing.T) {
	tests := []struct {
		message string
		first   string
		last    string
	}{
		{"Hi, this is Haywood Williams and I need a DJ", "Haywood", "Williams"},
		{"My name is Jennifer Lee", "Jennifer", "Lee"},
		{"Hey, I'm Chris Anderson", "Chris", "Anderson"},
		{"This is Chris calling about a wedding", "Chris", ""},
		{"Michael Davis here, checking on pricing", "Michael", "Davis"},
	}
	for _, tt := range tests {
		info := ExtractLeadInfo(tt.message)
		if !info.NameDetected {
			t.Errorf("%q: no name detected", tt.message)
			continue
		}
		if info.FirstName != tt.first || info.LastName != tt.last {
			t.Errorf("%q: name = %q %q, want %q %q", tt.message, info.FirstName, info.LastName, tt.first, tt.last)
		}
	}
}

func TestExtractNameRejectsNonNames(t *testing.T) {
	for _, message := range []string{
		"How much do you charge?",
		"I'm looking for a DJ",
		"This is about my wedding",
		"I am wondering about prices",
	} {
		if info := ExtractLeadInfo(message); info.NameDetected {
			t.Errorf("%q: detected name %q %q", message, info.FirstName, info.LastName)
		}
	}
}

func TestExtractEventType(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"I need a DJ for my wedding reception", "wedding"},
		{"Company holiday party for the office", "corporate"},
		{"It's my daughter's birthday", "private_party"},
		{"Our school prom is in May", "school"},
		{"Christmas gathering", "other"},
		{"Can you play vinyl?", ""},
	}
	for _, tt := range tests {
		if info := ExtractLeadInfo(tt.message); info.EventType != tt.want {
			t.Errorf("%q: event type = %q, want %q", tt.message, info.EventType, tt.want)
		}
	}
}

func TestExtractDateAndGuests(t *testing.T) {
	info := ExtractLeadInfo("Planning a wedding on 6/15/2026 for about 120 guests")
	if info.PossibleDate != "6/15/2026" {
		t.Errorf("date = %q", info.PossibleDate)
	}
	if info.GuestCount != 120 {
		t.Errorf("guests = %d", info.GuestCount)
	}

	info = ExtractLeadInfo("Thinking June 15, 2026 for 80 people")
	if info.PossibleDate == "" {
		t.Error("expected month-name date to be detected")
	}
	if info.GuestCount != 80 {
		t.Errorf("guests = %d", info.GuestCount)
	}

	info = ExtractLeadInfo("2026-06-15 work for you?")
	if info.PossibleDate != "2026-06-15" {
		t.Errorf("date = %q", info.PossibleDate)
	}
}
