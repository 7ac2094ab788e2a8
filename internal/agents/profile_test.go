package agents

import (
	"testing"

	"github.com/m10dj/sms-agent/internal/tools"
)

func TestProfileForResolvesEveryCategory(t *testing.T) {
	seen := map[string]Category{}
	for _, c := range Categories {
		p := ProfileFor(c)
		if p.Name == "" {
			t.Errorf("ProfileFor(%s) has no name", c)
		}
		if len(p.Tools) == 0 {
			t.Errorf("ProfileFor(%s) has no tools", c)
		}
		if prev, dup := seen[p.Name]; dup {
			t.Errorf("profile %q serves both %s and %s", p.Name, prev, c)
		}
		seen[p.Name] = c
	}
	if len(seen) != 5 {
		t.Errorf("distinct profiles = %d, want 5", len(seen))
	}
}

func TestProfileForUnknownDefaultsToGeneralQuestion(t *testing.T) {
	p := ProfileFor(Category("telepathy"))
	if p.Name != "Information Specialist" {
		t.Errorf("unknown category resolved to %q", p.Name)
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		if got := ParseCategory(string(c)); got != c {
			t.Errorf("ParseCategory(%q) = %q", c, got)
		}
	}
	if got := ParseCategory("spam"); got != CategoryGeneralQuestion {
		t.Errorf("ParseCategory(spam) = %q, want general_question", got)
	}
	if got := ParseCategory(""); got != CategoryGeneralQuestion {
		t.Errorf("ParseCategory(empty) = %q, want general_question", got)
	}
}

func TestProfileGenerationParameters(t *testing.T) {
	tests := []struct {
		category  Category
		temp      float64
		maxTokens int
	}{
		{CategoryCheckAvailability, 0.7, 300},
		{CategoryGetPricing, 0.6, 350},
		{CategoryBookService, 0.7, 300},
		{CategoryGeneralQuestion, 0.7, 400},
		{CategoryExistingCustomer, 0.8, 300},
	}
	for _, tt := range tests {
		p := ProfileFor(tt.category)
		if p.Options.Temperature != tt.temp {
			t.Errorf("%s temperature = %v, want %v", tt.category, p.Options.Temperature, tt.temp)
		}
		if p.Options.MaxTokens != tt.maxTokens {
			t.Errorf("%s max tokens = %d, want %d", tt.category, p.Options.MaxTokens, tt.maxTokens)
		}
		if p.Options.ParallelToolCalls {
			t.Errorf("%s allows parallel tool calls", tt.category)
		}
	}
}

func TestPricingProfileCanQuote(t *testing.T) {
	p := ProfileFor(CategoryGetPricing)
	found := false
	for _, name := range p.Tools {
		if name == tools.GetPricingInfo {
			found = true
		}
	}
	if !found {
		t.Error("pricing profile cannot call get_pricing_info")
	}
}
