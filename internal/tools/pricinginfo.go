package tools

import (
	"fmt"

	"github.com/m10dj/sms-agent/internal/pricing"
)

type pricingPackage struct {
	Name  string `json:"name"`
	Hours int    `json:"hours"`
	Price int    `json:"price"`
}

type pricingResult struct {
	EventType   string           `json:"event_type"`
	PriceRange  string           `json:"price_range"`
	Description string           `json:"description"`
	Packages    []pricingPackage `json:"packages,omitempty"`
	AddOns      string           `json:"add_ons,omitempty"`
}

func (r *Registry) getPricingInfo(args map[string]any) (any, error) {
	eventType := argString(args, "event_type")
	if eventType == "" {
		return nil, fmt.Errorf("event_type is required")
	}

	// No enum check here. Pricing is a pure lookup and an event type the
	// model invents still resolves to the generic "other" tier.
	tier, _ := pricing.Lookup(eventType)

	result := pricingResult{
		EventType:   eventType,
		PriceRange:  tier.PriceRange(),
		Description: tier.Description,
	}
	for _, p := range tier.Packages {
		result.Packages = append(result.Packages, pricingPackage{Name: p.Name, Hours: p.Hours, Price: p.Price})
	}
	if argBool(args, "special_equipment") {
		result.AddOns = pricing.AddOnsText
	}
	return result, nil
}
