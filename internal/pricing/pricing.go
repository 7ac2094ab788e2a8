// Package pricing holds the static package pricing table.
//
// The table is compiled in: pricing questions must be answerable even when
// the datastore is down, and the ranges quoted over SMS are a marketing
// commitment, not derived data.
package pricing

import "fmt"

// Package is a named service package with a fixed duration and price.
type Package struct {
	Name  string `json:"name"`
	Hours int    `json:"hours"`
	Price int    `json:"price"`
}

// Tier describes pricing for one event type.
type Tier struct {
	BasePrice   int       `json:"base_price"`
	MaxPrice    int       `json:"max_price"`
	Description string    `json:"description"`
	Packages    []Package `json:"popular_packages"`
}

// PriceRange formats the tier's range the way it is quoted to customers.
func (t Tier) PriceRange() string {
	return fmt.Sprintf("$%d - $%d", t.BasePrice, t.MaxPrice)
}

// AddOnsText lists the optional equipment add-ons quoted alongside a tier.
const AddOnsText = "\n\nPopular Add-ons:\n• Uplighting: $300-500\n• Photo Booth: $400-600\n• Extra Speakers: $200\n• Wireless Mic: $100"

// tiers is keyed by event type. Unknown event types fall back to "other".
var tiers = map[string]Tier{
	"wedding": {
		BasePrice:   1200,
		MaxPrice:    2500,
		Description: "Wedding packages include ceremony sound, reception DJ services, professional lighting, and unlimited music requests",
		Packages: []Package{
			{Name: "Classic", Hours: 4, Price: 1200},
			{Name: "Premium", Hours: 6, Price: 1800},
			{Name: "Ultimate", Hours: 8, Price: 2500},
		},
	},
	"corporate": {
		BasePrice:   800,
		MaxPrice:    2000,
		Description: "Corporate event packages include professional sound system, background music, and optional MC services",
		Packages: []Package{
			{Name: "Basic", Hours: 3, Price: 800},
			{Name: "Standard", Hours: 5, Price: 1200},
			{Name: "Full Service", Hours: 8, Price: 2000},
		},
	},
	"private_party": {
		BasePrice:   600,
		MaxPrice:    1500,
		Description: "Private party packages include DJ services, sound system, and dance floor lighting",
		Packages: []Package{
			{Name: "Party Starter", Hours: 3, Price: 600},
			{Name: "Party Pro", Hours: 4, Price: 900},
			{Name: "All Night", Hours: 6, Price: 1500},
		},
	},
	"school": {
		BasePrice:   500,
		MaxPrice:    1200,
		Description: "School event packages designed for proms, homecoming, and school dances",
		Packages: []Package{
			{Name: "School Dance", Hours: 4, Price: 800},
			{Name: "Prom Package", Hours: 5, Price: 1200},
		},
	},
	"other": {
		BasePrice:   600,
		MaxPrice:    2000,
		Description: "Custom packages available for all event types",
	},
}

// Lookup returns the tier for an event type. Unknown types resolve to the
// generic "other" tier; ok reports whether the type matched directly.
func Lookup(eventType string) (Tier, bool) {
	if t, ok := tiers[eventType]; ok {
		return t, true
	}
	return tiers["other"], false
}
