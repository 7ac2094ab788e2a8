// Package agents implements the message workflow: intent classification,
// profile routing, the tool-calling executor loop, and the orchestrator
// that ties them to the stores.
package agents

// Category is an inquiry intent. The value set is closed; anything the
// classifier produces outside it routes to CategoryGeneralQuestion.
type Category string

const (
	CategoryCheckAvailability Category = "check_availability"
	CategoryGetPricing        Category = "get_pricing"
	CategoryBookService       Category = "book_service"
	CategoryGeneralQuestion   Category = "general_question"
	CategoryExistingCustomer  Category = "existing_customer"
)

// Categories lists every intent in stable order.
var Categories = []Category{
	CategoryCheckAvailability,
	CategoryGetPricing,
	CategoryBookService,
	CategoryGeneralQuestion,
	CategoryExistingCustomer,
}

// ParseCategory maps a wire string to a Category. Unknown or empty input
// resolves to CategoryGeneralQuestion so routing is total.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryCheckAvailability, CategoryGetPricing, CategoryBookService,
		CategoryGeneralQuestion, CategoryExistingCustomer:
		return Category(s)
	}
	return CategoryGeneralQuestion
}

// ClassificationResult is the classifier's verdict for one message. It is
// produced once per request and never modified after.
type ClassificationResult struct {
	Category       Category `json:"category"`
	Confidence     float64  `json:"confidence,omitempty"`
	DetectedIntent string   `json:"detected_intent,omitempty"`
}
