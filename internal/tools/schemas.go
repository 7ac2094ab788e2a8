package tools

// toolSchema is the model-facing description of one tool.
type toolSchema struct {
	description string
	parameters  map[string]any
}

var schemas = map[Name]toolSchema{
	CheckAvailability: {
		description: "Check if a specific date is available for booking DJ services",
		parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"event_date": map[string]any{
					"type":        "string",
					"description": "The event date in YYYY-MM-DD format",
				},
				"event_type": map[string]any{
					"type":        "string",
					"enum":        EventTypeValues,
					"description": "The type of event",
				},
			},
			"required": []string{"event_date"},
		},
	},
	GetPricingInfo: {
		description: "Get pricing information for DJ services based on event type",
		parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"event_type": map[string]any{
					"type":        "string",
					"enum":        EventTypeValues,
					"description": "The type of event to get pricing for",
				},
				"duration_hours": map[string]any{
					"type":        "integer",
					"description": "Desired event duration in hours",
				},
				"guest_count": map[string]any{
					"type":        "integer",
					"description": "Expected number of guests",
				},
				"special_equipment": map[string]any{
					"type":        "boolean",
					"description": "Whether the customer asked about add-ons like uplighting or photo booth",
				},
			},
			"required": []string{"event_type"},
		},
	},
	GenerateServiceLink: {
		description: "Generate a personalized link where the customer can view packages, select services, and pay a deposit",
		parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"phone_number": map[string]any{
					"type":        "string",
					"description": "The customer's phone number",
				},
				"email": map[string]any{
					"type":        "string",
					"description": "The customer's email address if known",
				},
				"first_name": map[string]any{
					"type":        "string",
					"description": "The customer's first name if known",
				},
				"last_name": map[string]any{
					"type":        "string",
					"description": "The customer's last name if known",
				},
				"event_type": map[string]any{
					"type":        "string",
					"enum":        EventTypeValues,
					"description": "The type of event",
				},
				"event_date": map[string]any{
					"type":        "string",
					"description": "The event date in YYYY-MM-DD format if known",
				},
			},
			"required": []string{"phone_number", "event_type"},
		},
	},
	UpdateLeadInformation: {
		description: "Save details the customer shared (name, email, event type, date, venue, guest count, budget, special requests) to their lead record",
		parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"phone_number": map[string]any{
					"type":        "string",
					"description": "The customer's phone number",
				},
				"updates": map[string]any{
					"type":        "object",
					"description": "Fields to update",
					"properties": map[string]any{
						"first_name": map[string]any{"type": "string"},
						"last_name":  map[string]any{"type": "string"},
						"email":      map[string]any{"type": "string"},
						"event_type": map[string]any{
							"type": "string",
							"enum": EventTypeValues,
						},
						"event_date": map[string]any{
							"type":        "string",
							"description": "The event date in YYYY-MM-DD format",
						},
						"venue_name": map[string]any{"type": "string"},
						"guest_count": map[string]any{
							"type":        "integer",
							"description": "Expected number of guests",
						},
						"budget_range":     map[string]any{"type": "string"},
						"special_requests": map[string]any{"type": "string"},
					},
					"additionalProperties": false,
				},
			},
			"required": []string{"phone_number", "updates"},
		},
	},
	CreateFollowUpTask: {
		description: "Create a follow-up task so the owner personally handles a request the assistant cannot resolve",
		parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"phone_number": map[string]any{
					"type":        "string",
					"description": "The customer's phone number",
				},
				"task_type": map[string]any{
					"type": "string",
					"enum": []string{"call_back", "send_quote", "answer_question", "schedule_meeting"},
				},
				"priority": map[string]any{
					"type": "string",
					"enum": []string{"high", "medium", "low"},
				},
				"notes": map[string]any{
					"type":        "string",
					"description": "What the follow-up is about",
				},
			},
			"required": []string{"phone_number", "task_type", "priority"},
		},
	},
}
