package narrative

import "github.com/multikids/portage/internal/llm"

// RecommendationSchema defines the JSON schema for per-category recommendations.
var RecommendationSchema = &llm.Schema{
	Name:        "category-recommendations",
	Description: "Recommendations for developmental areas that need attention",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"recommendations": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"category": map[string]any{
							"type":        "string",
							"description": "Category name exactly as given in the input",
						},
						"summary": map[string]any{
							"type":        "string",
							"description": "One or two sentences for the caregiver, in Portuguese",
						},
						"actions": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "2-4 concrete home activities (5-12 words each)",
						},
					},
					"required":             []any{"category", "summary", "actions"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"recommendations"},
		"additionalProperties": false,
	},
}
