package curriculum

import "github.com/abhisek/lingoz/internal/llm"

// MissionSchema defines the JSON schema for daily mission generation.
var MissionSchema = &llm.Schema{
	Name:        "daily-mission",
	Description: "A daily English curriculum: topic, grammar card, 20 vocabulary pairs, 20 practice sentences",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic": map[string]any{
				"type":        "string",
				"description": "English topic name, e.g. Daily Routine",
			},
			"grammar": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title": map[string]any{
						"type":        "string",
						"description": "Grammar point title, in Korean",
					},
					"description": map[string]any{
						"type":        "string",
						"description": "Plain-language explanation of the grammar point, in Korean",
					},
					"rule": map[string]any{
						"type":        "string",
						"description": "The pattern formula, in English",
					},
					"example": map[string]any{
						"type":        "string",
						"description": "An example sentence, in English",
					},
				},
				"required":             []any{"title", "description", "rule", "example"},
				"additionalProperties": false,
			},
			"words": map[string]any{
				"type":     "array",
				"minItems": MissionWords,
				"maxItems": MissionWords,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"en": map[string]any{
							"type":        "string",
							"description": "English word",
						},
						"ko": map[string]any{
							"type":        "string",
							"description": "Korean meaning",
						},
					},
					"required":             []any{"en", "ko"},
					"additionalProperties": false,
				},
			},
			"practice_sentences": map[string]any{
				"type":     "array",
				"minItems": MissionPrompts,
				"maxItems": MissionPrompts,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"ko": map[string]any{
							"type":        "string",
							"description": "Korean sentence to translate",
						},
						"en": map[string]any{
							"type":        "string",
							"description": "Correct English sentence",
						},
						"hint_structure": map[string]any{
							"type":        "string",
							"description": "Sentence structure hint, in Korean",
						},
						"hint_grammar": map[string]any{
							"type":        "string",
							"description": "Grammar hint, in Korean",
						},
					},
					"required":             []any{"ko", "en", "hint_structure", "hint_grammar"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"topic", "grammar", "words", "practice_sentences"},
		"additionalProperties": false,
	},
}
