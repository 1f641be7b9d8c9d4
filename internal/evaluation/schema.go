package evaluation

import "github.com/abhisek/intervue/internal/llm"

// EvaluationSchema defines the JSON schema for answer evaluation responses.
var EvaluationSchema = &llm.Schema{
	Name:        "answer-evaluation",
	Description: "Score and short feedback for a candidate's interview answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     10,
				"description": "Score from 0 (wrong or irrelevant) to 10 (excellent, comprehensive)",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Brief 1-2 sentence constructive feedback",
			},
		},
		"required":             []any{"score", "feedback"},
		"additionalProperties": false,
	},
}
