package report

import (
	"errors"

	"github.com/abhisek/intervue/internal/llm"
)

var (
	errMissingOverall    = errors.New("missing overallScore")
	errMissingPercentage = errors.New("missing percentageScore")
)

func stringList(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": desc,
	}
}

// ReportSchema defines the JSON schema for report generation responses.
var ReportSchema = &llm.Schema{
	Name:        "interview-report",
	Description: "Performance report for a completed mock interview",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"overallScore": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     10,
				"description": "Overall score 0-10 with one decimal",
			},
			"percentageScore": map[string]any{
				"type":    "number",
				"minimum": 0,
				"maximum": 100,
			},
			"strengths":    stringList("Three specific strengths"),
			"improvements": stringList("Three specific improvement areas"),
			"sampleAnswers": map[string]any{
				"type":        "array",
				"description": "Up to two improved answers for weak responses",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question":       map[string]any{"type": "string"},
						"originalAnswer": map[string]any{"type": "string"},
						"improvedAnswer": map[string]any{"type": "string"},
					},
					"required":             []any{"question", "originalAnswer", "improvedAnswer"},
					"additionalProperties": false,
				},
			},
			"suggestedTopics": stringList("Four topics to study next"),
		},
		"required":             []any{"overallScore", "percentageScore", "strengths", "improvements", "sampleAnswers", "suggestedTopics"},
		"additionalProperties": false,
	},
}
