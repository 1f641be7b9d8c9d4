// Package report synthesizes the end-of-interview performance report.
package report

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/abhisek/intervue/internal/llm"
)

// Maximum number of improved sample answers kept in a report.
const maxSampleAnswers = 2

// SampleAnswer is an improved version of a weak answer.
type SampleAnswer struct {
	Question       string `json:"question" bson:"question"`
	OriginalAnswer string `json:"originalAnswer" bson:"originalAnswer"`
	ImprovedAnswer string `json:"improvedAnswer" bson:"improvedAnswer"`
}

// Report is the aggregate assessment of a completed session.
type Report struct {
	OverallScore    float64        `json:"overallScore" bson:"overallScore"`
	PercentageScore int            `json:"percentageScore" bson:"percentageScore"`
	Strengths       []string       `json:"strengths" bson:"strengths"`
	Improvements    []string       `json:"improvements" bson:"improvements"`
	SampleAnswers   []SampleAnswer `json:"sampleAnswers" bson:"sampleAnswers"`
	SuggestedTopics []string       `json:"suggestedTopics" bson:"suggestedTopics"`
}

// Entry is one answered question of the session log.
type Entry struct {
	Question   string
	Answer     string
	Score      float64
	Feedback   string
	IsFollowUp bool
}

// MeanScore returns the arithmetic mean of the entry scores, 0 when empty.
func MeanScore(entries []Entry) float64 {
	if len(entries) == 0 {
		return 0
	}
	var sum float64
	for _, e := range entries {
		sum += e.Score
	}
	return sum / float64(len(entries))
}

// Fallback returns the deterministic report used when generation fails.
func Fallback(mean float64) Report {
	return Report{
		OverallScore:    math.Round(mean*10) / 10,
		PercentageScore: int(math.Round(mean * 10)),
		Strengths: []string{
			"Completed the interview",
			"Showed willingness to engage",
			"Attempted all questions",
		},
		Improvements: []string{
			"Provide more detailed answers",
			"Include practical examples",
			"Structure responses better",
		},
		SampleAnswers: []SampleAnswer{},
		SuggestedTopics: []string{
			"Core fundamentals",
			"System design basics",
			"Problem-solving patterns",
			"Communication skills",
		},
	}
}

type payload struct {
	OverallScore    *float64       `json:"overallScore"`
	PercentageScore *float64       `json:"percentageScore"`
	Strengths       []string       `json:"strengths"`
	Improvements    []string       `json:"improvements"`
	SampleAnswers   []SampleAnswer `json:"sampleAnswers"`
	SuggestedTopics []string       `json:"suggestedTopics"`
}

// Parse decodes a model payload into a Report. Scores are clamped to their
// ranges and at most two sample answers are kept. Both scores are required
// by ReportSchema, so a payload missing either is a parse error.
func Parse(raw json.RawMessage) (Report, error) {
	p, err := llm.DecodeJSON[payload](raw)
	if err != nil {
		return Report{}, err
	}
	if p.OverallScore == nil || math.IsNaN(*p.OverallScore) {
		return Report{}, &llm.ErrInvalidResponse{Content: raw, Err: errMissingOverall}
	}

	if p.PercentageScore == nil || math.IsNaN(*p.PercentageScore) {
		return Report{}, &llm.ErrInvalidResponse{Content: raw, Err: errMissingPercentage}
	}

	overall := clamp(*p.OverallScore, 0, 10)
	pct := clamp(*p.PercentageScore, 0, 100)

	samples := make([]SampleAnswer, 0, maxSampleAnswers)
	for _, s := range p.SampleAnswers {
		if len(samples) == maxSampleAnswers {
			break
		}
		if strings.TrimSpace(s.Question) == "" {
			continue
		}
		samples = append(samples, s)
	}

	return Report{
		OverallScore:    math.Round(overall*10) / 10,
		PercentageScore: int(math.Round(pct)),
		Strengths:       nonEmpty(p.Strengths),
		Improvements:    nonEmpty(p.Improvements),
		SampleAnswers:   samples,
		SuggestedTopics: nonEmpty(p.SuggestedTopics),
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
