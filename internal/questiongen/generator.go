// Package questiongen produces interview question text through the LLM.
package questiongen

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/abhisek/intervue/internal/difficulty"
	"github.com/abhisek/intervue/internal/llm"
)

// ErrEmptyQuestion is returned when the model produced no usable text.
var ErrEmptyQuestion = errors.New("generated question is empty")

// Config holds configuration for question generation.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   256,
		Temperature: 0.7,
	}
}

// Asked is one already-answered main question and its score.
type Asked struct {
	Question string
	Score    float64
}

// MainInput describes the next main question to generate.
type MainInput struct {
	Role          string
	Difficulty    difficulty.Level
	InterviewType string
	History       []Asked

	// Adjusted, when set, replaces Difficulty for this one question.
	Adjusted difficulty.Level
}

// Effective returns the difficulty the question is pitched at.
func (in MainInput) Effective() difficulty.Level {
	if in.Adjusted != "" {
		return in.Adjusted
	}
	return in.Difficulty
}

// FollowUpInput describes a follow-up probing one answer.
type FollowUpInput struct {
	Question   string
	Answer     string
	Role       string
	Difficulty difficulty.Level
}

// Generator asks the LLM for question text.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

// New creates a Generator.
func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

// MainQuestion generates a new top-level question.
func (g *Generator) MainQuestion(ctx context.Context, in MainInput) (string, error) {
	userMsg, err := render(mainTemplate, struct {
		MainInput
		Effective difficulty.Level
	}{in, in.Effective()})
	if err != nil {
		return "", fmt.Errorf("build question prompt: %w", err)
	}
	return g.generate(llm.WithPurpose(ctx, llm.PurposeQuestion), mainSystemPrompt, userMsg)
}

// FollowUp generates one question probing the given answer.
func (g *Generator) FollowUp(ctx context.Context, in FollowUpInput) (string, error) {
	userMsg, err := render(followUpTemplate, in)
	if err != nil {
		return "", fmt.Errorf("build follow-up prompt: %w", err)
	}
	return g.generate(llm.WithPurpose(ctx, llm.PurposeFollowUp), followUpSystemPrompt, userMsg)
}

func (g *Generator) generate(ctx context.Context, system, userMsg string) (string, error) {
	resp, err := g.provider.Generate(ctx, llm.Request{
		System: system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("LLM question generation failed: %w", err)
	}

	q := Clean(llm.Text(resp))
	if q == "" {
		return "", ErrEmptyQuestion
	}
	return q, nil
}

var prefixPattern = regexp.MustCompile(`^(?i)(?:\*\*)?(?:(?:follow-up\s+)?question\s*\d*|q\d+)\s*[:.)-]\s*(?:\*\*)?\s*`)
var numberPattern = regexp.MustCompile(`^\d+\s*[.)]\s+`)

// Clean strips numbering and "Question:" style prefixes models add
// despite being told not to.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	s = prefixPattern.ReplaceAllString(s, "")
	s = numberPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
