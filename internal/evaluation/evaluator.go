// Package evaluation scores free-text interview answers through the LLM.
package evaluation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/abhisek/intervue/internal/difficulty"
	"github.com/abhisek/intervue/internal/llm"
)

// Neutral result used whenever the model's judgment cannot be read.
const (
	FallbackScore    = 5.0
	FallbackFeedback = "Answer received and noted."
)

// Config holds configuration for the evaluator.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   256,
		Temperature: 0.3,
	}
}

// Input is one question/answer pair to judge.
type Input struct {
	Question   string
	Answer     string
	Role       string
	Difficulty difficulty.Level
}

// Result is a score in [0, 10] with short feedback.
type Result struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`

	// Fallback is set when the neutral default replaced an unusable
	// model response.
	Fallback bool `json:"-"`
}

// Fallback returns the neutral default result.
func Fallback() Result {
	return Result{Score: FallbackScore, Feedback: FallbackFeedback, Fallback: true}
}

type payload struct {
	Score    *float64 `json:"score"`
	Feedback string   `json:"feedback"`
}

// Parse decodes a model payload into a Result. Scores outside [0, 10] are
// clamped; a missing score or non-JSON text is an error.
func Parse(raw json.RawMessage) (Result, error) {
	out, err := llm.DecodeJSON[payload](raw)
	if err != nil {
		return Result{}, err
	}
	if out.Score == nil || math.IsNaN(*out.Score) {
		return Result{}, &llm.ErrInvalidResponse{Content: raw, Err: fmt.Errorf("missing score")}
	}

	res := Result{
		Score:    math.Min(10, math.Max(0, *out.Score)),
		Feedback: strings.TrimSpace(out.Feedback),
	}
	if res.Feedback == "" {
		res.Feedback = FallbackFeedback
	}
	return res, nil
}

// Evaluator judges answers with the LLM.
type Evaluator struct {
	provider llm.Provider
	cfg      Config
	logger   *slog.Logger
}

// New creates an evaluator. A nil logger discards fallback notices.
func New(provider llm.Provider, cfg Config, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Evaluator{provider: provider, cfg: cfg, logger: logger}
}

// Evaluate scores an answer. A malformed model response never fails the
// call: it degrades to Fallback(). Provider errors are returned.
func (e *Evaluator) Evaluate(ctx context.Context, in Input) (*Result, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeEvaluate)

	userMsg, err := buildUserMessage(in)
	if err != nil {
		return nil, fmt.Errorf("build evaluation prompt: %w", err)
	}

	resp, err := e.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      EvaluationSchema,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	})
	if err != nil {
		var truncated *llm.ErrMaxTokensExceeded
		if llm.IsInvalidResponse(err) || errors.As(err, &truncated) {
			return e.fallback(err), nil
		}
		return nil, fmt.Errorf("LLM evaluation failed: %w", err)
	}

	res, err := Parse(resp.Content)
	if err != nil {
		return e.fallback(err), nil
	}
	return &res, nil
}

func (e *Evaluator) fallback(cause error) *Result {
	e.logger.Warn("unusable evaluation response, using neutral score", "error", cause)
	res := Fallback()
	return &res
}
