package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/intervue/internal/difficulty"
	"github.com/abhisek/intervue/internal/llm"
)

// Config holds configuration for report synthesis.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.4,
	}
}

// Input is the full answered log of one session.
type Input struct {
	Role          string
	Difficulty    difficulty.Level
	InterviewType string
	Entries       []Entry
}

// Synthesizer turns a session log into a Report.
type Synthesizer struct {
	provider llm.Provider
	cfg      Config
	logger   *slog.Logger
}

// NewSynthesizer creates a Synthesizer. A nil logger discards notices.
func NewSynthesizer(provider llm.Provider, cfg Config, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Synthesizer{provider: provider, cfg: cfg, logger: logger}
}

// Synthesize always produces a report. Unusable model output and provider
// failures both yield Fallback(MeanScore(in.Entries)); only a cancelled
// context is returned as an error.
func (s *Synthesizer) Synthesize(ctx context.Context, in Input) (*Report, error) {
	mean := MeanScore(in.Entries)

	rep, err := s.generate(ctx, in, mean)
	if err == nil {
		return rep, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	s.logger.Warn("report generation failed, using fallback report", "error", err)
	fb := Fallback(mean)
	return &fb, nil
}

func (s *Synthesizer) generate(ctx context.Context, in Input, mean float64) (*Report, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeReport)

	userMsg, err := buildUserMessage(in, mean)
	if err != nil {
		return nil, fmt.Errorf("build report prompt: %w", err)
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      ReportSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM report generation failed: %w", err)
	}

	rep, err := Parse(resp.Content)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}
