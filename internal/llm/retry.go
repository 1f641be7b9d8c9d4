package llm

import (
	"context"
	"log/slog"
	"time"
)

// RetryProvider is a decorator that retries rate-limited requests with a
// linear backoff. Every other error is returned on the first attempt.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	logger *slog.Logger
}

// WithRetry wraps a Provider with rate-limit retry logic. A nil logger
// discards retry notices.
func WithRetry(p Provider, cfg RetryConfig, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RetryProvider{inner: p, config: cfg, logger: logger}
}

// Generate calls the wrapped provider. When throttled it sleeps and tries
// again up to MaxRetries times, then fails with *ErrServiceUnavailable.
func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	for attempt := 0; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		suggested, limited := RateLimitInfo(err)
		if !limited {
			return nil, err
		}
		if attempt >= r.config.MaxRetries {
			return nil, &ErrServiceUnavailable{Attempts: attempt + 1, Err: err}
		}

		wait := r.backoff(attempt, suggested)
		r.logger.Warn("rate limited, retrying",
			"purpose", PurposeFrom(ctx),
			"wait", wait,
			"attempt", attempt+1,
			"max_retries", r.config.MaxRetries,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// backoff returns max(suggested, (attempt+1) * BaseDelay).
func (r *RetryProvider) backoff(attempt int, suggested time.Duration) time.Duration {
	wait := time.Duration(attempt+1) * r.config.BaseDelay
	if suggested > wait {
		return suggested
	}
	return wait
}
