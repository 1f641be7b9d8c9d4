package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ErrRateLimit indicates the provider throttled the request (HTTP 429 or a
// RESOURCE_EXHAUSTED status). RetryAfter carries the provider's suggested
// delay when one was sent.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the LLM returned content that does not
// conform to the requested schema or could not be decoded.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// ServiceUnavailableMessage is shown to users when throttling outlasts the
// retry budget.
const ServiceUnavailableMessage = "AI service is temporarily rate-limited. Please wait a minute and try again."

// ErrServiceUnavailable is returned by the retry gateway once every retry
// of a rate-limited request has been spent. Error() is user-facing; the
// last provider error is kept for logs via Unwrap.
type ErrServiceUnavailable struct {
	Attempts int
	Err      error
}

func (e *ErrServiceUnavailable) Error() string { return ServiceUnavailableMessage }

func (e *ErrServiceUnavailable) Unwrap() error { return e.Err }

// IsInvalidResponse reports whether err means the provider answered but the
// payload could not be used.
func IsInvalidResponse(err error) bool {
	var inv *ErrInvalidResponse
	return errors.As(err, &inv)
}

var retryDelayPattern = regexp.MustCompile(`retryDelay\D*?(\d+(?:\.\d+)?s)`)

// RateLimitInfo reports whether err is a rate-limit signal and the delay
// the service suggested, if any. Besides *ErrRateLimit it recognizes raw
// errors whose text carries a 429 status or a RESOURCE_EXHAUSTED marker.
func RateLimitInfo(err error) (time.Duration, bool) {
	if err == nil {
		return 0, false
	}

	msg := err.Error()
	suggested := parseRetryDelay(msg)

	var rl *ErrRateLimit
	if errors.As(err, &rl) {
		if rl.RetryAfter > suggested {
			suggested = rl.RetryAfter
		}
		return suggested, true
	}

	if strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED") {
		return suggested, true
	}
	return 0, false
}

// parseRetryDelay extracts "retryDelay ... <n>s" hints, fractions included,
// from error text.
func parseRetryDelay(msg string) time.Duration {
	m := retryDelayPattern.FindStringSubmatch(msg)
	if m == nil {
		return 0
	}
	d, err := time.ParseDuration(m[1])
	if err != nil {
		return 0
	}
	return d
}
