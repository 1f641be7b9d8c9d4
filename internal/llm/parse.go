package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DecodeJSON decodes a model payload into T. Markdown code fences around the
// JSON are tolerated. Failures are always *ErrInvalidResponse so callers can
// substitute their own fallback value.
func DecodeJSON[T any](raw json.RawMessage) (T, error) {
	var out T

	cleaned := StripCodeFences(string(raw))
	if cleaned == "" {
		return out, &ErrInvalidResponse{Content: raw, Err: errors.New("empty response")}
	}
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return out, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("decode: %w", err)}
	}
	return out, nil
}

// Text returns the plain-text body of a response without code fences,
// surrounding whitespace or wrapping quotes.
func Text(resp *Response) string {
	if resp == nil {
		return ""
	}
	s := StripCodeFences(string(resp.Content))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// StripCodeFences removes ```json and ``` markers and trims whitespace.
func StripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
