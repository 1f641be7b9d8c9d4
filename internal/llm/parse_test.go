package llm

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scored struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    scored
		wantErr bool
	}{
		{"plain", `{"score":7,"feedback":"ok"}`, scored{7, "ok"}, false},
		{"fenced", "```json\n{\"score\":3,\"feedback\":\"thin\"}\n```", scored{3, "thin"}, false},
		{"bare fence", "```\n{\"score\":9,\"feedback\":\"great\"}\n```", scored{9, "great"}, false},
		{"prose", "The candidate did well.", scored{}, true},
		{"empty", "   ", scored{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeJSON[scored](json.RawMessage(tt.raw))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsInvalidResponse(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestText(t *testing.T) {
	assert.Equal(t, "", Text(nil))
	assert.Equal(t, "How does a B-tree index work?",
		Text(&Response{Content: json.RawMessage("  \"How does a B-tree index work?\"\n")}))
	assert.Equal(t, "Explain CAP.",
		Text(&Response{Content: json.RawMessage("```\nExplain CAP.\n```")}))
}

func TestRateLimitInfo(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantLimited bool
		wantDelay   time.Duration
	}{
		{"nil", nil, false, 0},
		{"typed", &ErrRateLimit{RetryAfter: 5 * time.Second}, true, 5 * time.Second},
		{"status text", errors.New("request failed: 429"), true, 0},
		{"marker with delay", errors.New(`RESOURCE_EXHAUSTED {"retryDelay": "31s"}`), true, 31 * time.Second},
		{"fractional delay", errors.New(`RESOURCE_EXHAUSTED retryDelay: 1.5s`), true, 1500 * time.Millisecond},
		{"typed keeps larger hint", &ErrRateLimit{RetryAfter: time.Second, Err: errors.New(`retryDelay: "2.25s"`)}, true, 2250 * time.Millisecond},
		{"other", errors.New("connection refused"), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delay, limited := RateLimitInfo(tt.err)
			assert.Equal(t, tt.wantLimited, limited)
			assert.Equal(t, tt.wantDelay, delay)
		})
	}
}
