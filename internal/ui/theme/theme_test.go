package theme

import (
	"image/color"
	"testing"
)

func TestScoreColor(t *testing.T) {
	tests := []struct {
		score float64
		want  color.Color
	}{
		{10, Success},
		{8, Success},
		{7.9, Accent},
		{5, Accent},
		{4.1, Accent},
		{4, Error},
		{0, Error},
	}
	for _, tt := range tests {
		if got := ScoreColor(tt.score); got != tt.want {
			t.Errorf("ScoreColor(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}
