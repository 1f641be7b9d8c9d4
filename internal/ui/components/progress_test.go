package components

import (
	"strings"
	"testing"
)

func TestProgressBar_Filled(t *testing.T) {
	tests := []struct {
		percent float64
		width   int
		want    int
	}{
		{0, 10, 0},
		{0.5, 10, 5},
		{0.99, 10, 9},
		{1, 10, 10},
		{1.5, 10, 10},
		{-0.2, 10, 0},
	}
	for _, tt := range tests {
		p := NewProgressBar("", tt.percent, false, tt.width)
		if got := p.Filled(tt.width); got != tt.want {
			t.Errorf("Filled(%v, %d) = %d, want %d", tt.percent, tt.width, got, tt.want)
		}
	}
}

func TestScoreBar(t *testing.T) {
	out := ScoreBar("Q1", 7, 24)
	if !strings.Contains(out, "Q1") {
		t.Errorf("missing label in %q", out)
	}
	if !strings.Contains(out, "7.0/10") {
		t.Errorf("missing score in %q", out)
	}
	if got := strings.Count(out, "█") + strings.Count(out, "░"); got != 24-len("Q1  ") {
		t.Errorf("bar cells = %d, want %d", got, 24-len("Q1  "))
	}
}

func TestProgressBar_View(t *testing.T) {
	out := NewProgressBar("Progress", 0.25, true, 40).View()
	if !strings.Contains(out, "25%") {
		t.Errorf("missing percent in %q", out)
	}
}
