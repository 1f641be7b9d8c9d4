package difficulty

import "testing"

func TestStepUp(t *testing.T) {
	tests := []struct {
		in, want Level
	}{
		{Junior, Mid},
		{Mid, Senior},
		{Senior, Lead},
		{Lead, Lead},
		{Level("Principal"), Level("Principal")},
	}
	for _, tt := range tests {
		if got := StepUp(tt.in); got != tt.want {
			t.Errorf("StepUp(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestStepDown(t *testing.T) {
	tests := []struct {
		in, want Level
	}{
		{Lead, Senior},
		{Senior, Mid},
		{Mid, Junior},
		{Junior, Junior},
		{Level(""), Level("")},
	}
	for _, tt := range tests {
		if got := StepDown(tt.in); got != tt.want {
			t.Errorf("StepDown(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestBoundariesAreIdempotent(t *testing.T) {
	if StepUp(StepUp(Lead)) != Lead {
		t.Error("StepUp should stay at Lead")
	}
	if StepDown(StepDown(Junior)) != Junior {
		t.Error("StepDown should stay at Junior")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"Mid", Mid, false},
		{"senior", Senior, false},
		{"  LEAD ", Lead, false},
		{"Principal", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestValid(t *testing.T) {
	for _, l := range Ladder {
		if !l.Valid() {
			t.Errorf("%s should be valid", l)
		}
	}
	if Level("Intern").Valid() {
		t.Error("Intern should not be valid")
	}
}
