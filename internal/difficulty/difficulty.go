// Package difficulty defines the ordered seniority ladder interviews are
// pitched at and the one-step shifts used for adaptive questioning.
package difficulty

import (
	"fmt"
	"strings"
)

// Level is a rung on the difficulty ladder.
type Level string

const (
	Junior Level = "Junior"
	Mid    Level = "Mid"
	Senior Level = "Senior"
	Lead   Level = "Lead"
)

// Ladder lists every level from easiest to hardest.
var Ladder = []Level{Junior, Mid, Senior, Lead}

// Parse resolves a level name case-insensitively.
func Parse(s string) (Level, error) {
	name := strings.TrimSpace(s)
	for _, l := range Ladder {
		if strings.EqualFold(name, string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want one of %s)", s, strings.Join(Names(), ", "))
}

// Names returns the ladder as strings, easiest first.
func Names() []string {
	out := make([]string, len(Ladder))
	for i, l := range Ladder {
		out[i] = string(l)
	}
	return out
}

// Valid reports whether l is on the ladder.
func (l Level) Valid() bool {
	return l.index() >= 0
}

func (l Level) String() string { return string(l) }

func (l Level) index() int {
	for i, v := range Ladder {
		if v == l {
			return i
		}
	}
	return -1
}

// StepUp returns the next harder level. Lead, and any level not on the
// ladder, are returned unchanged.
func StepUp(l Level) Level {
	i := l.index()
	if i < 0 || i == len(Ladder)-1 {
		return l
	}
	return Ladder[i+1]
}

// StepDown returns the next easier level. Junior, and any level not on
// the ladder, are returned unchanged.
func StepDown(l Level) Level {
	i := l.index()
	if i <= 0 {
		return l
	}
	return Ladder[i-1]
}
