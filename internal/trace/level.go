package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff   Level = iota
	LevelError       // dumps only
	LevelCycle       // run + cycle phases
	LevelRule        // per-rule spans
	LevelDebug       // per-element events
)

var levelNames = [...]string{"off", "error", "cycle", "rule", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a flag value to a Level.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of the scope pass this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelCycle:
		return scope <= ScopeCycle
	case LevelRule:
		return scope <= ScopeRule
	case LevelDebug:
		return true
	}
	return false
}
