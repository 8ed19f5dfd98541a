package models

import "fmt"

// Pattern is the ray pattern drawn between the wells
type Pattern string

const (
	PatternFan      Pattern = "fan"
	PatternSingle   Pattern = "single"
	PatternCrossing Pattern = "crossing"
)

// ParsePattern maps a selector value onto a Pattern
func ParsePattern(s string) (Pattern, error) {
	switch p := Pattern(s); p {
	case PatternFan, PatternSingle, PatternCrossing:
		return p, nil
	}
	return "", fmt.Errorf("unknown ray pattern %q", s)
}

// SelectionValueAll is the selector value of the aggregate "all sources" view
const SelectionValueAll = "all"

// SelectionState is the current source choice and ray pattern.
// When All is set, Index keeps the last single selection.
type SelectionState struct {
	Index   int     `json:"index"`
	All     bool    `json:"all"`
	Pattern Pattern `json:"pattern"`
}

// DefaultSelection returns the initial state: first source, fan pattern
func DefaultSelection() SelectionState {
	return SelectionState{Index: 0, Pattern: PatternFan}
}

// EffectivePattern is the pattern actually drawn. ALL always draws Crossing.
func (s SelectionState) EffectivePattern() Pattern {
	if s.All {
		return PatternCrossing
	}
	return s.Pattern
}

// SelectorValue is the value the source selector widget should display
func (s SelectionState) SelectorValue() string {
	if s.All {
		return SelectionValueAll
	}
	return fmt.Sprintf("%d", s.Index)
}
