package convert

import (
	"fmt"
	"strings"
)

// Direction selects the conversion dictionary.
type Direction string

const (
	// S2T converts Simplified Chinese to Traditional Chinese.
	S2T Direction = "s2t"
	// T2S converts Traditional Chinese to Simplified Chinese.
	T2S Direction = "t2s"
)

// ParseDirection normalizes a direction name.
func ParseDirection(value string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(value))) {
	case S2T:
		return S2T, nil
	case T2S:
		return T2S, nil
	default:
		return "", fmt.Errorf("unknown direction %q (want s2t or t2s)", value)
	}
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == T2S {
		return S2T
	}
	return T2S
}

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == S2T || d == T2S
}

// Label returns a human-readable description.
func (d Direction) Label() string {
	switch d {
	case S2T:
		return "Simplified → Traditional"
	case T2S:
		return "Traditional → Simplified"
	default:
		return string(d)
	}
}
