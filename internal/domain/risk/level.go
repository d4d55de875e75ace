// Package risk implements scored behavioral-health risk assessment: per-type
// assessors for suicide, self-harm and violence, indicator evaluators for
// substance use and psychosis, and aggregation into a comprehensive profile.
package risk

import (
	"encoding/json"
	"fmt"
)

// Level is an ordered severity scale. Comparisons (max, threshold checks)
// rely on the integer ordering, never on the string form.
type Level int

const (
	LevelMinimal Level = iota
	LevelLow
	LevelModerate
	LevelHigh
	LevelImminent
)

var levelNames = map[Level]string{
	LevelMinimal:  "minimal",
	LevelLow:      "low",
	LevelModerate: "moderate",
	LevelHigh:     "high",
	LevelImminent: "imminent",
}

var levelValues = map[string]Level{
	"minimal":  LevelMinimal,
	"low":      LevelLow,
	"moderate": LevelModerate,
	"high":     LevelHigh,
	"imminent": LevelImminent,
}

func (l Level) String() string {
	if s, ok := levelNames[l]; ok {
		return s
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel converts the stored string form back to a Level.
func ParseLevel(s string) (Level, error) {
	l, ok := levelValues[s]
	if !ok {
		return LevelMinimal, fmt.Errorf("unknown risk level: %q", s)
	}
	return l, nil
}

func (l Level) MarshalJSON() ([]byte, error) {
	s, ok := levelNames[l]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid risk level %d", int(l))
	}
	return json.Marshal(s)
}

func (l *Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// MaxLevel returns the highest level in levels, or LevelMinimal when the
// slice is empty.
func MaxLevel(levels ...Level) Level {
	max := LevelMinimal
	for _, l := range levels {
		if l > max {
			max = l
		}
	}
	return max
}

// Type is an independent axis of clinical risk.
type Type string

const (
	TypeSuicide   Type = "suicide"
	TypeSelfHarm  Type = "self_harm"
	TypeViolence  Type = "violence"
	TypeSubstance Type = "substance_use"
	TypePsychosis Type = "psychosis"
)

var knownTypes = map[Type]bool{
	TypeSuicide:   true,
	TypeSelfHarm:  true,
	TypeViolence:  true,
	TypeSubstance: true,
	TypePsychosis: true,
}

// ParseType validates a risk-type string.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !knownTypes[t] {
		return "", fmt.Errorf("%w: %q", ErrUnknownRiskType, s)
	}
	return t, nil
}
