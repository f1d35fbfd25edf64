package config

import (
	"fmt"
	"math"
	"strings"
)

// #region validation-error

// Violation is one failed constraint, identified by the field it concerns.
type Violation struct {
	Field  string
	Reason string
}

// ValidationError carries every violated constraint of a snapshot.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s: %s", v.Field, v.Reason)
	}
	return fmt.Sprintf("invalid configuration: %s", strings.Join(parts, "; "))
}

// #endregion validation-error

// #region validate

// Validate checks every constraint and collects all violations before
// returning, so the caller sees the full list rather than the first failure.
func Validate(s Snapshot) error {
	var violations []Violation

	if len(s.Outcomes) == 0 {
		violations = append(violations, Violation{
			Field:  "outcomes",
			Reason: "at least one outcome is required",
		})
	}

	seen := make(map[string]int)
	var total float64
	for i, o := range s.Outcomes {
		field := fmt.Sprintf("outcomes[%d]", i)

		text := strings.TrimSpace(o.Text)
		if text == "" {
			violations = append(violations, Violation{
				Field:  field + ".text",
				Reason: "text must not be empty",
			})
		} else if prev, dup := seen[text]; dup {
			violations = append(violations, Violation{
				Field:  field + ".text",
				Reason: fmt.Sprintf("duplicate of outcomes[%d] (%q)", prev, text),
			})
		} else {
			seen[text] = i
		}

		if o.Weight <= 0 || math.IsInf(o.Weight, 0) || math.IsNaN(o.Weight) {
			violations = append(violations, Violation{
				Field:  field + ".weight",
				Reason: fmt.Sprintf("weight must be positive and finite, got %v", o.Weight),
			})
		} else {
			total += o.Weight
		}
	}

	if len(s.Outcomes) > 0 && total <= 0 {
		violations = append(violations, Violation{
			Field:  "outcomes",
			Reason: "total weight must be positive",
		})
	}

	if s.Behavior.ThinkingSeconds <= 0 {
		violations = append(violations, Violation{
			Field:  "behavior.thinking_seconds",
			Reason: fmt.Sprintf("must be positive, got %v", s.Behavior.ThinkingSeconds),
		})
	}
	if s.Behavior.RevealSeconds <= 0 {
		violations = append(violations, Violation{
			Field:  "behavior.reveal_seconds",
			Reason: fmt.Sprintf("must be positive, got %v", s.Behavior.RevealSeconds),
		})
	}

	switch s.Trigger.Source {
	case "gpio", "keyboard":
	default:
		violations = append(violations, Violation{
			Field:  "trigger.source",
			Reason: fmt.Sprintf("must be %q or %q, got %q", "gpio", "keyboard", s.Trigger.Source),
		})
	}
	if s.Trigger.DebounceMillis < 0 {
		violations = append(violations, Violation{
			Field:  "trigger.debounce_ms",
			Reason: fmt.Sprintf("must not be negative, got %d", s.Trigger.DebounceMillis),
		})
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// #endregion validate
