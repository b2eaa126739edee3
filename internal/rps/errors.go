package rps

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// RuleError reports a rule table that cannot be compiled or that breaks
// the rock-paper-scissors relation.
type RuleError struct {
	Field   string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *RuleError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConsistencyError is returned by Winner when neither object's relation
// covers the other. A table accepted by LoadRules never produces one.
type ConsistencyError struct {
	Self  Hand
	Other Hand
	Beats []Hand
	Loses []Hand
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("inconsistent rules: %s vs %s (beats=%v, loses=%v)",
		e.Self, e.Other, e.Beats, e.Loses)
}

// formatCUEError keeps the first CUE error and its position.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &RuleError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return &RuleError{Field: "cue", Message: first.Error()}
}
