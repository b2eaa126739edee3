package harness

import (
	"fmt"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It includes the trace to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		if event.Event == EventResult {
			fmt.Fprintf(&buf, "  [%d] %q %s %s vs %s: %s\n",
				event.Seq, event.Input, event.Event, event.Player, event.Opponent, event.Outcome)
			continue
		}
		fmt.Fprintf(&buf, "  [%d] %q %s\n", event.Seq, event.Input, event.Event)
	}

	return buf.String()
}

// assertHistoryLen checks the number of turns left in the history.
func assertHistoryLen(result *Result, assertion Assertion) error {
	if len(result.History) == assertion.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertHistoryLen,
		Expected: fmt.Sprintf("%d turns in history", assertion.Count),
		Actual:   fmt.Sprintf("%d turns in history", len(result.History)),
		Trace:    result.Trace,
	}
}

// assertOutcomeCount checks how many history turns ended with an outcome.
func assertOutcomeCount(result *Result, assertion Assertion) error {
	count := 0
	for _, turn := range result.History {
		if turn.Outcome.String() == assertion.Outcome {
			count++
		}
	}
	if count == assertion.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertOutcomeCount,
		Expected: fmt.Sprintf("%s x%d", assertion.Outcome, assertion.Count),
		Actual:   fmt.Sprintf("%s x%d", assertion.Outcome, count),
		Trace:    result.Trace,
	}
}

// assertEventOrder checks that events appear in the trace in the given
// relative order. Other events may appear in between.
func assertEventOrder(result *Result, assertion Assertion) error {
	next := 0
	for _, event := range result.Trace {
		if next < len(assertion.Events) && event.Event == assertion.Events[next] {
			next++
		}
	}
	if next == len(assertion.Events) {
		return nil
	}

	actual := make([]string, len(result.Trace))
	for i, event := range result.Trace {
		actual[i] = event.Event
	}
	return &AssertionError{
		Type:     AssertEventOrder,
		Expected: strings.Join(assertion.Events, " -> "),
		Actual:   strings.Join(actual, " -> "),
		Trace:    result.Trace,
	}
}

// assertFinalState checks the loop state after the last step.
func assertFinalState(result *Result, assertion Assertion) error {
	if result.State == assertion.State {
		return nil
	}
	return &AssertionError{
		Type:     AssertFinalState,
		Expected: assertion.State,
		Actual:   result.State,
		Trace:    result.Trace,
	}
}

// EvaluateAssertions runs every assertion and returns the failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertHistoryLen:
			err = assertHistoryLen(result, a)
		case AssertOutcomeCount:
			err = assertOutcomeCount(result, a)
		case AssertEventOrder:
			err = assertEventOrder(result, a)
		case AssertFinalState:
			err = assertFinalState(result, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			failures = append(failures, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return failures
}
