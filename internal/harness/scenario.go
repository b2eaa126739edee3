package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/rps/internal/player"
	"github.com/roach88/rps/internal/rps"
)

// DefaultSessionID is used when a scenario does not name its session.
const DefaultSessionID = "test-session"

// Scenario defines a scripted game session.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// SessionID is an optional fixed session ID.
	// If empty, defaults to DefaultSessionID.
	SessionID string `yaml:"session_id,omitempty"`

	// AIHands lists the opponent's hands in play order, by canonical name.
	// It must cover every hand input in Steps.
	AIHands []string `yaml:"ai_hands"`

	// Steps are the lines the player types, in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final trace and history.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one line of player input.
type Step struct {
	// Input is the raw line, without the trailing newline.
	Input string `yaml:"input"`

	// Expect specifies what the game should report.
	// If nil, no validation is performed.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected event for a step.
// Empty fields are not checked.
type ExpectClause struct {
	Event    string `yaml:"event"`
	Player   string `yaml:"player,omitempty"`
	Opponent string `yaml:"opponent,omitempty"`
	Outcome  string `yaml:"outcome,omitempty"`
}

// Assertion validates the trace or the final game.
type Assertion struct {
	// Type specifies the assertion type:
	// - "history_len": history has exactly Count turns
	// - "outcome_count": history has exactly Count turns with Outcome
	// - "event_order": Events appear in the trace in this relative order
	// - "final_state": the loop ended in State
	Type string `yaml:"type"`

	// Count is the expected number (history_len, outcome_count).
	Count int `yaml:"count,omitempty"`

	// Outcome is the outcome to count (outcome_count).
	Outcome string `yaml:"outcome,omitempty"`

	// Events is the expected event order (event_order).
	Events []string `yaml:"events,omitempty"`

	// State is "running" or "stopped" (final_state).
	State string `yaml:"state,omitempty"`
}

// Assertion type constants.
const (
	AssertHistoryLen   = "history_len"
	AssertOutcomeCount = "outcome_count"
	AssertEventOrder   = "event_order"
	AssertFinalState   = "final_state"
)

var validEvents = map[string]bool{
	EventResult:       true,
	EventStats:        true,
	EventReset:        true,
	EventUnrecognized: true,
	EventQuit:         true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Parse YAML with strict field validation (catches typos like "step:" vs "steps:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	if scenario.SessionID == "" {
		scenario.SessionID = DefaultSessionID
	}
	return &scenario, nil
}

// LoadScenarios loads every *.yaml file in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// Hands returns the scripted opponent hands.
func (s *Scenario) Hands() ([]rps.Hand, error) {
	hands := make([]rps.Hand, 0, len(s.AIHands))
	for i, name := range s.AIHands {
		h, err := rps.ParseHand(name)
		if err != nil {
			return nil, fmt.Errorf("ai_hands[%d]: %w", i, err)
		}
		hands = append(hands, h)
	}
	return hands, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if _, err := s.Hands(); err != nil {
		return err
	}

	// Every played turn draws one scripted hand.
	turns := 0
	for i, step := range s.Steps {
		choice := player.ParseChoice(step.Input)
		if choice.IsHand() {
			turns++
		}
		if step.Expect != nil && !validEvents[step.Expect.Event] {
			return fmt.Errorf("steps[%d].expect: unknown event %q", i, step.Expect.Event)
		}
		if choice.Command == player.CommandQuit {
			break
		}
	}
	if turns > len(s.AIHands) {
		return fmt.Errorf("ai_hands has %d entries but steps play %d turns", len(s.AIHands), turns)
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertHistoryLen:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case AssertOutcomeCount:
		var o rps.Outcome
		if err := o.UnmarshalText([]byte(a.Outcome)); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
	case AssertEventOrder:
		if len(a.Events) == 0 {
			return fmt.Errorf("assertions[%d]: events list is required for event_order", index)
		}
		for _, e := range a.Events {
			if !validEvents[e] {
				return fmt.Errorf("assertions[%d]: unknown event %q", index, e)
			}
		}
	case AssertFinalState:
		if a.State != "running" && a.State != "stopped" {
			return fmt.Errorf("assertions[%d]: state must be running or stopped", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
