package harness

import "github.com/roach88/rps/internal/game"

// Event names recorded in the trace, one per handled input line.
const (
	EventResult       = "result"
	EventStats        = "stats"
	EventReset        = "reset"
	EventUnrecognized = "unrecognized"
	EventQuit         = "quit"
)

// TraceEvent is what the game reported for one input line.
type TraceEvent struct {
	Seq        int    `json:"seq"` // 1-based step index
	Input      string `json:"input"`
	Event      string `json:"event"`
	Player     string `json:"player,omitempty"`
	Opponent   string `json:"opponent,omitempty"`
	Outcome    string `json:"outcome,omitempty"`
	HistoryLen int    `json:"history_len"` // history length after the step
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace has one event per executed step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// SessionID is the session the scenario ran under.
	SessionID string `json:"session_id"`

	// History is the game's history when the scenario ended.
	History []game.Turn `json:"history"`

	// State is the final loop state ("running" or "stopped").
	State string `json:"state"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
