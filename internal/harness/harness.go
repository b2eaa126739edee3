package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/rps/internal/game"
	"github.com/roach88/rps/internal/player"
	"github.com/roach88/rps/internal/rps"
)

// recorder captures the event reported while handling one step.
type recorder struct {
	event string
	turn  *game.Turn
}

func (r *recorder) Welcome(*rps.Rules) {}
func (r *recorder) Prompt() {}

func (r *recorder) Result(t game.Turn) {
	r.event = EventResult
	r.turn = &t
}

func (r *recorder) Stats([]game.Turn, game.Tally) { r.event = EventStats }
func (r *recorder) Reset() { r.event = EventReset }
func (r *recorder) Unrecognized(string) { r.event = EventUnrecognized }
func (r *recorder) Quit() { r.event = EventQuit }

func (r *recorder) take() (string, *game.Turn) {
	event, turn := r.event, r.turn
	r.event, r.turn = "", nil
	return event, turn
}

// Run plays a scenario against a fresh game and returns the result.
//
// Execution flow:
//  1. Load the default rule table
//  2. Script the opponent with the scenario's ai_hands
//  3. Feed each step's input to the game, recording one trace event per step
//  4. Check step expectations and final assertions
//
// A returned error means the scenario could not be executed at all; failed
// expectations are reported in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	rules, err := rps.DefaultRules()
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}

	hands, err := scenario.Hands()
	if err != nil {
		return nil, err
	}

	sessionID := scenario.SessionID
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	rec := &recorder{}
	g, err := game.New(game.Options{
		Rules:      rules,
		Opponent:   player.NewAIPlayer(rules.Hands(), player.NewFixedChooser(hands...)),
		Reporter:   rec,
		SessionIDs: game.NewFixedGenerator(sessionID),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		return nil, err
	}

	result := NewResult()
	result.SessionID = g.SessionID()

	for i, step := range scenario.Steps {
		if err := g.Handle(step.Input); err != nil {
			if errors.Is(err, game.ErrStopped) {
				result.AddError(fmt.Sprintf("steps[%d]: input %q after the game stopped", i, step.Input))
				break
			}
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}

		event, turn := rec.take()
		te := TraceEvent{
			Seq:        i + 1,
			Input:      step.Input,
			Event:      event,
			HistoryLen: len(g.History()),
		}
		if turn != nil {
			te.Player = turn.Player.String()
			te.Opponent = turn.Opponent.String()
			te.Outcome = turn.Outcome.String()
		}
		result.Trace = append(result.Trace, te)

		if step.Expect != nil {
			if msg := checkExpect(i, te, step.Expect); msg != "" {
				result.AddError(msg)
			}
		}
	}

	result.History = g.History()
	result.State = g.State().String()

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

// checkExpect compares a trace event with a step's expect clause.
// Returns an empty string when everything matches.
func checkExpect(index int, te TraceEvent, expect *ExpectClause) string {
	mismatch := func(field, want, got string) string {
		return fmt.Sprintf("steps[%d]: expected %s %q, got %q", index, field, want, got)
	}

	if expect.Event != te.Event {
		return mismatch("event", expect.Event, te.Event)
	}
	if expect.Player != "" && expect.Player != te.Player {
		return mismatch("player", expect.Player, te.Player)
	}
	if expect.Opponent != "" && expect.Opponent != te.Opponent {
		return mismatch("opponent", expect.Opponent, te.Opponent)
	}
	if expect.Outcome != "" && expect.Outcome != te.Outcome {
		return mismatch("outcome", expect.Outcome, te.Outcome)
	}
	return ""
}
