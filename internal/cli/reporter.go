package cli

import (
	"github.com/roach88/rps/internal/game"
	"github.com/roach88/rps/internal/player"
	"github.com/roach88/rps/internal/rps"
)

const promptText = "Select a Rock[1], Paper[2], Scissors[3], Quit[Q], Reset[R], Stats[S]:"

// gameEvent is the JSON payload for one reported game event.
type gameEvent struct {
	Event   string      `json:"event"`
	Turn    *game.Turn  `json:"turn,omitempty"`
	History []game.Turn `json:"history,omitempty"`
	Tally   *game.Tally `json:"tally,omitempty"`
	Input   string      `json:"input,omitempty"`
}

// formatterReporter renders game events through an OutputFormatter.
// In JSON mode the banner and prompt are suppressed and every other
// event becomes one response object.
type formatterReporter struct {
	f *OutputFormatter
}

func (r *formatterReporter) Welcome(rules *rps.Rules) {
	r.f.Textf("Welcome to the rock paper scissors game.")
	r.f.Textf("The rules:")
	for _, line := range ruleLines(rules) {
		r.f.Textf("    %s", line)
	}
	r.f.Textf("You are playing against a computer.")
	r.f.Textf("To select an object, please choose: %s", menuLine(rules))
	r.f.Textf("To restart history [R], to exit [C] or [Q] and [S] for stats")
}

func (r *formatterReporter) Prompt() {
	r.f.Textf("%s", promptText)
}

func (r *formatterReporter) Result(turn game.Turn) {
	if r.f.IsJSON() {
		_ = r.f.Success(gameEvent{Event: "result", Turn: &turn})
		return
	}
	r.f.Textf("You chose: %s, AI chose: %s", turn.Player.Title(), turn.Opponent.Title())
	r.f.Textf("Result: You %s", turn.Outcome.Title())
}

func (r *formatterReporter) Stats(turns []game.Turn, tally game.Tally) {
	if r.f.IsJSON() {
		_ = r.f.Success(gameEvent{Event: "stats", History: turns, Tally: &tally})
		return
	}
	if len(turns) == 0 {
		r.f.Textf("No turns played yet.")
		return
	}
	r.f.Textf("History (%d turns):", len(turns))
	for _, t := range turns {
		r.f.Textf("  #%d %s vs %s: %s", t.Seq, t.Player.Title(), t.Opponent.Title(), t.Outcome.Title())
	}
	r.f.Textf("Wins: %d, Draws: %d, Losses: %d", tally.Wins, tally.Draws, tally.Losses)
}

func (r *formatterReporter) Reset() {
	if r.f.IsJSON() {
		_ = r.f.Success(gameEvent{Event: "reset"})
		return
	}
	r.f.Textf("Resetting the game")
}

func (r *formatterReporter) Unrecognized(input string) {
	if r.f.IsJSON() {
		_ = r.f.Success(gameEvent{Event: "unrecognized", Input: input})
		return
	}
	r.f.Textf("Not a recognised selection, please try again")
}

func (r *formatterReporter) Quit() {
	if r.f.IsJSON() {
		_ = r.f.Success(gameEvent{Event: "quit"})
		return
	}
	r.f.Textf("Quitting game. Goodbye")
}

// ruleLines describes the table, e.g. "Paper beats (wraps) Rock".
func ruleLines(rules *rps.Rules) []string {
	var lines []string
	for _, h := range rules.Hands() {
		obj, _ := rules.Object(h)
		beats := " beats "
		if obj.Verb != "" {
			beats = " beats (" + obj.Verb + ") "
		}
		for _, b := range obj.Beats {
			lines = append(lines, h.Title()+beats+b.Title())
		}
	}
	return lines
}

// menuLine lists the hands with their keys, e.g. "Rock [1], Paper [2]".
func menuLine(rules *rps.Rules) string {
	line := ""
	for i, h := range rules.Hands() {
		if i > 0 {
			line += ", "
		}
		line += h.Title() + " [" + player.MenuKey(h) + "]"
	}
	return line
}
