package game

import "github.com/roach88/rps/internal/rps"

// Turn is one resolved play, stamped with the session clock.
type Turn struct {
	Seq      int64       `json:"seq"`
	Player   rps.Hand    `json:"player"`
	Opponent rps.Hand    `json:"opponent"`
	Outcome  rps.Outcome `json:"outcome"`
}

// Tally counts outcomes from the player's side.
type Tally struct {
	Wins   int `json:"wins"`
	Draws  int `json:"draws"`
	Losses int `json:"losses"`
}

// Played returns the total number of turns counted.
func (t Tally) Played() int {
	return t.Wins + t.Draws + t.Losses
}

// History is the append-only log of turns for the current session.
// It is owned by a single Game and not safe for concurrent use.
type History struct {
	turns []Turn
}

// Append records a turn at the end of the log.
func (h *History) Append(t Turn) {
	h.turns = append(h.turns, t)
}

// Reset drops every recorded turn.
func (h *History) Reset() {
	h.turns = nil
}

// Len returns the number of recorded turns.
func (h *History) Len() int {
	return len(h.turns)
}

// Turns returns a copy of the log in play order.
func (h *History) Turns() []Turn {
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Tally counts the outcomes in the log.
func (h *History) Tally() Tally {
	var t Tally
	for _, turn := range h.turns {
		switch turn.Outcome {
		case rps.Win:
			t.Wins++
		case rps.Draw:
			t.Draws++
		case rps.Lose:
			t.Losses++
		}
	}
	return t
}
