package player

import (
	"strings"

	"github.com/roach88/rps/internal/rps"
)

// Command is a control instruction typed at the prompt instead of a hand.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandReset
	CommandStats
)

func (c Command) String() string {
	switch c {
	case CommandQuit:
		return "quit"
	case CommandReset:
		return "reset"
	case CommandStats:
		return "stats"
	}
	return "none"
}

// menu maps the numeric keys to hands; index 0 is "1".
var menu = []rps.Hand{rps.Rock, rps.Paper, rps.Scissors}

var commandKeys = map[string]Command{
	"C": CommandQuit,
	"Q": CommandQuit,
	"R": CommandReset,
	"S": CommandStats,
}

// Choice is the classified form of one line of human input.
// At most one of Hand and Command is set.
type Choice struct {
	Raw     string
	Hand    rps.Hand
	Command Command
}

// IsHand reports whether the input selected a hand.
func (c Choice) IsHand() bool {
	return c.Hand.Valid()
}

// Recognized reports whether the input was a hand or a command.
func (c Choice) Recognized() bool {
	return c.IsHand() || c.Command != CommandNone
}

// ParseChoice classifies human input: "1", "2", "3" select Rock, Paper,
// Scissors; C/Q quit, R resets, S shows stats (case-insensitive).
// Anything else is returned unrecognized.
func ParseChoice(input string) Choice {
	choice := Choice{Raw: input}
	key := strings.ToUpper(strings.TrimSpace(input))

	if cmd, ok := commandKeys[key]; ok {
		choice.Command = cmd
		return choice
	}

	if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(menu) {
		choice.Hand = menu[key[0]-'1']
	}
	return choice
}

// MenuKey returns the key that selects h, e.g. "1" for Rock.
func MenuKey(h rps.Hand) string {
	for i, m := range menu {
		if m == h {
			return string(rune('1' + i))
		}
	}
	return ""
}
