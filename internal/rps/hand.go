package rps

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Hand is one of the three playable objects.
type Hand int

// Hands in menu order. The zero value is not a valid hand.
const (
	Rock Hand = iota + 1
	Paper
	Scissors
)

var handNames = map[Hand]string{
	Rock:     "ROCK",
	Paper:    "PAPER",
	Scissors: "SCISSORS",
}

// AllHands returns every hand in menu order (Rock=1, Paper=2, Scissors=3).
func AllHands() []Hand {
	return []Hand{Rock, Paper, Scissors}
}

// String returns the canonical upper-case name, e.g. "ROCK".
func (h Hand) String() string {
	if name, ok := handNames[h]; ok {
		return name
	}
	return fmt.Sprintf("Hand(%d)", int(h))
}

// Title returns the display name, e.g. "Rock".
func (h Hand) Title() string {
	return cases.Title(language.English).String(h.String())
}

// Valid reports whether h is one of the three hands.
func (h Hand) Valid() bool {
	_, ok := handNames[h]
	return ok
}

// MarshalText encodes the hand by its canonical name.
func (h Hand) MarshalText() ([]byte, error) {
	if !h.Valid() {
		return nil, fmt.Errorf("invalid hand %d", int(h))
	}
	return []byte(h.String()), nil
}

// UnmarshalText decodes a canonical hand name.
func (h *Hand) UnmarshalText(text []byte) error {
	parsed, err := ParseHand(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ParseHand converts a canonical name ("ROCK") to a Hand.
func ParseHand(name string) (Hand, error) {
	for h, n := range handNames {
		if n == name {
			return h, nil
		}
	}
	return 0, fmt.Errorf("unknown hand %q", name)
}

// Outcome is the result of a comparison, relative to the calling object.
type Outcome int

const (
	Win Outcome = iota + 1
	Draw
	Lose
)

// String returns "WIN", "DRAW" or "LOSE".
func (o Outcome) String() string {
	switch o {
	case Win:
		return "WIN"
	case Draw:
		return "DRAW"
	case Lose:
		return "LOSE"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Title returns the display name, e.g. "Win".
func (o Outcome) Title() string {
	return cases.Title(language.English).String(o.String())
}

// MarshalText encodes the outcome by its canonical name.
func (o Outcome) MarshalText() ([]byte, error) {
	if o < Win || o > Lose {
		return nil, fmt.Errorf("invalid outcome %d", int(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText decodes "WIN", "DRAW" or "LOSE".
func (o *Outcome) UnmarshalText(text []byte) error {
	for _, c := range []Outcome{Win, Draw, Lose} {
		if c.String() == string(text) {
			*o = c
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", text)
}

// Invert returns the outcome seen from the other side.
func (o Outcome) Invert() Outcome {
	switch o {
	case Win:
		return Lose
	case Lose:
		return Win
	}
	return o
}
