package game

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/rps/internal/player"
	"github.com/roach88/rps/internal/rps"
)

// State is the game loop's state.
type State int

const (
	StateRunning State = iota
	StateStopped
)

func (s State) String() string {
	if s == StateStopped {
		return "stopped"
	}
	return "running"
}

// ErrStopped is returned by Handle and Play once the game has quit.
var ErrStopped = errors.New("game stopped")

// Options configures a Game. Only Rules is required.
type Options struct {
	Rules *rps.Rules

	// Opponent draws the AI hand. Defaults to a uniform random AIPlayer.
	Opponent *player.AIPlayer

	// Reporter presents events. Defaults to NopReporter.
	Reporter Reporter

	// SessionIDs names the session. Defaults to UUIDv7Generator.
	SessionIDs SessionIDGenerator

	// Logger receives diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Game runs one session: it owns the history and drives the
// Running -> Stopped state machine.
type Game struct {
	rules     *rps.Rules
	opponent  *player.AIPlayer
	reporter  Reporter
	logger    *slog.Logger
	sessionID string

	clock   *Clock
	history History
	state   State
}

// New creates a running game.
func New(opts Options) (*Game, error) {
	if opts.Rules == nil {
		return nil, fmt.Errorf("new game: rules are required")
	}

	opponent := opts.Opponent
	if opponent == nil {
		opponent = player.NewAIPlayer(opts.Rules.Hands(), nil)
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = NopReporter{}
	}
	ids := opts.SessionIDs
	if ids == nil {
		ids = UUIDv7Generator{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sessionID := ids.Generate()
	return &Game{
		rules:     opts.Rules,
		opponent:  opponent,
		reporter:  reporter,
		logger:    logger.With("session", sessionID),
		sessionID: sessionID,
		clock:     NewClock(),
		state:     StateRunning,
	}, nil
}

// SessionID returns the identifier of this session.
func (g *Game) SessionID() string {
	return g.sessionID
}

// State returns the current loop state.
func (g *Game) State() State {
	return g.state
}

// History returns a copy of the turns played since the last reset.
func (g *Game) History() []Turn {
	return g.history.Turns()
}

// Tally counts the outcomes in the current history.
func (g *Game) Tally() Tally {
	return g.history.Tally()
}

// Play resolves one turn: the opponent picks a hand, the player's hand is
// compared against it, and the turn is appended to the history.
//
// A returned error means the game has stopped or the rule table is
// inconsistent; the turn is not recorded.
func (g *Game) Play(hand rps.Hand) (Turn, error) {
	if g.state == StateStopped {
		return Turn{}, ErrStopped
	}

	opponent := g.opponent.NextHand()

	outcome, err := g.rules.Compare(hand, opponent)
	if err != nil {
		return Turn{}, fmt.Errorf("resolve turn: %w", err)
	}

	turn := Turn{
		Seq:      g.clock.Next(),
		Player:   hand,
		Opponent: opponent,
		Outcome:  outcome,
	}
	g.history.Append(turn)
	g.logger.Debug("turn played",
		"seq", turn.Seq,
		"player", turn.Player,
		"opponent", turn.Opponent,
		"outcome", turn.Outcome)
	return turn, nil
}

// Handle runs one loop iteration for a line of input.
func (g *Game) Handle(input string) error {
	if g.state == StateStopped {
		return ErrStopped
	}

	choice := player.ParseChoice(input)
	switch {
	case choice.Command == player.CommandQuit:
		g.stop()
	case choice.Command == player.CommandStats:
		g.reporter.Stats(g.history.Turns(), g.history.Tally())
	case choice.Command == player.CommandReset:
		g.logger.Info("resetting history", "turns", g.history.Len())
		g.history.Reset()
		g.reporter.Reset()
	case choice.IsHand():
		turn, err := g.Play(choice.Hand)
		if err != nil {
			return err
		}
		g.reporter.Result(turn)
	default:
		g.logger.Warn("unrecognized input", "input", input)
		g.reporter.Unrecognized(input)
	}
	return nil
}

// Run prints the rules and reads lines from r until the player quits, the
// input ends, or ctx is cancelled. Cancellation takes effect while Run is
// waiting for input; a line read after it is discarded.
func (g *Game) Run(ctx context.Context, r io.Reader) error {
	g.logger.Info("game started")
	g.reporter.Welcome(g.rules)

	done := make(chan struct{})
	defer close(done)
	lines := readLines(r, done)

	for g.state == StateRunning {
		if err := ctx.Err(); err != nil {
			return err
		}

		g.reporter.Prompt()

		var in inputLine
		var ok bool
		select {
		case <-ctx.Done():
			g.logger.Info("game interrupted", "turns", g.history.Len())
			return ctx.Err()
		case in, ok = <-lines:
		}

		if !ok {
			g.logger.Info("end of input")
			g.stop()
			break
		}
		if in.err != nil {
			return fmt.Errorf("read input: %w", in.err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := g.Handle(in.text); err != nil {
			return err
		}
	}
	return nil
}

// inputLine is one line of input, or the error that ended the input.
type inputLine struct {
	text string
	err  error
}

// readLines sends each line of r, without its line ending, until r is
// exhausted or done is closed. Lines have no length limit. io.EOF closes
// the channel; any other read error is sent as the last value.
func readLines(r io.Reader, done <-chan struct{}) <-chan inputLine {
	lines := make(chan inputLine)
	send := func(in inputLine) bool {
		select {
		case lines <- in:
			return true
		case <-done:
			return false
		}
	}

	go func() {
		defer close(lines)
		br := bufio.NewReader(r)
		for {
			text, err := br.ReadString('\n')
			if text != "" {
				text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
				if !send(inputLine{text: text}) {
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					send(inputLine{err: err})
				}
				return
			}
		}
	}()
	return lines
}

func (g *Game) stop() {
	g.state = StateStopped
	g.logger.Info("game stopped", "turns", g.history.Len())
	g.reporter.Quit()
}
