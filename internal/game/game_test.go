package game

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rps/internal/player"
	"github.com/roach88/rps/internal/rps"
)

// recordingReporter keeps the name of every reported event.
type recordingReporter struct {
	events       []string
	results      []Turn
	statsTurns   [][]Turn
	unrecognized []string
}

func (r *recordingReporter) Welcome(*rps.Rules) { r.events = append(r.events, "welcome") }
func (r *recordingReporter) Prompt() { r.events = append(r.events, "prompt") }
func (r *recordingReporter) Result(t Turn) {
	r.events = append(r.events, "result")
	r.results = append(r.results, t)
}
func (r *recordingReporter) Stats(turns []Turn, _ Tally) {
	r.events = append(r.events, "stats")
	r.statsTurns = append(r.statsTurns, turns)
}
func (r *recordingReporter) Reset() { r.events = append(r.events, "reset") }
func (r *recordingReporter) Unrecognized(input string) {
	r.events = append(r.events, "unrecognized")
	r.unrecognized = append(r.unrecognized, input)
}
func (r *recordingReporter) Quit() { r.events = append(r.events, "quit") }

func newTestGame(t *testing.T, ai ...rps.Hand) (*Game, *recordingReporter) {
	t.Helper()

	rules, err := rps.DefaultRules()
	require.NoError(t, err)

	rec := &recordingReporter{}
	g, err := New(Options{
		Rules:      rules,
		Opponent:   player.NewAIPlayer(rules.Hands(), player.NewFixedChooser(ai...)),
		Reporter:   rec,
		SessionIDs: NewFixedGenerator("test-session"),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	return g, rec
}

func TestNew_RequiresRules(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	rules, err := rps.DefaultRules()
	require.NoError(t, err)

	g, err := New(Options{Rules: rules})
	require.NoError(t, err)
	assert.Len(t, g.SessionID(), 36)
	assert.Equal(t, StateRunning, g.State())

	_, err = g.Play(rps.Rock)
	require.NoError(t, err)
	assert.Len(t, g.History(), 1)
}

func TestPlay_Outcomes(t *testing.T) {
	g, _ := newTestGame(t, rps.Scissors, rps.Rock, rps.Scissors)

	tests := []struct {
		hand rps.Hand
		want rps.Outcome
	}{
		{rps.Rock, rps.Win},
		{rps.Paper, rps.Win},
		{rps.Scissors, rps.Draw},
	}

	for i, tt := range tests {
		turn, err := g.Play(tt.hand)
		require.NoError(t, err)
		assert.Equal(t, tt.want, turn.Outcome)
		assert.Equal(t, int64(i+1), turn.Seq)
	}
	assert.Equal(t, Tally{Wins: 2, Draws: 1}, g.Tally())
}

func TestPlay_AfterQuit(t *testing.T) {
	g, _ := newTestGame(t, rps.Rock)

	require.NoError(t, g.Handle("q"))
	_, err := g.Play(rps.Paper)
	assert.ErrorIs(t, err, ErrStopped)
	assert.Empty(t, g.History())
}

func TestPlay_LogsCarrySession(t *testing.T) {
	rules, err := rps.DefaultRules()
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	g, err := New(Options{
		Rules:      rules,
		Opponent:   player.NewAIPlayer(rules.Hands(), player.NewFixedChooser(rps.Scissors)),
		SessionIDs: NewFixedGenerator("log-session"),
		Logger:     slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
	})
	require.NoError(t, err)

	require.NoError(t, g.Handle("1"))
	require.NoError(t, g.Handle("q"))

	assert.Contains(t, buf.String(), "turn played")
	assert.Contains(t, buf.String(), "outcome=WIN")
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Contains(t, line, "session=log-session")
	}
}

func TestHandle_StateMachine(t *testing.T) {
	g, rec := newTestGame(t, rps.Paper, rps.Rock)

	require.NoError(t, g.Handle("1"))
	require.NoError(t, g.Handle("s"))
	require.NoError(t, g.Handle("A"))
	require.NoError(t, g.Handle("2"))
	assert.Len(t, g.History(), 2)

	require.NoError(t, g.Handle("R"))
	assert.Empty(t, g.History())
	assert.Equal(t, StateRunning, g.State())

	require.NoError(t, g.Handle("q"))
	assert.Equal(t, StateStopped, g.State())
	assert.ErrorIs(t, g.Handle("1"), ErrStopped)

	assert.Equal(t, []string{"result", "stats", "unrecognized", "result", "reset", "quit"}, rec.events)
	assert.Equal(t, rps.Lose, rec.results[0].Outcome)
	assert.Equal(t, rps.Win, rec.results[1].Outcome)
	require.Len(t, rec.statsTurns, 1)
	assert.Len(t, rec.statsTurns[0], 1)
	assert.Equal(t, []string{"A"}, rec.unrecognized)
}

func TestHandle_StatsLeavesHistoryUnchanged(t *testing.T) {
	g, _ := newTestGame(t, rps.Rock)

	require.NoError(t, g.Handle("3"))
	before := g.History()
	require.NoError(t, g.Handle("S"))
	assert.Equal(t, before, g.History())
}

func TestHandle_ResetKeepsClock(t *testing.T) {
	g, rec := newTestGame(t, rps.Rock, rps.Rock)

	require.NoError(t, g.Handle("1"))
	require.NoError(t, g.Handle("r"))
	require.NoError(t, g.Handle("1"))

	history := g.History()
	require.Len(t, history, 1)
	assert.Equal(t, int64(2), history[0].Seq)
	assert.Equal(t, int64(2), rec.results[1].Seq)
}

func TestHandle_QuitAliases(t *testing.T) {
	for _, input := range []string{"q", "Q", "c", "C"} {
		t.Run(input, func(t *testing.T) {
			g, _ := newTestGame(t)
			require.NoError(t, g.Handle(input))
			assert.Equal(t, StateStopped, g.State())
		})
	}
}

func TestRun_ReadsUntilQuit(t *testing.T) {
	g, rec := newTestGame(t, rps.Scissors)

	input := strings.NewReader("1\nq\n3\n")
	require.NoError(t, g.Run(context.Background(), input))

	assert.Equal(t, StateStopped, g.State())
	assert.Len(t, g.History(), 1, "input after quit must not be played")
	assert.Equal(t, []string{"welcome", "prompt", "result", "prompt", "quit"}, rec.events)
}

func TestRun_EndOfInputStops(t *testing.T) {
	g, rec := newTestGame(t, rps.Rock)

	require.NoError(t, g.Run(context.Background(), strings.NewReader("2\n")))
	assert.Equal(t, StateStopped, g.State())
	assert.Equal(t, []string{"welcome", "prompt", "result", "prompt", "quit"}, rec.events)
}

func TestRun_CancelledContext(t *testing.T) {
	g, _ := newTestGame(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := g.Run(ctx, strings.NewReader("1\n"))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, g.History())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestRun_ReadError(t *testing.T) {
	g, _ := newTestGame(t)

	err := g.Run(context.Background(), failingReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read input")
}

// promptReporter signals every prompt so a test can wait until Run is
// blocked on input.
type promptReporter struct {
	NopReporter
	prompted chan struct{}
}

func (r *promptReporter) Prompt() {
	select {
	case r.prompted <- struct{}{}:
	default:
	}
}

func TestRun_CancelWhileWaitingForInput(t *testing.T) {
	rules, err := rps.DefaultRules()
	require.NoError(t, err)

	rep := &promptReporter{prompted: make(chan struct{}, 1)}
	g, err := New(Options{
		Rules:      rules,
		Opponent:   player.NewAIPlayer(rules.Hands(), player.NewFixedChooser(rps.Rock)),
		Reporter:   rep,
		SessionIDs: NewFixedGenerator("test-session"),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- g.Run(ctx, pr) }()

	select {
	case <-rep.prompted:
	case <-time.After(2 * time.Second):
		t.Fatal("game never prompted")
	}
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	// A line typed after the interrupt is read but never played.
	_, err = pw.Write([]byte("1\n"))
	require.NoError(t, err)
	assert.Empty(t, g.History())
	assert.Equal(t, StateRunning, g.State())
}

func TestRun_LongLineIsUnrecognized(t *testing.T) {
	g, rec := newTestGame(t, rps.Rock)

	long := strings.Repeat("x", 70000)
	require.NoError(t, g.Run(context.Background(), strings.NewReader(long+"\n1\nq\n")))

	assert.Equal(t, []string{"welcome", "prompt", "unrecognized", "prompt", "result", "prompt", "quit"}, rec.events)
	require.Len(t, rec.unrecognized, 1)
	assert.Len(t, rec.unrecognized[0], 70000)
	assert.Len(t, g.History(), 1)
}

func TestRun_CRLFAndUnterminatedLastLine(t *testing.T) {
	g, rec := newTestGame(t, rps.Rock, rps.Rock)

	require.NoError(t, g.Run(context.Background(), strings.NewReader("1\r\n2")))

	assert.Equal(t, []string{"welcome", "prompt", "result", "prompt", "result", "prompt", "quit"}, rec.events)
	assert.Len(t, g.History(), 2)
}
