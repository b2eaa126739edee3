package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rps/internal/rps"
)

func TestLoadScenario_Valid(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/classic_examples.yaml")
	require.NoError(t, err)

	assert.Equal(t, "classic_examples", s.Name)
	assert.Equal(t, DefaultSessionID, s.SessionID)
	assert.Len(t, s.Steps, 5)
	require.NotNil(t, s.Steps[0].Expect)
	assert.Equal(t, "WIN", s.Steps[0].Expect.Outcome)

	hands, err := s.Hands()
	require.NoError(t, err)
	assert.Equal(t, []rps.Hand{rps.Scissors, rps.Rock, rps.Scissors}, hands)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown field",
			yaml:    "name: x\ndescription: y\nstep: []\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "missing name",
			yaml:    "description: y\nsteps:\n  - input: \"1\"\nai_hands: [ROCK]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: x\nsteps:\n  - input: \"q\"\n",
			wantErr: "description is required",
		},
		{
			name:    "no steps",
			yaml:    "name: x\ndescription: y\n",
			wantErr: "steps list is required",
		},
		{
			name:    "bad hand",
			yaml:    "name: x\ndescription: y\nai_hands: [LIZARD]\nsteps:\n  - input: \"1\"\n",
			wantErr: "ai_hands[0]",
		},
		{
			name:    "too few ai hands",
			yaml:    "name: x\ndescription: y\nai_hands: [ROCK]\nsteps:\n  - input: \"1\"\n  - input: \"2\"\n",
			wantErr: "ai_hands has 1 entries but steps play 2 turns",
		},
		{
			name:    "unknown expect event",
			yaml:    "name: x\ndescription: y\nsteps:\n  - input: \"s\"\n    expect:\n      event: tally\n",
			wantErr: "unknown event",
		},
		{
			name:    "unknown expect event on quit step",
			yaml:    "name: x\ndescription: y\nsteps:\n  - input: \"q\"\n    expect:\n      event: quitt\n",
			wantErr: "steps[0].expect: unknown event \"quitt\"",
		},
		{
			name:    "unknown assertion",
			yaml:    "name: x\ndescription: y\nsteps:\n  - input: \"q\"\nassertions:\n  - type: score\n",
			wantErr: "unknown assertion type",
		},
		{
			name:    "bad outcome",
			yaml:    "name: x\ndescription: y\nsteps:\n  - input: \"q\"\nassertions:\n  - type: outcome_count\n    outcome: TIE\n",
			wantErr: "unknown outcome",
		},
		{
			name:    "bad state",
			yaml:    "name: x\ndescription: y\nsteps:\n  - input: \"q\"\nassertions:\n  - type: final_state\n    state: paused\n",
			wantErr: "state must be running or stopped",
		},
		{
			name:    "empty event order",
			yaml:    "name: x\ndescription: y\nsteps:\n  - input: \"q\"\nassertions:\n  - type: event_order\n",
			wantErr: "events list is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseScenario_HandsAfterQuitNotCounted(t *testing.T) {
	s, err := ParseScenario([]byte("name: x\ndescription: y\nsteps:\n  - input: \"q\"\n  - input: \"1\"\n"))
	require.NoError(t, err)
	assert.Len(t, s.Steps, 2)
}

func TestLoadScenarios_SortedAndStrict(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("name: b\ndescription: d\nsteps:\n  - input: \"q\"\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("name: a\ndescription: d\nsteps:\n  - input: \"s\"\n"), 0644))

	scenarios, err := LoadScenarios(dir)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)
	assert.Equal(t, "a", scenarios[0].Name)
	assert.Equal(t, "b", scenarios[1].Name)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.yaml"), []byte("name: c\n"), 0644))
	_, err = LoadScenarios(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "c.yaml")
}
