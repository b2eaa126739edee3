// Package harness replays scripted game sessions and checks them.
//
// A Scenario is a YAML file listing the opponent's hands, the lines the
// player types, per-step expectations and final assertions. Run plays it
// against a real game.Game with a FixedChooser and a fixed session ID, so
// the resulting trace is deterministic and can be compared against a
// golden file with RunWithGolden.
//
// Scenario files live in testdata/scenarios; golden files in
// testdata/golden. Regenerate goldens with:
//
//	go test ./internal/harness -update
package harness
