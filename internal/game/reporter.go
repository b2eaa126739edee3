package game

import "github.com/roach88/rps/internal/rps"

// Reporter presents game events to the player. The CLI renders them as
// text or JSON; the scenario harness records them as a trace.
type Reporter interface {
	Welcome(rules *rps.Rules)
	Prompt()
	Result(turn Turn)
	Stats(turns []Turn, tally Tally)
	Reset()
	Unrecognized(input string)
	Quit()
}

// NopReporter discards every event.
type NopReporter struct{}

func (NopReporter) Welcome(*rps.Rules) {}
func (NopReporter) Prompt() {}
func (NopReporter) Result(Turn) {}
func (NopReporter) Stats([]Turn, Tally) {}
func (NopReporter) Reset() {}
func (NopReporter) Unrecognized(string) {}
func (NopReporter) Quit() {}
