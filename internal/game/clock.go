package game

import "sync/atomic"

// Clock is a monotonic logical clock that stamps each played turn.
//
// Turns are ordered by seq, never by wall time. Reset of the history does
// not rewind the clock, so seq values stay unique within a session.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
