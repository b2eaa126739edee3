// Package game implements the rock-paper-scissors read loop.
//
// A Game moves between two states:
//
//	Running --quit / end of input--> Stopped
//
// Every other input keeps it Running: a hand plays a turn and appends it to
// the history, S reports the history unchanged, R clears it, and anything
// unrecognized is logged and reported. Turns are stamped by a logical Clock
// that keeps counting across resets.
//
// The history is owned by the Game; nothing else mutates it.
package game
