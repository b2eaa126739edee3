// Package rps holds the rock-paper-scissors rule engine.
//
// A Hand is wrapped in a GameObject that knows which hands it beats and
// which it loses to. The relation is declared in an embedded CUE document
// (rules.cue) and checked on load:
//
//   - every hand compared to itself draws
//   - for every pair of distinct hands exactly one beats the other
//   - beats and loses are mirror images of each other
//
// GameObject.Winner never consults anything but the loaded table, so a
// table that passes LoadRules cannot produce a ConsistencyError.
package rps
