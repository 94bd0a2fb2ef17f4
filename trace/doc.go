// Package trace loads recorded gesture scripts and replays them through a
// patternlock.Session.
//
// A script names a grid, an optional canvas and initial pattern, and a list
// of events. Each event carries exactly one action:
//
//	move:        {x: 150, y: 150}      pointer moved to a screen position
//	dot:         {x: 1, y: 1}          pointer moved onto the centre of a dot
//	up:          true                  pointer released
//	reset:       true                  session reset
//	set:         "(0,0)-(1,1)"         SetPattern with a parsed pattern
//	clear_error: true                  advance the replay clock until the error flag clears
//
// Scripts are YAML by default; a ".json" extension selects JSON.
//
// Errors:
//
//   - ErrEmptyEvent, ErrAmbiguousEvent: an event carries zero or several actions.
//   - ErrNoClock: clear_error was replayed without a ManualClock.
package trace
