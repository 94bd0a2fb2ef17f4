// Package patternlock is the gesture core of an Android-style unlock widget:
// an N×N grid of dots through which a user drags a pointer to draw a pattern.
//
// 🔒 What does it do?
//
//	A Session turns a stream of pointer positions into a discrete, validated
//	sequence of grid points:
//		• Extend/Drag   select the dot under the pointer if it is free and adjacent
//		• Backtrack     drop the last dot when the pointer reverses past the one before it
//		• End           validate on pointer-up, report the result, start fresh
//		• SetPattern    show a stored pattern (even an invalid one, flagged as an error)
//		• Reset         clear everything
//
// ✨ What it does not do
//
//   - Rendering, layout and the event loop belong to the host. The host reads
//     Selected, Pointer and LineHint (or a Snapshot) after each call and redraws.
//   - Hit-testing is the host's call too: it either passes the dots under the
//     pointer to Extend, or registers dot frames with SetFrames and calls Drag.
//
// State machine:
//
//	Idle ──Extend──▶ Dragging ──End(ok)──▶ Idle
//	                    │
//	                    └──End(invalid)──▶ Error ──(ErrorDelay)──▶ Idle
//
//	Input is ignored while in Error. Reset returns to Idle from anywhere.
//
// Errors are data: an invalid pattern is a pattern.Result failure plus a
// self-clearing error flag, never a panic and never a returned error.
//
// Under the hood:
//
//	gridgraph/          the lattice, row-major order, king-move adjacency
//	pattern/            standalone validation, Result, text codec
//	geometry/           vectors, rectangles, the backtrack angle
//	metrics/            prometheus collector wired through Hooks
//	trace/              replay recorded gestures through a Session
//	config/             YAML configuration for hosts
//	internal/terminal/  tcell host: draw with the mouse in a terminal
//	cmd/patternlock/    validate, replay and play from the command line
package patternlock
