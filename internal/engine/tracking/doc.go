// Package tracking provides line-level diff computation and per-line
// change markers.
//
// The diff produces a minimal edit script between two line sequences,
// which callers collapse into splice operations so that only genuinely
// changed lines are touched. The Tracker records which buffer lines are
// modified and keeps markers positioned correctly as splices shift
// line numbers.
package tracking
