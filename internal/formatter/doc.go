// Package formatter drives one Prettier invocation end to end.
//
// The controller reloads configuration from disk, resolves the
// executable, pipes the buffer through the subprocess bounded by the
// configured timeout, and merges the output back as a minimal set of
// line splices inside a single undo transaction. Each invocation moves
// through resolving and invoking before landing on success, timeout,
// formatter error, or not-found; a second format request for a buffer
// with one already in flight is rejected with ErrFormatInFlight.
package formatter
