// Package process manages the formatter subprocess.
//
// A Process wraps an exec.Cmd with lifecycle tracking and guaranteed
// termination. Run is the high-level helper used per formatting
// invocation: it hands the buffer to stdin, collects stdout and stderr,
// and enforces the context deadline by killing the child. The child is
// fully reaped on every exit path.
package process
