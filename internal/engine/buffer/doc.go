// Package buffer provides a line-addressed text buffer used as the
// reference host document for formatting operations.
//
// The buffer stores lines without terminators and tracks the document's
// line ending style and trailing newline separately, so formatted output
// can be spliced back in line units without disturbing unrelated lines.
// All methods are thread-safe.
package buffer
