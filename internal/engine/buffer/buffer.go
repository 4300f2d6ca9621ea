package buffer

import (
	"errors"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrLineOutOfRange = errors.New("line out of range")
	ErrSpanInvalid    = errors.New("invalid line span")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingLF:
		return "\n"
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// DetectLineEnding returns the dominant line ending style of s.
// Defaults to LF when s contains no line breaks.
func DetectLineEnding(s string) LineEnding {
	if strings.Contains(s, "\r\n") {
		return LineEndingCRLF
	}
	if strings.Contains(s, "\r") {
		return LineEndingCR
	}
	return LineEndingLF
}

// Buffer is a line-addressed text document.
// Lines are stored without terminators; the ending style and whether the
// document ends with a final newline are tracked separately.
type Buffer struct {
	mu              sync.RWMutex
	lines           []string
	lineEnding      LineEnding
	trailingNewline bool
	path            string
	revision        uint64
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithPath sets the file path associated with the buffer.
func WithPath(path string) Option {
	return func(b *Buffer) {
		b.path = path
	}
}

// WithLineEnding sets the line ending style.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
	}
}

// New creates a new empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		lines:      []string{""},
		lineEnding: LineEndingLF,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// FromString creates a buffer with initial content.
// The line ending style is detected from the content unless overridden
// by an option.
func FromString(s string, opts ...Option) *Buffer {
	b := &Buffer{lineEnding: DetectLineEnding(s)}

	for _, opt := range opts {
		opt(b)
	}

	b.lines, b.trailingNewline = SplitLines(s)
	return b
}

// SplitLines splits text into terminator-free lines and reports whether
// the text ended with a line break. Empty text yields a single empty line.
func SplitLines(s string) (lines []string, trailingNewline bool) {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	trailingNewline = strings.HasSuffix(s, "\n")
	if trailingNewline {
		s = s[:len(s)-1]
	}

	return strings.Split(s, "\n"), trailingNewline
}

// JoinLines reassembles lines into text using the given ending style.
func JoinLines(lines []string, le LineEnding, trailingNewline bool) string {
	text := strings.Join(lines, le.Sequence())
	if trailingNewline {
		text += le.Sequence()
	}
	return text
}

// Read Operations

// Text returns the full buffer content as a string, using the buffer's
// line ending style.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return JoinLines(b.lines, b.lineEnding, b.trailingNewline)
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// LineText returns the text of a specific line (0-indexed, no terminator).
func (b *Buffer) LineText(line int) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if line < 0 || line >= len(b.lines) {
		return "", ErrLineOutOfRange
	}
	return b.lines[line], nil
}

// Path returns the file path associated with the buffer.
func (b *Buffer) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// SetPath sets the file path associated with the buffer.
func (b *Buffer) SetPath(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.path = path
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// Revision returns a counter incremented on every edit.
func (b *Buffer) Revision() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// Snapshot returns an immutable copy of the buffer state.
func (b *Buffer) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	lines := make([]string, len(b.lines))
	copy(lines, b.lines)

	return Snapshot{
		Lines:           lines,
		LineEnding:      b.lineEnding,
		TrailingNewline: b.trailingNewline,
		Path:            b.path,
		Revision:        b.revision,
	}
}

// Write Operations

// ReplaceLines replaces the half-open line span [start, end) with repl.
// An empty span inserts before start; an empty repl deletes the span.
// Returns an EditResult describing the change for undo and tracking.
func (b *Buffer) ReplaceLines(start, end int, repl []string) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start > end {
		return EditResult{}, ErrSpanInvalid
	}
	// Inserting at len(lines) appends past the last line.
	if start < 0 || end > len(b.lines) || start > len(b.lines) {
		return EditResult{}, ErrLineOutOfRange
	}

	old := make([]string, end-start)
	copy(old, b.lines[start:end])

	newLines := make([]string, 0, len(b.lines)-(end-start)+len(repl))
	newLines = append(newLines, b.lines[:start]...)
	newLines = append(newLines, repl...)
	newLines = append(newLines, b.lines[end:]...)

	// A document always has at least one (possibly empty) line.
	if len(newLines) == 0 {
		newLines = []string{""}
	}

	b.lines = newLines
	b.revision++

	replCopy := make([]string, len(repl))
	copy(replCopy, repl)

	return EditResult{
		StartLine: start,
		OldLines:  old,
		NewLines:  replCopy,
		Revision:  b.revision,
	}, nil
}

// SetText replaces the entire buffer content.
func (b *Buffer) SetText(s string) EditResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	old := b.lines
	b.lines, b.trailingNewline = SplitLines(s)
	b.revision++

	return EditResult{
		StartLine: 0,
		OldLines:  old,
		NewLines:  b.lines,
		Revision:  b.revision,
	}
}

// SetTrailingNewline sets whether the document ends with a line break.
func (b *Buffer) SetTrailingNewline(v bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.trailingNewline != v {
		b.trailingNewline = v
		b.revision++
	}
}

// TrailingNewline reports whether the document ends with a line break.
func (b *Buffer) TrailingNewline() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.trailingNewline
}

// Snapshot is an immutable copy of buffer state taken at a point in time.
type Snapshot struct {
	Lines           []string
	LineEnding      LineEnding
	TrailingNewline bool
	Path            string
	Revision        uint64
}

// Text returns the snapshot content as a string.
func (s Snapshot) Text() string {
	return JoinLines(s.Lines, s.LineEnding, s.TrailingNewline)
}
