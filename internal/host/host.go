package host

import "github.com/dshills/prettierfmt/internal/engine/tracking"

// BufferAccess reads the current state of the buffer being formatted.
type BufferAccess interface {
	// Text returns the full buffer content.
	Text() string

	// Path returns the file path associated with the buffer, or "" for
	// an unsaved buffer.
	Path() string

	// LineCount returns the number of lines in the buffer.
	LineCount() int
}

// TransactionApply applies a set of line splices as one undoable unit.
type TransactionApply interface {
	// ApplySplices replaces the spans described by splices and sets the
	// document's trailing newline, all within a single undo transaction.
	// Splice coordinates refer to the buffer state at the time of the
	// call. On error the buffer is left unchanged.
	ApplySplices(name string, splices []tracking.Splice, trailingNewline bool) error
}

// LineMarker maintains per-line modified markers.
type LineMarker interface {
	// MarkSplice adjusts markers for a replacement of [oldStart, oldEnd)
	// by newCount lines and marks the new span modified.
	MarkSplice(oldStart, oldEnd, newCount int)

	// ModifiedLines returns all modified line indices in ascending order.
	ModifiedLines() []int
}

// Level classifies a notification.
type Level int

const (
	// LevelInfo is a routine status message.
	LevelInfo Level = iota
	// LevelWarn is a recoverable problem the user should know about.
	LevelWarn
	// LevelError is a failed operation.
	LevelError
)

// String returns a human-readable level name.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Notifier surfaces messages to the user.
type Notifier interface {
	Notify(level Level, msg string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(level Level, msg string)

// Notify calls f.
func (f NotifierFunc) Notify(level Level, msg string) {
	f(level, msg)
}

// NopNotifier discards all notifications.
func NopNotifier() Notifier {
	return NotifierFunc(func(Level, string) {})
}
