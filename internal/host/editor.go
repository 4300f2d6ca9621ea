package host

import (
	"fmt"

	"github.com/dshills/prettierfmt/internal/engine/buffer"
	"github.com/dshills/prettierfmt/internal/engine/history"
	"github.com/dshills/prettierfmt/internal/engine/tracking"
)

// EditorHost binds a buffer, its undo history, and its line tracker into
// the capability surface the controller expects. It stands in for a real
// editor integration and backs the command-line tool.
type EditorHost struct {
	buf     *buffer.Buffer
	hist    *history.History
	tracker *tracking.Tracker
}

// NewEditor creates a host around buf with fresh history and markers.
func NewEditor(buf *buffer.Buffer) *EditorHost {
	return &EditorHost{
		buf:     buf,
		hist:    history.New(0),
		tracker: tracking.NewTracker(),
	}
}

// Buffer returns the underlying buffer.
func (h *EditorHost) Buffer() *buffer.Buffer {
	return h.buf
}

// Text returns the full buffer content.
func (h *EditorHost) Text() string {
	return h.buf.Text()
}

// Path returns the file path associated with the buffer.
func (h *EditorHost) Path() string {
	return h.buf.Path()
}

// LineCount returns the number of lines in the buffer.
func (h *EditorHost) LineCount() int {
	return h.buf.LineCount()
}

// ApplySplices replaces the given spans and sets the trailing newline as
// one undo transaction. Splices are applied bottom-up so earlier spans
// keep their coordinates while later ones are rewritten.
func (h *EditorHost) ApplySplices(name string, splices []tracking.Splice, trailingNewline bool) error {
	before := h.buf.Lines()

	err := h.hist.Transaction(name, h.buf, func() error {
		for i := len(splices) - 1; i >= 0; i-- {
			sp := splices[i]
			if sp.OldStart < 0 || sp.OldEnd > len(before) || sp.OldStart > sp.OldEnd {
				return fmt.Errorf("splice [%d,%d): %w", sp.OldStart, sp.OldEnd, buffer.ErrSpanInvalid)
			}

			cmd := history.NewSpliceCommand(sp.OldStart, before[sp.OldStart:sp.OldEnd], sp.NewLines)
			if err := h.hist.Execute(cmd, h.buf); err != nil {
				return err
			}
		}

		if h.buf.TrailingNewline() != trailingNewline {
			cmd := &history.TrailingNewlineCommand{Before: h.buf.TrailingNewline(), After: trailingNewline}
			if err := h.hist.Execute(cmd, h.buf); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Markers move only after the whole transaction committed.
	for i := len(splices) - 1; i >= 0; i-- {
		sp := splices[i]
		h.tracker.ApplySplice(sp.OldStart, sp.OldEnd, len(sp.NewLines))
	}
	return nil
}

// MarkSplice adjusts markers for a span replacement.
func (h *EditorHost) MarkSplice(oldStart, oldEnd, newCount int) {
	h.tracker.ApplySplice(oldStart, oldEnd, newCount)
}

// ModifiedLines returns all modified line indices in ascending order.
func (h *EditorHost) ModifiedLines() []int {
	return h.tracker.ModifiedLines()
}

// Undo reverts the most recent transaction.
func (h *EditorHost) Undo() error {
	return h.hist.Undo(h.buf)
}

// Redo reapplies the most recently undone transaction.
func (h *EditorHost) Redo() error {
	return h.hist.Redo(h.buf)
}

// UndoCount returns the number of undoable transactions.
func (h *EditorHost) UndoCount() int {
	return h.hist.UndoCount()
}

// ClearMarkers removes all modified markers, typically after a save.
func (h *EditorHost) ClearMarkers() {
	h.tracker.Clear()
}
