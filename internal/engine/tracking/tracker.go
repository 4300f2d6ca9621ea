package tracking

import (
	"sort"
	"sync"
)

// LineState describes the tracked state of a buffer line.
type LineState uint8

const (
	// LineClean indicates the line is unchanged since the last save point.
	LineClean LineState = iota

	// LineModified indicates the line was changed by an edit.
	LineModified
)

// String returns a human-readable state name.
func (ls LineState) String() string {
	switch ls {
	case LineClean:
		return "clean"
	case LineModified:
		return "modified"
	default:
		return "unknown"
	}
}

// Tracker records per-line modified markers for a buffer.
//
// Markers survive edits elsewhere in the document: when a splice is
// applied, markers above it are untouched and markers below shift by the
// splice's line delta. Replaced spans get fresh markers. All operations
// are thread-safe.
type Tracker struct {
	mu       sync.RWMutex
	modified map[int]struct{}
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		modified: make(map[int]struct{}),
	}
}

// State returns the tracked state of a line.
func (t *Tracker) State(line int) LineState {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if _, ok := t.modified[line]; ok {
		return LineModified
	}
	return LineClean
}

// MarkModified marks the half-open line span [start, end) as modified.
func (t *Tracker) MarkModified(start, end int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := start; i < end; i++ {
		t.modified[i] = struct{}{}
	}
}

// ModifiedLines returns all modified line indices in ascending order.
func (t *Tracker) ModifiedLines() []int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	lines := make([]int, 0, len(t.modified))
	for line := range t.modified {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	return lines
}

// ModifiedCount returns the number of modified lines.
func (t *Tracker) ModifiedCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.modified)
}

// ApplySplice adjusts markers for a replacement of the old span
// [oldStart, oldEnd) by newCount lines, then marks the new span modified.
//
// Markers before oldStart keep their positions. Markers inside the old
// span are dropped (the span is re-marked as a whole). Markers at or after
// oldEnd shift by the line delta.
func (t *Tracker) ApplySplice(oldStart, oldEnd, newCount int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delta := newCount - (oldEnd - oldStart)

	adjusted := make(map[int]struct{}, len(t.modified))
	for line := range t.modified {
		switch {
		case line < oldStart:
			adjusted[line] = struct{}{}
		case line >= oldEnd:
			adjusted[line+delta] = struct{}{}
		}
		// Lines within [oldStart, oldEnd) are replaced below.
	}

	for i := 0; i < newCount; i++ {
		adjusted[oldStart+i] = struct{}{}
	}

	t.modified = adjusted
}

// Clear removes all markers, typically after a save.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.modified = make(map[int]struct{})
}
