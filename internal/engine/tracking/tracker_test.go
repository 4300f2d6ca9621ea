package tracking

import (
	"reflect"
	"testing"
)

func TestTracker_MarkAndState(t *testing.T) {
	tr := NewTracker()

	tr.MarkModified(2, 4)

	if tr.State(1) != LineClean {
		t.Error("expected line 1 clean")
	}
	if tr.State(2) != LineModified || tr.State(3) != LineModified {
		t.Error("expected lines 2-3 modified")
	}
	if tr.State(4) != LineClean {
		t.Error("expected line 4 clean")
	}
	if got := tr.ModifiedCount(); got != 2 {
		t.Errorf("expected 2 modified lines, got %d", got)
	}
}

func TestTracker_ApplySplice_ShiftsBelow(t *testing.T) {
	tr := NewTracker()
	tr.MarkModified(1, 2)   // above the splice
	tr.MarkModified(10, 11) // below the splice

	// Replace lines [4,6) with 3 lines: delta +1.
	tr.ApplySplice(4, 6, 3)

	want := []int{1, 4, 5, 6, 11}
	if got := tr.ModifiedLines(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected modified lines %v, got %v", want, got)
	}
}

func TestTracker_ApplySplice_DropsReplacedMarkers(t *testing.T) {
	tr := NewTracker()
	tr.MarkModified(5, 6)

	// Delete lines [4,7): the old marker disappears, nothing new is marked.
	tr.ApplySplice(4, 7, 0)

	if got := tr.ModifiedCount(); got != 0 {
		t.Errorf("expected no markers after deletion splice, got %d (%v)", got, tr.ModifiedLines())
	}
}

func TestTracker_ApplySplice_MarksOnlyChangedLines(t *testing.T) {
	tr := NewTracker()

	// Single-line replacement at line 5.
	tr.ApplySplice(5, 6, 1)

	if got := tr.ModifiedLines(); !reflect.DeepEqual(got, []int{5}) {
		t.Errorf("expected only line 5 marked, got %v", got)
	}
}

func TestTracker_Clear(t *testing.T) {
	tr := NewTracker()
	tr.MarkModified(0, 3)
	tr.Clear()

	if tr.ModifiedCount() != 0 {
		t.Error("expected no markers after Clear")
	}
}
