package buffer

import (
	"reflect"
	"testing"
)

func TestFromString(t *testing.T) {
	b := FromString("alpha\nbeta\ngamma\n")

	if got := b.LineCount(); got != 3 {
		t.Errorf("expected 3 lines, got %d", got)
	}

	if !b.TrailingNewline() {
		t.Error("expected trailing newline to be detected")
	}

	line, err := b.LineText(1)
	if err != nil {
		t.Fatalf("LineText: %v", err)
	}
	if line != "beta" {
		t.Errorf("expected line 1 %q, got %q", "beta", line)
	}
}

func TestFromString_Empty(t *testing.T) {
	b := FromString("")

	if got := b.LineCount(); got != 1 {
		t.Errorf("expected 1 line for empty text, got %d", got)
	}
	if b.Text() != "" {
		t.Errorf("expected empty round-trip, got %q", b.Text())
	}
}

func TestText_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no trailing newline", "one\ntwo"},
		{"trailing newline", "one\ntwo\n"},
		{"single line", "only"},
		{"blank lines", "a\n\n\nb\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := FromString(tt.text)
			if got := b.Text(); got != tt.text {
				t.Errorf("round trip: expected %q, got %q", tt.text, got)
			}
		})
	}
}

func TestText_CRLFRoundTrip(t *testing.T) {
	b := FromString("one\r\ntwo\r\n")

	if b.LineEnding() != LineEndingCRLF {
		t.Fatalf("expected CRLF detection, got %v", b.LineEnding())
	}
	if got := b.Text(); got != "one\r\ntwo\r\n" {
		t.Errorf("expected CRLF preserved, got %q", got)
	}
}

func TestReplaceLines(t *testing.T) {
	b := FromString("a\nb\nc\nd\n")

	res, err := b.ReplaceLines(1, 3, []string{"B", "C", "C2"})
	if err != nil {
		t.Fatalf("ReplaceLines: %v", err)
	}

	if res.StartLine != 1 {
		t.Errorf("expected StartLine 1, got %d", res.StartLine)
	}
	if !reflect.DeepEqual(res.OldLines, []string{"b", "c"}) {
		t.Errorf("unexpected OldLines: %v", res.OldLines)
	}
	if res.Delta() != 1 {
		t.Errorf("expected delta 1, got %d", res.Delta())
	}

	want := "a\nB\nC\nC2\nd\n"
	if got := b.Text(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestReplaceLines_Insert(t *testing.T) {
	b := FromString("a\nc\n")

	if _, err := b.ReplaceLines(1, 1, []string{"b"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if got := b.Text(); got != "a\nb\nc\n" {
		t.Errorf("expected insert result, got %q", got)
	}
}

func TestReplaceLines_Delete(t *testing.T) {
	b := FromString("a\nb\nc\n")

	if _, err := b.ReplaceLines(0, 2, nil); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if got := b.Text(); got != "c\n" {
		t.Errorf("expected delete result, got %q", got)
	}
}

func TestReplaceLines_DeleteAll(t *testing.T) {
	b := FromString("a\nb\n")

	if _, err := b.ReplaceLines(0, 2, nil); err != nil {
		t.Fatalf("delete all: %v", err)
	}

	// A document always keeps at least one empty line.
	if got := b.LineCount(); got != 1 {
		t.Errorf("expected 1 line after deleting all, got %d", got)
	}
}

func TestReplaceLines_Errors(t *testing.T) {
	b := FromString("a\nb\n")

	if _, err := b.ReplaceLines(2, 1, nil); err != ErrSpanInvalid {
		t.Errorf("expected ErrSpanInvalid, got %v", err)
	}
	if _, err := b.ReplaceLines(-1, 0, nil); err != ErrLineOutOfRange {
		t.Errorf("expected ErrLineOutOfRange, got %v", err)
	}
	if _, err := b.ReplaceLines(0, 3, nil); err != ErrLineOutOfRange {
		t.Errorf("expected ErrLineOutOfRange, got %v", err)
	}
}

func TestRevision_IncrementsOnEdit(t *testing.T) {
	b := FromString("a\n")
	rev := b.Revision()

	if _, err := b.ReplaceLines(0, 1, []string{"b"}); err != nil {
		t.Fatalf("ReplaceLines: %v", err)
	}

	if b.Revision() != rev+1 {
		t.Errorf("expected revision %d, got %d", rev+1, b.Revision())
	}
}

func TestSnapshot_Immutable(t *testing.T) {
	b := FromString("a\nb\n", WithPath("x.js"))
	snap := b.Snapshot()

	if _, err := b.ReplaceLines(0, 2, []string{"z"}); err != nil {
		t.Fatalf("ReplaceLines: %v", err)
	}

	if snap.Text() != "a\nb\n" {
		t.Errorf("snapshot changed after edit: %q", snap.Text())
	}
	if snap.Path != "x.js" {
		t.Errorf("expected snapshot path x.js, got %q", snap.Path)
	}
}

func TestSplitLines(t *testing.T) {
	lines, trailing := SplitLines("a\r\nb\rc\n")
	if !reflect.DeepEqual(lines, []string{"a", "b", "c"}) {
		t.Errorf("unexpected lines: %v", lines)
	}
	if !trailing {
		t.Error("expected trailing newline")
	}
}
