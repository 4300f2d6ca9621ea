package history

import (
	"errors"
	"testing"

	"github.com/dshills/prettierfmt/internal/engine/buffer"
)

func TestExecute_PushesUndo(t *testing.T) {
	buf := buffer.FromString("a\nb\n")
	h := New(0)

	cmd := NewSpliceCommand(0, []string{"a"}, []string{"A"})
	if err := h.Execute(cmd, buf); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if got := buf.Text(); got != "A\nb\n" {
		t.Errorf("expected edited text, got %q", got)
	}
	if !h.CanUndo() {
		t.Error("expected CanUndo after Execute")
	}
}

func TestUndoRedo(t *testing.T) {
	buf := buffer.FromString("a\nb\n")
	h := New(0)

	cmd := NewSpliceCommand(1, []string{"b"}, []string{"B", "B2"})
	if err := h.Execute(cmd, buf); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if err := h.Undo(buf); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := buf.Text(); got != "a\nb\n" {
		t.Errorf("undo: expected original text, got %q", got)
	}

	if err := h.Redo(buf); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := buf.Text(); got != "a\nB\nB2\n" {
		t.Errorf("redo: expected edited text, got %q", got)
	}
}

func TestUndo_Empty(t *testing.T) {
	h := New(0)
	buf := buffer.FromString("x\n")

	if err := h.Undo(buf); err != ErrNothingToUndo {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
	if err := h.Redo(buf); err != ErrNothingToRedo {
		t.Errorf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestGroup_SingleUndoUnit(t *testing.T) {
	buf := buffer.FromString("a\nb\nc\n")
	h := New(0)

	h.BeginGroup("reformat")
	if err := h.Execute(NewSpliceCommand(0, []string{"a"}, []string{"A"}), buf); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if err := h.Execute(NewSpliceCommand(2, []string{"c"}, []string{"C"}), buf); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	h.EndGroup()

	if got := h.UndoCount(); got != 1 {
		t.Fatalf("expected 1 undo entry for the group, got %d", got)
	}

	if err := h.Undo(buf); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := buf.Text(); got != "a\nb\nc\n" {
		t.Errorf("expected original text after single undo, got %q", got)
	}
}

func TestTransaction_RollbackOnError(t *testing.T) {
	buf := buffer.FromString("a\nb\n")
	h := New(0)

	errBoom := errors.New("boom")
	err := h.Transaction("bad edit", buf, func() error {
		if err := h.Execute(NewSpliceCommand(0, []string{"a"}, []string{"A"}), buf); err != nil {
			return err
		}
		return errBoom
	})

	if !errors.Is(err, errBoom) {
		t.Fatalf("expected boom error, got %v", err)
	}
	if got := buf.Text(); got != "a\nb\n" {
		t.Errorf("expected rollback to original text, got %q", got)
	}
	if h.CanUndo() {
		t.Error("expected no undo entry after cancelled transaction")
	}
}

func TestTransaction_Commit(t *testing.T) {
	buf := buffer.FromString("a\nb\n")
	h := New(0)

	err := h.Transaction("edit", buf, func() error {
		return h.Execute(NewSpliceCommand(0, []string{"a"}, []string{"A"}), buf)
	})
	if err != nil {
		t.Fatalf("Transaction: %v", err)
	}

	if got := h.UndoCount(); got != 1 {
		t.Errorf("expected 1 undo entry, got %d", got)
	}
	if got := buf.Text(); got != "A\nb\n" {
		t.Errorf("expected committed text, got %q", got)
	}
}

func TestCompoundCommand_UndoOrder(t *testing.T) {
	buf := buffer.FromString("a\nb\n")

	// Two splices whose correctness depends on undo running in reverse.
	c1 := NewSpliceCommand(0, []string{"a"}, []string{"A", "A2"})
	c2 := NewSpliceCommand(2, []string{"b"}, []string{"B"})
	compound := NewCompoundCommand("pair", c1, c2)

	if err := compound.Execute(buf); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := buf.Text(); got != "A\nA2\nB\n" {
		t.Fatalf("unexpected compound result: %q", got)
	}

	if err := compound.Undo(buf); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := buf.Text(); got != "a\nb\n" {
		t.Errorf("expected original after compound undo, got %q", got)
	}
}

func TestPush_ClearsRedo(t *testing.T) {
	buf := buffer.FromString("a\n")
	h := New(0)

	if err := h.Execute(NewSpliceCommand(0, []string{"a"}, []string{"b"}), buf); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if err := h.Undo(buf); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if !h.CanRedo() {
		t.Fatal("expected redo available")
	}

	if err := h.Execute(NewSpliceCommand(0, []string{"a"}, []string{"c"}), buf); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if h.CanRedo() {
		t.Error("expected redo stack cleared by new command")
	}
}

func TestMaxEntries(t *testing.T) {
	buf := buffer.FromString("a\n")
	h := New(2)

	for i := 0; i < 5; i++ {
		line, err := buf.LineText(0)
		if err != nil {
			t.Fatalf("LineText: %v", err)
		}
		if err := h.Execute(NewSpliceCommand(0, []string{line}, []string{line + "x"}), buf); err != nil {
			t.Fatalf("Execute: %v", err)
		}
	}

	if got := h.UndoCount(); got != 2 {
		t.Errorf("expected undo stack capped at 2, got %d", got)
	}
}
