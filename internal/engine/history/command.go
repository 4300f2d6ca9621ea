package history

import (
	"fmt"
	"time"

	"github.com/dshills/prettierfmt/internal/engine/buffer"
)

// Command represents a composable edit action that can be executed and undone.
type Command interface {
	// Execute performs the command and returns an error if it fails.
	Execute(buf *buffer.Buffer) error

	// Undo reverses the command and returns an error if it fails.
	Undo(buf *buffer.Buffer) error

	// Description returns a human-readable description of the command.
	Description() string
}

// SpliceCommand replaces a span of lines and remembers enough to invert it.
type SpliceCommand struct {
	Start    int
	OldLines []string
	NewLines []string

	// Timestamp records when the command was first executed.
	Timestamp time.Time
}

// NewSpliceCommand creates a splice command for the span beginning at start.
// oldLines are the lines currently occupying the span; newLines replace them.
func NewSpliceCommand(start int, oldLines, newLines []string) *SpliceCommand {
	return &SpliceCommand{
		Start:    start,
		OldLines: oldLines,
		NewLines: newLines,
	}
}

// Execute applies the splice to the buffer.
func (c *SpliceCommand) Execute(buf *buffer.Buffer) error {
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now()
	}

	_, err := buf.ReplaceLines(c.Start, c.Start+len(c.OldLines), c.NewLines)
	if err != nil {
		return fmt.Errorf("splice at line %d: %w", c.Start, err)
	}
	return nil
}

// Undo restores the original lines.
func (c *SpliceCommand) Undo(buf *buffer.Buffer) error {
	_, err := buf.ReplaceLines(c.Start, c.Start+len(c.NewLines), c.OldLines)
	if err != nil {
		return fmt.Errorf("undo splice at line %d: %w", c.Start, err)
	}
	return nil
}

// Description returns a human-readable description of the command.
func (c *SpliceCommand) Description() string {
	return fmt.Sprintf("splice %d lines at %d", len(c.NewLines), c.Start)
}

// TrailingNewlineCommand toggles the document's final line break.
type TrailingNewlineCommand struct {
	Before bool
	After  bool
}

// Execute sets the trailing newline to the After state.
func (c *TrailingNewlineCommand) Execute(buf *buffer.Buffer) error {
	buf.SetTrailingNewline(c.After)
	return nil
}

// Undo restores the trailing newline to the Before state.
func (c *TrailingNewlineCommand) Undo(buf *buffer.Buffer) error {
	buf.SetTrailingNewline(c.Before)
	return nil
}

// Description returns a human-readable description of the command.
func (c *TrailingNewlineCommand) Description() string {
	if c.After {
		return "add trailing newline"
	}
	return "remove trailing newline"
}

// CompoundCommand executes a sequence of commands as one unit.
// Undo reverses the commands in reverse order.
type CompoundCommand struct {
	Name     string
	Commands []Command
}

// NewCompoundCommand creates a compound command.
func NewCompoundCommand(name string, cmds ...Command) *CompoundCommand {
	return &CompoundCommand{Name: name, Commands: cmds}
}

// Execute runs all commands in order. If any command fails, commands
// already executed are undone before returning the error.
func (c *CompoundCommand) Execute(buf *buffer.Buffer) error {
	for i, cmd := range c.Commands {
		if err := cmd.Execute(buf); err != nil {
			// Roll back what already ran.
			for j := i - 1; j >= 0; j-- {
				_ = c.Commands[j].Undo(buf)
			}
			return fmt.Errorf("%s: command %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Undo reverses all commands in reverse order.
func (c *CompoundCommand) Undo(buf *buffer.Buffer) error {
	for i := len(c.Commands) - 1; i >= 0; i-- {
		if err := c.Commands[i].Undo(buf); err != nil {
			return fmt.Errorf("%s: undo command %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Description returns the compound command's name.
func (c *CompoundCommand) Description() string {
	return c.Name
}

// Len returns the number of contained commands.
func (c *CompoundCommand) Len() int {
	return len(c.Commands)
}
