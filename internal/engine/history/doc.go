// Package history provides undo/redo management for buffer edits.
//
// Edits are recorded as invertible commands. Commands can be grouped so
// that a multi-edit operation, such as applying a formatter's output,
// undoes and redoes as a single unit.
package history
