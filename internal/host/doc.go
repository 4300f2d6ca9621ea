// Package host defines the capability surface the formatting controller
// consumes from an editor: buffer reads, atomic undoable line edits,
// per-line modified markers, and user-facing notifications.
//
// The interfaces are deliberately narrow so the controller can be driven
// by any editor integration. EditorHost is the in-process reference
// implementation used by the command-line tool and the tests.
package host
