// Package workspace holds the state an interactive session edits: the
// content and filename lists and the text pair, each with its own undo
// history.
//
// A Workspace is owned by one goroutine. Task callbacks never touch the
// lists directly; they post Events on a single ordered channel, and the
// owner applies them with Dispatch. Every mutating operation pushes the
// prior state before it changes anything.
package workspace
