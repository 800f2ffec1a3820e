// Package filelist models the ordered item lists an operator builds before a
// task runs: one entry per path with a checked flag and the status of the
// last run.
//
// List is an immutable value. Every mutating method returns a new List and
// leaves the receiver untouched, so a List captured as an undo snapshot stays
// exactly as it was no matter what happens to the live list afterwards.
package filelist
