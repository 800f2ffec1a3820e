// Package history persists finished task runs in SQLite.
//
// Each run records its parameters, counts and per-item outcome so the CLI can
// list past runs and show what happened to every item. The database lives in
// the state directory and uses WAL mode; writes retry briefly on SQLITE_BUSY
// because several zhbatch processes may finish runs at once.
package history
