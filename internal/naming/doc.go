// Package naming computes output file names.
//
// Resolve finds a free destination by appending "(1)", "(2)", ... to the
// base name. The check is not atomic against other writers in the same
// directory; callers serialize runs with the output folder lock.
package naming
