// Package preflight provides readiness checks for the filesystem paths and
// helpers zhbatch depends on.
//
// The task runner calls CheckDirectoryAccess to reject an unusable output
// folder before a run starts. The CLI "zhbatch doctor" command runs RunAll
// and renders every result.
package preflight
