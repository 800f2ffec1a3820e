// Package task runs batch conversions in the background.
//
// A Runner starts one goroutine per task. The goroutine walks the items in
// order, checking the Handle's cancel and pause state before each one, and
// reports every finished item to the OnProgress callback. After the loop
// ends, for any reason, OnFinish is called exactly once with the aggregated
// Summary. Callbacks run on the task goroutine, one at a time and in order,
// so a Pause or Cancel issued from OnProgress takes effect before the next
// item starts. Callers that own shared state must hand events over to their
// own goroutine (see the workspace package).
//
// Parameters are copied when a task starts; later changes by the caller do
// not reach a running task. Per-item failures become statuses and never stop
// the task.
package task
