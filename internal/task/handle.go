package task

import (
	"sync"
	"time"
)

// State is the lifecycle position of a task.
type State string

const (
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
	StateCancelled State = "cancelled"
)

// Finished reports whether s is terminal.
func (s State) Finished() bool {
	return s == StateCompleted || s == StateCancelled
}

// Handle controls one task run. It is never reused.
type Handle struct {
	id        string
	kind      Kind
	createdAt time.Time
	items     []string

	mu        sync.Mutex
	state     State
	cancelled bool
	// resume is non-nil while paused and closed to release the worker.
	resume chan struct{}
	done   chan struct{}
}

func newHandle(id string, kind Kind, items []string, now time.Time) *Handle {
	return &Handle{
		id:        id,
		kind:      kind,
		createdAt: now,
		items:     items,
		state:     StateRunning,
		done:      make(chan struct{}),
	}
}

// ID returns the task's unique identifier.
func (h *Handle) ID() string { return h.id }

// Kind returns the task type.
func (h *Handle) Kind() Kind { return h.kind }

// CreatedAt returns when the task was started.
func (h *Handle) CreatedAt() time.Time { return h.createdAt }

// Items returns the paths the task was started with.
func (h *Handle) Items() []string {
	out := make([]string, len(h.items))
	copy(out, h.items)
	return out
}

// State returns the current lifecycle state.
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// CancelRequested reports whether Cancel has been called.
func (h *Handle) CancelRequested() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cancelled
}

// Pause stops the task before its next item. It is a no-op unless running.
func (h *Handle) Pause() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != StateRunning || h.cancelled {
		return
	}
	h.state = StatePaused
	h.resume = make(chan struct{})
}

// Resume continues a paused task. It is a no-op unless paused.
func (h *Handle) Resume() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != StatePaused {
		return
	}
	h.state = StateRunning
	h.release()
}

// Cancel stops the task before its next item. The item in flight finishes.
// A paused task is released so it can wind down.
func (h *Handle) Cancel() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state.Finished() || h.cancelled {
		return
	}
	h.cancelled = true
	if h.state == StatePaused {
		h.state = StateRunning
		h.release()
	}
}

func (h *Handle) release() {
	if h.resume != nil {
		close(h.resume)
		h.resume = nil
	}
}

// Done is closed after OnFinish has returned.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Wait blocks until the task has finished.
func (h *Handle) Wait() { <-h.done }

// proceed blocks while paused and reports whether the next item may start.
func (h *Handle) proceed() bool {
	for {
		h.mu.Lock()
		if h.cancelled {
			h.mu.Unlock()
			return false
		}
		wait := h.resume
		h.mu.Unlock()
		if wait == nil {
			return true
		}
		<-wait
	}
}

// finish moves the task to its terminal state. A run that processed every
// item is completed even if Cancel arrived after the last one.
func (h *Handle) finish(completed bool) (cancelled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	cancelled = h.cancelled && !completed
	if cancelled {
		h.state = StateCancelled
	} else {
		h.state = StateCompleted
	}
	h.release()
	return cancelled
}
