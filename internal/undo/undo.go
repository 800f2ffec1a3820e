// Package undo keeps bounded, single-direction undo histories.
//
// A History is a LIFO stack of snapshots with a fixed capacity; pushing past
// capacity evicts the oldest snapshot. Popping never records a redo entry.
// Callers push the state captured immediately before a mutation so that a pop
// restores exactly what existed before it.
package undo

import (
	"errors"
	"sync"
)

// DefaultCapacity is the number of snapshots kept per history.
const DefaultCapacity = 20

// ErrNothingToUndo is returned by Pop on an empty history.
var ErrNothingToUndo = errors.New("nothing to undo")

// History is a bounded LIFO of snapshots. It is safe for concurrent use.
type History[T any] struct {
	mu       sync.Mutex
	entries  []T
	capacity int
	clone    func(T) T
}

// Option configures a History.
type Option[T any] func(*History[T])

// WithClone copies every pushed snapshot with fn. Use it for snapshot types
// that are not already immutable values.
func WithClone[T any](fn func(T) T) Option[T] {
	return func(h *History[T]) {
		h.clone = fn
	}
}

// New returns a history holding at most capacity snapshots. A capacity below
// one falls back to DefaultCapacity.
func New[T any](capacity int, opts ...Option[T]) *History[T] {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	h := &History[T]{capacity: capacity}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Push records snapshot, evicting the oldest entry when full.
func (h *History[T]) Push(snapshot T) {
	if h.clone != nil {
		snapshot = h.clone(snapshot)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == h.capacity {
		var zero T
		h.entries[0] = zero
		h.entries = h.entries[1:]
	}
	h.entries = append(h.entries, snapshot)
}

// Pop removes and returns the most recent snapshot.
func (h *History[T]) Pop() (T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var zero T
	if len(h.entries) == 0 {
		return zero, ErrNothingToUndo
	}
	last := len(h.entries) - 1
	snapshot := h.entries[last]
	h.entries[last] = zero
	h.entries = h.entries[:last]
	return snapshot, nil
}

// Len returns the number of stored snapshots.
func (h *History[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Capacity returns the maximum number of stored snapshots.
func (h *History[T]) Capacity() int {
	return h.capacity
}

// Clear drops every snapshot.
func (h *History[T]) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}

// Manager keeps one independent history per key.
type Manager[K comparable, T any] struct {
	mu        sync.Mutex
	histories map[K]*History[T]
	capacity  int
	opts      []Option[T]
}

// NewManager returns a manager whose histories share capacity and options.
func NewManager[K comparable, T any](capacity int, opts ...Option[T]) *Manager[K, T] {
	return &Manager[K, T]{
		histories: make(map[K]*History[T]),
		capacity:  capacity,
		opts:      opts,
	}
}

func (m *Manager[K, T]) history(key K) *History[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.histories[key]
	if !ok {
		h = New(m.capacity, m.opts...)
		m.histories[key] = h
	}
	return h
}

// Push records snapshot in the history for key.
func (m *Manager[K, T]) Push(key K, snapshot T) {
	m.history(key).Push(snapshot)
}

// Pop removes and returns the most recent snapshot for key.
func (m *Manager[K, T]) Pop(key K) (T, error) {
	return m.history(key).Pop()
}

// Len returns the number of snapshots stored for key.
func (m *Manager[K, T]) Len(key K) int {
	return m.history(key).Len()
}
