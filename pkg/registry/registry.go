// Package registry provides scoped process-wide default values.
// A Stack holds the current default for one setting (default namer, default
// reporter, approved-file subdirectory) and hands out restore functions, so
// overrides are installed and removed with strict scope discipline instead of
// through freely mutable globals.
//
// Usage:
//
//	restore := stack.Push(override)
//	defer restore()
package registry

import "sync"

// Stack is a thread-safe stack of values for one process-wide setting.
// The zero value is not usable; construct with NewStack.
type Stack[T any] struct {
	mu    sync.Mutex
	nodes []*node[T]
}

type node[T any] struct {
	value   T
	removed bool
}

// NewStack returns a stack whose bottom element is the given initial default.
// The bottom element can never be removed.
func NewStack[T any](initial T) *Stack[T] {
	return &Stack[T]{nodes: []*node[T]{{value: initial}}}
}

// Current returns the most recently pushed value that has not been restored.
func (s *Stack[T]) Current() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nodes[len(s.nodes)-1].value
}

// Push installs v as the current value and returns a restore function that
// removes it again. Restore is safe to call more than once and tolerates
// out-of-LIFO-order calls: it removes exactly the entry this Push created,
// so nested scopes unwinding via defer always land back on the value that
// was current before the outermost Push.
func (s *Stack[T]) Push(v T) (restore func()) {
	s.mu.Lock()
	n := &node[T]{value: v}
	s.nodes = append(s.nodes, n)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			n.removed = true
			// Entries restored out of order are dropped once everything
			// pushed above them is gone.
			for len(s.nodes) > 1 && s.nodes[len(s.nodes)-1].removed {
				s.nodes = s.nodes[:len(s.nodes)-1]
			}
		})
	}
}

// Depth returns the number of values on the stack, including the initial
// default. Primarily useful in tests.
func (s *Stack[T]) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.nodes)
}

// List is a thread-safe ordered collection with the same scoped-restore
// contract as Stack. It backs settings that accumulate rather than shadow,
// such as front-loaded reporters: every live entry is visible, in the order
// the entries were registered.
type List[T any] struct {
	mu    sync.Mutex
	nodes []*node[T]
}

// NewList returns an empty list.
func NewList[T any]() *List[T] {
	return &List[T]{}
}

// Add appends v and returns a restore function removing exactly that entry.
func (l *List[T]) Add(v T) (restore func()) {
	l.mu.Lock()
	n := &node[T]{value: v}
	l.nodes = append(l.nodes, n)
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			for i, m := range l.nodes {
				if m == n {
					l.nodes = append(l.nodes[:i], l.nodes[i+1:]...)
					return
				}
			}
		})
	}
}

// All returns the live entries in registration order.
func (l *List[T]) All() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.nodes))
	for i, n := range l.nodes {
		out[i] = n.value
	}
	return out
}
