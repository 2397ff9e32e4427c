package views

import "sync"

// Latest publishes the newest completed value for a view. Refreshes that
// were superseded before they finished are discarded, so a slow earlier
// response can never overwrite the result of a later one.
type Latest[T any] struct {
	mu    sync.Mutex
	token uint64
	value T
	set   bool
}

// Begin marks the start of a refresh and returns its token. Starting a new
// refresh invalidates every token handed out before it.
func (l *Latest[T]) Begin() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.token++
	return l.token
}

// Accept publishes v if token still identifies the newest refresh. It
// reports whether the value was accepted.
func (l *Latest[T]) Accept(token uint64, v T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if token != l.token {
		return false
	}
	l.value = v
	l.set = true
	return true
}

// Value returns the last published value, if any refresh has completed.
func (l *Latest[T]) Value() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.set
}
