// Package state holds the client-side lifecycle of one resource collection:
// idle -> pending -> succeeded or failed, with stale settlements discarded.
package state

import (
	"errors"
	"sync"
)

type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhasePending   Phase = "pending"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
)

var ErrNotCached = errors.New("entity not in cache")

// Collection tracks the items, phase and error of one resource. Every
// transition is a single mutex-guarded step. Begin hands out a generation
// token; a settlement presenting a token older than the latest issued one is
// ignored, so out-of-order completions can never overwrite newer state.
type Collection[T any] struct {
	mu      sync.Mutex
	idOf    func(T) string
	items   []T
	current *T
	phase   Phase
	errMsg  string
	gen     uint64
}

func NewCollection[T any](idOf func(T) string) *Collection[T] {
	return &Collection[T]{idOf: idOf, phase: PhaseIdle}
}

// Begin starts an operation: the collection enters pending, the previous
// error is cleared, and the caller receives the token it must settle with.
func (c *Collection[T]) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.phase = PhasePending
	c.errMsg = ""
	return c.gen
}

// Succeed replaces the items wholesale. Returns false when the token is
// stale and the result was discarded.
func (c *Collection[T]) Succeed(token uint64, items []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.gen {
		return false
	}
	c.items = append([]T(nil), items...)
	c.phase = PhaseSucceeded
	c.errMsg = ""
	return true
}

// Settle marks the operation succeeded without touching the items. Targeted
// mutations (Append, Replace, Remove) are applied separately.
func (c *Collection[T]) Settle(token uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.gen {
		return false
	}
	c.phase = PhaseSucceeded
	c.errMsg = ""
	return true
}

// Fail records the failure message. Items are retained so the caller keeps
// showing last-known-good data.
func (c *Collection[T]) Fail(token uint64, message string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.gen {
		return false
	}
	c.phase = PhaseFailed
	c.errMsg = message
	return true
}

// Discard drops a cancelled operation: no error is recorded and, when the
// token is still the latest, the collection returns to idle.
func (c *Collection[T]) Discard(token uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.gen {
		return
	}
	c.phase = PhaseIdle
	c.errMsg = ""
}

func (c *Collection[T]) Append(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

func (c *Collection[T]) Prepend(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]T{item}, c.items...)
}

// Replace swaps the member with the same id in place.
func (c *Collection[T]) Replace(item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.idOf(item)
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			c.items[i] = item
			if c.current != nil && c.idOf(*c.current) == id {
				copied := item
				c.current = &copied
			}
			return true
		}
	}
	return false
}

// Remove filters out the member with the given id. Removing an id that is
// already absent is a no-op. A matching current item is cleared.
func (c *Collection[T]) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			if c.current != nil && c.idOf(*c.current) == id {
				c.current = nil
			}
			return true
		}
	}
	return false
}

// Modify returns a copy of the cached member with apply run over it, for
// merge-before-PUT updates. The collection itself is not changed; commit the
// server-acknowledged result with Replace. Returns ErrNotCached when the id
// has no cached member.
func (c *Collection[T]) Modify(id string, apply func(T) T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			return apply(c.items[i]), nil
		}
	}
	var zero T
	return zero, ErrNotCached
}

func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			return c.items[i], true
		}
	}
	var zero T
	return zero, false
}

func (c *Collection[T]) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Collection[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase == PhasePending
}

func (c *Collection[T]) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// ClearError is the explicit dismissal used by the view layer; errors do not
// expire on their own.
func (c *Collection[T]) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errMsg = ""
	if c.phase == PhaseFailed {
		c.phase = PhaseIdle
	}
}

func (c *Collection[T]) Current() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		var zero T
		return zero, false
	}
	return *c.current, true
}

func (c *Collection[T]) SetCurrent(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := item
	c.current = &copied
}

func (c *Collection[T]) ClearCurrent() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
}
