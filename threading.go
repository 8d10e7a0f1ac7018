package singleton

import "sync"

// Unlocker is the scoped guard handed out by a ThreadingModel. Release it with
// defer so a failed creation attempt cannot leave the slot locked.
type Unlocker interface {
	Unlock()
}

// ThreadingModel decides how first-time creation is synchronized. Guard blocks
// until exclusive access is granted (or not at all, for the no-op variant).
type ThreadingModel interface {
	Guard() Unlocker
}

type noopGuard struct{}

func (noopGuard) Unlock() {}

// SingleThreaded hands out a zero-sized guard with no exclusion semantics.
// Only for programs that never touch the slot concurrently; under concurrent
// access the check-then-create sequence is a data race.
type SingleThreaded struct{}

func (SingleThreaded) Guard() Unlocker { return noopGuard{} }

// MultiThreaded guards the slot with one mutex. The release/acquire pair is
// what makes the created object visible to every later locker.
type MultiThreaded struct {
	mu sync.Mutex
}

func (m *MultiThreaded) Guard() Unlocker {
	m.mu.Lock()
	return &m.mu
}

// Mutex exposes the shared primitive for threading models that need it.
func (m *MultiThreaded) Mutex() *sync.Mutex { return &m.mu }
