package singleton

import (
	"sync"

	"github.com/akrennmair/slice"
	"go.uber.org/multierr"
)

// Go has no atexit, so teardown is explicit: holders register their destroy
// callbacks here on first creation, and the host calls Teardown at the end of
// main (or wherever its shutdown path runs).

type teardownEntry struct {
	name string
	fn   func() error
}

var exitHooks struct {
	sync.Mutex
	entries []teardownEntry
}

func registerTeardown(name string, fn func() error) {
	exitHooks.Lock()
	defer exitHooks.Unlock()

	exitHooks.entries = append(exitHooks.entries, teardownEntry{name: name, fn: fn})
}

// Teardown runs every registered callback in reverse registration order and
// clears the registry. Failures are collected and returned together; each
// holder also logs its own destroy failure, so nothing is silently dropped.
func Teardown() error {
	exitHooks.Lock()
	entries := exitHooks.entries
	exitHooks.entries = nil
	exitHooks.Unlock()

	var errs error
	for i := len(entries) - 1; i >= 0; i-- {
		if err := entries[i].fn(); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	return errs
}

// SlotNames lists the slots currently awaiting teardown, oldest first.
func SlotNames() []string {
	exitHooks.Lock()
	defer exitHooks.Unlock()

	return slice.Map(exitHooks.entries, func(e teardownEntry) string {
		return e.name
	})
}
