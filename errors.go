package singleton

import (
	"errors"
	"fmt"
)

var (
	ErrNoMaker     = errors.New("singleton: no maker function")
	ErrNilInstance = errors.New("singleton: maker returned nil instance")
)

// ConstructionError reports a failed creation attempt. The slot stays empty, so
// a later accessor call retries.
type ConstructionError struct {
	Slot  string
	cause error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("singleton: construct %q: %v", e.Slot, e.cause)
}

func (e *ConstructionError) Unwrap() error { return e.cause }

func (e *ConstructionError) Cause() error { return e.cause }

// DestructionError reports a teardown callback failure. Teardown aggregates
// these and returns them rather than swallowing them.
type DestructionError struct {
	Slot  string
	cause error
}

func (e *DestructionError) Error() string {
	return fmt.Sprintf("singleton: destroy %q: %v", e.Slot, e.cause)
}

func (e *DestructionError) Unwrap() error { return e.cause }

func (e *DestructionError) Cause() error { return e.cause }
