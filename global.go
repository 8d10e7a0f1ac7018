package singleton

import (
	"reflect"
	"sync"
)

// Shared slots live in a process-wide registry keyed by the (type, creation
// policy, threading model) combination, so distinct configurations of the
// same T stay independent. Note the key carries policy types, not values: two
// FactoryCreation makers for the same T share one slot.

type slotKey struct {
	rtype     reflect.Type
	creation  reflect.Type
	threading reflect.Type
}

var holders sync.Map

// Shared returns the process-wide instance for T under the given options,
// creating holder and instance as needed.
func Shared[T any](opts ...OptFunc[T]) (*T, error) {
	h, err := sharedHolder[T](opts...)
	if err != nil {
		return nil, err
	}

	return h.Instance()
}

func MustShared[T any](opts ...OptFunc[T]) *T {
	inst, err := Shared[T](opts...)
	if err != nil {
		panic(err)
	}

	return inst
}

// SharedHolder returns the registry's holder for the combination, storing the
// probe built from opts if the combination is new. Options only take effect
// on the call that wins the store.
func SharedHolder[T any](opts ...OptFunc[T]) (*Holder[T], error) {
	return sharedHolder[T](opts...)
}

func sharedHolder[T any](opts ...OptFunc[T]) (*Holder[T], error) {
	probe, err := New(opts...)
	if err != nil {
		return nil, err
	}

	key := slotKey{
		rtype:     reflect.TypeOf((*T)(nil)).Elem(),
		creation:  reflect.TypeOf(probe.creation),
		threading: reflect.TypeOf(probe.model),
	}

	stored, _ := holders.LoadOrStore(key, probe)
	if h, ok := stored.(*Holder[T]); ok {
		return h, nil
	}

	panic("invalid holder object")
}
