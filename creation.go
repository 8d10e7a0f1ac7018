package singleton

import (
	"sync"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

// CreationPolicy decides how the managed object is allocated and released.
// Create must never return a nil handle on success. Destroy is called at most
// once per created object, only with handles produced by the matching Create.
type CreationPolicy[T any] interface {
	Create() (*T, error)
	Destroy(*T) error
}

type (
	Maker[T any]     func() (*T, error)
	Finalizer[T any] func(*T) error
)

// DefaultCreation allocates a zero value of T.
type DefaultCreation[T any] struct{}

func (DefaultCreation[T]) Create() (*T, error) { return new(T), nil }

func (DefaultCreation[T]) Destroy(*T) error { return nil }

// FactoryCreation delegates allocation to a maker function and release to an
// optional finalizer, for types that need constructor arguments or own real
// resources (connections, file handles).
type FactoryCreation[T any] struct {
	Make     Maker[T]
	Finalize Finalizer[T]
}

func (f FactoryCreation[T]) Create() (*T, error) {
	if f.Make == nil {
		return nil, ErrNoMaker
	}

	inst, err := f.Make()
	if err != nil {
		return nil, errors.WithMessage(err, "make instance")
	}

	if inst == nil {
		return nil, ErrNilInstance
	}

	return inst, nil
}

func (f FactoryCreation[T]) Destroy(inst *T) error {
	if f.Finalize == nil {
		return nil
	}

	return f.Finalize(inst)
}

// PrototypeCreation deep-copies a prototype value, so the slot starts from a
// configured template instead of the zero value.
type PrototypeCreation[T any] struct {
	Prototype T
}

func (c PrototypeCreation[T]) Create() (*T, error) {
	var inst T
	if err := copier.CopyWithOption(&inst, &c.Prototype, copier.Option{DeepCopy: true}); err != nil {
		return nil, errors.Wrap(err, "clone prototype")
	}

	return &inst, nil
}

func (PrototypeCreation[T]) Destroy(*T) error { return nil }

// PooledCreation recycles destroyed objects through a pool. Destroy zeroes the
// object before returning it, so a later Create observes a clean value.
type PooledCreation[T any] struct {
	pool sync.Pool
}

func (c *PooledCreation[T]) Create() (*T, error) {
	if v := c.pool.Get(); v != nil {
		return v.(*T), nil
	}

	return new(T), nil
}

func (c *PooledCreation[T]) Destroy(inst *T) error {
	var zero T
	*inst = zero
	c.pool.Put(inst)
	return nil
}
