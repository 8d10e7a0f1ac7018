package singleton

import (
	"reflect"

	"github.com/iancoleman/strcase"
	"github.com/imdario/mergo"
	"go.uber.org/zap"
)

type Options struct {
	// Name identifies the slot in logs and in the teardown registry. Defaults
	// to the snake_case name of T.
	Name string
	// Register controls whether the first successful creation registers a
	// teardown callback with the process-exit registry.
	Register bool `default:"true"`
	Logger   *zap.Logger
}

type OptFunc[T any] func(*Holder[T]) error

func WithName[T any](name string) OptFunc[T] {
	return func(h *Holder[T]) error {
		h.opts.Name = name
		return nil
	}
}

func WithLogger[T any](log *zap.Logger) OptFunc[T] {
	return func(h *Holder[T]) error {
		h.opts.Logger = log
		return nil
	}
}

// WithoutRegister keeps the slot out of the process-exit registry; the caller
// owns teardown.
func WithoutRegister[T any]() OptFunc[T] {
	return func(h *Holder[T]) error {
		h.opts.Register = false
		return nil
	}
}

func WithOptions[T any](opts Options) OptFunc[T] {
	return func(h *Holder[T]) error {
		return mergo.Merge(&h.opts, opts, mergo.WithOverride)
	}
}

func WithCreation[T any](creation CreationPolicy[T]) OptFunc[T] {
	return func(h *Holder[T]) error {
		h.creation = creation
		return nil
	}
}

func WithThreading[T any](model ThreadingModel) OptFunc[T] {
	return func(h *Holder[T]) error {
		h.model = model
		return nil
	}
}

// WithMaker selects FactoryCreation with the given maker and no finalizer.
func WithMaker[T any](mk Maker[T]) OptFunc[T] {
	return func(h *Holder[T]) error {
		h.creation = FactoryCreation[T]{Make: mk}
		return nil
	}
}

// WithFactory selects FactoryCreation with a maker and a finalizer.
func WithFactory[T any](mk Maker[T], fin Finalizer[T]) OptFunc[T] {
	return func(h *Holder[T]) error {
		h.creation = FactoryCreation[T]{Make: mk, Finalize: fin}
		return nil
	}
}

func slotName[T any]() string {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}

	name := rt.Name()
	if name == "" {
		name = rt.String()
	}

	return strcase.ToSnake(name)
}
