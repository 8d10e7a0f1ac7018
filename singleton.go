// Package singleton provides a policy-based single-instance holder: a Holder
// composes one CreationPolicy (how the object is allocated and released) with
// one ThreadingModel (how first-time creation is synchronized) over a single
// process-wide slot.
//
// Known hazards, documented rather than runtime-checked: calling Instance
// reentrantly from inside the creation policy deadlocks under MultiThreaded
// and recurses under SingleThreaded; calling Instance after Teardown has run
// is out of contract unless the holder was Reset first.
package singleton

import (
	"github.com/creasty/defaults"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Logger receives creation and teardown events for holders without their own
// logger. Nop by default.
var Logger = zap.NewNop()

// Holder owns the slot for one singleton configuration. The zero policies are
// DefaultCreation and MultiThreaded.
type Holder[T any] struct {
	creation CreationPolicy[T]
	model    ThreadingModel
	opts     Options

	slot       *T
	registered atomic.Bool
	creations  atomic.Int64
}

func New[T any](opts ...OptFunc[T]) (*Holder[T], error) {
	h := &Holder[T]{
		creation: DefaultCreation[T]{},
		model:    &MultiThreaded{},
	}

	if err := defaults.Set(&h.opts); err != nil {
		return nil, err
	}

	var errs error
	for _, opt := range opts {
		if err := opt(h); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	if errs != nil {
		return nil, errs
	}

	if h.opts.Name == "" {
		h.opts.Name = slotName[T]()
	}

	return h, nil
}

func MustNew[T any](opts ...OptFunc[T]) *Holder[T] {
	h, err := New(opts...)
	if err != nil {
		panic(err)
	}

	return h
}

// Instance returns the slot's occupant, creating it on first use. The whole
// check-then-create sequence runs inside the threading model's guard; a failed
// creation leaves the slot empty so a later call retries.
func (h *Holder[T]) Instance() (*T, error) {
	guard := h.model.Guard()
	defer guard.Unlock()

	if h.slot != nil {
		return h.slot, nil
	}

	inst, err := h.creation.Create()
	if err != nil {
		return nil, &ConstructionError{Slot: h.opts.Name, cause: err}
	}

	if inst == nil {
		return nil, &ConstructionError{Slot: h.opts.Name, cause: ErrNilInstance}
	}

	h.slot = inst
	h.creations.Inc()
	h.logger().Debug("instance created", zap.String("slot", h.opts.Name))

	if h.opts.Register && h.registered.CompareAndSwap(false, true) {
		registerTeardown(h.opts.Name, h.Teardown)
	}

	return h.slot, nil
}

func (h *Holder[T]) MustInstance() *T {
	inst, err := h.Instance()
	if err != nil {
		panic(err)
	}

	return inst
}

// Teardown destroys the occupant via the creation policy and empties the
// slot. Safe to call on an empty slot.
func (h *Holder[T]) Teardown() error {
	guard := h.model.Guard()
	defer guard.Unlock()

	if h.slot == nil {
		return nil
	}

	inst := h.slot
	h.slot = nil

	if err := h.creation.Destroy(inst); err != nil {
		h.logger().Error("destroy failed", zap.String("slot", h.opts.Name), zap.Error(err))
		return &DestructionError{Slot: h.opts.Name, cause: err}
	}

	h.logger().Debug("instance destroyed", zap.String("slot", h.opts.Name))
	return nil
}

// Reset empties the slot without running Destroy. Test support; the occupant,
// if any, is abandoned.
func (h *Holder[T]) Reset() {
	guard := h.model.Guard()
	defer guard.Unlock()

	h.slot = nil
}

func (h *Holder[T]) Created() bool {
	guard := h.model.Guard()
	defer guard.Unlock()

	return h.slot != nil
}

// Creations counts successful Create calls over the holder's lifetime.
func (h *Holder[T]) Creations() int64 {
	return h.creations.Load()
}

func (h *Holder[T]) Name() string { return h.opts.Name }

func (h *Holder[T]) logger() *zap.Logger {
	if h.opts.Logger != nil {
		return h.opts.Logger
	}

	return Logger
}
