package singleton

import (
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/atomic"
)

type testLogger struct {
	Prefix string
	lines  []string
}

func (l *testLogger) Log(msg string) { l.lines = append(l.lines, l.Prefix+msg) }

func TestInstanceIdentity(t *testing.T) {
	h := MustNew(WithoutRegister[testLogger]())

	a, err := h.Instance()
	assert.NoError(t, err)
	b, err := h.Instance()
	assert.NoError(t, err)

	assert.Same(t, a, b)
	assert.EqualValues(t, 1, h.Creations())
}

func TestLazyCreation(t *testing.T) {
	var calls atomic.Int64

	h := MustNew(
		WithoutRegister[testLogger](),
		WithMaker(func() (*testLogger, error) {
			calls.Inc()
			return &testLogger{Prefix: "[LOG] "}, nil
		}),
	)

	assert.EqualValues(t, 0, calls.Load())
	assert.False(t, h.Created())

	h.MustInstance().Log("hello")
	h.MustInstance().Log("again")

	assert.EqualValues(t, 1, calls.Load())
	assert.Equal(t, []string{"[LOG] hello", "[LOG] again"}, h.MustInstance().lines)
}

func TestRetryAfterFailure(t *testing.T) {
	var (
		calls int
		boom  = errors.New("boom")
	)

	h := MustNew(
		WithoutRegister[testLogger](),
		WithMaker(func() (*testLogger, error) {
			calls++
			if calls < 3 {
				return nil, boom
			}
			return &testLogger{}, nil
		}),
	)

	_, err := h.Instance()
	var cerr *ConstructionError
	assert.ErrorAs(t, err, &cerr)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "test_logger", cerr.Slot)

	// failed attempt leaves the slot empty and unregistered
	assert.False(t, h.Created())
	assert.False(t, h.registered.Load())

	_, err = h.Instance()
	assert.Error(t, err)

	inst, err := h.Instance()
	assert.NoError(t, err)
	assert.NotNil(t, inst)
	assert.Equal(t, 3, calls)
}

func TestConcurrentFirstAccess(t *testing.T) {
	type counter struct {
		Hits atomic.Int64
	}

	var makes atomic.Int64

	h := MustNew(
		WithoutRegister[counter](),
		WithMaker(func() (*counter, error) {
			makes.Inc()
			time.Sleep(10 * time.Millisecond) // widen the creation window
			return &counter{}, nil
		}),
	)

	var (
		wg  sync.WaitGroup
		got = make([]*counter, 10)
	)

	for i := 0; i < len(got); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			c := h.MustInstance()
			c.Hits.Inc()
			got[i] = c
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, makes.Load())
	for i := 1; i < len(got); i++ {
		assert.Same(t, got[0], got[i])
	}
	assert.EqualValues(t, 10, got[0].Hits.Load())
}

func TestIndependentHolders(t *testing.T) {
	h1 := MustNew(WithoutRegister[testLogger]())
	h2 := MustNew(WithoutRegister[testLogger]())

	a := h1.MustInstance()
	assert.True(t, h1.Created())
	assert.False(t, h2.Created())

	b := h2.MustInstance()
	assert.NotSame(t, a, b)
}

func TestTeardownDestroysOnce(t *testing.T) {
	var destroyed atomic.Int64

	h := MustNew(
		WithoutRegister[testLogger](),
		WithFactory(
			func() (*testLogger, error) { return &testLogger{}, nil },
			func(*testLogger) error { destroyed.Inc(); return nil },
		),
	)

	h.MustInstance()
	assert.NoError(t, h.Teardown())
	assert.False(t, h.Created())
	assert.EqualValues(t, 1, destroyed.Load())

	// empty slot, nothing left to destroy
	assert.NoError(t, h.Teardown())
	assert.EqualValues(t, 1, destroyed.Load())
}

func TestReset(t *testing.T) {
	var destroyed atomic.Int64

	h := MustNew(
		WithoutRegister[testLogger](),
		WithFactory(
			func() (*testLogger, error) { return &testLogger{}, nil },
			func(*testLogger) error { destroyed.Inc(); return nil },
		),
	)

	first := h.MustInstance()
	h.Reset()
	assert.False(t, h.Created())
	assert.EqualValues(t, 0, destroyed.Load())

	second := h.MustInstance()
	assert.NotSame(t, first, second)
	assert.EqualValues(t, 2, h.Creations())
}

func TestSlotNameDefault(t *testing.T) {
	h := MustNew(WithoutRegister[testLogger]())
	assert.Equal(t, "test_logger", h.Name())

	named := MustNew(WithoutRegister[testLogger](), WithName[testLogger]("app_log"))
	assert.Equal(t, "app_log", named.Name())
}

func TestWithOptionsMerge(t *testing.T) {
	h := MustNew(
		WithOptions[testLogger](Options{Name: "merged"}),
		WithoutRegister[testLogger](),
	)

	assert.Equal(t, "merged", h.Name())
	assert.False(t, h.opts.Register)
}
