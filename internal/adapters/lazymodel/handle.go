// Package lazymodel owns lazily initialized classifier resources.
//
// A Handle moves unloaded -> loading -> loaded|failed exactly once. The
// first caller starts the load; every caller, early or late, awaits the same
// pending operation and observes the same outcome.
package lazymodel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/diarium/internal/domain/mood"
	"github.com/okian/diarium/pkg/logger"
	"github.com/okian/diarium/pkg/metrics"
)

// State is the lifecycle position of a Handle.
type State int32

// Handle states. Loaded and Failed are terminal.
const (
	Unloaded State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// ErrLoadPanicked marks a loader that panicked instead of returning.
var ErrLoadPanicked = errors.New("model loader panicked")

// Loader produces the resource. It runs at most once per Handle.
type Loader[T any] func(ctx context.Context) (T, error)

type options struct {
	logger logger.Logger
}

// Option applies a configuration option to a Handle.
type Option func(*options)

// WithLogger sets the logger used for load transitions.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Handle is safe for concurrent use.
type Handle[T any] struct {
	name   string
	load   Loader[T]
	logger logger.Logger

	once  sync.Once
	done  chan struct{}
	state atomic.Int32

	// value and err are written once before done is closed.
	value T
	err   error
}

// New creates an unloaded handle. name labels logs and metrics.
func New[T any](name string, load Loader[T], opts ...Option) *Handle[T] {
	o := options{logger: logger.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	h := &Handle[T]{
		name:   name,
		load:   load,
		logger: o.logger.Named("lazymodel"),
		done:   make(chan struct{}),
	}
	metrics.UpdateModelLoadState(name, metrics.LoadStateUnloaded)
	return h
}

// Name returns the handle label.
func (h *Handle[T]) Name() string { return h.name }

// State reports the current lifecycle state.
func (h *Handle[T]) State() State { return State(h.state.Load()) }

// Start triggers the load if nobody has yet. It never blocks. The load is
// detached from ctx cancellation so that one impatient caller cannot fail
// the shared outcome for everybody else.
func (h *Handle[T]) Start(ctx context.Context) {
	h.once.Do(func() {
		h.state.Store(int32(Loading))
		metrics.UpdateModelLoadState(h.name, metrics.LoadStateLoading)
		h.logger.Info(ctx, "model load started", logger.String("model", h.name))
		go h.run(context.WithoutCancel(ctx))
	})
}

// Wait starts the load if needed and blocks until it finishes or ctx ends.
// A ctx error leaves the load running for other callers.
func (h *Handle[T]) Wait(ctx context.Context) (T, error) {
	h.Start(ctx)
	select {
	case <-h.done:
		return h.value, h.err
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("waiting for model %s: %w", h.name, ctx.Err())
	}
}

// Done is closed once the load has reached a terminal state.
func (h *Handle[T]) Done() <-chan struct{} { return h.done }

func (h *Handle[T]) run(ctx context.Context) {
	start := time.Now()
	defer close(h.done)

	value, err := h.safeLoad(ctx)
	elapsed := time.Since(start)

	if err != nil {
		if !errors.Is(err, mood.ErrModelUnavailable) {
			err = fmt.Errorf("load %s: %w: %w", h.name, mood.ErrModelUnavailable, err)
		}
		h.err = err
		h.state.Store(int32(Failed))
		metrics.UpdateModelLoadState(h.name, metrics.LoadStateFailed)
		metrics.RecordModelLoadDuration(h.name, Failed.String(), float64(elapsed.Milliseconds()))
		h.logger.Warn(ctx, "model unavailable",
			logger.String("model", h.name),
			logger.Duration("took", elapsed),
			logger.Error(err),
		)
		return
	}

	h.value = value
	h.state.Store(int32(Loaded))
	metrics.UpdateModelLoadState(h.name, metrics.LoadStateLoaded)
	metrics.RecordModelLoadDuration(h.name, Loaded.String(), float64(elapsed.Milliseconds()))
	h.logger.Info(ctx, "model loaded",
		logger.String("model", h.name),
		logger.Duration("took", elapsed),
	)
}

func (h *Handle[T]) safeLoad(ctx context.Context) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrLoadPanicked, r)
		}
	}()
	return h.load(ctx)
}
