// Package signals is a fine-grained reactivity runtime: writable State
// values, read-only Derived values and Effects that re-run when the values
// they read change.
//
// Notification is synchronous: Set re-runs every dependent effect before it
// returns, in subscription order. Batch defers re-runs until the outermost
// batch returns. A Runtime is the tracking context; values and effects
// created on different runtimes never observe each other.
//
// The package has no build tags and is fully testable outside WASM.
package signals

import (
	"fmt"
	"log/slog"
)

const (
	// DefaultMaxReruns caps how often one effect re-runs because it was
	// notified while already running.
	DefaultMaxReruns = 100
	// DefaultMaxDepth caps nested effect runs (an effect whose run triggers
	// another effect's run, and so on).
	DefaultMaxDepth = 1000
)

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger used for recovered panics and runaway updates.
func WithLogger(l *slog.Logger) Option {
	return func(rt *Runtime) { rt.logger = l }
}

// WithMaxReruns overrides DefaultMaxReruns.
func WithMaxReruns(n int) Option {
	return func(rt *Runtime) { rt.maxReruns = n }
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(rt *Runtime) { rt.maxDepth = n }
}

// Runtime holds the currently running effect and the batch queue. It is
// confined to one goroutine, like the DOM it drives.
type Runtime struct {
	current   *Effect
	depth     int
	batch     int
	pending   []*Effect
	logger    *slog.Logger
	maxReruns int
	maxDepth  int
}

// NewRuntime returns an independent tracking context.
func NewRuntime(opts ...Option) *Runtime {
	rt := &Runtime{
		logger:    slog.Default(),
		maxReruns: DefaultMaxReruns,
		maxDepth:  DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Logger returns the runtime's logger.
func (rt *Runtime) Logger() *slog.Logger { return rt.logger }

// Tracking reports whether an effect is currently running.
func (rt *Runtime) Tracking() bool { return rt.current != nil }

// Untrack runs fn with dependency tracking suspended.
func (rt *Runtime) Untrack(fn func()) {
	prev := rt.current
	rt.current = nil
	defer func() { rt.current = prev }()
	fn()
}

// Batch runs fn and defers every effect re-run it causes until fn returns.
// Nested batches flush when the outermost one returns. Effects run once per
// flush, in the order they were first notified.
func (rt *Runtime) Batch(fn func()) {
	rt.batch++
	defer func() {
		rt.batch--
		if rt.batch == 0 {
			rt.flush()
		}
	}()
	fn()
}

func (rt *Runtime) flush() {
	for len(rt.pending) > 0 {
		queue := rt.pending
		rt.pending = nil
		for _, e := range queue {
			e.queued = false
			e.run()
		}
	}
}

// schedule is called by a source for each dependent effect.
func (rt *Runtime) schedule(e *Effect) {
	if !e.active {
		return
	}
	if rt.batch > 0 {
		if !e.queued {
			e.queued = true
			rt.pending = append(rt.pending, e)
		}
		return
	}
	e.run()
}

// track registers the current effect as a dependent of src.
func (rt *Runtime) track(src source) {
	if e := rt.current; e != nil && e.active {
		if _, ok := e.deps[src]; ok {
			return
		}
		e.deps[src] = struct{}{}
		src.subscribe(e)
	}
}

// guard calls fn, recovering and logging any panic.
func (rt *Runtime) guard(what string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			rt.logger.Error("recovered panic", "in", what, "panic", fmt.Sprint(r))
			ok = false
		}
	}()
	fn()
	return true
}
