package dom

import (
	"fmt"
	"log/slog"
)

// Lifecycle collects a component's mount and destroy hooks.
type Lifecycle struct {
	logger  *slog.Logger
	mount   []func()
	destroy []func()
}

// NewLifecycle returns an empty Lifecycle logging panics to logger.
func NewLifecycle(logger *slog.Logger) *Lifecycle {
	if logger == nil {
		logger = slog.Default()
	}
	return &Lifecycle{logger: logger}
}

// OnMount queues fn to run after the component's nodes are inserted.
func (l *Lifecycle) OnMount(fn func()) { l.mount = append(l.mount, fn) }

// OnDestroy queues fn to run when the component unmounts.
func (l *Lifecycle) OnDestroy(fn func()) { l.destroy = append(l.destroy, fn) }

// TriggerMount runs and clears the mount hooks in registration order.
func (l *Lifecycle) TriggerMount() {
	hooks := l.mount
	l.mount = nil
	for _, fn := range hooks {
		l.call("mount", fn)
	}
}

// TriggerDestroy runs and clears the destroy hooks, last registered first.
func (l *Lifecycle) TriggerDestroy() {
	hooks := l.destroy
	l.destroy = nil
	for i := len(hooks) - 1; i >= 0; i-- {
		l.call("destroy", hooks[i])
	}
}

func (l *Lifecycle) call(phase string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			l.logger.Error("recovered panic in lifecycle hook", "phase", phase, "panic", fmt.Sprint(rec))
		}
	}()
	fn()
}
