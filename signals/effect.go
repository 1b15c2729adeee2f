package signals

// source is anything an effect can depend on.
type source interface {
	subscribe(e *Effect)
	unsubscribe(e *Effect)
}

// Effect is a re-runnable computation. Each run clears the previous
// dependency set and rebuilds it from the values read during the run, after
// calling the cleanup returned by the previous run.
type Effect struct {
	rt      *Runtime
	fn      func() func()
	cleanup func()
	deps    map[source]struct{}

	active  bool
	running bool
	dirty   bool
	queued  bool
}

// Effect creates an effect and runs it immediately. fn may return a cleanup
// that runs before the next run and on disposal.
func (rt *Runtime) Effect(fn func() (cleanup func())) *Effect {
	e := &Effect{
		rt:     rt,
		fn:     fn,
		deps:   make(map[source]struct{}),
		active: true,
	}
	e.run()
	return e
}

// Watch is Effect for computations without a cleanup.
func (rt *Runtime) Watch(fn func()) *Effect {
	return rt.Effect(func() func() {
		fn()
		return nil
	})
}

// Active reports whether the effect has not been disposed.
func (e *Effect) Active() bool { return e.active }

// Dispose runs the last cleanup, unsubscribes from every dependency and
// makes further notifications no-ops. It is idempotent.
func (e *Effect) Dispose() {
	if !e.active {
		return
	}
	e.active = false
	e.untrack()
	if c := e.cleanup; c != nil {
		e.cleanup = nil
		e.rt.guard("effect cleanup", c)
	}
}

func (e *Effect) untrack() {
	for src := range e.deps {
		src.unsubscribe(e)
	}
	clear(e.deps)
}

// run executes the effect, or marks it dirty when it is already running so
// the outer run repeats once it finishes.
func (e *Effect) run() {
	if !e.active {
		return
	}
	if e.running {
		e.dirty = true
		return
	}

	rt := e.rt
	if rt.depth >= rt.maxDepth {
		rt.logger.Error("effect nesting limit exceeded; dropping update", "depth", rt.depth)
		return
	}
	rt.depth++
	e.running = true
	defer func() {
		e.running = false
		rt.depth--
	}()

	for i := 1; ; i++ {
		e.dirty = false
		e.execute()
		if !e.dirty || !e.active {
			return
		}
		if i >= rt.maxReruns {
			rt.logger.Error("effect re-run limit exceeded; dropping update", "reruns", i)
			e.dirty = false
			return
		}
	}
}

func (e *Effect) execute() {
	rt := e.rt
	if c := e.cleanup; c != nil {
		e.cleanup = nil
		rt.guard("effect cleanup", c)
	}
	e.untrack()

	prev := rt.current
	rt.current = e
	defer func() { rt.current = prev }()

	rt.guard("effect", func() {
		e.cleanup = e.fn()
	})

	// Disposed from inside its own run: the fresh cleanup is the last one.
	if !e.active && e.cleanup != nil {
		c := e.cleanup
		e.cleanup = nil
		rt.guard("effect cleanup", c)
	}
}
