package signals

import "sync"

// Readable is anything whose current value can be read with tracking.
type Readable[T any] interface {
	Get() T
}

// ReaderFunc adapts a thunk to Readable. Reads inside the thunk are tracked.
type ReaderFunc[T any] func() T

// Get calls f.
func (f ReaderFunc[T]) Get() T { return f() }

// State is a writable reactive value.
type State[T any] struct {
	rt    *Runtime
	mu    sync.RWMutex
	value T
	equal func(a, b T) bool
	subs  []*Effect
}

// NewState creates a State compared with ==. Writing a value equal to the
// current one notifies nobody.
func NewState[T comparable](rt *Runtime, initial T) *State[T] {
	return &State[T]{rt: rt, value: initial, equal: comparableEqual[T]}
}

// NewStateFunc creates a State compared with equal. A nil equal treats every
// write as a change, which suits slices and maps replaced wholesale.
func NewStateFunc[T any](rt *Runtime, initial T, equal func(a, b T) bool) *State[T] {
	return &State[T]{rt: rt, value: initial, equal: equal}
}

// comparableEqual is == that treats a panic (interfaces holding
// uncomparable values) as inequality.
func comparableEqual[T comparable](a, b T) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

// Get returns the current value and, inside an effect, registers the effect
// as a dependent.
func (s *State[T]) Get() T {
	s.rt.track(s)
	return s.Peek()
}

// Peek returns the current value without tracking.
func (s *State[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and re-runs every dependent effect, unless v equals
// the current value.
func (s *State[T]) Set(v T) {
	s.mu.Lock()
	if s.equal != nil && s.equal(s.value, v) {
		s.mu.Unlock()
		return
	}
	s.value = v
	subs := make([]*Effect, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, e := range subs {
		s.rt.schedule(e)
	}
}

// Update sets the value to fn applied to the current value.
func (s *State[T]) Update(fn func(T) T) {
	s.Set(fn(s.Peek()))
}

// Subscribe registers a callback fired with the new value after each
// change. The returned func stops the subscription.
func (s *State[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	first := true
	e := s.rt.Effect(func() func() {
		v := s.Get()
		if first {
			first = false
			return nil
		}
		s.rt.Untrack(func() { fn(v) })
		return nil
	})
	return e.Dispose
}

// Dependents returns the number of effects currently depending on s.
func (s *State[T]) Dependents() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

func (s *State[T]) subscribe(e *Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, e)
}

func (s *State[T]) unsubscribe(e *Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub == e {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}
