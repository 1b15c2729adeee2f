package signals

// Derived is a read-only value recomputed by an effect it owns. It has no
// setter; the only way to change it is through the values it reads.
type Derived[T any] struct {
	state  *State[T]
	effect *Effect
}

// NewDerived computes fn now and again whenever a value it read changes.
// Dependents are notified only when the result differs (by ==).
func NewDerived[T comparable](rt *Runtime, fn func() T) *Derived[T] {
	return newDerived(rt, fn, comparableEqual[T])
}

// NewDerivedFunc is NewDerived with a custom equality; nil notifies on every
// recomputation.
func NewDerivedFunc[T any](rt *Runtime, fn func() T, equal func(a, b T) bool) *Derived[T] {
	return newDerived(rt, fn, equal)
}

func newDerived[T any](rt *Runtime, fn func() T, equal func(a, b T) bool) *Derived[T] {
	d := &Derived[T]{state: &State[T]{rt: rt, equal: equal}}
	d.effect = rt.Watch(func() {
		d.state.Set(fn())
	})
	return d
}

// Get returns the current value, tracked like State.Get.
func (d *Derived[T]) Get() T { return d.state.Get() }

// Peek returns the current value without tracking.
func (d *Derived[T]) Peek() T { return d.state.Peek() }

// Dispose stops recomputation. The last value stays readable.
func (d *Derived[T]) Dispose() { d.effect.Dispose() }

// Active reports whether the derived value is still being recomputed.
func (d *Derived[T]) Active() bool { return d.effect.Active() }
