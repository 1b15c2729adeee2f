package dom

import (
	"fmt"

	"github.com/vcrobe/anatomique/signals"
)

// BindText keeps node's text equal to src. The returned func stops it.
func BindText[T any](r *Renderer, node Node, src signals.Readable[T]) (dispose func()) {
	if node == nil {
		r.logger.Error("cannot bind text to a nil node")
		return func() {}
	}
	e := r.rt.Watch(func() {
		node.SetText(Stringify(src.Get()))
	})
	return e.Dispose
}

// BindAttr keeps attribute name of el in sync with src. A bool value
// toggles a presence attribute, nil removes it, anything else is set as
// its string form.
func BindAttr[T any](r *Renderer, el Node, name string, src signals.Readable[T]) (dispose func()) {
	if el == nil {
		r.logger.Error("cannot bind attribute on a nil node", "attribute", name)
		return func() {}
	}
	e := r.rt.Watch(func() {
		switch v := any(src.Get()).(type) {
		case bool:
			toggleAttribute(el, name, v)
			if name == "checked" || name == "selected" || name == "disabled" {
				el.SetProperty(name, v)
			}
		case nil:
			el.RemoveAttribute(name)
		default:
			s := Stringify(v)
			el.SetAttribute(name, s)
			if name == "value" {
				el.SetProperty(name, s)
			}
		}
	})
	return e.Dispose
}

// BindProperty links property prop of el and s both ways: the property is
// written on every change of s, and each event reads it back through parse.
// Values parse rejects are logged and dropped.
func BindProperty[T any](r *Renderer, el Node, prop, event string, s *signals.State[T], parse func(any) (T, error)) (dispose func()) {
	if el == nil {
		r.logger.Error("cannot bind property on a nil node", "property", prop)
		return func() {}
	}
	e := r.rt.Watch(func() {
		el.SetProperty(prop, s.Get())
	})
	remove := el.AddEventListener(event, r.Handler(event, func(Event) {
		v, err := parse(el.Property(prop))
		if err != nil {
			r.logger.Warn("dropping unparsable input", "property", prop, "error", err)
			return
		}
		s.Set(v)
	}))
	return func() {
		remove()
		e.Dispose()
	}
}

// Bind links an input's value to s, writing back on every input event.
func Bind(r *Renderer, el Node, s *signals.State[string]) (dispose func()) {
	return BindProperty(r, el, "value", "input", s, func(v any) (string, error) {
		return Stringify(v), nil
	})
}

// BindChecked links a checkbox's checked state to s, writing back on change.
func BindChecked(r *Renderer, el Node, s *signals.State[bool]) (dispose func()) {
	return BindProperty(r, el, "checked", "change", s, func(v any) (bool, error) {
		b, ok := v.(bool)
		if !ok {
			return false, fmt.Errorf("checked is %T, not bool", v)
		}
		return b, nil
	})
}

// EventFor picks the event a two-way binding of prop listens to.
func EventFor(prop string) string {
	switch prop {
	case "checked", "selected":
		return "change"
	}
	return "input"
}
