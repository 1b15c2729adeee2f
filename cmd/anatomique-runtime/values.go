//go:build js && wasm

package main

import (
	"strings"
	"syscall/js"

	"github.com/vcrobe/anatomique/dom"
)

// goValue converts primitives to Go and wraps nodes; anything else stays a
// js.Value.
func goValue(v js.Value) any {
	switch v.Type() {
	case js.TypeNull, js.TypeUndefined:
		return nil
	case js.TypeString:
		return v.String()
	case js.TypeNumber:
		return v.Float()
	case js.TypeBoolean:
		return v.Bool()
	}
	if dom.IsNode(v) {
		return dom.Wrap(v)
	}
	return v
}

// stringValue renders v as JavaScript's String(v) would for text content.
func stringValue(v js.Value) string {
	switch v.Type() {
	case js.TypeNull, js.TypeUndefined:
		return ""
	case js.TypeString:
		return v.String()
	}
	return js.Global().Call("String", v).String()
}

func isArray(v js.Value) bool {
	return js.Global().Get("Array").Call("isArray", v).Bool()
}

// children converts a children argument: arrays are flattened by the
// renderer, nodes wrapped, primitives converted.
func children(v js.Value) []any {
	if !isArray(v) {
		return []any{child(v)}
	}
	out := make([]any, v.Length())
	for i := range out {
		out[i] = child(v.Index(i))
	}
	return out
}

func child(v js.Value) any {
	if isArray(v) {
		return children(v)
	}
	switch v.Type() {
	case js.TypeBoolean:
		if !v.Bool() {
			return nil
		}
		return "true"
	case js.TypeObject:
		if !dom.IsNode(v) {
			return stringValue(v)
		}
	}
	return goValue(v)
}

// attrs converts an attribute object. Function values under on* keys
// become listeners receiving the native event; style objects become maps.
func attrs(v js.Value) dom.Attrs {
	if v.Type() != js.TypeObject {
		return nil
	}
	keys := js.Global().Get("Object").Call("keys", v)
	out := make(dom.Attrs, keys.Length())
	for i := 0; i < keys.Length(); i++ {
		key := keys.Index(i).String()
		val := v.Get(key)
		switch {
		case val.Type() == js.TypeFunction && strings.HasPrefix(key, "on"):
			fn := val
			out[key] = func(e dom.Event) {
				if native, ok := e.Native.(js.Value); ok {
					fn.Invoke(native)
					return
				}
				fn.Invoke()
			}
		case key == "style" && val.Type() == js.TypeObject:
			out[key] = styleMap(val)
		default:
			out[key] = goValue(val)
		}
	}
	return out
}

func styleMap(v js.Value) map[string]string {
	keys := js.Global().Get("Object").Call("keys", v)
	m := make(map[string]string, keys.Length())
	for i := 0; i < keys.Length(); i++ {
		k := keys.Index(i).String()
		m[cssProperty(k)] = stringValue(v.Get(k))
	}
	return m
}

// cssProperty turns backgroundColor into background-color.
func cssProperty(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// keyOf turns a key function result into a map key. Primitives of
// different types stay distinct; objects compare by their string form.
func keyOf(v js.Value) string {
	return v.Type().String() + ":" + stringValue(v)
}
