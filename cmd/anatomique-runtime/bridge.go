//go:build js && wasm

package main

import (
	"fmt"
	"log/slog"
	"syscall/js"

	"github.com/vcrobe/anatomique/dom"
	"github.com/vcrobe/anatomique/signals"
)

// cell is the Go side of a $state or $derived object.
type cell struct {
	state   *signals.State[js.Value]
	derived *signals.Derived[js.Value]
}

func (c *cell) get() js.Value {
	if c.derived != nil {
		return c.derived.Get()
	}
	return c.state.Get()
}

// bridge exposes a Renderer to JavaScript.
type bridge struct {
	r      *dom.Renderer
	rt     *signals.Runtime
	life   *dom.Lifecycle
	logger *slog.Logger

	cells  map[int]*cell
	nextID int
	// finalizer releases cells whose JS object was collected.
	finalizer js.Value
}

func newBridge(r *dom.Renderer, life *dom.Lifecycle) *bridge {
	b := &bridge{
		r:      r,
		rt:     r.Runtime(),
		life:   life,
		logger: r.Logger(),
		cells:  make(map[int]*cell),
	}
	if ctor := js.Global().Get("FinalizationRegistry"); ctor.Truthy() {
		b.finalizer = ctor.New(js.FuncOf(func(_ js.Value, args []js.Value) any {
			if len(args) > 0 {
				b.release(args[0].Int())
			}
			return nil
		}))
	}
	return b
}

func (b *bridge) release(id int) {
	if c, ok := b.cells[id]; ok {
		if c.derived != nil {
			c.derived.Dispose()
		}
		delete(b.cells, id)
	}
}

// jsEqual is ===, so writing the same object or primitive notifies nobody.
func jsEqual(a, c js.Value) bool { return a.Equal(c) }

// call invokes a JS callback, logging what it throws instead of
// propagating it into the Go scheduler.
func (b *bridge) call(what string, fn js.Value, args ...any) (out js.Value) {
	defer func() {
		if rec := recover(); rec != nil {
			b.logger.Error("callback threw", "in", what, "error", fmt.Sprint(rec))
			out = js.Undefined()
		}
	}()
	return fn.Invoke(args...)
}

// disposer returns a one-shot JS function running fn.
func (b *bridge) disposer(fn func()) js.Func {
	var f js.Func
	f = js.FuncOf(func(js.Value, []js.Value) any {
		fn()
		f.Release()
		return nil
	})
	return f
}

func (b *bridge) exports() js.Value {
	obj := js.Global().Get("Object").New()
	for name, fn := range map[string]func([]js.Value) any{
		"$state":            b.state,
		"$derived":          b.derived,
		"$effect":           b.effect,
		"batch":             b.batch,
		"untrack":           b.untrack,
		"onMount":           b.onMount,
		"onDestroy":         b.onDestroy,
		"triggerMount":      func([]js.Value) any { b.life.TriggerMount(); return nil },
		"triggerDestroy":    func([]js.Value) any { b.life.TriggerDestroy(); return nil },
		"createElement":     b.createElement,
		"createTextNode":    b.createTextNode,
		"createFragment":    b.createFragment,
		"createPlaceholder": b.createPlaceholder,
		"bindText":          b.bindText,
		"bindAttr":          b.bindAttr,
		"bind":              b.bind,
		"ifBlock":           b.ifBlock,
		"each":              b.each,
	} {
		obj.Set(name, js.FuncOf(func(_ js.Value, args []js.Value) any { return fn(args) }))
	}
	return obj
}

func arg(args []js.Value, i int) js.Value {
	if i < len(args) {
		return args[i]
	}
	return js.Undefined()
}

// signalObject builds the { value } object scripts read and write.
func (b *bridge) signalObject(c *cell) js.Value {
	b.nextID++
	id := b.nextID
	b.cells[id] = c

	obj := js.Global().Get("Object").New()
	desc := js.Global().Get("Object").New()
	desc.Set("enumerable", true)
	desc.Set("get", js.FuncOf(func(js.Value, []js.Value) any { return c.get() }))
	desc.Set("set", js.FuncOf(func(_ js.Value, args []js.Value) any {
		if c.state == nil {
			b.logger.Error("derived values are read-only")
			return nil
		}
		c.state.Set(arg(args, 0))
		return nil
	}))
	js.Global().Get("Object").Call("defineProperty", obj, "value", desc)
	obj.Set("__cell", id)
	if c.derived != nil {
		obj.Set("dispose", b.disposer(c.derived.Dispose))
	}
	if b.finalizer.Truthy() {
		b.finalizer.Call("register", obj, id)
	}
	return obj
}

func (b *bridge) cellOf(v js.Value) *cell {
	if v.Type() != js.TypeObject {
		return nil
	}
	id := v.Get("__cell")
	if id.Type() != js.TypeNumber {
		return nil
	}
	return b.cells[id.Int()]
}

func (b *bridge) state(args []js.Value) any {
	return b.signalObject(&cell{state: signals.NewStateFunc(b.rt, arg(args, 0), jsEqual)})
}

func (b *bridge) derived(args []js.Value) any {
	fn := arg(args, 0)
	if fn.Type() != js.TypeFunction {
		b.logger.Error("$derived expects a function")
		return js.Undefined()
	}
	d := signals.NewDerivedFunc(b.rt, func() js.Value { return b.call("$derived", fn) }, jsEqual)
	return b.signalObject(&cell{derived: d})
}

func (b *bridge) effect(args []js.Value) any {
	fn := arg(args, 0)
	if fn.Type() != js.TypeFunction {
		b.logger.Error("$effect expects a function")
		return js.Undefined()
	}
	e := b.rt.Effect(func() func() {
		res := b.call("$effect", fn)
		if res.Type() != js.TypeFunction {
			return nil
		}
		return func() { b.call("$effect cleanup", res) }
	})
	return b.disposer(e.Dispose)
}

func (b *bridge) batch(args []js.Value) any {
	fn := arg(args, 0)
	b.rt.Batch(func() { b.call("batch", fn) })
	return nil
}

func (b *bridge) untrack(args []js.Value) any {
	var out js.Value
	b.rt.Untrack(func() { out = b.call("untrack", arg(args, 0)) })
	return out
}

func (b *bridge) onMount(args []js.Value) any {
	fn := arg(args, 0)
	b.life.OnMount(func() { b.call("onMount", fn) })
	return nil
}

func (b *bridge) onDestroy(args []js.Value) any {
	fn := arg(args, 0)
	b.life.OnDestroy(func() { b.call("onDestroy", fn) })
	return nil
}

func (b *bridge) createElement(args []js.Value) any {
	el := b.r.CreateElement(arg(args, 0).String(), attrs(arg(args, 1)), children(arg(args, 2))...)
	return dom.Value(el)
}

func (b *bridge) createTextNode(args []js.Value) any {
	return dom.Value(b.r.CreateTextNode(stringValue(arg(args, 0))))
}

func (b *bridge) createFragment(args []js.Value) any {
	return dom.Value(b.r.CreateFragment(children(arg(args, 0))...))
}

func (b *bridge) createPlaceholder(args []js.Value) any {
	return dom.Value(b.r.CreatePlaceholder(stringValue(arg(args, 0))))
}

// reader reads a signal-like object's value, or calls a thunk.
func reader(v js.Value) func() js.Value {
	if v.Type() == js.TypeFunction {
		return func() js.Value { return v.Invoke() }
	}
	return func() js.Value { return v.Get("value") }
}

func (b *bridge) bindText(args []js.Value) any {
	read := reader(arg(args, 1))
	dispose := dom.BindText(b.r, dom.Wrap(arg(args, 0)), signals.ReaderFunc[string](func() string {
		return stringValue(read())
	}))
	return b.disposer(dispose)
}

func (b *bridge) bindAttr(args []js.Value) any {
	read := reader(arg(args, 2))
	dispose := dom.BindAttr(b.r, dom.Wrap(arg(args, 0)), stringValue(arg(args, 1)), signals.ReaderFunc[any](func() any {
		return goValue(read())
	}))
	return b.disposer(dispose)
}

func (b *bridge) bind(args []js.Value) any {
	c := b.cellOf(arg(args, 1))
	if c == nil || c.state == nil {
		b.logger.Error("bind expects a $state value")
		return b.disposer(func() {})
	}
	prop := "value"
	if p := arg(args, 2); p.Type() == js.TypeString {
		prop = p.String()
	}
	dispose := dom.BindProperty(b.r, dom.Wrap(arg(args, 0)), prop, dom.EventFor(prop), c.state, func(v any) (js.Value, error) {
		if n, ok := v.(dom.Node); ok {
			return dom.Value(n), nil
		}
		return js.ValueOf(v), nil
	})
	return b.disposer(dispose)
}

// block adapts a construction function's { nodes, cleanups, mount } result.
func (b *bridge) block(what string, build js.Value) func() *dom.Block {
	if build.Type() != js.TypeFunction {
		return nil
	}
	return func() *dom.Block {
		return b.blockOf(b.call(what, build))
	}
}

func (b *bridge) blockOf(res js.Value) *dom.Block {
	if res.Type() != js.TypeObject {
		return nil
	}
	blk := &dom.Block{}
	nodes := res.Get("nodes")
	for i := 0; i < nodes.Length(); i++ {
		if n := dom.Wrap(nodes.Index(i)); n != nil {
			blk.Nodes = append(blk.Nodes, n)
		}
	}
	if mount := res.Get("mount"); mount.Type() == js.TypeFunction {
		blk.Mount = func(*dom.Block) { b.call("mount", mount) }
	}
	cleanups := res.Get("cleanups")
	blk.Defer(func() {
		for i := cleanups.Length() - 1; i >= 0; i-- {
			b.call("cleanup", cleanups.Index(i))
		}
	})
	return blk
}

func (b *bridge) ifBlock(args []js.Value) any {
	test := arg(args, 1)
	dispose := dom.If(b.r, dom.Wrap(arg(args, 0)),
		func() bool { return b.call("if", test).Truthy() },
		b.block("if", arg(args, 2)),
		b.block("else", arg(args, 3)),
	)
	return b.disposer(dispose)
}

func (b *bridge) each(args []js.Value) any {
	anchor := dom.Wrap(arg(args, 0))
	listFn, renderFn, keyFn := arg(args, 1), arg(args, 2), arg(args, 3)
	// The fifth argument is false when the item body never reads its index.
	indexed := arg(args, 4).Type() != js.TypeBoolean || arg(args, 4).Bool()

	list := func() []js.Value {
		v := b.call("each", listFn)
		if !isArray(v) {
			return nil
		}
		items := make([]js.Value, v.Length())
		for i := range items {
			items[i] = v.Index(i)
		}
		return items
	}
	render := func(item js.Value, i int) *dom.Block {
		return b.blockOf(b.call("each item", renderFn, item, i))
	}

	var dispose func()
	if keyFn.Type() == js.TypeFunction {
		key := func(item js.Value, i int) string { return keyOf(b.call("each key", keyFn, item, i)) }
		reuse := dom.SameItemAndIndex(jsEqual)
		if !indexed {
			reuse = dom.SameItem(jsEqual)
		}
		dispose = dom.EachKeyed(b.r, anchor, list, key, reuse, render)
	} else {
		dispose = dom.Each(b.r, anchor, list, render)
	}
	return b.disposer(dispose)
}
