//go:build js && wasm

package dom

import (
	"strings"
	"syscall/js"
)

// BrowserDocument is the global document of the page.
type BrowserDocument struct {
	doc js.Value
}

var _ Document = (*BrowserDocument)(nil)

// NewBrowserDocument wraps globalThis.document.
func NewBrowserDocument() *BrowserDocument {
	return &BrowserDocument{doc: js.Global().Get("document")}
}

func (d *BrowserDocument) CreateElement(tag string) Node {
	return Wrap(d.doc.Call("createElement", tag))
}

func (d *BrowserDocument) CreateTextNode(data string) Node {
	return Wrap(d.doc.Call("createTextNode", data))
}

func (d *BrowserDocument) CreateComment(data string) Node {
	return Wrap(d.doc.Call("createComment", data))
}

func (d *BrowserDocument) CreateFragment() Node {
	return Wrap(d.doc.Call("createDocumentFragment"))
}

// QuerySelector returns the first element matching selector, or nil.
func (d *BrowserDocument) QuerySelector(selector string) Node {
	return Wrap(d.doc.Call("querySelector", selector))
}

// jsNode wraps a browser node. Wrappers are not canonical: two jsNodes may
// wrap the same node.
type jsNode struct {
	v js.Value
}

// Wrap returns v as a Node, or nil for null and undefined.
func Wrap(v js.Value) Node {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return &jsNode{v: v}
}

// Value returns the browser node behind n, or undefined if n was not
// created by this backend.
func Value(n Node) js.Value {
	if j, ok := n.(*jsNode); ok {
		return j.v
	}
	return js.Undefined()
}

// IsNode reports whether v is a browser Node.
func IsNode(v js.Value) bool {
	ctor := js.Global().Get("Node")
	return v.Type() == js.TypeObject && ctor.Truthy() && v.InstanceOf(ctor)
}

func (n *jsNode) Type() NodeType {
	switch n.v.Get("nodeType").Int() {
	case 1:
		return ElementNode
	case 3:
		return TextNode
	case 8:
		return CommentNode
	case 11:
		return FragmentNode
	}
	return 0
}

func (n *jsNode) Name() string {
	if n.Type() != ElementNode {
		return ""
	}
	return strings.ToLower(n.v.Get("tagName").String())
}

func (n *jsNode) Parent() Node      { return Wrap(n.v.Get("parentNode")) }
func (n *jsNode) NextSibling() Node { return Wrap(n.v.Get("nextSibling")) }

func (n *jsNode) ChildNodes() []Node {
	list := n.v.Get("childNodes")
	out := make([]Node, list.Length())
	for i := range out {
		out[i] = Wrap(list.Index(i))
	}
	return out
}

func (n *jsNode) AppendChild(child Node) {
	n.v.Call("appendChild", Value(child))
}

func (n *jsNode) InsertBefore(child, ref Node) {
	r := js.Null()
	if ref != nil {
		r = Value(ref)
	}
	n.v.Call("insertBefore", Value(child), r)
}

func (n *jsNode) Remove() {
	if p := n.v.Get("parentNode"); !p.IsNull() && !p.IsUndefined() {
		p.Call("removeChild", n.v)
	}
}

func (n *jsNode) IsSameNode(other Node) bool {
	return other != nil && n.v.Equal(Value(other))
}

func (n *jsNode) Text() string     { return n.v.Get("textContent").String() }
func (n *jsNode) SetText(s string) { n.v.Set("textContent", s) }

func (n *jsNode) Attribute(name string) (string, bool) {
	v := n.v.Call("getAttribute", name)
	if v.IsNull() {
		return "", false
	}
	return v.String(), true
}

func (n *jsNode) SetAttribute(name, value string) { n.v.Call("setAttribute", name, value) }
func (n *jsNode) RemoveAttribute(name string)     { n.v.Call("removeAttribute", name) }

// Property converts strings, numbers and bools to Go values; anything else
// is returned as a js.Value.
func (n *jsNode) Property(name string) any {
	v := n.v.Get(name)
	switch v.Type() {
	case js.TypeString:
		return v.String()
	case js.TypeNumber:
		return v.Float()
	case js.TypeBoolean:
		return v.Bool()
	case js.TypeNull, js.TypeUndefined:
		return nil
	}
	return v
}

func (n *jsNode) SetProperty(name string, value any) {
	if j, ok := value.(*jsNode); ok {
		value = j.v
	}
	n.v.Set(name, value)
}

func (n *jsNode) AddEventListener(event string, fn func(Event)) (remove func()) {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		e := Event{Type: event, Target: n}
		if len(args) > 0 {
			e.Native = args[0]
			e.Target = Wrap(args[0].Get("target"))
		}
		fn(e)
		return nil
	})
	n.v.Call("addEventListener", event, cb)
	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		n.v.Call("removeEventListener", event, cb)
		cb.Release()
	}
}
