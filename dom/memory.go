package dom

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MemoryDocument is an in-process Document. Nodes it creates are *MemoryNode.
type MemoryDocument struct{}

var _ Document = (*MemoryDocument)(nil)

// NewMemoryDocument returns an empty document.
func NewMemoryDocument() *MemoryDocument { return &MemoryDocument{} }

func (d *MemoryDocument) CreateElement(tag string) Node {
	return &MemoryNode{typ: ElementNode, name: strings.ToLower(tag)}
}

func (d *MemoryDocument) CreateTextNode(data string) Node {
	return &MemoryNode{typ: TextNode, data: data}
}

func (d *MemoryDocument) CreateComment(data string) Node {
	return &MemoryNode{typ: CommentNode, data: data}
}

func (d *MemoryDocument) CreateFragment() Node {
	return &MemoryNode{typ: FragmentNode}
}

type memAttr struct {
	name, value string
}

type memListener struct {
	event string
	fn    func(Event)
}

// MemoryNode is a Node held entirely in Go memory.
type MemoryNode struct {
	typ       NodeType
	name      string
	data      string
	parent    *MemoryNode
	children  []*MemoryNode
	attrs     []memAttr
	props     map[string]any
	listeners []*memListener
}

var _ Node = (*MemoryNode)(nil)

func (n *MemoryNode) Type() NodeType { return n.typ }
func (n *MemoryNode) Name() string   { return n.name }

func (n *MemoryNode) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *MemoryNode) ChildNodes() []Node {
	out := make([]Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *MemoryNode) NextSibling() Node {
	if n.parent == nil {
		return nil
	}
	i := n.parent.indexOf(n)
	if i < 0 || i+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[i+1]
}

func (n *MemoryNode) indexOf(child *MemoryNode) int {
	return slices.Index(n.children, child)
}

func (n *MemoryNode) AppendChild(child Node) {
	n.InsertBefore(child, nil)
}

func (n *MemoryNode) InsertBefore(child, ref Node) {
	c := mustMemory(child)
	var r *MemoryNode
	if ref != nil {
		r = mustMemory(ref)
	}
	if r == c {
		r = nil
		if next := c.NextSibling(); next != nil {
			r = next.(*MemoryNode)
		}
	}
	if r != nil && r.parent != n {
		panic("dom: InsertBefore reference node is not a child of this node")
	}

	moved := []*MemoryNode{c}
	if c.typ == FragmentNode {
		moved = slices.Clone(c.children)
	}
	for _, m := range moved {
		m.Remove()
		at := len(n.children)
		if r != nil {
			at = n.indexOf(r)
		}
		n.children = slices.Insert(n.children, at, m)
		m.parent = n
	}
}

func (n *MemoryNode) Remove() {
	if n.parent == nil {
		return
	}
	p := n.parent
	if i := p.indexOf(n); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	n.parent = nil
}

func (n *MemoryNode) IsSameNode(other Node) bool {
	m, ok := other.(*MemoryNode)
	return ok && m == n
}

func (n *MemoryNode) Text() string {
	switch n.typ {
	case TextNode, CommentNode:
		return n.data
	}
	var b strings.Builder
	for _, c := range n.children {
		if c.typ != CommentNode {
			b.WriteString(c.Text())
		}
	}
	return b.String()
}

func (n *MemoryNode) SetText(s string) {
	switch n.typ {
	case TextNode, CommentNode:
		n.data = s
		return
	}
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
	if s != "" {
		n.AppendChild(&MemoryNode{typ: TextNode, data: s})
	}
}

func (n *MemoryNode) Attribute(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.name == name {
			return a.value, true
		}
	}
	return "", false
}

func (n *MemoryNode) SetAttribute(name, value string) {
	for i, a := range n.attrs {
		if a.name == name {
			n.attrs[i].value = value
			return
		}
	}
	n.attrs = append(n.attrs, memAttr{name: name, value: value})
}

func (n *MemoryNode) RemoveAttribute(name string) {
	n.attrs = slices.DeleteFunc(n.attrs, func(a memAttr) bool { return a.name == name })
}

// Property falls back to the attribute of the same name, as the browser
// does for value and checked before the user interacts.
func (n *MemoryNode) Property(name string) any {
	if v, ok := n.props[name]; ok {
		return v
	}
	if v, ok := n.Attribute(name); ok {
		if name == "checked" {
			return true
		}
		return v
	}
	if name == "checked" {
		return false
	}
	if name == "value" {
		return ""
	}
	return nil
}

func (n *MemoryNode) SetProperty(name string, value any) {
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[name] = value
}

func (n *MemoryNode) AddEventListener(event string, fn func(Event)) (remove func()) {
	l := &memListener{event: event, fn: fn}
	n.listeners = append(n.listeners, l)
	return func() {
		n.listeners = slices.DeleteFunc(n.listeners, func(x *memListener) bool { return x == l })
	}
}

// Listeners returns how many listeners for event are registered.
func (n *MemoryNode) Listeners(event string) int {
	count := 0
	for _, l := range n.listeners {
		if l.event == event {
			count++
		}
	}
	return count
}

// Dispatch calls every listener for event on n, in registration order.
// There is no bubbling.
func (n *MemoryNode) Dispatch(event string) {
	for _, l := range slices.Clone(n.listeners) {
		if l.event == event {
			l.fn(Event{Type: event, Target: n})
		}
	}
}

func mustMemory(n Node) *MemoryNode {
	m, ok := n.(*MemoryNode)
	if !ok {
		panic(fmt.Sprintf("dom: %T is not a MemoryNode", n))
	}
	return m
}

// OuterHTML serializes n and its subtree. Fragments serialize their children.
func OuterHTML(n Node) string {
	var buf bytes.Buffer
	m := mustMemory(n)
	if m.typ == FragmentNode {
		for _, c := range m.children {
			_ = html.Render(&buf, c.htmlNode())
		}
		return buf.String()
	}
	_ = html.Render(&buf, m.htmlNode())
	return buf.String()
}

// InnerHTML serializes n's children.
func InnerHTML(n Node) string {
	var b strings.Builder
	for _, c := range n.ChildNodes() {
		b.WriteString(OuterHTML(c))
	}
	return b.String()
}

func (n *MemoryNode) htmlNode() *html.Node {
	switch n.typ {
	case TextNode:
		return &html.Node{Type: html.TextNode, Data: n.data}
	case CommentNode:
		return &html.Node{Type: html.CommentNode, Data: n.data}
	}
	h := &html.Node{Type: html.ElementNode, Data: n.name, DataAtom: atom.Lookup([]byte(n.name))}
	for _, a := range n.attrs {
		h.Attr = append(h.Attr, html.Attribute{Key: a.name, Val: a.value})
	}
	for _, c := range n.children {
		h.AppendChild(c.htmlNode())
	}
	return h
}
