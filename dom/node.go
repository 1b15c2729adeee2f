// Package dom holds the DOM runtime helpers generated components drive:
// element construction, reactive text and attribute bindings, two-way
// bindings, conditional and list blocks, and lifecycle hooks.
//
// Everything here works against the Node and Document interfaces. The js/wasm
// build wraps the browser document; MemoryDocument is a complete in-process
// implementation used by tests and for rendering static snapshots.
package dom

// NodeType classifies a Node.
type NodeType int

const (
	ElementNode NodeType = iota + 1
	TextNode
	CommentNode
	FragmentNode
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	case FragmentNode:
		return "fragment"
	}
	return "unknown"
}

// Event is what listeners receive. Native holds the backend's own event
// object (a js.Value in the browser, nil in memory).
type Event struct {
	Type   string
	Target Node
	Native any
}

// Node is the subset of the DOM node API the helpers need.
type Node interface {
	Type() NodeType
	// Name is the lowercase tag name of an element, "" otherwise.
	Name() string

	Parent() Node
	ChildNodes() []Node
	NextSibling() Node
	// AppendChild moves child under this node. Appending a fragment moves
	// the fragment's children instead and leaves it empty.
	AppendChild(child Node)
	// InsertBefore inserts child before ref, which must be a child of this
	// node. A nil ref appends.
	InsertBefore(child, ref Node)
	// Remove detaches the node from its parent, if any.
	Remove()
	// IsSameNode reports node identity; wrappers may not be canonical.
	IsSameNode(other Node) bool

	// Text is the text content; SetText on an element replaces its children.
	Text() string
	SetText(s string)

	Attribute(name string) (string, bool)
	SetAttribute(name, value string)
	RemoveAttribute(name string)

	Property(name string) any
	SetProperty(name string, value any)

	// AddEventListener registers fn and returns a func that removes it.
	AddEventListener(event string, fn func(Event)) (remove func())
}

// Document creates nodes.
type Document interface {
	CreateElement(tag string) Node
	CreateTextNode(data string) Node
	CreateComment(data string) Node
	CreateFragment() Node
}
