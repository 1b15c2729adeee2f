package dom

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/vcrobe/anatomique/signals"
)

// Attrs are the attributes passed to CreateElement.
//
// Values are interpreted by key and type: "class"/"className" and "style"
// (a string or a map[string]string) are special-cased, "htmlFor" becomes
// "for", on* keys holding a func() or func(Event) become event listeners,
// bools set or omit a presence attribute, nil is skipped and anything else
// is stringified.
type Attrs map[string]any

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger overrides the logger, which defaults to the runtime's.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// Renderer builds and binds nodes of one Document against one reactive
// runtime.
type Renderer struct {
	doc    Document
	rt     *signals.Runtime
	logger *slog.Logger
}

// NewRenderer returns a Renderer for doc. A nil rt gets a fresh runtime.
func NewRenderer(doc Document, rt *signals.Runtime, opts ...Option) *Renderer {
	if rt == nil {
		rt = signals.NewRuntime()
	}
	r := &Renderer{doc: doc, rt: rt, logger: rt.Logger()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Document returns the document nodes are created in.
func (r *Renderer) Document() Document { return r.doc }

// Runtime returns the reactive runtime bindings run on.
func (r *Renderer) Runtime() *signals.Runtime { return r.rt }

// Logger returns the renderer's logger.
func (r *Renderer) Logger() *slog.Logger { return r.logger }

// CreateElement creates a tag element, applies attrs and appends the
// normalized children.
func (r *Renderer) CreateElement(tag string, attrs Attrs, children ...any) Node {
	el := r.doc.CreateElement(tag)
	for _, name := range slices.Sorted(maps.Keys(attrs)) {
		r.applyAttr(el, name, attrs[name])
	}
	r.appendChildren(el, children)
	return el
}

// CreateTextNode stringifies v into a text node. nil becomes "".
func (r *Renderer) CreateTextNode(v any) Node {
	return r.doc.CreateTextNode(Stringify(v))
}

// CreateFragment groups children for a single insertion.
func (r *Renderer) CreateFragment(children ...any) Node {
	f := r.doc.CreateFragment()
	r.appendChildren(f, children)
	return f
}

// CreatePlaceholder returns an inert comment node used as a block anchor.
func (r *Renderer) CreatePlaceholder(label string) Node {
	return r.doc.CreateComment(label)
}

func (r *Renderer) applyAttr(el Node, name string, value any) {
	if value == nil {
		return
	}
	if strings.HasPrefix(name, "on") && len(name) > 2 {
		event := strings.ToLower(name[2:])
		switch fn := value.(type) {
		case func(Event):
			el.AddEventListener(event, r.Handler(event, fn))
			return
		case func():
			el.AddEventListener(event, r.Handler(event, func(Event) { fn() }))
			return
		}
	}

	switch name {
	case "className":
		name = "class"
	case "htmlFor":
		name = "for"
	case "style":
		if m, ok := value.(map[string]string); ok {
			el.SetAttribute("style", styleString(m))
			return
		}
	}

	switch v := value.(type) {
	case bool:
		toggleAttribute(el, name, v)
	case string:
		el.SetAttribute(name, v)
	case func(), func(Event):
		r.logger.Warn("function value for non-event attribute ignored", "attribute", name)
	default:
		el.SetAttribute(name, Stringify(v))
	}
}

func styleString(m map[string]string) string {
	var b strings.Builder
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s: %s;", k, m[k])
	}
	return b.String()
}

func toggleAttribute(el Node, name string, on bool) {
	if on {
		el.SetAttribute(name, "")
	} else {
		el.RemoveAttribute(name)
	}
}

// appendChildren flattens nested slices, turns strings and numbers into
// text nodes and skips nil and false. Other values are logged and skipped.
func (r *Renderer) appendChildren(parent Node, children []any) {
	for _, child := range children {
		switch c := child.(type) {
		case nil:
		case Node:
			parent.AppendChild(c)
		case []Node:
			for _, n := range c {
				if n != nil {
					parent.AppendChild(n)
				}
			}
		case []any:
			r.appendChildren(parent, c)
		case string:
			parent.AppendChild(r.doc.CreateTextNode(c))
		case bool:
			if c {
				parent.AppendChild(r.doc.CreateTextNode("true"))
			}
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
			parent.AppendChild(r.doc.CreateTextNode(Stringify(c)))
		case fmt.Stringer:
			parent.AppendChild(r.doc.CreateTextNode(c.String()))
		default:
			r.logger.Warn("skipping unsupported child", "type", fmt.Sprintf("%T", child))
		}
	}
}

// Stringify renders v the way text nodes and attributes display it.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

// Handler wraps fn so a panicking event handler is logged and swallowed.
func (r *Renderer) Handler(event string, fn func(Event)) func(Event) {
	return func(e Event) {
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error("recovered panic in event handler", "event", event, "panic", fmt.Sprint(rec))
			}
		}()
		fn(e)
	}
}

// Listen attaches a wrapped handler to el. A nil el is logged and ignored.
func (r *Renderer) Listen(el Node, event string, fn func(Event)) (remove func()) {
	if el == nil {
		r.logger.Error("cannot attach listener to a nil node", "event", event)
		return func() {}
	}
	return el.AddEventListener(event, r.Handler(event, fn))
}
