// Package events is the registry of DOM event names the compiler accepts on
// event handler attributes.
package events

import (
	"sort"
	"strings"

	"github.com/vcrobe/anatomique/internal/fuzzy"
)

// Category groups events by the interface the browser dispatches them with.
type Category string

const (
	Mouse     Category = "MouseEvent"
	Keyboard  Category = "KeyboardEvent"
	Focus     Category = "FocusEvent"
	Input     Category = "InputEvent"
	Form      Category = "Event"
	Pointer   Category = "PointerEvent"
	Touch     Category = "TouchEvent"
	Drag      Category = "DragEvent"
	Wheel     Category = "WheelEvent"
	Clipboard Category = "ClipboardEvent"
	Media     Category = "Event"
	Animation Category = "AnimationEvent"
	UI        Category = "UIEvent"
)

var registry = map[string]Category{
	"click": Mouse, "dblclick": Mouse, "contextmenu": Mouse, "auxclick": Mouse,
	"mousedown": Mouse, "mouseup": Mouse, "mousemove": Mouse,
	"mouseenter": Mouse, "mouseleave": Mouse, "mouseover": Mouse, "mouseout": Mouse,

	"keydown": Keyboard, "keyup": Keyboard, "keypress": Keyboard,

	"focus": Focus, "blur": Focus, "focusin": Focus, "focusout": Focus,

	"input": Input, "beforeinput": Input,

	"change": Form, "submit": Form, "reset": Form, "invalid": Form, "select": Form,

	"pointerdown": Pointer, "pointerup": Pointer, "pointermove": Pointer,
	"pointerenter": Pointer, "pointerleave": Pointer, "pointercancel": Pointer,

	"touchstart": Touch, "touchend": Touch, "touchmove": Touch, "touchcancel": Touch,

	"drag": Drag, "dragstart": Drag, "dragend": Drag, "dragenter": Drag,
	"dragleave": Drag, "dragover": Drag, "drop": Drag,

	"wheel": Wheel,

	"copy": Clipboard, "cut": Clipboard, "paste": Clipboard,

	"play": Media, "pause": Media, "ended": Media, "load": Media, "error": Media,
	"loadeddata": Media, "timeupdate": Media, "volumechange": Media,

	"animationstart": Animation, "animationend": Animation, "transitionend": Animation,

	"scroll": UI, "resize": UI,
}

// Known reports whether name is a registered DOM event.
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}

// CategoryOf returns the event interface for name.
func CategoryOf(name string) (Category, bool) {
	c, ok := registry[name]
	return c, ok
}

// Normalize strips handler attribute prefixes: "@click", "on:click" and
// "onclick" all become "click". An "on" prefix is only stripped when what
// remains is a known event, so "online" stays as is.
func Normalize(attr string) string {
	name := strings.ToLower(strings.TrimSpace(attr))
	name = strings.TrimPrefix(name, "@")
	name = strings.TrimPrefix(name, "on:")
	if rest, ok := strings.CutPrefix(name, "on"); ok && Known(rest) {
		return rest
	}
	return name
}

// Suggest returns up to three registered names close to name.
func Suggest(name string) []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return fuzzy.Closest(name, names, 2, 3)
}
