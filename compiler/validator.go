package compiler

import (
	"strings"
	"unicode"

	"golang.org/x/net/html/atom"

	"github.com/vcrobe/anatomique/internal/fuzzy"
)

var knownElementSet = func() map[string]bool {
	m := make(map[string]bool, len(knownElements))
	for _, name := range knownElements {
		m[name] = true
	}
	return m
}()

// isBooleanAttribute checks if an attribute name is a standard HTML boolean attribute.
func isBooleanAttribute(attrName string) bool {
	return standardBooleanAttrs[strings.ToLower(attrName)]
}

// validateTagName warns about lowercase tag names that are neither HTML
// elements nor custom elements, suggesting the closest known names.
func validateTagName(rep *Reporter, el *Element) {
	name := el.Name
	if strings.Contains(name, "-") {
		return
	}
	first := []rune(name)[0]
	if unicode.IsUpper(first) {
		rep.Warnf(el.Loc(), "<%s> looks like a component reference; component composition is not supported, it is emitted as a plain element", name)
		return
	}
	if knownElementSet[name] || atom.Lookup([]byte(name)) != 0 {
		return
	}

	similar := fuzzy.Closest(name, knownElements, 2, 3)
	if len(similar) == 0 {
		rep.Warnf(el.Loc(), "unknown element <%s>", name)
		return
	}
	rep.Warnf(el.Loc(), "unknown element <%s>; did you mean <%s>?", name, strings.Join(similar, ">, <"))
}
