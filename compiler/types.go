package compiler

// Standard HTML boolean attributes
var standardBooleanAttrs = map[string]bool{
	"disabled":       true,
	"checked":        true,
	"readonly":       true,
	"required":       true,
	"autofocus":      true,
	"autoplay":       true,
	"controls":       true,
	"loop":           true,
	"muted":          true,
	"selected":       true,
	"hidden":         true,
	"multiple":       true,
	"novalidate":     true,
	"open":           true,
	"reversed":       true,
	"default":        true,
	"ismap":          true,
	"inert":          true,
	"formnovalidate": true,
}

// knownElements are the element names offered as "did you mean" suggestions.
var knownElements = []string{
	"a", "abbr", "address", "article", "aside", "audio", "b", "blockquote", "body", "br",
	"button", "canvas", "caption", "code", "col", "colgroup", "data", "datalist", "dd",
	"del", "details", "dialog", "div", "dl", "dt", "em", "embed", "fieldset", "figcaption",
	"figure", "footer", "form", "h1", "h2", "h3", "h4", "h5", "h6", "header", "hr", "i",
	"iframe", "img", "input", "ins", "kbd", "label", "legend", "li", "main", "mark", "menu",
	"meter", "nav", "ol", "optgroup", "option", "output", "p", "picture", "pre", "progress",
	"q", "s", "samp", "section", "select", "slot", "small", "source", "span", "strong",
	"sub", "summary", "sup", "table", "tbody", "td", "template", "textarea", "tfoot", "th",
	"thead", "time", "tr", "track", "u", "ul", "var", "video", "wbr",
	"svg", "path", "circle", "rect", "line", "polyline", "polygon", "g", "text", "defs", "use",
}
