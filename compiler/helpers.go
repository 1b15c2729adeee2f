package compiler

import (
	"fmt"
	"strings"
)

// SourceLine returns the source line at the given line number (1-indexed).
func SourceLine(source string, lineNum int) string {
	lines := strings.Split(source, "\n")
	if lineNum > 0 && lineNum <= len(lines) {
		return lines[lineNum-1]
	}
	return ""
}

// ContextLines returns a formatted excerpt with contextSize lines before and
// after lineNumber, marking the line itself. Column, when positive, places a
// caret under the offending character.
func ContextLines(source string, lineNumber, column, contextSize int) string {
	if source == "" || lineNumber <= 0 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNumber > len(lines) {
		return ""
	}

	// Calculate the range of lines to show
	startLine := max(lineNumber-contextSize-1, 0) // -1 for 0-based indexing
	endLine := min(lineNumber+contextSize, len(lines))

	var result strings.Builder
	for i := startLine; i < endLine; i++ {
		lineNum := i + 1
		prefix := "  "

		// Highlight the error line with a marker
		if lineNum == lineNumber {
			prefix = "> "
		}

		fmt.Fprintf(&result, "%s%4d | %s\n", prefix, lineNum, lines[i])
		if lineNum == lineNumber && column > 0 {
			fmt.Fprintf(&result, "       | %s^\n", strings.Repeat(" ", column-1))
		}
	}

	return result.String()
}

// objectKey prints key as an object literal key, quoting when needed.
func objectKey(key string) string {
	if isIdentifierName(key) {
		return key
	}
	return quoteJS(key)
}

func isIdentifierName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == '$':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// indentLines prefixes every non-empty line of s with depth indent units.
func indentLines(s string, depth int) string {
	if depth <= 0 || s == "" {
		return s
	}
	prefix := strings.Repeat(indentUnit, depth)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

var templateEscaper = strings.NewReplacer("\\", "\\\\", "`", "\\`", "${", "\\${")

func escapeTemplate(s string) string { return templateEscaper.Replace(s) }
