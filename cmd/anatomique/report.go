package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/vcrobe/anatomique/compiler"
)

// contextSize is how many lines around a diagnostic are shown.
const contextSize = 2

// printer writes diagnostics and progress, styled when w is a terminal.
type printer struct {
	w io.Writer

	errStyle, warnStyle, okStyle, faint, path lipgloss.Style
}

func newPrinter(f *os.File) *printer {
	plain := lipgloss.NewStyle()
	p := &printer{w: f, errStyle: plain, warnStyle: plain, okStyle: plain, faint: plain, path: plain}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return p
	}
	r := lipgloss.NewRenderer(f)
	p.errStyle = r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	p.warnStyle = r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	p.okStyle = r.NewStyle().Foreground(lipgloss.Color("10"))
	p.faint = r.NewStyle().Faint(true)
	p.path = r.NewStyle().Bold(true)
	return p
}

// diagnostics prints one file's diagnostics, with source context when the
// input carried its source text.
func (p *printer) diagnostics(path, source string, diags []compiler.Diagnostic) {
	for _, d := range diags {
		label := p.warnStyle.Render("warning")
		if d.Level == compiler.LevelError {
			label = p.errStyle.Render("error")
		}
		pos := path
		line, col := 0, 0
		if d.Location != nil {
			line, col = d.Location.Line, d.Location.Column
			pos = fmt.Sprintf("%s:%d:%d", path, line, col)
		}
		fmt.Fprintf(p.w, "%s: %s: %s\n", p.path.Render(pos), label, d.Message)
		if ctx := compiler.ContextLines(source, line, col, contextSize); ctx != "" {
			fmt.Fprint(p.w, p.faint.Render(strings.TrimRight(ctx, "\n")), "\n")
		}
	}
}

func (p *printer) success(format string, args ...any) {
	fmt.Fprintln(p.w, p.okStyle.Render(fmt.Sprintf(format, args...)))
}

func (p *printer) failure(format string, args ...any) {
	fmt.Fprintln(p.w, p.errStyle.Render(fmt.Sprintf(format, args...)))
}
