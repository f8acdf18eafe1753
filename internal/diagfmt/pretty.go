// Package diagfmt renders diagnostics for humans and for golden tests.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"quill/internal/diag"
	"quill/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	noteColor    = color.New(color.FgBlue)
	caretColor   = color.New(color.FgGreen, color.Bold)
)

// Pretty renders every diagnostic in the bag, one block per diagnostic:
//
//	<path>:<line>:<col>: <severity>[<CODE>]: <message>
//	    <source line>
//	    ^~~~
//	  note: <note message>
//
// Callers are expected to bag.Sort() first.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		prettyOne(w, &d, fs, opts)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	fmt.Fprintf(w, "%s: %s: %s\n",
		position(fs, d.Primary),
		severity(d.Severity, d.Code, opts.Color),
		d.Message)

	if opts.ShowSource {
		writeSourceLine(w, fs, d.Primary, opts)
	}
	if opts.ShowNotes {
		for _, n := range d.Notes {
			label := "note"
			if opts.Color {
				label = noteColor.Sprint(label)
			}
			fmt.Fprintf(w, "  %s: %s (%s)\n", label, n.Msg, position(fs, n.Span))
		}
	}
}

func position(fs *source.FileSet, span source.Span) string {
	if fs == nil {
		return span.String()
	}
	return fs.Position(span)
}

func severity(sev diag.Severity, code diag.Code, colored bool) string {
	var label string
	var c *color.Color
	switch sev {
	case diag.SevError:
		label, c = "error", errorColor
	case diag.SevWarning:
		label, c = "warning", warningColor
	default:
		label, c = "info", infoColor
	}
	out := fmt.Sprintf("%s[%s]", label, code.ID())
	if colored {
		return c.Sprint(out)
	}
	return out
}

// writeSourceLine prints the line containing the span start and underlines
// the span. The caret column is computed with display widths, so tabs and
// wide runes in the prefix do not skew the underline.
func writeSourceLine(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts) {
	if fs == nil || span.Empty() {
		return
	}
	start, end := fs.Resolve(span)
	file := fs.Get(span.File)
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}

	fmt.Fprintf(w, "    %s\n", line)

	prefixWidth := displayWidth(line, int(start.Col)-1)
	underline := int(end.Col) - int(start.Col)
	if end.Line != start.Line || underline < 1 {
		underline = 1
	}
	caret := "^" + strings.Repeat("~", underline-1)
	if opts.Color {
		caret = caretColor.Sprint(caret)
	}
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", prefixWidth), caret)
}

// displayWidth measures the on-screen width of the first n bytes of line.
func displayWidth(line string, n int) int {
	if n < 0 {
		n = 0
	}
	if n > len(line) {
		n = len(line)
	}
	width := 0
	for _, r := range line[:n] {
		if r == '\t' {
			width += 4
			continue
		}
		width += runewidth.RuneWidth(r)
	}
	return width
}
