// Package render formats diagnostics for terminals, in the style of
//
//	error[E1007]: unclosed list
//	  --> file.lat:1:1
//	   |
//	 1 | [1, 2
//	   | ^^^^^ list starts here
//	   |
//	   = hint: Try adding the closing "]" here
package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/risor-io/lattice/errors"
	"github.com/risor-io/lattice/token"
)

// Formatter formats diagnostics with optional ANSI colors.
type Formatter struct {
	// UseColor enables ANSI color codes in output.
	UseColor bool
}

// NewFormatter creates a new diagnostic formatter.
func NewFormatter(useColor bool) *Formatter {
	return &Formatter{UseColor: useColor}
}

func forced(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

// Colors used for diagnostic formatting
var (
	colorError     = forced(color.FgRed)
	colorErrorBold = forced(color.FgHiRed, color.Bold)
	colorCode      = forced(color.FgHiBlack)
	colorLocation  = forced(color.FgCyan)
	colorGutter    = forced(color.FgHiBlack)
	colorCaret     = forced(color.FgHiRed, color.Bold)
	colorHint      = forced(color.FgHiYellow)
	colorNote      = forced(color.FgHiBlue)
)

func (f *Formatter) paint(c *color.Color, s string) string {
	if !f.UseColor || s == "" {
		return s
	}
	return c.Sprint(s)
}

// Format renders d against the text it was raised for.
func (f *Formatter) Format(d *errors.Diagnostic, text string) string {
	var b strings.Builder
	lines := strings.Split(text, "\n")
	width := gutterWidth(d, text)
	pad := strings.Repeat(" ", width)

	f.writeHeader(&b, d)
	f.writeLocation(&b, d, pad)

	if len(d.Annotations) > 0 {
		b.WriteString(f.paint(colorGutter, pad+" |") + "\n")
	}
	for _, a := range d.Annotations {
		if a.Title == errors.TitleHint {
			continue
		}
		caret := colorCaret
		if a.Title == errors.TitleNote {
			caret = colorNote
		}
		f.writeSnippet(&b, text, lines, a.Span, a.Label, caret, width)
	}
	for _, a := range d.Annotations {
		if a.Title != errors.TitleHint {
			continue
		}
		b.WriteString(f.paint(colorGutter, pad+" |") + "\n")
		b.WriteString(f.paint(colorGutter, pad+" = ") + f.paint(colorHint, "hint: ") + a.Suggestion + "\n")
		f.writeSnippet(&b, text, lines, a.Span, "", colorHint, width)
	}
	return b.String()
}

// FormatMultiple formats diagnostics one after another, followed by a
// count of each error code when there is more than one. texts holds the
// source text of each diagnostic.
func (f *Formatter) FormatMultiple(ds []*errors.Diagnostic, texts []string) string {
	var b strings.Builder
	for i, d := range ds {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(f.Format(d, texts[i]))
	}
	if len(ds) > 1 {
		f.writeSummary(&b, ds)
	}
	return b.String()
}

func (f *Formatter) writeSummary(b *strings.Builder, ds []*errors.Diagnostic) {
	counts := map[errors.ErrorCode]int{}
	var codes []errors.ErrorCode
	for _, d := range ds {
		if counts[d.Code] == 0 {
			codes = append(codes, d.Code)
		}
		counts[d.Code]++
	}
	b.WriteString("\n")
	b.WriteString(f.paint(colorErrorBold, fmt.Sprintf("%d diagnostics", len(ds))) + "\n")
	for _, code := range codes {
		fmt.Fprintf(b, "  %s %s: %d\n", f.paint(colorCode, fmt.Sprintf("[%s]", code)), code.Description(), counts[code])
	}
}

func (f *Formatter) writeHeader(b *strings.Builder, d *errors.Diagnostic) {
	label := "error"
	if d.Kind != errors.ErrSyntax {
		label = d.Kind.String()
	}
	b.WriteString(f.paint(colorErrorBold, label))
	if d.Code != "" {
		b.WriteString(f.paint(colorCode, fmt.Sprintf("[%s]", d.Code)))
	}
	b.WriteString(f.paint(colorError, ": "))
	b.WriteString(d.Message)
	b.WriteString("\n")
}

func (f *Formatter) writeLocation(b *strings.Builder, d *errors.Diagnostic, pad string) {
	if d.Location.IsZero() && d.Source == "" {
		return
	}
	loc := d.Source
	if !d.Location.IsZero() {
		loc = d.Location.String()
	}
	b.WriteString(f.paint(colorGutter, pad))
	b.WriteString(f.paint(colorLocation, "-->"))
	b.WriteString(" ")
	b.WriteString(f.paint(colorLocation, loc))
	b.WriteString("\n")
}

// writeSnippet prints the lines covered by span with carets under the
// covered columns. An empty span gets a single caret.
func (f *Formatter) writeSnippet(b *strings.Builder, text string, lines []string, span token.Span, label string, caret *color.Color, width int) {
	start := errors.Locate("", text, span.Start)
	end := start
	if !span.IsEmpty() {
		end = errors.Locate("", text, span.End-1)
	}
	pad := strings.Repeat(" ", width)
	for ln := start.Line; ln <= end.Line && ln <= len(lines); ln++ {
		src := strings.TrimSuffix(lines[ln-1], "\r")
		from, to := 1, utf8.RuneCountInString(src)
		if ln == start.Line {
			from = start.Column
		}
		if ln == end.Line {
			to = end.Column
		}
		if to < from {
			to = from
		}

		b.WriteString(f.paint(colorGutter, fmt.Sprintf("%*d | ", width, ln)))
		b.WriteString(src)
		b.WriteString("\n")

		b.WriteString(f.paint(colorGutter, pad+" | "))
		b.WriteString(strings.Repeat(" ", from-1))
		b.WriteString(f.paint(caret, strings.Repeat("^", to-from+1)))
		if ln == end.Line && label != "" {
			b.WriteString(" ")
			b.WriteString(f.paint(caret, label))
		}
		b.WriteString("\n")
	}
}

// gutterWidth returns the width of the widest line number printed for d,
// at least 2.
func gutterWidth(d *errors.Diagnostic, text string) int {
	width := 2
	for _, a := range d.Annotations {
		loc := errors.Locate("", text, a.Span.End)
		if n := len(fmt.Sprint(loc.Line)); n > width {
			width = n
		}
	}
	return width
}
