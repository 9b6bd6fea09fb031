// Package errors defines the structured diagnostics raised by the Lattice
// parser.
//
// A Diagnostic carries an error kind, a code, a primary message and an
// ordered list of annotations. Each annotation points at a range or a single
// caret position in a named source and may carry a suggested fix. This
// package holds data only; rendering a Diagnostic for a terminal is the job
// of the render subpackage or of any other caller.
package errors

import (
	"fmt"
	"strings"

	"github.com/risor-io/lattice/token"
)

// SourceLocation represents a position in source code.
type SourceLocation struct {
	Filename string
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Source   string // The line of source code
}

// String returns a formatted string representation of the source location.
func (s SourceLocation) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsZero returns true if the location has not been set.
func (s SourceLocation) IsZero() bool {
	return s.Line == 0 && s.Column == 0
}

// Locate converts a character offset in text into a line and column. Offsets
// past the end of text are clamped to the end.
func Locate(filename, text string, offset token.Pos) SourceLocation {
	line, col := 1, 1
	lineStart := 0
	i := 0
	for byteIdx, ch := range text {
		if i == int(offset) {
			break
		}
		if ch == '\n' {
			line++
			col = 1
			lineStart = byteIdx + 1
		} else {
			col++
		}
		i++
	}
	lineText := text[lineStart:]
	if nl := strings.IndexByte(lineText, '\n'); nl >= 0 {
		lineText = lineText[:nl]
	}
	return SourceLocation{
		Filename: filename,
		Line:     line,
		Column:   col,
		Source:   strings.TrimSuffix(lineText, "\r"),
	}
}

// FriendlyError is an interface for errors that have a human friendly message
// in addition to the lower level default error message.
type FriendlyError interface {
	Error() string
	FriendlyErrorMessage() string
}

// FatalError is an interface for errors that may or may not be fatal.
type FatalError interface {
	Error() string
	IsFatal() bool
}

// ErrorKind represents the category of a diagnostic.
type ErrorKind int

const (
	// ErrSyntax indicates input that violates the grammar.
	ErrSyntax ErrorKind = iota
	// ErrLimit indicates input that exceeds a configured resource bound.
	ErrLimit
	// ErrInput indicates an unreadable or unusable source.
	ErrInput
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax error"
	case ErrLimit:
		return "limit error"
	case ErrInput:
		return "input error"
	default:
		return "error"
	}
}

// Title categorizes an annotation.
type Title string

const (
	// TitleCode annotations show the offending span in context.
	TitleCode Title = "code"
	// TitleHint annotations propose a fix.
	TitleHint Title = "hint"
	// TitleNote annotations add context without proposing a fix.
	TitleNote Title = "note"
)

// Annotation pins part of a Diagnostic to the source.
type Annotation struct {
	Title Title
	// Source names the excerpt this annotation refers to.
	Source string
	// Span is the highlighted range. For caret annotations Start == End.
	Span token.Span
	// Caret is true when the annotation marks a single position rather than
	// a range.
	Caret bool
	// Label is a short message shown at the highlight.
	Label string
	// Suggestion is optional free text proposing a fix.
	Suggestion string
}

// Diagnostic is a fatal, structured parse error. Exactly one is produced per
// failed parse.
type Diagnostic struct {
	Kind        ErrorKind
	Code        ErrorCode
	Message     string
	Source      string
	Location    SourceLocation
	Annotations []Annotation
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	var b strings.Builder
	b.WriteString(d.Kind.String())
	if d.Code != "" {
		fmt.Fprintf(&b, "[%s]", d.Code)
	}
	b.WriteString(": ")
	b.WriteString(d.Message)
	if !d.Location.IsZero() {
		fmt.Fprintf(&b, " (%s)", d.Location)
	}
	return b.String()
}

// FriendlyErrorMessage returns the message followed by the location and any
// hints, one per line, without a source excerpt.
func (d *Diagnostic) FriendlyErrorMessage() string {
	var b strings.Builder
	b.WriteString(d.Message)
	if !d.Location.IsZero() {
		fmt.Fprintf(&b, "\n  at %s", d.Location)
	}
	for _, h := range d.Hints() {
		fmt.Fprintf(&b, "\n  hint: %s", h.Suggestion)
	}
	return b.String()
}

// IsFatal always returns true. Diagnostics abort the parse.
func (d *Diagnostic) IsFatal() bool {
	return true
}

// Primary returns the first code annotation, or false if there is none.
func (d *Diagnostic) Primary() (Annotation, bool) {
	for _, a := range d.Annotations {
		if a.Title == TitleCode {
			return a, true
		}
	}
	return Annotation{}, false
}

// Hints returns the hint annotations in order.
func (d *Diagnostic) Hints() []Annotation {
	var hints []Annotation
	for _, a := range d.Annotations {
		if a.Title == TitleHint {
			hints = append(hints, a)
		}
	}
	return hints
}

// Builder appends annotations to a Diagnostic under construction.
type Builder struct {
	d *Diagnostic
}

// Code adds a code annotation highlighting span.
func (b *Builder) Code(span token.Span, label string) *Builder {
	return b.add(Annotation{Title: TitleCode, Span: span, Label: label})
}

// CodeAt adds a code annotation with a single caret at pos.
func (b *Builder) CodeAt(pos token.Pos, label string) *Builder {
	return b.add(Annotation{Title: TitleCode, Span: token.At(pos), Caret: true, Label: label})
}

// Hint adds a hint annotation highlighting span with a suggested fix.
func (b *Builder) Hint(span token.Span, suggestion string) *Builder {
	return b.add(Annotation{Title: TitleHint, Span: span, Suggestion: suggestion})
}

// HintAt adds a hint annotation with a single caret at pos.
func (b *Builder) HintAt(pos token.Pos, suggestion string) *Builder {
	return b.add(Annotation{Title: TitleHint, Span: token.At(pos), Caret: true, Suggestion: suggestion})
}

// Note adds a note annotation.
func (b *Builder) Note(span token.Span, label string) *Builder {
	return b.add(Annotation{Title: TitleNote, Span: span, Label: label})
}

func (b *Builder) add(a Annotation) *Builder {
	a.Source = b.d.Source
	b.d.Annotations = append(b.d.Annotations, a)
	return b
}

// New creates a Diagnostic and lets build append its annotations. build may
// be nil.
func New(kind ErrorKind, code ErrorCode, source, message string, build func(*Builder)) *Diagnostic {
	d := &Diagnostic{
		Kind:    kind,
		Code:    code,
		Message: message,
		Source:  source,
	}
	if build != nil {
		build(&Builder{d: d})
	}
	return d
}

// Newf is like New with a formatted message and no annotations.
func Newf(kind ErrorKind, code ErrorCode, source string, format string, args ...any) *Diagnostic {
	return New(kind, code, source, fmt.Sprintf(format, args...), nil)
}
