// Package token defines source positions, spans, and the literal punctuation
// and keywords recognized by the Lattice grammar.
package token

import "fmt"

// Pos is a 0-based character offset into a source. Offsets count runes, not
// bytes, so that a Reader can address any character directly.
type Pos int

// NoPos is the zero value used when a position is unknown.
const NoPos Pos = -1

// IsValid returns true if this position has been set.
func (p Pos) IsValid() bool {
	return p >= 0
}

// Span is a half-open range [Start, End) of source positions.
type Span struct {
	Start Pos
	End   Pos
}

// NewSpan returns the span [start, end).
func NewSpan(start, end Pos) Span {
	return Span{Start: start, End: end}
}

// At returns an empty span positioned at p. It is used for single-caret
// annotations.
func At(p Pos) Span {
	return Span{Start: p, End: p}
}

// Len returns the number of characters covered by the span.
func (s Span) Len() int {
	return int(s.End - s.Start)
}

// IsEmpty returns true if the span covers no characters.
func (s Span) IsEmpty() bool {
	return s.End <= s.Start
}

// Contains reports whether p lies inside the span.
func (s Span) Contains(p Pos) bool {
	return p >= s.Start && p < s.End
}

// Cover returns the smallest span containing both s and o.
func (s Span) Cover(o Span) Span {
	out := s
	if o.Start < out.Start {
		out.Start = o.Start
	}
	if o.End > out.End {
		out.End = o.End
	}
	return out
}

func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.Start, s.End)
}

// Punctuation and operators matched literally by the grammar.
const (
	LBRACKET      = "["
	RBRACKET      = "]"
	LBRACE        = "{"
	RBRACE        = "}"
	LPAREN        = "("
	RPAREN        = ")"
	COMMA         = ","
	COLON         = ":"
	SEMICOLON     = ";"
	ASSIGN        = "="
	SPREAD        = "..."
	AT            = "@"
	RANGE         = ".."
	ESCAPE_OPEN   = "[["
	ESCAPE_CLOSE  = "]]"
	HASH          = "#"
	DOLLAR        = "$"
	QUOTE         = "\""
	APOSTROPHE    = "'"
	BACKSLASH     = "\\"
	TILDE         = "~"
	UNICODE_PFX   = "U+"
	HEX_PFX       = "0x"
	LINE_COMMENT  = "//"
	MAP_MACRO     = "#{"
	FUNCTION      = "fn"
	UNION         = "+"
	DIFFERENCE    = "-"
	INTERSECTION  = "&"
	SYMMETRIC_DIF = "^"
)

// Macro names introduced by HASH.
const (
	MacroInterval = "interval"
	MacroUnicode  = "unicode"
	MacroBin      = "bin"
	MacroOct      = "oct"
	MacroHex      = "hex"
)

// Macros lists every macro name in a stable order.
var Macros = []string{MacroInterval, MacroUnicode, MacroBin, MacroOct, MacroHex}

// Reserved keywords
var keywords = map[string]bool{
	FUNCTION: true,
}

// IsKeyword returns true if the identifier is reserved by the grammar.
func IsKeyword(identifier string) bool {
	return keywords[identifier]
}
