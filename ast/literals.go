package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Identifier is an expression node that holds a name.
type Identifier struct {
	Loc
	Name string
}

func (x *Identifier) exprNode() {}

func (x *Identifier) Kind() Kind     { return KindIdentifier }
func (x *Identifier) String() string { return x.Name }

// Integer is an expression node that holds an integer literal.
type Integer struct {
	Loc
	Literal string // the literal text (e.g., "42", "0x2a")
	Value   int64  // the parsed value
}

func (x *Integer) exprNode() {}

func (x *Integer) Kind() Kind       { return KindInteger }
func (x *Integer) String() string   { return x.Literal }
func (x *Integer) IsConstant() bool { return true }

// Char is an expression node that holds a character literal such as 'a'.
type Char struct {
	Loc
	Literal string // the raw literal including quotes
	Value   rune
}

func (x *Char) exprNode() {}

func (x *Char) Kind() Kind     { return KindChar }
func (x *Char) String() string { return x.Literal }

// StringPart is one piece of a string literal's content: either a raw run of
// characters or a single escape sequence.
type StringPart struct {
	Loc
	Escape  bool   // true for an escape sequence
	Literal string // the source text of the part
	Value   string // the decoded text
}

// String is an expression node that holds a fence-delimited string literal.
// Fence is the number of '$' characters before the opening quote; the
// closing quote is followed by exactly as many.
type String struct {
	Loc
	Fence int
	Parts []StringPart
	Value string // the decoded content
}

func (x *String) exprNode() {}

func (x *String) Kind() Kind { return KindString }

func (x *String) String() string {
	fence := strings.Repeat("$", x.Fence)
	var b strings.Builder
	b.WriteString(fence)
	b.WriteByte('"')
	for _, part := range x.Parts {
		b.WriteString(part.Literal)
	}
	b.WriteByte('"')
	b.WriteString(fence)
	return b.String()
}

// Spread is a trailing "...name" or "...@name" element of a bracketed list.
// Keyword is true for the "...@" form, which spreads named entries rather
// than positional ones.
type Spread struct {
	Loc
	Name    *Identifier
	Keyword bool
}

func (x *Spread) Kind() Kind { return KindSpread }

func (x *Spread) String() string {
	if x.Keyword {
		return "...@" + x.Name.String()
	}
	return "..." + x.Name.String()
}

// CodePoint is a unicode-interval bound written as 'c' or U+XXXX.
type CodePoint struct {
	Loc
	Literal string
	Value   rune
}

func (x *CodePoint) Kind() Kind     { return KindCodePoint }
func (x *CodePoint) String() string { return x.Literal }

// Hex returns the U+XXXX spelling of the code point.
func (x *CodePoint) Hex() string {
	return fmt.Sprintf("U+%04X", x.Value)
}

// Quote returns the Go-quoted form of the code point, useful in messages.
func (x *CodePoint) Quote() string {
	return strconv.QuoteRune(x.Value)
}
