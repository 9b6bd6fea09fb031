package ast

import (
	"strings"

	"github.com/risor-io/lattice/token"
)

// EscapedExpression embeds an arbitrary expression, written [[expr]], where
// an interval or bitlist expects a literal.
type EscapedExpression struct {
	Loc
	X Expr
}

func (x *EscapedExpression) Kind() Kind       { return KindEscapedExpression }
func (x *EscapedExpression) String() string   { return "[[" + x.X.String() + "]]" }
func (x *EscapedExpression) IsConstant() bool { return false }

// IntervalOp is the set operator applied to the members of a sub-interval.
type IntervalOp uint8

const (
	OpNone IntervalOp = iota
	OpUnion
	OpDifference
	OpIntersection
	OpSymmetricDifference
)

var intervalOpSymbols = [...]string{
	OpNone:                "",
	OpUnion:               "+",
	OpDifference:          "-",
	OpIntersection:        "&",
	OpSymmetricDifference: "^",
}

func (op IntervalOp) String() string {
	if int(op) < len(intervalOpSymbols) {
		return intervalOpSymbols[op]
	}
	return "?"
}

// Interval is an expression node written #interval[...].
type Interval struct {
	Loc
	Root *SubInterval
}

func (x *Interval) exprNode() {}

func (x *Interval) Kind() Kind     { return KindInterval }
func (x *Interval) String() string { return "#interval" + x.Root.String() }

// SubInterval is a bracketed, possibly operator-tagged group of interval
// items. Groups nest.
type SubInterval struct {
	Loc
	Op       IntervalOp
	Reversed bool
	Items    []IntervalItem
}

func (x *SubInterval) intervalItem() {}

func (x *SubInterval) Kind() Kind { return KindSubInterval }

func (x *SubInterval) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(x.Op.String())
	if x.Reversed {
		b.WriteByte('~')
	}
	if x.Op != OpNone && len(x.Items) > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(joinNodes(x.Items, nil, ", "))
	b.WriteByte(']')
	return b.String()
}

// IntervalElement is a single value or a range left..right.
type IntervalElement struct {
	Loc
	Left  Operand
	Right Operand // nil unless IsRange
}

func (x *IntervalElement) intervalItem() {}

func (x *IntervalElement) Kind() Kind { return KindIntervalElement }

// IsRange is true for elements written with "..".
func (x *IntervalElement) IsRange() bool { return x.Right != nil }

func (x *IntervalElement) String() string {
	if x.Right != nil {
		return x.Left.String() + ".." + x.Right.String()
	}
	return x.Left.String()
}

// UnicodeInterval is an expression node written #unicode[...].
type UnicodeInterval struct {
	Loc
	Elements []*UnicodeElement
}

func (x *UnicodeInterval) exprNode() {}

func (x *UnicodeInterval) Kind() Kind { return KindUnicodeInterval }
func (x *UnicodeInterval) String() string {
	return "#unicode[" + joinNodes(x.Elements, nil, ", ") + "]"
}

// UnicodeElement is a single code point or a range low..high.
type UnicodeElement struct {
	Loc
	Low  *CodePoint
	High *CodePoint // nil unless IsRange
}

func (x *UnicodeElement) Kind() Kind { return KindUnicodeElement }

// IsRange is true for elements written with "..".
func (x *UnicodeElement) IsRange() bool { return x.High != nil }

func (x *UnicodeElement) String() string {
	if x.High != nil {
		return x.Low.String() + ".." + x.High.String()
	}
	return x.Low.String()
}

// Bitlist is an expression node written #bin[...], #oct[...] or #hex[...].
type Bitlist struct {
	Loc
	Radix    int
	Elements []*BitlistElement
}

func (x *Bitlist) exprNode() {}

func (x *Bitlist) Kind() Kind { return KindBitlist }

func (x *Bitlist) String() string {
	return "#" + RadixMacro(x.Radix) + "[" + joinNodes(x.Elements, nil, " ") + "]"
}

// Width returns the total number of bits of the constant elements.
func (x *Bitlist) Width() int {
	total := 0
	for _, el := range x.Elements {
		total += el.Width()
	}
	return total
}

// BitlistElement is a run of digits in the bitlist's radix, or an escaped
// expression.
type BitlistElement struct {
	Loc
	Radix   int
	Digits  string
	Value   uint64
	Escaped *EscapedExpression
}

func (x *BitlistElement) Kind() Kind { return KindBitlistElement }

func (x *BitlistElement) String() string {
	if x.Escaped != nil {
		return x.Escaped.String()
	}
	return x.Digits
}

// Width returns the number of bits the digits encode. Escaped elements have
// no static width.
func (x *BitlistElement) Width() int {
	if x.Escaped != nil {
		return 0
	}
	return len(x.Digits) * BitsPerDigit(x.Radix)
}

// RadixMacro returns the macro name for base 2, 8 or 16.
func RadixMacro(radix int) string {
	switch radix {
	case 2:
		return token.MacroBin
	case 8:
		return token.MacroOct
	case 16:
		return token.MacroHex
	default:
		return "?"
	}
}

// BitsPerDigit returns how many bits one digit of the radix encodes.
func BitsPerDigit(radix int) int {
	switch radix {
	case 2:
		return 1
	case 8:
		return 3
	case 16:
		return 4
	default:
		return 0
	}
}
