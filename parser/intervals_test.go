package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risor-io/lattice/ast"
	"github.com/risor-io/lattice/errors"
	"github.com/risor-io/lattice/token"
)

func TestInterval(t *testing.T) {
	iv := mustParse(t, RuleExpression, "#interval[1, 3..10, [[lo]]..[[hi]]]").(*ast.Interval)
	root := iv.Root
	assert.Equal(t, ast.OpNone, root.Op)
	require.Len(t, root.Items, 3)

	single := root.Items[0].(*ast.IntervalElement)
	assert.False(t, single.IsRange())
	assert.Nil(t, single.Right)

	rng := root.Items[1].(*ast.IntervalElement)
	assert.True(t, rng.IsRange())
	assert.Equal(t, int64(3), rng.Left.(*ast.Integer).Value)
	assert.Equal(t, int64(10), rng.Right.(*ast.Integer).Value)
	assert.Equal(t, token.NewSpan(13, 18), rng.Span())

	escaped := root.Items[2].(*ast.IntervalElement)
	assert.False(t, escaped.Left.IsConstant())
	assert.Equal(t, "lo", escaped.Left.(*ast.EscapedExpression).X.(*ast.Identifier).Name)
	assert.Equal(t, "hi", escaped.Right.(*ast.EscapedExpression).X.(*ast.Identifier).Name)
}

func TestIntervalOperators(t *testing.T) {
	tests := []struct {
		input    string
		op       ast.IntervalOp
		reversed bool
		items    int
	}{
		{"#interval[]", ast.OpNone, false, 0},
		{"#interval[+ 1 2]", ast.OpUnion, false, 2},
		{"#interval[- 1..9, 5]", ast.OpDifference, false, 2},
		{"#interval[&~ 1..9 3..4]", ast.OpIntersection, true, 2},
		{"#interval[^ [1] [2]]", ast.OpSymmetricDifference, false, 2},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			iv := mustParse(t, RuleInterval, tt.input).(*ast.Interval)
			assert.Equal(t, tt.op, iv.Root.Op)
			assert.Equal(t, tt.reversed, iv.Root.Reversed)
			assert.Len(t, iv.Root.Items, tt.items)
		})
	}
}

func TestNestedSubIntervals(t *testing.T) {
	iv := mustParse(t, RuleInterval, "#interval[+ [1..2] [- [[x]] 5]]").(*ast.Interval)
	require.Len(t, iv.Root.Items, 2)

	first := iv.Root.Items[0].(*ast.SubInterval)
	assert.Equal(t, ast.OpNone, first.Op)
	assert.True(t, first.Items[0].(*ast.IntervalElement).IsRange())

	second := iv.Root.Items[1].(*ast.SubInterval)
	assert.Equal(t, ast.OpDifference, second.Op)
	require.Len(t, second.Items, 2)
	assert.IsType(t, &ast.EscapedExpression{}, second.Items[0].(*ast.IntervalElement).Left)
	assert.Equal(t, "#interval[+ [1..2], [- [[x]], 5]]", iv.String())
}

func TestDoubleBracketSubInterval(t *testing.T) {
	// "[[1..2]]" does not close as an escaped expression, so it is read as
	// two nested sub-intervals.
	iv := mustParse(t, RuleInterval, "#interval[ [[1..2]] ]").(*ast.Interval)
	require.Len(t, iv.Root.Items, 1)
	outer := iv.Root.Items[0].(*ast.SubInterval)
	require.Len(t, outer.Items, 1)
	inner := outer.Items[0].(*ast.SubInterval)
	assert.True(t, inner.Items[0].(*ast.IntervalElement).IsRange())
}

func TestUnclosedEscapeFallsBackToSubIntervals(t *testing.T) {
	// The text after "[[" fails as an expression, but the brackets read
	// fine as nested sub-intervals.
	tests := []struct {
		input string
		want  string
		depth int
	}{
		{"#interval[[[[1..2]]]]", "#interval[[[[1..2]]]]", 4},
		{"#interval[ [[[1 2]]] ]", "#interval[[[1, 2]]]", 3},
		{"#interval[[[[1]]..[[2]] 3]]", "#interval[[[[1]]..[[2]], 3]]", 2},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			for _, opts := range [][]Option{nil, {WithoutMemo()}} {
				iv := mustParse(t, RuleExpression, tt.input, opts...).(*ast.Interval)
				assert.Equal(t, tt.want, iv.String())

				depth := 0
				for sub := iv.Root; sub != nil; depth++ {
					next, _ := sub.Items[0].(*ast.SubInterval)
					sub = next
				}
				assert.Equal(t, tt.depth, depth)
			}
		})
	}
}

func TestUnclosedEscapeReportsExpressionError(t *testing.T) {
	// Neither reading works, so the diagnostic from inside "[[" stands.
	d := mustFail(t, RuleExpression, "#interval[[[x(]]]")
	assert.Equal(t, errors.E1007, d.Code)
	assert.Contains(t, d.Message, "argument list")

	d = mustFail(t, RuleExpression, "#bin[[[1..2]]]")
	assert.Equal(t, errors.E1007, d.Code)
	assert.Contains(t, d.Message, "list")
}

func TestIntervalElement(t *testing.T) {
	for _, input := range []string{"3..10", "3 .. 10", "[[3]]..[[10]]", "[[3]]..10"} {
		t.Run(input, func(t *testing.T) {
			el := mustParse(t, RuleIntervalElement, input).(*ast.IntervalElement)
			assert.True(t, el.IsRange())
			assert.Equal(t, token.NewSpan(0, token.Pos(len(input))), el.Span())
		})
	}
}

func TestMissingRangeOperand(t *testing.T) {
	d := mustFail(t, RuleIntervalElement, "3..")
	assert.Equal(t, errors.E1005, d.Code)
	assert.Equal(t, [2]int{0, 3}, primarySpan(t, d))

	hints := d.Hints()
	require.Len(t, hints, 2)
	assert.Equal(t, token.At(3), hints[0].Span)
	assert.Contains(t, hints[0].Suggestion, "Try adding")
	assert.Equal(t, token.NewSpan(1, 3), hints[1].Span)
	assert.Contains(t, hints[1].Suggestion, "remove")

	d = mustFail(t, RuleInterval, "#interval[1, 2..]")
	assert.Equal(t, errors.E1005, d.Code)
}

func TestEscapedExpression(t *testing.T) {
	esc := mustParse(t, RuleEscapedExpression, "[[ f(x) ]]").(*ast.EscapedExpression)
	assert.IsType(t, &ast.Call{}, esc.X)
	assert.Equal(t, token.NewSpan(0, 10), esc.Span())

	// An opener that never closes as "]]" is absent, not an error.
	assert.Equal(t, errors.E1003, mustFail(t, RuleEscapedExpression, "[[1, 2]]").Code)
	assert.Equal(t, errors.E1003, mustFail(t, RuleEscapedExpression, "[[1]").Code)
}

func TestIntervalErrors(t *testing.T) {
	tests := []struct {
		input string
		code  errors.ErrorCode
	}{
		{"#interval", errors.E1001},
		{"#interval 1", errors.E1001},
		{"#interval[1", errors.E1007},
		{"#interval[1 x]", errors.E1007},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.code, mustFail(t, RuleExpression, tt.input).Code)
		})
	}
}

func TestUnicodeInterval(t *testing.T) {
	u := mustParse(t, RuleExpression, "#unicode['a'..'z', U+0041 '_']").(*ast.UnicodeInterval)
	require.Len(t, u.Elements, 3)

	az := u.Elements[0]
	assert.True(t, az.IsRange())
	assert.Equal(t, 'a', az.Low.Value)
	assert.Equal(t, 'z', az.High.Value)
	assert.Equal(t, "U+007A", az.High.Hex())

	assert.Equal(t, 'A', u.Elements[1].Low.Value)
	assert.Equal(t, "U+0041", u.Elements[1].Low.Literal)
	assert.Nil(t, u.Elements[1].High)
	assert.Equal(t, '_', u.Elements[2].Low.Value)
}

func TestUnicodeErrors(t *testing.T) {
	tests := []struct {
		input string
		code  errors.ErrorCode
	}{
		{"#unicode", errors.E1001},
		{"#unicode['a'..]", errors.E1005},
		{"#unicode['z'..'a']", errors.E1015},
		{"#unicode[U+110000]", errors.E1008},
		{"#unicode[U+]", errors.E1008},
		{"#unicode['a'", errors.E1007},
		{"#unicode['']", errors.E1013},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.code, mustFail(t, RuleExpression, tt.input).Code)
		})
	}
}

func TestReversedCodePointRange(t *testing.T) {
	d := mustFail(t, RuleUnicodeElement, "'z'..'a'")
	assert.Equal(t, errors.E1015, d.Code)
	assert.Equal(t, "reversed range", d.Code.Description())
	assert.Equal(t, "reversed code point range U+007A..U+0061", d.Message)
	assert.Equal(t, [2]int{0, 8}, primarySpan(t, d))
	hints := d.Hints()
	require.Len(t, hints, 1)
	assert.Equal(t, "Try writing 'a'..'z'", hints[0].Suggestion)
}

func TestBitlist(t *testing.T) {
	tests := []struct {
		input  string
		radix  int
		values []uint64
		width  int
	}{
		{"#bin[1010 11]", 2, []uint64{10, 3}, 6},
		{"#oct[755]", 8, []uint64{493}, 9},
		{"#hex[ff 0A]", 16, []uint64{255, 10}, 16},
		{"#hex[]", 16, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			b := mustParse(t, RuleBitlist, tt.input).(*ast.Bitlist)
			assert.Equal(t, tt.radix, b.Radix)
			var values []uint64
			for _, el := range b.Elements {
				assert.Equal(t, tt.radix, el.Radix)
				values = append(values, el.Value)
			}
			assert.Equal(t, tt.values, values)
			assert.Equal(t, tt.width, b.Width())
		})
	}
}

func TestBitlistEscaped(t *testing.T) {
	b := mustParse(t, RuleExpression, "#bin[1 [[mask]] 0]").(*ast.Bitlist)
	require.Len(t, b.Elements, 3)
	require.NotNil(t, b.Elements[1].Escaped)
	assert.Equal(t, "mask", b.Elements[1].Escaped.X.(*ast.Identifier).Name)
	assert.Equal(t, 2, b.Width())
	assert.Equal(t, "#bin[1 [[mask]] 0]", b.String())
}

func TestBitlistErrors(t *testing.T) {
	d := mustFail(t, RuleExpression, "#oct[17 9]")
	assert.Equal(t, errors.E1008, d.Code)
	assert.Contains(t, d.Message, "octal")
	assert.Equal(t, [2]int{8, 8}, primarySpan(t, d))

	d = mustFail(t, RuleExpression, "#bin["+strings.Repeat("1", 65)+"]")
	assert.Equal(t, errors.E1008, d.Code)

	assert.Equal(t, errors.E1007, mustFail(t, RuleExpression, "#hex[ff").Code)
	assert.Equal(t, errors.E1001, mustFail(t, RuleExpression, "#bin 1").Code)
}

func TestBitlistElementRadix(t *testing.T) {
	tests := []struct {
		input  string
		radix  int
		digits string
		value  uint64
	}{
		{"101", 2, "101", 5},
		{"101", 8, "101", 65},
		{"101", 16, "101", 257},
		{"1a", 2, "1", 1},
		{"1a", 16, "1a", 26},
		{"78", 8, "7", 7},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := newParser(tt.input)
			el, ok, err := p.bitlistElement(tt.radix)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.digits, el.Digits)
			assert.Equal(t, tt.value, el.Value)
			assert.Equal(t, token.Pos(len(tt.digits)), p.r.Position())
		})
	}

	// The same position read under two radixes gives two results.
	p := newParser("101")
	bin, _, _ := p.bitlistElement(2)
	p.seek(0)
	hex, _, _ := p.bitlistElement(16)
	assert.Equal(t, uint64(5), bin.Value)
	assert.Equal(t, uint64(257), hex.Value)
	for key := range p.cache.entries {
		assert.NotEqual(t, RuleBitlistElement, key.rule)
	}
}
