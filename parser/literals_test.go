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

func TestIdentifier(t *testing.T) {
	id := mustParse(t, RuleIdentifier, "_foo42").(*ast.Identifier)
	assert.Equal(t, "_foo42", id.Name)

	// Keywords are not identifiers, but words starting with one are.
	assert.Equal(t, errors.E1003, mustFail(t, RuleIdentifier, "fn").Code)
	assert.Equal(t, "fnord", mustParse(t, RuleIdentifier, "fnord").(*ast.Identifier).Name)
}

func TestInteger(t *testing.T) {
	tests := []struct {
		input   string
		literal string
		value   int64
	}{
		{"0", "0", 0},
		{"42", "42", 42},
		{"007", "007", 7},
		{"0x2a", "0x2a", 42},
		{"0xFF", "0xFF", 255},
		{"9223372036854775807", "9223372036854775807", 9223372036854775807},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n := mustParse(t, RuleInteger, tt.input).(*ast.Integer)
			assert.Equal(t, tt.literal, n.Literal)
			assert.Equal(t, tt.value, n.Value)
			assert.True(t, n.IsConstant())
		})
	}
}

func TestIntegerErrors(t *testing.T) {
	for _, input := range []string{"0x", "9223372036854775808", "0xfffffffffffffffff"} {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, errors.E1008, mustFail(t, RuleInteger, input).Code)
		})
	}
}

func TestChar(t *testing.T) {
	tests := []struct {
		input string
		value rune
	}{
		{`'a'`, 'a'},
		{`' '`, ' '},
		{`'\n'`, '\n'},
		{`'\''`, '\''},
		{`'\u{1F600}'`, 0x1F600},
		{`'é'`, 'é'},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c := mustParse(t, RuleChar, tt.input).(*ast.Char)
			assert.Equal(t, tt.value, c.Value)
			assert.Equal(t, tt.input, c.Literal)
		})
	}
}

func TestCharErrors(t *testing.T) {
	tests := []struct {
		input string
		code  errors.ErrorCode
	}{
		{`''`, errors.E1013},
		{`'ab'`, errors.E1013},
		{`'a`, errors.E1013},
		{`'\q'`, errors.E1010},
		{`'\u{D800}'`, errors.E1010},
		{`'\u41'`, errors.E1010},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.code, mustFail(t, RuleChar, tt.input).Code)
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		input string
		fence int
		value string
	}{
		{`""`, 0, ""},
		{`"abc"`, 0, "abc"},
		{`"a\nb"`, 0, "a\nb"},
		{`"\u{41}\$"`, 0, "A$"},
		{`$"a"b"$`, 1, `a"b`},
		{`$"say "hi""$`, 1, `say "hi"`},
		{`$$"a"$"$$`, 2, `a"$`},
		{`$$""$$`, 2, ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := mustParse(t, RuleString, tt.input).(*ast.String)
			assert.Equal(t, tt.fence, s.Fence)
			assert.Equal(t, tt.value, s.Value)
			assert.Equal(t, tt.input, s.String())
			assert.Equal(t, token.NewSpan(0, token.Pos(len([]rune(tt.input)))), s.Span())
		})
	}
}

func TestStringParts(t *testing.T) {
	s := mustParse(t, RuleString, `"ab\tc"`).(*ast.String)
	require.Len(t, s.Parts, 3)

	assert.False(t, s.Parts[0].Escape)
	assert.Equal(t, "ab", s.Parts[0].Value)
	assert.Equal(t, token.NewSpan(1, 3), s.Parts[0].Span())

	assert.True(t, s.Parts[1].Escape)
	assert.Equal(t, `\t`, s.Parts[1].Literal)
	assert.Equal(t, "\t", s.Parts[1].Value)
	assert.Equal(t, token.NewSpan(3, 5), s.Parts[1].Span())

	assert.Equal(t, "c", s.Parts[2].Value)
}

func TestStringFenceClosesEarly(t *testing.T) {
	// A one-dollar fence closes at the first quote followed by one '$'.
	d := mustFail(t, RuleString, `$"a"$"$`)
	assert.Equal(t, errors.E1012, d.Code)
	assert.Equal(t, [2]int{5, 7}, primarySpan(t, d))
}

func TestUnterminatedString(t *testing.T) {
	d := mustFail(t, RuleString, `$"abc"`)
	assert.Equal(t, errors.E1002, d.Code)
	assert.Equal(t, [2]int{0, 6}, primarySpan(t, d))
	hints := d.Hints()
	require.Len(t, hints, 1)
	assert.Contains(t, hints[0].Suggestion, `"\"$"`)
	assert.Equal(t, token.At(6), hints[0].Span)
}

func TestInvalidStringEscape(t *testing.T) {
	d := mustFail(t, RuleString, `"a\qb"`)
	assert.Equal(t, errors.E1010, d.Code)
	assert.Equal(t, [2]int{2, 4}, primarySpan(t, d))
}

func TestSpread(t *testing.T) {
	list := mustParse(t, RuleList, "[1, ...rest]").(*ast.List)
	require.Len(t, list.Items, 1)
	require.NotNil(t, list.Spread)
	assert.Equal(t, "rest", list.Spread.Name.Name)
	assert.False(t, list.Spread.Keyword)

	list = mustParse(t, RuleList, "[...@opts,]").(*ast.List)
	assert.Empty(t, list.Items)
	assert.True(t, list.Spread.Keyword)
	assert.Equal(t, "[...@opts]", list.String())
}

func TestSpreadErrors(t *testing.T) {
	// The spread needs a separator before it and a name after it.
	assert.Equal(t, errors.E1007, mustFail(t, RuleList, "[1 ...rest]").Code)
	assert.Equal(t, errors.E1006, mustFail(t, RuleList, "[...]").Code)
	assert.Equal(t, errors.E1007, mustFail(t, RuleList, "[...a, 1]").Code)
}

func TestSpreadNameFollowsPrefix(t *testing.T) {
	tests := []struct {
		input string
		gap   [2]int
		hint  string
	}{
		{"[... x]", [2]int{4, 5}, "Try writing ...name without the space"},
		{"[...@  x]", [2]int{5, 7}, "Try writing ...@name without the space"},
		{"f(...\n\targs)", [2]int{5, 7}, "Try writing ...name without the space"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d := mustFail(t, RuleExpression, tt.input)
			assert.Equal(t, errors.E1006, d.Code)
			assert.Equal(t, tt.gap, primarySpan(t, d))
			hints := d.Hints()
			require.Len(t, hints, 1)
			assert.Equal(t, tt.hint, hints[0].Suggestion)
		})
	}

	d := mustFail(t, RuleList, "[... ]")
	assert.Equal(t, errors.E1006, d.Code)
	assert.Contains(t, d.Message, "expected an identifier")
}

func TestMap(t *testing.T) {
	m := mustParse(t, RuleExpression, `#{a: 1, "b": [2], ...more}`).(*ast.Map)
	require.Len(t, m.Entries, 2)
	assert.Equal(t, "a", m.Entries[0].Key.(*ast.Identifier).Name)
	assert.Equal(t, "b", m.Entries[1].Key.(*ast.String).Value)
	assert.IsType(t, &ast.List{}, m.Entries[1].Value)
	assert.Equal(t, "more", m.Spread.Name.Name)

	empty := mustParse(t, RuleExpression, "#{ }").(*ast.Map)
	assert.Empty(t, empty.Entries)
}

func TestMapErrors(t *testing.T) {
	assert.Equal(t, errors.E1001, mustFail(t, RuleMap, "#{a 1}").Code)
	assert.Equal(t, errors.E1004, mustFail(t, RuleMap, "#{a: }").Code)
	assert.Equal(t, errors.E1007, mustFail(t, RuleMap, "#{a: 1").Code)
}

func TestObjectOrBlock(t *testing.T) {
	tests := []struct {
		input string
		kind  ast.Kind
		size  int
	}{
		{"{}", ast.KindBlock, 0},
		{"{ }", ast.KindBlock, 0},
		{"{ a }", ast.KindObject, 1},
		{"{ a, b }", ast.KindObject, 2},
		{"{ a = 1, b }", ast.KindObject, 2},
		{"{ a = f(x), }", ast.KindObject, 1},
		{"{ a; b }", ast.KindBlock, 2},
		{"{ a; b; }", ast.KindBlock, 2},
		{"{ f(x) }", ast.KindBlock, 1},
		{"{ 1 }", ast.KindBlock, 1},
		{"{ ...rest }", ast.KindObject, 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node := mustParse(t, RuleExpression, tt.input)
			require.Equal(t, tt.kind, node.Kind())
			switch n := node.(type) {
			case *ast.Block:
				assert.Len(t, n.Exprs, tt.size)
			case *ast.Object:
				assert.Len(t, n.Fields, tt.size)
			}
		})
	}
}

func TestObjectRuleAbsentForEmptyBraces(t *testing.T) {
	assert.Equal(t, errors.E1003, mustFail(t, RuleObject, "{}").Code)
}

func TestObjectSimplification(t *testing.T) {
	obj := mustParse(t, RuleObject, "{ x, y = 2 }").(*ast.Object)
	require.Len(t, obj.Fields, 2)

	x := obj.Fields[0]
	assert.True(t, x.Simplified)
	assert.Same(t, x.Name, x.Value)
	assert.Equal(t, x.Name.Span(), x.Span())

	y := obj.Fields[1]
	assert.False(t, y.Simplified)
	assert.Equal(t, int64(2), y.Value.(*ast.Integer).Value)
	assert.Equal(t, token.NewSpan(5, 10), y.Span())
}

func TestObjectErrors(t *testing.T) {
	// Once the first field is read, the braces are an object.
	assert.Equal(t, errors.E1007, mustFail(t, RuleExpression, "{ a = 1; b }").Code)
	assert.Equal(t, errors.E1004, mustFail(t, RuleExpression, "{ a = }").Code)
}

func TestBlockErrors(t *testing.T) {
	d := mustFail(t, RuleExpression, "{ a b }")
	assert.Equal(t, errors.E1007, d.Code)
	assert.Equal(t, [2]int{0, 4}, primarySpan(t, d))
}

func TestFunction(t *testing.T) {
	fn := mustParse(t, RuleExpression, "fn(a, b = 2, ...rest) { a; b }").(*ast.Function)
	assert.Equal(t, []string{"a", "b", "rest"}, fn.Params.Names())
	assert.Nil(t, fn.Params.Params[0].Default)
	assert.Equal(t, int64(2), fn.Params.Params[1].Default.(*ast.Integer).Value)
	assert.Len(t, fn.Body.Exprs, 2)
	assert.Equal(t, "fn(a, b = 2, ...rest) { a; b }", fn.String())

	empty := mustParse(t, RuleFunction, "fn () {}").(*ast.Function)
	assert.Empty(t, empty.Params.Params)
	assert.Empty(t, empty.Body.Exprs)
}

func TestFunctionErrors(t *testing.T) {
	tests := []struct {
		input string
		code  errors.ErrorCode
	}{
		{"fn", errors.E1001},
		{"fn {}", errors.E1001},
		{"fn()", errors.E1001},
		{"fn(a = ) {}", errors.E1004},
		{"fn(a {}", errors.E1007},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.code, mustFail(t, RuleExpression, tt.input).Code)
		})
	}
}

func TestCall(t *testing.T) {
	call := mustParse(t, RuleExpression, "f(a, b)(c)").(*ast.Call)
	assert.Equal(t, token.NewSpan(0, 10), call.Span())
	require.Len(t, call.Args.Args, 1)

	inner := call.Fun.(*ast.Call)
	assert.Equal(t, token.NewSpan(0, 7), inner.Span())
	assert.Equal(t, "f", inner.Fun.(*ast.Identifier).Name)
	assert.Len(t, inner.Args.Args, 2)
	assert.Equal(t, "f(a, b)(c)", call.String())
}

func TestCallOnLiterals(t *testing.T) {
	call := mustParse(t, RuleExpression, "fn(x) { x }(1, ...@kw)").(*ast.Call)
	assert.IsType(t, &ast.Function{}, call.Fun)
	assert.True(t, call.Args.Spread.Keyword)
}

func TestUnclosedArgumentList(t *testing.T) {
	d := mustFail(t, RuleArgumentList, "(a, b")
	assert.Equal(t, errors.E1007, d.Code)
	assert.Equal(t, [2]int{0, 5}, primarySpan(t, d))

	hints := d.Hints()
	require.Len(t, hints, 2)
	assert.Equal(t, token.At(5), hints[0].Span)
	assert.Contains(t, hints[0].Suggestion, `")"`)
	assert.Equal(t, token.NewSpan(0, 1), hints[1].Span)
}

func TestUnknownMacro(t *testing.T) {
	d := mustFail(t, RuleExpression, "#intervl[1]")
	assert.Equal(t, errors.E1011, d.Code)
	assert.Equal(t, [2]int{0, 8}, primarySpan(t, d))
	hints := d.Hints()
	require.NotEmpty(t, hints)
	assert.Equal(t, "Did you mean '#interval'?", hints[0].Suggestion)

	d = mustFail(t, RuleExpression, "#map{a: 1}")
	assert.Equal(t, errors.E1011, d.Code)
	require.NotEmpty(t, d.Hints())
	assert.Equal(t, "Did you mean '#{'?", d.Hints()[0].Suggestion)

	d = mustFail(t, RuleExpression, "#zzzzzzzzz")
	assert.Equal(t, errors.E1011, d.Code)
	assert.Empty(t, d.Hints())
	assert.True(t, strings.Contains(d.Annotations[len(d.Annotations)-1].Label, "#unicode"))
}
