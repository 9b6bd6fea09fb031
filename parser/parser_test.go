package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risor-io/lattice/ast"
	"github.com/risor-io/lattice/errors"
	"github.com/risor-io/lattice/token"
)

// Core parser tests (parser.go, protocol.go)
// - Start rules and trailing input
// - Span exactness with leading whitespace and comments
// - Max depth limits
// - Context cancellation
// - Tree attachments

func TestParseList(t *testing.T) {
	list, ok := mustParse(t, RuleList, "[1, 2, 3]").(*ast.List)
	require.True(t, ok)
	require.Len(t, list.Items, 3)
	for i, item := range list.Items {
		n, ok := item.(*ast.Integer)
		require.True(t, ok)
		assert.Equal(t, int64(i+1), n.Value)
	}
	assert.Nil(t, list.Spread)
	assert.Equal(t, "[1, 2, 3]", list.String())
}

func TestTrailingSeparator(t *testing.T) {
	want := mustParse(t, RuleList, "[1,2,3]")
	for _, input := range []string{"[1,2,3,]", "[ 1 , 2 , 3 , ]", "[\n  1,\n  2,\n  3,\n]"} {
		t.Run(input, func(t *testing.T) {
			sameTree(t, want, mustParse(t, RuleList, input))
		})
	}
}

func TestDoubleTrailingSeparator(t *testing.T) {
	d := mustFail(t, RuleList, "[1,,]")
	assert.Equal(t, errors.E1007, d.Code)
}

func TestSpanExact(t *testing.T) {
	list := mustParse(t, RuleList, "  [1, 2]  ").(*ast.List)
	assert.Equal(t, token.NewSpan(2, 8), list.Span())
	assert.Equal(t, token.NewSpan(3, 4), list.Items[0].Span())
	assert.Equal(t, token.NewSpan(6, 7), list.Items[1].Span())
}

func TestSpanSkipsComments(t *testing.T) {
	list := mustParse(t, RuleList, "// numbers\n[ // first\n  1 ]").(*ast.List)
	assert.Equal(t, token.Pos(11), list.Span().Start)
	assert.Equal(t, token.NewSpan(24, 25), list.Items[0].Span())
}

func TestReparseSpan(t *testing.T) {
	text := "f(  [a, #{k: 'v'}], { x = 1, y })"
	call := mustParse(t, RuleExpression, text).(*ast.Call)
	for _, arg := range call.Args.Args {
		span := arg.Span()
		again := mustParse(t, RuleExpression, text[span.Start:span.End])
		sameTree(t, arg, again)
	}
}

func TestTrailingInput(t *testing.T) {
	d := mustFail(t, RuleList, "[1] x")
	assert.Equal(t, errors.E1012, d.Code)
	assert.Equal(t, [2]int{4, 5}, primarySpan(t, d))
	assert.Equal(t, 1, d.Location.Line)
	assert.Equal(t, 5, d.Location.Column)
}

func TestNoMatch(t *testing.T) {
	d := mustFail(t, RuleList, "  x")
	assert.Equal(t, errors.E1003, d.Code)
	assert.Equal(t, errors.ErrSyntax, d.Kind)
	assert.Equal(t, [2]int{2, 2}, primarySpan(t, d))
	assert.Contains(t, d.Message, "a list")
}

func TestEmptyInput(t *testing.T) {
	d := mustFail(t, RuleExpression, "   ")
	assert.Equal(t, errors.E1003, d.Code)
}

func TestMaxDepth(t *testing.T) {
	nested := strings.Repeat("[", 20) + strings.Repeat("]", 20)

	d := mustFail(t, RuleList, nested, WithMaxDepth(10))
	assert.Equal(t, errors.E1009, d.Code)
	assert.Equal(t, errors.ErrLimit, d.Kind)

	list := mustParse(t, RuleList, nested)
	assert.Len(t, list.(*ast.List).Items, 1)
}

func TestMaxDepthSubInterval(t *testing.T) {
	nested := "#interval" + strings.Repeat("[ ", 20) + strings.Repeat("] ", 20)
	d := mustFail(t, RuleExpression, nested, WithMaxDepth(10))
	assert.Equal(t, errors.E1009, d.Code)
}

func TestContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Parse(ctx, "[1]", RuleList)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFilenameInErrors(t *testing.T) {
	d := mustFail(t, RuleList, "[1,\n 2", WithFilename("test.lat"))
	assert.Equal(t, "test.lat", d.Source)
	assert.Equal(t, "test.lat", d.Location.Filename)
	assert.Equal(t, 1, d.Location.Line)
	assert.Contains(t, d.Error(), "test.lat:1:1")
}

func TestParseFile(t *testing.T) {
	_, err := ParseFile(context.Background(), "testdata/does-not-exist.lat", RuleExpression)
	require.Error(t, err)
	d, ok := err.(*errors.Diagnostic)
	require.True(t, ok)
	assert.Equal(t, errors.E1014, d.Code)
	assert.Equal(t, errors.ErrInput, d.Kind)
	assert.True(t, strings.HasPrefix(d.Message, "cannot read source: "))
}

func TestRuleByName(t *testing.T) {
	rule, ok := RuleByName("list")
	assert.True(t, ok)
	assert.Equal(t, RuleList, rule)
	assert.Equal(t, "list", rule.String())
	assert.Equal(t, "a list", rule.Description())

	_, ok = RuleByName("bitlist-element")
	assert.False(t, ok)
	_, ok = RuleByName("invalid")
	assert.False(t, ok)

	names := StartRules()
	assert.Contains(t, names, "expression")
	assert.Contains(t, names, "sub-interval")
	assert.IsNonDecreasing(t, names)
}

func TestSuggestRule(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"lst", "Did you mean 'list'?"},
		{"sub_interval", "Did you mean 'sub-interval'?"},
		{"Interval-Element", "Did you mean 'interval-element'?"},
		{"zzzzzz", ""},
		{"list", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestRule(tt.name))
		})
	}
}

func TestBitlistElementNotAStartRule(t *testing.T) {
	_, err := Parse(context.Background(), "101", RuleBitlistElement)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be used as a start rule")
}

func TestTreeAttachments(t *testing.T) {
	tree, err := Parse(context.Background(), "[a, [b]]", RuleList)
	require.NoError(t, err)

	list := tree.Root().(*ast.List)
	inner := list.Items[1].(*ast.List)
	b := inner.Items[0]

	at, ok := tree.Attachment(inner)
	require.True(t, ok)
	assert.Equal(t, "items", at.Slot)
	assert.Equal(t, 1, at.Index)
	assert.Same(t, list, tree.Parent(inner))
	assert.Same(t, inner, tree.Parent(b))
	assert.Nil(t, tree.Parent(list))
	assert.Equal(t, 4, tree.Len())
}
