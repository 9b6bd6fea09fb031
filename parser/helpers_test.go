package parser

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/risor-io/lattice/ast"
	"github.com/risor-io/lattice/errors"
	"github.com/risor-io/lattice/internal/source"
)

// ignoreSpans compares trees by shape and content only.
var ignoreSpans = cmpopts.IgnoreFields(ast.Loc{}, "Range")

func mustParse(t *testing.T, rule Rule, text string, options ...Option) ast.Node {
	t.Helper()
	tree, err := Parse(context.Background(), text, rule, options...)
	require.NoError(t, err)
	return tree.Root()
}

func mustFail(t *testing.T, rule Rule, text string, options ...Option) *errors.Diagnostic {
	t.Helper()
	_, err := Parse(context.Background(), text, rule, options...)
	require.Error(t, err)
	d, ok := err.(*errors.Diagnostic)
	require.True(t, ok, "expected a diagnostic, got %T: %v", err, err)
	return d
}

func primarySpan(t *testing.T, d *errors.Diagnostic) [2]int {
	t.Helper()
	a, ok := d.Primary()
	require.True(t, ok, "diagnostic has no code annotation")
	return [2]int{int(a.Span.Start), int(a.Span.End)}
}

func newParser(text string, options ...Option) *Parser {
	return New(source.NewString("test", text), options...)
}

func sameTree(t *testing.T, want, got ast.Node) {
	t.Helper()
	if diff := cmp.Diff(want, got, ignoreSpans); diff != "" {
		t.Errorf("trees differ (-want +got):\n%s", diff)
	}
}

// countingReader counts every character examination.
type countingReader struct {
	source.Reader
	reads int
}

func (r *countingReader) CharAt(offset int) (rune, error) {
	r.reads++
	return r.Reader.CharAt(offset)
}

func (r *countingReader) Current() rune {
	r.reads++
	return r.Reader.Current()
}
