// Package ast defines the parse tree produced by the Lattice parser.
//
// Every node records its matched span and a Kind tag. Nodes are immutable
// once the parser has finalized them; the relationship between a node and
// the parent that uses it is recorded outside the node, in a Tree.
package ast

import "github.com/risor-io/lattice/token"

// Node represents a portion of the parse tree.
type Node interface {
	// Kind returns the production that built the node.
	Kind() Kind

	// Span returns the half-open range of source consumed by the node.
	Span() token.Span

	// String returns a human friendly representation of the Node. This should
	// be similar to the original source code, but not necessarily identical.
	String() string
}

// Expr represents a node that may appear wherever an expression is expected.
type Expr interface {
	Node
	exprNode()
}

// Operand is one side of an interval range element.
type Operand interface {
	Node
	// IsConstant is true when the operand is a literal known at parse time,
	// false when it is an escaped expression evaluated later.
	IsConstant() bool
}

// IntervalItem is a member of a sub-interval: either a nested SubInterval or
// an IntervalElement.
type IntervalItem interface {
	Node
	intervalItem()
}

// Loc is embedded in every node and records its matched span.
type Loc struct {
	Range token.Span
}

// Span returns the recorded span.
func (l Loc) Span() token.Span { return l.Range }

// At returns a Loc for the given span.
func At(span token.Span) Loc { return Loc{Range: span} }
