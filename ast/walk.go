package ast

import "iter"

// Child is a named, ordered link from a node to one of its children. Index
// is the position within a repeated slot, or -1 for single-valued slots.
type Child struct {
	Name  string
	Index int
	Node  Node
}

func one(name string, n Node) Child { return Child{Name: name, Index: -1, Node: n} }

// Children returns the children of node in source order. This is the
// tree-walk contract consumed by later compilation stages.
func Children(node Node) []Child {
	var out []Child
	add := func(name string, n Node) {
		out = append(out, one(name, n))
	}
	addSpread := func(s *Spread) {
		if s != nil {
			add("spread", s)
		}
	}
	switch n := node.(type) {
	case *Spread:
		add("name", n.Name)
	case *List:
		for i, item := range n.Items {
			out = append(out, Child{Name: "items", Index: i, Node: item})
		}
		addSpread(n.Spread)
	case *MapEntry:
		add("key", n.Key)
		add("value", n.Value)
	case *Map:
		for i, entry := range n.Entries {
			out = append(out, Child{Name: "entries", Index: i, Node: entry})
		}
		addSpread(n.Spread)
	case *ObjectField:
		add("name", n.Name)
		// A simplified field's value is its name; report it once.
		if !n.Simplified {
			add("value", n.Value)
		}
	case *Object:
		for i, field := range n.Fields {
			out = append(out, Child{Name: "fields", Index: i, Node: field})
		}
		addSpread(n.Spread)
	case *Block:
		for i, expr := range n.Exprs {
			out = append(out, Child{Name: "exprs", Index: i, Node: expr})
		}
	case *Parameter:
		add("name", n.Name)
		if n.Default != nil {
			add("default", n.Default)
		}
	case *ParameterList:
		for i, param := range n.Params {
			out = append(out, Child{Name: "params", Index: i, Node: param})
		}
		addSpread(n.Spread)
	case *ArgumentList:
		for i, arg := range n.Args {
			out = append(out, Child{Name: "args", Index: i, Node: arg})
		}
		addSpread(n.Spread)
	case *Call:
		add("fun", n.Fun)
		add("args", n.Args)
	case *Function:
		add("params", n.Params)
		add("body", n.Body)
	case *EscapedExpression:
		add("x", n.X)
	case *Interval:
		add("root", n.Root)
	case *SubInterval:
		for i, item := range n.Items {
			out = append(out, Child{Name: "items", Index: i, Node: item})
		}
	case *IntervalElement:
		add("left", n.Left)
		if n.Right != nil {
			add("right", n.Right)
		}
	case *UnicodeInterval:
		for i, el := range n.Elements {
			out = append(out, Child{Name: "elements", Index: i, Node: el})
		}
	case *UnicodeElement:
		add("low", n.Low)
		if n.High != nil {
			add("high", n.High)
		}
	case *Bitlist:
		for i, el := range n.Elements {
			out = append(out, Child{Name: "elements", Index: i, Node: el})
		}
	case *BitlistElement:
		if n.Escaped != nil {
			add("escaped", n.Escaped)
		}
	case *Identifier, *Integer, *Char, *String, *CodePoint:
		// No children
	}
	return out
}

// Visitor defines the interface for tree traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses a tree in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each child of node.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	for _, c := range Children(node) {
		Walk(v, c.Node)
	}
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses a tree in depth-first order. If f returns false for a
// node, its children are skipped.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

// All returns an iterator over node and all of its descendants in
// depth-first order.
func All(node Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		stop := false
		Inspect(node, func(n Node) bool {
			if stop {
				return false
			}
			if !yield(n) {
				stop = true
				return false
			}
			return true
		})
	}
}
