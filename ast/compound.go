package ast

import (
	"strings"
)

// joinNodes renders nodes separated by sep, with an optional trailing spread.
func joinNodes[T Node](items []T, spread *Spread, sep string) string {
	parts := make([]string, 0, len(items)+1)
	for _, item := range items {
		parts = append(parts, item.String())
	}
	if spread != nil {
		parts = append(parts, spread.String())
	}
	return strings.Join(parts, sep)
}

// List is an expression node that holds a list literal.
type List struct {
	Loc
	Items  []Expr
	Spread *Spread
}

func (x *List) exprNode() {}

func (x *List) Kind() Kind     { return KindList }
func (x *List) String() string { return "[" + joinNodes(x.Items, x.Spread, ", ") + "]" }

// MapEntry is one key: value pair of a map literal.
type MapEntry struct {
	Loc
	Key   Expr
	Value Expr
}

func (x *MapEntry) Kind() Kind     { return KindMapEntry }
func (x *MapEntry) String() string { return x.Key.String() + ": " + x.Value.String() }

// Map is an expression node that holds a map literal.
type Map struct {
	Loc
	Entries []*MapEntry
	Spread  *Spread
}

func (x *Map) exprNode() {}

func (x *Map) Kind() Kind     { return KindMap }
func (x *Map) String() string { return "#{" + joinNodes(x.Entries, x.Spread, ", ") + "}" }

// ObjectField is one field of an object literal. Simplified fields were
// written as a bare name, which is shorthand for "name = name"; for those
// Value is an Identifier sharing the field's name and span.
type ObjectField struct {
	Loc
	Name       *Identifier
	Value      Expr
	Simplified bool
}

func (x *ObjectField) Kind() Kind { return KindObjectField }

func (x *ObjectField) String() string {
	if x.Simplified {
		return x.Name.String()
	}
	return x.Name.String() + " = " + x.Value.String()
}

// Object is an expression node that holds an object literal.
type Object struct {
	Loc
	Fields []*ObjectField
	Spread *Spread
}

func (x *Object) exprNode() {}

func (x *Object) Kind() Kind     { return KindObject }
func (x *Object) String() string { return "{" + joinNodes(x.Fields, x.Spread, ", ") + "}" }

// Block is an expression node holding a brace-delimited sequence of
// expressions separated by semicolons.
type Block struct {
	Loc
	Exprs []Expr
}

func (x *Block) exprNode() {}

func (x *Block) Kind() Kind     { return KindBlock }
func (x *Block) String() string { return "{ " + joinNodes(x.Exprs, nil, "; ") + " }" }

// Parameter is one entry of a function parameter list.
type Parameter struct {
	Loc
	Name    *Identifier
	Default Expr // nil if no default value
}

func (x *Parameter) Kind() Kind { return KindParameter }

func (x *Parameter) String() string {
	if x.Default != nil {
		return x.Name.String() + " = " + x.Default.String()
	}
	return x.Name.String()
}

// ParameterList holds the parenthesized parameters of a function literal.
type ParameterList struct {
	Loc
	Params []*Parameter
	Spread *Spread
}

func (x *ParameterList) Kind() Kind     { return KindParameterList }
func (x *ParameterList) String() string { return "(" + joinNodes(x.Params, x.Spread, ", ") + ")" }

// Names returns the names of all parameters, including the spread.
func (x *ParameterList) Names() []string {
	names := make([]string, 0, len(x.Params)+1)
	for _, p := range x.Params {
		names = append(names, p.Name.Name)
	}
	if x.Spread != nil {
		names = append(names, x.Spread.Name.Name)
	}
	return names
}

// ArgumentList holds the parenthesized arguments of a call.
type ArgumentList struct {
	Loc
	Args   []Expr
	Spread *Spread
}

func (x *ArgumentList) Kind() Kind     { return KindArgumentList }
func (x *ArgumentList) String() string { return "(" + joinNodes(x.Args, x.Spread, ", ") + ")" }

// Call is an expression node applying Fun to an argument list.
type Call struct {
	Loc
	Fun  Expr
	Args *ArgumentList
}

func (x *Call) exprNode() {}

func (x *Call) Kind() Kind     { return KindCall }
func (x *Call) String() string { return x.Fun.String() + x.Args.String() }

// Function is an expression node that holds a function literal.
type Function struct {
	Loc
	Params *ParameterList
	Body   *Block
}

func (x *Function) exprNode() {}

func (x *Function) Kind() Kind     { return KindFunction }
func (x *Function) String() string { return "fn" + x.Params.String() + " " + x.Body.String() }
