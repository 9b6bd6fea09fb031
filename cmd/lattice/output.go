package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/risor-io/lattice/ast"
)

var outputFormats = []string{"tree", "text", "json"}

func isOutputFormat(format string) bool {
	for _, f := range outputFormats {
		if f == strings.ToLower(format) {
			return true
		}
	}
	return false
}

func formatTree(v *viper.Viper, w io.Writer, tree *ast.Tree, format string) (string, error) {
	switch strings.ToLower(format) {
	case "tree":
		var b strings.Builder
		writeTree(&b, tree.Root(), "", 0)
		return strings.TrimSuffix(b.String(), "\n"), nil
	case "text":
		return tree.Root().String(), nil
	case "json":
		data, err := getOutputJSON(v, w, nodeToJSON(tree.Root(), ""))
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown output format: %s", format)
	}
}

// ASTNode represents a node in the JSON tree output
type ASTNode struct {
	Type     string     `json:"type"`
	Slot     string     `json:"slot,omitempty"`
	Value    any        `json:"value,omitempty"`
	Span     [2]int     `json:"span"`
	Children []*ASTNode `json:"children,omitempty"`
}

func nodeToJSON(node ast.Node, slot string) *ASTNode {
	span := node.Span()
	result := &ASTNode{
		Type: node.Kind().String(),
		Slot: slot,
		Span: [2]int{int(span.Start), int(span.End)},
	}
	if value, ok := nodeValue(node); ok {
		result.Value = value
	}
	for _, child := range ast.Children(node) {
		result.Children = append(result.Children, nodeToJSON(child.Node, slotName(child)))
	}
	return result
}

// nodeValue returns the scalar held by a leaf, or a flag of a compound.
func nodeValue(node ast.Node) (any, bool) {
	switch n := node.(type) {
	case *ast.Identifier:
		return n.Name, true
	case *ast.Integer:
		return n.Value, true
	case *ast.Char:
		return string(n.Value), true
	case *ast.String:
		return n.Value, true
	case *ast.CodePoint:
		return n.Hex(), true
	case *ast.Spread:
		if n.Keyword {
			return "keyword", true
		}
	case *ast.SubInterval:
		if n.Op != ast.OpNone {
			op := n.Op.String()
			if n.Reversed {
				op += "~"
			}
			return op, true
		}
	case *ast.Bitlist:
		return ast.RadixMacro(n.Radix), true
	case *ast.BitlistElement:
		if n.Escaped == nil {
			return n.Value, true
		}
	case *ast.ObjectField:
		if n.Simplified {
			return "simplified", true
		}
	}
	return nil, false
}

func slotName(c ast.Child) string {
	if c.Index < 0 {
		return c.Name
	}
	return c.Name + "[" + strconv.Itoa(c.Index) + "]"
}

func writeTree(b *strings.Builder, node ast.Node, slot string, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if slot != "" {
		b.WriteString(slot)
		b.WriteString(": ")
	}
	b.WriteString(node.Kind().String())
	if value, ok := nodeValue(node); ok {
		if s, isString := value.(string); isString && quoted(node) {
			value = strconv.Quote(s)
		}
		fmt.Fprintf(b, " %v", value)
	}
	fmt.Fprintf(b, " %s\n", node.Span())
	for _, child := range ast.Children(node) {
		writeTree(b, child.Node, slotName(child), depth+1)
	}
}

func quoted(node ast.Node) bool {
	switch node.(type) {
	case *ast.Char, *ast.String:
		return true
	}
	return false
}
