package parser

import (
	"github.com/risor-io/lattice/ast"
	"github.com/risor-io/lattice/errors"
	"github.com/risor-io/lattice/token"
)

// sequence describes the body of a bracketed construct.
type sequence struct {
	sep    string // separator between elements
	spread bool   // whether a trailing spread element is allowed
}

var (
	commaList     = sequence{sep: token.COMMA, spread: true}
	semicolonList = sequence{sep: token.SEMICOLON}
)

// elements reads `element (sep element)* sep? spread?` after an opening
// delimiter. Each attempt runs from an inner cursor; the first absent
// element ends the repetition and its separator is given back, then
// accepted again as the optional trailing separator.
func elements[T ast.Node](p *Parser, seq sequence, element func() (T, bool, error)) ([]T, *ast.Spread, error) {
	var items []T
	for {
		inner := p.r.Save()
		if len(items) > 0 && !p.acceptSpaced(seq.sep) {
			break
		}
		item, ok, err := element()
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			inner.Restore()
			break
		}
		items = append(items, item)
	}
	separated := len(items) == 0 || p.acceptSpaced(seq.sep)
	if !seq.spread || !separated {
		return items, nil, nil
	}
	spread, ok, err := p.spread()
	if err != nil || !ok {
		return items, nil, err
	}
	p.acceptSpaced(seq.sep)
	return items, spread, nil
}

func (p *Parser) list() (*ast.List, bool, error) {
	return memo(p, RuleList, func() (*ast.List, bool, error) {
		anchor, start := p.begin()
		if !p.accept(token.LBRACKET) {
			anchor.Restore()
			return nil, false, nil
		}
		open := p.spanFrom(start)
		items, spread, err := elements(p, commaList, p.expression)
		if err != nil {
			return nil, false, err
		}
		if !p.acceptSpaced(token.RBRACKET) {
			return nil, false, p.unclosed("list", open, token.RBRACKET)
		}
		return &ast.List{Loc: ast.At(p.spanFrom(start)), Items: items, Spread: spread}, true, nil
	})
}

func (p *Parser) mapLiteral() (*ast.Map, bool, error) {
	return memo(p, RuleMap, func() (*ast.Map, bool, error) {
		anchor, start := p.begin()
		if !p.accept(token.MAP_MACRO) {
			anchor.Restore()
			return nil, false, nil
		}
		open := p.spanFrom(start)
		entries, spread, err := elements(p, commaList, p.mapEntry)
		if err != nil {
			return nil, false, err
		}
		if !p.acceptSpaced(token.RBRACE) {
			return nil, false, p.unclosed("map", open, token.RBRACE)
		}
		return &ast.Map{Loc: ast.At(p.spanFrom(start)), Entries: entries, Spread: spread}, true, nil
	})
}

// mapEntry reads `key: value`. The entry commits once its key is read.
func (p *Parser) mapEntry() (*ast.MapEntry, bool, error) {
	return memo(p, RuleMapEntry, func() (*ast.MapEntry, bool, error) {
		anchor, start := p.begin()
		key, ok, err := p.expression()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			anchor.Restore()
			return nil, false, nil
		}
		if !p.acceptSpaced(token.COLON) {
			return nil, false, p.expected(errors.E1001, "':' after map key", key.Span())
		}
		value, ok, err := p.expression()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, p.expected(errors.E1004, "a value for map key "+key.String(), p.spanFrom(start))
		}
		return &ast.MapEntry{Loc: ast.At(p.spanFrom(start)), Key: key, Value: value}, true, nil
	})
}

// object reads `{ field, ... }`. Braces without any field are left for
// block, so "{}" is an empty block and "{ x }" is an object.
func (p *Parser) object() (*ast.Object, bool, error) {
	return memo(p, RuleObject, func() (*ast.Object, bool, error) {
		anchor, start := p.begin()
		if !p.accept(token.LBRACE) {
			anchor.Restore()
			return nil, false, nil
		}
		open := p.spanFrom(start)
		fields, spread, err := elements(p, commaList, p.objectField)
		if err != nil {
			return nil, false, err
		}
		if len(fields) == 0 && spread == nil {
			anchor.Restore()
			return nil, false, nil
		}
		if !p.acceptSpaced(token.RBRACE) {
			return nil, false, p.unclosed("object", open, token.RBRACE)
		}
		return &ast.Object{Loc: ast.At(p.spanFrom(start)), Fields: fields, Spread: spread}, true, nil
	})
}

// objectField reads `name = value`, falling back to a shorthand field.
func (p *Parser) objectField() (*ast.ObjectField, bool, error) {
	return memo(p, RuleObjectField, func() (*ast.ObjectField, bool, error) {
		anchor, start := p.begin()
		name, ok, err := p.identifier()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			anchor.Restore()
			return nil, false, nil
		}
		if !p.acceptSpaced(token.ASSIGN) {
			anchor.Restore()
			return p.objectSimplification()
		}
		value, ok, err := p.expression()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, p.expected(errors.E1004, "a value for field "+name.Name, p.spanFrom(start))
		}
		return &ast.ObjectField{Loc: ast.At(p.spanFrom(start)), Name: name, Value: value}, true, nil
	})
}

// objectSimplification reads a bare field name, shorthand for name = name.
// It only matches when the name is followed by ',' or '}'.
func (p *Parser) objectSimplification() (*ast.ObjectField, bool, error) {
	return memo(p, RuleObjectSimplification, func() (*ast.ObjectField, bool, error) {
		anchor, _ := p.begin()
		name, ok, err := p.identifier()
		if err != nil {
			return nil, false, err
		}
		if !ok || !(p.peekSpaced(token.COMMA) || p.peekSpaced(token.RBRACE)) {
			anchor.Restore()
			return nil, false, nil
		}
		return &ast.ObjectField{Loc: ast.At(name.Span()), Name: name, Value: name, Simplified: true}, true, nil
	})
}

// block reads `{ expr; expr; ... }`, an optional trailing ';' included.
func (p *Parser) block() (*ast.Block, bool, error) {
	return memo(p, RuleBlock, func() (*ast.Block, bool, error) {
		anchor, start := p.begin()
		if !p.accept(token.LBRACE) {
			anchor.Restore()
			return nil, false, nil
		}
		open := p.spanFrom(start)
		exprs, _, err := elements(p, semicolonList, p.expression)
		if err != nil {
			return nil, false, err
		}
		if !p.acceptSpaced(token.RBRACE) {
			return nil, false, p.unclosed("block", open, token.RBRACE)
		}
		return &ast.Block{Loc: ast.At(p.spanFrom(start)), Exprs: exprs}, true, nil
	})
}
