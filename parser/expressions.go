package parser

import (
	"github.com/risor-io/lattice/ast"
	"github.com/risor-io/lattice/errors"
	"github.com/risor-io/lattice/token"
)

// expression reads a primary followed by any number of argument lists.
func (p *Parser) expression() (ast.Expr, bool, error) {
	return memo(p, RuleExpression, func() (ast.Expr, bool, error) {
		if err := p.enter(RuleExpression); err != nil {
			return nil, false, err
		}
		defer p.leave()

		anchor, start := p.begin()
		x, ok, err := p.primary()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			anchor.Restore()
			return nil, false, nil
		}
		for {
			args, ok, err := p.argumentList()
			if err != nil {
				return nil, false, err
			}
			if !ok {
				return x, true, nil
			}
			x = &ast.Call{Loc: ast.At(p.spanFrom(start)), Fun: x, Args: args}
		}
	})
}

// primary tries each expression form in turn. Order matters where forms
// share a prefix: macros before an unknown '#', objects before blocks.
func (p *Parser) primary() (ast.Expr, bool, error) {
	alternatives := [...]func() (ast.Expr, bool, error){
		func() (ast.Expr, bool, error) { return asExpr(p.stringLiteral()) },
		func() (ast.Expr, bool, error) { return asExpr(p.interval()) },
		func() (ast.Expr, bool, error) { return asExpr(p.unicodeInterval()) },
		func() (ast.Expr, bool, error) { return asExpr(p.bitlist()) },
		func() (ast.Expr, bool, error) { return asExpr(p.mapLiteral()) },
		p.unknownMacro,
		func() (ast.Expr, bool, error) { return asExpr(p.list()) },
		func() (ast.Expr, bool, error) { return asExpr(p.object()) },
		func() (ast.Expr, bool, error) { return asExpr(p.block()) },
		func() (ast.Expr, bool, error) { return asExpr(p.function()) },
		func() (ast.Expr, bool, error) { return asExpr(p.integer()) },
		func() (ast.Expr, bool, error) { return asExpr(p.char()) },
		func() (ast.Expr, bool, error) { return asExpr(p.identifier()) },
	}
	for _, alt := range alternatives {
		x, ok, err := alt()
		if err != nil || ok {
			return x, ok, err
		}
	}
	return nil, false, nil
}

// asExpr converts a concrete production result to an Expr, keeping a
// non-match as an untyped nil.
func asExpr[T ast.Expr](x T, ok bool, err error) (ast.Expr, bool, error) {
	if err != nil || !ok {
		return nil, false, err
	}
	return x, true, nil
}

// function reads `fn (params) { body }`.
func (p *Parser) function() (*ast.Function, bool, error) {
	return memo(p, RuleFunction, func() (*ast.Function, bool, error) {
		anchor, start := p.begin()
		if !p.peek(token.FUNCTION) || isIdentPart(p.charAt(len(token.FUNCTION))) {
			anchor.Restore()
			return nil, false, nil
		}
		p.advance(len(token.FUNCTION))
		keyword := p.spanFrom(start)
		params, ok, err := p.parameterList()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, p.expected(errors.E1001, "'(' to start the parameter list", keyword)
		}
		body, ok, err := p.block()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, p.expected(errors.E1001, "'{' to start the function body", p.spanFrom(start))
		}
		return &ast.Function{Loc: ast.At(p.spanFrom(start)), Params: params, Body: body}, true, nil
	})
}

func (p *Parser) parameterList() (*ast.ParameterList, bool, error) {
	return memo(p, RuleParameterList, func() (*ast.ParameterList, bool, error) {
		anchor, start := p.begin()
		if !p.accept(token.LPAREN) {
			anchor.Restore()
			return nil, false, nil
		}
		open := p.spanFrom(start)
		params, spread, err := elements(p, commaList, p.parameter)
		if err != nil {
			return nil, false, err
		}
		if !p.acceptSpaced(token.RPAREN) {
			return nil, false, p.unclosed("parameter list", open, token.RPAREN)
		}
		return &ast.ParameterList{Loc: ast.At(p.spanFrom(start)), Params: params, Spread: spread}, true, nil
	})
}

// parameter reads `name` or `name = default`.
func (p *Parser) parameter() (*ast.Parameter, bool, error) {
	return memo(p, RuleParameter, func() (*ast.Parameter, bool, error) {
		anchor, start := p.begin()
		name, ok, err := p.identifier()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			anchor.Restore()
			return nil, false, nil
		}
		param := &ast.Parameter{Name: name}
		if p.acceptSpaced(token.ASSIGN) {
			def, ok, err := p.expression()
			if err != nil {
				return nil, false, err
			}
			if !ok {
				return nil, false, p.expected(errors.E1004, "a default value for parameter "+name.Name, p.spanFrom(start))
			}
			param.Default = def
		}
		param.Loc = ast.At(p.spanFrom(start))
		return param, true, nil
	})
}

func (p *Parser) argumentList() (*ast.ArgumentList, bool, error) {
	return memo(p, RuleArgumentList, func() (*ast.ArgumentList, bool, error) {
		anchor, start := p.begin()
		if !p.accept(token.LPAREN) {
			anchor.Restore()
			return nil, false, nil
		}
		open := p.spanFrom(start)
		args, spread, err := elements(p, commaList, p.expression)
		if err != nil {
			return nil, false, err
		}
		if !p.acceptSpaced(token.RPAREN) {
			return nil, false, p.unclosed("argument list", open, token.RPAREN)
		}
		return &ast.ArgumentList{Loc: ast.At(p.spanFrom(start)), Args: args, Spread: spread}, true, nil
	})
}
