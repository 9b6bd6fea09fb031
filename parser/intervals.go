package parser

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/risor-io/lattice/ast"
	"github.com/risor-io/lattice/errors"
	"github.com/risor-io/lattice/token"
)

// acceptMacro consumes "#name" if the word after '#' is exactly name.
func (p *Parser) acceptMacro(name string) bool {
	if p.r.Current() != '#' {
		return false
	}
	c := p.r.Save()
	p.advance(1)
	if p.readWhile(isLetter) == name {
		return true
	}
	c.Restore()
	return false
}

// macroNames are the words that may follow '#', with "{" for the map opener.
var macroNames = errors.NewVocabulary(token.HASH,
	append(slices.Clone(token.Macros), strings.TrimPrefix(token.MAP_MACRO, token.HASH))...).
	WithAlias("map", strings.TrimPrefix(token.MAP_MACRO, token.HASH)).
	WithAlias("range", token.MacroInterval).
	WithAlias("binary", token.MacroBin).
	WithAlias("octal", token.MacroOct).
	WithAlias("hexadecimal", token.MacroHex)

// unknownMacro fails on '#' followed by a word that names no macro. It is
// tried after every macro production.
func (p *Parser) unknownMacro() (ast.Expr, bool, error) {
	anchor, start := p.begin()
	if p.r.Current() != '#' || !isLetter(p.charAt(1)) {
		anchor.Restore()
		return nil, false, nil
	}
	p.advance(1)
	name := p.readWhile(isLetter)
	span := p.spanFrom(start)
	return nil, false, p.fail(errors.ErrSyntax, errors.E1011, fmt.Sprintf("unknown macro #%s", name), func(b *errors.Builder) {
		b.Code(span, "not a macro")
		if hint := macroNames.Hint(name); hint != "" {
			b.Hint(span, hint)
		}
		b.Note(span, "available macros: "+macroNames.String())
	})
}

// interval reads `#interval[...]`.
func (p *Parser) interval() (*ast.Interval, bool, error) {
	return memo(p, RuleInterval, func() (*ast.Interval, bool, error) {
		anchor, start := p.begin()
		if !p.acceptMacro(token.MacroInterval) {
			anchor.Restore()
			return nil, false, nil
		}
		macro := p.spanFrom(start)
		root, ok, err := p.subInterval()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, p.expected(errors.E1001, "'[' after #interval", macro)
		}
		return &ast.Interval{Loc: ast.At(p.spanFrom(start)), Root: root}, true, nil
	})
}

var intervalOps = map[rune]ast.IntervalOp{
	'+': ast.OpUnion,
	'-': ast.OpDifference,
	'&': ast.OpIntersection,
	'^': ast.OpSymmetricDifference,
}

// subInterval reads `[ (op ~?)? (item ,?)* ]`.
func (p *Parser) subInterval() (*ast.SubInterval, bool, error) {
	return memo(p, RuleSubInterval, func() (*ast.SubInterval, bool, error) {
		if err := p.enter(RuleSubInterval); err != nil {
			return nil, false, err
		}
		defer p.leave()

		anchor, start := p.begin()
		if !p.accept(token.LBRACKET) {
			anchor.Restore()
			return nil, false, nil
		}
		open := p.spanFrom(start)
		sub := &ast.SubInterval{}

		c := p.r.Save()
		p.skipSpace()
		if op, ok := intervalOps[p.r.Current()]; ok {
			p.advance(1)
			sub.Op = op
			sub.Reversed = p.accept(token.TILDE)
		} else {
			c.Restore()
		}

		for {
			inner := p.r.Save()
			item, ok, err := p.intervalItem()
			if err != nil {
				return nil, false, err
			}
			if !ok {
				inner.Restore()
				break
			}
			sub.Items = append(sub.Items, item)
			p.acceptSpaced(token.COMMA)
		}
		if !p.acceptSpaced(token.RBRACKET) {
			return nil, false, p.unclosed("sub-interval", open, token.RBRACKET)
		}
		sub.Loc = ast.At(p.spanFrom(start))
		return sub, true, nil
	})
}

// intervalItem tries an element before a nested sub-interval, so "[[x]]"
// is read as an escaped expression whenever it closes as one. A diagnostic
// raised inside an unclosed "[[" is provisional: the same brackets may open
// two sub-intervals, and the diagnostic is only reported if that reading
// fails too.
func (p *Parser) intervalItem() (ast.IntervalItem, bool, error) {
	c := p.r.Save()
	el, ok, err := p.intervalElement()
	if err == nil && ok {
		return el, true, nil
	}
	if err != nil {
		if err != p.escapeErr {
			return nil, false, err
		}
		c.Restore()
	}
	sub, subOK, subErr := p.subInterval()
	switch {
	case err != nil && (subErr != nil || !subOK):
		c.Restore()
		return nil, false, err
	case subErr != nil || !subOK:
		return nil, false, subErr
	}
	return sub, true, nil
}

// intervalElement reads `operand` or `operand..operand`, committing at "..".
func (p *Parser) intervalElement() (*ast.IntervalElement, bool, error) {
	return memo(p, RuleIntervalElement, func() (*ast.IntervalElement, bool, error) {
		anchor, start := p.begin()
		left, ok, err := p.operand()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			anchor.Restore()
			return nil, false, nil
		}
		el := &ast.IntervalElement{Left: left}
		if p.acceptSpaced(token.RANGE) {
			op := token.NewSpan(p.r.Position()-2, p.r.Position())
			right, ok, err := p.operand()
			if err != nil {
				return nil, false, err
			}
			if !ok {
				return nil, false, p.missingOperand(p.spanFrom(start), op, "an integer or [[expression]]")
			}
			el.Right = right
		}
		el.Loc = ast.At(p.spanFrom(start))
		return el, true, nil
	})
}

// missingOperand reports a ".." without a right-hand side.
func (p *Parser) missingOperand(element, op token.Span, what string) error {
	return p.fail(errors.ErrSyntax, errors.E1005,
		fmt.Sprintf("missing upper bound after %q", token.RANGE),
		func(b *errors.Builder) {
			b.Code(element, "range has no upper bound")
			b.HintAt(op.End, "Try adding "+what+" after the range operator")
			b.Hint(op, fmt.Sprintf("Or remove the range operator %q", token.RANGE))
		})
}

// operand reads an escaped expression or an integer. Both results are
// returned as untyped nil when absent.
func (p *Parser) operand() (ast.Operand, bool, error) {
	esc, ok, err := p.escapedExpression()
	if err != nil {
		return nil, false, err
	}
	if ok {
		return esc, true, nil
	}
	n, ok, err := p.integer()
	if err != nil || !ok {
		return nil, false, err
	}
	return n, true, nil
}

// escapedExpression reads `[[expr]]`. Since "[[" also opens nested
// sub-intervals, the production only commits at the closing "]]" and is
// absent otherwise.
func (p *Parser) escapedExpression() (*ast.EscapedExpression, bool, error) {
	return memo(p, RuleEscapedExpression, func() (*ast.EscapedExpression, bool, error) {
		anchor, start := p.begin()
		if !p.accept(token.ESCAPE_OPEN) {
			anchor.Restore()
			return nil, false, nil
		}
		x, ok, err := p.expression()
		if err != nil {
			p.escapeErr = err
			return nil, false, err
		}
		if !ok || !p.acceptSpaced(token.ESCAPE_CLOSE) {
			anchor.Restore()
			return nil, false, nil
		}
		return &ast.EscapedExpression{Loc: ast.At(p.spanFrom(start)), X: x}, true, nil
	})
}

// unicodeInterval reads `#unicode[ element* ]`.
func (p *Parser) unicodeInterval() (*ast.UnicodeInterval, bool, error) {
	return memo(p, RuleUnicodeInterval, func() (*ast.UnicodeInterval, bool, error) {
		anchor, start := p.begin()
		if !p.acceptMacro(token.MacroUnicode) {
			anchor.Restore()
			return nil, false, nil
		}
		macro := p.spanFrom(start)
		if !p.acceptSpaced(token.LBRACKET) {
			return nil, false, p.expected(errors.E1001, "'[' after #unicode", macro)
		}
		open := token.NewSpan(p.r.Position()-1, p.r.Position())
		u := &ast.UnicodeInterval{}
		for {
			inner := p.r.Save()
			el, ok, err := p.unicodeElement()
			if err != nil {
				return nil, false, err
			}
			if !ok {
				inner.Restore()
				break
			}
			u.Elements = append(u.Elements, el)
			p.acceptSpaced(token.COMMA)
		}
		if !p.acceptSpaced(token.RBRACKET) {
			return nil, false, p.unclosed("unicode interval", open, token.RBRACKET)
		}
		u.Loc = ast.At(p.spanFrom(start))
		return u, true, nil
	})
}

// unicodeElement reads a code point or a range of code points.
func (p *Parser) unicodeElement() (*ast.UnicodeElement, bool, error) {
	return memo(p, RuleUnicodeElement, func() (*ast.UnicodeElement, bool, error) {
		anchor, start := p.begin()
		low, ok, err := p.codePoint()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			anchor.Restore()
			return nil, false, nil
		}
		el := &ast.UnicodeElement{Low: low}
		if p.acceptSpaced(token.RANGE) {
			op := token.NewSpan(p.r.Position()-2, p.r.Position())
			high, ok, err := p.codePoint()
			if err != nil {
				return nil, false, err
			}
			if !ok {
				return nil, false, p.missingOperand(p.spanFrom(start), op, "a code point like 'z' or U+007A")
			}
			if high.Value < low.Value {
				span := p.spanFrom(start)
				return nil, false, p.fail(errors.ErrSyntax, errors.E1015,
					fmt.Sprintf("reversed code point range %s..%s", low.Hex(), high.Hex()),
					func(b *errors.Builder) {
						b.Code(span, "lower bound is greater than upper bound")
						b.Hint(span, fmt.Sprintf("Try writing %s..%s", high.Literal, low.Literal))
					})
			}
			el.High = high
		}
		el.Loc = ast.At(p.spanFrom(start))
		return el, true, nil
	})
}

// codePoint reads 'c' or U+XXXX.
func (p *Parser) codePoint() (*ast.CodePoint, bool, error) {
	return memo(p, RuleCodePoint, func() (*ast.CodePoint, bool, error) {
		anchor, start := p.begin()
		switch {
		case p.r.Current() == '\'':
			value, err := p.quotedChar(start)
			if err != nil {
				return nil, false, err
			}
			span := p.spanFrom(start)
			return &ast.CodePoint{Loc: ast.At(span), Literal: p.r.Slice(span), Value: value}, true, nil
		case p.accept(token.UNICODE_PFX):
			digits := p.readWhile(func(ch rune) bool { return isDigit(ch, 16) })
			span := p.spanFrom(start)
			value, err := strconv.ParseUint(digits, 16, 32)
			if digits == "" || len(digits) > 6 || err != nil || value > 0x10FFFF {
				return nil, false, p.fail(errors.ErrSyntax, errors.E1008, "invalid code point "+p.r.Slice(span), func(b *errors.Builder) {
					b.Code(span, "expected 1 to 6 hex digits up to 10FFFF")
					b.Hint(span, "Write code points as U+0041")
				})
			}
			return &ast.CodePoint{Loc: ast.At(span), Literal: p.r.Slice(span), Value: rune(value)}, true, nil
		default:
			anchor.Restore()
			return nil, false, nil
		}
	})
}
