package parser

import (
	"fmt"
	"strconv"

	"github.com/risor-io/lattice/ast"
	"github.com/risor-io/lattice/errors"
	"github.com/risor-io/lattice/internal/source"
	"github.com/risor-io/lattice/token"
)

var radixNames = map[int]string{2: "binary", 8: "octal", 16: "hexadecimal"}

// bitlist reads `#bin[...]`, `#oct[...]` or `#hex[...]`.
func (p *Parser) bitlist() (*ast.Bitlist, bool, error) {
	return memo(p, RuleBitlist, func() (*ast.Bitlist, bool, error) {
		anchor, start := p.begin()
		radix := 0
		for _, r := range [...]int{2, 8, 16} {
			if p.acceptMacro(ast.RadixMacro(r)) {
				radix = r
				break
			}
		}
		if radix == 0 {
			anchor.Restore()
			return nil, false, nil
		}
		macro := p.spanFrom(start)
		if !p.acceptSpaced(token.LBRACKET) {
			return nil, false, p.expected(errors.E1001, "'[' after "+p.r.Slice(macro), macro)
		}
		open := token.NewSpan(p.r.Position()-1, p.r.Position())
		list := &ast.Bitlist{Radix: radix}
		for {
			inner := p.r.Save()
			el, ok, err := p.bitlistElement(radix)
			if err != nil {
				return nil, false, err
			}
			if !ok {
				inner.Restore()
				break
			}
			list.Elements = append(list.Elements, el)
		}
		if !p.acceptSpaced(token.RBRACKET) {
			return nil, false, p.badBitlistDigit(macro, open, radix)
		}
		list.Loc = ast.At(p.spanFrom(start))
		return list, true, nil
	})
}

// bitlistElement reads an escaped expression or a run of digits in radix.
// The result depends on radix as well as position, so it bypasses the cache.
func (p *Parser) bitlistElement(radix int) (*ast.BitlistElement, bool, error) {
	anchor, start := p.begin()
	esc, ok, err := p.escapedExpression()
	if err != nil {
		return nil, false, err
	}
	if ok {
		return &ast.BitlistElement{Loc: ast.At(p.spanFrom(start)), Radix: radix, Escaped: esc}, true, nil
	}
	digits := p.readWhile(func(ch rune) bool { return isDigit(ch, radix) })
	if digits == "" {
		anchor.Restore()
		return nil, false, nil
	}
	span := p.spanFrom(start)
	value, err := strconv.ParseUint(digits, radix, 64)
	if err != nil {
		return nil, false, p.fail(errors.ErrSyntax, errors.E1008, fmt.Sprintf("%s digits %s do not fit in 64 bits", radixNames[radix], digits), func(b *errors.Builder) {
			b.Code(span, "too many digits")
			b.Hint(span, "Try splitting the digits into several elements")
		})
	}
	return &ast.BitlistElement{Loc: ast.At(span), Radix: radix, Digits: digits, Value: value}, true, nil
}

// badBitlistDigit reports input that stopped a bitlist before its ']'.
func (p *Parser) badBitlistDigit(macro, open token.Span, radix int) error {
	c := p.r.Save()
	p.skipSpace()
	ch := p.r.Current()
	c.Restore()
	if ch == source.NoChar || (!isDigit(ch, 16) && !isLetter(ch)) {
		return p.unclosed(ast.RadixMacro(radix)+" bitlist", open, token.RBRACKET)
	}
	p.skipSpace()
	at := p.r.Position()
	return p.fail(errors.ErrSyntax, errors.E1008, fmt.Sprintf("%s is not a valid %s digit", describe(ch), radixNames[radix]), func(b *errors.Builder) {
		b.CodeAt(at, "invalid digit")
		b.Note(token.NewSpan(macro.Start, open.End), fmt.Sprintf("in this #%s bitlist", ast.RadixMacro(radix)))
	})
}
