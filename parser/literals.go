package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/risor-io/lattice/ast"
	"github.com/risor-io/lattice/errors"
	"github.com/risor-io/lattice/internal/source"
	"github.com/risor-io/lattice/token"
)

func (p *Parser) identifier() (*ast.Identifier, bool, error) {
	return memo(p, RuleIdentifier, func() (*ast.Identifier, bool, error) {
		anchor, start := p.begin()
		if !isIdentStart(p.r.Current()) {
			anchor.Restore()
			return nil, false, nil
		}
		name := p.readWhile(isIdentPart)
		if token.IsKeyword(name) {
			anchor.Restore()
			return nil, false, nil
		}
		return &ast.Identifier{Loc: ast.At(p.spanFrom(start)), Name: name}, true, nil
	})
}

func (p *Parser) integer() (*ast.Integer, bool, error) {
	return memo(p, RuleInteger, func() (*ast.Integer, bool, error) {
		anchor, start := p.begin()
		if !isDecimal(p.r.Current()) {
			anchor.Restore()
			return nil, false, nil
		}
		radix := 10
		if p.accept(token.HEX_PFX) {
			radix = 16
		}
		digits := p.readWhile(func(ch rune) bool { return isDigit(ch, radix) })
		span := p.spanFrom(start)
		literal := p.r.Slice(span)
		if digits == "" {
			return nil, false, p.fail(errors.ErrSyntax, errors.E1008, "hexadecimal literal has no digits", func(b *errors.Builder) {
				b.Code(span, "missing digits")
				b.HintAt(span.End, "Try adding hexadecimal digits, like 0x1f")
			})
		}
		value, err := strconv.ParseInt(digits, radix, 64)
		if err != nil {
			return nil, false, p.fail(errors.ErrSyntax, errors.E1008, "integer literal "+literal+" is out of range", func(b *errors.Builder) {
				b.Code(span, "does not fit in 64 bits")
			})
		}
		return &ast.Integer{Loc: ast.At(span), Literal: literal, Value: value}, true, nil
	})
}

func (p *Parser) char() (*ast.Char, bool, error) {
	return memo(p, RuleChar, func() (*ast.Char, bool, error) {
		anchor, start := p.begin()
		if p.r.Current() != '\'' {
			anchor.Restore()
			return nil, false, nil
		}
		value, err := p.quotedChar(start)
		if err != nil {
			return nil, false, err
		}
		span := p.spanFrom(start)
		return &ast.Char{Loc: ast.At(span), Literal: p.r.Slice(span), Value: value}, true, nil
	})
}

// quotedChar reads 'c' starting at the opening quote, which the caller has
// already checked.
func (p *Parser) quotedChar(start token.Pos) (rune, error) {
	p.advance(1)
	var value rune
	switch ch := p.r.Current(); ch {
	case '\\':
		decoded, err := p.escape()
		if err != nil {
			return 0, err
		}
		runes := []rune(decoded)
		value = runes[0]
	case '\'', '\n', source.NoChar:
		span := p.spanFrom(start)
		return 0, p.fail(errors.ErrSyntax, errors.E1013, "empty character literal", func(b *errors.Builder) {
			b.Code(span, "expected a character")
			b.HintAt(span.End, "Try adding a character, like 'a'")
		})
	default:
		value = ch
		p.advance(1)
	}
	if !p.accept(token.APOSTROPHE) {
		at := p.r.Position()
		return 0, p.fail(errors.ErrSyntax, errors.E1013, "character literal must hold exactly one character", func(b *errors.Builder) {
			b.Code(token.NewSpan(start, at), "unterminated character literal")
			b.HintAt(at, "Try adding the closing \"'\" here")
			b.Note(token.NewSpan(start, at), "use a string for more than one character")
		})
	}
	return value, nil
}

const validEscapes = `\n \t \r \0 \\ \" \' \$ \u{...}`

// escape decodes one backslash escape at the current position.
func (p *Parser) escape() (string, error) {
	start := p.r.Position()
	p.advance(1)
	ch := p.r.Current()
	var decoded string
	switch ch {
	case 'n':
		decoded = "\n"
	case 't':
		decoded = "\t"
	case 'r':
		decoded = "\r"
	case '0':
		decoded = "\x00"
	case '\\', '"', '\'', '$':
		decoded = string(ch)
	case 'u':
		return p.unicodeEscape(start)
	default:
		if ch != source.NoChar {
			p.advance(1)
		}
		span := p.spanFrom(start)
		return "", p.fail(errors.ErrSyntax, errors.E1010, "invalid escape sequence "+p.r.Slice(span), func(b *errors.Builder) {
			b.Code(span, "unknown escape")
			b.Hint(span, "Valid escapes are "+validEscapes)
		})
	}
	p.advance(1)
	return decoded, nil
}

// unicodeEscape decodes \u{hex} with the reader on the 'u'.
func (p *Parser) unicodeEscape(start token.Pos) (string, error) {
	p.advance(1)
	invalid := func(msg string) error {
		span := p.spanFrom(start)
		return p.fail(errors.ErrSyntax, errors.E1010, msg, func(b *errors.Builder) {
			b.Code(span, "invalid unicode escape")
			b.Hint(span, `Write unicode escapes as \u{1F600}`)
		})
	}
	if !p.accept(token.LBRACE) {
		return "", invalid("unicode escape must be followed by '{'")
	}
	digits := p.readWhile(func(ch rune) bool { return isDigit(ch, 16) })
	if !p.accept(token.RBRACE) {
		return "", invalid("unterminated unicode escape")
	}
	if digits == "" || len(digits) > 6 {
		return "", invalid("unicode escape must have between 1 and 6 hex digits")
	}
	value, _ := strconv.ParseUint(digits, 16, 32)
	if value > 0x10FFFF || (value >= 0xD800 && value <= 0xDFFF) {
		return "", invalid("unicode escape " + p.r.Slice(p.spanFrom(start)) + " is not a valid code point")
	}
	return string(rune(value)), nil
}

// stringLiteral reads a fenced string: n '$', a quote, content, a quote and
// exactly n '$'. A quote followed by fewer than n '$' is content.
func (p *Parser) stringLiteral() (*ast.String, bool, error) {
	return memo(p, RuleString, func() (*ast.String, bool, error) {
		anchor, start := p.begin()
		fence := 0
		for p.charAt(fence) == '$' {
			fence++
		}
		if p.charAt(fence) != '"' {
			anchor.Restore()
			return nil, false, nil
		}
		p.advance(fence + 1)
		closer := token.QUOTE + strings.Repeat(token.DOLLAR, fence)

		var parts []ast.StringPart
		var value strings.Builder
		rawStart := p.r.Position()
		flush := func() {
			span := p.spanFrom(rawStart)
			if span.IsEmpty() {
				return
			}
			text := p.r.Slice(span)
			parts = append(parts, ast.StringPart{Loc: ast.At(span), Literal: text, Value: text})
			value.WriteString(text)
		}
		for {
			switch p.r.Current() {
			case source.NoChar:
				span := p.spanFrom(start)
				opener := p.r.Slice(token.NewSpan(start, start+token.Pos(fence+1)))
				return nil, false, p.fail(errors.ErrSyntax, errors.E1002, "unterminated string literal", func(b *errors.Builder) {
					b.Code(span, "string starts here")
					b.HintAt(span.End, "Try adding the closing "+strconv.Quote(closer)+" here")
					b.Note(token.NewSpan(start, start+token.Pos(fence+1)), "opened with "+strconv.Quote(opener))
				})
			case '"':
				if p.peek(closer) {
					flush()
					p.advance(fence + 1)
					span := p.spanFrom(start)
					return &ast.String{Loc: ast.At(span), Fence: fence, Parts: parts, Value: value.String()}, true, nil
				}
				p.advance(1)
			case '\\':
				flush()
				escStart := p.r.Position()
				decoded, err := p.escape()
				if err != nil {
					return nil, false, err
				}
				span := p.spanFrom(escStart)
				parts = append(parts, ast.StringPart{Loc: ast.At(span), Escape: true, Literal: p.r.Slice(span), Value: decoded})
				value.WriteString(decoded)
				rawStart = p.r.Position()
			default:
				p.advance(1)
			}
		}
	})
}

// spread reads "...name" or "...@name".
func (p *Parser) spread() (*ast.Spread, bool, error) {
	return memo(p, RuleSpread, func() (*ast.Spread, bool, error) {
		anchor, start := p.begin()
		if !p.accept(token.SPREAD) {
			anchor.Restore()
			return nil, false, nil
		}
		keyword := p.accept(token.AT)
		prefix := p.spanFrom(start)
		if err := p.spreadGap(prefix); err != nil {
			return nil, false, err
		}
		name, ok, err := p.identifier()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, p.expected(errors.E1006, "an identifier after "+strconv.Quote(p.r.Slice(prefix)), prefix)
		}
		return &ast.Spread{Loc: ast.At(p.spanFrom(start)), Name: name, Keyword: keyword}, true, nil
	})
}

// spreadGap rejects whitespace between a spread prefix and its name.
func (p *Parser) spreadGap(prefix token.Span) error {
	c := p.r.Save()
	p.skipSpace()
	gap := p.spanFrom(prefix.End)
	named := isIdentStart(p.r.Current())
	c.Restore()
	if gap.IsEmpty() || !named {
		return nil
	}
	written := p.r.Slice(prefix)
	return p.fail(errors.ErrSyntax, errors.E1006, fmt.Sprintf("spread name must follow %q directly", written), func(b *errors.Builder) {
		b.Code(gap, "unexpected space")
		b.Hint(gap, fmt.Sprintf("Try writing %sname without the space", written))
	})
}
