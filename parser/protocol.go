package parser

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/risor-io/lattice/errors"
	"github.com/risor-io/lattice/internal/source"
	"github.com/risor-io/lattice/token"
)

// begin anchors a production. The returned cursor restores the reader to
// where the rule was entered; start is the first significant character,
// after any whitespace and comments.
func (p *Parser) begin() (anchor source.Cursor, start token.Pos) {
	anchor = p.r.Save()
	p.skipSpace()
	return anchor, p.r.Position()
}

// spanFrom returns the span from start to the current position.
func (p *Parser) spanFrom(start token.Pos) token.Span {
	return token.NewSpan(start, p.r.Position())
}

// skipSpace consumes whitespace and line comments.
func (p *Parser) skipSpace() {
	for {
		switch ch := p.r.Current(); {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			p.advance(1)
		case ch == '/' && p.charAt(1) == '/':
			for ch := p.r.Current(); ch != '\n' && ch != source.NoChar; ch = p.r.Current() {
				p.advance(1)
			}
		default:
			return
		}
	}
}

// charAt returns the character offset positions ahead. Offsets used by the
// parser are never negative, so the reader cannot fail.
func (p *Parser) charAt(offset int) rune {
	ch, err := p.r.CharAt(offset)
	if err != nil {
		return source.NoChar
	}
	return ch
}

func (p *Parser) advance(n int) {
	_, _ = p.r.AdvanceCapped(n)
}

func (p *Parser) seek(pos token.Pos) {
	_, _ = p.r.SeekCapped(pos)
}

// peek reports whether the input at the current position starts with s.
func (p *Parser) peek(s string) bool {
	i := 0
	for _, want := range s {
		if p.charAt(i) != want {
			return false
		}
		i++
	}
	return true
}

// accept consumes s if the input at the current position starts with it.
func (p *Parser) accept(s string) bool {
	if !p.peek(s) {
		return false
	}
	p.advance(utf8.RuneCountInString(s))
	return true
}

// acceptSpaced is accept after optional whitespace. Nothing is consumed
// when s is not found.
func (p *Parser) acceptSpaced(s string) bool {
	c := p.r.Save()
	p.skipSpace()
	if p.accept(s) {
		return true
	}
	c.Restore()
	return false
}

// peekSpaced reports whether s follows optional whitespace, without
// consuming anything.
func (p *Parser) peekSpaced(s string) bool {
	c := p.r.Save()
	defer c.Restore()
	p.skipSpace()
	return p.peek(s)
}

// enter increments the nesting depth, failing once it exceeds the limit.
func (p *Parser) enter(rule Rule) error {
	p.depth++
	if p.depth <= p.maxDepth {
		return nil
	}
	p.depth--
	c := p.r.Save()
	p.skipSpace()
	at := p.r.Position()
	c.Restore()
	return p.fail(errors.ErrLimit, errors.E1009,
		fmt.Sprintf("maximum nesting depth exceeded (%d)", p.maxDepth),
		func(b *errors.Builder) {
			b.CodeAt(at, rule.Description()+" nested too deeply")
			b.HintAt(at, "Try reducing the nesting of brackets")
		})
}

func (p *Parser) leave() {
	p.depth--
}

// fail builds a fatal diagnostic located in the parser's source.
func (p *Parser) fail(kind errors.ErrorKind, code errors.ErrorCode, msg string, build func(*errors.Builder)) error {
	d := errors.New(kind, code, p.sourceName(), msg, build)
	if a, ok := d.Primary(); ok {
		d.Location = errors.Locate(p.sourceName(), p.r.Text(), a.Span.Start)
	} else {
		d.Location = errors.Locate(p.sourceName(), p.r.Text(), p.r.Position())
	}
	p.log.Debug().
		Str("code", d.Code.String()).
		Str("location", d.Location.String()).
		Msg(d.Message)
	return d
}

// unclosed reports a missing closing delimiter for a construct opened at
// open. The primary annotation covers the construct up to where parsing
// stopped.
func (p *Parser) unclosed(what string, open token.Span, closer string) error {
	c := p.r.Save()
	p.skipSpace()
	at := p.r.Position()
	found := p.r.Current()
	c.Restore()
	opener := p.r.Slice(open)
	return p.fail(errors.ErrSyntax, errors.E1007,
		fmt.Sprintf("unclosed %s (expected %q, found %s)", what, closer, describe(found)),
		func(b *errors.Builder) {
			b.Code(token.NewSpan(open.Start, at), what+" starts here")
			b.HintAt(at, fmt.Sprintf("Try adding the closing %q here", closer))
			b.Hint(open, fmt.Sprintf("Or remove the opening %q", opener))
		})
}

// expected reports a missing mandatory piece after a commit point.
func (p *Parser) expected(code errors.ErrorCode, what string, after token.Span) error {
	c := p.r.Save()
	p.skipSpace()
	at := p.r.Position()
	found := p.r.Current()
	c.Restore()
	return p.fail(errors.ErrSyntax, code,
		fmt.Sprintf("expected %s, found %s", what, describe(found)),
		func(b *errors.Builder) {
			b.CodeAt(at, "expected "+what)
			b.Note(after, "after this")
		})
}

// describe names a character for messages.
func describe(ch rune) string {
	if ch == source.NoChar {
		return "end of input"
	}
	return strconv.QuoteRune(ch)
}

func isIdentStart(ch rune) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || isDecimal(ch)
}

func isDecimal(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isDigit reports whether ch is a digit in base 2, 8, 10 or 16.
func isDigit(ch rune, radix int) bool {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch-'0') < radix
	case ch >= 'a' && ch <= 'f':
		return radix == 16
	case ch >= 'A' && ch <= 'F':
		return radix == 16
	}
	return false
}

// readWhile consumes characters satisfying pred and returns them.
func (p *Parser) readWhile(pred func(rune) bool) string {
	start := p.r.Position()
	for ch := p.r.Current(); ch != source.NoChar && pred(ch); ch = p.r.Current() {
		p.advance(1)
	}
	return p.r.Slice(p.spanFrom(start))
}
