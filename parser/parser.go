// Package parser turns Lattice source text into a typed parse tree.
//
// The parser is scannerless, backtracking and memoizing. Each production
// anchors a cursor, tries to recognize a discriminating prefix, and either
// restores the cursor and reports absence, raises a Diagnostic once it has
// committed, or finalizes a node. Productions that depend only on the input
// position are cached per (position, rule) for the lifetime of one Parser.
//
// A Parser is created for one source and used once, by calling Parse or one
// of the package-level helpers.
package parser

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/risor-io/lattice/ast"
	"github.com/risor-io/lattice/errors"
	"github.com/risor-io/lattice/internal/source"
	"github.com/risor-io/lattice/token"
)

// DefaultMaxDepth is the default maximum nesting depth for parsing.
const DefaultMaxDepth = 500

// Parse parses text as the given start rule and returns the resulting tree.
// This is shorthand for creating a Reader and a Parser and calling Parse.
func Parse(ctx context.Context, text string, rule Rule, options ...Option) (*ast.Tree, error) {
	var cfg Parser
	for _, opt := range options {
		opt(&cfg)
	}
	return ParseReader(ctx, source.NewString(cfg.filename, text), rule, options...)
}

// ParseFile reads the file at path and parses it as the given start rule.
func ParseFile(ctx context.Context, path string, rule Rule, options ...Option) (*ast.Tree, error) {
	r, err := source.Open(path)
	if err != nil {
		return nil, errors.Newf(errors.ErrInput, errors.E1014, path, "cannot read source: %v", err)
	}
	return ParseReader(ctx, r, rule, options...)
}

// ParseReader parses the contents of r as the given start rule.
func ParseReader(ctx context.Context, r source.Reader, rule Rule, options ...Option) (*ast.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := New(r, append([]Option{WithLogger(*zerolog.Ctx(ctx))}, options...)...)
	root, err := p.Parse(rule)
	if err != nil {
		return nil, err
	}
	return ast.NewTree(root), nil
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the source name used by diagnostics when parsing text.
// Readers created from files already carry their path.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// WithMaxDepth sets the maximum nesting depth for the parser.
// This prevents stack overflow on deeply nested input.
// The default is 500.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// WithLogger sets the logger used for parse-level debug events.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) {
		p.log = logger
	}
}

// WithoutMemo disables the packrat cache. Results are identical; only the
// amount of re-scanning changes.
func WithoutMemo() Option {
	return func(p *Parser) {
		p.memoize = false
	}
}

// Parser holds the state of one parse of one source.
type Parser struct {
	r source.Reader

	// The filename option, used when the reader has no name
	filename string

	// Packrat cache, keyed by (position, rule)
	cache   *Cache
	memoize bool

	// Current recursion depth
	depth int

	// Maximum allowed recursion depth
	maxDepth int

	// The last diagnostic raised inside an unclosed "[["
	escapeErr error

	log zerolog.Logger
}

// New returns a Parser reading from r.
func New(r source.Reader, options ...Option) *Parser {
	p := &Parser{
		cache:    NewCache(),
		memoize:  true,
		maxDepth: DefaultMaxDepth,
		log:      zerolog.Nop(),
	}
	for _, opt := range options {
		opt(p)
	}
	p.r = r
	return p
}

// Stats returns the packrat cache counters.
func (p *Parser) Stats() CacheStats {
	return p.cache.Stats()
}

// Parse runs the given start rule from the reader's current position. The
// rule must match and the remaining input must be whitespace only.
func (p *Parser) Parse(rule Rule) (ast.Node, error) {
	start := p.r.Position()
	p.log.Debug().
		Str("source", p.sourceName()).
		Stringer("rule", rule).
		Int("length", p.r.Len()).
		Msg("parse started")

	node, ok, err := p.run(rule)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, p.noMatch(rule)
	}
	trailing := p.r.Save()
	p.skipSpace()
	if !p.r.IsEnd() {
		trailing.Restore()
		return nil, p.trailingInput(rule, start)
	}

	stats := p.cache.Stats()
	p.log.Debug().
		Stringer("rule", rule).
		Int("consumed", int(p.r.Position()-start)).
		Int("cache_entries", stats.Entries).
		Int("cache_hits", stats.Hits).
		Msg("parse finished")
	return node, nil
}

// run dispatches a start rule.
func (p *Parser) run(rule Rule) (ast.Node, bool, error) {
	switch rule {
	case RuleExpression:
		return widen(p.expression())
	case RuleIdentifier:
		return widen(p.identifier())
	case RuleInteger:
		return widen(p.integer())
	case RuleChar:
		return widen(p.char())
	case RuleString:
		return widen(p.stringLiteral())
	case RuleSpread:
		return widen(p.spread())
	case RuleList:
		return widen(p.list())
	case RuleMap:
		return widen(p.mapLiteral())
	case RuleMapEntry:
		return widen(p.mapEntry())
	case RuleObject:
		return widen(p.object())
	case RuleObjectField:
		return widen(p.objectField())
	case RuleObjectSimplification:
		return widen(p.objectSimplification())
	case RuleBlock:
		return widen(p.block())
	case RuleFunction:
		return widen(p.function())
	case RuleParameterList:
		return widen(p.parameterList())
	case RuleParameter:
		return widen(p.parameter())
	case RuleArgumentList:
		return widen(p.argumentList())
	case RuleEscapedExpression:
		return widen(p.escapedExpression())
	case RuleInterval:
		return widen(p.interval())
	case RuleSubInterval:
		return widen(p.subInterval())
	case RuleIntervalElement:
		return widen(p.intervalElement())
	case RuleUnicodeInterval:
		return widen(p.unicodeInterval())
	case RuleUnicodeElement:
		return widen(p.unicodeElement())
	case RuleCodePoint:
		return widen(p.codePoint())
	case RuleBitlist:
		return widen(p.bitlist())
	default:
		return nil, false, fmt.Errorf("parser: %s cannot be used as a start rule", rule)
	}
}

// widen converts a typed production result to a plain node, keeping a
// non-match as an untyped nil.
func widen[T ast.Node](node T, ok bool, err error) (ast.Node, bool, error) {
	if err != nil || !ok {
		return nil, false, err
	}
	return node, true, nil
}

func (p *Parser) sourceName() string {
	if name := p.r.Name(); name != "" {
		return name
	}
	return p.filename
}

func (p *Parser) noMatch(rule Rule) error {
	p.skipSpace()
	at := p.r.Position()
	return p.fail(errors.ErrSyntax, errors.E1003, fmt.Sprintf("invalid syntax (expected %s)", rule.Description()), func(b *errors.Builder) {
		b.CodeAt(at, "no "+rule.Description()+" starts here")
	})
}

func (p *Parser) trailingInput(rule Rule, start token.Pos) error {
	end := p.r.Position()
	p.skipSpace()
	at := p.r.Position()
	span := token.NewSpan(at, token.Pos(p.r.Len()))
	return p.fail(errors.ErrSyntax, errors.E1012, fmt.Sprintf("unexpected %s after %s", describe(p.r.Current()), rule.Description()), func(b *errors.Builder) {
		b.Code(span, "unexpected input")
		b.Note(token.NewSpan(start, end), rule.Description()+" ends here")
		b.Hint(span, "Try removing the trailing input")
	})
}
