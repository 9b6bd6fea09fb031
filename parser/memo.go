package parser

import (
	"github.com/risor-io/lattice/ast"
	"github.com/risor-io/lattice/token"
)

type cacheKey struct {
	pos  token.Pos
	rule Rule
}

// Outcome is a cached production result. A nil Node records that the rule
// did not match at the key position.
type Outcome struct {
	Node ast.Node
	End  token.Pos
}

// Matched reports whether the outcome holds a node.
func (o Outcome) Matched() bool {
	return o.Node != nil
}

// CacheStats reports packrat cache activity.
type CacheStats struct {
	Entries int
	Hits    int
	Misses  int
}

// Cache maps (position, rule) to the outcome of running the rule there.
// Entries are written once and never replaced.
type Cache struct {
	entries map[cacheKey]Outcome
	hits    int
	misses  int
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: map[cacheKey]Outcome{}}
}

// Lookup returns the outcome stored for rule at pos.
func (c *Cache) Lookup(pos token.Pos, rule Rule) (Outcome, bool) {
	out, ok := c.entries[cacheKey{pos, rule}]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return out, ok
}

// Store records the outcome of rule at pos. It returns false, leaving the
// existing entry in place, if one was already stored.
func (c *Cache) Store(pos token.Pos, rule Rule, out Outcome) bool {
	key := cacheKey{pos, rule}
	if _, exists := c.entries[key]; exists {
		return false
	}
	c.entries[key] = out
	return true
}

// Len returns the number of stored outcomes.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Stats returns the cache counters.
func (c *Cache) Stats() CacheStats {
	return CacheStats{Entries: len(c.entries), Hits: c.hits, Misses: c.misses}
}

// memo runs parse through the packrat cache. On a hit the reader is moved
// straight to the cached end position and no input is examined. Fatal
// diagnostics are not cached since they end the parse.
func memo[T ast.Node](p *Parser, rule Rule, parse func() (T, bool, error)) (T, bool, error) {
	var zero T
	if !p.memoize {
		return parse()
	}
	pos := p.r.Position()
	if out, ok := p.cache.Lookup(pos, rule); ok {
		p.seek(out.End)
		if !out.Matched() {
			return zero, false, nil
		}
		return out.Node.(T), true, nil
	}
	node, ok, err := parse()
	if err != nil {
		return zero, false, err
	}
	if !ok {
		p.cache.Store(pos, rule, Outcome{End: pos})
		return zero, false, nil
	}
	p.cache.Store(pos, rule, Outcome{Node: node, End: p.r.Position()})
	return node, true, nil
}
