package parser

import (
	"fmt"
	"sort"

	"github.com/risor-io/lattice/errors"
)

// Rule identifies a grammar production. Rules are the second half of the
// packrat cache key and name the start rule of a parse.
type Rule uint8

const (
	RuleInvalid Rule = iota
	RuleExpression
	RuleIdentifier
	RuleInteger
	RuleChar
	RuleString
	RuleSpread
	RuleList
	RuleMap
	RuleMapEntry
	RuleObject
	RuleObjectField
	RuleObjectSimplification
	RuleBlock
	RuleFunction
	RuleParameterList
	RuleParameter
	RuleArgumentList
	RuleEscapedExpression
	RuleInterval
	RuleSubInterval
	RuleIntervalElement
	RuleUnicodeInterval
	RuleUnicodeElement
	RuleCodePoint
	RuleBitlist

	// RuleBitlistElement depends on the enclosing radix and is never cached
	// or used as a start rule.
	RuleBitlistElement
)

type ruleInfo struct {
	name        string
	description string
}

var rules = [...]ruleInfo{
	RuleInvalid:              {"invalid", "nothing"},
	RuleExpression:           {"expression", "an expression"},
	RuleIdentifier:           {"identifier", "an identifier"},
	RuleInteger:              {"integer", "an integer"},
	RuleChar:                 {"char", "a character literal"},
	RuleString:               {"string", "a string literal"},
	RuleSpread:               {"spread", "a spread"},
	RuleList:                 {"list", "a list"},
	RuleMap:                  {"map", "a map"},
	RuleMapEntry:             {"map-entry", "a map entry"},
	RuleObject:               {"object", "an object"},
	RuleObjectField:          {"object-field", "an object field"},
	RuleObjectSimplification: {"object-simplification", "a shorthand object field"},
	RuleBlock:                {"block", "a block"},
	RuleFunction:             {"function", "a function literal"},
	RuleParameterList:        {"parameter-list", "a parameter list"},
	RuleParameter:            {"parameter", "a parameter"},
	RuleArgumentList:         {"argument-list", "an argument list"},
	RuleEscapedExpression:    {"escaped-expression", "an escaped expression"},
	RuleInterval:             {"interval", "an interval"},
	RuleSubInterval:          {"sub-interval", "a sub-interval"},
	RuleIntervalElement:      {"interval-element", "an interval element"},
	RuleUnicodeInterval:      {"unicode-interval", "a unicode interval"},
	RuleUnicodeElement:       {"unicode-element", "a unicode element"},
	RuleCodePoint:            {"code-point", "a code point"},
	RuleBitlist:              {"bitlist", "a bitlist"},
	RuleBitlistElement:       {"bitlist-element", "a bitlist element"},
}

var rulesByName = func() map[string]Rule {
	m := make(map[string]Rule, len(rules))
	for i, info := range rules {
		if Rule(i) == RuleInvalid || Rule(i) == RuleBitlistElement {
			continue
		}
		m[info.name] = Rule(i)
	}
	return m
}()

// String returns the rule's name as accepted by RuleByName.
func (r Rule) String() string {
	if int(r) < len(rules) {
		return rules[r].name
	}
	return fmt.Sprintf("rule(%d)", r)
}

// Description returns a short phrase for use in messages, like "a list".
func (r Rule) Description() string {
	if int(r) < len(rules) {
		return rules[r].description
	}
	return r.String()
}

// RuleByName looks up a start rule by name.
func RuleByName(name string) (Rule, bool) {
	r, ok := rulesByName[name]
	return r, ok
}

// StartRules returns the names of every rule that can start a parse, sorted.
func StartRules() []string {
	names := make([]string, 0, len(rulesByName))
	for name := range rulesByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var startRuleNames = errors.NewVocabulary("", StartRules()...)

// SuggestRule returns a "did you mean" hint for a start rule name that
// RuleByName does not know, or "" when nothing is close.
func SuggestRule(name string) string {
	return startRuleNames.Hint(name)
}
