package errors

import (
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

// MaxSuggestions is the maximum number of names offered in one hint.
const MaxSuggestions = 3

// Vocabulary is a closed set of names that users type and mistype, such as
// macro names or start rule names. Names are written with a common prefix
// ("#" for macros) which matching ignores, along with case and the choice of
// '-' or '_' between words.
type Vocabulary struct {
	prefix  string
	names   []string
	aliases map[string]string
}

// NewVocabulary returns a vocabulary of names written with prefix. The order
// of names is kept when listing and when breaking ties between suggestions.
func NewVocabulary(prefix string, names ...string) *Vocabulary {
	return &Vocabulary{prefix: prefix, names: slices.Clone(names), aliases: map[string]string{}}
}

// WithAlias makes alias suggest name outright, for words that are far from
// the spelling but close in meaning, like "map" for the "#{" opener.
func (v *Vocabulary) WithAlias(alias, name string) *Vocabulary {
	v.aliases[v.fold(alias)] = name
	return v
}

// Spell returns name as it is written in source.
func (v *Vocabulary) Spell(name string) string {
	return v.prefix + name
}

func (v *Vocabulary) fold(word string) string {
	word = strings.TrimPrefix(strings.TrimSpace(word), v.prefix)
	word = strings.ToLower(word)
	return strings.NewReplacer("_", "-", " ", "-").Replace(word)
}

// budget is the number of edits tolerated for a word of n characters.
func budget(n int) int {
	switch {
	case n <= 3:
		return 1
	case n <= 5:
		return 2
	default:
		return 3
	}
}

// Closest returns up to MaxSuggestions names near word, spelled with the
// prefix, nearest first. A word that is exactly a name yields nothing.
func (v *Vocabulary) Closest(word string) []string {
	folded := v.fold(word)
	if folded == "" || slices.Contains(v.names, strings.TrimPrefix(word, v.prefix)) {
		return nil
	}
	if name, ok := v.aliases[folded]; ok {
		return []string{v.Spell(name)}
	}
	type scored struct {
		name string
		dist int
	}
	var near []scored
	for _, name := range v.names {
		dist := levenshtein.ComputeDistance(folded, v.fold(name))
		if dist <= budget(len(folded)) {
			near = append(near, scored{name, dist})
		}
	}
	slices.SortStableFunc(near, func(a, b scored) int { return a.dist - b.dist })
	var out []string
	for _, s := range near {
		if len(out) == MaxSuggestions {
			break
		}
		out = append(out, v.Spell(s.name))
	}
	return out
}

// Hint returns a "did you mean" sentence for word, or "" when no name is
// close enough.
func (v *Vocabulary) Hint(word string) string {
	near := v.Closest(word)
	if len(near) == 0 {
		return ""
	}
	quoted := make([]string, len(near))
	for i, name := range near {
		quoted[i] = "'" + name + "'"
	}
	if len(quoted) == 1 {
		return "Did you mean " + quoted[0] + "?"
	}
	return "Did you mean one of " + strings.Join(quoted, ", ") + "?"
}

// String lists every name as written, like "#bin, #oct and #hex".
func (v *Vocabulary) String() string {
	spelled := make([]string, len(v.names))
	for i, name := range v.names {
		spelled[i] = v.Spell(name)
	}
	if len(spelled) <= 1 {
		return strings.Join(spelled, "")
	}
	return strings.Join(spelled[:len(spelled)-1], ", ") + " and " + spelled[len(spelled)-1]
}
