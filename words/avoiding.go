// Package words implements the words-avoiding-patterns combinatorial
// domain SPEC_FULL.md supplements in: words over a finite alphabet,
// starting with a fixed prefix, that never contain any of a set of
// forbidden factors.
//
// Grounded on original_source/src/word.rs's AvoidingWithPrefix/
// WordStrategyFactory shape (themselves left as todo!() stubs there) and
// src/main.rs's ababa/babb example, fully implemented here rather than
// ported.
package words

import (
	"sort"
	"strings"
)

// AvoidingWithPrefix is the class of words over Alphabet that start with
// Prefix and contain none of Patterns as a contiguous factor.
//
// Patterns is stored pre-canonicalized (sorted, comma-joined) so that two
// values naming the same pattern set in a different order compare equal
// and hash identically — required for it to serve as a classdb.DB key.
type AvoidingWithPrefix struct {
	Prefix   string
	Patterns string
	Alphabet string
}

// New builds an AvoidingWithPrefix, canonicalizing patterns into
// AvoidingWithPrefix.Patterns.
func New(prefix string, patterns []string, alphabet string) AvoidingWithPrefix {
	ps := append([]string(nil), patterns...)
	sort.Strings(ps)
	return AvoidingWithPrefix{
		Prefix:   prefix,
		Patterns: strings.Join(ps, ","),
		Alphabet: alphabet,
	}
}

func (c AvoidingWithPrefix) patternList() []string {
	if c.Patterns == "" {
		return nil
	}
	return strings.Split(c.Patterns, ",")
}

// hasForbiddenSuffix reports whether s ends with any of patterns.
func hasForbiddenSuffix(s string, patterns []string) bool {
	for _, p := range patterns {
		if p == "" || len(p) > len(s) {
			continue
		}
		if strings.HasSuffix(s, p) {
			return true
		}
	}
	return false
}

// expand returns one child per letter of Alphabet, appended to Prefix,
// omitting any child whose extended prefix already ends in a forbidden
// pattern (that branch produces no words, so the rule omits it rather
// than carrying a dead child).
func (c AvoidingWithPrefix) expand() []AvoidingWithPrefix {
	patterns := c.patternList()
	var children []AvoidingWithPrefix
	for _, letter := range c.Alphabet {
		newPrefix := c.Prefix + string(letter)
		if hasForbiddenSuffix(newPrefix, patterns) {
			continue
		}
		children = append(children, AvoidingWithPrefix{
			Prefix:   newPrefix,
			Patterns: c.Patterns,
			Alphabet: c.Alphabet,
		})
	}
	return children
}

// DescribeClass renders the class-object schema §6 requires.
func (c AvoidingWithPrefix) DescribeClass() map[string]any {
	return map[string]any{
		"class_module": "words",
		"class":        "AvoidingWithPrefix",
		"prefix":       c.Prefix,
		"patterns":     c.patternList(),
		"alphabet":     c.Alphabet,
	}
}
