// Package prefilter extracts literal prefixes from lexicon rules and
// packs them into a multi-pattern automaton.
//
// The scanner uses it for error resynchronization: after unrecognized
// input, the next occurrence of any rule's literal prefix is a
// plausible place to resume tokenizing.
package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/lexc/syntax"
)

// maxPrefixes bounds the literal set per rule. Alternations multiply
// prefixes; past this size the rule contributes nothing rather than an
// enormous automaton.
const maxPrefixes = 64

// Literals is an Aho-Corasick automaton over the literal prefixes of a
// rule set. It is immutable and safe for concurrent use.
type Literals struct {
	auto *ahocorasick.Automaton
}

// FromPatterns collects the literal prefixes of the given patterns and
// builds a matcher over them. It returns nil when no pattern
// contributes a usable prefix (the caller falls back to coarser
// recovery) or when the automaton cannot be built.
func FromPatterns(patterns []*syntax.Pattern) *Literals {
	seen := map[string]bool{}
	builder := ahocorasick.NewBuilder()
	count := 0
	for _, p := range patterns {
		for _, prefix := range prefixesOf(p) {
			if len(prefix) == 0 || seen[string(prefix)] {
				continue
			}
			seen[string(prefix)] = true
			builder.AddPattern(prefix)
			count++
		}
	}
	if count == 0 {
		return nil
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &Literals{auto: auto}
}

// Find returns the offset of the earliest literal-prefix occurrence in
// haystack at or after the given offset, or -1.
func (l *Literals) Find(haystack []byte, at int) int {
	if l == nil || at >= len(haystack) {
		return -1
	}
	m := l.auto.Find(haystack, at)
	if m == nil {
		return -1
	}
	return m.Start
}

// prefixesOf returns the byte sequences a match of p can start with,
// when that set is small and literal. An alternation of literals
// yields one prefix per branch.
func prefixesOf(p *syntax.Pattern) [][]byte {
	prefixes, _ := literalHeads(p, false)
	return prefixes
}

// literalHeads returns the literal head set of p and whether p is
// entirely covered by it. A nil set means the node contributes nothing
// literal; an incomplete set still holds required prefixes.
func literalHeads(p *syntax.Pattern, fold bool) ([][]byte, bool) {
	switch p.Op() {
	case syntax.OpEmpty:
		return [][]byte{nil}, true

	case syntax.OpClass:
		set := p.Set()
		ranges := set.Ranges()
		if len(ranges) == 1 && ranges[0].Lo == ranges[0].Hi {
			b := ranges[0].Lo
			if fold && isLetter(b) {
				// Case-insensitive letters have two spellings; neither
				// is a required prefix byte.
				return [][]byte{nil}, false
			}
			return [][]byte{{b}}, true
		}
		return [][]byte{nil}, false

	case syntax.OpConcat:
		acc := [][]byte{nil}
		for _, sub := range p.Subs() {
			heads, complete := literalHeads(sub, fold)
			acc = cross(acc, heads)
			if acc == nil || !complete {
				return acc, false
			}
		}
		return acc, true

	case syntax.OpAlt:
		var union [][]byte
		complete := true
		for _, sub := range p.Subs() {
			heads, subComplete := literalHeads(sub, fold)
			if !subComplete {
				// A branch without a full literal spelling makes every
				// other branch's prefix optional rather than required;
				// keep them anyway, they remain plausible sync points.
				complete = false
			}
			union = append(union, heads...)
			if len(union) > maxPrefixes {
				return [][]byte{nil}, false
			}
		}
		return union, complete

	case syntax.OpFold:
		return literalHeads(p.Subs()[0], p.Mode() == syntax.FoldNoCase)

	default:
		return [][]byte{nil}, false
	}
}

// cross appends every head to every accumulated prefix. Returns nil
// when the product exceeds maxPrefixes.
func cross(acc, heads [][]byte) [][]byte {
	if len(acc)*len(heads) > maxPrefixes {
		return nil
	}
	out := make([][]byte, 0, len(acc)*len(heads))
	for _, a := range acc {
		for _, h := range heads {
			combined := make([]byte, 0, len(a)+len(h))
			combined = append(combined, a...)
			combined = append(combined, h...)
			out = append(out, combined)
		}
	}
	return out
}

func isLetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
