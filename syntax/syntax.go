// Package syntax defines the pattern algebra for lexical analyzers.
//
// A Pattern is an immutable expression tree built by combinator
// constructors (Str, Range, Seq, Alt, Rep, ...) or parsed from
// traditional regex syntax with Parse. Patterns describe strictly
// regular languages over a byte alphabet plus three virtual anchor
// symbols (beginning of line, end of line, end of file).
//
// Patterns carry no matching machinery themselves; the nfa and dfa
// packages compile them into automata.
package syntax

import (
	"errors"
	"fmt"
)

// Op identifies the kind of a pattern node.
type Op uint8

const (
	// OpEmpty matches the empty string.
	OpEmpty Op = iota

	// OpClass matches one byte from the node's ByteSet.
	OpClass

	// OpConcat matches its subpatterns in sequence.
	OpConcat

	// OpAlt matches any one of its subpatterns.
	OpAlt

	// OpRep matches zero or more repetitions of its subpattern.
	OpRep

	// OpFold wraps a subpattern with an explicit case-sensitivity mode.
	OpFold

	// OpBol matches the virtual beginning-of-line symbol.
	OpBol

	// OpEol matches the virtual end-of-line symbol.
	OpEol

	// OpEof matches the virtual end-of-file symbol.
	OpEof
)

// String returns a human-readable representation of the Op.
func (op Op) String() string {
	switch op {
	case OpEmpty:
		return "Empty"
	case OpClass:
		return "Class"
	case OpConcat:
		return "Concat"
	case OpAlt:
		return "Alt"
	case OpRep:
		return "Rep"
	case OpFold:
		return "Fold"
	case OpBol:
		return "Bol"
	case OpEol:
		return "Eol"
	case OpEof:
		return "Eof"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(op))
	}
}

// FoldMode is the case-sensitivity mode attached to an OpFold node.
// The innermost enclosing fold wins; the default is case-sensitive.
type FoldMode uint8

const (
	// FoldCase marks a case-sensitive region.
	FoldCase FoldMode = iota

	// FoldNoCase marks a case-insensitive region: ASCII letters match
	// both their cases.
	FoldNoCase
)

// ErrBadRange indicates a malformed Range specification: an odd number
// of characters, or a pair whose first character is above its second.
var ErrBadRange = errors.New("malformed range spec")

// Pattern is an immutable regular-pattern expression tree.
//
// Patterns are DAG-free values: constructors never mutate their
// arguments and trees are never cyclic. A construction error (such as a
// malformed Range) is recorded in the node and reported when the
// pattern is compiled into a lexicon.
type Pattern struct {
	op   Op
	set  ByteSet
	subs []*Pattern
	mode FoldMode
	err  error
}

// Op returns the node kind.
func (p *Pattern) Op() Op { return p.op }

// Set returns the byte set of an OpClass node.
func (p *Pattern) Set() ByteSet { return p.set }

// Subs returns the node's subpatterns.
func (p *Pattern) Subs() []*Pattern { return p.subs }

// Mode returns the fold mode of an OpFold node.
func (p *Pattern) Mode() FoldMode { return p.mode }

// Err returns the first construction error recorded anywhere in the
// tree, or nil.
func (p *Pattern) Err() error {
	if p.err != nil {
		return p.err
	}
	for _, sub := range p.subs {
		if err := sub.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Anchor pattern values. These are shared immutable nodes; treat them
// as constants.
var (
	// Bol matches at the beginning of a line, consuming no text.
	Bol = &Pattern{op: OpBol}

	// Eol matches at the end of a line, consuming no text.
	Eol = &Pattern{op: OpEol}

	// Eof matches at the end of the input, consuming no text.
	Eof = &Pattern{op: OpEof}
)

// Empty returns a pattern matching the empty string.
func Empty() *Pattern {
	return &Pattern{op: OpEmpty}
}

// Char returns a pattern matching exactly the byte b.
func Char(b byte) *Pattern {
	p := &Pattern{op: OpClass}
	p.set.Add(b)
	return p
}

// Any returns a pattern matching any single byte of chars.
func Any(chars string) *Pattern {
	p := &Pattern{op: OpClass}
	p.set.AddString(chars)
	return p
}

// AnyBut returns a pattern matching any single byte not in chars.
func AnyBut(chars string) *Pattern {
	var s ByteSet
	s.AddString(chars)
	return &Pattern{op: OpClass, set: s.Complement()}
}

// AnyChar returns a pattern matching any single byte.
func AnyChar() *Pattern {
	var s ByteSet
	return &Pattern{op: OpClass, set: s.Complement()}
}

// Range returns a pattern matching any byte in the union of the ranges
// described by spec, consumed as lo/hi pairs left to right: "AZaz"
// matches ASCII letters. A spec with an odd number of characters or an
// inverted pair is an error, reported when the pattern is compiled.
func Range(spec string) *Pattern {
	p := &Pattern{op: OpClass}
	if len(spec)%2 != 0 {
		p.err = fmt.Errorf("%w: %q has an odd number of characters", ErrBadRange, spec)
		return p
	}
	for i := 0; i < len(spec); i += 2 {
		lo, hi := spec[i], spec[i+1]
		if lo > hi {
			p.err = fmt.Errorf("%w: %q has inverted pair %q", ErrBadRange, spec, spec[i:i+2])
			return p
		}
		p.set.AddRange(lo, hi)
	}
	return p
}

// Str returns a pattern matching any one of the given literal strings.
// A single argument yields the concatenation of its bytes; several
// arguments yield the alternation of their literals; no arguments yield
// the empty pattern.
func Str(strs ...string) *Pattern {
	switch len(strs) {
	case 0:
		return Empty()
	case 1:
		return litStr(strs[0])
	}
	alts := make([]*Pattern, len(strs))
	for i, s := range strs {
		alts[i] = litStr(s)
	}
	return Alt(alts...)
}

func litStr(s string) *Pattern {
	if s == "" {
		return Empty()
	}
	if len(s) == 1 {
		return Char(s[0])
	}
	subs := make([]*Pattern, len(s))
	for i := 0; i < len(s); i++ {
		subs[i] = Char(s[i])
	}
	return &Pattern{op: OpConcat, subs: subs}
}

// Seq returns the concatenation of the given patterns.
func Seq(ps ...*Pattern) *Pattern {
	switch len(ps) {
	case 0:
		return Empty()
	case 1:
		return ps[0]
	}
	return &Pattern{op: OpConcat, subs: append([]*Pattern(nil), ps...)}
}

// Alt returns the alternation of the given patterns.
func Alt(ps ...*Pattern) *Pattern {
	switch len(ps) {
	case 0:
		return Empty()
	case 1:
		return ps[0]
	}
	return &Pattern{op: OpAlt, subs: append([]*Pattern(nil), ps...)}
}

// Rep returns a pattern matching zero or more repetitions of p.
func Rep(p *Pattern) *Pattern {
	return &Pattern{op: OpRep, subs: []*Pattern{p}}
}

// Rep1 returns a pattern matching one or more repetitions of p.
func Rep1(p *Pattern) *Pattern {
	return Seq(p, Rep(p))
}

// Opt returns a pattern matching p or the empty string.
func Opt(p *Pattern) *Pattern {
	return Alt(p, Empty())
}

// NoCase returns p made case-insensitive: every ASCII letter inside p
// also matches its case-flipped counterpart, unless overridden by a
// nested Case.
func NoCase(p *Pattern) *Pattern {
	return &Pattern{op: OpFold, mode: FoldNoCase, subs: []*Pattern{p}}
}

// Case returns p made case-sensitive, overriding an enclosing NoCase.
func Case(p *Pattern) *Pattern {
	return &Pattern{op: OpFold, mode: FoldCase, subs: []*Pattern{p}}
}
