package nfa

import (
	"errors"
	"fmt"

	"github.com/coregx/lexc/syntax"
)

// Common compilation errors.
var (
	// ErrInvalidPattern indicates a pattern carrying a construction error.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrEmptyClass indicates a character class matching no symbol.
	ErrEmptyClass = errors.New("empty character class")
)

// CompileError wraps compilation errors with the index of the rule
// whose pattern failed.
type CompileError struct {
	Rule int
	Err  error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("compiling rule %d: %v", e.Rule, e.Err)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// Compiler translates pattern trees into tagged NFAs. One Compiler is
// used for all scanner states of a lexicon so every NFA shares a single
// symbol partition.
type Compiler struct {
	classSet *ClassSet
}

// NewCompiler creates a Compiler with a fresh shared symbol partition.
func NewCompiler() *Compiler {
	return &Compiler{classSet: NewClassSet()}
}

// Classes finalizes and returns the symbol partition covering every
// pattern compiled so far. Call it after all Compile calls.
func (c *Compiler) Classes() SymbolClasses {
	return c.classSet.Classes()
}

// Compile builds one NFA from an ordered rule list. The i'th pattern's
// match state is tagged with rule index i; the index is the rule's
// priority, lower winning ties.
func (c *Compiler) Compile(patterns []*syntax.Pattern) (*NFA, error) {
	if len(patterns) == 0 {
		return nil, &CompileError{Rule: 0, Err: errors.New("no rules")}
	}

	b := NewBuilder(c.classSet)
	starts := make([]StateID, len(patterns))
	for i, p := range patterns {
		if err := p.Err(); err != nil {
			return nil, &CompileError{Rule: i, Err: fmt.Errorf("%w: %w", ErrInvalidPattern, err)}
		}
		f, err := c.compile(b, p, false)
		if err != nil {
			return nil, &CompileError{Rule: i, Err: err}
		}
		match := b.AddMatch(int32(i))
		if err := b.Patch(f.out, match); err != nil {
			return nil, &CompileError{Rule: i, Err: err}
		}
		starts[i] = f.start
	}
	b.SetStart(buildSplitChain(b, starts))

	return b.Build(len(patterns))
}

// frag is an NFA fragment with one entry and one patchable exit.
type frag struct {
	start StateID
	out   StateID
}

// buildSplitChain links the given entry states under a chain of splits
// so all rules are tracked simultaneously from the common start.
func buildSplitChain(b *Builder, targets []StateID) StateID {
	if len(targets) == 1 {
		return targets[0]
	}
	next := targets[len(targets)-1]
	for i := len(targets) - 2; i >= 0; i-- {
		next = b.AddSplit(targets[i], next)
	}
	return next
}

// compile translates one pattern node into a fragment. fold is true
// inside a NoCase region not overridden by a nested Case.
func (c *Compiler) compile(b *Builder, p *syntax.Pattern, fold bool) (frag, error) {
	switch p.Op() {
	case syntax.OpEmpty:
		e := b.AddEpsilon(InvalidState)
		return frag{start: e, out: e}, nil

	case syntax.OpClass:
		return c.compileClass(b, p.Set(), fold)

	case syntax.OpConcat:
		return c.compileConcat(b, p.Subs(), fold)

	case syntax.OpAlt:
		return c.compileAlt(b, p.Subs(), fold)

	case syntax.OpRep:
		return c.compileRep(b, p.Subs()[0], fold)

	case syntax.OpFold:
		return c.compile(b, p.Subs()[0], p.Mode() == syntax.FoldNoCase)

	case syntax.OpBol:
		s := b.AddRange(SymbolBOL, SymbolBOL, InvalidState)
		return frag{start: s, out: s}, nil

	case syntax.OpEol:
		s := b.AddRange(SymbolEOL, SymbolEOL, InvalidState)
		return frag{start: s, out: s}, nil

	case syntax.OpEof:
		s := b.AddRange(SymbolEOF, SymbolEOF, InvalidState)
		return frag{start: s, out: s}, nil

	default:
		return frag{}, fmt.Errorf("%w: unknown op %s", ErrInvalidPattern, p.Op())
	}
}

func (c *Compiler) compileClass(b *Builder, set syntax.ByteSet, fold bool) (frag, error) {
	if fold {
		set = set.Fold()
	}
	ranges := set.Ranges()
	if len(ranges) == 0 {
		return frag{}, ErrEmptyClass
	}
	if len(ranges) == 1 {
		s := b.AddRange(int(ranges[0].Lo), int(ranges[0].Hi), InvalidState)
		return frag{start: s, out: s}, nil
	}
	trans := make([]Transition, len(ranges))
	for i, r := range ranges {
		trans[i] = Transition{Lo: uint16(r.Lo), Hi: uint16(r.Hi), Next: InvalidState}
	}
	s := b.AddSparse(trans)
	return frag{start: s, out: s}, nil
}

func (c *Compiler) compileConcat(b *Builder, subs []*syntax.Pattern, fold bool) (frag, error) {
	first, err := c.compile(b, subs[0], fold)
	if err != nil {
		return frag{}, err
	}
	prev := first
	for _, sub := range subs[1:] {
		next, err := c.compile(b, sub, fold)
		if err != nil {
			return frag{}, err
		}
		if err := b.Patch(prev.out, next.start); err != nil {
			return frag{}, err
		}
		prev = next
	}
	return frag{start: first.start, out: prev.out}, nil
}

func (c *Compiler) compileAlt(b *Builder, subs []*syntax.Pattern, fold bool) (frag, error) {
	out := b.AddEpsilon(InvalidState)
	starts := make([]StateID, len(subs))
	for i, sub := range subs {
		f, err := c.compile(b, sub, fold)
		if err != nil {
			return frag{}, err
		}
		if err := b.Patch(f.out, out); err != nil {
			return frag{}, err
		}
		starts[i] = f.start
	}
	return frag{start: buildSplitChain(b, starts), out: out}, nil
}

func (c *Compiler) compileRep(b *Builder, sub *syntax.Pattern, fold bool) (frag, error) {
	inner, err := c.compile(b, sub, fold)
	if err != nil {
		return frag{}, err
	}
	out := b.AddEpsilon(InvalidState)
	split := b.AddSplit(inner.start, out)
	// Back edge: after one iteration, choose again.
	if err := b.Patch(inner.out, split); err != nil {
		return frag{}, err
	}
	return frag{start: split, out: out}, nil
}
