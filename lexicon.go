package lexc

import (
	"fmt"

	"github.com/coregx/lexc/dfa"
	"github.com/coregx/lexc/nfa"
	"github.com/coregx/lexc/prefilter"
	"github.com/coregx/lexc/syntax"
)

// Rule pairs a pattern with the action applied to its matches. A
// rule's position within its scanner state is its priority: among
// equal-length matches the earliest rule wins.
type Rule struct {
	Pattern *syntax.Pattern
	Action  Action
}

func (Rule) item() {}

// Item is one entry of a lexicon specification: either a Rule for the
// default state or a State grouping.
type Item interface {
	item()
}

type stateItem struct {
	name  string
	rules []Rule
}

func (stateItem) item() {}

// State groups rules under a named scanner state. The scanner matches
// only the rules of its current state; actions switch states with
// Begin. State groupings cannot nest: a State accepts only Rules.
func State(name string, rules ...Rule) Item {
	return stateItem{name: name, rules: rules}
}

// stateProgram is the compiled form of one scanner state.
type stateProgram struct {
	dfa     *dfa.DFA
	actions []Action
	resync  *prefilter.Literals
}

// Lexicon is a compiled, immutable set of rules partitioned by scanner
// state. It is safe to share across goroutines and scanners.
type Lexicon struct {
	classes nfa.SymbolClasses
	states  map[string]*stateProgram
}

// NewLexicon compiles an ordered lexicon specification. Bare Rules
// populate the default state ""; State groupings declare named states.
// Rule order within a state defines priority.
//
// Compilation fails on malformed patterns, an explicitly declared ""
// state, duplicate state names, empty states, and Begin actions that
// reference undeclared states.
func NewLexicon(spec ...Item) (*Lexicon, error) {
	byState := map[string][]Rule{}
	order := []string{""}
	for _, it := range spec {
		switch v := it.(type) {
		case Rule:
			byState[""] = append(byState[""], v)
		case stateItem:
			if v.name == "" {
				return nil, &CompileError{State: "", Err: ErrReservedState}
			}
			if _, dup := byState[v.name]; dup {
				return nil, &CompileError{State: v.name, Err: ErrDuplicateState}
			}
			byState[v.name] = v.rules
			order = append(order, v.name)
		default:
			return nil, fmt.Errorf("unknown lexicon item %T", it)
		}
	}
	// Every Begin target must be a declared state.
	for _, name := range order {
		for i, r := range byState[name] {
			if b, ok := r.Action.(beginAction); ok {
				if _, exists := byState[b.state]; !exists && b.state != "" {
					return nil, &CompileError{
						State: name,
						Err:   fmt.Errorf("rule %d: begin: %w: %q", i, ErrUnknownState, b.state),
					}
				}
			}
		}
	}

	lex := &Lexicon{states: make(map[string]*stateProgram, len(order))}
	compiler := nfa.NewCompiler()
	nfas := make(map[string]*nfa.NFA, len(order))
	for _, name := range order {
		rules := byState[name]
		if len(rules) == 0 {
			return nil, &CompileError{State: name, Err: ErrNoRules}
		}
		patterns := make([]*syntax.Pattern, len(rules))
		for i, r := range rules {
			patterns[i] = r.Pattern
		}
		n, err := compiler.Compile(patterns)
		if err != nil {
			return nil, &CompileError{State: name, Err: err}
		}
		nfas[name] = n
	}

	// The symbol partition is finalized only after every state's NFA
	// has registered its character classes, so all DFAs share it.
	lex.classes = compiler.Classes()
	for _, name := range order {
		rules := byState[name]
		d, err := dfa.Compile(nfas[name], &lex.classes)
		if err != nil {
			return nil, &CompileError{State: name, Err: err}
		}
		actions := make([]Action, len(rules))
		// Resync targets: rules that produce something. Ignored matches
		// (whitespace, comments) make poor synchronization points.
		var syncPatterns []*syntax.Pattern
		for i, r := range rules {
			actions[i] = r.Action
			if _, ignored := r.Action.(ignoreAction); !ignored {
				syncPatterns = append(syncPatterns, r.Pattern)
			}
		}
		lex.states[name] = &stateProgram{
			dfa:     d,
			actions: actions,
			resync:  prefilter.FromPatterns(syncPatterns),
		}
	}
	return lex, nil
}

// States returns the number of scanner states in the lexicon.
func (l *Lexicon) States() int {
	return len(l.states)
}

// ClassCount returns the size of the lexicon's symbol partition.
func (l *Lexicon) ClassCount() int {
	return l.classes.Count()
}
