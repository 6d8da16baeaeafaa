package dfa

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"github.com/coregx/lexc/internal/sparse"
	"github.com/coregx/lexc/nfa"
)

// maxStates bounds determinization. Lexicon DFAs are small in practice;
// the bound exists so a pathological pattern fails loudly instead of
// exhausting memory.
const maxStates = 1 << 20

// ErrTooManyStates indicates determinization exceeded maxStates.
var ErrTooManyStates = errors.New("DFA state limit exceeded")

// Compile determinizes the NFA over the given symbol partition.
func Compile(n *nfa.NFA, classes *nfa.SymbolClasses) (*DFA, error) {
	b := &builder{
		nfa:     n,
		classes: classes,
		reps:    classes.Representatives(),
		visited: sparse.NewSet(uint32(n.States())),
		subsets: make(map[string]StateID),
	}
	return b.build()
}

// builder holds the transient state of one subset construction.
type builder struct {
	nfa     *nfa.NFA
	classes *nfa.SymbolClasses
	reps    []int // one representative symbol per class
	visited *sparse.Set
	subsets map[string]StateID

	trans   []StateID
	accepts []int32
}

func (b *builder) build() (*DFA, error) {
	classCount := b.classes.Count()

	start := b.closure([]nfa.StateID{b.nfa.Start()})
	startID := b.intern(start)

	// Worklist over interned subsets. Interning appends to b.accepts, so
	// the loop runs until no new subsets appear.
	worklist := [][]nfa.StateID{start}
	ids := []StateID{startID}
	for len(worklist) > 0 {
		subset := worklist[0]
		id := ids[0]
		worklist, ids = worklist[1:], ids[1:]

		for class := 0; class < classCount; class++ {
			next := b.move(subset, b.reps[class])
			if len(next) == 0 {
				b.trans[int(id)*classCount+class] = DeadState
				continue
			}
			key := subsetKey(next)
			target, ok := b.subsets[key]
			if !ok {
				if len(b.accepts) >= maxStates {
					return nil, fmt.Errorf("%w (%d states)", ErrTooManyStates, maxStates)
				}
				target = b.internKeyed(next, key)
				worklist = append(worklist, next)
				ids = append(ids, target)
			}
			b.trans[int(id)*classCount+class] = target
		}
	}

	return &DFA{
		classCount: classCount,
		trans:      b.trans,
		accepts:    b.accepts,
		start:      startID,
	}, nil
}

// intern returns the DFA state for a subset, creating it if new.
func (b *builder) intern(subset []nfa.StateID) StateID {
	key := subsetKey(subset)
	if id, ok := b.subsets[key]; ok {
		return id
	}
	return b.internKeyed(subset, key)
}

func (b *builder) internKeyed(subset []nfa.StateID, key string) StateID {
	id := StateID(len(b.accepts))
	b.subsets[key] = id
	b.accepts = append(b.accepts, b.acceptRule(subset))
	row := make([]StateID, b.classes.Count())
	b.trans = append(b.trans, row...)
	return id
}

// acceptRule returns the lowest rule index accepted by any state of the
// subset, or NoRule. Lowest index is the rule declared first, which is
// the priority winner.
func (b *builder) acceptRule(subset []nfa.StateID) int32 {
	best := nfa.NoRule
	for _, id := range subset {
		s := b.nfa.State(id)
		if r := s.Rule(); r != nfa.NoRule && (best == nfa.NoRule || r < best) {
			best = r
		}
	}
	return best
}

// closure returns the epsilon closure of the given states as a sorted
// slice.
func (b *builder) closure(states []nfa.StateID) []nfa.StateID {
	b.visited.Clear()
	stack := make([]nfa.StateID, 0, len(states))
	for _, s := range states {
		if !b.visited.Contains(uint32(s)) {
			b.visited.Insert(uint32(s))
			stack = append(stack, s)
		}
	}

	push := func(s nfa.StateID) {
		if s != nfa.InvalidState && !b.visited.Contains(uint32(s)) {
			b.visited.Insert(uint32(s))
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		s := b.nfa.State(id)
		switch s.Kind() {
		case nfa.StateEpsilon:
			push(s.Epsilon())
		case nfa.StateSplit:
			left, right := s.Split()
			push(left)
			push(right)
		}
	}

	out := make([]nfa.StateID, 0, b.visited.Len())
	for _, v := range b.visited.Values() {
		out = append(out, nfa.StateID(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// move returns the epsilon closure of the states reachable from the
// subset on the given input symbol. On an anchor symbol that some state
// of the subset consumes, the byte-consuming states of the subset stay
// in place, so the anchor is transparent to the rules they belong to.
// When no state consumes the anchor the result is empty (dead), and the
// scanner skips the anchor itself.
func (b *builder) move(subset []nfa.StateID, sym int) []nfa.StateID {
	var next, keep []nfa.StateID
	anchor := nfa.IsAnchor(sym)
	for _, id := range subset {
		s := b.nfa.State(id)
		switch s.Kind() {
		case nfa.StateRange:
			lo, hi, target := s.Range()
			if lo <= sym && sym <= hi {
				next = append(next, target)
			} else if anchor && !nfa.IsAnchor(lo) {
				keep = append(keep, id)
			}
		case nfa.StateSparse:
			hit := false
			for _, tr := range s.Transitions() {
				if int(tr.Lo) <= sym && sym <= int(tr.Hi) {
					next = append(next, tr.Next)
					hit = true
					break
				}
			}
			if !hit && anchor {
				keep = append(keep, id)
			}
		}
	}
	if len(next) == 0 {
		return nil
	}
	return b.closure(append(next, keep...))
}

// subsetKey encodes a sorted subset as a map key.
func subsetKey(subset []nfa.StateID) string {
	buf := make([]byte, 4*len(subset))
	for i, s := range subset {
		binary.LittleEndian.PutUint32(buf[4*i:], uint32(s))
	}
	return string(buf)
}
