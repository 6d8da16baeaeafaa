package nfa

import (
	"fmt"
)

// Builder constructs NFAs incrementally. Fragment exits are created
// with InvalidState targets and wired up later with Patch/PatchSplit.
type Builder struct {
	states   []State
	start    StateID
	classSet *ClassSet
}

// NewBuilder creates an NFA builder. Symbol ranges added through the
// builder register their boundaries in classSet.
func NewBuilder(classSet *ClassSet) *Builder {
	return &Builder{
		states:   make([]State, 0, 16),
		start:    InvalidState,
		classSet: classSet,
	}
}

// AddMatch adds an accepting state tagged with a rule index.
func (b *Builder) AddMatch(rule int32) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateMatch, rule: rule})
	return id
}

// AddRange adds a state transitioning on the symbol range [lo, hi].
// For a single symbol, lo == hi.
func (b *Builder) AddRange(lo, hi int, next StateID) StateID {
	b.classSet.SetRange(lo, hi)

	id := StateID(len(b.states))
	b.states = append(b.states, State{
		id:   id,
		kind: StateRange,
		lo:   uint16(lo),
		hi:   uint16(hi),
		next: next,
	})
	return id
}

// AddSparse adds a state with multiple symbol-range transitions
// (character class). The slice is copied to avoid aliasing.
func (b *Builder) AddSparse(transitions []Transition) StateID {
	for _, tr := range transitions {
		b.classSet.SetRange(int(tr.Lo), int(tr.Hi))
	}

	id := StateID(len(b.states))
	trans := make([]Transition, len(transitions))
	copy(trans, transitions)
	b.states = append(b.states, State{id: id, kind: StateSparse, transitions: trans})
	return id
}

// AddSplit adds a state with epsilon transitions to two states.
func (b *Builder) AddSplit(left, right StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateSplit, left: left, right: right})
	return id
}

// AddEpsilon adds a state with a single epsilon transition.
func (b *Builder) AddEpsilon(next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateEpsilon, next: next})
	return id
}

// Patch sets the target of a state created with an InvalidState target.
// For Sparse states every transition is retargeted.
func (b *Builder) Patch(stateID, target StateID) error {
	if int(stateID) >= len(b.states) {
		return &BuildError{Message: "state ID out of bounds", StateID: stateID}
	}

	s := &b.states[stateID]
	switch s.kind {
	case StateRange, StateEpsilon:
		s.next = target
		return nil
	case StateSparse:
		for i := range s.transitions {
			s.transitions[i].Next = target
		}
		return nil
	default:
		return &BuildError{
			Message: fmt.Sprintf("cannot patch state of kind %s", s.kind),
			StateID: stateID,
		}
	}
}

// PatchSplit sets both targets of a Split state.
func (b *Builder) PatchSplit(stateID, left, right StateID) error {
	if int(stateID) >= len(b.states) {
		return &BuildError{Message: "state ID out of bounds", StateID: stateID}
	}

	s := &b.states[stateID]
	if s.kind != StateSplit {
		return &BuildError{
			Message: fmt.Sprintf("expected Split state, got %s", s.kind),
			StateID: stateID,
		}
	}
	s.left = left
	s.right = right
	return nil
}

// SetStart sets the NFA's starting state.
func (b *Builder) SetStart(start StateID) {
	b.start = start
}

// States returns the current number of states.
func (b *Builder) States() int {
	return len(b.states)
}

// Validate checks that the NFA is well-formed: the start state exists
// and no state references a missing or unpatched target.
func (b *Builder) Validate() error {
	if b.start == InvalidState {
		return &BuildError{Message: "start state not set", StateID: InvalidState}
	}
	if int(b.start) >= len(b.states) {
		return &BuildError{Message: "start state out of bounds", StateID: b.start}
	}

	check := func(id StateID, target StateID) error {
		if target == InvalidState || int(target) >= len(b.states) {
			return &BuildError{
				Message: fmt.Sprintf("invalid target state %d", target),
				StateID: id,
			}
		}
		return nil
	}
	for i := range b.states {
		s := &b.states[i]
		switch s.kind {
		case StateRange, StateEpsilon:
			if err := check(s.id, s.next); err != nil {
				return err
			}
		case StateSplit:
			if err := check(s.id, s.left); err != nil {
				return err
			}
			if err := check(s.id, s.right); err != nil {
				return err
			}
		case StateSparse:
			for _, tr := range s.transitions {
				if err := check(s.id, tr.Next); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Build finalizes and returns the constructed NFA.
func (b *Builder) Build(ruleCount int) (*NFA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &NFA{
		states:    b.states,
		start:     b.start,
		ruleCount: ruleCount,
	}, nil
}

// BuildError represents an error during NFA construction.
type BuildError struct {
	Message string
	StateID StateID
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("NFA build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("NFA build error: %s", e.Message)
}
