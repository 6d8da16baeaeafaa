package lexc

import (
	"errors"
	"fmt"
)

// Common lexicon and scanner errors.
var (
	// ErrUnknownState indicates a reference to an undeclared scanner state.
	ErrUnknownState = errors.New("unknown scanner state")

	// ErrDuplicateState indicates a scanner state declared twice.
	ErrDuplicateState = errors.New("duplicate scanner state")

	// ErrReservedState indicates an explicit declaration of the default
	// state name "". Default-state rules are listed bare instead.
	ErrReservedState = errors.New(`scanner state name "" is reserved`)

	// ErrNoRules indicates a scanner state with an empty rule list.
	ErrNoRules = errors.New("scanner state has no rules")

	// ErrUnrecognizedInput indicates input no rule of the current
	// scanner state matches.
	ErrUnrecognizedInput = errors.New("unrecognized input")

	// ErrNoSyncPoint indicates Resync reached end of input without
	// finding a plausible token start.
	ErrNoSyncPoint = errors.New("no synchronization point before end of input")
)

// CompileError wraps a lexicon compilation failure with the scanner
// state it occurred in.
type CompileError struct {
	State string // scanner state name; "" is the default state
	Err   error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.State != "" {
		return fmt.Sprintf("compiling scanner state %q: %v", e.State, e.Err)
	}
	return fmt.Sprintf("compiling default scanner state: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// InputError is a scan-time failure carrying the input position it
// occurred at.
type InputError struct {
	Pos   Position
	Char  byte // the offending byte; meaningless when AtEOF
	AtEOF bool // input ended while a rule still needed more
	Err   error
}

// Error implements the error interface.
func (e *InputError) Error() string {
	switch {
	case e.AtEOF:
		return fmt.Sprintf("%s: %v at end of input", e.Pos, e.Err)
	case errors.Is(e.Err, ErrUnrecognizedInput):
		return fmt.Sprintf("%s: %v %q", e.Pos, e.Err, string(e.Char))
	default:
		return fmt.Sprintf("%s: %v", e.Pos, e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *InputError) Unwrap() error {
	return e.Err
}
