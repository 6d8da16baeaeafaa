package lexc

import (
	"fmt"
	"io"

	"github.com/coregx/lexc/dfa"
	"github.com/coregx/lexc/nfa"
)

// Scanner drives a compiled lexicon over an input stream and yields
// tokens. A Scanner is single-threaded; the Lexicon it references is
// immutable and may be shared by any number of concurrent scanners.
type Scanner struct {
	lex   *Lexicon
	in    *stream
	state string // current scanner state name

	queue []Token // produced but not yet returned, FIFO

	// pos is the start position of the most recently returned token.
	pos Position

	// matchPos/matchText describe the match being dispatched; Produce
	// uses them as defaults.
	matchPos  Position
	matchText string

	eofHook func(*Scanner) error
	eofDone bool

	// UserData is an opaque slot for stateful actions (nesting depth,
	// indentation stacks, ...). The scanner never touches it.
	UserData any

	// Scratch buffers reused across Read calls.
	trail []trailEntry
	buf   []byte
}

// trailEntry records one consumed symbol and the position it was
// yielded at, so over-consumed symbols can be pushed back at the
// longest-match cut.
type trailEntry struct {
	sym       int
	line, col int
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithName sets the input name reported by Position (typically the
// file name).
func WithName(name string) Option {
	return func(s *Scanner) {
		s.in.name = name
	}
}

// WithEOFHook installs a hook invoked exactly once when the input is
// exhausted, just before the end-of-input sentinel is emitted. The
// hook may call Produce; queued tokens are returned before the
// sentinel.
func WithEOFHook(hook func(*Scanner) error) Option {
	return func(s *Scanner) {
		s.eofHook = hook
	}
}

// WithUserData seeds the scanner's UserData slot.
func WithUserData(data any) Option {
	return func(s *Scanner) {
		s.UserData = data
	}
}

// NewScanner creates a scanner over r, starting in the default state.
func NewScanner(lex *Lexicon, r io.Reader, opts ...Option) *Scanner {
	s := &Scanner{
		lex: lex,
		in:  newStream(r, ""),
	}
	s.pos = s.in.pos()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Position returns the location of the first character of the most
// recently returned token.
func (s *Scanner) Position() Position {
	return s.pos
}

// State returns the name of the current scanner state.
func (s *Scanner) State() string {
	return s.state
}

// Begin switches the scanner to the named state. Switching to the
// current state is a no-op. It is legal between tokens and from within
// actions; there is never an automaton step in progress at either
// point.
func (s *Scanner) Begin(state string) error {
	if _, ok := s.lex.states[state]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownState, state)
	}
	s.state = state
	return nil
}

// Produce queues a token for a subsequent Read. The text defaults to
// the current match's text. Callable any number of times per action;
// tokens are returned in insertion order before scanning resumes.
func (s *Scanner) Produce(value any, text ...string) {
	tok := Token{Value: value, Text: s.matchText, pos: s.matchPos}
	if len(text) > 0 {
		tok.Text = text[0]
	}
	s.queue = append(s.queue, tok)
}

// Read returns the next token. At end of input it returns the
// end-of-input sentinel (Token.EOF reports true), and keeps returning
// it on further calls.
func (s *Scanner) Read() (Token, error) {
	for {
		if len(s.queue) > 0 {
			tok := s.queue[0]
			s.queue = s.queue[1:]
			s.pos = tok.pos
			return tok, nil
		}

		tok, done, err := s.scanOne()
		if err != nil {
			return Token{}, err
		}
		if done {
			s.pos = tok.pos
			return tok, nil
		}
		// Ignore/Begin: no token, rescan from the new cursor.
	}
}

// scanOne runs one longest-match attempt and dispatches the result.
// done is false when the action produced nothing and scanning should
// continue (Ignore, Begin, a Call returning nil).
func (s *Scanner) scanOne() (tok Token, done bool, err error) {
	prog := s.lex.states[s.state]
	d := prog.dfa
	startPos := s.in.pos()

	s.trail = s.trail[:0]
	s.buf = s.buf[:0]
	cur := d.Start()
	acceptRule := int32(-1)
	acceptTrail, acceptBuf := 0, 0
	deadSym := -1
	exhausted := false

	// A zero-length accept (a rule that matches the empty string) is
	// deliberately not recorded: a match must consume at least one
	// symbol or the scanner could not make progress.

	for {
		sym, line, col, ok, ioErr := s.in.next()
		if ioErr != nil {
			return Token{}, false, &InputError{Pos: s.in.pos(), Err: ioErr}
		}
		if !ok {
			exhausted = true
			break
		}
		next := d.Next(cur, s.lex.classes.Get(sym))
		if next == dfa.DeadState {
			if nfa.IsAnchor(sym) {
				// Anchors are transparent to rules that do not mention
				// them: consume in place without leaving the state.
				s.trail = append(s.trail, trailEntry{sym: sym, line: line, col: col})
				continue
			}
			s.in.pushBack(sym, line, col)
			deadSym = sym
			break
		}
		s.trail = append(s.trail, trailEntry{sym: sym, line: line, col: col})
		if sym < nfa.SymbolBOL {
			s.buf = append(s.buf, byte(sym))
		}
		cur = next
		if r := d.Accept(cur); r != dfa.NoRule {
			acceptRule, acceptTrail, acceptBuf = r, len(s.trail), len(s.buf)
		}
	}

	if acceptRule >= 0 {
		// Longest-match cut: push back everything past the accept.
		for i := len(s.trail) - 1; i >= acceptTrail; i-- {
			e := s.trail[i]
			s.in.pushBack(e.sym, e.line, e.col)
		}
		return s.dispatch(prog.actions[acceptRule], string(s.buf[:acceptBuf]), startPos)
	}

	if len(s.buf) == 0 && exhausted {
		return s.atEOF(startPos)
	}

	// Restore the input so the caller can attempt recovery.
	for i := len(s.trail) - 1; i >= 0; i-- {
		e := s.trail[i]
		s.in.pushBack(e.sym, e.line, e.col)
	}
	ie := &InputError{Pos: startPos, Err: ErrUnrecognizedInput}
	if deadSym >= 0 {
		ie.Char = byte(deadSym)
	} else {
		ie.AtEOF = true
	}
	return Token{}, false, ie
}

// dispatch applies the matched rule's action.
func (s *Scanner) dispatch(act Action, text string, pos Position) (Token, bool, error) {
	s.matchPos = pos
	s.matchText = text

	switch a := act.(type) {
	case ignoreAction:
		return Token{}, false, nil
	case textAction:
		return Token{Value: text, Text: text, pos: pos}, true, nil
	case returnAction:
		return Token{Value: a.value, Text: text, pos: pos}, true, nil
	case beginAction:
		if err := s.Begin(a.state); err != nil {
			return Token{}, false, err
		}
		return Token{}, false, nil
	case callAction:
		v, err := a.fn(s, text)
		if err != nil {
			return Token{}, false, &InputError{Pos: pos, Err: err}
		}
		if len(s.queue) > 0 {
			// Queued tokens win over the return value; Read drains them.
			return Token{}, false, nil
		}
		if v == nil {
			return Token{}, false, nil
		}
		return Token{Value: v, Text: text, pos: pos}, true, nil
	default:
		return Token{}, false, fmt.Errorf("unknown action %T", act)
	}
}

// atEOF runs the EOF hook once, then emits the sentinel. Tokens the
// hook queues are drained by Read before the sentinel is returned.
func (s *Scanner) atEOF(pos Position) (Token, bool, error) {
	if !s.eofDone {
		s.eofDone = true
		if s.eofHook != nil {
			s.matchPos = pos
			s.matchText = ""
			if err := s.eofHook(s); err != nil {
				return Token{}, false, &InputError{Pos: pos, AtEOF: true, Err: err}
			}
			if len(s.queue) > 0 {
				return Token{}, false, nil
			}
		}
	}
	return Token{pos: pos}, true, nil
}
