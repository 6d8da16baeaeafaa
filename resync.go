package lexc

import (
	"fmt"

	"github.com/coregx/lexc/nfa"
)

// Resync recovers from unrecognized input by skipping forward to a
// plausible token start, so scanning can continue past an error.
//
// When the current scanner state's rules have literal prefixes, the
// stream is searched line by line for the earliest occurrence of any
// of them and repositioned there. Otherwise the remainder of the
// current line, including its newline, is discarded. Recovery is
// best-effort: it returns ErrNoSyncPoint when the input ends first.
func (s *Scanner) Resync() error {
	prog := s.lex.states[s.state]

	line := make([]trailEntry, 0, 64)
	// The scan starts at the position Read failed at; a literal hit on
	// the very first byte would make no progress, so the first line is
	// searched from offset one.
	minOffset := 1
	for {
		line = line[:0]
		sawEOF := false
		for {
			sym, ln, cl, ok, err := s.in.next()
			if err != nil {
				return &InputError{Pos: s.in.pos(), Err: err}
			}
			if !ok {
				sawEOF = true
				break
			}
			// Anchors are kept so that those at or after the sync point
			// are pushed back with the bytes; the stream never re-injects
			// them.
			line = append(line, trailEntry{sym: sym, line: ln, col: cl})
			if sym == '\n' {
				break
			}
		}

		if prog.resync != nil {
			buf := make([]byte, 0, len(line))
			idx := make([]int, 0, len(line)) // buf offset -> line index
			for i, e := range line {
				if !nfa.IsAnchor(e.sym) {
					buf = append(buf, byte(e.sym))
					idx = append(idx, i)
				}
			}
			if at := prog.resync.Find(buf, minOffset); at >= 0 {
				from := idx[at]
				// Anchors injected at the sync byte's position belong to it.
				for from > 0 && nfa.IsAnchor(line[from-1].sym) &&
					line[from-1].line == line[from].line && line[from-1].col == line[from].col {
					from--
				}
				for i := len(line) - 1; i >= from; i-- {
					e := line[i]
					s.in.pushBack(e.sym, e.line, e.col)
				}
				return nil
			}
		} else if len(line) > 0 && line[len(line)-1].sym == '\n' {
			// No literals to search for: resume at the next line.
			return nil
		}

		if sawEOF {
			return fmt.Errorf("%w (scanner state %q)", ErrNoSyncPoint, s.state)
		}
		minOffset = 0
	}
}
