package lexc

import (
	"bufio"
	"io"

	"github.com/coregx/lexc/nfa"
)

// stream adapts an io.Reader into the scanner's symbol source: raw
// bytes interleaved with the virtual anchor symbols, with line/column
// tracking and a pushback stack for longest-match backtracking.
//
// Anchor injection: a beginning-of-line symbol is yielded at the start
// of input and after every newline; an end-of-line symbol just before
// each newline and before end of input; an end-of-file symbol at end
// of input. Each anchor is injected at most once per boundary. Pushed
// back symbols are re-yielded verbatim, so a pushed-back anchor can be
// consumed again without being injected a second time.
type stream struct {
	r    *bufio.Reader
	name string

	// Cursor position of the next fresh symbol. Line is 1-based, col
	// 0-based.
	line, col int

	// pending is the pushback stack. The top entry's position is the
	// effective cursor position while the stack is non-empty.
	pending []pendingSym

	bolPending bool // inject BOL before the next symbol
	eolDone    bool // EOL already injected at the current boundary
	eofDone    bool // EOF already injected
}

type pendingSym struct {
	sym       int
	line, col int
}

func newStream(r io.Reader, name string) *stream {
	return &stream{
		r:          bufio.NewReader(r),
		name:       name,
		line:       1,
		bolPending: true,
	}
}

// pos returns the current cursor position.
func (st *stream) pos() Position {
	if n := len(st.pending); n > 0 {
		top := st.pending[n-1]
		return Position{Name: st.name, Line: top.line, Col: top.col}
	}
	return Position{Name: st.name, Line: st.line, Col: st.col}
}

// next consumes and returns the next symbol and the position it was
// yielded at. ok is false once the input, including the end-of-file
// symbol, is exhausted.
func (st *stream) next() (sym, line, col int, ok bool, err error) {
	if n := len(st.pending); n > 0 {
		top := st.pending[n-1]
		st.pending = st.pending[:n-1]
		return top.sym, top.line, top.col, true, nil
	}

	line, col = st.line, st.col

	if st.bolPending {
		st.bolPending = false
		return nfa.SymbolBOL, line, col, true, nil
	}

	b, err := st.r.Peek(1)
	if err == io.EOF {
		if !st.eolDone {
			st.eolDone = true
			return nfa.SymbolEOL, line, col, true, nil
		}
		if !st.eofDone {
			st.eofDone = true
			return nfa.SymbolEOF, line, col, true, nil
		}
		return 0, line, col, false, nil
	}
	if err != nil {
		return 0, line, col, false, err
	}

	if b[0] == '\n' && !st.eolDone {
		st.eolDone = true
		return nfa.SymbolEOL, line, col, true, nil
	}

	// Consume the real byte and advance the cursor.
	c, _ := st.r.ReadByte()
	st.eolDone = false
	if c == '\n' {
		st.line++
		st.col = 0
		st.bolPending = true
	} else {
		st.col++
	}
	return int(c), line, col, true, nil
}

// pushBack returns a symbol to the stream; it will be the next symbol
// yielded. Symbols must be pushed back in reverse consumption order.
func (st *stream) pushBack(sym, line, col int) {
	st.pending = append(st.pending, pendingSym{sym: sym, line: line, col: col})
}
