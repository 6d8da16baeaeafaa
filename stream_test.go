package lexc

import (
	"strings"
	"testing"

	"github.com/coregx/lexc/nfa"
)

func collectSymbols(t *testing.T, st *stream, max int) []int {
	t.Helper()
	var syms []int
	for i := 0; i < max; i++ {
		sym, _, _, ok, err := st.next()
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if !ok {
			return syms
		}
		syms = append(syms, sym)
	}
	t.Fatalf("stream yielded more than %d symbols", max)
	return nil
}

// TestStream_AnchorInjection tests the interleaving of virtual anchors
// with real bytes.
func TestStream_AnchorInjection(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int
	}{
		{
			"empty input",
			"",
			[]int{nfa.SymbolBOL, nfa.SymbolEOL, nfa.SymbolEOF},
		},
		{
			"single line without newline",
			"ab",
			[]int{nfa.SymbolBOL, 'a', 'b', nfa.SymbolEOL, nfa.SymbolEOF},
		},
		{
			"newline boundary",
			"a\nb",
			[]int{nfa.SymbolBOL, 'a', nfa.SymbolEOL, '\n', nfa.SymbolBOL, 'b', nfa.SymbolEOL, nfa.SymbolEOF},
		},
		{
			"trailing newline",
			"a\n",
			[]int{nfa.SymbolBOL, 'a', nfa.SymbolEOL, '\n', nfa.SymbolBOL, nfa.SymbolEOL, nfa.SymbolEOF},
		},
		{
			"blank line",
			"\n\n",
			[]int{nfa.SymbolBOL, nfa.SymbolEOL, '\n', nfa.SymbolBOL, nfa.SymbolEOL, '\n', nfa.SymbolBOL, nfa.SymbolEOL, nfa.SymbolEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newStream(strings.NewReader(tt.input), "")
			got := collectSymbols(t, st, 64)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("symbol %d: got %d, want %d (%v vs %v)", i, got[i], tt.want[i], got, tt.want)
				}
			}
			// Exhausted streams stay exhausted.
			if _, _, _, ok, _ := st.next(); ok {
				t.Error("stream should stay exhausted")
			}
		})
	}
}

// TestStream_Positions tests cursor tracking across newlines.
func TestStream_Positions(t *testing.T) {
	st := newStream(strings.NewReader("ab\nc"), "f")
	type posSym struct {
		sym       int
		line, col int
	}
	want := []posSym{
		{nfa.SymbolBOL, 1, 0},
		{'a', 1, 0},
		{'b', 1, 1},
		{nfa.SymbolEOL, 1, 2},
		{'\n', 1, 2},
		{nfa.SymbolBOL, 2, 0},
		{'c', 2, 0},
		{nfa.SymbolEOL, 2, 1},
		{nfa.SymbolEOF, 2, 1},
	}
	for i, w := range want {
		sym, line, col, ok, err := st.next()
		if err != nil || !ok {
			t.Fatalf("symbol %d: ok=%v err=%v", i, ok, err)
		}
		if sym != w.sym || line != w.line || col != w.col {
			t.Errorf("symbol %d: got (%d, %d:%d), want (%d, %d:%d)", i, sym, line, col, w.sym, w.line, w.col)
		}
	}
}

// TestStream_PushBack tests that pushed-back symbols are re-yielded in
// reverse push order with their original positions, and that anchors
// are not re-injected around them.
func TestStream_PushBack(t *testing.T) {
	st := newStream(strings.NewReader("ab"), "")

	// Consume BOL, 'a', 'b'.
	var got []pendingSym
	for i := 0; i < 3; i++ {
		sym, line, col, ok, err := st.next()
		if !ok || err != nil {
			t.Fatalf("setup next %d: ok=%v err=%v", i, ok, err)
		}
		got = append(got, pendingSym{sym: sym, line: line, col: col})
	}

	// Push back 'b' then 'a' (reverse consumption order).
	st.pushBack(got[2].sym, got[2].line, got[2].col)
	st.pushBack(got[1].sym, got[1].line, got[1].col)

	if pos := st.pos(); pos.Line != 1 || pos.Col != 0 {
		t.Errorf("cursor after pushback: got %d:%d, want 1:0", pos.Line, pos.Col)
	}

	want := []int{'a', 'b', nfa.SymbolEOL, nfa.SymbolEOF}
	for i, w := range want {
		sym, _, _, ok, err := st.next()
		if !ok || err != nil {
			t.Fatalf("replay next %d: ok=%v err=%v", i, ok, err)
		}
		if sym != w {
			t.Errorf("replay symbol %d: got %d, want %d", i, sym, w)
		}
	}
	// No second BOL was injected: the replay continued seamlessly.
}
