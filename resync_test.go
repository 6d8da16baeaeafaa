package lexc

import (
	"errors"
	"strings"
	"testing"
)

// TestScanner_Resync tests literal-prefix resynchronization after
// unrecognized input.
func TestScanner_Resync(t *testing.T) {
	lex, err := NewLexicon(
		Rule{Pattern: Str("if", "then"), Action: Text},
		Rule{Pattern: Rep1(Any(" \n")), Action: Ignore},
	)
	if err != nil {
		t.Fatalf("NewLexicon: %v", err)
	}

	t.Run("skips to the next literal", func(t *testing.T) {
		s := NewScanner(lex, strings.NewReader("@@@ then"))
		_, err := s.Read()
		if !errors.Is(err, ErrUnrecognizedInput) {
			t.Fatalf("got %v, want ErrUnrecognizedInput", err)
		}
		if err := s.Resync(); err != nil {
			t.Fatalf("Resync: %v", err)
		}
		tok, err := s.Read()
		if err != nil || tok.Text != "then" {
			t.Fatalf("after resync: got (%v, %v), want then", tok, err)
		}
	})

	t.Run("searches across lines", func(t *testing.T) {
		s := NewScanner(lex, strings.NewReader("@@@@\n#### if"))
		_, err := s.Read()
		if !errors.Is(err, ErrUnrecognizedInput) {
			t.Fatalf("got %v, want ErrUnrecognizedInput", err)
		}
		if err := s.Resync(); err != nil {
			t.Fatalf("Resync: %v", err)
		}
		tok, err := s.Read()
		if err != nil || tok.Text != "if" {
			t.Fatalf("after resync: got (%v, %v), want if", tok, err)
		}
	})

	t.Run("no sync point before EOF", func(t *testing.T) {
		s := NewScanner(lex, strings.NewReader("@@@@"))
		if _, err := s.Read(); err == nil {
			t.Fatal("read should fail")
		}
		if err := s.Resync(); !errors.Is(err, ErrNoSyncPoint) {
			t.Fatalf("got %v, want ErrNoSyncPoint", err)
		}
	})
}

// TestScanner_ResyncWithoutLiterals tests the newline fallback for
// lexicons whose rules have no literal prefixes.
func TestScanner_ResyncWithoutLiterals(t *testing.T) {
	lex, err := NewLexicon(
		Rule{Pattern: Seq(Range("az"), Rep(Range("az"))), Action: Text},
		Rule{Pattern: Rep1(Char(' ')), Action: Ignore},
	)
	if err != nil {
		t.Fatalf("NewLexicon: %v", err)
	}

	s := NewScanner(lex, strings.NewReader("123 456\nabc"))
	_, err = s.Read()
	if !errors.Is(err, ErrUnrecognizedInput) {
		t.Fatalf("got %v, want ErrUnrecognizedInput", err)
	}
	if err := s.Resync(); err != nil {
		t.Fatalf("Resync: %v", err)
	}
	tok, err := s.Read()
	if err != nil || tok.Text != "abc" {
		t.Fatalf("after resync: got (%v, %v), want abc", tok, err)
	}
	if pos := s.Position(); pos.Line != 2 || pos.Col != 0 {
		t.Errorf("position: got %d:%d, want 2:0", pos.Line, pos.Col)
	}
}

// TestScanner_ResyncMakesProgress tests that resync never returns to
// the failure position even when a literal starts there.
func TestScanner_ResyncMakesProgress(t *testing.T) {
	// The rule's literal prefix "if" occurs exactly at the failure
	// position, which must not count as a sync point: the rule already
	// failed there.
	lex, err := NewLexicon(
		Rule{Pattern: Seq(Str("if"), Range("09")), Action: Text},
	)
	if err != nil {
		t.Fatalf("NewLexicon: %v", err)
	}
	s := NewScanner(lex, strings.NewReader("ifx if2"))
	if _, err := s.Read(); !errors.Is(err, ErrUnrecognizedInput) {
		t.Fatalf("got %v, want ErrUnrecognizedInput", err)
	}
	if err := s.Resync(); err != nil {
		t.Fatalf("Resync: %v", err)
	}
	tok, err := s.Read()
	if err != nil || tok.Text != "if2" {
		t.Fatalf("after resync: got (%v, %v), want if2", tok, err)
	}
}
