package syntax

import (
	"testing"
)

// TestParse_Valid tests that well-formed expressions parse into the
// expected top-level shapes.
func TestParse_Valid(t *testing.T) {
	tests := []struct {
		expr string
		want Op
	}{
		{"", OpEmpty},
		{"a", OpClass},
		{"ab", OpConcat},
		{"a|b", OpAlt},
		{"a*", OpRep},
		{"a+", OpConcat}, // a followed by a*
		{"a?", OpAlt},    // a or empty
		{"(a|b)c", OpConcat},
		{"[abc]", OpClass},
		{"[a-z]", OpClass},
		{"[^a-z]", OpClass},
		{".", OpClass},
		{"^", OpBol},
		{"$", OpEol},
		{`\.`, OpClass},
		{`\\`, OpClass},
		{"a|b|c", OpAlt},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			p, err := Parse(tt.expr)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := p.Op(); got != tt.want {
				t.Errorf("got op %s, want %s", got, tt.want)
			}
		})
	}
}

// TestParse_Errors tests rejection of malformed expressions.
func TestParse_Errors(t *testing.T) {
	tests := []string{
		"(a",
		"a)",
		"[abc",
		"*",
		"+x",
		"a|*",
		`a\`,
		`[a\`,
		"[z-a]",
	}

	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			if _, err := Parse(expr); err == nil {
				t.Errorf("Parse(%q) should fail", expr)
			}
		})
	}
}

// TestParse_ClassDetails tests character-class edge cases.
func TestParse_ClassDetails(t *testing.T) {
	tests := []struct {
		expr string
		in   string
		out  string
	}{
		{"[a-z]", "amz", "AMZ0-"},
		{"[-az]", "-az", "bmx"},
		{"[az-]", "-az", "bmx"},
		{"[a-]", "-a", "bz"},
		{"[^a-z]", "AMZ0-", "amz"},
		{"[]a]", "]a", "bz"},
		{`[\]a]`, "]a", "bz"},
		{`[a\-z]`, "a-z", "bm"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			p, err := Parse(tt.expr)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			set := p.Set()
			for i := 0; i < len(tt.in); i++ {
				if !set.Contains(tt.in[i]) {
					t.Errorf("class should contain %q", tt.in[i])
				}
			}
			for i := 0; i < len(tt.out); i++ {
				if set.Contains(tt.out[i]) {
					t.Errorf("class should not contain %q", tt.out[i])
				}
			}
		})
	}
}

// TestParse_DotExcludesNewline tests the documented '.' semantics.
func TestParse_DotExcludesNewline(t *testing.T) {
	p, err := Parse(".")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	set := p.Set()
	if set.Contains('\n') {
		t.Error(". should not match newline")
	}
	if !set.Contains('x') || !set.Contains(0) {
		t.Error(". should match any other byte")
	}
}

// TestParse_ErrorPosition tests that errors carry the failing offset.
func TestParse_ErrorPosition(t *testing.T) {
	_, err := Parse("ab(cd")
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("got %T, want *ParseError", err)
	}
	if pe.Expr != "ab(cd" {
		t.Errorf("Expr: got %q", pe.Expr)
	}
	if pe.Pos != 5 {
		t.Errorf("Pos: got %d, want 5", pe.Pos)
	}
}
