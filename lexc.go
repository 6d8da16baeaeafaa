// Package lexc builds lexical analyzers from pattern combinators.
//
// A lexicon is an ordered list of (pattern, action) rules, optionally
// grouped into named scanner states. Patterns are regular expressions
// assembled with combinators (Str, Range, Seq, Rep, ...) or parsed
// from traditional syntax with Re. NewLexicon compiles the rules
// through a Thompson NFA and subset construction into per-state DFAs
// over a reduced symbol alphabet; a Scanner then drives a DFA over an
// input stream, yielding the longest match at each cursor position and
// breaking length ties by rule order.
//
// A minimal scanner:
//
//	lex, err := lexc.NewLexicon(
//		lexc.Rule{Pattern: lexc.Str("if", "then", "else"), Action: lexc.Text},
//		lexc.Rule{Pattern: lexc.Seq(lexc.Range("azAZ"), lexc.Rep(lexc.Range("azAZ09"))), Action: lexc.Return("ident")},
//		lexc.Rule{Pattern: lexc.Rep1(lexc.Any(" \t\n")), Action: lexc.Ignore},
//	)
//	if err != nil { ... }
//	s := lexc.NewScanner(lex, strings.NewReader("if x1"))
//	for {
//		tok, err := s.Read()
//		if err != nil || tok.EOF() {
//			break
//		}
//		fmt.Println(tok.Value, tok.Text)
//	}
//
// Scanning time is linear in the input length and independent of the
// number or complexity of the rules. Compiled lexicons are immutable
// and freely shared; scanners are single-threaded.
package lexc

import (
	"github.com/coregx/lexc/syntax"
)

// Pattern is a regular pattern built by the combinator constructors or
// by Re. See the syntax package for the underlying algebra.
type Pattern = syntax.Pattern

// Combinator constructors, re-exported from the syntax package.
var (
	// Bol matches at the beginning of a line, consuming no text.
	Bol = syntax.Bol

	// Eol matches at the end of a line, consuming no text.
	Eol = syntax.Eol

	// Eof matches at the end of the input, consuming no text.
	Eof = syntax.Eof
)

// Empty returns a pattern matching the empty string.
func Empty() *Pattern { return syntax.Empty() }

// Char returns a pattern matching exactly the byte b.
func Char(b byte) *Pattern { return syntax.Char(b) }

// Any returns a pattern matching any single byte of chars.
func Any(chars string) *Pattern { return syntax.Any(chars) }

// AnyBut returns a pattern matching any single byte not in chars.
func AnyBut(chars string) *Pattern { return syntax.AnyBut(chars) }

// AnyChar returns a pattern matching any single byte.
func AnyChar() *Pattern { return syntax.AnyChar() }

// Range returns a pattern matching any byte in the ranges described by
// spec, consumed as lo/hi pairs: Range("AZaz") matches ASCII letters.
func Range(spec string) *Pattern { return syntax.Range(spec) }

// Str returns a pattern matching any one of the given literal strings.
func Str(strs ...string) *Pattern { return syntax.Str(strs...) }

// Seq returns the concatenation of the given patterns.
func Seq(ps ...*Pattern) *Pattern { return syntax.Seq(ps...) }

// Alt returns the alternation of the given patterns.
func Alt(ps ...*Pattern) *Pattern { return syntax.Alt(ps...) }

// Rep returns a pattern matching zero or more repetitions of p.
func Rep(p *Pattern) *Pattern { return syntax.Rep(p) }

// Rep1 returns a pattern matching one or more repetitions of p.
func Rep1(p *Pattern) *Pattern { return syntax.Rep1(p) }

// Opt returns a pattern matching p or the empty string.
func Opt(p *Pattern) *Pattern { return syntax.Opt(p) }

// NoCase returns p with ASCII letters matching both cases.
func NoCase(p *Pattern) *Pattern { return syntax.NoCase(p) }

// Case returns p made case-sensitive, overriding an enclosing NoCase.
func Case(p *Pattern) *Pattern { return syntax.Case(p) }

// Re parses a traditional regex expression into a pattern. See
// syntax.Parse for the accepted grammar.
func Re(expr string) (*Pattern, error) { return syntax.Parse(expr) }

// MustRe is like Re but panics on a malformed expression. It
// simplifies lexicon literals built from expressions known to be valid.
func MustRe(expr string) *Pattern {
	p, err := syntax.Parse(expr)
	if err != nil {
		panic(`lexc: MustRe(` + expr + `): ` + err.Error())
	}
	return p
}

// Collect reads tokens until the end-of-input sentinel and returns
// them, sentinel excluded.
func Collect(s *Scanner) ([]Token, error) {
	var toks []Token
	for {
		tok, err := s.Read()
		if err != nil {
			return toks, err
		}
		if tok.EOF() {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}
