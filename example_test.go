package lexc_test

import (
	"fmt"
	"strings"

	"github.com/coregx/lexc"
)

func Example() {
	lex, err := lexc.NewLexicon(
		lexc.Rule{Pattern: lexc.Str("if", "then", "else", "end"), Action: lexc.Text},
		lexc.Rule{Pattern: lexc.Seq(lexc.Range("AZaz"), lexc.Rep(lexc.Range("AZaz09"))), Action: lexc.Return("ident")},
		lexc.Rule{Pattern: lexc.Rep1(lexc.Range("09")), Action: lexc.Return("int")},
		lexc.Rule{Pattern: lexc.Rep1(lexc.Any(" \t\n")), Action: lexc.Ignore},
	)
	if err != nil {
		panic(err)
	}

	s := lexc.NewScanner(lex, strings.NewReader("if x1 42"))
	for {
		tok, err := s.Read()
		if err != nil {
			panic(err)
		}
		if tok.EOF() {
			break
		}
		fmt.Printf("%v %q\n", tok.Value, tok.Text)
	}
	// Output:
	// if "if"
	// ident "x1"
	// int "42"
}

func ExampleRe() {
	lex, err := lexc.NewLexicon(
		lexc.Rule{Pattern: lexc.MustRe("[A-Za-z_][A-Za-z0-9_]*"), Action: lexc.Return("word")},
		lexc.Rule{Pattern: lexc.MustRe("-?[0-9]+"), Action: lexc.Return("num")},
		lexc.Rule{Pattern: lexc.MustRe(" +"), Action: lexc.Ignore},
	)
	if err != nil {
		panic(err)
	}

	s := lexc.NewScanner(lex, strings.NewReader("answer -42"))
	toks, err := lexc.Collect(s)
	if err != nil {
		panic(err)
	}
	for _, tok := range toks {
		fmt.Printf("%v %q\n", tok.Value, tok.Text)
	}
	// Output:
	// word "answer"
	// num "-42"
}

func ExampleScanner_Begin() {
	lex, err := lexc.NewLexicon(
		lexc.Rule{Pattern: lexc.MustRe("[a-z]+"), Action: lexc.Text},
		lexc.Rule{Pattern: lexc.Str("\""), Action: lexc.Begin("string")},
		lexc.Rule{Pattern: lexc.MustRe(" +"), Action: lexc.Ignore},
		lexc.State("string",
			lexc.Rule{Pattern: lexc.Str("\""), Action: lexc.Begin("")},
			lexc.Rule{Pattern: lexc.Rep1(lexc.AnyBut("\"\n")), Action: lexc.Return("str")},
		),
	)
	if err != nil {
		panic(err)
	}

	s := lexc.NewScanner(lex, strings.NewReader(`say "hi there" bye`))
	toks, err := lexc.Collect(s)
	if err != nil {
		panic(err)
	}
	for _, tok := range toks {
		fmt.Printf("%v %q\n", tok.Value, tok.Text)
	}
	// Output:
	// say "say"
	// str "hi there"
	// bye "bye"
}
