// Package lexfile compiles lexicons from declarative YAML documents.
//
// A document lists scanner states and their rules; patterns use the
// traditional regex syntax accepted by lexc.Re. Example:
//
//	states:
//	  - name: ""
//	    rules:
//	      - pattern: "[A-Za-z][A-Za-z0-9]*"
//	        action: token ident
//	      - pattern: "[ \t\n]+"
//	        action: ignore
//	      - pattern: "\\(\\*"
//	        action: begin comment
//	  - name: comment
//	    rules:
//	      - pattern: "\\*\\)"
//	        action: begin ""
//	      - pattern: "."
//	        action: ignore
//
// Actions: "ignore", "text", "begin <state>", "token <value>" and
// "call <name>", where <name> is resolved against the caller-supplied
// function registry.
package lexfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/projectdiscovery/gologger"
	"gopkg.in/yaml.v3"

	"github.com/coregx/lexc"
)

// Document is the YAML shape of a lexicon definition.
type Document struct {
	States []StateDef `yaml:"states"`
}

// StateDef declares one scanner state. The empty name is the default
// state.
type StateDef struct {
	Name  string    `yaml:"name"`
	Rules []RuleDef `yaml:"rules"`
}

// RuleDef declares one rule: a traditional-syntax pattern and an
// action string.
type RuleDef struct {
	Pattern string `yaml:"pattern"`
	Action  string `yaml:"action"`
}

// Funcs maps names usable in "call <name>" actions to their
// implementations.
type Funcs map[string]lexc.CallFunc

// Load reads and compiles a lexicon definition file.
func Load(path string, funcs Funcs) (*lexc.Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	gologger.Verbose().Msgf("loading lexicon definition from %s", path)
	return Parse(data, funcs)
}

// Parse compiles a lexicon definition document.
func Parse(data []byte, funcs Funcs) (*lexc.Lexicon, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing lexicon document: %w", err)
	}
	if len(doc.States) == 0 {
		return nil, fmt.Errorf("lexicon document declares no states")
	}

	var items []lexc.Item
	ruleCount := 0
	for _, st := range doc.States {
		rules := make([]lexc.Rule, 0, len(st.Rules))
		for i, rd := range st.Rules {
			rule, err := compileRule(rd, funcs)
			if err != nil {
				return nil, fmt.Errorf("state %q rule %d: %w", st.Name, i, err)
			}
			rules = append(rules, rule)
		}
		ruleCount += len(rules)
		if st.Name == "" {
			for _, r := range rules {
				items = append(items, r)
			}
		} else {
			items = append(items, lexc.State(st.Name, rules...))
		}
	}

	lex, err := lexc.NewLexicon(items...)
	if err != nil {
		return nil, err
	}
	gologger.Verbose().Msgf("compiled lexicon: %d states, %d rules, %d symbol classes",
		lex.States(), ruleCount, lex.ClassCount())
	return lex, nil
}

func compileRule(rd RuleDef, funcs Funcs) (lexc.Rule, error) {
	pat, err := lexc.Re(rd.Pattern)
	if err != nil {
		return lexc.Rule{}, err
	}
	act, err := parseAction(rd.Action, funcs)
	if err != nil {
		return lexc.Rule{}, err
	}
	return lexc.Rule{Pattern: pat, Action: act}, nil
}

func parseAction(spec string, funcs Funcs) (lexc.Action, error) {
	verb, arg, _ := strings.Cut(strings.TrimSpace(spec), " ")
	arg = strings.TrimSpace(arg)
	switch verb {
	case "ignore":
		return lexc.Ignore, nil
	case "text":
		return lexc.Text, nil
	case "begin":
		// An empty argument switches back to the default state.
		return lexc.Begin(strings.Trim(arg, `"`)), nil
	case "token":
		if arg == "" {
			return nil, fmt.Errorf("action %q: token requires a value", spec)
		}
		return lexc.Return(arg), nil
	case "call":
		if arg == "" {
			return nil, fmt.Errorf("action %q: call requires a function name", spec)
		}
		fn, ok := funcs[arg]
		if !ok {
			return nil, fmt.Errorf("action %q: no function %q registered", spec, arg)
		}
		return lexc.Call(fn), nil
	case "":
		return nil, fmt.Errorf("rule has no action")
	default:
		return nil, fmt.Errorf("unknown action %q", verb)
	}
}
