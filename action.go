package lexc

// Action determines what the scanner does with a rule's matched text.
// The concrete actions are Ignore, Text, Begin, Return and Call.
type Action interface {
	isAction()
}

type ignoreAction struct{}

func (ignoreAction) isAction() {}

// Ignore discards the match and resumes scanning. Use it for
// whitespace and comments.
var Ignore Action = ignoreAction{}

type textAction struct{}

func (textAction) isAction() {}

// Text returns the matched text itself as the token value.
var Text Action = textAction{}

type beginAction struct {
	state string
}

func (beginAction) isAction() {}

// Begin switches the scanner to the named state and resumes scanning
// without producing a token. The target state must exist in the
// lexicon; NewLexicon verifies this.
func Begin(state string) Action {
	return beginAction{state: state}
}

type returnAction struct {
	value any
}

func (returnAction) isAction() {}

// Return produces a token with the given literal value and the matched
// text.
func Return(value any) Action {
	return returnAction{value: value}
}

// CallFunc is a user action. It receives the scanner (for Begin,
// Produce, Position and the UserData slot) and the matched text. A nil
// value with a nil error discards the match like Ignore; a non-nil
// value becomes the token value.
type CallFunc func(s *Scanner, text string) (any, error)

type callAction struct {
	fn CallFunc
}

func (callAction) isAction() {}

// Call invokes fn on each match. When fn queues tokens with Produce,
// those tokens are returned and fn's own return value is discarded.
func Call(fn CallFunc) Action {
	return callAction{fn: fn}
}
