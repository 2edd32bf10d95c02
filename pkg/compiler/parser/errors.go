package parser

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrIndexOutOfRange        = errors.New("index out of range")
	ErrUnexpectedNodeKind     = errors.New("unexpected node kind")
	ErrMissingLeftOperand     = errors.New("missing left operand")
	ErrMissingRightOperand    = errors.New("missing right operand")
	ErrMissingOperand         = errors.New("missing operand")
	ErrTypeMismatch           = errors.New("type mismatch")
	ErrUnbalancedParentheses  = errors.New("unbalanced parentheses")
	ErrMalformedSubexpression = errors.New("malformed subexpression")
)

// Error is a fatal reduction failure. Kind is one of the Err* sentinels and
// is what errors.Is matches against. Op names the operator or pass that
// raised it and Index is its slot in the sequence being reduced (which, for
// a parenthesized group, is the group's own sequence).
type Error struct {
	Kind  error
	Op    string
	Index int
	Msg   string
}

func (e *Error) Error() string {
	s := "parser: " + e.Kind.Error()
	if e.Op != "" {
		s += fmt.Sprintf(" at %s (index %d)", e.Op, e.Index)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, op string, index int, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Index: index, Msg: fmt.Sprintf(format, args...)}
}

func outOfRange(i, n int) *Error {
	return newError(ErrIndexOutOfRange, "", i, "index %d, length %d", i, n)
}
