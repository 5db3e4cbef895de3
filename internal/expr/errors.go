package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedExpression matches errors caused by a missing or extra operand
	ErrMalformedExpression = errors.New("malformed expression")
	// ErrInvalidOperator matches errors caused by an unsupported operator symbol
	ErrInvalidOperator = errors.New("invalid operator")
)

// ErrorKind is the closed set of evaluation failure causes
type ErrorKind int

const (
	// MalformedExpression covers operand underflow and a missing or ambiguous result
	MalformedExpression ErrorKind = iota
	// InvalidOperator is an operator outside + - * / reaching application
	InvalidOperator
)

// String returns the stable name used in JSON bodies and the history table
func (k ErrorKind) String() string {
	switch k {
	case MalformedExpression:
		return "malformed_expression"
	case InvalidOperator:
		return "invalid_operator"
	default:
		return "unknown"
	}
}

// Error describes why an expression could not be evaluated
type Error struct {
	Kind ErrorKind
	// Op is the operator being applied, or 0 when the failure concerns the whole expression.
	Op rune
	// Pos is the byte offset of Op, or -1.
	Pos    int
	Reason string
}

func (e *Error) Error() string {
	if e.Op != 0 {
		return fmt.Sprintf("%s: %s %q at offset %d", e.sentinel(), e.Reason, e.Op, e.Pos)
	}
	return fmt.Sprintf("%s: %s", e.sentinel(), e.Reason)
}

// Unwrap lets errors.Is match ErrMalformedExpression or ErrInvalidOperator
func (e *Error) Unwrap() error {
	return e.sentinel()
}

func (e *Error) sentinel() error {
	if e.Kind == InvalidOperator {
		return ErrInvalidOperator
	}
	return ErrMalformedExpression
}

// KindOf reports the ErrorKind carried by err, if any
func KindOf(err error) (ErrorKind, bool) {
	var evalErr *Error
	if errors.As(err, &evalErr) {
		return evalErr.Kind, true
	}
	return 0, false
}

func malformed(tok Token, reason string) *Error {
	return &Error{Kind: MalformedExpression, Op: tok.Op, Pos: tok.Pos, Reason: reason}
}

func malformedExpression(reason string) *Error {
	return &Error{Kind: MalformedExpression, Pos: -1, Reason: reason}
}
