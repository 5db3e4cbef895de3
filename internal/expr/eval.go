// Package expr evaluates flat infix arithmetic over + - * / with the
// shunting-yard algorithm. It keeps no state between calls and is safe for
// concurrent use.
package expr

// stack is a LIFO backed by a slice
type stack[T any] []T

func (s *stack[T]) push(v T) {
	*s = append(*s, v)
}

func (s *stack[T]) pop() (T, bool) {
	var zero T
	if len(*s) == 0 {
		return zero, false
	}
	v := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return v, true
}

func (s stack[T]) top() T {
	return s[len(s)-1]
}

func (s stack[T]) empty() bool {
	return len(s) == 0
}

// precedence ranks operators; unknown symbols rank lowest so they are applied
// (and rejected) as soon as anything drains them
func precedence(op rune) int {
	switch op {
	case '+', '-':
		return 1
	case '*', '/':
		return 2
	default:
		return 0
	}
}

// apply combines two operands. Division by zero follows IEEE-754.
func apply(a, b float64, op Token) (float64, error) {
	switch op.Op {
	case '+':
		return a + b, nil
	case '-':
		return a - b, nil
	case '*':
		return a * b, nil
	case '/':
		return a / b, nil
	default:
		return 0, &Error{Kind: InvalidOperator, Op: op.Op, Pos: op.Pos, Reason: "unsupported operator"}
	}
}

type reducer struct {
	operands  stack[float64]
	operators stack[Token]
}

// reduce pops one operator and its two operands and pushes the result
func (r *reducer) reduce() error {
	op, _ := r.operators.pop()
	b, okB := r.operands.pop()
	a, okA := r.operands.pop()
	if !okA || !okB {
		return malformed(op, "missing operand for")
	}
	v, err := apply(a, b, op)
	if err != nil {
		return err
	}
	r.operands.push(v)
	return nil
}

// Evaluate computes the value of expression.
//
// Operators of equal precedence associate to the left, * and / bind tighter
// than + and -. Failures are *Error values matching ErrMalformedExpression or
// ErrInvalidOperator; evaluation is all-or-nothing.
func Evaluate(expression string) (float64, error) {
	var r reducer

	for tok := range Tokens(expression) {
		switch tok.Kind {
		case KindNumber:
			r.operands.push(tok.Value)
		case KindOperator:
			for !r.operators.empty() && precedence(r.operators.top().Op) >= precedence(tok.Op) {
				if err := r.reduce(); err != nil {
					return 0, err
				}
			}
			r.operators.push(tok)
		}
	}

	for !r.operators.empty() {
		if err := r.reduce(); err != nil {
			return 0, err
		}
	}

	switch len(r.operands) {
	case 0:
		return 0, malformedExpression("empty expression")
	case 1:
		return r.operands[0], nil
	default:
		return 0, malformedExpression("operands without an operator between them")
	}
}
