package expr

import (
	"fmt"
	"iter"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Kind classifies a token
type Kind int

const (
	// KindNumber is a numeric literal
	KindNumber Kind = iota
	// KindOperator is any single non-space, non-numeric rune
	KindOperator
)

// String returns string representation of the token kind
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindOperator:
		return "operator"
	default:
		return "unknown"
	}
}

// Token is a classified lexical unit of an expression
type Token struct {
	Kind  Kind
	Value float64 // set for KindNumber
	Op    rune    // set for KindOperator
	Pos   int     // byte offset in the expression
}

func (t Token) String() string {
	if t.Kind == KindNumber {
		return strconv.FormatFloat(t.Value, 'g', -1, 64)
	}
	return fmt.Sprintf("%q", t.Op)
}

// Tokens scans expression left to right and yields its tokens lazily.
//
// Whitespace is skipped. A digit or '.' starts a numeric literal made of digits,
// at most one '.', and more digits; a second '.' ends the literal and starts the
// next one. Every other rune becomes an operator token, supported or not.
// Tokens never fails: validation happens when operators are applied.
func Tokens(expression string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for i := 0; i < len(expression); {
			r, size := utf8.DecodeRuneInString(expression[i:])
			switch {
			case unicode.IsSpace(r):
				i += size
			case isDigit(r) || r == '.':
				end := scanNumber(expression, i)
				if !yield(Token{Kind: KindNumber, Value: parseLiteral(expression[i:end]), Pos: i}) {
					return
				}
				i = end
			default:
				if !yield(Token{Kind: KindOperator, Op: r, Pos: i}) {
					return
				}
				i += size
			}
		}
	}
}

// scanNumber returns the end offset of the literal starting at start
func scanNumber(s string, start int) int {
	i := start
	for i < len(s) && isDigit(rune(s[i])) {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(rune(s[i])) {
			i++
		}
	}
	return i
}

// parseLiteral converts a scanned literal to its value. The literal is always
// digits with at most one '.', so ParseFloat only fails on a bare "." (value 0)
// or on range errors, where it already returns ±Inf or 0.
func parseLiteral(lit string) float64 {
	if lit == "." {
		return 0
	}
	v, _ := strconv.ParseFloat(lit, 64)
	return v
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
