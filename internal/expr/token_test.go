package expr

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func num(v float64, pos int) Token { return Token{Kind: KindNumber, Value: v, Pos: pos} }
func op(r rune, pos int) Token     { return Token{Kind: KindOperator, Op: r, Pos: pos} }

func TestTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{"empty", "", nil},
		{"whitespace only", " \t\n", nil},
		{"simple", "2+3", []Token{num(2, 0), op('+', 1), num(3, 2)}},
		{"spaced", " 12 * 4 ", []Token{num(12, 1), op('*', 4), num(4, 6)}},
		{"fraction", "3.25/2", []Token{num(3.25, 0), op('/', 4), num(2, 5)}},
		{"leading dot", ".5", []Token{num(0.5, 0)}},
		{"trailing dot", "5.", []Token{num(5, 0)}},
		{"bare dot", ".", []Token{num(0, 0)}},
		{"second dot starts new literal", "1.2.3", []Token{num(1.2, 0), num(0.3, 3)}},
		{"double dot", "1..2", []Token{num(1, 0), num(0.2, 2)}},
		{"unsupported operator", "7%2", []Token{num(7, 0), op('%', 1), num(2, 2)}},
		{"multibyte operator", "2×3", []Token{num(2, 0), op('×', 1), num(3, 3)}},
		{"letters", "ab", []Token{op('a', 0), op('b', 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(Tokens(tt.input))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTokensStopsEarly(t *testing.T) {
	var seen []Token
	for tok := range Tokens("1+2+3") {
		seen = append(seen, tok)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []Token{num(1, 0), op('+', 1)}, seen)
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "2.5", num(2.5, 0).String())
	assert.Equal(t, "'+'", op('+', 0).String())
	assert.Equal(t, "number", KindNumber.String())
	assert.Equal(t, "operator", KindOperator.String())
}
