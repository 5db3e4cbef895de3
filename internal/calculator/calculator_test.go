package calculator

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/codefionn/calcschnell/internal/consts"
	"github.com/codefionn/calcschnell/internal/expr"
	"github.com/codefionn/calcschnell/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	entries []history.Entry
	err     error
}

func (f *fakeRecorder) Record(_ context.Context, entry history.Entry) error {
	f.entries = append(f.entries, entry)
	return f.err
}

func press(c *Calculator, labels ...string) {
	for _, l := range labels {
		c.Press(context.Background(), l)
	}
}

func TestKeysLayout(t *testing.T) {
	assert.Len(t, Keys, 17)
	assert.Equal(t, []string{"7", "8", "9", "/"}, Keys[:Columns])
	assert.Equal(t, KeyClear, Keys[len(Keys)-1])
	assert.Contains(t, Keys, KeyEvaluate)
}

func TestPressEvaluates(t *testing.T) {
	c := New()
	press(c, "2", "+", "3", "*", "4")
	assert.Equal(t, "2+3*4", c.Display())
	assert.False(t, c.ShowingResult())

	press(c, "=")
	assert.Equal(t, "14", c.Display())
	assert.True(t, c.ShowingResult())

	last, ok := c.Last()
	require.True(t, ok)
	assert.Equal(t, "2+3*4", last.Expression)
	assert.Equal(t, 14.0, last.Value)
	assert.NoError(t, last.Err)
}

func TestKeystrokeAfterResultStartsOver(t *testing.T) {
	c := New()
	press(c, "1", "0", "/", "4", "=")
	assert.Equal(t, "2.5", c.Display())

	// any keystroke, operators included, replaces the shown result
	press(c, "+")
	assert.Equal(t, "+", c.Display())
	assert.False(t, c.ShowingResult())
}

func TestEvaluateEmptyBufferIsNoop(t *testing.T) {
	rec := &fakeRecorder{}
	c := New(WithRecorder(rec))

	_, ok := c.Evaluate(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "", c.Display())
	assert.False(t, c.ShowingResult())
	assert.Empty(t, rec.entries)
	_, ok = c.Last()
	assert.False(t, ok)
}

func TestEvaluateErrorShowsError(t *testing.T) {
	c := New()
	press(c, "+", "5", "=")

	assert.Equal(t, consts.ErrorDisplay, c.Display())
	assert.True(t, c.ShowingResult())

	last, ok := c.Last()
	require.True(t, ok)
	assert.ErrorIs(t, last.Err, expr.ErrMalformedExpression)

	press(c, "7")
	assert.Equal(t, "7", c.Display())
}

func TestClearAndBackspace(t *testing.T) {
	c := New()
	press(c, "1", "2", "3")
	c.Backspace()
	assert.Equal(t, "12", c.Display())

	press(c, "C")
	assert.Equal(t, "", c.Display())
	c.Backspace()
	assert.Equal(t, "", c.Display())

	press(c, "4", "=")
	c.Backspace()
	assert.Equal(t, "", c.Display())
	assert.False(t, c.ShowingResult())
}

func TestAppendRespectsInputLimit(t *testing.T) {
	c := New()
	require.True(t, c.Append(strings.Repeat("1", consts.MaxInputLength)))
	assert.False(t, c.Append("1"))
	assert.Len(t, c.Display(), consts.MaxInputLength)
	assert.False(t, c.Append(""))
}

func TestPrecision(t *testing.T) {
	c := New(WithPrecision(consts.ClassicPrecision))
	assert.Equal(t, 6, c.Precision())
	press(c, "2", "+", "3", "=")
	assert.Equal(t, "5.000000", c.Display())

	c.SetPrecision(2)
	press(c, "1", "/", "3", "=")
	assert.Equal(t, "0.33", c.Display())
}

func TestRecorderReceivesOutcomes(t *testing.T) {
	rec := &fakeRecorder{}
	c := New(WithRecorder(rec))

	press(c, "8", "-", "3", "-", "2", "=")
	press(c, "5", "+", "+", "3", "=")

	require.Len(t, rec.entries, 2)
	assert.Equal(t, "8-3-2", rec.entries[0].Expression)
	require.NotNil(t, rec.entries[0].Result)
	assert.Equal(t, 3.0, *rec.entries[0].Result)
	assert.Equal(t, "5++3", rec.entries[1].Expression)
	assert.Equal(t, "malformed_expression", rec.entries[1].ErrorKind)
}

func TestRecorderFailureDoesNotChangeDisplay(t *testing.T) {
	c := New(WithRecorder(&fakeRecorder{err: errors.New("disk full")}))
	press(c, "6", "*", "7", "=")
	assert.Equal(t, "42", c.Display())
}

func TestEvaluateExpression(t *testing.T) {
	rec := &fakeRecorder{}
	c := New(WithRecorder(rec))
	press(c, "9", "9")

	out, err := c.EvaluateExpression(context.Background(), "2 + 3 * 4")
	require.NoError(t, err)
	assert.Equal(t, "14", out.Display)
	assert.Equal(t, "14", c.Display())
	assert.True(t, c.ShowingResult())

	out, err = c.EvaluateExpression(context.Background(), "")
	require.NoError(t, err)
	assert.ErrorIs(t, out.Err, expr.ErrMalformedExpression)
	assert.Equal(t, consts.ErrorDisplay, out.Display)
	assert.Len(t, rec.entries, 2)

	_, err = c.EvaluateExpression(context.Background(), strings.Repeat("1", consts.MaxInputLength+1))
	assert.ErrorIs(t, err, ErrInputTooLong)
	assert.Len(t, rec.entries, 2)
	assert.Equal(t, consts.ErrorDisplay, c.Display())
}

func TestFormat(t *testing.T) {
	// computed at run time so the sum keeps its rounding error
	a, b := 0.1, 0.2

	tests := []struct {
		value     float64
		precision int
		expected  string
	}{
		{14, -1, "14"},
		{2.5, -1, "2.5"},
		{a + b, -1, "0.30000000000000004"},
		{1e6, -1, "1000000"},
		{1e21, -1, "1e+21"},
		{1e-7, -1, "1e-07"},
		{-3, -1, "-3"},
		{math.Copysign(0, -1), -1, "0"},
		{14, 6, "14.000000"},
		{2.5, 0, "2"},
		{1.0 / 3, 3, "0.333"},
		{math.Inf(1), -1, "Inf"},
		{math.Inf(-1), 6, "-Inf"},
		{math.NaN(), -1, "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.value, tt.precision))
		})
	}
}
