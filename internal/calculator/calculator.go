// Package calculator holds the keypad state of the calculator front ends: the
// input buffer, the "result shown" flag and the evaluate/clear actions.
package calculator

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/codefionn/calcschnell/internal/consts"
	"github.com/codefionn/calcschnell/internal/expr"
	"github.com/codefionn/calcschnell/internal/history"
	"github.com/codefionn/calcschnell/internal/logger"
)

// Special keypad labels
const (
	KeyEvaluate = "="
	KeyClear    = "C"
)

// Columns is the width of the keypad grid
const Columns = 4

// Keys lists the keypad labels in row-major order
var Keys = []string{
	"7", "8", "9", "/",
	"4", "5", "6", "*",
	"1", "2", "3", "-",
	"0", ".", "=", "+",
	"C",
}

// ErrInputTooLong is returned for expressions longer than consts.MaxInputLength runes
var ErrInputTooLong = errors.New("expression too long")

// Recorder receives the outcome of every evaluation
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) error
}

// Outcome is the result of one evaluation
type Outcome struct {
	Expression string
	Value      float64
	Display    string
	Err        error
}

// Calculator is the keypad state machine. It is owned by a single UI loop and
// is not safe for concurrent use.
type Calculator struct {
	buffer    string
	reset     bool // a result or error is shown; the next keystroke starts over
	precision int
	recorder  Recorder
	last      *Outcome
	log       *logger.Logger
}

// Option configures a Calculator
type Option func(*Calculator)

// WithPrecision sets the display precision, see Format
func WithPrecision(precision int) Option {
	return func(c *Calculator) { c.precision = precision }
}

// WithRecorder sets where evaluation outcomes are recorded
func WithRecorder(r Recorder) Option {
	return func(c *Calculator) { c.recorder = r }
}

// New creates an empty calculator
func New(opts ...Option) *Calculator {
	c := &Calculator{
		precision: consts.DefaultPrecision,
		log:       logger.Global().WithPrefix("calculator"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Display returns the text shown on the display
func (c *Calculator) Display() string {
	return c.buffer
}

// ShowingResult reports whether the display holds a result or "Error"
func (c *Calculator) ShowingResult() bool {
	return c.reset
}

// Last returns the most recent evaluation outcome
func (c *Calculator) Last() (Outcome, bool) {
	if c.last == nil {
		return Outcome{}, false
	}
	return *c.last, true
}

// Precision returns the display precision
func (c *Calculator) Precision() int {
	return c.precision
}

// SetPrecision changes the display precision for future results
func (c *Calculator) SetPrecision(precision int) {
	c.precision = precision
}

// Press handles one keypad button
func (c *Calculator) Press(ctx context.Context, label string) {
	switch label {
	case KeyEvaluate:
		c.Evaluate(ctx)
	case KeyClear:
		c.Clear()
	default:
		c.Append(label)
	}
}

// Append adds text to the buffer, starting over if a result is shown. Text
// that would push the buffer past consts.MaxInputLength runes is dropped.
func (c *Calculator) Append(text string) bool {
	if text == "" {
		return false
	}
	if c.reset {
		c.buffer = ""
		c.reset = false
	}
	if utf8.RuneCountInString(c.buffer)+utf8.RuneCountInString(text) > consts.MaxInputLength {
		c.log.Debug("input limit reached, dropping %q", text)
		return false
	}
	c.buffer += text
	return true
}

// Backspace removes the last rune; on a shown result it clears instead
func (c *Calculator) Backspace() {
	if c.reset {
		c.Clear()
		return
	}
	if c.buffer == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(c.buffer)
	c.buffer = c.buffer[:len(c.buffer)-size]
}

// Clear empties the buffer
func (c *Calculator) Clear() {
	c.buffer = ""
	c.reset = false
}

// Evaluate replaces the buffer with the formatted result, or with "Error" on
// failure, and records the outcome. It does nothing on an empty buffer and
// reports whether an evaluation happened.
func (c *Calculator) Evaluate(ctx context.Context) (Outcome, bool) {
	if c.buffer == "" {
		return Outcome{}, false
	}
	return c.evaluate(ctx), true
}

// EvaluateExpression loads expression into the buffer and evaluates it like
// Evaluate. An empty expression is evaluated too and fails as malformed.
func (c *Calculator) EvaluateExpression(ctx context.Context, expression string) (Outcome, error) {
	if utf8.RuneCountInString(expression) > consts.MaxInputLength {
		return Outcome{}, fmt.Errorf("%w: more than %d characters", ErrInputTooLong, consts.MaxInputLength)
	}
	c.buffer = expression
	c.reset = false
	return c.evaluate(ctx), nil
}

func (c *Calculator) evaluate(ctx context.Context) Outcome {
	outcome := Outcome{Expression: c.buffer}
	value, err := expr.Evaluate(c.buffer)
	if err != nil {
		outcome.Err = err
		outcome.Display = consts.ErrorDisplay
		c.log.Debug("evaluate %q: %v", c.buffer, err)
	} else {
		outcome.Value = value
		outcome.Display = Format(value, c.precision)
		c.log.Debug("evaluate %q = %s", c.buffer, outcome.Display)
	}

	c.buffer = outcome.Display
	c.reset = true
	c.last = &outcome

	if c.recorder != nil {
		entry := history.NewEntry(outcome.Expression, outcome.Value, outcome.Display, outcome.Err)
		if err := c.recorder.Record(ctx, entry); err != nil {
			c.log.Warn("failed to record history: %v", err)
		}
	}

	return outcome
}
