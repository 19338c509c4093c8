// Package typing implements the typing test lifecycle and scoring.
package typing

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/verte-zerg/wpmtest/internal/model"
)

var (
	// ErrNoDuration is returned by Start when no duration has been selected.
	ErrNoDuration = errors.New("no timer duration selected")
	// ErrInvalidDuration is returned by SelectDuration for values outside model.AllowedDurations.
	ErrInvalidDuration = errors.New("invalid timer duration")
)

// Picker chooses the reference passage for a new test.
type Picker interface {
	Pick(catalog []string) string
}

// Clock supplies timestamps for elapsed-time measurement.
type Clock interface {
	Now() time.Time
}

// Ticker delivers a recurring one-second callback into the controller.
// Start arms it and Stop cancels it; ticks after Stop must not be delivered.
type Ticker interface {
	Start()
	Stop()
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock.
var SystemClock Clock = systemClock{}

// Controller owns the state of a typing test. It is not safe for
// concurrent use; every method is expected to run on the UI event loop.
type Controller struct {
	catalog []string
	picker  Picker
	ticker  Ticker
	clock   Clock
	logger  *zap.Logger

	selected model.Duration

	state        model.State
	runID        string
	duration     model.Duration
	passage      string
	typed        string
	remaining    int
	correctWords int
	startedAt    time.Time

	result    model.Result
	hasResult bool
}

// NewController constructs a controller in the idle state. A nil clock
// uses SystemClock and a nil logger discards output.
func NewController(catalog []string, picker Picker, ticker Ticker, clock Clock, logger *zap.Logger) *Controller {
	if clock == nil {
		clock = SystemClock
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		catalog: catalog,
		picker:  picker,
		ticker:  ticker,
		clock:   clock,
		logger:  logger,
		state:   model.StateIdle,
	}
}

// SelectDuration sets the duration used by the next Start. It may be
// called in any state and does not affect a test already running.
func (c *Controller) SelectDuration(d model.Duration) error {
	if !d.Valid() {
		return ErrInvalidDuration
	}
	c.selected = d
	return nil
}

// Start begins a new test with a freshly picked passage. A running test is
// replaced. Without a selected duration it returns ErrNoDuration and leaves
// all state untouched.
func (c *Controller) Start() error {
	if c.selected <= 0 {
		c.logger.Info("test start rejected", zap.String("state", c.state.String()))
		return ErrNoDuration
	}
	if c.state == model.StateRunning {
		c.ticker.Stop()
		c.logger.Info("test restarted", zap.String("run_id", c.runID))
	}
	c.runID = uuid.NewString()
	c.duration = c.selected
	c.passage = c.picker.Pick(c.catalog)
	c.typed = ""
	c.correctWords = 0
	c.remaining = int(c.duration)
	c.hasResult = false
	c.result = model.Result{}
	c.startedAt = c.clock.Now()
	c.state = model.StateRunning
	c.ticker.Start()
	c.logger.Info("test started",
		zap.String("run_id", c.runID),
		zap.Int("duration_s", int(c.duration)),
		zap.Int("passage_words", len(strings.Fields(c.passage))),
	)
	return nil
}

// Input replaces the typed buffer. It is ignored unless a test is running.
// An exact match with the passage finishes the test immediately.
func (c *Controller) Input(text string) {
	if c.state != model.StateRunning {
		return
	}
	c.typed = text
	if text == c.passage {
		c.finish(model.FinishCompleted)
		return
	}
	c.correctWords = CountCorrectWords(c.passage, text)
}

// Tick advances the countdown by one second. It is ignored unless a test
// is running; reaching zero finishes the test.
func (c *Controller) Tick() {
	if c.state != model.StateRunning {
		return
	}
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining == 0 {
		c.finish(model.FinishTimeout)
	}
}

// Abandon stops a running test without scoring it and returns to idle.
func (c *Controller) Abandon() {
	if c.state != model.StateRunning {
		return
	}
	c.ticker.Stop()
	c.state = model.StateIdle
	c.logger.Info("test abandoned",
		zap.String("run_id", c.runID),
		zap.Int("remaining_s", c.remaining),
	)
}

func (c *Controller) finish(reason model.FinishReason) {
	c.ticker.Stop()
	endedAt := c.clock.Now()
	elapsed := endedAt.Sub(c.startedAt)
	c.state = model.StateFinished
	c.result = model.Result{
		RunID:        c.runID,
		Duration:     c.duration,
		Passage:      c.passage,
		Typed:        c.typed,
		CorrectWords: c.correctWords,
		StartedAt:    c.startedAt,
		EndedAt:      endedAt,
		Elapsed:      elapsed,
		WPM:          WordsPerMinute(c.correctWords, elapsed),
		Reason:       reason,
	}
	c.hasResult = true
	c.logger.Info("test finished",
		zap.String("run_id", c.runID),
		zap.String("reason", string(reason)),
		zap.Int("correct_words", c.correctWords),
		zap.Duration("elapsed", elapsed),
		zap.Float64("wpm", c.result.WPM),
	)
}

// State returns the current lifecycle phase.
func (c *Controller) State() model.State { return c.state }

// SelectedDuration returns the duration the next Start will use.
func (c *Controller) SelectedDuration() model.Duration { return c.selected }

// Duration returns the duration of the current or last test.
func (c *Controller) Duration() model.Duration { return c.duration }

// Remaining returns the seconds left on the countdown.
func (c *Controller) Remaining() int { return c.remaining }

// Passage returns the reference text, empty before the first start.
func (c *Controller) Passage() string { return c.passage }

// Typed returns the current typed buffer.
func (c *Controller) Typed() string { return c.typed }

// CorrectWords returns the current correct-word count.
func (c *Controller) CorrectWords() int { return c.correctWords }

// InputEnabled reports whether typed input is accepted.
func (c *Controller) InputEnabled() bool { return c.state == model.StateRunning }

// WPM returns the score of the finished test. ok is false in any other state.
func (c *Controller) WPM() (wpm float64, ok bool) {
	if c.state != model.StateFinished {
		return 0, false
	}
	return c.result.WPM, true
}

// Result returns the finished test. It is cleared by the next Start.
func (c *Controller) Result() (model.Result, bool) {
	return c.result, c.hasResult
}
