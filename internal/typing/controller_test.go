package typing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/verte-zerg/wpmtest/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeTicker struct {
	starts  int
	stops   int
	running bool
}

func (t *fakeTicker) Start() {
	t.starts++
	t.running = true
}

func (t *fakeTicker) Stop() {
	t.stops++
	t.running = false
}

type fixedPicker struct {
	passage string
	calls   int
}

func (p *fixedPicker) Pick([]string) string {
	p.calls++
	return p.passage
}

const foxPassage = "the quick brown fox"

func newTestController(t *testing.T) (*Controller, *fakeClock, *fakeTicker, *fixedPicker) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	ticker := &fakeTicker{}
	picker := &fixedPicker{passage: foxPassage}
	ctrl := NewController([]string{foxPassage}, picker, ticker, clock, nil)
	return ctrl, clock, ticker, picker
}

func TestStartWithoutDurationLeavesStateUnchanged(t *testing.T) {
	ctrl, _, ticker, picker := newTestController(t)

	err := ctrl.Start()
	require.ErrorIs(t, err, ErrNoDuration)
	require.Equal(t, model.StateIdle, ctrl.State())
	require.Empty(t, ctrl.Passage())
	require.Zero(t, ticker.starts)
	require.Zero(t, picker.calls)
	require.False(t, ctrl.InputEnabled())

	// Rejected starts can be retried once a duration is chosen.
	require.NoError(t, ctrl.SelectDuration(30))
	require.NoError(t, ctrl.Start())
	require.Equal(t, model.StateRunning, ctrl.State())
}

func TestSelectDurationRejectsUnknownValues(t *testing.T) {
	ctrl, _, _, _ := newTestController(t)
	require.NoError(t, ctrl.SelectDuration(15))
	require.ErrorIs(t, ctrl.SelectDuration(45), ErrInvalidDuration)
	require.ErrorIs(t, ctrl.SelectDuration(0), ErrInvalidDuration)
	require.Equal(t, model.Duration(15), ctrl.SelectedDuration())
	require.Equal(t, model.StateIdle, ctrl.State())
}

func TestStartResetsState(t *testing.T) {
	ctrl, _, ticker, picker := newTestController(t)
	require.NoError(t, ctrl.SelectDuration(60))
	require.NoError(t, ctrl.Start())

	require.Equal(t, model.StateRunning, ctrl.State())
	require.Equal(t, foxPassage, ctrl.Passage())
	require.Empty(t, ctrl.Typed())
	require.Zero(t, ctrl.CorrectWords())
	require.Equal(t, 60, ctrl.Remaining())
	require.True(t, ctrl.InputEnabled())
	require.True(t, ticker.running)
	require.Equal(t, 1, picker.calls)
	_, ok := ctrl.WPM()
	require.False(t, ok)
}

func TestCountdownDecrementsToZeroAndFinishes(t *testing.T) {
	for _, d := range model.AllowedDurations {
		t.Run(d.String(), func(t *testing.T) {
			ctrl, clock, ticker, _ := newTestController(t)
			require.NoError(t, ctrl.SelectDuration(d))
			require.NoError(t, ctrl.Start())

			prev := ctrl.Remaining()
			require.Equal(t, int(d), prev)
			for ctrl.State() == model.StateRunning {
				clock.Advance(time.Second)
				ctrl.Tick()
				require.Equal(t, prev-1, ctrl.Remaining())
				prev = ctrl.Remaining()
			}
			require.Zero(t, ctrl.Remaining())
			require.Equal(t, model.StateFinished, ctrl.State())
			require.False(t, ctrl.InputEnabled())
			require.False(t, ticker.running)

			ctrl.Tick()
			require.Zero(t, ctrl.Remaining())

			res, ok := ctrl.Result()
			require.True(t, ok)
			require.Equal(t, model.FinishTimeout, res.Reason)
			require.Equal(t, d.TimeDuration(), res.Elapsed)
		})
	}
}

func TestTimeoutScoresCorrectPrefix(t *testing.T) {
	ctrl, clock, _, _ := newTestController(t)
	require.NoError(t, ctrl.SelectDuration(60))
	require.NoError(t, ctrl.Start())

	ctrl.Input("the quick brown")
	require.Equal(t, 3, ctrl.CorrectWords())
	for i := 0; i < 60; i++ {
		clock.Advance(time.Second)
		ctrl.Tick()
	}

	require.Equal(t, model.StateFinished, ctrl.State())
	wpm, ok := ctrl.WPM()
	require.True(t, ok)
	require.InDelta(t, 3.00, wpm, 1e-9)
}

func TestMismatchHaltsCounting(t *testing.T) {
	ctrl, _, _, _ := newTestController(t)
	require.NoError(t, ctrl.SelectDuration(30))
	require.NoError(t, ctrl.Start())

	ctrl.Input("the slow brown fox")
	require.Equal(t, 1, ctrl.CorrectWords())
	require.Equal(t, model.StateRunning, ctrl.State())
}

func TestExactMatchFinishesImmediately(t *testing.T) {
	ctrl, clock, ticker, _ := newTestController(t)
	require.NoError(t, ctrl.SelectDuration(60))
	require.NoError(t, ctrl.Start())

	clock.Advance(30 * time.Second)
	ctrl.Input("the quick brown f")
	require.Equal(t, 3, ctrl.CorrectWords())
	ctrl.Input(foxPassage)

	require.Equal(t, model.StateFinished, ctrl.State())
	require.False(t, ticker.running)
	require.Equal(t, 60, ctrl.Remaining())
	// The completing keystroke does not recount words.
	require.Equal(t, 3, ctrl.CorrectWords())

	wpm, ok := ctrl.WPM()
	require.True(t, ok)
	require.InDelta(t, 6.00, wpm, 1e-9)

	res, ok := ctrl.Result()
	require.True(t, ok)
	require.Equal(t, model.FinishCompleted, res.Reason)
	require.Equal(t, foxPassage, res.Typed)
	require.NotEmpty(t, res.RunID)
}

func TestInputIgnoredUnlessRunning(t *testing.T) {
	ctrl, _, _, _ := newTestController(t)
	ctrl.Input("the")
	require.Empty(t, ctrl.Typed())

	require.NoError(t, ctrl.SelectDuration(15))
	require.NoError(t, ctrl.Start())
	ctrl.Input(foxPassage)
	require.Equal(t, model.StateFinished, ctrl.State())

	ctrl.Input("something else")
	require.Equal(t, foxPassage, ctrl.Typed())
}

func TestRestartFromFinished(t *testing.T) {
	ctrl, _, ticker, _ := newTestController(t)
	require.NoError(t, ctrl.SelectDuration(15))
	require.NoError(t, ctrl.Start())
	ctrl.Input(foxPassage)
	first, _ := ctrl.Result()

	require.NoError(t, ctrl.SelectDuration(30))
	require.NoError(t, ctrl.Start())
	require.Equal(t, model.StateRunning, ctrl.State())
	require.Equal(t, 30, ctrl.Remaining())
	require.Empty(t, ctrl.Typed())
	_, ok := ctrl.WPM()
	require.False(t, ok)
	_, ok = ctrl.Result()
	require.False(t, ok)
	require.Equal(t, 2, ticker.starts)

	ctrl.Input(foxPassage)
	second, _ := ctrl.Result()
	require.NotEqual(t, first.RunID, second.RunID)
}

func TestRestartWhileRunningStopsTicker(t *testing.T) {
	ctrl, _, ticker, _ := newTestController(t)
	require.NoError(t, ctrl.SelectDuration(15))
	require.NoError(t, ctrl.Start())
	ctrl.Tick()
	ctrl.Input("the")

	require.NoError(t, ctrl.Start())
	require.Equal(t, 1, ticker.stops)
	require.Equal(t, 2, ticker.starts)
	require.True(t, ticker.running)
	require.Equal(t, 15, ctrl.Remaining())
	require.Empty(t, ctrl.Typed())
}

func TestSelectDurationDuringRunKeepsCurrentCountdown(t *testing.T) {
	ctrl, _, _, _ := newTestController(t)
	require.NoError(t, ctrl.SelectDuration(15))
	require.NoError(t, ctrl.Start())
	require.NoError(t, ctrl.SelectDuration(60))

	require.Equal(t, model.Duration(15), ctrl.Duration())
	require.Equal(t, 15, ctrl.Remaining())
	require.Equal(t, model.Duration(60), ctrl.SelectedDuration())
}

func TestAbandonReturnsToIdle(t *testing.T) {
	ctrl, _, ticker, _ := newTestController(t)
	ctrl.Abandon()
	require.Zero(t, ticker.stops)

	require.NoError(t, ctrl.SelectDuration(30))
	require.NoError(t, ctrl.Start())
	ctrl.Input("the quick")
	ctrl.Abandon()

	require.Equal(t, model.StateIdle, ctrl.State())
	require.False(t, ticker.running)
	require.False(t, ctrl.InputEnabled())
	_, ok := ctrl.WPM()
	require.False(t, ok)

	ctrl.Tick()
	require.Equal(t, 30, ctrl.Remaining())
}
