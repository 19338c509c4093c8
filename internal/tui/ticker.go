package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg carries the generation of the tick chain that produced it.
type tickMsg struct {
	id int
}

// tickSource implements typing.Ticker on top of tea.Tick. Every Start or
// Stop bumps the generation, so a tick scheduled before the change is
// dropped when it arrives.
type tickSource struct {
	interval time.Duration
	id       int
	running  bool
	pending  bool
}

func newTickSource(interval time.Duration) *tickSource {
	return &tickSource{interval: interval}
}

// Start implements typing.Ticker.
func (t *tickSource) Start() {
	t.id++
	t.running = true
	t.pending = true
}

// Stop implements typing.Ticker.
func (t *tickSource) Stop() {
	t.id++
	t.running = false
	t.pending = false
}

// accept reports whether msg belongs to the live chain and, if so, arms
// the next tick. A Stop during delivery disarms it again.
func (t *tickSource) accept(msg tickMsg) bool {
	if !t.running || msg.id != t.id {
		return false
	}
	t.pending = true
	return true
}

// next returns the command for the armed tick, or nil.
func (t *tickSource) next() tea.Cmd {
	if !t.pending {
		return nil
	}
	t.pending = false
	id := t.id
	return tea.Tick(t.interval, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}
