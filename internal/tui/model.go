// Package tui provides the Bubble Tea typing test interface.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/wpmtest/internal/model"
	"github.com/verte-zerg/wpmtest/internal/typing"
)

const (
	placeholderText  = "Press enter to start the test"
	noDurationNotice = "Please select a timer duration first!"
)

// Model implements the Bubble Tea typing test UI.
type Model struct {
	ctrl   *typing.Controller
	ticker *tickSource
	logger *zap.Logger

	input textinput.Model
	keys  keyMap
	help  help.Model

	notice string

	width  int
	height int
}

var (
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	timerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	noticeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	resultStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

var selectedStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#F0F0F0")).
	Bold(true).
	Padding(0, 1).
	Border(lipgloss.RoundedBorder(), true).
	BorderForeground(lipgloss.Color("#C89A3A"))

var unselectedStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#B0B0B0")).
	Padding(0, 1).
	Border(lipgloss.RoundedBorder(), true).
	BorderForeground(lipgloss.Color("#4A4A4A"))

// NewModel constructs a typing test model. A valid cfg.Duration is
// preselected; zero leaves the test without a duration.
func NewModel(cfg model.Config, catalog []string, picker typing.Picker, clock typing.Clock, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	ticker := newTickSource(time.Second)
	m := &Model{
		ctrl:   typing.NewController(catalog, picker, ticker, clock, logger),
		ticker: ticker,
		logger: logger,
		input:  newTypingInput(),
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	if cfg.Duration != 0 {
		if err := m.ctrl.SelectDuration(cfg.Duration); err != nil {
			logger.Warn("ignoring configured duration", zap.Int("duration_s", int(cfg.Duration)), zap.Error(err))
		}
	}
	return m
}

func newTypingInput() textinput.Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "Start typing here"
	input.CharLimit = 0
	return input
}

// Result returns the finished test, if the last test finished.
func (m *Model) Result() (model.Result, bool) {
	return m.ctrl.Result()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = maxInt(10, m.contentWidth()-lipgloss.Width(m.input.Prompt)-1)
		return m, nil
	case tickMsg:
		if !m.ticker.accept(msg) {
			m.logger.Debug("stale tick dropped", zap.Int("tick_id", msg.id))
			return m, nil
		}
		m.ctrl.Tick()
		m.syncInput()
		return m, m.ticker.next()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.ctrl.State() == model.StateRunning {
			m.ctrl.Abandon()
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Start):
		return m, m.start()
	case key.Matches(msg, m.keys.Abandon):
		m.ctrl.Abandon()
		m.syncInput()
		return m, nil
	case key.Matches(msg, m.keys.Cycle):
		m.selectDuration(model.NextDuration(m.ctrl.SelectedDuration()))
		return m, nil
	}

	if !m.ctrl.InputEnabled() {
		if key.Matches(msg, m.keys.Duration) {
			m.selectDuration(durationForKey(msg.String()))
		}
		return m, nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		m.ctrl.Input(value)
		m.syncInput()
	}
	return m, tea.Batch(cmd, m.ticker.next())
}

func (m *Model) start() tea.Cmd {
	if err := m.ctrl.Start(); err != nil {
		if errors.Is(err, typing.ErrNoDuration) {
			m.notice = noDurationNotice
		} else {
			m.notice = err.Error()
		}
		return nil
	}
	m.notice = ""
	m.input.Reset()
	return tea.Batch(m.input.Focus(), m.ticker.next())
}

func (m *Model) selectDuration(d model.Duration) {
	if err := m.ctrl.SelectDuration(d); err != nil {
		m.notice = err.Error()
		return
	}
	m.notice = ""
}

// syncInput disables the text input once the controller stops accepting it.
func (m *Model) syncInput() {
	if !m.ctrl.InputEnabled() && m.input.Focused() {
		m.input.Blur()
	}
}

func durationForKey(s string) model.Duration {
	switch s {
	case "1":
		return model.AllowedDurations[0]
	case "2":
		return model.AllowedDurations[1]
	case "3":
		return model.AllowedDurations[2]
	default:
		return 0
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{
		titleStyle.Render("Typing Speed Test"),
		timerStyle.Render(fmt.Sprintf("Timer: %ds", m.ctrl.Remaining())),
		m.renderDurations(),
		"",
		m.renderPassage(),
		"",
		m.input.View(),
	}
	if status := m.renderStatus(); status != "" {
		sections = append(sections, "", status)
	}
	content := lipgloss.NewStyle().Width(m.contentWidth()).Render(strings.Join(sections, "\n"))
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return maxInt(1, int(float64(m.width)*0.70))
}

func (m *Model) renderDurations() string {
	parts := make([]string, 0, len(model.AllowedDurations))
	for _, d := range model.AllowedDurations {
		label := fmt.Sprintf("%d seconds", int(d))
		if d == m.ctrl.SelectedDuration() {
			parts = append(parts, selectedStyle.Render(label))
		} else {
			parts = append(parts, unselectedStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderPassage() string {
	passage := m.ctrl.Passage()
	if passage == "" {
		return pendingStyle.Render(placeholderText)
	}
	targetRunes := []rune(passage)
	typedLen := len([]rune(m.ctrl.Typed()))
	cursorIndex := -1
	if m.ctrl.InputEnabled() && typedLen < len(targetRunes) {
		cursorIndex = typedLen
	}
	styled := buildStyledRunes(targetRunes, typing.Classify(passage, m.ctrl.Typed()), cursorIndex)
	return wrapStyledRunes(styled, m.contentWidth())
}

func (m *Model) renderStatus() string {
	if m.notice != "" {
		return noticeStyle.Render(m.notice)
	}
	if wpm, ok := m.ctrl.WPM(); ok {
		return resultStyle.Render(formatWPM(wpm))
	}
	return ""
}

func (m *Model) renderFooter() string {
	keys := m.keys
	if m.ctrl.InputEnabled() {
		keys = keys.runningKeys()
	}
	segments := []string{}
	if passage := m.ctrl.Passage(); passage != "" {
		total := len([]rune(passage))
		typed := minInt(len([]rune(m.ctrl.Typed())), total)
		progress := int(float64(typed) / float64(total) * 100)
		segments = append(segments,
			fmt.Sprintf("Words %d", m.ctrl.CorrectWords()),
			fmt.Sprintf("Progress %d%%", progress),
		)
	}
	segments = append(segments, m.help.View(keys))
	return footerStyle.Render(strings.Join(segments, "  "))
}

func formatWPM(wpm float64) string {
	return fmt.Sprintf("%.2f WPM", wpm)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
