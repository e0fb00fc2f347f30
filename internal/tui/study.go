// Package tui holds the interactive study timer.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	helpStyle  = lipgloss.NewStyle().Faint(true)
	doneStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
)

// StudyModel runs a countdown for one study session. Quitting early with "s"
// still saves the elapsed time; "q" abandons the session.
type StudyModel struct {
	timer    timer.Model
	progress progress.Model
	total    time.Duration
	start    time.Time

	saved   bool
	aborted bool
}

func NewStudy(minutes int) StudyModel {
	total := time.Duration(minutes) * time.Minute
	return StudyModel{
		timer:    timer.NewWithInterval(total, time.Second),
		progress: progress.New(progress.WithDefaultGradient()),
		total:    total,
		start:    time.Now(),
	}
}

func (m StudyModel) Init() tea.Cmd {
	return m.timer.Init()
}

func (m StudyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timer.TickMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd

	case timer.TimeoutMsg:
		m.saved = true
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - 8
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			m.saved = true
			return m, tea.Quit
		case "q", "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m StudyModel) View() string {
	if m.saved || m.aborted {
		if m.aborted {
			return ""
		}
		return doneStyle.Render("Session saved!") + "\n"
	}

	elapsed := m.total - m.timer.Timeout
	pct := float64(elapsed) / float64(m.total)

	return fmt.Sprintf(
		"%s\n\n  %s\n\n  %s remaining\n\n%s\n",
		titleStyle.Render("📚 Study session"),
		m.progress.ViewAs(pct),
		m.timer.View(),
		helpStyle.Render("  s: stop & save • q: abandon"),
	)
}

// Elapsed returns how much of the session actually ran.
func (m StudyModel) Elapsed() time.Duration {
	elapsed := m.total - m.timer.Timeout
	if elapsed < 0 {
		return 0
	}
	if elapsed > m.total {
		return m.total
	}
	return elapsed
}

// Start returns when the session began.
func (m StudyModel) Start() time.Time {
	return m.start
}

// ShouldSave reports whether the session should be recorded.
func (m StudyModel) ShouldSave() bool {
	return m.saved && !m.aborted
}
