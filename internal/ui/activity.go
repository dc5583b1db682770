package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/storefront/internal/logtail"
)

// activityState holds the session log view.
type activityState struct {
	viewport viewport.Model
	entries  []logtail.Entry
	err      error

	// Content caching - skip re-render when unchanged
	contentVersion uint64
	lastRendered   uint64
}

type activityLoadedMsg struct {
	entries []logtail.Entry
	err     error
}

func newActivityState() activityState {
	return activityState{viewport: viewport.New(0, 0)}
}

// loadActivity reads the tail of the session log off the update loop.
func (m *Model) loadActivity() tea.Cmd {
	path := m.logFile
	ctx := m.ctx
	return func() tea.Msg {
		if path == "" {
			return activityLoadedMsg{}
		}
		if err := ctx.Err(); err != nil {
			return activityLoadedMsg{err: err}
		}
		entries, err := logtail.Tail(path, ActivityLines)
		return activityLoadedMsg{entries: entries, err: err}
	}
}

func (m *Model) handleActivityLoaded(msg activityLoadedMsg) {
	m.activity.entries = msg.entries
	m.activity.err = msg.err
	m.activity.contentVersion++
	m.updateActivityViewport()
	m.activity.viewport.GotoBottom()
}

// resizeActivity fits the viewport to the window and forces a re-render.
func (m *Model) resizeActivity() {
	m.activity.contentVersion++
	m.updateActivityViewport()
}

func (m *Model) updateActivityViewport() {
	// Box: footer 1, border 2, title and spacer 2, hint line and spacer 2
	m.activity.viewport.Width = maxInt(m.width-6, 10)
	m.activity.viewport.Height = maxInt(m.height-7, 3)

	if m.activity.lastRendered == 0 || m.activity.contentVersion != m.activity.lastRendered {
		m.activity.viewport.SetContent(m.renderActivityContent())
		m.activity.lastRendered = m.activity.contentVersion
		if m.activity.lastRendered == 0 {
			m.activity.lastRendered = 1 // Mark as rendered at least once
		}
	}
}

func (m Model) activityTitle() string {
	if m.logFile == "" {
		return "Activity"
	}
	return "Activity · " + filepath.Base(m.logFile)
}

func (m Model) renderActivity() string {
	styles := m.theme.Styles()
	return m.activity.viewport.View() + "\n\n" +
		styles.FaintText.Render("j/k scroll  g/G top/bottom  r refresh  esc close")
}

func (m Model) renderActivityContent() string {
	styles := m.theme.Styles()
	switch {
	case m.logFile == "":
		return styles.MutedText.Render("Session logging is disabled")
	case m.activity.err != nil:
		return styles.DangerText.Render(fmt.Sprintf("Cannot read log: %v", m.activity.err))
	case len(m.activity.entries) == 0:
		return styles.MutedText.Render("No activity yet")
	}

	width := m.activity.viewport.Width
	lines := make([]string, 0, len(m.activity.entries))
	for _, e := range m.activity.entries {
		lines = append(lines, m.formatEntry(e, width))
	}
	return strings.Join(lines, "\n")
}

// formatEntry renders one log record as "15:04:05 LEVEL message key=value...".
func (m Model) formatEntry(e logtail.Entry, width int) string {
	styles := m.theme.Styles()
	if e.Level == "" {
		return styles.FaintText.Render(truncate(e.Raw, width))
	}

	ts := "        "
	if !e.Time.IsZero() {
		ts = e.Time.Local().Format("15:04:05")
	}

	levelStyle := styles.InfoText
	switch e.Level {
	case "ERROR":
		levelStyle = styles.DangerText
	case "WARN":
		levelStyle = styles.WarningText
	case "DEBUG":
		levelStyle = styles.FaintText
	}

	attrs := make([]string, 0, len(e.Attrs))
	for _, a := range e.Attrs {
		attrs = append(attrs, a.Key+"="+a.Value)
	}
	rest := e.Message
	if len(attrs) > 0 {
		rest += "  " + strings.Join(attrs, " ")
	}
	prefix := styles.FaintText.Render(ts) + " " + levelStyle.Render(padRight(e.Level, 5)) + " "
	return prefix + styles.Text.Render(truncate(rest, maxInt(width-lipgloss.Width(prefix), 10)))
}
