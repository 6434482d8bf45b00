// Package ui provides the transient status message shown under the editor.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/speechmark/speechmark/style"
)

// Lifetime is how long a notification stays visible.
const Lifetime = 3 * time.Second

// Level selects the color of a notification.
type Level int

const (
	Info Level = iota
	Success
	Warning
	Failure
)

// NotifyMsg asks the Model to show a notification.
type NotifyMsg struct {
	Text  string
	Level Level
}

// ClearNotificationMsg resets the notification it was scheduled for.
type ClearNotificationMsg struct {
	id int
}

// Notify returns a tea.Cmd that shows text at the given level.
func Notify(level Level, text string) tea.Cmd {
	return func() tea.Msg {
		return NotifyMsg{Text: text, Level: level}
	}
}

// Model holds the current notification. A newer notification replaces the
// previous one and restarts its lifetime.
type Model struct {
	notification NotifyMsg
	id           int
}

// Update handles NotifyMsg and ClearNotificationMsg and ignores everything else.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotifyMsg:
		m.notification = msg
		m.id++
		id := m.id
		return tea.Tick(Lifetime, func(time.Time) tea.Msg {
			return ClearNotificationMsg{id: id}
		})
	case ClearNotificationMsg:
		if msg.id == m.id {
			m.notification = NotifyMsg{}
		}
	}
	return nil
}

// Text returns the visible notification text, empty when nothing is shown.
func (m *Model) Text() string {
	return m.notification.Text
}

// View renders the notification.
func (m *Model) View() string {
	if m.notification.Text == "" {
		return ""
	}

	render := style.Faint
	switch m.notification.Level {
	case Success:
		render = style.Fg(style.SuccessColor)
	case Warning:
		render = style.Fg(style.WarningColor)
	case Failure:
		render = style.Fg(style.ErrorColor)
	}
	return render(m.notification.Text)
}
