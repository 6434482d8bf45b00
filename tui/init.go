package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

func (b *statefulBubble) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink, b.tick()}

	if b.options.Video != "" {
		cmds = append(cmds, b.loadVideo(b.options.Video, b.resumeAt))
	}

	return tea.Batch(cmds...)
}
