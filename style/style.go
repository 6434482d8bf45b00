// Package style holds the lipgloss renderers shared by the CLI and the workspace.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/speechmark/speechmark/color"
)

func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Colored returns a style with the given foreground and background.
func Colored(fg, bg lipgloss.Color) lipgloss.Style {
	return New().Foreground(fg).Background(bg)
}

// Fg returns a renderer that paints text with c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return New().Foreground(c).Render(s) }
}

var (
	Faint = func(s string) string { return New().Faint(true).Render(s) }
	Bold  = func(s string) string { return New().Bold(true).Render(s) }
)

// Tag renders s as a padded block.
func Tag(fg, bg lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(fg, bg).Padding(0, 1).Render(s) }
}

var (
	Title      = Tag(color.Cream, color.Violet)
	ErrorTitle = Tag(color.Cream, ErrorColor)
)

// Timecode renders playback times.
var Timecode = func(s string) string {
	return New().Bold(true).Foreground(TimecodeColor).Render(s)
}

// Toggle indicators in the status line.
var (
	StatusOn  = Tag(Base, SuccessColor)
	StatusOff = Tag(Text, Surface)
	LoopOn    = Tag(Base, LoopColor)
)
