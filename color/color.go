// Package color names the ANSI colors used for plain CLI output. They follow
// the user's terminal theme, unlike the truecolor workspace palette in style.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps an ANSI index or hex value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

var (
	Red      = New("1")
	Green    = New("2")
	Yellow   = New("3")
	Blue     = New("4")
	Purple   = New("5")
	Cyan     = New("6")
	HiPurple = New("13")
)

// Title bar colors.
var (
	Cream  = New("230")
	Violet = New("62")
)

// Orange highlights the primary editor bindings in help.
var Orange = New("#ffb703")
