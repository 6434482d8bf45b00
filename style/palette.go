package style

import "github.com/charmbracelet/lipgloss"

// Workspace palette.
var (
	Base    = lipgloss.Color("#1e1e2e")
	Text    = lipgloss.Color("#cdd6f4")
	Surface = lipgloss.Color("#313244")
	Overlay = lipgloss.Color("#6c7086")

	Mauve  = lipgloss.Color("#cba6f7")
	Red    = lipgloss.Color("#f38ba8")
	Peach  = lipgloss.Color("#fab387")
	Yellow = lipgloss.Color("#f9e2af")
	Green  = lipgloss.Color("#a6e3a1")
	Teal   = lipgloss.Color("#94e2d5")
)

// Roles.
var (
	AccentColor  = Mauve
	SuccessColor = Green
	WarningColor = Yellow
	ErrorColor   = Red
	FaintColor   = Overlay

	// TimecodeColor renders playback times and markers.
	TimecodeColor = Peach
	// LoopColor marks an armed loop window.
	LoopColor = Teal
)
