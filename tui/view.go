package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/speechmark/speechmark/constant"
	"github.com/speechmark/speechmark/icon"
	"github.com/speechmark/speechmark/player"
	"github.com/speechmark/speechmark/style"
	"github.com/speechmark/speechmark/timecode"
	"github.com/speechmark/speechmark/transcript"
	"github.com/speechmark/speechmark/where"
)

var (
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
)

func (b *statefulBubble) View() string {
	switch b.state {
	case editorState:
		return b.viewEditor()
	case promptState:
		return b.viewPrompt()
	case confirmState:
		return b.viewConfirm()
	case loadingState:
		return b.viewLoading()
	case historyState:
		return b.viewHistory()
	case errorState:
		return b.viewError()
	}

	panic("unknown state")
}

func (b *statefulBubble) renderLines(lines ...string) string {
	return paddingStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (b *statefulBubble) viewEditor() string {
	return b.renderLines(
		b.viewHeader(),
		b.viewTransport(),
		"",
		b.viewEditorBody(),
		b.viewStatus(),
		b.helpC.View(b.keymap),
	)
}

// viewHeader shows the open files and whether the transcript has unsaved changes.
func (b *statefulBubble) viewHeader() string {
	video := "no video"
	if b.session.Loaded() {
		video = filepath.Base(b.session.Media)
	}

	name := "untitled"
	if b.document.Path() != "" {
		name = filepath.Base(b.document.Path())
	}
	if b.document.Modified() {
		name += style.Fg(style.WarningColor)(" *")
	}

	return truncate.StringWithTail(
		fmt.Sprintf("%s %s %s %s %s",
			style.Title(constant.Speechmark),
			icon.Get(icon.Video), style.Faint(video),
			icon.Get(icon.Transcript), name,
		),
		uint(max(0, b.width)),
		"…",
	)
}

// viewTransport shows the playback state, position, and audio settings.
func (b *statefulBubble) viewTransport() string {
	s := b.session

	parts := []string{
		stateIcon(s.State),
		style.Timecode(s.Label()),
		b.progressC.ViewAs(s.Progress()),
		fmt.Sprintf("%gx", s.Rate),
	}

	if s.Muted {
		parts = append(parts, icon.Get(icon.Mute)+" muted")
	} else {
		parts = append(parts, fmt.Sprintf("%s %d%%", icon.Get(icon.Volume), s.Volume))
	}

	if s.Looping {
		parts = append(parts, style.LoopOn(fmt.Sprintf(
			"%s %s-%s",
			icon.Get(icon.Loop),
			timecode.Format(s.LoopStartMs),
			timecode.Format(s.LoopEndMs),
		)))
	}

	return strings.Join(parts, "  ")
}

func stateIcon(s player.State) string {
	switch s {
	case player.StatePlaying:
		return icon.Get(icon.Play)
	case player.StatePaused:
		return icon.Get(icon.Pause)
	case player.StateError:
		return icon.Get(icon.Fail)
	default:
		return icon.Get(icon.Stop)
	}
}

// viewEditorBody renders the transcript, cutting long lines at the terminal edge while word wrap is off.
func (b *statefulBubble) viewEditorBody() string {
	view := b.editorC.View()
	if b.settings.WordWrap {
		return view
	}

	width := uint(max(0, b.width))
	lines := strings.Split(view, "\n")
	for i, line := range lines {
		lines[i] = truncate.String(line, width)
	}
	return strings.Join(lines, "\n")
}

// viewStatus shows the stamper phase, the editor toggles, and the current notification.
func (b *statefulBubble) viewStatus() string {
	toggle := func(name string, on bool) string {
		if on {
			return style.StatusOn(name)
		}
		return style.StatusOff(name)
	}

	phase := style.Faint(b.stamper.Phase().String())
	if b.stamper.Phase() == transcript.WaitingEnd {
		phase = style.Fg(style.AccentColor)(icon.Get(icon.Marker) + " " + b.stamper.Phase().String())
	}

	return strings.Join([]string{
		phase,
		toggle("wrap", b.settings.WordWrap),
		toggle("auto pause", b.settings.AutoPause),
		b.notifier.View(),
	}, " ")
}

func (b *statefulBubble) viewPrompt() string {
	return b.renderLines(
		style.Title("Open"),
		"",
		b.promptC.View(),
		"",
		b.notifier.View(),
		b.helpC.View(b.keymap),
	)
}

func (b *statefulBubble) viewConfirm() string {
	var question string
	switch b.confirm {
	case confirmQuit:
		question = "Quit without saving the transcript?"
	case confirmClear:
		question = "Discard the transcript and start a new one?"
	case confirmOpenTranscript:
		question = "Discard the transcript and open another one?"
	}

	return b.renderLines(
		style.Title("Unsaved changes"),
		"",
		icon.Get(icon.Warn)+" "+question,
		"",
		b.helpC.View(b.keymap),
	)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		style.Title("Loading"),
		"",
		b.spinnerC.View()+" "+b.loadingStatus,
		"",
		b.helpC.View(b.keymap),
	)
}

func (b *statefulBubble) viewHistory() string {
	return listExtraPaddingStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		b.historyC.View(),
		b.notifier.View(),
	))
}

func (b *statefulBubble) viewError() string {
	msg := "unknown error"
	if b.lastError != nil {
		msg = b.lastError.Error()
	}

	return b.renderLines(
		style.ErrorTitle("Error"),
		"",
		style.Fg(style.ErrorColor)(wordwrap.String(icon.Get(icon.Fail)+" "+msg, max(10, b.width))),
		"",
		style.Faint("Logs: "+where.Logs()),
		b.helpC.View(b.keymap),
	)
}
