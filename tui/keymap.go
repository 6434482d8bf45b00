package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/speechmark/speechmark/color"
	"github.com/speechmark/speechmark/style"
)

// statefulKeymap defines the keyboard interactions available within each application state.
// Editor bindings use ctrl and alt chords so plain keys always reach the transcript.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	playPause, stop,
	seekBack, seekForward,
	volumeUp, volumeDown, mute,
	rateUp, rateDown,
	loop, loopInterval,
	stamp, seekMarker,
	save, saveAs, openVideo, openTranscript, clear,
	toggleWrap, toggleAutoPause,
	history,
	confirm, cancel, yes, no,
	remove, back,
	up, down,
	showHelp key.Binding
}

func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		playPause: key.NewBinding(
			key.WithKeys("ctrl+@", "alt+p"),
			key.WithHelp(style.Fg(color.Orange)("ctrl+space"), style.Fg(color.Orange)("play/pause")),
		),
		stop: key.NewBinding(
			key.WithKeys("alt+x"),
			key.WithHelp("alt+x", "stop"),
		),
		seekBack: key.NewBinding(
			key.WithKeys("alt+left"),
			key.WithHelp("alt+←", "back 5s"),
		),
		seekForward: key.NewBinding(
			key.WithKeys("alt+right"),
			key.WithHelp("alt+→", "forward 5s"),
		),
		volumeUp: key.NewBinding(
			key.WithKeys("alt+up"),
			key.WithHelp("alt+↑", "volume up"),
		),
		volumeDown: key.NewBinding(
			key.WithKeys("alt+down"),
			key.WithHelp("alt+↓", "volume down"),
		),
		mute: key.NewBinding(
			key.WithKeys("alt+m"),
			key.WithHelp("alt+m", "mute"),
		),
		rateUp: key.NewBinding(
			key.WithKeys("alt+."),
			key.WithHelp("alt+.", "faster"),
		),
		rateDown: key.NewBinding(
			key.WithKeys("alt+,"),
			key.WithHelp("alt+,", "slower"),
		),
		loop: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "loop"),
		),
		loopInterval: key.NewBinding(
			key.WithKeys("alt+l"),
			key.WithHelp("alt+l", "loop length"),
		),
		stamp: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp(style.Fg(color.Orange)("ctrl+t"), style.Fg(color.Orange)("timestamp")),
		),
		seekMarker: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "go to timestamp"),
		),
		save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		saveAs: key.NewBinding(
			key.WithKeys("alt+s"),
			key.WithHelp("alt+s", "save as"),
		),
		openVideo: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "open video"),
		),
		openTranscript: key.NewBinding(
			key.WithKeys("alt+o"),
			key.WithHelp("alt+o", "open transcript"),
		),
		clear: key.NewBinding(
			key.WithKeys("alt+n"),
			key.WithHelp("alt+n", "new transcript"),
		),
		toggleWrap: key.NewBinding(
			key.WithKeys("alt+w"),
			key.WithHelp("alt+w", "word wrap"),
		),
		toggleAutoPause: key.NewBinding(
			key.WithKeys("alt+a"),
			key.WithHelp("alt+a", "auto pause"),
		),
		history: key.NewBinding(
			key.WithKeys("alt+r"),
			key.WithHelp("alt+r", "recent sessions"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		yes: key.NewBinding(
			key.WithKeys("y", "Y", "enter"),
			key.WithHelp("y", "yes"),
		),
		no: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
		),
		remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("alt+h"),
			key.WithHelp("alt+h", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, [][]key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	switch k.state {
	case editorState:
		return h(k.playPause, k.stamp, k.seekBack, k.seekForward, k.loop, k.save, k.showHelp, k.quit),
			[][]key.Binding{
				h(k.playPause, k.stop, k.seekBack, k.seekForward, k.seekMarker),
				h(k.volumeUp, k.volumeDown, k.mute, k.rateUp, k.rateDown),
				h(k.stamp, k.loop, k.loopInterval, k.toggleWrap, k.toggleAutoPause),
				h(k.save, k.saveAs, k.openVideo, k.openTranscript, k.clear),
				h(k.history, k.showHelp, k.quit),
			}
	case promptState:
		return h(k.confirm, k.cancel), [][]key.Binding{h(k.confirm, k.cancel)}
	case confirmState:
		return h(k.yes, k.no), [][]key.Binding{h(k.yes, k.no)}
	case loadingState:
		return h(k.forceQuit), [][]key.Binding{h(k.forceQuit)}
	case historyState:
		return h(k.confirm, k.remove, k.back), [][]key.Binding{h(k.up, k.down, k.confirm, k.remove, k.back)}
	case errorState:
		return h(k.back, k.quit), [][]key.Binding{h(k.back, k.quit)}
	default:
		return h(), [][]key.Binding{}
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return full
}

func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:   k.up,
		CursorDown: k.down,
	}
}
