// Package tui provides the terminal annotation workspace: the transcript
// editor, the transport status of the external player, and the prompts
// for loading and saving files.
package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/speechmark/speechmark/config"
	"github.com/speechmark/speechmark/history"
	"github.com/speechmark/speechmark/log"
	"github.com/speechmark/speechmark/player"
)

// ErrNothingToContinue is returned by Run when Continue is set but no session was saved.
var ErrNothingToContinue = errors.New("no previous session to continue")

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	Settings config.Settings

	// Player overrides the mpv player built from Settings.
	Player player.Player

	Video      string
	Transcript string

	// Continue reopens the most recent session from history.
	Continue bool
}

// Run initializes and executes the Bubble Tea application loop.
func Run(options *Options) error {
	var resumeAt int64

	if options.Continue {
		latest, err := history.Latest()
		if err != nil {
			return err
		}
		entry, ok := latest.Get()
		if !ok {
			return ErrNothingToContinue
		}

		options.Video = entry.Video
		if options.Transcript == "" {
			options.Transcript = entry.Transcript
		}
		resumeAt = entry.PositionMs
	}

	bubble := newBubble(options)
	bubble.resumeAt = resumeAt
	defer bubble.shutdown()

	if err := bubble.openInitialTranscript(); err != nil {
		log.Warn(err)
	}

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
