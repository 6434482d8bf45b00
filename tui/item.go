package tui

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/speechmark/speechmark/history"
	"github.com/speechmark/speechmark/icon"
	"github.com/speechmark/speechmark/style"
	"github.com/speechmark/speechmark/timecode"
)

// listItem implements the list.Item interface for a saved session.
type listItem struct {
	entry *history.Entry
}

func (t *listItem) Title() string {
	return fmt.Sprintf("%s %s", icon.Get(icon.Video), t.entry.Name())
}

func (t *listItem) Description() string {
	transcript := "no transcript"
	if t.entry.Transcript != "" {
		transcript = filepath.Base(t.entry.Transcript)
	}

	return fmt.Sprintf(
		"%s / %s  %s  %s",
		style.Timecode(timecode.Format(t.entry.PositionMs)),
		timecode.Format(t.entry.DurationMs),
		style.Faint(transcript),
		style.Faint(humanize.Time(t.entry.UpdatedAt)),
	)
}

func (t *listItem) FilterValue() string {
	return t.entry.Name()
}
