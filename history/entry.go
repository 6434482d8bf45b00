package history

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/speechmark/speechmark/timecode"
)

// Entry is a resumable annotation session.
type Entry struct {
	Video      string    `json:"video"`
	Transcript string    `json:"transcript"`
	PositionMs int64     `json:"position_ms"`
	DurationMs int64     `json:"duration_ms"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (e *Entry) encode() string {
	return filepath.Clean(e.Video)
}

// Name is the video file name shown in listings.
func (e *Entry) Name() string {
	return filepath.Base(e.Video)
}

// Progress returns how far into the video the session stopped, as a fraction.
func (e *Entry) Progress() float64 {
	if e.DurationMs <= 0 {
		return 0
	}
	return float64(e.PositionMs) / float64(e.DurationMs)
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s : %s / %s", e.Name(), timecode.Format(e.PositionMs), timecode.Format(e.DurationMs))
}
