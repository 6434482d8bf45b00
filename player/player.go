// Package player defines the capability set speechmark needs from an external media
// engine. The engine owns decoding, rendering, and A/V sync; speechmark only issues
// transport commands and reads back playback properties.
// The primary implementation drives mpv through its JSON-IPC interface.
package player

import "errors"

// State is the coarse playback state reported by the engine.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
	StateStopped
	StateEnded
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	case StateEnded:
		return "ended"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal reports whether no playback position is expected in this state.
func (s State) Terminal() bool {
	switch s {
	case StateIdle, StateStopped, StateEnded, StateError:
		return true
	default:
		return false
	}
}

// ErrUnavailable is returned when a property cannot be read right now,
// for example the position while a file is still opening.
var ErrUnavailable = errors.New("property unavailable")

// ErrNotRunning is returned when the engine process is gone.
var ErrNotRunning = errors.New("player is not running")

// Player is the media engine as seen by the playback controller.
// Times are in milliseconds, volume in percent.
type Player interface {
	// Open loads the media at path, replacing any current media, and leaves it paused.
	Open(path string) error

	Play() error
	Pause() error

	// Stop halts playback and rewinds while keeping the media loaded.
	Stop() error

	// Position returns the current playback position.
	Position() (int64, error)
	SetPosition(ms int64) error

	// Duration returns the length of the loaded media, or ErrUnavailable while unknown.
	Duration() (int64, error)

	Rate() (float64, error)
	SetRate(rate float64) error

	Volume() (int, error)
	SetVolume(percent int) error

	Muted() (bool, error)
	SetMute(muted bool) error

	State() State

	// Close terminates the engine and releases its resources.
	Close() error
}
