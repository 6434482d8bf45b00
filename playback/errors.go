package playback

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMedia is returned by every operation that needs loaded media when none is.
	ErrNoMedia = errors.New("no media loaded")

	// ErrLoopRejected is returned when the loop window would be empty,
	// which happens at the very start of the media.
	ErrLoopRejected = errors.New("loop window is empty")

	// ErrInvalidRate is returned for playback rates outside [MinRate, MaxRate].
	ErrInvalidRate = errors.New("invalid playback rate")
)

// OpenError reports that the media at Path could not be opened.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}
