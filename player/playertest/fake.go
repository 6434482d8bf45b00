// Package playertest provides a scripted in-memory player.Player for tests.
package playertest

import (
	"errors"
	"sync"

	"github.com/samber/lo"
	"github.com/speechmark/speechmark/player"
)

// Fake is a player.Player that keeps its state in memory. Playback does not
// advance on its own; tests move the position with Advance.
type Fake struct {
	mu sync.Mutex

	media       string
	positionMs  int64
	durationMs  int64
	rate        float64
	volume      int
	muted       bool
	state       player.State
	closed      bool
	openErr     error
	positionErr error
	unknownFor  int
	calls       []string
}

// New returns a fake with media of the given length ready to be opened.
func New(durationMs int64) *Fake {
	return &Fake{
		durationMs: durationMs,
		rate:       1,
		volume:     100,
		state:      player.StateIdle,
	}
}

// FailOpen makes the next Open calls return err.
func (f *Fake) FailOpen(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.openErr = err
}

// FailPosition makes Position return err until cleared with nil.
func (f *Fake) FailPosition(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.positionErr = err
}

// DurationUnknownFor makes the next n Duration calls return player.ErrUnavailable.
func (f *Fake) DurationUnknownFor(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unknownFor = n
}

// SetState forces the reported state.
func (f *Fake) SetState(state player.State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = state
}

// Advance moves the position forward as if ms of media had played. Reaching
// the end switches the state to ended.
func (f *Fake) Advance(ms int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.positionMs += ms
	if f.durationMs > 0 && f.positionMs >= f.durationMs {
		f.positionMs = f.durationMs
		f.state = player.StateEnded
	}
}

// Calls returns the names of the mutating calls received so far.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Media returns the path passed to the last successful Open.
func (f *Fake) Media() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.media
}

// Closed reports whether Close was called.
func (f *Fake) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *Fake) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *Fake) Open(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("open")

	if f.openErr != nil {
		f.state = player.StateError
		return f.openErr
	}

	f.media = path
	f.positionMs = 0
	f.state = player.StatePaused
	return nil
}

func (f *Fake) Play() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("play")

	if f.media == "" {
		return errors.New("nothing loaded")
	}
	f.state = player.StatePlaying
	return nil
}

func (f *Fake) Pause() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("pause")

	if f.state == player.StatePlaying {
		f.state = player.StatePaused
	}
	return nil
}

func (f *Fake) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("stop")

	f.positionMs = 0
	f.state = player.StateStopped
	return nil
}

func (f *Fake) Position() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.positionErr != nil {
		return 0, f.positionErr
	}
	return f.positionMs, nil
}

func (f *Fake) SetPosition(ms int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("seek")

	f.positionMs = lo.Clamp(ms, 0, f.durationMs)
	if f.state == player.StateEnded && f.positionMs < f.durationMs {
		f.state = player.StatePaused
	}
	return nil
}

func (f *Fake) Duration() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.unknownFor > 0 {
		f.unknownFor--
		return 0, player.ErrUnavailable
	}
	return f.durationMs, nil
}

func (f *Fake) Rate() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rate, nil
}

func (f *Fake) SetRate(rate float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("rate")
	f.rate = rate
	return nil
}

func (f *Fake) Volume() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.volume, nil
}

func (f *Fake) SetVolume(percent int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("volume")
	f.volume = percent
	return nil
}

func (f *Fake) Muted() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.muted, nil
}

func (f *Fake) SetMute(muted bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("mute")
	f.muted = muted
	return nil
}

func (f *Fake) State() player.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("close")
	f.closed = true
	return nil
}

var _ player.Player = (*Fake)(nil)
