// Package playback turns an external player.Player into a seekable, loopable
// transport with a clamped position model. The Controller is not safe for
// concurrent use; all calls are expected from the UI event loop.
package playback

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/speechmark/speechmark/config"
	"github.com/speechmark/speechmark/log"
	"github.com/speechmark/speechmark/player"
	"github.com/speechmark/speechmark/timecode"
	"golang.org/x/exp/slices"
)

const (
	MinRate = 0.25
	MaxRate = 4.0

	MinLoopIntervalMs = 100

	// loopWrapEpsilonMs compensates for the poll interval so the wrap happens
	// before the window end is audibly overshot.
	loopWrapEpsilonMs = 30

	// endThresholdMs is how close to the end a position counts as finished.
	endThresholdMs = 50

	defaultRestoreVolume = 50
	durationRetries      = 5
)

// RateLadder holds the playback rates StepRate moves between.
var RateLadder = []float64{0.5, 0.75, 1.0, 1.25, 1.5, 2.0}

// Options are the controller's tunables.
type Options struct {
	SeekStepMs     int64
	LoopIntervalMs int64
	Volume         int
	Rate           float64

	// DurationBackoff is multiplied by the attempt number between duration probes.
	DurationBackoff time.Duration
}

// OptionsFrom derives controller options from the user settings.
func OptionsFrom(s config.Settings) Options {
	return Options{
		SeekStepMs:      s.SeekStepMs,
		LoopIntervalMs:  s.LoopIntervalMs,
		Volume:          s.Volume,
		Rate:            s.Rate,
		DurationBackoff: 150 * time.Millisecond,
	}
}

// Session is the observable playback state.
type Session struct {
	Media       string
	PositionMs  int64
	DurationMs  int64
	Rate        float64
	Volume      int
	Muted       bool
	Looping     bool
	LoopStartMs int64
	LoopEndMs   int64
	State       player.State
}

// Loaded reports whether a media file is open.
func (s Session) Loaded() bool {
	return s.Media != ""
}

// Progress returns the position as a fraction of the duration, or 0 while the duration is unknown.
func (s Session) Progress() float64 {
	if s.DurationMs <= 0 {
		return 0
	}
	return lo.Clamp(float64(s.PositionMs)/float64(s.DurationMs), 0, 1)
}

// Label renders "position / duration" as timecodes.
func (s Session) Label() string {
	return timecode.Format(s.PositionMs) + " / " + timecode.Format(s.DurationMs)
}

// Controller owns the media session and mediates every transport command.
type Controller struct {
	player         player.Player
	opts           Options
	session        Session
	lastVolume     int
	loopIntervalMs int64
	subscribers    []func(Event)
}

// New creates a controller for p. Nothing is loaded until Load.
func New(p player.Player, opts Options) *Controller {
	if opts.SeekStepMs <= 0 {
		opts.SeekStepMs = 5000
	}
	if opts.Rate < MinRate || opts.Rate > MaxRate {
		opts.Rate = 1
	}
	opts.Volume = lo.Clamp(opts.Volume, 0, 100)

	c := &Controller{
		player:         p,
		opts:           opts,
		lastVolume:     lo.Ternary(opts.Volume > 0, opts.Volume, defaultRestoreVolume),
		loopIntervalMs: 2000,
	}
	if opts.LoopIntervalMs > 0 {
		c.SetLoopInterval(opts.LoopIntervalMs)
	}
	c.session = Session{
		Rate:   opts.Rate,
		Volume: opts.Volume,
		State:  player.StateIdle,
	}
	return c
}

// Snapshot returns a copy of the current session.
func (c *Controller) Snapshot() Session {
	return c.session
}

// SeekStep returns the configured relative seek distance.
func (c *Controller) SeekStep() int64 {
	return c.opts.SeekStepMs
}

// Load opens path and waits for its duration. When 0 < initialPosMs < duration
// playback is positioned there. The media is always left paused.
// On failure the previous session is discarded and an *OpenError returned.
func (c *Controller) Load(ctx context.Context, path string, initialPosMs int64) error {
	c.disarm()
	c.session.Media = ""
	c.session.PositionMs = 0
	c.session.DurationMs = 0
	c.session.State = player.StateIdle

	logger := log.WithFields(logrus.Fields{"media": path})

	if path == "" {
		return c.openFailed(path, errors.New("empty path"))
	}

	if err := c.player.Open(path); err != nil {
		return c.openFailed(path, err)
	}

	duration, err := c.probeDuration(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return c.openFailed(path, ctxErr)
		}
		logger.Warnf("could not determine duration: %v", err)
	}

	c.session.Media = path
	c.session.DurationMs = duration
	c.applyAudio()

	if initialPosMs > 0 && initialPosMs < duration {
		c.seek(initialPosMs)
	} else {
		c.seek(0)
	}

	if err := c.player.Pause(); err != nil {
		logger.Warnf("pause after load: %v", err)
	}
	c.session.State = player.StatePaused

	logger.Infof("loaded, duration %s", timecode.Format(duration))
	c.emit(EventLoaded, nil)
	return nil
}

func (c *Controller) openFailed(path string, err error) error {
	openErr := &OpenError{Path: path, Err: err}
	c.session.State = player.StateError
	log.Errorf("%v", openErr)
	c.emit(EventError, openErr)
	return openErr
}

// probeDuration polls the player until it reports a positive duration,
// backing off linearly between attempts.
func (c *Controller) probeDuration(ctx context.Context) (int64, error) {
	var lastErr error

	for attempt := 1; attempt <= durationRetries; attempt++ {
		duration, err := c.player.Duration()
		if err == nil && duration > 0 {
			return duration, nil
		}
		lastErr = lo.Ternary(err != nil, err, errors.New("duration reported as zero"))

		if attempt == durationRetries {
			break
		}

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(c.opts.DurationBackoff * time.Duration(attempt)):
		}
	}

	return 0, fmt.Errorf("after %d attempts: %w", durationRetries, lastErr)
}

func (c *Controller) applyAudio() {
	if err := c.player.SetRate(c.session.Rate); err != nil {
		log.Warnf("apply rate: %v", err)
	}
	if err := c.player.SetVolume(lo.Ternary(c.session.Muted, c.lastVolume, c.session.Volume)); err != nil {
		log.Warnf("apply volume: %v", err)
	}
	if err := c.player.SetMute(c.session.Muted); err != nil {
		log.Warnf("apply mute: %v", err)
	}
}

func (c *Controller) requireMedia() error {
	if !c.session.Loaded() {
		return ErrNoMedia
	}
	return nil
}

// Play starts or resumes playback. A stopped or finished session restarts from the beginning.
func (c *Controller) Play() error {
	if err := c.requireMedia(); err != nil {
		return err
	}
	return c.play()
}

func (c *Controller) play() error {
	state := c.player.State()
	nearEnd := c.session.DurationMs > 0 && c.session.PositionMs >= c.session.DurationMs-endThresholdMs

	if state == player.StateStopped || state == player.StateEnded || c.session.State == player.StateStopped || nearEnd {
		c.seek(0)
	}

	if err := c.player.Play(); err != nil {
		return err
	}
	c.session.State = player.StatePlaying
	return nil
}

// Pause pauses playback and ends any active loop.
func (c *Controller) Pause() error {
	if err := c.requireMedia(); err != nil {
		return err
	}
	c.disarm()
	return c.pause()
}

func (c *Controller) pause() error {
	if err := c.player.Pause(); err != nil {
		return err
	}
	c.session.State = player.StatePaused
	return nil
}

// TogglePlay switches between playing and paused and ends any active loop.
func (c *Controller) TogglePlay() error {
	if err := c.requireMedia(); err != nil {
		return err
	}
	c.disarm()

	if c.player.State() == player.StatePlaying {
		return c.pause()
	}
	return c.play()
}

// Stop halts playback and rewinds to the start.
func (c *Controller) Stop() error {
	if err := c.requireMedia(); err != nil {
		return err
	}
	c.disarm()
	return c.stop()
}

func (c *Controller) stop() error {
	err := c.player.Stop()
	c.session.PositionMs = 0
	c.session.State = player.StateStopped
	return err
}

// Seek moves to ms, clamped to the media bounds, and ends any active loop.
func (c *Controller) Seek(ms int64) error {
	if err := c.requireMedia(); err != nil {
		return err
	}
	c.disarm()
	return c.seek(ms)
}

// SeekRelative moves by deltaMs from the current position.
func (c *Controller) SeekRelative(deltaMs int64) error {
	if err := c.requireMedia(); err != nil {
		return err
	}
	return c.Seek(c.currentPosition() + deltaMs)
}

func (c *Controller) seek(ms int64) error {
	target := c.clampPosition(ms)
	if err := c.player.SetPosition(target); err != nil {
		log.Warnf("seek to %s: %v", timecode.Format(target), err)
		return err
	}
	c.session.PositionMs = target
	return nil
}

// clampPosition bounds ms to [0, duration]; only the lower bound applies while the duration is unknown.
func (c *Controller) clampPosition(ms int64) int64 {
	if ms < 0 {
		return 0
	}
	if c.session.DurationMs > 0 && ms > c.session.DurationMs {
		return c.session.DurationMs
	}
	return ms
}

// currentPosition asks the player and falls back to the last polled position.
func (c *Controller) currentPosition() int64 {
	pos, err := c.player.Position()
	if err != nil {
		return c.session.PositionMs
	}
	return c.clampPosition(pos)
}

// CurrentTime returns the playback position used for timestamps.
func (c *Controller) CurrentTime() (int64, error) {
	if err := c.requireMedia(); err != nil {
		return 0, err
	}
	return c.currentPosition(), nil
}

// SetRate sets the playback rate, which must lie within [MinRate, MaxRate].
func (c *Controller) SetRate(rate float64) error {
	if err := c.requireMedia(); err != nil {
		return err
	}
	if math.IsNaN(rate) || rate < MinRate || rate > MaxRate {
		return fmt.Errorf("%w: %g", ErrInvalidRate, rate)
	}
	if err := c.player.SetRate(rate); err != nil {
		return err
	}
	c.session.Rate = rate
	return nil
}

// StepRate moves n steps along RateLadder. A rate between two rungs first
// snaps to the neighbouring rung in the stepping direction.
func (c *Controller) StepRate(n int) error {
	if err := c.requireMedia(); err != nil {
		return err
	}
	return c.SetRate(stepLadder(c.session.Rate, n))
}

func stepLadder(rate float64, n int) float64 {
	if n == 0 {
		return rate
	}

	idx, found := slices.BinarySearch(RateLadder, rate)
	target := idx + n
	if n > 0 && !found {
		target--
	}
	next := RateLadder[lo.Clamp(target, 0, len(RateLadder)-1)]

	// Outside the ladder, stepping towards it must not jump past the current rate.
	if (n > 0 && next < rate) || (n < 0 && next > rate) {
		return rate
	}
	return next
}

// SetVolume sets the volume in percent, clamped to [0, 100].
// A positive volume also unmutes.
func (c *Controller) SetVolume(percent int) error {
	if err := c.requireMedia(); err != nil {
		return err
	}

	percent = lo.Clamp(percent, 0, 100)
	if err := c.player.SetVolume(percent); err != nil {
		return err
	}
	c.session.Volume = percent

	if percent > 0 {
		c.lastVolume = percent
		if c.session.Muted {
			if err := c.player.SetMute(false); err != nil {
				return err
			}
			c.session.Muted = false
		}
	}
	return nil
}

// ChangeVolume adjusts the volume by delta percent. While muted only the
// volume restored on unmute changes.
func (c *Controller) ChangeVolume(delta int) error {
	if err := c.requireMedia(); err != nil {
		return err
	}
	if c.session.Muted {
		c.lastVolume = lo.Clamp(c.lastVolume+delta, 0, 100)
		return nil
	}
	return c.SetVolume(c.session.Volume + delta)
}

// ToggleMute mutes, remembering the current volume, or unmutes restoring it.
func (c *Controller) ToggleMute() error {
	if err := c.requireMedia(); err != nil {
		return err
	}

	if c.session.Muted {
		return c.SetVolume(lo.Ternary(c.lastVolume > 0, c.lastVolume, defaultRestoreVolume))
	}

	if c.session.Volume > 0 {
		c.lastVolume = c.session.Volume
	}
	if err := c.player.SetMute(true); err != nil {
		return err
	}
	c.session.Muted = true
	c.session.Volume = 0
	return nil
}

// UnmutedVolume is the volume that applies once the session is not muted.
func (c *Controller) UnmutedVolume() int {
	if c.session.Muted {
		return c.lastVolume
	}
	return c.session.Volume
}

// Tick polls the player and advances the session. It is the only place
// where end of media and player errors are noticed and where the loop wraps.
func (c *Controller) Tick() Session {
	// A failed session stays failed until the next Load.
	if !c.session.Loaded() || c.session.State == player.StateError {
		return c.session
	}

	state := c.player.State()

	switch state {
	case player.StateError:
		c.disarm()
		_ = c.player.Stop()
		c.session.PositionMs = 0
		c.session.State = player.StateError
		log.Errorf("player reported an error while playing %s", c.session.Media)
		c.emit(EventError, errors.New("player reported an error"))
		return c.session
	case player.StateEnded:
		c.disarm()
		if err := c.stop(); err != nil {
			log.Warnf("stop at end of media: %v", err)
		}
		log.Debugf("end of media reached")
		c.emit(EventEnded, nil)
		return c.session
	}

	pos, err := c.player.Position()
	if err != nil {
		if state.Terminal() {
			c.session.PositionMs = 0
		}
		c.session.State = state
		return c.session
	}

	c.session.PositionMs = c.clampPosition(pos)
	c.session.State = state

	if c.session.Looping && state == player.StatePlaying && pos >= c.session.LoopEndMs-loopWrapEpsilonMs {
		log.Debugf("loop wrap from %s to %s", timecode.Format(pos), timecode.Format(c.session.LoopStartMs))
		if err := c.seek(c.session.LoopStartMs); err == nil {
			c.emit(EventLoopWrapped, nil)
		}
	}

	return c.session
}

// Close stops playback and shuts the player down.
func (c *Controller) Close() error {
	if c.session.Loaded() {
		_ = c.player.Stop()
	}
	c.disarm()
	c.session = Session{Rate: c.session.Rate, Volume: c.session.Volume, Muted: c.session.Muted}
	return c.player.Close()
}
