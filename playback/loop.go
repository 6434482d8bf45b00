package playback

import (
	"github.com/speechmark/speechmark/log"
	"github.com/speechmark/speechmark/timecode"
)

// SetLoopInterval sets the loop window length, never shorter than MinLoopIntervalMs.
func (c *Controller) SetLoopInterval(ms int64) {
	c.loopIntervalMs = max(MinLoopIntervalMs, ms)
}

// LoopInterval returns the loop window length.
func (c *Controller) LoopInterval() int64 {
	return c.loopIntervalMs
}

// ArmLoop repeats the last LoopInterval of media up to the current position.
// Playback jumps to the window start and keeps its play/pause state.
func (c *Controller) ArmLoop() error {
	if err := c.requireMedia(); err != nil {
		return err
	}

	end := c.currentPosition()
	start := max(0, end-c.loopIntervalMs)
	if start >= end {
		return ErrLoopRejected
	}

	c.session.Looping = true
	c.session.LoopStartMs = start
	c.session.LoopEndMs = end

	if err := c.seek(start); err != nil {
		c.session.Looping = false
		return err
	}

	log.Infof("loop armed %s -> %s", timecode.Format(start), timecode.Format(end))
	c.emit(EventLoopArmed, nil)
	return nil
}

// DisarmLoop ends the active loop, if any.
func (c *Controller) DisarmLoop() {
	c.disarm()
}

// ToggleLoop arms the loop when inactive and disarms it otherwise.
func (c *Controller) ToggleLoop() error {
	if err := c.requireMedia(); err != nil {
		return err
	}
	if c.session.Looping {
		c.disarm()
		return nil
	}
	return c.ArmLoop()
}

func (c *Controller) disarm() {
	if !c.session.Looping {
		return
	}
	c.session.Looping = false
	log.Debugf("loop disarmed")
	c.emit(EventLoopDisarmed, nil)
}
