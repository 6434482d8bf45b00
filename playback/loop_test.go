package playback

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/speechmark/speechmark/player"
	"github.com/speechmark/speechmark/player/playertest"
)

func TestLoop(t *testing.T) {
	Convey("Loop", t, func() {
		fake := playertest.New(testDuration)
		c, events := newController(fake, 80)
		So(c.Load(context.Background(), "/talk.mp4", 0), ShouldBeNil)
		*events = nil

		Convey("Should be rejected at the very start", func() {
			So(errors.Is(c.ArmLoop(), ErrLoopRejected), ShouldBeTrue)
			So(c.Snapshot().Looping, ShouldBeFalse)
		})

		Convey("SetLoopInterval should enforce the minimum", func() {
			c.SetLoopInterval(10)
			So(c.LoopInterval(), ShouldEqual, MinLoopIntervalMs)
			c.SetLoopInterval(3000)
			So(c.LoopInterval(), ShouldEqual, 3000)
		})

		Convey("While playing", func() {
			So(c.Play(), ShouldBeNil)
			fake.Advance(5000)
			So(c.ArmLoop(), ShouldBeNil)

			Convey("Should capture the window ending now and jump to its start", func() {
				session := c.Snapshot()
				So(session.Looping, ShouldBeTrue)
				So(session.LoopStartMs, ShouldEqual, 3000)
				So(session.LoopEndMs, ShouldEqual, 5000)
				pos, _ := fake.Position()
				So(pos, ShouldEqual, 3000)
				So(fake.State(), ShouldEqual, player.StatePlaying)
				So(kinds(*events), ShouldResemble, []EventKind{EventLoopArmed})
			})

			Convey("Should wrap to the start after reaching the end", func() {
				fake.Advance(1500)
				So(c.Tick().PositionMs, ShouldEqual, 4500)

				fake.Advance(480)
				So(c.Tick().PositionMs, ShouldEqual, 3000)
				So(c.Tick().PositionMs, ShouldEqual, 3000)
				So(kinds(*events), ShouldContain, EventLoopWrapped)
			})

			Convey("Should clamp the window start at zero", func() {
				c.DisarmLoop()
				So(c.Seek(500), ShouldBeNil)
				So(c.ArmLoop(), ShouldBeNil)
				So(c.Snapshot().LoopStartMs, ShouldEqual, 0)
				So(c.Snapshot().LoopEndMs, ShouldEqual, 500)
			})

			Convey("Should be disarmed by", func() {
				Convey("a manual seek", func() {
					So(c.SeekRelative(1000), ShouldBeNil)
					So(c.Snapshot().Looping, ShouldBeFalse)
				})

				Convey("a user pause", func() {
					So(c.Pause(), ShouldBeNil)
					So(c.Snapshot().Looping, ShouldBeFalse)
				})

				Convey("toggling playback", func() {
					So(c.TogglePlay(), ShouldBeNil)
					So(c.Snapshot().Looping, ShouldBeFalse)
				})

				Convey("stop", func() {
					So(c.Stop(), ShouldBeNil)
					So(c.Snapshot().Looping, ShouldBeFalse)
				})

				Convey("toggling the loop", func() {
					So(c.ToggleLoop(), ShouldBeNil)
					So(c.Snapshot().Looping, ShouldBeFalse)
					So(kinds(*events), ShouldResemble, []EventKind{EventLoopArmed, EventLoopDisarmed})
				})
			})
		})

		Convey("While paused the loop should not wrap", func() {
			So(c.Seek(8000), ShouldBeNil)
			So(c.ArmLoop(), ShouldBeNil)
			So(c.Snapshot().State, ShouldEqual, player.StatePaused)

			So(fake.SetPosition(7990), ShouldBeNil)
			So(c.Tick().PositionMs, ShouldEqual, 7990)
		})
	})
}
