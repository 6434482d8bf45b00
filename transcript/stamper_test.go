package transcript

import (
	"regexp"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/speechmark/speechmark/timecode"
)

func TestStamper(t *testing.T) {
	Convey("Stamper", t, func() {
		doc := NewDocument()
		stamper := new(Stamper)

		Convey("Two triggers on an empty line should produce a marker pair", func() {
			cursor := stamper.Trigger(doc, 0, 1500)
			So(stamper.Phase(), ShouldEqual, WaitingEnd)
			So(stamper.Pending().IsPresent(), ShouldBeTrue)
			So(doc.Text(), ShouldEqual, "[00:00:01.500]-")

			cursor = stamper.Trigger(doc, cursor, 4250)
			So(stamper.Phase(), ShouldEqual, WaitingStart)
			So(stamper.Pending().IsAbsent(), ShouldBeTrue)
			So(doc.Text(), ShouldEqual, "[00:00:01.500]-[00:00:04.250] ")
			So(cursor, ShouldEqual, doc.Len())

			pattern := regexp.MustCompile(`^\[` + regexp.QuoteMeta(timecode.Format(1500)) + `\]-\[` + regexp.QuoteMeta(timecode.Format(4250)) + `\] `)
			So(pattern.MatchString(doc.Text()), ShouldBeTrue)
		})

		Convey("The start marker should go to the beginning of the cursor line", func() {
			doc.SetText("intro\nspeaker one\n")
			cursor := stamper.Trigger(doc, 11, 60000)
			So(doc.Text(), ShouldEqual, "intro\n[00:01:00.000]-speaker one\n")
			So(cursor, ShouldEqual, 26)

			cursor = stamper.Trigger(doc, cursor, 61000)
			So(doc.Text(), ShouldEqual, "intro\n[00:01:00.000]-[00:01:01.000] speaker one\n")
			So(cursor, ShouldEqual, doc.LineEnd(6))
		})

		Convey("A lost start should be flagged with the placeholder", func() {
			doc.SetText("words")
			stamper.phase = WaitingEnd

			cursor := stamper.Trigger(doc, 3, 2000)
			So(doc.Text(), ShouldEqual, "[??:??:??.???]-[00:00:02.000] words")
			So(cursor, ShouldEqual, 3+len("[??:??:??.???]-[00:00:02.000] "))
			So(stamper.Phase(), ShouldEqual, WaitingStart)
		})

		Convey("A start offset beyond the buffer should be treated as lost", func() {
			stamper.Trigger(doc, 0, 1000)
			doc.SetText("")

			stamper.Trigger(doc, 0, 2000)
			So(doc.Text(), ShouldEqual, "[??:??:??.???]-[00:00:02.000] ")
		})

		Convey("A start marker edited away should be treated as lost", func() {
			stamper.Trigger(doc, 0, 1000)
			doc.SetText("rewritten text")

			stamper.Trigger(doc, 0, 2000)
			So(doc.Text(), ShouldEqual, "[??:??:??.???]-[00:00:02.000] rewritten text")
		})

		Convey("An edit on an earlier line should not lose the start", func() {
			doc.SetText("intro\nsecond")
			stamper.Trigger(doc, 8, 1000)
			So(doc.Text(), ShouldEqual, "intro\n[00:00:01.000]-second")

			doc.SetText("X" + doc.Text())
			cursor := stamper.Trigger(doc, 10, 2000)
			So(doc.Text(), ShouldEqual, "Xintro\n[00:00:01.000]-[00:00:02.000] second")
			So(cursor, ShouldEqual, doc.Len())
			So(stamper.Phase(), ShouldEqual, WaitingStart)
		})

		Convey("A line whose pair is already closed should get the placeholder", func() {
			doc.SetText("[00:00:01.000]-[00:00:02.000] done")
			stamper.phase = WaitingEnd

			stamper.Trigger(doc, 5, 3000)
			So(doc.Text(), ShouldEqual, "[??:??:??.???]-[00:00:03.000] [00:00:01.000]-[00:00:02.000] done")
		})

		Convey("Reset should drop a pending start", func() {
			stamper.Trigger(doc, 0, 1000)
			stamper.Reset()
			So(stamper.Phase(), ShouldEqual, WaitingStart)
			So(stamper.Pending().IsAbsent(), ShouldBeTrue)
		})
	})
}
