package transcript

import (
	"bytes"
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const sample = `Interview, take 2
[00:00:01.000]-[00:00:03.500] Good morning.
[??:??:??.???]-[00:00:05.000] lost start
[00:00:06.000]-[00:00:07.250]
[00:61:00.000]-[00:00:09.000] malformed
plain line`

func TestSegments(t *testing.T) {
	Convey("Segments", t, func() {
		segments := Segments(sample)

		Convey("Should keep marker pair lines only", func() {
			So(len(segments), ShouldEqual, 3)
		})

		Convey("Should parse times and text", func() {
			first := segments[0]
			So(first.Line, ShouldEqual, 2)
			So(first.StartMs, ShouldEqual, 1000)
			So(first.EndMs, ShouldEqual, 3500)
			So(first.Text, ShouldEqual, "Good morning.")
		})

		Convey("Should flag placeholder starts", func() {
			So(segments[1].Flagged, ShouldBeTrue)
			So(segments[1].Start, ShouldBeEmpty)
			So(segments[1].EndMs, ShouldEqual, 5000)
		})

		Convey("Should accept an empty text", func() {
			So(segments[2].Text, ShouldBeEmpty)
		})
	})
}

func TestRender(t *testing.T) {
	Convey("Render", t, func() {
		segments := Segments(sample)
		var buf bytes.Buffer

		Convey("SRT should number cues and skip flagged segments", func() {
			So(Render(&buf, segments, FormatSRT), ShouldBeNil)
			So(buf.String(), ShouldEqual,
				"1\n00:00:01,000 --> 00:00:03,500\nGood morning.\n\n"+
					"2\n00:00:06,000 --> 00:00:07,250\n\n\n")
		})

		Convey("VTT should carry the header", func() {
			So(Render(&buf, segments, FormatVTT), ShouldBeNil)
			So(buf.String(), ShouldStartWith, "WEBVTT\n\n1\n00:00:01.000 --> 00:00:03.500\n")
		})

		Convey("JSON should decode back into segments", func() {
			So(Render(&buf, segments, FormatJSON), ShouldBeNil)
			var decoded []Segment
			So(json.Unmarshal(buf.Bytes(), &decoded), ShouldBeNil)
			So(decoded, ShouldResemble, segments)
		})

		Convey("JSON of nothing should be an empty array", func() {
			So(Render(&buf, nil, FormatJSON), ShouldBeNil)
			So(buf.String(), ShouldEqual, "[]\n")
		})

		Convey("Text should show the placeholder for flagged segments", func() {
			So(Render(&buf, segments, FormatText), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "??:??:??.??? - 00:00:05.000  lost start")
		})
	})

	Convey("ParseFormat", t, func() {
		f, err := ParseFormat("SRT")
		So(err, ShouldBeNil)
		So(f, ShouldEqual, FormatSRT)

		_, err = ParseFormat("docx")
		So(err, ShouldNotBeNil)
	})
}
