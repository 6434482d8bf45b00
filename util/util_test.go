package util

import (
	"regexp"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHelpers(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "segment", "segments"), ShouldEqual, "1 segment")
		So(Quantify(3, "segment", "segments"), ShouldEqual, "3 segments")
		So(Quantify(0, "segment", "segments"), ShouldEqual, "0 segments")
	})

	Convey("Capitalize", t, func() {
		So(Capitalize("history file"), ShouldEqual, "History file")
		So(Capitalize(""), ShouldEqual, "")
	})

	Convey("ReplaceExt", t, func() {
		So(ReplaceExt("/videos/interview.final.mp4", "txt"), ShouldEqual, "/videos/interview.final.txt")
		So(ReplaceExt("/videos/interview.mp4", "txt"), ShouldEqual, "/videos/interview.txt")
		So(ReplaceExt("notes", "srt"), ShouldEqual, "notes.srt")
	})

	Convey("ReGroups", t, func() {
		re := regexp.MustCompile(`(?P<h>\d+):(?P<m>\d+)`)
		So(ReGroups(re, "at 12:34"), ShouldResemble, map[string]string{"h": "12", "m": "34"})
		So(ReGroups(re, "none"), ShouldBeEmpty)
	})
}

func TestStack(t *testing.T) {
	Convey("Given an empty stack", t, func() {
		var s Stack[int]

		Convey("Pop returns the zero value", func() {
			So(s.Pop(), ShouldEqual, 0)
			So(s.Len(), ShouldEqual, 0)
		})

		Convey("Push and Pop are LIFO", func() {
			s.Push(1)
			s.Push(2)
			So(s.Len(), ShouldEqual, 2)
			So(s.Pop(), ShouldEqual, 2)
			So(s.Pop(), ShouldEqual, 1)
		})
	})
}
