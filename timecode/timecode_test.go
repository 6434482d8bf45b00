package timecode

import (
	"errors"
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFormat(t *testing.T) {
	Convey("Format", t, func() {
		So(Format(0), ShouldEqual, "00:00:00.000")
		So(Format(1), ShouldEqual, "00:00:00.001")
		So(Format(61_001), ShouldEqual, "00:01:01.001")
		So(Format(3_723_004), ShouldEqual, "01:02:03.004")
		So(Format(359_999_999), ShouldEqual, "99:59:59.999")
		So(Format(360_000_000), ShouldEqual, "100:00:00.000")

		Convey("Negative input renders as zero", func() {
			So(Format(-40), ShouldEqual, "00:00:00.000")
		})

		Convey("Marker wraps the time in brackets", func() {
			So(Marker(1500), ShouldEqual, "[00:00:01.500]")
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Parse", t, func() {
		ms, err := Parse("01:02:03.004")
		So(err, ShouldBeNil)
		So(ms, ShouldEqual, 3_723_004)

		Convey("Malformed strings are rejected", func() {
			for _, s := range []string{"", "1:02:03.004", "01:02:03", "01:60:00.000", "01:00:61.000", "aa:bb:cc.ddd", "01:02:03.0045"} {
				_, err := Parse(s)
				So(errors.Is(err, ErrMalformed), ShouldBeTrue)
			}
		})

		Convey("Format round-trips across the two-digit hour range", func() {
			edges := []int64{0, 999, 1000, 59_999, 60_000, 3_599_999, 3_600_000, 359_999_999}
			r := rand.New(rand.NewSource(7))
			for i := 0; i < 500; i++ {
				edges = append(edges, r.Int63n(360_000_000))
			}

			for _, ms := range edges {
				got, err := Parse(Format(ms))
				So(err, ShouldBeNil)
				So(got, ShouldEqual, ms)
			}
		})
	})
}

func TestMarkerAt(t *testing.T) {
	Convey("Given a transcript line with two markers", t, func() {
		text := "[00:00:01.000]-[01:02:03.004] hello"

		Convey("An offset inside the first marker resolves to it", func() {
			ms, ok := MarkerAt(text, 3)
			So(ok, ShouldBeTrue)
			So(ms, ShouldEqual, 1000)
		})

		Convey("An offset inside the second marker resolves to it", func() {
			ms, ok := MarkerAt(text, 16)
			So(ok, ShouldBeTrue)
			So(ms, ShouldEqual, 3_723_004)
		})

		Convey("Offsets outside markers resolve to nothing", func() {
			_, ok := MarkerAt(text, 14)
			So(ok, ShouldBeFalse)
			_, ok = MarkerAt(text, 32)
			So(ok, ShouldBeFalse)
			_, ok = MarkerAt(text, -1)
			So(ok, ShouldBeFalse)
		})

		Convey("Offsets count runes, not bytes", func() {
			ms, ok := MarkerAt("ünï [00:00:02.000]", 5)
			So(ok, ShouldBeTrue)
			So(ms, ShouldEqual, 2000)
		})

		Convey("Out-of-range fields are ignored", func() {
			_, ok := MarkerAt("[00:75:00.000]", 2)
			So(ok, ShouldBeFalse)
		})

		Convey("The placeholder is not a marker", func() {
			_, ok := MarkerAt(Placeholder, 2)
			So(ok, ShouldBeFalse)
		})
	})
}
