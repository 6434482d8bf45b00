package recent

import (
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/speechmark/speechmark/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestRecent(t *testing.T) {
	Convey("Given no remembered paths", t, func() {
		So(Forget(), ShouldBeNil)
		So(Paths(Video), ShouldBeEmpty)

		Convey("Paths used more often should come first", func() {
			So(Remember(Video, "/media/a.mp4"), ShouldBeNil)
			So(Remember(Video, "/media/b.mp4"), ShouldBeNil)
			So(Remember(Video, "/media/b.mp4"), ShouldBeNil)

			So(Paths(Video), ShouldResemble, []string{"/media/b.mp4", "/media/a.mp4"})
		})

		Convey("Kinds should be kept apart", func() {
			So(Remember(Transcript, "/notes/a.txt"), ShouldBeNil)
			So(Paths(Video), ShouldBeEmpty)
			So(Paths(Transcript), ShouldResemble, []string{"/notes/a.txt"})
		})

		Convey("Paths should be cleaned and blanks ignored", func() {
			So(Remember(Video, "  /media/../media/c.mp4 "), ShouldBeNil)
			So(Remember(Video, "   "), ShouldBeNil)
			So(Paths(Video), ShouldResemble, []string{"/media/c.mp4"})
		})

		Convey("Only the most used paths should be kept", func() {
			So(Remember(Video, "/media/favourite.mp4"), ShouldBeNil)
			So(Remember(Video, "/media/favourite.mp4"), ShouldBeNil)
			for i := 0; i < MaxPaths+5; i++ {
				So(Remember(Video, fmt.Sprintf("/media/%02d.mp4", i)), ShouldBeNil)
			}

			paths := Paths(Video)
			So(len(paths), ShouldEqual, MaxPaths)
			So(paths[0], ShouldEqual, "/media/favourite.mp4")
		})
	})
}
