package filesystem

import (
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			fs := API()
			So(fs, ShouldNotBeNil)
			So(fs.Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			fs := API()
			So(fs, ShouldNotBeNil)
			So(fs.Name(), ShouldEqual, "MemMapFS")
		})
	})
}

func TestWriteAtomic(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		SetMemMapFs()

		Convey("WriteAtomic creates missing directories", func() {
			So(WriteAtomic("/notes/a/b.txt", []byte("hello"), 0644), ShouldBeNil)
			So(string(lo.Must(API().ReadFile("/notes/a/b.txt"))), ShouldEqual, "hello")
		})

		Convey("WriteAtomic replaces existing contents and leaves no temporary file", func() {
			So(WriteAtomic("/notes/c.txt", []byte("first"), 0644), ShouldBeNil)
			So(WriteAtomic("/notes/c.txt", []byte("second"), 0644), ShouldBeNil)
			So(string(lo.Must(API().ReadFile("/notes/c.txt"))), ShouldEqual, "second")
			So(lo.Must(API().Exists("/notes/c.txt.tmp")), ShouldBeFalse)
		})
	})
}
