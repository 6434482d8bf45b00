package where

import (
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/speechmark/speechmark/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Config() honours the override variable", func() {
			t.Setenv(EnvConfigPath, "/custom/speechmark")
			So(Config(), ShouldEqual, "/custom/speechmark")
			So(lo.Must(filesystem.API().IsDir("/custom/speechmark")), ShouldBeTrue)
		})

		Convey("Logs()", func() {
			path := Logs()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("History() lives in the cache directory", func() {
			So(filepath.Dir(History()), ShouldEqual, Cache())
		})

		Convey("Temp()", func() {
			So(lo.Must(filesystem.API().IsDir(Temp())), ShouldBeTrue)
		})
	})
}

func TestCacheFiles(t *testing.T) {
	Convey("Files kept in the cache directory", t, func() {
		for name, path := range map[string]string{
			"history": History(),
			"recent":  Recent(),
		} {
			So(filepath.Dir(path), ShouldEqual, Cache())
			So(filepath.Ext(path), ShouldEqual, ".json")
			So(filepath.Base(path), ShouldStartWith, name)
		}

		So(History(), ShouldNotEqual, Recent())
	})
}
