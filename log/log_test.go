package log

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/speechmark/speechmark/filesystem"
	"github.com/speechmark/speechmark/key"
	"github.com/speechmark/speechmark/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)

		Convey("Emissions are dropped", func() {
			So(Enabled(), ShouldBeFalse)
			So(WithFields(logrus.Fields{"a": 1}).Logger.Out, ShouldNotBeNil)
			Infof("nothing %d", 1)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		So(Setup(), ShouldBeNil)

		Convey("The daily log file is created and written to", func() {
			Infof("loaded %s", "interview.mp4")
			path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
			So(lo.Must(filesystem.API().Exists(path)), ShouldBeTrue)

			content := string(lo.Must(filesystem.API().ReadFile(path)))
			So(content, ShouldContainSubstring, "loaded interview.mp4")
			So(logrus.GetLevel(), ShouldEqual, logrus.DebugLevel)
		})

		Reset(func() {
			viper.Set(key.LogsWrite, false)
			viper.Set(key.LogsLevel, "info")
		})
	})
}
