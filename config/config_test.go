package config

import (
	"testing"
	"time"

	"github.com/speechmark/speechmark/filesystem"
	"github.com/speechmark/speechmark/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("Should register every defined key", func() {
			So(len(Default), ShouldEqual, key.DefinedFieldsCount)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("player.loop_interval")
			So(result, ShouldEqual, "player_loop_interval")
		})

		Convey("Env should carry the application prefix", func() {
			f := Default[key.PlayerLoopInterval]
			So(f.Env(), ShouldEqual, "SPEECHMARK_PLAYER_LOOP_INTERVAL")
		})
	})
}

func TestSettings(t *testing.T) {
	Convey("Given the default configuration", t, func() {
		So(Setup(), ShouldBeNil)

		Convey("Load should reflect the defaults", func() {
			s := Load()
			So(s.PlayerBinary, ShouldEqual, "mpv")
			So(s.PollInterval, ShouldEqual, 100*time.Millisecond)
			So(s.SeekStepMs, ShouldEqual, 5000)
			So(s.LoopIntervalMs, ShouldEqual, 2000)
			So(s.Volume, ShouldEqual, 50)
			So(s.Rate, ShouldEqual, 1.0)
			So(s.WordWrap, ShouldBeTrue)
		})

		Convey("Out of range values should be clamped", func() {
			viper.Set(key.PlayerVolume, 250)
			viper.Set(key.PlayerPollInterval, 1)
			s := Load()
			So(s.Volume, ShouldEqual, 100)
			So(s.PollInterval, ShouldEqual, 10*time.Millisecond)
			viper.Set(key.PlayerVolume, 50)
			viper.Set(key.PlayerPollInterval, 100)
		})

		Convey("Save should write the session values back", func() {
			s := Load()
			s.LoopIntervalMs = 3500
			s.LastVideo = "/videos/interview.mp4"
			s.AutoPause = true

			So(s.Save(), ShouldBeNil)
			So(viper.GetInt(key.PlayerLoopInterval), ShouldEqual, 3500)
			So(viper.GetString(key.SessionLastVideo), ShouldEqual, "/videos/interview.mp4")
			So(viper.GetBool(key.EditorAutoPause), ShouldBeTrue)

			reloaded := Load()
			So(reloaded.LoopIntervalMs, ShouldEqual, 3500)
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		So(Setup(), ShouldBeNil)
		f := Default[key.PlayerSeekStep]

		Convey("It is unchanged while the default applies", func() {
			So(f.Changed(), ShouldBeFalse)
		})

		Convey("It reports an override as changed", func() {
			viper.Set(key.PlayerSeekStep, 2500)
			So(f.Changed(), ShouldBeTrue)
			So(f.Pretty(), ShouldContainSubstring, "(changed)")
			viper.Set(key.PlayerSeekStep, 5000)
		})

		Convey("MarshalJSON includes the env name and type", func() {
			data, err := f.MarshalJSON()
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `"env":"SPEECHMARK_PLAYER_SEEK_STEP"`)
			So(string(data), ShouldContainSubstring, `"type":"int"`)
		})
	})
}
