package ui

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given a notifier", t, func() {
		m := &Model{}

		Convey("When a notification arrives", func() {
			cmd := m.Update(Notify(Success, "Saved")())

			Convey("Then it should be visible with a clear scheduled", func() {
				So(m.Text(), ShouldEqual, "Saved")
				So(cmd, ShouldNotBeNil)
			})

			Convey("Then its own clear message should hide it", func() {
				m.Update(ClearNotificationMsg{id: m.id})
				So(m.Text(), ShouldBeEmpty)
				So(m.View(), ShouldBeEmpty)
			})

			Convey("Then a stale clear should not hide a newer notification", func() {
				stale := m.id
				m.Update(NotifyMsg{Text: "Loop armed"})
				m.Update(ClearNotificationMsg{id: stale})
				So(m.Text(), ShouldEqual, "Loop armed")
			})
		})
	})
}
