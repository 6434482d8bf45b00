package tui

import (
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/speechmark/speechmark/config"
	"github.com/speechmark/speechmark/filesystem"
	"github.com/speechmark/speechmark/internal/ui"
	"github.com/speechmark/speechmark/player"
	"github.com/speechmark/speechmark/player/playertest"
)

const testVideo = "/media/talk.mp4"

func init() {
	filesystem.SetMemMapFs()
}

func newTestBubble(autoPause bool) (*statefulBubble, *playertest.Fake) {
	fake := playertest.New(60000)
	b := newBubble(&Options{
		Settings: config.Settings{
			PollInterval:   100 * time.Millisecond,
			SeekStepMs:     5000,
			LoopIntervalMs: 2000,
			Volume:         80,
			Rate:           1,
			AutoPause:      autoPause,
			WordWrap:       true,
		},
		Player: fake,
	})
	return b, fake
}

func loadTestVideo(b *statefulBubble) {
	b.loadVideo(testVideo, 0)
	err := b.controller.Load(context.Background(), testVideo, 0)
	b.Update(videoLoadedMsg{path: testVideo, err: err})
}

func ctrl(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func alt(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEditorCursor(t *testing.T) {
	Convey("Given a textarea", t, func() {
		ta := textarea.New()
		ta.SetWidth(80)
		ta.SetHeight(10)
		ta.CharLimit = 0

		Convey("The cursor offset should survive a text replacement", func() {
			text := "first line\nsecond\nthird"
			setEditorText(&ta, text, 14)
			So(ta.Line(), ShouldEqual, 1)
			So(cursorOffset(&ta), ShouldEqual, 14)
		})

		Convey("Offsets should count runes", func() {
			text := "héllo\nwörld"
			setEditorText(&ta, text, 8)
			So(cursorOffset(&ta), ShouldEqual, 8)
		})

		Convey("Offsets past the end should clamp to the last line", func() {
			row, col := rowCol("ab\ncd", 99)
			So(row, ShouldEqual, 1)
			So(col, ShouldEqual, 2)
		})
	})
}

func TestBubble(t *testing.T) {
	Convey("Given the annotation workspace", t, func() {
		b, fake := newTestBubble(false)

		Convey("Stamping without a video should leave the transcript alone", func() {
			b.Update(typed("hello"))
			_, cmd := b.Update(ctrl(tea.KeyCtrlT))

			So(b.editorC.Value(), ShouldEqual, "hello")
			So(cmd, ShouldNotBeNil)
			msg, ok := cmd().(ui.NotifyMsg)
			So(ok, ShouldBeTrue)
			So(msg.Level, ShouldEqual, ui.Warning)
		})

		Convey("With a video loaded", func() {
			loadTestVideo(b)
			So(b.state, ShouldEqual, editorState)
			So(b.session.Loaded(), ShouldBeTrue)
			So(b.settings.LastVideo, ShouldEqual, testVideo)

			Convey("Two stamps should write a start and end pair at the line start", func() {
				b.Update(typed("hello"))
				fake.Advance(1500)
				b.Update(ctrl(tea.KeyCtrlT))
				fake.Advance(1700)
				b.Update(ctrl(tea.KeyCtrlT))

				So(b.editorC.Value(), ShouldEqual, "[00:00:01.500]-[00:00:03.200] hello")
				So(b.document.Text(), ShouldEqual, b.editorC.Value())
				So(b.document.Modified(), ShouldBeTrue)
				So(cursorOffset(&b.editorC), ShouldEqual, len("[00:00:01.500]-[00:00:03.200] hello"))
			})

			Convey("Going to a timestamp should seek the player", func() {
				setEditorText(&b.editorC, "[00:00:10.000]-[00:00:12.000] hi", 3)
				b.Update(ctrl(tea.KeyCtrlG))

				pos, err := fake.Position()
				So(err, ShouldBeNil)
				So(pos, ShouldEqual, 10000)
			})

			Convey("Setting the loop length should go through the prompt", func() {
				b.Update(alt('l'))
				So(b.state, ShouldEqual, promptState)

				b.promptC.SetValue("3")
				b.Update(ctrl(tea.KeyEnter))

				So(b.state, ShouldEqual, editorState)
				So(b.controller.LoopInterval(), ShouldEqual, 3000)
			})

			Convey("Play and pause should toggle the player", func() {
				b.Update(ctrl(tea.KeyCtrlAt))
				So(fake.State(), ShouldEqual, player.StatePlaying)

				b.Update(ctrl(tea.KeyCtrlAt))
				So(fake.State(), ShouldEqual, player.StatePaused)
			})
		})

		Convey("Quitting with unsaved changes should ask first", func() {
			b.Update(typed("draft"))
			_, cmd := b.Update(ctrl(tea.KeyCtrlQ))

			So(cmd, ShouldBeNil)
			So(b.state, ShouldEqual, confirmState)
			So(b.confirm, ShouldEqual, confirmQuit)

			Convey("Declining should return to the editor with the text intact", func() {
				b.Update(typed("n"))
				So(b.state, ShouldEqual, editorState)
				So(b.editorC.Value(), ShouldEqual, "draft")
			})
		})

		Convey("Clearing an unmodified transcript should not ask", func() {
			b.Update(alt('n'))
			So(b.state, ShouldEqual, editorState)
		})
	})
}

func TestTabs(t *testing.T) {
	Convey("Given a transcript containing tabs", t, func() {
		b, _ := newTestBubble(false)
		So(filesystem.API().WriteFile("/tabs.txt", []byte("a\tb\n"), 0644), ShouldBeNil)
		b.openTranscript("/tabs.txt")

		Convey("Opening it should not mark it modified", func() {
			b.syncDocument()
			So(b.editorC.Value(), ShouldEqual, "a    b\n")
			So(b.document.Text(), ShouldEqual, "a\tb\n")
			So(b.document.Modified(), ShouldBeFalse)
		})

		Convey("Saving it should write the tabs back", func() {
			b.saveAs("/tabs-copy.txt")
			data, err := filesystem.API().ReadFile("/tabs-copy.txt")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "a\tb\n")
		})

		Convey("Typing elsewhere should keep the tab", func() {
			b.Update(typed("x"))
			So(b.editorC.Value(), ShouldEqual, "xa    b\n")
			So(b.document.Text(), ShouldEqual, "xa\tb\n")
			So(b.document.Modified(), ShouldBeTrue)
		})
	})

	Convey("applyEdit", t, func() {
		Convey("Should replace an edited tab with what the editor shows", func() {
			So(applyEdit("a\tb", "a    b", "a  x  b"), ShouldEqual, "a  x  b")
		})

		Convey("Should keep tabs around a deletion", func() {
			So(applyEdit("\tab\t", "    ab    ", "    a    "), ShouldEqual, "\ta\t")
		})

		Convey("Offsets should map through expanded tabs", func() {
			text := []rune("\tab")
			So(shownOffset(text, 2), ShouldEqual, 5)
			So(textOffset(text, 5, false), ShouldEqual, 2)
			So(textOffset(text, 2, false), ShouldEqual, 0)
			So(textOffset(text, 2, true), ShouldEqual, 1)
		})
	})
}

func TestAutoPause(t *testing.T) {
	Convey("Given auto pause is on and the video is playing", t, func() {
		b, fake := newTestBubble(true)
		loadTestVideo(b)
		b.Update(ctrl(tea.KeyCtrlAt))
		So(fake.State(), ShouldEqual, player.StatePlaying)

		Convey("Typing should pause playback", func() {
			b.Update(typed("a"))
			So(fake.State(), ShouldEqual, player.StatePaused)
			So(b.editorC.Value(), ShouldEqual, "a")
		})

		Convey("Moving the cursor should not", func() {
			b.Update(ctrl(tea.KeyLeft))
			So(fake.State(), ShouldEqual, player.StatePlaying)
		})
	})
}

func TestParseInterval(t *testing.T) {
	Convey("parseInterval", t, func() {
		Convey("Should accept seconds", func() {
			d, err := parseInterval("2.5")
			So(err, ShouldBeNil)
			So(d, ShouldEqual, 2500*time.Millisecond)
		})

		Convey("Should accept durations", func() {
			d, err := parseInterval("1500ms")
			So(err, ShouldBeNil)
			So(d, ShouldEqual, 1500*time.Millisecond)
		})

		Convey("Should reject garbage", func() {
			_, err := parseInterval("soon")
			So(err, ShouldNotBeNil)

			_, err = parseInterval("-1")
			So(err, ShouldNotBeNil)
		})
	})
}
