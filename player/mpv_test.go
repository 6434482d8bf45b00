package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// fakeMPV answers IPC requests the way mpv does, broadcasting an unrelated
// event before every reply.
func fakeMPV(t *testing.T, reply func(command []interface{}) map[string]interface{}) string {
	dir, err := os.MkdirTemp("", "sm")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	socket := filepath.Join(dir, "mpv.sock")
	listener, err := net.Listen("unix", socket)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = listener.Close() })

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				scanner := bufio.NewScanner(conn)
				for scanner.Scan() {
					var req ipcCommand
					if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
						return
					}
					_, _ = conn.Write([]byte(`{"event":"audio-reconfig"}` + "\n"))

					resp := reply(req.Command)
					resp["request_id"] = req.RequestID
					line, _ := json.Marshal(resp)
					_, _ = conn.Write(append(line, '\n'))
				}
			}(conn)
		}
	}()

	return socket
}

func TestMPV(t *testing.T) {
	Convey("MPV", t, func() {
		Convey("sendCommand", func() {
			socket := fakeMPV(t, func(command []interface{}) map[string]interface{} {
				switch command[1] {
				case "time-pos":
					return map[string]interface{}{"data": 12.3456, "error": "success"}
				case "duration":
					return map[string]interface{}{"error": "property unavailable"}
				case "speed":
					return map[string]interface{}{"error": "invalid parameter"}
				default:
					return map[string]interface{}{"error": "success"}
				}
			})
			mpv := NewMPV("")
			mpv.socketPath = socket

			Convey("Should skip broadcast events and convert seconds to milliseconds", func() {
				pos, err := mpv.Position()
				So(err, ShouldBeNil)
				So(pos, ShouldEqual, 12346)
			})

			Convey("Should map unavailable properties to ErrUnavailable", func() {
				_, err := mpv.Duration()
				So(errors.Is(err, ErrUnavailable), ShouldBeTrue)
			})

			Convey("Should surface mpv errors without retrying", func() {
				_, err := mpv.Rate()
				var remote *remoteError
				So(errors.As(err, &remote), ShouldBeTrue)
				So(remote.message, ShouldEqual, "invalid parameter")
			})
		})

		Convey("Without a socket commands should fail with ErrNotRunning", func() {
			_, err := NewMPV("mpv").Position()
			So(errors.Is(err, ErrNotRunning), ShouldBeTrue)
		})

		Convey("State", func() {
			mpv := NewMPV("mpv")

			Convey("Should be idle before anything is loaded", func() {
				So(mpv.State(), ShouldEqual, StateIdle)
			})

			Convey("Should follow observed properties", func() {
				mpv.handleEvent("idle-active", false)
				mpv.handleEvent("pause", true)
				So(mpv.State(), ShouldEqual, StatePaused)

				mpv.handleEvent("pause", false)
				So(mpv.State(), ShouldEqual, StatePlaying)

				mpv.handleEvent("eof-reached", true)
				So(mpv.State(), ShouldEqual, StateEnded)
			})

			Convey("Should report load failures", func() {
				loaded := make(chan error, 1)
				mpv.loadedCh = loaded
				mpv.handleEvent("end-file", map[string]interface{}{
					"event":      "end-file",
					"reason":     "error",
					"file_error": "unrecognized file format",
				})

				So(mpv.State(), ShouldEqual, StateError)
				err := <-loaded
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "unrecognized file format")
			})

			Convey("Should resolve a pending load on file-loaded", func() {
				loaded := make(chan error, 1)
				mpv.loadedCh = loaded
				mpv.handleEvent("file-loaded", map[string]interface{}{"event": "file-loaded"})

				So(<-loaded, ShouldBeNil)
				So(mpv.State(), ShouldNotEqual, StateIdle)
			})
		})

		Convey("sanitizeMediaTarget", func() {
			Convey("Should clean local paths", func() {
				target, err := sanitizeMediaTarget("  /videos/../videos/talk.mp4 ")
				So(err, ShouldBeNil)
				So(target, ShouldEqual, "/videos/talk.mp4")
			})

			Convey("Should reject flag-like targets", func() {
				_, err := sanitizeMediaTarget("--script=evil.lua")
				So(err, ShouldNotBeNil)
			})

			Convey("Should reject unknown URL schemes", func() {
				_, err := sanitizeMediaTarget("ftp://example.com/talk.mp4")
				So(err, ShouldNotBeNil)
			})

			Convey("Should accept http URLs", func() {
				target, err := sanitizeMediaTarget("https://example.com/talk.mp4")
				So(err, ShouldBeNil)
				So(target, ShouldEqual, "https://example.com/talk.mp4")
			})
		})
	})
}

func TestState(t *testing.T) {
	Convey("State.Terminal", t, func() {
		So(StatePlaying.Terminal(), ShouldBeFalse)
		So(StatePaused.Terminal(), ShouldBeFalse)
		So(StateStopped.Terminal(), ShouldBeTrue)
		So(StateEnded.Terminal(), ShouldBeTrue)
		So(StateError.String(), ShouldEqual, "error")
	})
}
