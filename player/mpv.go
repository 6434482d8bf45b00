package player

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/speechmark/speechmark/log"
	"github.com/speechmark/speechmark/where"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	openTimeout       = 5 * time.Second
)

// MPV implements Player using mpv's JSON-IPC protocol. A single mpv process is
// started on the first Open and reused for later files.
type MPV struct {
	binary     string
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when mpv process exits
	mu         sync.Mutex    // serializes socket round trips
	events     *EventListener

	stateMu  sync.Mutex
	paused   bool
	eof      bool
	idle     bool
	stopped  bool
	failed   bool
	loadedCh chan error // receives the outcome of the pending loadfile
}

// NewMPV creates a player backed by the given mpv executable (does not start it).
func NewMPV(binary string) *MPV {
	if binary == "" {
		binary = "mpv"
	}
	return &MPV{
		binary: binary,
		idle:   true,
		exited: make(chan struct{}),
	}
}

// Open loads path into mpv, starting the process if needed, and waits until
// mpv confirms the file opened. The media is left paused at the start.
func (m *MPV) Open(path string) error {
	target, err := sanitizeMediaTarget(path)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if !strings.Contains(target, "://") {
		info, err := os.Stat(target)
		if err != nil {
			return err
		}
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", target)
		}
	}

	if !m.IsRunning() {
		if err := m.start(); err != nil {
			return err
		}
	}

	loaded := make(chan error, 1)
	m.stateMu.Lock()
	m.loadedCh = loaded
	m.failed = false
	m.stopped = false
	m.eof = false
	m.stateMu.Unlock()

	if _, err := m.sendCommand("set_property", "pause", true); err != nil {
		return fmt.Errorf("pause before load: %w", err)
	}

	if _, err := m.sendCommand("loadfile", target, "replace"); err != nil {
		return fmt.Errorf("loadfile: %w", err)
	}

	select {
	case err := <-loaded:
		return err
	case <-m.exited:
		return ErrNotRunning
	case <-time.After(openTimeout):
		return fmt.Errorf("mpv did not open %s within %s", filepath.Base(target), openTimeout)
	}
}

// start launches mpv in idle mode and connects the event listener.
func (m *MPV) start() error {
	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(where.Temp(), fmt.Sprintf("mpv-%x.sock", randomBytes))
	}

	// Only what speechmark depends on; everything else comes from the user's mpv.conf.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		"--force-window=yes",
		"--idle=yes",
		"--keep-open=yes",
		"--pause=yes",
		"--title=speechmark - ${filename}",
	}

	m.cmd = exec.Command(m.binary, args...)
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", m.binary, err)
	}

	exited := make(chan struct{})
	m.exited = exited
	go func(cmd *exec.Cmd) {
		_ = cmd.Wait()
		close(exited)
	}(m.cmd)

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	m.events = NewEventListener(m.socketPath, m.handleEvent)
	if err := m.events.Start(); err != nil {
		return err
	}

	return nil
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// handleEvent folds mpv notifications into the cached playback state.
func (m *MPV) handleEvent(name string, data interface{}) {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()

	switch name {
	case "pause":
		m.paused, _ = data.(bool)
	case "eof-reached":
		m.eof, _ = data.(bool)
	case "idle-active":
		m.idle, _ = data.(bool)
	case "file-loaded":
		m.idle = false
		m.failed = false
		m.resolveLoad(nil)
	case "end-file":
		event, _ := data.(map[string]interface{})
		if reason, _ := event["reason"].(string); reason == "error" {
			m.failed = true
			detail, _ := event["file_error"].(string)
			if detail == "" {
				detail = "unknown error"
			}
			m.resolveLoad(fmt.Errorf("mpv could not open file: %s", detail))
		}
	}
}

func (m *MPV) resolveLoad(err error) {
	if m.loadedCh == nil {
		return
	}
	m.loadedCh <- err
	m.loadedCh = nil
}

// Play resumes playback, rewinding first when the media has ended.
func (m *MPV) Play() error {
	m.stateMu.Lock()
	ended := m.eof
	m.stopped = false
	m.stateMu.Unlock()

	if ended {
		if err := m.SetPosition(0); err != nil {
			return err
		}
	}

	_, err := m.sendCommand("set_property", "pause", false)
	return err
}

// Pause suspends playback.
func (m *MPV) Pause() error {
	_, err := m.sendCommand("set_property", "pause", true)
	return err
}

// Stop pauses and rewinds. mpv's own stop would unload the file, so the media
// stays loaded and State reports StateStopped until the next Play.
func (m *MPV) Stop() error {
	if err := m.Pause(); err != nil {
		return err
	}
	if err := m.SetPosition(0); err != nil && !errors.Is(err, ErrUnavailable) {
		return err
	}

	m.stateMu.Lock()
	m.stopped = true
	m.stateMu.Unlock()
	return nil
}

// Position returns the current playback position in milliseconds.
func (m *MPV) Position() (int64, error) {
	return m.getMillisProperty("time-pos")
}

// SetPosition seeks to an absolute position in milliseconds.
func (m *MPV) SetPosition(ms int64) error {
	_, err := m.sendCommand("seek", float64(ms)/1000, "absolute+exact")
	return err
}

// Duration returns the length of the loaded media in milliseconds.
func (m *MPV) Duration() (int64, error) {
	return m.getMillisProperty("duration")
}

func (m *MPV) Rate() (float64, error) {
	return m.getFloatProperty("speed")
}

func (m *MPV) SetRate(rate float64) error {
	return m.set("speed", rate)
}

func (m *MPV) Volume() (int, error) {
	v, err := m.getFloatProperty("volume")
	return int(math.Round(v)), err
}

func (m *MPV) SetVolume(percent int) error {
	return m.set("volume", percent)
}

func (m *MPV) Muted() (bool, error) {
	data, err := m.sendCommand("get_property", "mute")
	if err != nil {
		return false, err
	}
	muted, ok := data.(bool)
	if !ok {
		return false, fmt.Errorf("property mute: expected bool, got %T", data)
	}
	return muted, nil
}

func (m *MPV) SetMute(muted bool) error {
	return m.set("mute", muted)
}

// State derives the playback state from the observed mpv properties.
func (m *MPV) State() State {
	select {
	case <-m.exited:
		if m.cmd != nil {
			return StateError
		}
		return StateIdle
	default:
	}

	m.stateMu.Lock()
	defer m.stateMu.Unlock()

	switch {
	case m.failed:
		return StateError
	case m.idle:
		return StateIdle
	case m.stopped:
		return StateStopped
	case m.eof:
		return StateEnded
	case m.paused:
		return StatePaused
	default:
		return StatePlaying
	}
}

// IsRunning reports whether mpv is responding to IPC commands.
func (m *MPV) IsRunning() bool {
	if m.socketPath == "" || m.cmd == nil {
		return false
	}

	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.sendCommand("get_property", "pid")
	return err == nil
}

// Close shuts down the mpv process and cleans up resources.
func (m *MPV) Close() error {
	if m.events != nil {
		m.events.Stop()
	}

	if m.socketPath == "" || m.cmd == nil {
		return nil
	}

	_, _ = m.sendCommand("quit")

	select {
	case <-m.exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)

	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

func (m *MPV) set(property string, value interface{}) error {
	_, err := m.sendCommand("set_property", property, value)
	return err
}

func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand("get_property", name)
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, ErrUnavailable
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

func (m *MPV) getMillisProperty(name string) (int64, error) {
	seconds, err := m.getFloatProperty(name)
	if err != nil {
		return 0, err
	}
	return int64(math.Round(seconds * 1000)), nil
}

// sanitizeMediaTarget validates that a path or URL is safe to pass to mpv.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in path")
	}

	// Prevent flag injection: targets must not look like options.
	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("path must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https", "file":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}
