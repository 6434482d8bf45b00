package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/speechmark/speechmark/history"
	"github.com/speechmark/speechmark/icon"
	"github.com/speechmark/speechmark/internal/ui"
	"github.com/speechmark/speechmark/log"
	"github.com/speechmark/speechmark/playback"
	"github.com/speechmark/speechmark/recent"
	"github.com/speechmark/speechmark/timecode"
	"github.com/speechmark/speechmark/util"
)

// loadTimeout bounds a whole media load including the duration probes.
const loadTimeout = 15 * time.Second

type tickMsg time.Time

type videoLoadedMsg struct {
	path string
	err  error
}

// tick schedules the next playback poll.
func (b *statefulBubble) tick() tea.Cmd {
	return tea.Tick(b.settings.PollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// onTick polls the controller unless a load owns it, then reports queued playback events.
func (b *statefulBubble) onTick() tea.Cmd {
	cmds := []tea.Cmd{b.tick()}

	if b.busy {
		return tea.Batch(cmds...)
	}

	b.session = b.controller.Tick()

	for {
		select {
		case e := <-b.events:
			cmds = append(cmds, b.onPlaybackEvent(e))
		default:
			return tea.Batch(cmds...)
		}
	}
}

func (b *statefulBubble) onPlaybackEvent(e playback.Event) tea.Cmd {
	switch e.Kind {
	case playback.EventEnded:
		return ui.Notify(ui.Info, icon.Get(icon.Stop)+" End of media")
	case playback.EventError:
		var openErr *playback.OpenError
		if errors.As(e.Err, &openErr) {
			// Reported by the load itself.
			return nil
		}
		return ui.Notify(ui.Failure, fmt.Sprintf("%s Player error: %v", icon.Get(icon.Fail), e.Err))
	case playback.EventLoopArmed:
		return ui.Notify(ui.Info, fmt.Sprintf(
			"%s Looping %s - %s",
			icon.Get(icon.Loop),
			timecode.Format(e.Session.LoopStartMs),
			timecode.Format(e.Session.LoopEndMs),
		))
	case playback.EventLoopDisarmed:
		return ui.Notify(ui.Info, "Loop off")
	default:
		return nil
	}
}

// loadVideo opens path in a tea.Cmd. The controller is not touched by ticks until it finishes.
func (b *statefulBubble) loadVideo(path string, at int64) tea.Cmd {
	b.loadingStatus = fmt.Sprintf("Opening %s", filepath.Base(path))
	b.busy = true
	b.newState(loadingState)

	controller := b.controller
	load := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		return videoLoadedMsg{path: path, err: controller.Load(ctx, path, at)}
	}

	return tea.Batch(b.spinnerC.Tick, load)
}

func (b *statefulBubble) onVideoLoaded(msg videoLoadedMsg) tea.Cmd {
	b.busy = false
	b.session = b.controller.Snapshot()
	b.previousState()

	if msg.err != nil {
		b.raiseError(msg.err)
		return nil
	}

	b.settings.LastVideo = msg.path
	b.remember(recent.Video, msg.path)
	return ui.Notify(ui.Success, fmt.Sprintf("%s Loaded %s", icon.Get(icon.Video), filepath.Base(msg.path)))
}

// notifyErr turns an action error into a status message.
func (b *statefulBubble) notifyErr(err error) tea.Cmd {
	if err == nil {
		return nil
	}

	if errors.Is(err, playback.ErrNoMedia) {
		return ui.Notify(ui.Warning, icon.Get(icon.Warn)+" No video loaded. Open one with ctrl+o")
	}

	log.Warn(err)
	return ui.Notify(ui.Failure, fmt.Sprintf("%s %v", icon.Get(icon.Fail), err))
}

// act runs a transport action and refreshes the displayed session.
func (b *statefulBubble) act(action func() error) tea.Cmd {
	err := action()
	b.session = b.controller.Snapshot()
	return b.notifyErr(err)
}

// syncDocument copies edits made in the editor into the document. The textarea
// shows tabs as spaces, so only the edited span is taken from the editor.
func (b *statefulBubble) syncDocument() {
	text := b.document.Text()
	before, after := shown(text), b.editorC.Value()
	if before == after {
		return
	}

	if len(text) == len(before) {
		b.document.SetText(after)
		return
	}
	b.document.SetText(applyEdit(text, before, after))
}

// insertTimestamp writes the next marker of the start/end pair at the current playback time.
func (b *statefulBubble) insertTimestamp() tea.Cmd {
	ms, err := b.controller.CurrentTime()
	if err != nil {
		return b.notifyErr(err)
	}

	b.syncDocument()
	runes := []rune(b.document.Text())
	cursor := b.stamper.Trigger(b.document, textOffset(runes, cursorOffset(&b.editorC), false), ms)
	setEditorText(&b.editorC, b.document.Text(), cursor)
	return nil
}

// seekToMarker seeks to the timestamp under or right before the cursor.
func (b *statefulBubble) seekToMarker() tea.Cmd {
	text := b.editorC.Value()
	offset := cursorOffset(&b.editorC)

	ms, ok := timecode.MarkerAt(text, offset)
	if !ok {
		ms, ok = timecode.MarkerAt(text, offset-1)
	}
	if !ok {
		return ui.Notify(ui.Warning, "No timestamp under the cursor")
	}

	return b.act(func() error { return b.controller.Seek(ms) })
}

func (b *statefulBubble) save() tea.Cmd {
	b.syncDocument()
	if b.document.Path() == "" {
		return b.openPrompt(promptSaveAs)
	}
	return b.saveAs(b.document.Path())
}

func (b *statefulBubble) saveAs(path string) tea.Cmd {
	b.syncDocument()
	if err := b.document.SaveAs(path); err != nil {
		return b.notifyErr(err)
	}

	b.settings.LastTranscript = path
	b.remember(recent.Transcript, path)
	return ui.Notify(ui.Success, fmt.Sprintf("%s Saved %s", icon.Get(icon.Save), filepath.Base(path)))
}

func (b *statefulBubble) openTranscript(path string) tea.Cmd {
	if err := b.document.Load(path); err != nil {
		return b.notifyErr(err)
	}

	b.stamper.Reset()
	b.settings.LastTranscript = path
	b.remember(recent.Transcript, path)
	setEditorText(&b.editorC, b.document.Text(), 0)
	return ui.Notify(ui.Success, fmt.Sprintf("%s Opened %s", icon.Get(icon.Transcript), filepath.Base(path)))
}

func (b *statefulBubble) clearTranscript() tea.Cmd {
	b.document.Clear()
	b.stamper.Reset()
	setEditorText(&b.editorC, "", 0)
	return ui.Notify(ui.Info, "New transcript")
}

// guardUnsaved runs the action right away, or asks first when the transcript has unsaved changes.
func (b *statefulBubble) guardUnsaved(action confirmAction) tea.Cmd {
	b.syncDocument()
	if b.document.Modified() {
		b.confirm = action
		b.newState(confirmState)
		return nil
	}
	return b.runConfirmed(action)
}

func (b *statefulBubble) runConfirmed(action confirmAction) tea.Cmd {
	switch action {
	case confirmQuit:
		b.shutdown()
		return tea.Quit
	case confirmClear:
		b.previousState()
		return b.clearTranscript()
	case confirmOpenTranscript:
		b.previousState()
		return b.openPrompt(promptTranscript)
	default:
		return nil
	}
}

func (b *statefulBubble) remember(kind recent.Kind, path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if err := recent.Remember(kind, path); err != nil {
		log.Warnf("remember %s path: %v", kind, err)
	}
}

// openPrompt asks for a path or value, prefilled with a sensible default.
func (b *statefulBubble) openPrompt(kind promptKind) tea.Cmd {
	b.prompt = kind
	b.promptC.Reset()
	b.promptC.ShowSuggestions = kind != promptLoopInterval
	b.promptC.SetSuggestions(nil)

	switch kind {
	case promptVideo:
		b.promptC.Prompt = "Video: "
		b.promptC.Placeholder = "path to a video or audio file"
		b.promptC.SetSuggestions(recent.Paths(recent.Video))
		b.promptC.SetValue(filepath.Dir(b.session.Media) + string(filepath.Separator))
		if b.session.Media == "" {
			b.promptC.SetValue("")
		}
	case promptTranscript:
		b.promptC.Prompt = "Transcript: "
		b.promptC.Placeholder = "path to a text file"
		b.promptC.SetSuggestions(recent.Paths(recent.Transcript))
		b.promptC.SetValue(b.document.Path())
	case promptSaveAs:
		b.promptC.Prompt = "Save as: "
		b.promptC.Placeholder = "path to a text file"
		b.promptC.SetSuggestions(recent.Paths(recent.Transcript))
		switch {
		case b.document.Path() != "":
			b.promptC.SetValue(b.document.Path())
		case b.session.Media != "":
			b.promptC.SetValue(util.ReplaceExt(b.session.Media, "txt"))
		}
	case promptLoopInterval:
		b.promptC.Prompt = "Loop length: "
		b.promptC.Placeholder = "seconds, e.g. 2.5, or a duration like 1500ms"
		b.promptC.SetValue(strconv.FormatFloat(float64(b.controller.LoopInterval())/1000, 'f', -1, 64))
	}

	b.promptC.CursorEnd()
	b.newState(promptState)
	return b.promptC.Focus()
}

func (b *statefulBubble) submitPrompt() tea.Cmd {
	value := strings.TrimSpace(b.promptC.Value())
	b.promptC.Blur()
	b.previousState()

	if value == "" {
		return nil
	}

	switch b.prompt {
	case promptVideo:
		return b.loadVideo(value, 0)
	case promptTranscript:
		return b.openTranscript(value)
	case promptSaveAs:
		return b.saveAs(value)
	case promptLoopInterval:
		interval, err := parseInterval(value)
		if err != nil {
			return b.notifyErr(err)
		}
		b.controller.SetLoopInterval(interval.Milliseconds())
		b.settings.LoopIntervalMs = b.controller.LoopInterval()
		return ui.Notify(ui.Info, fmt.Sprintf("%s Loop length %s", icon.Get(icon.Loop), timecode.Format(b.controller.LoopInterval())))
	default:
		return nil
	}
}

// parseInterval accepts plain seconds or a Go duration string.
func parseInterval(value string) (time.Duration, error) {
	if d, err := time.ParseDuration(value); err == nil {
		return d, nil
	}

	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil || seconds < 0 {
		return 0, fmt.Errorf("invalid loop length %q", value)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// openHistory lists the saved sessions.
func (b *statefulBubble) openHistory() tea.Cmd {
	entries, err := history.Sorted()
	if err != nil {
		return b.notifyErr(err)
	}

	items := make([]list.Item, len(entries))
	for i, entry := range entries {
		items[i] = &listItem{entry: entry}
	}

	b.newState(historyState)
	return b.historyC.SetItems(items)
}

// resume reopens a saved session: its transcript first, then the video at the saved position.
func (b *statefulBubble) resume(entry *history.Entry) tea.Cmd {
	b.syncDocument()
	if b.document.Modified() {
		return ui.Notify(ui.Warning, icon.Get(icon.Warn)+" Save or clear the current transcript first")
	}

	var cmds []tea.Cmd
	if entry.Transcript != "" {
		cmds = append(cmds, b.openTranscript(entry.Transcript))
	}

	b.previousState()
	cmds = append(cmds, b.loadVideo(entry.Video, entry.PositionMs))
	return tea.Batch(cmds...)
}
