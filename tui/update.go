package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/speechmark/speechmark/history"
	"github.com/speechmark/speechmark/icon"
	"github.com/speechmark/speechmark/internal/ui"
	"github.com/speechmark/speechmark/player"
)

// volumeStep is the volume change per keypress, in percent.
const volumeStep = 10

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.NotifyMsg, ui.ClearNotificationMsg:
		return b, b.notifier.Update(msg)
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil
	case tickMsg:
		return b, b.onTick()
	case videoLoadedMsg:
		return b, b.onVideoLoaded(msg)
	case spinner.TickMsg:
		if b.state != loadingState {
			return b, nil
		}
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	case tea.KeyMsg:
		if key.Matches(msg, b.keymap.forceQuit) {
			b.shutdown()
			return b, tea.Quit
		}
	}

	switch b.state {
	case editorState:
		return b.updateEditor(msg)
	case promptState:
		return b.updatePrompt(msg)
	case confirmState:
		return b.updateConfirm(msg)
	case historyState:
		return b.updateHistory(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, nil
}

func (b *statefulBubble) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, b.keymap.quit):
			return b, b.guardUnsaved(confirmQuit)
		case key.Matches(msg, b.keymap.playPause):
			return b, b.act(b.controller.TogglePlay)
		case key.Matches(msg, b.keymap.stop):
			return b, b.act(b.controller.Stop)
		case key.Matches(msg, b.keymap.seekBack):
			return b, b.act(func() error { return b.controller.SeekRelative(-b.controller.SeekStep()) })
		case key.Matches(msg, b.keymap.seekForward):
			return b, b.act(func() error { return b.controller.SeekRelative(b.controller.SeekStep()) })
		case key.Matches(msg, b.keymap.volumeUp):
			return b, b.act(func() error { return b.controller.ChangeVolume(volumeStep) })
		case key.Matches(msg, b.keymap.volumeDown):
			return b, b.act(func() error { return b.controller.ChangeVolume(-volumeStep) })
		case key.Matches(msg, b.keymap.mute):
			return b, b.act(b.controller.ToggleMute)
		case key.Matches(msg, b.keymap.rateUp):
			return b, b.act(func() error { return b.controller.StepRate(1) })
		case key.Matches(msg, b.keymap.rateDown):
			return b, b.act(func() error { return b.controller.StepRate(-1) })
		case key.Matches(msg, b.keymap.loop):
			return b, b.act(b.controller.ToggleLoop)
		case key.Matches(msg, b.keymap.loopInterval):
			return b, b.openPrompt(promptLoopInterval)
		case key.Matches(msg, b.keymap.stamp):
			return b, b.insertTimestamp()
		case key.Matches(msg, b.keymap.seekMarker):
			return b, b.seekToMarker()
		case key.Matches(msg, b.keymap.save):
			return b, b.save()
		case key.Matches(msg, b.keymap.saveAs):
			return b, b.openPrompt(promptSaveAs)
		case key.Matches(msg, b.keymap.openVideo):
			return b, b.openPrompt(promptVideo)
		case key.Matches(msg, b.keymap.openTranscript):
			return b, b.guardUnsaved(confirmOpenTranscript)
		case key.Matches(msg, b.keymap.clear):
			return b, b.guardUnsaved(confirmClear)
		case key.Matches(msg, b.keymap.toggleWrap):
			b.settings.WordWrap = !b.settings.WordWrap
			b.applyEditorSize()
			return b, ui.Notify(ui.Info, fmt.Sprintf("Word wrap %s", onOff(b.settings.WordWrap)))
		case key.Matches(msg, b.keymap.toggleAutoPause):
			b.settings.AutoPause = !b.settings.AutoPause
			return b, ui.Notify(ui.Info, fmt.Sprintf("Auto pause %s", onOff(b.settings.AutoPause)))
		case key.Matches(msg, b.keymap.history):
			return b, b.openHistory()
		case key.Matches(msg, b.keymap.showHelp):
			b.helpC.ShowAll = !b.helpC.ShowAll
			b.applyEditorSize()
			return b, nil
		}

		if b.settings.AutoPause && editsText(msg) && b.session.State == player.StatePlaying {
			_ = b.controller.Pause()
			b.session = b.controller.Snapshot()
		}
	}

	var cmd tea.Cmd
	b.editorC, cmd = b.editorC.Update(msg)
	b.syncDocument()
	return b, cmd
}

// editsText reports whether the key changes the transcript rather than moving around in it.
func editsText(msg tea.KeyMsg) bool {
	if msg.Alt {
		return false
	}

	return lo.Contains([]tea.KeyType{
		tea.KeyRunes,
		tea.KeySpace,
		tea.KeyEnter,
		tea.KeyBackspace,
		tea.KeyDelete,
		tea.KeyTab,
	}, msg.Type)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func (b *statefulBubble) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, b.keymap.confirm):
			return b, b.submitPrompt()
		case key.Matches(msg, b.keymap.cancel):
			b.promptC.Blur()
			b.previousState()
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.promptC, cmd = b.promptC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, b.keymap.yes):
			return b, b.runConfirmed(b.confirm)
		case key.Matches(msg, b.keymap.no):
			b.previousState()
		}
	}

	return b, nil
}

func (b *statefulBubble) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		case key.Matches(msg, b.keymap.confirm):
			item, ok := b.historyC.SelectedItem().(*listItem)
			if !ok {
				return b, nil
			}
			return b, b.resume(item.entry)
		case key.Matches(msg, b.keymap.remove):
			item, ok := b.historyC.SelectedItem().(*listItem)
			if !ok {
				return b, nil
			}
			if err := history.Remove(item.entry.Video); err != nil {
				return b, b.notifyErr(err)
			}
			b.historyC.RemoveItem(b.historyC.Index())
			return b, ui.Notify(ui.Info, fmt.Sprintf("%s Removed %s", icon.Get(icon.Success), item.entry.Name()))
		}
	}

	var cmd tea.Cmd
	b.historyC, cmd = b.historyC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, b.keymap.back):
			b.lastError = nil
			b.previousState()
		case key.Matches(msg, b.keymap.quit):
			b.shutdown()
			return b, tea.Quit
		}
	}

	return b, nil
}
