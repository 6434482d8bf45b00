package tui

import (
	"errors"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/speechmark/speechmark/config"
	"github.com/speechmark/speechmark/history"
	"github.com/speechmark/speechmark/internal/ui"
	"github.com/speechmark/speechmark/log"
	"github.com/speechmark/speechmark/playback"
	"github.com/speechmark/speechmark/player"
	"github.com/speechmark/speechmark/style"
	"github.com/speechmark/speechmark/transcript"
	"github.com/speechmark/speechmark/util"
)

// unwrappedWidth is the editor width used while word wrap is off; lines
// longer than the terminal are cut in the view instead of wrapped.
const unwrappedWidth = 4096

// statefulBubble encapsulates the application state, including component models and workflow tracking.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	busy          bool // a media load is running in a tea.Cmd

	keymap *statefulKeymap

	// components
	editorC   textarea.Model
	promptC   textinput.Model
	historyC  list.Model
	spinnerC  spinner.Model
	progressC progress.Model
	helpC     help.Model

	controller *playback.Controller
	session    playback.Session
	events     chan playback.Event
	document   *transcript.Document
	stamper    transcript.Stamper

	prompt        promptKind
	confirm       confirmAction
	loadingStatus string
	resumeAt      int64
	lastError     error

	settings config.Settings
	closed   bool

	width, height int
	notifier      *ui.Model

	options *Options
}

// raiseError records err and switches to the error view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)

	if s == editorState {
		b.editorC.Focus()
	} else {
		b.editorC.Blur()
	}
}

// newState transitions to s, remembering the current state unless it is transient.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if !lo.Contains([]state{loadingState, errorState, confirmState, promptState}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// previousState returns to the last remembered state, which is the editor at the bottom of the stack.
func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
		return
	}
	b.setState(editorState)
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y

	b.historyC.SetSize(width-xx, height-yy)
	b.historyC.Help.Width = width - xx

	b.helpC.Width = b.width
	b.promptC.Width = b.width
	b.progressC.Width = max(10, b.width/3)

	b.applyEditorSize()
}

// applyEditorSize fits the editor between the header and the footer.
func (b *statefulBubble) applyEditorSize() {
	const header, footer = 3, 2

	helpHeight := lipgloss.Height(b.helpC.View(b.keymap))
	b.editorC.SetHeight(max(3, b.height-header-footer-helpHeight))

	if b.settings.WordWrap {
		b.editorC.SetWidth(max(10, b.width))
	} else {
		b.editorC.SetWidth(unwrappedWidth)
	}
}

func newBubble(options *Options) *statefulBubble {
	settings := options.Settings

	p := options.Player
	if p == nil {
		p = player.NewMPV(settings.PlayerBinary)
	}

	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        newStatefulKeymap(),
		controller:    playback.New(p, playback.OptionsFrom(settings)),
		events:        make(chan playback.Event, 32),
		document:      transcript.NewDocument(),
		settings:      settings,
		notifier:      &ui.Model{},
		options:       options,
	}

	bubble.session = bubble.controller.Snapshot()
	bubble.controller.Subscribe(func(e playback.Event) {
		select {
		case bubble.events <- e:
		default:
			log.Warnf("dropping playback event %s", e.Kind)
		}
	})

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	bubble.promptC = textinput.New()
	bubble.promptC.CharLimit = 4096

	bubble.editorC = textarea.New()
	bubble.editorC.Placeholder = "Start typing. ctrl+t inserts a timestamp."
	bubble.editorC.ShowLineNumbers = settings.LineNumbers
	bubble.editorC.CharLimit = 0
	bubble.editorC.MaxHeight = 0
	bubble.editorC.MaxWidth = 0
	bubble.editorC.Prompt = ""
	bubble.editorC.KeyMap.TransposeCharacterBackward.SetEnabled(false)
	bubble.editorC.KeyMap.LowercaseWordForward.SetEnabled(false)
	bubble.editorC.KeyMap.WordBackward.SetKeys("alt+b")
	bubble.editorC.KeyMap.WordForward.SetKeys("alt+f")

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(style.AccentColor).
		Foreground(style.AccentColor).
		Padding(0, 0, 0, 1)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	bubble.historyC = list.New([]list.Item{}, delegate, 0, 0)
	bubble.historyC.KeyMap = bubble.keymap.forList()
	bubble.historyC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
	bubble.historyC.Title = "Recent Sessions"
	bubble.historyC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(style.Yellow).Padding(0, 1)
	bubble.historyC.Styles.NoItems = paddingStyle
	bubble.historyC.SetShowPagination(false)
	bubble.historyC.SetFilteringEnabled(false)
	bubble.historyC.SetStatusBarItemName("session", "sessions")

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	} else {
		bubble.resize(80, 24)
	}

	bubble.setState(editorState)

	return &bubble
}

// openInitialTranscript loads the transcript named on startup. A path that
// does not exist yet becomes the save target of an empty document.
func (b *statefulBubble) openInitialTranscript() error {
	path := b.options.Transcript
	if path == "" {
		return nil
	}

	if err := b.document.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			b.document.SetPath(path)
			return nil
		}
		return err
	}

	b.settings.LastTranscript = path
	setEditorText(&b.editorC, b.document.Text(), 0)
	return nil
}

// shutdown stops playback, records the session, and persists settings. Safe to call twice.
func (b *statefulBubble) shutdown() {
	if b.closed {
		return
	}
	b.closed = true

	session := b.controller.Snapshot()

	if b.settings.SaveHistory && session.Loaded() {
		err := history.Save(history.Entry{
			Video:      session.Media,
			Transcript: b.document.Path(),
			PositionMs: session.PositionMs,
			DurationMs: session.DurationMs,
			UpdatedAt:  time.Now(),
		})
		if err != nil {
			log.Warnf("save history: %v", err)
		}
	}

	b.settings.LoopIntervalMs = b.controller.LoopInterval()
	b.settings.Volume = b.controller.UnmutedVolume()
	b.settings.Rate = session.Rate
	if err := b.settings.Save(); err != nil {
		log.Warnf("save settings: %v", err)
	}

	if err := b.controller.Close(); err != nil {
		log.Warnf("close player: %v", err)
	}
}
