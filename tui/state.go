package tui

type state int

const (
	editorState state = iota
	promptState
	confirmState
	loadingState
	historyState
	errorState
)

// promptKind is what the text prompt is asking for.
type promptKind int

const (
	promptVideo promptKind = iota
	promptTranscript
	promptSaveAs
	promptLoopInterval
)

// confirmAction is what runs once the user agrees to discard unsaved changes.
type confirmAction int

const (
	confirmQuit confirmAction = iota
	confirmClear
	confirmOpenTranscript
)
