// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 17

// Media Playback - these keys configure the external player and the transport controls.
const (
	PlayerBinary       = "player.binary"
	PlayerPollInterval = "player.poll_interval"
	PlayerSeekStep     = "player.seek_step"
	PlayerLoopInterval = "player.loop_interval"
	PlayerVolume       = "player.volume"
	PlayerRate         = "player.rate"
)

// Transcript Editor - these keys define the editing environment.
const (
	EditorAutoPause   = "editor.auto_pause"
	EditorWordWrap    = "editor.word_wrap"
	EditorLineNumbers = "editor.line_numbers"
)

// Session - these keys remember the most recently used files between runs.
const (
	SessionLastVideo      = "session.last_video"
	SessionLastTranscript = "session.last_transcript"
)

// History Tracking - these keys configure the persistence of resumable sessions.
const (
	HistorySave = "history.save"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)
