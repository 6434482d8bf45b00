package icon

// Icon identifies a UI symbol in the registry.
type Icon int

const (
	Fail Icon = iota
	Success
	Progress
	Warn
	Play
	Pause
	Stop
	Loop
	Mute
	Volume
	Marker
	Save
	Video
	Transcript
)

var icons = map[Icon]*iconDef{
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "x",
		kaomoji: "(╥﹏╥)",
		squares: "🟥",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "~",
		kaomoji: "(・_・ヾ",
		squares: "🟦",
	},
	Warn: {
		emoji:   "⚠️",
		nerd:    "",
		plain:   "!",
		kaomoji: "(・・;)",
		squares: "🟨",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "(•̀ᴗ•́)و",
		squares: "🟩",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "||",
		kaomoji: "(￣o￣) zzZ",
		squares: "🟨",
	},
	Stop: {
		emoji:   "⏹️",
		nerd:    "",
		plain:   "[]",
		kaomoji: "(－‸ლ)",
		squares: "🟥",
	},
	Loop: {
		emoji:   "🔁",
		nerd:    "",
		plain:   "@",
		kaomoji: "(@_@)",
		squares: "🟪",
	},
	Mute: {
		emoji:   "🔇",
		nerd:    "",
		plain:   "m",
		kaomoji: "(-_-)",
		squares: "⬛",
	},
	Volume: {
		emoji:   "🔊",
		nerd:    "",
		plain:   "v",
		kaomoji: "(°o°)",
		squares: "⬜",
	},
	Marker: {
		emoji:   "📍",
		nerd:    "",
		plain:   "#",
		kaomoji: "(•_•)✎",
		squares: "🟧",
	},
	Save: {
		emoji:   "💾",
		nerd:    "",
		plain:   "s",
		kaomoji: "(｀_´)ゞ",
		squares: "🟦",
	},
	Video: {
		emoji:   "🎞️",
		nerd:    "",
		plain:   "*",
		kaomoji: "(⌐■_■)",
		squares: "🟫",
	},
	Transcript: {
		emoji:   "📝",
		nerd:    "",
		plain:   "=",
		kaomoji: "φ(．．)",
		squares: "⬜",
	},
}
