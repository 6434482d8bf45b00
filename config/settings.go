package config

import (
	"time"

	"github.com/samber/lo"
	"github.com/speechmark/speechmark/key"
	"github.com/spf13/viper"
)

// Settings is the explicit, typed view of the configuration handed to constructors at startup.
// It is read once with Load and written back with Save at shutdown.
type Settings struct {
	PlayerBinary   string
	PollInterval   time.Duration
	SeekStepMs     int64
	LoopIntervalMs int64
	Volume         int
	Rate           float64

	AutoPause   bool
	WordWrap    bool
	LineNumbers bool

	LastVideo      string
	LastTranscript string

	SaveHistory bool
}

// Load snapshots the current configuration into a Settings value.
func Load() Settings {
	return Settings{
		PlayerBinary:   viper.GetString(key.PlayerBinary),
		PollInterval:   time.Duration(lo.Clamp(viper.GetInt(key.PlayerPollInterval), 10, 5000)) * time.Millisecond,
		SeekStepMs:     viper.GetInt64(key.PlayerSeekStep),
		LoopIntervalMs: viper.GetInt64(key.PlayerLoopInterval),
		Volume:         lo.Clamp(viper.GetInt(key.PlayerVolume), 0, 100),
		Rate:           viper.GetFloat64(key.PlayerRate),

		AutoPause:   viper.GetBool(key.EditorAutoPause),
		WordWrap:    viper.GetBool(key.EditorWordWrap),
		LineNumbers: viper.GetBool(key.EditorLineNumbers),

		LastVideo:      viper.GetString(key.SessionLastVideo),
		LastTranscript: viper.GetString(key.SessionLastTranscript),

		SaveHistory: viper.GetBool(key.HistorySave),
	}
}

// Save writes the user-adjustable parts of s back to the config file.
// Startup-only values such as the player binary and poll interval are left untouched.
func (s Settings) Save() error {
	viper.Set(key.PlayerLoopInterval, int(s.LoopIntervalMs))
	viper.Set(key.PlayerVolume, s.Volume)
	viper.Set(key.PlayerRate, s.Rate)
	viper.Set(key.EditorAutoPause, s.AutoPause)
	viper.Set(key.EditorWordWrap, s.WordWrap)
	viper.Set(key.SessionLastVideo, s.LastVideo)
	viper.Set(key.SessionLastTranscript, s.LastTranscript)

	return Write()
}
