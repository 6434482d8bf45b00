// Package config registers the configuration fields of speechmark and loads them through viper.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/speechmark/speechmark/color"
	"github.com/speechmark/speechmark/constant"
	"github.com/speechmark/speechmark/key"
	"github.com/speechmark/speechmark/style"
	"github.com/spf13/viper"
)

// Field is a configuration key with its default value.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty renders the field for `config info`.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env is the environment variable that overrides the field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.Speechmark + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Changed reports whether the effective value differs from the default.
func (f *Field) Changed() bool {
	return fmt.Sprint(viper.Get(f.Key)) != fmt.Sprint(f.Value)
}

func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Env         string `json:"env"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Type        string `json:"type"`
		Description string `json:"description"`
	}{
		Key:         f.Key,
		Env:         f.Env(),
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Type:        reflect.TypeOf(f.Value).String(),
		Description: f.Description,
	})
}

// Default holds every registered field by key.
var Default = make(map[string]Field)

// EnvExposed lists the keys bound to environment variables.
var EnvExposed []string

func register(k string, v any, desc string) {
	if _, exists := Default[k]; exists {
		panic("duplicate config key: " + k)
	}
	Default[k] = Field{Key: k, Value: v, Description: desc}
	EnvExposed = append(EnvExposed, k)
}

func init() {
	// player
	register(key.PlayerBinary, "mpv", "Media player executable to launch.\nMust speak the mpv JSON IPC protocol")
	register(key.PlayerPollInterval, 100, "Playback position polling interval in milliseconds")
	register(key.PlayerSeekStep, 5000, "Relative seek step in milliseconds")
	register(key.PlayerLoopInterval, 2000, "Length of the loop window in milliseconds.\nValues below 100 are raised to 100")
	register(key.PlayerVolume, 50, "Initial volume. From 0 to 100")
	register(key.PlayerRate, 1.0, "Initial playback rate. From 0.25 to 4")

	// editor
	register(key.EditorAutoPause, false, "Pause playback while typing in the transcript")
	register(key.EditorWordWrap, true, "Soft wrap long transcript lines")
	register(key.EditorLineNumbers, true, "Show line numbers next to the transcript")

	// session
	register(key.SessionLastVideo, "", "Most recently loaded video file")
	register(key.SessionLastTranscript, "", "Most recently used transcript file")
	register(key.HistorySave, true, "Remember playback position per video to resume later")

	// appearance and diagnostics
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
}

// highlight colors a value by its type.
func highlight(v any) string {
	switch value := v.(type) {
	case bool:
		return lo.Ternary(value, style.Fg(color.Green), style.Fg(color.Red))(strconv.FormatBool(value))
	case string:
		if value == "" {
			return style.Faint(`""`)
		}
		return style.Fg(color.Yellow)(value)
	default:
		return style.Fg(color.Cyan)(fmt.Sprint(value))
	}
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":  style.Faint,
	"key":    style.Fg(color.Purple),
	"label":  style.Fg(color.Blue),
	"hl":     highlight,
	"value":  func(k string) any { return viper.Get(k) },
	"typeof": func(v any) string { return reflect.TypeOf(v).String() },
}).Parse(`{{ key .Key }} {{ faint (typeof .Value) }}
{{ faint .Description }}
{{ label "env" }}     {{ .Env }}
{{ label "value" }}   {{ hl (value .Key) }}{{ if .Changed }} {{ faint "(changed)" }}{{ end }}
{{ label "default" }} {{ hl .Value }}`))
