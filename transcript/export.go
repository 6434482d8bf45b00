package transcript

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/speechmark/speechmark/timecode"
)

// Format selects how segments are rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatText, FormatJSON, FormatSRT, FormatVTT}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(name))
	if !lo.Contains(Formats, f) {
		return "", fmt.Errorf("unknown format %q, expected one of %v", name, Formats)
	}
	return f, nil
}

// Render writes segments to w. Subtitle formats omit flagged segments since
// they have no usable start time.
func Render(w io.Writer, segments []Segment, format Format) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(lo.Ternary(segments == nil, []Segment{}, segments))
	case FormatSRT:
		return renderSubtitles(w, segments, false)
	case FormatVTT:
		if _, err := io.WriteString(w, "WEBVTT\n\n"); err != nil {
			return err
		}
		return renderSubtitles(w, segments, true)
	case FormatText, "":
		for _, s := range segments {
			start := lo.Ternary(s.Flagged, strings.Trim(timecode.Placeholder, "[]"), s.Start)
			if _, err := fmt.Fprintf(w, "%s - %s  %s\n", start, s.End, s.Text); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func renderSubtitles(w io.Writer, segments []Segment, vtt bool) error {
	cue := 0
	for _, s := range segments {
		if s.Flagged || s.EndMs < s.StartMs {
			continue
		}
		cue++

		start, end := subtitleTime(s.StartMs, vtt), subtitleTime(s.EndMs, vtt)
		if _, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n", cue, start, end, s.Text); err != nil {
			return err
		}
	}
	return nil
}

// subtitleTime uses a comma before the milliseconds for SRT and a dot for WebVTT.
func subtitleTime(ms int64, vtt bool) string {
	formatted := timecode.Format(ms)
	if vtt {
		return formatted
	}
	return strings.Replace(formatted, ".", ",", 1)
}
