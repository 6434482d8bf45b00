package transcript

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/speechmark/speechmark/timecode"
	"github.com/speechmark/speechmark/util"
)

var segmentPattern = regexp.MustCompile(
	`^\[(?P<start>\d{2,}:\d{2}:\d{2}\.\d{3}|\?\?:\?\?:\?\?\.\?\?\?)\]-\[(?P<end>\d{2,}:\d{2}:\d{2}\.\d{3})\]\s?(?P<text>.*)$`,
)

// Segment is a transcript line that starts with a [start]-[end] marker pair.
type Segment struct {
	Line    int    `json:"line" jsonschema:"description=1-based line number in the transcript."`
	Start   string `json:"start" jsonschema:"description=Start marker as HH:MM:SS.mmm. Empty when the start was lost."`
	End     string `json:"end" jsonschema:"description=End marker as HH:MM:SS.mmm."`
	StartMs int64  `json:"start_ms" jsonschema:"description=Start in milliseconds."`
	EndMs   int64  `json:"end_ms" jsonschema:"description=End in milliseconds."`
	Text    string `json:"text" jsonschema:"description=Text following the markers."`
	Flagged bool   `json:"flagged" jsonschema:"description=True when the start marker is the lost-position placeholder."`
}

// Segments extracts every marker pair line from text. Lines with malformed
// times are skipped.
func Segments(text string) []Segment {
	var segments []Segment

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		groups := util.ReGroups(segmentPattern, scanner.Text())
		if len(groups) == 0 {
			continue
		}

		endMs, err := timecode.Parse(groups["end"])
		if err != nil {
			continue
		}

		segment := Segment{
			Line:  line,
			End:   groups["end"],
			EndMs: endMs,
			Text:  strings.TrimSpace(groups["text"]),
		}

		if "["+groups["start"]+"]" == timecode.Placeholder {
			segment.Flagged = true
		} else {
			startMs, err := timecode.Parse(groups["start"])
			if err != nil {
				continue
			}
			segment.Start = groups["start"]
			segment.StartMs = startMs
		}

		segments = append(segments, segment)
	}

	return segments
}
