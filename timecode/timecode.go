// Package timecode converts between millisecond offsets and the HH:MM:SS.mmm
// markers written into transcripts.
package timecode

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"unicode/utf8"
)

// Placeholder is written in place of a start marker whose position was lost.
const Placeholder = "[??:??:??.???]"

// MarkerPattern matches a bracketed marker and captures the time inside it.
var MarkerPattern = regexp.MustCompile(`\[(\d{2,}:\d{2}:\d{2}\.\d{3})\]`)

var clockPattern = regexp.MustCompile(`^(\d{2,}):(\d{2}):(\d{2})\.(\d{3})$`)

// ErrMalformed is returned by Parse for strings that are not HH:MM:SS.mmm.
var ErrMalformed = errors.New("malformed timecode")

// Format renders ms as HH:MM:SS.mmm. Negative values render as zero and
// hours grow beyond two digits when needed.
func Format(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	seconds := ms / 1000
	minutes := seconds / 60
	hours := minutes / 60
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes%60, seconds%60, ms%1000)
}

// Marker renders ms as a bracketed marker.
func Marker(ms int64) string {
	return "[" + Format(ms) + "]"
}

// Parse converts HH:MM:SS.mmm back into milliseconds.
func Parse(s string) (int64, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
	}

	var parts [4]int64
	for i := range parts {
		v, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
		}
		parts[i] = v
	}

	h, mins, sec, milli := parts[0], parts[1], parts[2], parts[3]
	if mins > 59 || sec > 59 {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
	}

	return (h*3600+mins*60+sec)*1000 + milli, nil
}

// MarkerAt returns the time of the marker covering the rune offset in text.
// ok is false when no well-formed marker spans the offset.
func MarkerAt(text string, offset int) (ms int64, ok bool) {
	if offset < 0 {
		return 0, false
	}

	for _, loc := range MarkerPattern.FindAllStringSubmatchIndex(text, -1) {
		start := utf8.RuneCountInString(text[:loc[0]])
		end := start + utf8.RuneCountInString(text[loc[0]:loc[1]])
		if offset < start || offset >= end {
			continue
		}

		ms, err := Parse(text[loc[2]:loc[3]])
		if err != nil {
			return 0, false
		}
		return ms, true
	}

	return 0, false
}
