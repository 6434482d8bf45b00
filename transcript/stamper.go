package transcript

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/samber/mo"
	"github.com/speechmark/speechmark/timecode"
)

// Phase is the state of the Stamper.
type Phase int

const (
	WaitingStart Phase = iota
	WaitingEnd
)

func (p Phase) String() string {
	if p == WaitingEnd {
		return "waiting for end"
	}
	return "waiting for start"
}

// startSuffix follows the start marker; the end marker goes right after it.
const startSuffix = "-"

var (
	// openStart matches a start marker at the beginning of a line.
	openStart = regexp.MustCompile(`^` + timecode.MarkerPattern.String() + startSuffix)
	// leadingMarker matches an end marker right after it.
	leadingMarker = regexp.MustCompile(`^` + timecode.MarkerPattern.String())
)

// Stamper inserts paired [start]-[end] markers. The first trigger writes the
// start marker at the beginning of the cursor's line, the second writes the
// end marker right after it.
type Stamper struct {
	phase   Phase
	pending mo.Option[int]
}

func (s *Stamper) Phase() Phase {
	return s.phase
}

// Pending returns the offset where the end marker will be inserted.
func (s *Stamper) Pending() mo.Option[int] {
	return s.pending
}

// Reset forgets a half-written pair. Called whenever the document is replaced.
func (s *Stamper) Reset() {
	s.phase = WaitingStart
	s.pending = mo.None[int]()
}

// Trigger inserts the next marker for positionMs and returns the new cursor offset.
func (s *Stamper) Trigger(doc *Document, cursor int, positionMs int64) int {
	if s.phase == WaitingStart {
		return s.insertStart(doc, cursor, positionMs)
	}
	return s.insertEnd(doc, cursor, positionMs)
}

func (s *Stamper) insertStart(doc *Document, cursor int, positionMs int64) int {
	marker := timecode.Marker(positionMs) + startSuffix
	lineStart := doc.LineStart(cursor)
	end := doc.Insert(lineStart, marker)

	s.phase = WaitingEnd
	s.pending = mo.Some(end)

	return cursor + utf8.RuneCountInString(marker)
}

func (s *Stamper) insertEnd(doc *Document, cursor int, positionMs int64) int {
	marker := timecode.Marker(positionMs) + " "
	defer s.Reset()

	offset, ok := s.pending.Get()
	if !ok || !s.followsStart(doc, offset) {
		offset, ok = s.reanchor(doc, cursor)
	}
	if !ok {
		flagged := timecode.Placeholder + startSuffix + marker
		lineStart := doc.LineStart(cursor)
		doc.Insert(lineStart, flagged)
		return cursor + utf8.RuneCountInString(flagged)
	}

	end := doc.Insert(offset, marker)
	return doc.LineEnd(end)
}

// followsStart reports whether offset still sits right after a start marker.
// Edits made between the two triggers can shift the text under it.
func (s *Stamper) followsStart(doc *Document, offset int) bool {
	if offset > doc.Len() {
		return false
	}

	before := string([]rune(doc.Text())[doc.LineStart(offset):offset])
	if !strings.HasSuffix(before, "]"+startSuffix) {
		return false
	}

	open := strings.LastIndex(before, "[")
	if open < 0 {
		return false
	}

	_, err := timecode.Parse(before[open+1 : len(before)-len("]"+startSuffix)])
	return err == nil
}

// reanchor finds the start marker of the cursor's line after edits moved it
// away from the pending offset. A line whose pair is already closed has none.
func (s *Stamper) reanchor(doc *Document, cursor int) (int, bool) {
	lineStart := doc.LineStart(cursor)
	line := string([]rune(doc.Text())[lineStart:doc.LineEnd(cursor)])

	loc := openStart.FindStringIndex(line)
	if loc == nil {
		return 0, false
	}
	if leadingMarker.MatchString(line[loc[1]:]) {
		return 0, false
	}

	return lineStart + utf8.RuneCountInString(line[:loc[1]]), true
}
