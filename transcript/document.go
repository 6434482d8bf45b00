// Package transcript holds the editable transcript text, the paired
// timestamp insertion state machine, and the segment view used for export.
package transcript

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
	"github.com/speechmark/speechmark/filesystem"
)

// ErrNoPath is returned by Save when the document has never been saved or loaded.
var ErrNoPath = errors.New("transcript has no file path")

// PersistError reports a failed load or save. The document is left as it was.
type PersistError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s transcript %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// Document is a transcript buffer addressed by rune offsets.
type Document struct {
	text     []rune
	path     string
	modified bool
}

// NewDocument returns an empty, unmodified document without a path.
func NewDocument() *Document {
	return &Document{}
}

func (d *Document) Text() string {
	return string(d.text)
}

// Len returns the length of the text in runes.
func (d *Document) Len() int {
	return len(d.text)
}

func (d *Document) Path() string {
	return d.path
}

// SetPath sets where Save writes without touching the file or the buffer.
func (d *Document) SetPath(path string) {
	d.path = path
}

func (d *Document) Modified() bool {
	return d.modified
}

// SetText replaces the whole buffer, marking the document modified when the text changed.
func (d *Document) SetText(text string) {
	if text == string(d.text) {
		return
	}
	d.text = []rune(text)
	d.modified = true
}

// Insert puts s at the rune offset (clamped to the buffer) and returns the offset just past it.
func (d *Document) Insert(offset int, s string) int {
	offset = lo.Clamp(offset, 0, len(d.text))
	inserted := []rune(s)

	text := make([]rune, 0, len(d.text)+len(inserted))
	text = append(text, d.text[:offset]...)
	text = append(text, inserted...)
	text = append(text, d.text[offset:]...)

	d.text = text
	d.modified = true
	return offset + len(inserted)
}

// LineStart returns the offset of the first rune of the line containing offset.
func (d *Document) LineStart(offset int) int {
	offset = lo.Clamp(offset, 0, len(d.text))
	for offset > 0 && d.text[offset-1] != '\n' {
		offset--
	}
	return offset
}

// LineEnd returns the offset of the newline ending the line containing offset,
// or the buffer length on the last line.
func (d *Document) LineEnd(offset int) int {
	offset = lo.Clamp(offset, 0, len(d.text))
	for offset < len(d.text) && d.text[offset] != '\n' {
		offset++
	}
	return offset
}

// Clear empties the buffer and forgets the backing path.
func (d *Document) Clear() {
	d.text = nil
	d.path = ""
	d.modified = false
}

// Load replaces the buffer with the contents of path. On failure the document is unchanged.
func (d *Document) Load(path string) error {
	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return &PersistError{Op: "load", Path: path, Err: err}
	}

	if !utf8.Valid(data) {
		return &PersistError{Op: "load", Path: path, Err: errors.New("file is not valid UTF-8")}
	}

	d.text = []rune(strings.ReplaceAll(string(data), "\r\n", "\n"))
	d.path = path
	d.modified = false
	return nil
}

// Save writes the buffer to the current path.
func (d *Document) Save() error {
	if d.path == "" {
		return &PersistError{Op: "save", Err: ErrNoPath}
	}
	return d.SaveAs(d.path)
}

// SaveAs writes the buffer to path and makes it the current path.
// The modified flag stays set if the write fails.
func (d *Document) SaveAs(path string) error {
	if path == "" {
		return &PersistError{Op: "save", Err: ErrNoPath}
	}

	if err := filesystem.WriteAtomic(path, []byte(string(d.text)), 0644); err != nil {
		return &PersistError{Op: "save", Path: path, Err: err}
	}

	d.path = path
	d.modified = false
	return nil
}
