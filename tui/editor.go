package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/samber/lo"
)

// cursorOffset returns the editor cursor as a rune offset into its value.
func cursorOffset(ta *textarea.Model) int {
	lines := strings.Split(ta.Value(), "\n")
	row := lo.Clamp(ta.Line(), 0, len(lines)-1)

	offset := 0
	for _, line := range lines[:row] {
		offset += utf8.RuneCountInString(line) + 1
	}

	info := ta.LineInfo()
	col := lo.Clamp(info.StartColumn+info.ColumnOffset, 0, utf8.RuneCountInString(lines[row]))
	return offset + col
}

// rowCol converts a rune offset into a line index and a rune column.
func rowCol(text string, offset int) (row, col int) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		n := utf8.RuneCountInString(line)
		if offset <= n || i == len(lines)-1 {
			return i, lo.Clamp(offset, 0, n)
		}
		offset -= n + 1
	}
	return 0, 0
}

// tabWidth is how many spaces the textarea sanitizer puts in place of a tab.
const tabWidth = 4

// shown is text as the textarea displays it.
func shown(text string) string {
	return strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabWidth))
}

func runeWidth(r rune) int {
	if r == '\t' {
		return tabWidth
	}
	return 1
}

// shownOffset maps a rune offset in text to the matching offset in shown(text).
func shownOffset(text []rune, offset int) int {
	offset = lo.Clamp(offset, 0, len(text))
	n := 0
	for _, r := range text[:offset] {
		n += runeWidth(r)
	}
	return n
}

// textOffset maps an offset in shown(text) back to text. An offset inside an
// expanded tab lands before the tab, or after it when up is set.
func textOffset(text []rune, offset int, up bool) int {
	n := 0
	for i, r := range text {
		if n == offset {
			return i
		}
		w := runeWidth(r)
		if n+w > offset {
			return lo.Ternary(up, i+1, i)
		}
		n += w
	}
	return len(text)
}

// applyEdit carries the difference between the shown value before and after
// an edit over to text, so tabs outside the edited span survive.
func applyEdit(text, before, after string) string {
	if before == after {
		return text
	}

	src, old, cur := []rune(text), []rune(before), []rune(after)

	prefix := 0
	for prefix < len(old) && prefix < len(cur) && old[prefix] == cur[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(old)-prefix && suffix < len(cur)-prefix &&
		old[len(old)-1-suffix] == cur[len(cur)-1-suffix] {
		suffix++
	}

	from := textOffset(src, prefix, false)
	to := textOffset(src, len(old)-suffix, true)
	middle := cur[shownOffset(src, from) : len(cur)-(len(old)-shownOffset(src, to))]

	return string(src[:from]) + string(middle) + string(src[to:])
}

// setEditorText shows text in the editor and places the cursor at the rune offset into text.
func setEditorText(ta *textarea.Model, text string, offset int) {
	ta.SetValue(text)
	moveCursor(ta, shown(text), shownOffset([]rune(text), offset))
}

func moveCursor(ta *textarea.Model, text string, offset int) {
	row, col := rowCol(text, offset)

	// Soft-wrapped lines take several CursorUp calls per logical line.
	limit := utf8.RuneCountInString(text) + ta.LineCount() + 1
	for i := 0; ta.Line() > row && i < limit; i++ {
		ta.CursorUp()
	}
	for i := 0; ta.Line() < row && i < limit; i++ {
		ta.CursorDown()
	}
	ta.SetCursor(col)
}
