// Package markdown implements the editor toolbar: formatting transforms over a
// plain-text buffer and its selection, undo history, and the @-mention helper.
//
// All offsets are rune offsets into Buffer.Text.
package markdown

import "strings"

// Selection is a range of the buffer. End is where the cursor sits; Start may be
// greater than End when the user selected backwards.
type Selection struct {
	Start int
	End   int
}

// Range returns the selection ordered low to high.
func (s Selection) Range() (int, int) {
	if s.Start > s.End {
		return s.End, s.Start
	}
	return s.Start, s.End
}

// Empty reports whether the selection is a bare cursor.
func (s Selection) Empty() bool {
	return s.Start == s.End
}

// Cursor returns a collapsed selection at pos.
func Cursor(pos int) Selection {
	return Selection{Start: pos, End: pos}
}

// Buffer is the text of a text-input control plus its selection.
type Buffer struct {
	Text string
	Sel  Selection
}

// NewBuffer returns a buffer with the cursor at the end of text.
func NewBuffer(text string) Buffer {
	return Buffer{Text: text, Sel: Cursor(len([]rune(text)))}
}

// Selected returns the selected text.
func (b Buffer) Selected() string {
	r := []rune(b.Text)
	lo, hi := clampRange(b.Sel, len(r))
	return string(r[lo:hi])
}

func clampRange(s Selection, n int) (int, int) {
	lo, hi := s.Range()
	lo = min(max(lo, 0), n)
	hi = min(max(hi, 0), n)
	return lo, hi
}

func splice(r []rune, lo, hi int, insert string) string {
	var b strings.Builder
	b.Grow(len(r) + len(insert))
	b.WriteString(string(r[:lo]))
	b.WriteString(insert)
	b.WriteString(string(r[hi:]))
	return b.String()
}

func runeLen(s string) int {
	return len([]rune(s))
}

// lineSpan returns the start of the line holding lo and the end of the line
// holding hi (exclusive, before the newline).
func lineSpan(r []rune, lo, hi int) (int, int) {
	start := 0
	for i := lo - 1; i >= 0; i-- {
		if r[i] == '\n' {
			start = i + 1
			break
		}
	}
	end := len(r)
	for i := hi; i < len(r); i++ {
		if r[i] == '\n' {
			end = i
			break
		}
	}
	return start, end
}

// Insert replaces the selection with s and leaves the cursor after it.
func Insert(b Buffer, s string) Buffer {
	r := []rune(b.Text)
	lo, hi := clampRange(b.Sel, len(r))
	return Buffer{Text: splice(r, lo, hi, s), Sel: Cursor(lo + runeLen(s))}
}

// Backspace deletes the selection, or the rune before the cursor.
func Backspace(b Buffer) Buffer {
	r := []rune(b.Text)
	lo, hi := clampRange(b.Sel, len(r))
	if lo == hi {
		if lo == 0 {
			return Buffer{Text: b.Text, Sel: Cursor(0)}
		}
		lo--
	}
	return Buffer{Text: splice(r, lo, hi, ""), Sel: Cursor(lo)}
}

// Delete deletes the selection, or the rune after the cursor.
func Delete(b Buffer) Buffer {
	r := []rune(b.Text)
	lo, hi := clampRange(b.Sel, len(r))
	if lo == hi {
		if hi == len(r) {
			return Buffer{Text: b.Text, Sel: Cursor(hi)}
		}
		hi++
	}
	return Buffer{Text: splice(r, lo, hi, ""), Sel: Cursor(lo)}
}

// Motion is a cursor movement.
type Motion int

const (
	MoveLeft Motion = iota
	MoveRight
	MoveUp
	MoveDown
	MoveLineStart
	MoveLineEnd
	MoveStart
	MoveEnd
)

// Move moves the cursor. With extend the anchor stays put and the selection grows;
// without it a non-empty selection collapses first.
func Move(b Buffer, m Motion, extend bool) Buffer {
	r := []rune(b.Text)
	cur := min(max(b.Sel.End, 0), len(r))
	if !extend && !b.Sel.Empty() {
		lo, hi := clampRange(b.Sel, len(r))
		switch m {
		case MoveLeft:
			return Buffer{Text: b.Text, Sel: Cursor(lo)}
		case MoveRight:
			return Buffer{Text: b.Text, Sel: Cursor(hi)}
		}
	}

	next := cur
	switch m {
	case MoveLeft:
		next = max(cur-1, 0)
	case MoveRight:
		next = min(cur+1, len(r))
	case MoveLineStart:
		next, _ = lineSpan(r, cur, cur)
	case MoveLineEnd:
		_, next = lineSpan(r, cur, cur)
	case MoveStart:
		next = 0
	case MoveEnd:
		next = len(r)
	case MoveUp, MoveDown:
		ls, le := lineSpan(r, cur, cur)
		col := cur - ls
		if m == MoveUp {
			if ls == 0 {
				next = 0
				break
			}
			pls, ple := lineSpan(r, ls-1, ls-1)
			next = pls + min(col, ple-pls)
		} else {
			if le == len(r) {
				next = len(r)
				break
			}
			nls, nle := lineSpan(r, le+1, le+1)
			next = nls + min(col, nle-nls)
		}
	}

	if extend {
		return Buffer{Text: b.Text, Sel: Selection{Start: b.Sel.Start, End: next}}
	}
	return Buffer{Text: b.Text, Sel: Cursor(next)}
}

// CursorPosition returns the zero-based line and column of the cursor.
func CursorPosition(b Buffer) (line, col int) {
	r := []rune(b.Text)
	cur := min(max(b.Sel.End, 0), len(r))
	ls := 0
	for i := 0; i < cur; i++ {
		if r[i] == '\n' {
			line++
			ls = i + 1
		}
	}
	return line, cur - ls
}
