// Package textbox is a multi-line text input that exposes its selection as a
// markdown.Buffer, so toolbar transforms can be applied to it directly.
package textbox

import (
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/boardterm/markdown"
	"github.com/CrestNiraj12/boardterm/tui/common"
)

var placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E738D"))

// Model is the text box state.
type Model struct {
	buf         markdown.Buffer
	width       int
	height      int
	offset      int // first visible row
	focused     bool
	Placeholder string

	// ListContinuation makes Enter continue "- ", "1. " and "> " lines.
	ListContinuation bool
}

// New returns an empty, blurred text box.
func New() Model {
	return Model{width: 40, height: 5, ListContinuation: true}
}

// Value returns the text.
func (m Model) Value() string { return m.buf.Text }

// SetValue replaces the text and puts the cursor at the end.
func (m *Model) SetValue(s string) {
	m.buf = markdown.NewBuffer(s)
	m.scrollToCursor()
}

// Buffer returns the text with its selection.
func (m Model) Buffer() markdown.Buffer { return m.buf }

// SetBuffer replaces text and selection, e.g. with the result of a toolbar action.
func (m *Model) SetBuffer(b markdown.Buffer) {
	n := len([]rune(b.Text))
	b.Sel.Start = min(max(b.Sel.Start, 0), n)
	b.Sel.End = min(max(b.Sel.End, 0), n)
	m.buf = b
	m.scrollToCursor()
}

// SetSize sets the visible area in cells.
func (m *Model) SetSize(width, height int) {
	m.width = max(width, 2)
	m.height = max(height, 1)
	m.scrollToCursor()
}

// Width returns the visible width.
func (m Model) Width() int { return m.width }

// Focus enables key handling and the cursor.
func (m *Model) Focus() { m.focused = true }

// Blur disables key handling.
func (m *Model) Blur() { m.focused = false }

// Focused reports whether the box takes keys.
func (m Model) Focused() bool { return m.focused }

// Update handles editing and movement keys. Keys it does not know are ignored,
// so the caller can bind them first.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	b := m.buf
	switch km.Type {
	case tea.KeyRunes:
		b = markdown.Insert(b, cleanInput(string(km.Runes)))
	case tea.KeySpace:
		b = markdown.Insert(b, " ")
	case tea.KeyEnter:
		if next, ok := markdown.ContinueList(b); ok && m.ListContinuation {
			b = next
		} else {
			b = markdown.Insert(b, "\n")
		}
	case tea.KeyBackspace:
		b = markdown.Backspace(b)
	case tea.KeyDelete:
		b = markdown.Delete(b)
	case tea.KeyLeft:
		b = markdown.Move(b, markdown.MoveLeft, false)
	case tea.KeyRight:
		b = markdown.Move(b, markdown.MoveRight, false)
	case tea.KeyUp:
		b = markdown.Move(b, markdown.MoveUp, false)
	case tea.KeyDown:
		b = markdown.Move(b, markdown.MoveDown, false)
	case tea.KeyHome:
		b = markdown.Move(b, markdown.MoveLineStart, false)
	case tea.KeyEnd:
		b = markdown.Move(b, markdown.MoveLineEnd, false)
	case tea.KeyCtrlHome:
		b = markdown.Move(b, markdown.MoveStart, false)
	case tea.KeyCtrlEnd:
		b = markdown.Move(b, markdown.MoveEnd, false)
	case tea.KeyShiftLeft:
		b = markdown.Move(b, markdown.MoveLeft, true)
	case tea.KeyShiftRight:
		b = markdown.Move(b, markdown.MoveRight, true)
	case tea.KeyShiftUp:
		b = markdown.Move(b, markdown.MoveUp, true)
	case tea.KeyShiftDown:
		b = markdown.Move(b, markdown.MoveDown, true)
	case tea.KeyShiftHome:
		b = markdown.Move(b, markdown.MoveLineStart, true)
	case tea.KeyShiftEnd:
		b = markdown.Move(b, markdown.MoveLineEnd, true)
	default:
		return m, nil
	}
	m.buf = b
	m.scrollToCursor()
	return m, nil
}

// cleanInput drops control characters from typed or pasted text.
func cleanInput(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\t", "  ")
	return strings.Map(func(r rune) rune {
		if r != '\n' && unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

type row struct{ start, end int }

// layout soft-wraps r into rows at most width cells wide.
func layout(r []rune, width int) []row {
	var rows []row
	start, w := 0, 0
	for i := 0; i <= len(r); i++ {
		if i == len(r) || r[i] == '\n' {
			rows = append(rows, row{start, i})
			start, w = i+1, 0
			continue
		}
		cw := ansi.StringWidth(string(r[i]))
		if w+cw > width && i > start {
			rows = append(rows, row{start, i})
			start, w = i, 0
		}
		w += cw
	}
	return rows
}

func cursorRow(rows []row, cur int) int {
	idx := 0
	for i, rw := range rows {
		if rw.start <= cur {
			idx = i
		}
	}
	return idx
}

// textWidth leaves one cell for the cursor at the end of a full row.
func (m Model) textWidth() int { return max(m.width-1, 1) }

func (m *Model) scrollToCursor() {
	r := []rune(m.buf.Text)
	cr := cursorRow(layout(r, m.textWidth()), min(max(m.buf.Sel.End, 0), len(r)))
	if cr < m.offset {
		m.offset = cr
	}
	if cr >= m.offset+m.height {
		m.offset = cr - m.height + 1
	}
}

// View renders exactly height rows.
func (m Model) View() string {
	r := []rune(m.buf.Text)
	if len(r) == 0 && m.Placeholder != "" {
		lines := make([]string, m.height)
		ph := common.Truncate(m.Placeholder, m.textWidth())
		if m.focused {
			first := []rune(ph)
			lines[0] = common.CursorStyle.Render(string(first[0])) + placeholderStyle.Render(string(first[1:]))
		} else {
			lines[0] = placeholderStyle.Render(ph)
		}
		return strings.Join(lines, "\n")
	}

	rows := layout(r, m.textWidth())
	cur := min(max(m.buf.Sel.End, 0), len(r))
	lo, hi := m.buf.Sel.Range()
	cr := cursorRow(rows, cur)

	lines := make([]string, 0, m.height)
	for i := m.offset; i < len(rows) && len(lines) < m.height; i++ {
		rw := rows[i]
		var sb strings.Builder
		for j := rw.start; j < rw.end; j++ {
			ch := string(r[j])
			switch {
			case m.focused && j == cur && i == cr:
				sb.WriteString(common.CursorStyle.Render(ch))
			case j >= lo && j < hi:
				sb.WriteString(common.SelectionStyle.Render(ch))
			default:
				sb.WriteString(ch)
			}
		}
		if m.focused && i == cr && cur == rw.end {
			sb.WriteString(common.CursorStyle.Render(" "))
		}
		lines = append(lines, sb.String())
	}
	for len(lines) < m.height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
