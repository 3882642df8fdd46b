package compose

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/boardterm/tui/common"
)

// toolbarLegend lists the formatting keys in toolbar order.
var toolbarLegend = []string{
	"alt+b bold", "alt+i italic", "alt+u underline", "alt+s strike", "alt+h highlight", "alt+c code",
	"alt+k link", "alt+m image", "alt+l list", "alt+o numbered", "alt+q quote",
	"alt+t color", "alt+f size", "alt+a align", "alt+g line height", "alt+r clear",
}

// View renders the editor.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("boardterm"))
	b.WriteString(common.TaglineStyle.Render(m.heading()))
	b.WriteString("\n\n")

	b.WriteString(m.frame(fieldCategory, " Category: "+m.categoryView()))
	b.WriteString("\n")
	b.WriteString(m.frame(fieldTitle, " "+m.title.View()))
	b.WriteString("\n")
	b.WriteString(common.ToolbarStyle.Width(max(m.width-2, 20)).Render(" " + strings.Join(toolbarLegend, " · ")))
	b.WriteString("\n")

	if m.preview {
		b.WriteString(m.previewView())
	} else {
		b.WriteString(m.frame(fieldBody, m.body.View()))
	}
	b.WriteString("\n")

	if m.prompt.active() {
		b.WriteString(m.promptView())
		b.WriteString("\n")
	}
	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) frame(f field, content string) string {
	style := common.BlurredFieldStyle
	if m.focus == f && !m.preview {
		style = common.FocusedFieldStyle
	}
	return style.Width(max(m.width-4, 20)).Render(content)
}

func (m Model) categoryView() string {
	if len(m.categories) == 0 {
		return common.ErrorStyle.Render("no categories")
	}
	if m.categoryIdx < 0 {
		return common.TimestampStyle.Render("‹ choose one ›")
	}
	return "‹ " + common.TabActiveStyle.Render(m.categories[m.categoryIdx].Name) + " ›"
}

func (m Model) previewView() string {
	width := max(m.width-6, 20)
	out := common.RenderMarkdown(m.body.Value(), width)
	lines := strings.Split(out, "\n")
	if h := max(m.height-16, 5); len(lines) > h {
		lines = lines[:h]
	}
	return common.BlurredFieldStyle.Width(max(m.width-4, 20)).Render(strings.Join(lines, "\n"))
}

func (m Model) promptView() string {
	label := common.TitleStyle.Render(" " + m.prompt.label + ": ")
	if !m.prompt.isMenu() {
		return label + m.prompt.input.View()
	}
	opts := make([]string, len(m.prompt.options))
	for i, o := range m.prompt.options {
		if i == m.prompt.idx {
			opts[i] = common.TabActiveStyle.Render(o)
		} else {
			opts[i] = common.TabInactiveStyle.Render(o)
		}
	}
	return label + lipgloss.JoinHorizontal(lipgloss.Top, opts...)
}

func (m Model) statusView() string {
	switch {
	case m.confirmDiscard:
		return common.ConfirmStyle.Render("Discard your changes? Press esc again.")
	case m.err != nil:
		return " " + common.ErrorStyle.Render(common.ErrorText(m.err))
	case m.submitting:
		return " " + m.spinner.View() + " Publishing..."
	case m.uploading:
		return " " + m.spinner.View() + " " + m.status
	case m.status != "":
		return " " + common.SuccessStyle.Render(m.status)
	}
	return ""
}

func (m Model) helpView() string {
	var items []string
	switch {
	case m.prompt.active() && m.prompt.isMenu():
		items = []string{"←/→: choose", "enter: apply", "esc: cancel"}
	case m.prompt.active():
		items = []string{"enter: insert", "esc: cancel"}
	case m.preview:
		items = []string{"ctrl+p: back to editing", "ctrl+s: publish", "esc: cancel"}
	default:
		items = []string{
			"ctrl+s: publish", "ctrl+t: next field", "ctrl+p: preview", "ctrl+e: $EDITOR",
			"ctrl+z/ctrl+y: undo/redo", "shift+arrows: select", "esc: cancel",
		}
	}
	wrapWidth := max(m.width-2, 16)
	return common.StatusBarStyle.
		Width(wrapWidth).
		Render("  " + strings.Join(items, " • "))
}
