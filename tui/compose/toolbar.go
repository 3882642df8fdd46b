package compose

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/boardterm/markdown"
)

// LineHeights are the values offered by the line height menu.
var LineHeights = []string{"1", "1.5", "2", "2.5"}

type promptKind int

const (
	promptNone promptKind = iota
	promptLink
	promptImage
	promptColor
	promptFontSize
	promptAlign
	promptLineHeight
)

// prompt is either a one-line text question or a pick-one menu.
type prompt struct {
	kind    promptKind
	label   string
	input   textinput.Model
	options []string
	idx     int
}

func (p prompt) active() bool { return p.kind != promptNone }

func (p prompt) isMenu() bool { return len(p.options) > 0 }

func newTextPrompt(kind promptKind, label, placeholder string) prompt {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 1024
	ti.Focus()
	return prompt{kind: kind, label: label, input: ti}
}

func newMenu(kind promptKind, label string, options []string) prompt {
	return prompt{kind: kind, label: label, options: options}
}

// simpleAction maps toolbar keys that need no further input.
func (m Model) simpleAction(msg tea.KeyMsg) (func(markdown.Buffer) markdown.Buffer, bool) {
	wrap := func(w markdown.Wrapper) func(markdown.Buffer) markdown.Buffer {
		return func(b markdown.Buffer) markdown.Buffer { return markdown.ToggleWrap(b, w) }
	}
	switch {
	case key.Matches(msg, m.keys.Bold):
		return wrap(markdown.Bold), true
	case key.Matches(msg, m.keys.Italic):
		return wrap(markdown.Italic), true
	case key.Matches(msg, m.keys.Underline):
		return wrap(markdown.Underline), true
	case key.Matches(msg, m.keys.Strike):
		return wrap(markdown.Strikethrough), true
	case key.Matches(msg, m.keys.Highlight):
		return wrap(markdown.Highlight), true
	case key.Matches(msg, m.keys.Code):
		return wrap(markdown.InlineCode), true
	case key.Matches(msg, m.keys.Bullet):
		return markdown.BulletList, true
	case key.Matches(msg, m.keys.Ordered):
		return markdown.OrderedList, true
	case key.Matches(msg, m.keys.Quote):
		return markdown.Blockquote, true
	case key.Matches(msg, m.keys.ClearFormat):
		return markdown.ClearFormatting, true
	case msg.Type == tea.KeyTab:
		return markdown.InsertIndent, true
	case msg.Type == tea.KeyShiftTab:
		return markdown.Outdent, true
	}
	return nil, false
}

// openPrompt reports false when msg is not a toolbar key that needs input.
func (m *Model) openPrompt(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keys.Link):
		m.prompt = newTextPrompt(promptLink, "Link URL", "https://")
	case key.Matches(msg, m.keys.Image):
		m.prompt = newTextPrompt(promptImage, "Image file or URL", "~/Pictures/photo.png")
	case key.Matches(msg, m.keys.Color):
		m.prompt = newMenu(promptColor, "Text color", markdown.TextColors)
	case key.Matches(msg, m.keys.FontSize):
		sizes := make([]string, len(markdown.FontSizes))
		for i, px := range markdown.FontSizes {
			sizes[i] = strconv.Itoa(px) + "px"
		}
		m.prompt = newMenu(promptFontSize, "Font size", sizes)
	case key.Matches(msg, m.keys.Align):
		m.prompt = newMenu(promptAlign, "Align", markdown.Alignments)
	case key.Matches(msg, m.keys.LineHeight):
		m.prompt = newMenu(promptLineHeight, "Line height", LineHeights)
	default:
		return false
	}
	return true
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	p := m.prompt
	switch msg.Type {
	case tea.KeyEsc:
		m.prompt = prompt{}
		return m, nil
	case tea.KeyEnter:
		m.prompt = prompt{}
		return m.submitPrompt(p)
	}

	if p.isMenu() {
		switch msg.String() {
		case "left", "h", "shift+tab":
			p.idx = (p.idx + len(p.options) - 1) % len(p.options)
		case "right", "l", "tab":
			p.idx = (p.idx + 1) % len(p.options)
		default:
			if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(p.options) {
				p.idx = n - 1
			}
		}
		m.prompt = p
		return m, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	m.prompt = p
	return m, cmd
}

func (m Model) submitPrompt(p prompt) (Model, tea.Cmd) {
	if p.isMenu() {
		choice := p.options[p.idx]
		var w markdown.Wrapper
		switch p.kind {
		case promptColor:
			w = markdown.TextColor(choice)
		case promptFontSize:
			w = markdown.FontSize(markdown.FontSizes[p.idx])
		case promptAlign:
			w = markdown.Align(choice)
		case promptLineHeight:
			w = markdown.LineHeight(choice)
		}
		m.applyBuffer(func(b markdown.Buffer) markdown.Buffer { return markdown.ToggleWrap(b, w) })
		return m, nil
	}

	value := strings.TrimSpace(p.input.Value())
	if value == "" {
		return m, nil
	}
	switch p.kind {
	case promptLink:
		m.applyBuffer(func(b markdown.Buffer) markdown.Buffer { return markdown.InsertLink(b, value) })
		return m, nil
	case promptImage:
		if isRemoteURL(value) {
			m.applyBuffer(func(b markdown.Buffer) markdown.Buffer { return markdown.InsertImage(b, "image", value) })
			return m, nil
		}
		m.uploading = true
		m.err = nil
		m.status = "Uploading image..."
		return m, m.uploadImage(value)
	}
	return m, nil
}

func isRemoteURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://")
}
