package compose

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/boardterm/markdown"
)

// Update handles messages for the compose view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.title.Width = max(msg.Width-8, 20)
		m.body.SetSize(max(msg.Width-4, 20), max(msg.Height-16, 5))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case snapshotMsg:
		if msg.seq == m.typingSeq {
			m.commitTyping()
		}
		return m, nil

	case editorFinishedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("editor: %w", msg.err)
			return m, nil
		}
		content, err := m.composer.ReadContent(msg.tmpPath)
		if err != nil {
			m.err = err
			return m, nil
		}
		if content != m.body.Value() {
			m.applyBuffer(func(markdown.Buffer) markdown.Buffer { return markdown.NewBuffer(content) })
		}
		return m, nil

	case imageUploadedMsg:
		m.uploading = false
		m.status = ""
		if msg.err != nil {
			m.err = fmt.Errorf("image upload: %w", msg.err)
			return m, nil
		}
		m.applyBuffer(func(b markdown.Buffer) markdown.Buffer { return markdown.InsertImage(b, msg.alt, msg.url) })
		m.status = "Image uploaded."
		return m, nil

	case submitResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m, done(DoneMsg{PostID: msg.id, Edited: msg.edited})

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	if m.focus == fieldTitle {
		var cmd tea.Cmd
		m.title, cmd = m.title.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.prompt.active() {
		return m.handlePromptKey(msg)
	}

	discard := m.confirmDiscard
	m.confirmDiscard = false

	switch {
	case key.Matches(msg, m.keys.Cancel):
		if m.changed() && !discard {
			m.confirmDiscard = true
			return m, nil
		}
		return m, done(DoneMsg{PostID: m.postID, Edited: m.IsEdit(), Cancelled: true})

	case key.Matches(msg, m.keys.Submit):
		if m.submitting || m.uploading {
			return m, nil
		}
		m.commitTyping()
		if err := m.draft().Validate(); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.submitting = true
		return m, m.submit()

	case key.Matches(msg, m.keys.Preview):
		m.preview = !m.preview
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.focus = (m.focus + 1) % fieldCount
		m.applyFocus()
		return m, nil

	case key.Matches(msg, m.keys.ExtEditor):
		m.commitTyping()
		return m, m.launchEditor()
	}

	if m.preview {
		return m, nil
	}

	switch m.focus {
	case fieldCategory:
		return m.handleCategoryKey(msg)
	case fieldTitle:
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeyTab {
			m.focus = fieldBody
			m.applyFocus()
			return m, nil
		}
		var cmd tea.Cmd
		m.title, cmd = m.title.Update(msg)
		return m, cmd
	}
	return m.handleBodyKey(msg)
}

func (m Model) handleCategoryKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	n := len(m.categories)
	if n == 0 {
		return m, nil
	}
	switch msg.String() {
	case "left", "h", "up", "k":
		if m.categoryIdx <= 0 {
			m.categoryIdx = n - 1
		} else {
			m.categoryIdx--
		}
	case "right", "l", "down", "j", " ":
		m.categoryIdx = (m.categoryIdx + 1) % n
	case "enter", "tab":
		if m.categoryIdx < 0 {
			m.categoryIdx = 0
		}
		m.focus = fieldTitle
		m.applyFocus()
	}
	return m, nil
}

func (m Model) handleBodyKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Undo):
		m.undo()
		return m, nil
	case key.Matches(msg, m.keys.Redo):
		m.redo()
		return m, nil
	}
	if fn, ok := m.simpleAction(msg); ok {
		m.applyBuffer(fn)
		return m, nil
	}
	if m.openPrompt(msg) {
		if !m.prompt.isMenu() {
			return m, textinput.Blink
		}
		return m, nil
	}

	before := m.body.Value()
	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	if m.body.Value() == before {
		return m, cmd
	}
	m.err = nil
	m.typingDirty = true
	m.typingSeq++
	return m, tea.Batch(cmd, snapshotAfterPause(m.typingSeq))
}
