package compose

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/boardterm/app"
	"github.com/CrestNiraj12/boardterm/domain"
	"github.com/CrestNiraj12/boardterm/markdown"
	"github.com/CrestNiraj12/boardterm/tui/common"
	"github.com/CrestNiraj12/boardterm/tui/textbox"
)

// typingSnapshotDelay is how long typing must pause before it becomes an undo step.
const typingSnapshotDelay = 500 * time.Millisecond

// --- Messages ---

// DoneMsg is sent when composing is complete (published or cancelled).
type DoneMsg struct {
	PostID    int
	Edited    bool
	Cancelled bool
}

// submitResultMsg is sent after the create or update request.
type submitResultMsg struct {
	id     int
	edited bool
	err    error
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// imageUploadedMsg is sent when an image upload finishes.
type imageUploadedMsg struct {
	alt string
	url string
	err error
}

// snapshotMsg fires after a typing pause; only the latest one counts.
type snapshotMsg struct {
	seq int
}

// --- Model ---

type field int

const (
	fieldCategory field = iota
	fieldTitle
	fieldBody
	fieldCount
)

type services struct {
	posts    app.PostService
	uploads  app.UploadService
	composer app.Composer
}

type formState struct {
	postID      int // 0 for a new post
	categories  []domain.Category
	categoryIdx int // -1 until one is picked
	title       textinput.Model
	body        textbox.Model
	focus       field
	original    domain.PostDraft
}

type editState struct {
	history     markdown.History
	typingSeq   int
	typingDirty bool
	prompt      prompt
	preview     bool
}

type statusState struct {
	submitting     bool
	uploading      bool
	err            error
	status         string
	confirmDiscard bool
}

// Model holds the state for the post editor.
type Model struct {
	services
	formState
	editState
	statusState
	keys    common.EditorKeyMap
	spinner spinner.Model
	width   int
	height  int
}

// NewPost creates an editor for a new post, preselecting categoryID when it is
// a real category.
func NewPost(posts app.PostService, uploads app.UploadService, composer app.Composer, categories []domain.Category, categoryID int) Model {
	m := newModel(posts, uploads, composer, categories)
	m.categoryIdx = indexOf(categories, categoryID)
	if m.categoryIdx < 0 {
		m.focus = fieldCategory
	} else {
		m.focus = fieldTitle
	}
	m.original = m.draft()
	m.applyFocus()
	return m
}

// EditPost creates an editor filled with an existing post.
func EditPost(posts app.PostService, uploads app.UploadService, composer app.Composer, categories []domain.Category, p domain.Post) Model {
	m := newModel(posts, uploads, composer, categories)
	m.postID = p.ID
	m.categoryIdx = indexOf(categories, p.Category.ID)
	m.title.SetValue(p.Title)
	m.body.SetValue(p.Content)
	m.history.Reset(p.Content)
	m.focus = fieldBody
	m.original = m.draft()
	m.applyFocus()
	return m
}

func newModel(posts app.PostService, uploads app.UploadService, composer app.Composer, categories []domain.Category) Model {
	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.Prompt = ""
	ti.CharLimit = 200

	body := textbox.New()
	body.Placeholder = "Write your post in markdown..."

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	return Model{
		services:  services{posts: posts, uploads: uploads, composer: composer},
		formState: formState{categories: categories, categoryIdx: -1, title: ti, body: body},
		editState: editState{history: markdown.NewHistory("")},
		keys:      common.DefaultEditorKeyMap(),
		spinner:   s,
	}
}

func indexOf(cats []domain.Category, id int) int {
	for i, c := range cats {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// IsEdit reports whether an existing post is being edited.
func (m Model) IsEdit() bool { return m.postID != 0 }

func (m Model) draft() domain.PostDraft {
	d := domain.PostDraft{Title: m.title.Value(), Content: m.body.Value()}
	if m.categoryIdx >= 0 && m.categoryIdx < len(m.categories) {
		d.CategoryID = m.categories[m.categoryIdx].ID
	}
	return d
}

func (m Model) changed() bool {
	return m.draft() != m.original
}

func (m *Model) applyFocus() {
	m.title.Blur()
	m.body.Blur()
	switch m.focus {
	case fieldTitle:
		m.title.Focus()
	case fieldBody:
		m.body.Focus()
	}
}

// commitTyping turns pending keystrokes into an undo step.
func (m *Model) commitTyping() {
	if m.typingDirty {
		m.history.Push(m.body.Value())
		m.typingDirty = false
	}
}

// applyBuffer runs a toolbar transform as its own undo step.
func (m *Model) applyBuffer(fn func(markdown.Buffer) markdown.Buffer) {
	m.commitTyping()
	m.history.Push(m.body.Value())
	m.body.SetBuffer(fn(m.body.Buffer()))
	m.history.Push(m.body.Value())
	m.err = nil
}

func (m *Model) undo() {
	m.commitTyping()
	if s, ok := m.history.Undo(); ok {
		m.body.SetValue(s)
	}
}

func (m *Model) redo() {
	m.commitTyping()
	if s, ok := m.history.Redo(); ok {
		m.body.SetValue(s)
	}
}

func (m Model) heading() string {
	if m.IsEdit() {
		return fmt.Sprintf("Edit post #%d", m.postID)
	}
	return "New post"
}

// done wraps a DoneMsg into a tea.Cmd for immediate delivery.
func done(msg DoneMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}
