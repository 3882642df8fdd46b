package feed

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/boardterm/domain"
	"github.com/CrestNiraj12/boardterm/tui/common"
)

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = max(msg.Width-8, 10)
		m.ensureCursorVisible()
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case PostsLoadedMsg:
		if !m.list.Apply(msg.Req, msg.Page) {
			return m, nil
		}
		if !msg.Req.Append {
			m.cursor = 0
			m.start = 0
		}
		m.clampCursor()
		return m, nil

	case PostsErrorMsg:
		m.list.Fail(msg.Req, msg.Err)
		return m, nil

	case CategoriesLoadedMsg:
		return m.handleCategories(msg)

	case common.PostUpdatedMsg:
		m.list.Patch(msg.Post.ID, func(p *domain.PostSummary) {
			thumb := p.ThumbnailImgURL
			*p = msg.Post
			if p.ThumbnailImgURL == nil {
				p.ThumbnailImgURL = thumb
			}
		})
		return m, nil

	case common.PostRemovedMsg:
		if m.list.Remove(msg.ID) {
			m.clampCursor()
		}
		return m, nil

	case common.PostCreatedMsg:
		// The server decides where a new post lands under the active sort.
		return m.Refresh()

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m Model) handleCategories(msg CategoriesLoadedMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.catErr = msg.Err
		return m, nil
	}
	m.catErr = nil
	m.categories = append([]domain.Category{allCategory}, msg.Categories...)
	if m.categoryName(m.categoryID) != "" {
		return m, nil
	}
	// The saved category no longer exists.
	m.categoryID = domain.AllCategoryID
	cmd := m.resetQuery()
	return m, tea.Batch(cmd, m.emitPrefsChanged())
}

func (m *Model) clampCursor() {
	if n := m.list.Len(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	m.ensureCursorVisible()
}

func (m Model) visibleRows() int {
	if m.height <= 0 {
		return 4
	}
	// title, tabs, tagline, footer, help
	avail := m.height - 10
	return max(avail/rowHeight, 1)
}

func (m *Model) ensureCursorVisible() {
	v := m.visibleRows()
	if m.cursor < m.start {
		m.start = m.cursor
	}
	if m.cursor >= m.start+v {
		m.start = m.cursor - v + 1
	}
	m.start = max(m.start, 0)
}
