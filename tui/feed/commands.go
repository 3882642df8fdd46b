package feed

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/boardterm/paging"
)

func (m Model) fetchPage(req paging.Request) tea.Cmd {
	posts := m.posts
	q := m.query()
	size := m.pageSize
	return func() tea.Msg {
		page, err := posts.ListPosts(context.Background(), q, req.Page, size)
		if err != nil {
			return PostsErrorMsg{Req: req, Err: err}
		}
		return PostsLoadedMsg{Req: req, Page: page}
	}
}

func (m Model) fetchCategories() tea.Cmd {
	posts := m.posts
	return func() tea.Msg {
		cats, err := posts.Categories(context.Background())
		return CategoriesLoadedMsg{Categories: cats, Err: err}
	}
}

func (m Model) emitPrefsChanged() tea.Cmd {
	prefs := m.Prefs()
	return func() tea.Msg {
		return PrefsChangedMsg{Prefs: prefs}
	}
}

// resetQuery starts a new generation for the current filters and jumps to the top.
func (m *Model) resetQuery() tea.Cmd {
	m.cursor = 0
	m.start = 0
	return m.fetchPage(m.list.Reset(m.query().Key()))
}

// Refresh reloads page 1 of the current query.
func (m Model) Refresh() (Model, tea.Cmd) {
	cmd := m.resetQuery()
	return m, cmd
}

func (m Model) loadMore() tea.Cmd {
	req, ok := m.list.LoadMore()
	if !ok {
		return nil
	}
	return m.fetchPage(req)
}

func (m *Model) goToPage(n int) tea.Cmd {
	req, ok := m.list.GoTo(n)
	if !ok {
		return nil
	}
	return m.fetchPage(req)
}
