package feed

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/boardterm/domain"
	"github.com/CrestNiraj12/boardterm/paging"
	"github.com/CrestNiraj12/boardterm/tui/common"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.ToggleHints):
		m.showAllHints = !m.showAllHints
		return m, nil

	case msg.Type == tea.KeyEsc:
		if m.keyword != "" {
			m.keyword = ""
			m.search.SetValue("")
			cmd := m.resetQuery()
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.ensureCursorVisible()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.list.Len()-1 {
			m.cursor++
			m.ensureCursorVisible()
		}
		if m.list.NearEnd(m.cursor) {
			return m, m.loadMore()
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if p, ok := m.selected(); ok {
			id := p.ID
			return m, func() tea.Msg { return OpenPostMsg{ID: id} }
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		if !m.signedIn {
			return m, common.StatusErr(domain.ErrUnauthorized)
		}
		cat := m.categoryID
		cats := m.Categories()
		return m, func() tea.Msg { return NewPostMsg{CategoryID: cat, Categories: cats} }

	case key.Matches(msg, m.keys.Refresh):
		return m.Refresh()

	case key.Matches(msg, m.keys.LoadMore):
		if m.list.Mode() == paging.ModeInfinite {
			return m, m.loadMore()
		}
		return m, m.goToPage(m.list.Page() + 1)

	case key.Matches(msg, m.keys.NextCategory), key.Matches(msg, m.keys.PrevCategory):
		n := len(m.categories)
		step := 1
		if key.Matches(msg, m.keys.PrevCategory) {
			step = n - 1
		}
		m.categoryID = m.categories[(m.categoryIndex()+step)%n].ID
		cmd := m.resetQuery()
		return m, tea.Batch(cmd, m.emitPrefsChanged())

	case key.Matches(msg, m.keys.Sort):
		m.sort = cycle(domain.SortOptions, m.sort)
		cmd := m.resetQuery()
		return m, tea.Batch(cmd, m.emitPrefsChanged())

	case key.Matches(msg, m.keys.Filter):
		m.filter = cycle(domain.SearchFilters, m.filter)
		if m.keyword == "" {
			return m, m.emitPrefsChanged()
		}
		cmd := m.resetQuery()
		return m, tea.Batch(cmd, m.emitPrefsChanged())

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.keyword)
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.PagingMode):
		if m.list.Mode() == paging.ModeInfinite {
			m.list.SetMode(paging.ModePages)
		} else {
			m.list.SetMode(paging.ModeInfinite)
		}
		cmd := m.resetQuery()
		return m, tea.Batch(cmd, m.emitPrefsChanged())
	}

	if m.list.Mode() == paging.ModePages {
		return m.handlePageKey(msg)
	}
	return m, nil
}

func (m Model) handlePageKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	page := max(m.list.Page(), 1)
	block := (page - 1) / paging.BlockSize
	switch {
	case key.Matches(msg, m.keys.NextPage):
		return m, m.goToPage(page + 1)
	case key.Matches(msg, m.keys.PrevPage):
		return m, m.goToPage(page - 1)
	case key.Matches(msg, m.keys.FirstPage):
		return m, m.goToPage(1)
	case key.Matches(msg, m.keys.LastPage):
		return m, m.goToPage(m.list.TotalPages())
	case key.Matches(msg, m.keys.NextBlock):
		return m, m.goToPage((block+1)*paging.BlockSize + 1)
	case key.Matches(msg, m.keys.PrevBlock):
		return m, m.goToPage(max((block-1)*paging.BlockSize+1, 1))
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		kw := strings.TrimSpace(m.search.Value())
		if kw == m.keyword {
			return m, nil
		}
		m.keyword = kw
		cmd := m.resetQuery()
		return m, cmd
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func cycle[T comparable](opts []T, cur T) T {
	for i, o := range opts {
		if o == cur {
			return opts[(i+1)%len(opts)]
		}
	}
	return opts[0]
}
