package feed

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/boardterm/domain"
	"github.com/CrestNiraj12/boardterm/paging"
	"github.com/CrestNiraj12/boardterm/tui/common"
)

// View renders the post list.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("boardterm"))
	b.WriteString("\n")
	b.WriteString(m.tabsView())
	b.WriteString("\n")
	b.WriteString(m.taglineView())
	b.WriteString("\n\n")
	b.WriteString(m.listView())
	b.WriteString("\n")
	b.WriteString(m.footerView())
	b.WriteString("\n")
	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) tabsView() string {
	tabs := make([]string, 0, len(m.categories))
	for _, c := range m.categories {
		if c.ID == m.categoryID {
			tabs = append(tabs, common.TabActiveStyle.Render(c.Name))
		} else {
			tabs = append(tabs, common.TabInactiveStyle.Render(c.Name))
		}
	}
	return " " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) taglineView() string {
	if m.searching {
		return " " + m.search.View()
	}
	parts := []string{"Sort: " + m.sort.Label()}
	if m.keyword != "" {
		parts = append(parts, fmt.Sprintf("Search (%s): %q", m.filter.Label(), m.keyword))
	} else {
		parts = append(parts, "Search in: "+m.filter.Label())
	}
	if m.list.Loaded() {
		parts = append(parts, pluralize(m.list.Count(), "post"))
	}
	if m.catErr != nil {
		parts = append(parts, "categories unavailable")
	}
	return common.TaglineStyle.Render(strings.Join(parts, " • "))
}

func (m Model) listView() string {
	if !m.list.Loaded() {
		if err := m.list.Err(); err != nil {
			return common.ErrorStyle.Render("  " + common.ErrorText(err) + " (r to retry)")
		}
		return "  " + m.spinner.View() + " Loading posts..."
	}
	items := m.list.Items()
	if len(items) == 0 {
		if m.keyword != "" {
			return common.TimestampStyle.Render("  No posts match your search.")
		}
		if !m.signedIn {
			return common.TimestampStyle.Render("  No posts yet.")
		}
		return common.TimestampStyle.Render("  No posts yet. Press n to write the first one.")
	}

	width := max(m.width-4, 30)
	end := min(m.start+m.visibleRows(), len(items))
	rows := make([]string, 0, end-m.start)
	for i := m.start; i < end; i++ {
		rows = append(rows, m.rowView(items[i], i == m.cursor, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) rowView(p domain.PostSummary, selected bool, width int) string {
	inner := width - 4
	title := common.TitleStyle.Render(common.Truncate(common.OneLine(p.Title), inner-12))
	if p.ThumbnailImgURL != nil {
		title += common.TimestampStyle.Render(" 🖼")
	}
	if m.categoryID == domain.AllCategoryID {
		if name := m.categoryName(p.CategoryID); name != "" {
			title += common.TaglineStyle.Render("[" + name + "]")
		}
	}

	meta := fmt.Sprintf("%s  %s  %s",
		common.AuthorStyle.Render(p.Author.Nickname),
		common.TimestampStyle.Render(common.FormatRelative(p.CreatedAt, m.now())),
		common.CountStyle.Render(fmt.Sprintf("♥ %d  💬 %d  👁 %d", p.LikeCount, p.CommentCount, p.ViewCount)),
	)
	preview := common.ContentStyle.Render(common.Truncate(common.OneLine(p.ContentPreview), inner))

	body := lipgloss.JoinVertical(lipgloss.Left, title, meta, preview)
	style := common.UnselectedStyle
	if selected {
		style = common.SelectedStyle
	}
	return style.Width(width).Render(body)
}

func (m Model) footerView() string {
	if !m.list.Loaded() {
		return ""
	}
	if m.list.Mode() == paging.ModePages {
		return m.pageButtonsView()
	}
	switch {
	case m.list.Loading():
		return "  " + m.spinner.View() + " Loading more..."
	case m.list.Err() != nil:
		return common.ErrorStyle.Render("  " + common.ErrorText(m.list.Err()) + " (L to retry)")
	case !m.list.HasNext() && m.list.Len() > 0:
		return common.TimestampStyle.Render("  End of the list.")
	}
	return ""
}

func (m Model) pageButtonsView() string {
	cur := m.list.Page()
	total := m.list.TotalPages()
	block := m.list.PageBlock()

	var parts []string
	if block[0] > 1 {
		parts = append(parts, common.PageInactiveStyle.Render("«"))
	}
	if cur > 1 {
		parts = append(parts, common.PageInactiveStyle.Render("‹"))
	}
	for _, n := range block {
		label := strconv.Itoa(n)
		if n == cur {
			parts = append(parts, common.PageActiveStyle.Render("["+label+"]"))
		} else {
			parts = append(parts, common.PageInactiveStyle.Render(label))
		}
	}
	if cur < total {
		parts = append(parts, common.PageInactiveStyle.Render("›"))
	}
	if block[len(block)-1] < total {
		parts = append(parts, common.PageInactiveStyle.Render("»"))
	}
	out := " " + strings.Join(parts, "")
	if m.list.Loading() {
		out += " " + m.spinner.View()
	}
	if err := m.list.Err(); err != nil {
		out += " " + common.ErrorStyle.Render(common.ErrorText(err))
	}
	return out
}

func (m Model) helpView() string {
	var items []string
	switch {
	case m.searching:
		items = []string{"enter: search", "esc: cancel"}
	case m.showAllHints:
		items = []string{"j/k: move", "enter: open"}
		if m.signedIn {
			items = append(items, "n: new post")
		}
		items = append(items,
			"tab/shift+tab: category", "o: sort", "f: search field", "/: search", "m: pages/scroll", "r: refresh",
		)
		if m.list.Mode() == paging.ModePages {
			items = append(items, "[/]: page", "g/G: first/last", "{/}: 10 pages")
		} else {
			items = append(items, "L: load more")
		}
		if m.keyword != "" {
			items = append(items, "esc: clear search")
		}
		items = append(items, "q: quit", "?: fewer keys")
	default:
		items = []string{"j/k: move", "enter: open"}
		if m.signedIn {
			items = append(items, "n: new")
		}
		items = append(items, "tab: category", "/: search", "q: quit", "?: all keys")
	}
	wrapWidth := max(m.width-2, 16)
	return common.StatusBarStyle.
		Width(wrapWidth).
		Render("  " + strings.Join(items, " • "))
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
