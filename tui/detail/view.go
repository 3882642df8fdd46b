package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/boardterm/domain"
	"github.com/CrestNiraj12/boardterm/tui/common"
)

// View renders the detail screen.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("boardterm"))
	b.WriteString(common.TaglineStyle.Render(m.breadcrumb()))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if m.confirm != confirmNone {
		b.WriteString(m.confirmView())
		b.WriteString("\n")
	}
	if m.composing {
		b.WriteString(m.composerView())
		b.WriteString("\n")
	}
	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) breadcrumb() string {
	if !m.loaded {
		return fmt.Sprintf("post #%d", m.postID)
	}
	return m.post.Category.Name + " › #" + fmt.Sprint(m.post.ID)
}

func (m Model) contentWidth() int {
	return max(m.width-4, 30)
}

func (m Model) composerHeight() int {
	if !m.composing {
		return 0
	}
	// border, box, candidates, error
	return 2 + 3 + 2
}

// refreshContent rebuilds the viewport text. It runs after every state change
// that affects what is shown.
func (m *Model) refreshContent() {
	width := m.contentWidth()
	m.viewport.Width = width + 2
	m.viewport.Height = max(m.height-6-m.composerHeight(), 3)

	var b strings.Builder
	lines := 0
	write := func(s string) {
		b.WriteString(s)
		b.WriteString("\n")
		lines += strings.Count(s, "\n") + 1
	}

	switch {
	case m.err != nil && !m.loaded:
		write(common.ErrorStyle.Render(common.ErrorText(m.err)) + common.TimestampStyle.Render("  r: retry • esc: back"))
		m.viewport.SetContent(b.String())
		return
	case !m.loaded:
		write(m.spinner.View() + " Loading post...")
		m.viewport.SetContent(b.String())
		return
	}

	now := m.now()
	p := m.post
	marker := "  "
	if m.cursor == -1 {
		marker = common.LikedStyle.Render("▸ ")
	}
	write(marker + common.TitleStyle.Render(p.Title))
	meta := []string{
		common.AuthorStyle.Render(p.Author.Nickname),
		common.TimestampStyle.Render(common.FormatRelative(p.CreatedAt, now)),
	}
	if edited(p.CreatedAt, p.UpdatedAt) {
		meta = append(meta, common.TimestampStyle.Render("(edited)"))
	}
	meta = append(meta, common.CountStyle.Render(fmt.Sprintf("👁 %d", p.ViewCount)))
	line := "  " + strings.Join(meta, "  ")
	if p.IsAuthor {
		line += common.OwnBadgeStyle.Render("you")
	}
	write(line)
	write("")
	write(m.renderedBody(width))
	write("")

	like := common.CountStyle.Render(fmt.Sprintf("♡ %d", p.LikeCount))
	if p.IsLiked {
		like = common.LikedStyle.Render(fmt.Sprintf("♥ %d", p.LikeCount))
	}
	if m.likePending {
		like += " " + m.spinner.View()
	}
	write("  " + like + "   " + common.CountStyle.Render(fmt.Sprintf("💬 %d", p.CommentCount)))
	write("")
	write(common.TitleStyle.Render("  Comments"))

	items := m.thread.Items()
	m.commentLines = make([]int, 0, len(items))
	if m.thread.Loaded() && len(items) == 0 {
		write(common.TimestampStyle.Render("  No comments yet. Press c to write one."))
	}
	for i, c := range items {
		m.commentLines = append(m.commentLines, lines)
		write(m.commentView(c, i == m.cursor, width, now))
	}

	switch {
	case m.thread.Loading():
		write("  " + m.spinner.View() + " Loading comments...")
	case m.thread.Err() != nil:
		write(common.ErrorStyle.Render("  " + common.ErrorText(m.thread.Err()) + " (L to retry)"))
	case m.thread.HasNext():
		left := m.thread.Count() - len(items)
		write(common.TimestampStyle.Render(fmt.Sprintf("  L: load more (%d left)", left)))
	}
	m.viewport.SetContent(b.String())
}

func (m Model) commentView(c domain.Comment, selected bool, width int, now time.Time) string {
	head := common.AuthorStyle.Render(c.Author.Nickname) + "  " +
		common.TimestampStyle.Render(common.FormatRelative(c.CreatedAt, now))
	if edited(c.CreatedAt, c.UpdatedAt) {
		head += common.TimestampStyle.Render(" (edited)")
	}
	if c.IsAuthor {
		head += common.OwnBadgeStyle.Render("you")
	}
	body := common.ContentStyle.Width(width - 4).Render(c.Content)
	style := common.UnselectedStyle
	if selected {
		style = common.SelectedStyle
	}
	return style.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, head, body))
}

// renderedBody caches the glamour output, which is slow to produce.
func (m *Model) renderedBody(width int) string {
	key := fmt.Sprintf("%d|%s", width, m.post.Content)
	if key != m.bodyKey {
		m.body = common.RenderMarkdown(m.post.Content, width)
		m.bodyKey = key
	}
	return m.body
}

func edited(created, updated time.Time) bool {
	return updated.Sub(created) > time.Minute
}

// scrollToCursor keeps the selected comment on screen.
func (m *Model) scrollToCursor() {
	if m.cursor < 0 || m.cursor >= len(m.commentLines) {
		if m.cursor < 0 {
			m.viewport.GotoTop()
		}
		return
	}
	line := m.commentLines[m.cursor]
	if line < m.viewport.YOffset || line >= m.viewport.YOffset+m.viewport.Height-3 {
		m.viewport.SetYOffset(line)
	}
}

func (m Model) confirmView() string {
	what := "this post"
	if m.confirm == confirmDeleteComment {
		what = "this comment"
	}
	return common.ConfirmStyle.Render("Delete " + what + "? (y/N)")
}

func (m Model) composerView() string {
	title := "New comment"
	if m.editingComment != 0 {
		title = "Edit comment"
	}
	n := len([]rune(m.input.Value()))
	counter := fmt.Sprintf("%d/%d", n, domain.MaxCommentLength)
	if n > domain.MaxCommentLength {
		counter = common.ErrorStyle.Render(counter)
	} else {
		counter = common.TimestampStyle.Render(counter)
	}
	box := common.FocusedFieldStyle.Render(m.input.View())

	var extra string
	switch {
	case len(m.candidates) > 0:
		parts := make([]string, len(m.candidates))
		for i, c := range m.candidates {
			if i == m.candidateIdx {
				parts[i] = common.TabActiveStyle.Render("@" + c)
			} else {
				parts[i] = common.TabInactiveStyle.Render("@" + c)
			}
		}
		extra = strings.Join(parts, "")
	case m.inputErr != nil:
		extra = common.ErrorStyle.Render(common.ErrorText(m.inputErr))
	case m.saving:
		extra = m.spinner.View() + " Saving..."
	}
	return " " + common.TitleStyle.Render(title) + "  " + counter + "\n" + box + "\n " + extra
}

func (m Model) helpView() string {
	var items []string
	switch {
	case m.composing && len(m.candidates) > 0:
		items = []string{"tab/enter: complete", "ctrl+n/ctrl+p: choose", "esc: dismiss"}
	case m.composing:
		items = []string{"ctrl+s: send", "@: mention", "esc: cancel"}
	case m.confirm != confirmNone:
		items = []string{"y: confirm", "any key: cancel"}
	case m.showAllHints:
		items = []string{"j/k: select"}
		if m.signedIn {
			items = append(items, "l: like", "c: comment")
		}
		items = append(items, "s: copy link", "L: more comments", "pgup/pgdn: scroll", "r: refresh")
		if m.signedIn && m.post.IsAuthor {
			items = append(items, "e: edit post", "d: delete post")
		}
		if m.signedIn {
			items = append(items, "E: edit comment", "D: delete comment")
		}
		items = append(items, "esc/q: back", "?: fewer keys")
	default:
		items = []string{"j/k: select"}
		if m.signedIn {
			items = append(items, "l: like", "c: comment")
		}
		items = append(items, "s: copy link", "esc/q: back", "?: all keys")
	}
	wrapWidth := max(m.width-2, 16)
	return common.StatusBarStyle.
		Width(wrapWidth).
		Render("  " + strings.Join(items, " • "))
}
