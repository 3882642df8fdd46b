package detail

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/boardterm/domain"
	"github.com/CrestNiraj12/boardterm/markdown"
	"github.com/CrestNiraj12/boardterm/tui/common"
)

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetSize(max(msg.Width-6, 20), 3)
		m.refreshContent()
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		if !m.loaded || m.thread.Loading() || m.likePending {
			m.refreshContent()
		}
		return m, cmd

	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case PostLoadedMsg:
		if msg.ID != m.postID {
			return m, nil
		}
		if msg.Err != nil {
			m.err = msg.Err
			if errors.Is(msg.Err, domain.ErrNotFound) {
				id := m.postID
				return m, func() tea.Msg { return common.PostRemovedMsg{ID: id} }
			}
			return m, nil
		}
		m.err = nil
		m.loaded = true
		m.post = msg.Post
		m.refreshContent()
		// The server counted a view; keep the list in step.
		return m, postUpdated(m.post)

	case CommentsLoadedMsg:
		if m.thread.Apply(msg.Req, msg.Page) {
			m.refreshContent()
		}
		return m, nil

	case CommentsErrorMsg:
		if m.thread.Fail(msg.Req, msg.Err) {
			m.refreshContent()
		}
		return m, nil

	case LikeResultMsg:
		return m.handleLikeResult(msg)

	case CommentSavedMsg:
		return m.handleCommentSaved(msg)

	case CommentDeletedMsg:
		if msg.PostID != m.postID {
			return m, nil
		}
		if msg.Err != nil {
			return m, common.StatusErr(msg.Err)
		}
		if m.thread.Remove(msg.CommentID) {
			m.post.CommentCount = max(m.post.CommentCount-1, 0)
		}
		m.cursor = min(m.cursor, m.thread.Len()-1)
		m.refreshContent()
		return m, tea.Batch(postUpdated(m.post), common.Status("Comment deleted."))

	case PostDeletedMsg:
		if msg.ID != m.postID {
			return m, nil
		}
		if msg.Err != nil {
			return m, common.StatusErr(msg.Err)
		}
		id := msg.ID
		return m, tea.Batch(
			func() tea.Msg { return common.PostRemovedMsg{ID: id} },
			common.Status("Post deleted."),
			back,
		)

	case tea.KeyMsg:
		if m.composing {
			return m.handleComposeKey(msg)
		}
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m Model) handleLikeResult(msg LikeResultMsg) (Model, tea.Cmd) {
	if msg.ID != m.postID {
		return m, nil
	}
	m.likePending = false
	if msg.Err != nil {
		m.post.IsLiked = msg.PrevLiked
		m.post.LikeCount = msg.PrevCount
		m.refreshContent()
		return m, common.StatusErr(msg.Err)
	}
	m.post.LikeCount = msg.Count
	m.refreshContent()
	return m, postUpdated(m.post)
}

func (m Model) handleCommentSaved(msg CommentSavedMsg) (Model, tea.Cmd) {
	if msg.PostID != m.postID {
		return m, nil
	}
	m.saving = false
	if msg.Err != nil {
		m.inputErr = msg.Err
		return m, nil
	}
	m.closeComposer()
	if msg.Edited {
		m.thread.Patch(msg.Comment.ID, func(c *domain.Comment) { *c = msg.Comment })
		m.refreshContent()
		return m, common.Status("Comment updated.")
	}
	m.thread.Append(msg.Comment)
	m.post.CommentCount++
	if !m.thread.HasNext() {
		m.cursor = m.thread.Len() - 1
	}
	m.refreshContent()
	m.scrollToCursor()
	return m, tea.Batch(postUpdated(m.post), common.Status("Comment posted."))
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.confirm != confirmNone {
		return m.handleConfirmKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.ToggleHints):
		m.showAllHints = !m.showAllHints
		return m, nil

	case key.Matches(msg, m.keys.Back):
		return m, back

	case key.Matches(msg, m.keys.Up):
		if m.cursor > -1 {
			m.cursor--
			m.refreshContent()
			m.scrollToCursor()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.thread.Len()-1 {
			m.cursor++
			m.refreshContent()
			m.scrollToCursor()
		}
		if m.cursor >= m.thread.Len()-1 {
			return m, m.loadMoreComments()
		}
		return m, nil

	case key.Matches(msg, m.keys.LoadMore):
		return m, m.loadMoreComments()

	case key.Matches(msg, m.keys.Refresh):
		return m.Open(m.postID)

	case key.Matches(msg, m.keys.Share):
		return m, m.share()
	}

	if !m.loaded {
		return m.handleScrollKey(msg)
	}

	if !m.signedIn && key.Matches(msg, m.keys.Like, m.keys.Comment, m.keys.EditComment,
		m.keys.DelComment, m.keys.Edit, m.keys.Delete) {
		return m, common.StatusErr(domain.ErrUnauthorized)
	}

	switch {
	case key.Matches(msg, m.keys.Like):
		if m.likePending {
			return m, nil
		}
		prevLiked, prevCount := m.post.IsLiked, m.post.LikeCount
		m.post.IsLiked = !prevLiked
		if m.post.IsLiked {
			m.post.LikeCount++
		} else {
			m.post.LikeCount = max(m.post.LikeCount-1, 0)
		}
		m.likePending = true
		m.refreshContent()
		return m, m.sendLike(m.post.IsLiked, prevLiked, prevCount)

	case key.Matches(msg, m.keys.Comment):
		m.openComposer(0, "")
		return m, nil

	case key.Matches(msg, m.keys.EditComment):
		c, ok := m.selectedComment()
		if !ok || !c.IsAuthor {
			return m, common.Status("Select one of your own comments to edit.")
		}
		m.openComposer(c.ID, c.Content)
		return m, nil

	case key.Matches(msg, m.keys.DelComment):
		c, ok := m.selectedComment()
		if !ok || !c.IsAuthor {
			return m, common.Status("Select one of your own comments to delete.")
		}
		m.confirm = confirmDeleteComment
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if !m.post.IsAuthor {
			return m, common.Status("Only the author can edit this post.")
		}
		p := m.post
		return m, func() tea.Msg { return EditPostMsg{Post: p} }

	case key.Matches(msg, m.keys.Delete):
		if !m.post.IsAuthor {
			return m, common.Status("Only the author can delete this post.")
		}
		m.confirm = confirmDeletePost
		return m, nil
	}

	return m.handleScrollKey(msg)
}

func (m Model) handleScrollKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyPgDown, tea.KeyPgUp, tea.KeyCtrlD, tea.KeyCtrlU:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.KeyHome:
		m.viewport.GotoTop()
	case tea.KeyEnd:
		m.viewport.GotoBottom()
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	kind := m.confirm
	m.confirm = confirmNone
	if msg.String() != "y" && msg.String() != "Y" {
		return m, nil
	}
	switch kind {
	case confirmDeletePost:
		return m, m.deletePost()
	case confirmDeleteComment:
		if c, ok := m.selectedComment(); ok {
			return m, m.deleteComment(c.ID)
		}
	}
	return m, nil
}

func (m Model) loadMoreComments() tea.Cmd {
	req, ok := m.thread.LoadMore()
	if !ok {
		return nil
	}
	return m.fetchComments(req)
}

func (m *Model) openComposer(commentID int, content string) {
	m.composing = true
	m.editingComment = commentID
	m.inputErr = nil
	m.input.SetValue(content)
	m.input.Focus()
	m.updateCandidates()
	m.refreshContent()
}

func (m *Model) closeComposer() {
	m.composing = false
	m.editingComment = 0
	m.inputErr = nil
	m.candidates = nil
	m.input.SetValue("")
	m.input.Blur()
	m.refreshContent()
}

func (m Model) handleComposeKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if len(m.candidates) > 0 {
			m.candidates = nil
			return m, nil
		}
		m.closeComposer()
		return m, nil

	case "ctrl+s":
		if m.saving {
			return m, nil
		}
		content := m.input.Value()
		if err := domain.ValidateComment(content); err != nil {
			m.inputErr = err
			return m, nil
		}
		m.saving = true
		m.inputErr = nil
		return m, m.saveComment(content, m.editingComment)

	case "tab", "enter":
		if len(m.candidates) > 0 {
			m.input.SetBuffer(markdown.CompleteMention(m.input.Buffer(), m.candidates[m.candidateIdx]))
			m.candidates = nil
			return m, nil
		}

	case "ctrl+n", "down":
		if len(m.candidates) > 0 {
			m.candidateIdx = (m.candidateIdx + 1) % len(m.candidates)
			return m, nil
		}

	case "ctrl+p", "up":
		if len(m.candidates) > 0 {
			m.candidateIdx = (m.candidateIdx + len(m.candidates) - 1) % len(m.candidates)
			return m, nil
		}
	}

	if msg.Type == tea.KeyTab {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.inputErr = nil
	m.updateCandidates()
	return m, cmd
}

func (m *Model) updateCandidates() {
	prefix, _, ok := markdown.ActiveMention(m.input.Buffer())
	if !ok {
		m.candidates = nil
		m.candidateIdx = 0
		return
	}
	m.candidates = markdown.MentionCandidates(prefix, m.nicknames(), mentionLimit)
	if m.candidateIdx >= len(m.candidates) {
		m.candidateIdx = 0
	}
}
