package detail

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/boardterm/domain"
	"github.com/CrestNiraj12/boardterm/paging"
	"github.com/CrestNiraj12/boardterm/tui/common"
)

func (m Model) fetchPost(id int) tea.Cmd {
	posts := m.postSvc
	return func() tea.Msg {
		p, err := posts.GetPost(context.Background(), id)
		return PostLoadedMsg{ID: id, Post: p, Err: err}
	}
}

func (m Model) fetchComments(req paging.Request) tea.Cmd {
	svc := m.commentSvc
	postID := m.postID
	size := m.pageSize
	return func() tea.Msg {
		page, err := svc.ListComments(context.Background(), postID, req.Page, size)
		if err != nil {
			return CommentsErrorMsg{Req: req, Err: err}
		}
		return CommentsLoadedMsg{Req: req, Page: page}
	}
}

func (m Model) sendLike(liked bool, prevLiked bool, prevCount int) tea.Cmd {
	posts := m.postSvc
	id := m.postID
	return func() tea.Msg {
		var (
			count int
			err   error
		)
		if liked {
			count, err = posts.Like(context.Background(), id)
		} else {
			count, err = posts.Unlike(context.Background(), id)
		}
		return LikeResultMsg{ID: id, Count: count, PrevLiked: prevLiked, PrevCount: prevCount, Err: err}
	}
}

func (m Model) saveComment(content string, commentID int) tea.Cmd {
	svc := m.commentSvc
	postID := m.postID
	return func() tea.Msg {
		if commentID != 0 {
			c, err := svc.UpdateComment(context.Background(), postID, commentID, content)
			return CommentSavedMsg{PostID: postID, Comment: c, Edited: true, Err: err}
		}
		c, err := svc.CreateComment(context.Background(), postID, content)
		return CommentSavedMsg{PostID: postID, Comment: c, Err: err}
	}
}

func (m Model) deleteComment(commentID int) tea.Cmd {
	svc := m.commentSvc
	postID := m.postID
	return func() tea.Msg {
		err := svc.DeleteComment(context.Background(), postID, commentID)
		return CommentDeletedMsg{PostID: postID, CommentID: commentID, Err: err}
	}
}

func (m Model) deletePost() tea.Cmd {
	posts := m.postSvc
	id := m.postID
	return func() tea.Msg {
		return PostDeletedMsg{ID: id, Err: posts.DeletePost(context.Background(), id)}
	}
}

func (m Model) share() tea.Cmd {
	url := m.shareURL(m.postID)
	copyText := m.copyText
	return func() tea.Msg {
		if err := copyText(url); err != nil {
			return common.StatusMsg{Text: "Copy failed. Link: " + url}
		}
		return common.StatusMsg{Text: "Link copied: " + url}
	}
}

func postUpdated(p domain.Post) tea.Cmd {
	s := p.Summary()
	return func() tea.Msg { return common.PostUpdatedMsg{Post: s} }
}

func back() tea.Msg { return BackMsg{} }
