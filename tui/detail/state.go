// Package detail shows one post with its comments and handles likes, comment
// writing and deletion.
package detail

import (
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/boardterm/app"
	"github.com/CrestNiraj12/boardterm/domain"
	"github.com/CrestNiraj12/boardterm/paging"
	"github.com/CrestNiraj12/boardterm/tui/common"
	"github.com/CrestNiraj12/boardterm/tui/textbox"
)

// mentionLimit caps the suggestion popup.
const mentionLimit = 5

// PostLoadedMsg is sent when the post body arrives.
type PostLoadedMsg struct {
	ID   int
	Post domain.Post
	Err  error
}

// CommentsLoadedMsg is sent when a page of comments arrives.
type CommentsLoadedMsg struct {
	Req  paging.Request
	Page domain.Page[domain.Comment]
}

// CommentsErrorMsg is sent when a comment page fails to load.
type CommentsErrorMsg struct {
	Req paging.Request
	Err error
}

// LikeResultMsg carries the server's like count, or the state to roll back to.
type LikeResultMsg struct {
	ID        int
	Count     int
	PrevLiked bool
	PrevCount int
	Err       error
}

// CommentSavedMsg is sent after a comment was created or edited.
type CommentSavedMsg struct {
	PostID  int
	Comment domain.Comment
	Edited  bool
	Err     error
}

// CommentDeletedMsg is sent after a comment deletion attempt.
type CommentDeletedMsg struct {
	PostID    int
	CommentID int
	Err       error
}

// PostDeletedMsg is sent after a post deletion attempt.
type PostDeletedMsg struct {
	ID  int
	Err error
}

// BackMsg asks the app to return to the list.
type BackMsg struct{}

// EditPostMsg asks the app to open the editor on the current post.
type EditPostMsg struct {
	Post domain.Post
}

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmDeletePost
	confirmDeleteComment
)

type postState struct {
	postID      int
	post        domain.Post
	loaded      bool
	err         error
	likePending bool
	thread      *paging.Pager[domain.Comment]
	cursor      int // -1 is the post itself, otherwise a comment index
	confirm     confirmKind
}

type composeState struct {
	composing      bool
	editingComment int // 0 when writing a new comment
	input          textbox.Model
	candidates     []string
	candidateIdx   int
	inputErr       error
	saving         bool
}

type uiState struct {
	keys         common.KeyMap
	spinner      spinner.Model
	viewport     viewport.Model
	width        int
	height       int
	commentLines []int // first content line of each comment
	body         string
	bodyKey      string
	showAllHints bool
	now          func() time.Time
}

// Model holds the state for the detail view.
type Model struct {
	postSvc    app.PostService
	commentSvc app.CommentService
	pageSize   int
	signedIn   bool // false makes the view read-only
	shareURL   func(id int) string
	copyText   func(string) error
	postState
	composeState
	uiState
}

// New creates a detail model. shareURL builds the public link copied by the
// share key. Anonymous users (signedIn false) cannot like, comment or edit.
func New(posts app.PostService, comments app.CommentService, pageSize int, shareURL func(int) string, signedIn bool) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	in := textbox.New()
	in.Placeholder = "Write a comment. @ to mention"
	in.ListContinuation = false

	return Model{
		postSvc:    posts,
		commentSvc: comments,
		pageSize:   pageSize,
		signedIn:   signedIn,
		shareURL:   shareURL,
		copyText:   clipboard.WriteAll,
		postState: postState{
			cursor: -1,
			thread: paging.New(paging.ModeInfinite, pageSize, func(c domain.Comment) int {
				return c.ID
			}),
		},
		composeState: composeState{input: in},
		uiState: uiState{
			keys:     common.DefaultKeyMap(),
			spinner:  s,
			viewport: viewport.New(0, 0),
			now:      time.Now,
		},
	}
}

// Open switches the view to post id and starts loading it.
func (m Model) Open(id int) (Model, tea.Cmd) {
	m.postState = postState{
		postID:   id,
		cursor:   -1,
		thread:   m.thread,
	}
	m.composeState = composeState{input: m.input}
	m.input.SetValue("")
	m.input.Blur()
	m.viewport.GotoTop()
	req := m.thread.Reset(strconv.Itoa(id))
	m.refreshContent()
	return m, tea.Batch(m.fetchPost(id), m.fetchComments(req), m.spinner.Tick)
}

// PostID returns the post on display.
func (m Model) PostID() int { return m.postID }

// Composing reports whether the comment box has focus.
func (m Model) Composing() bool { return m.composing }

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

func (m Model) selectedComment() (domain.Comment, bool) {
	items := m.thread.Items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return domain.Comment{}, false
	}
	return items[m.cursor], true
}

// nicknames are the mention candidates: everyone visible in the thread.
func (m Model) nicknames() []string {
	out := make([]string, 0, m.thread.Len()+1)
	if m.loaded {
		out = append(out, m.post.Author.Nickname)
	}
	for _, c := range m.thread.Items() {
		out = append(out, c.Author.Nickname)
	}
	return out
}
