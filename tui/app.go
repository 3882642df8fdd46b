package tui

import (
	"log"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/boardterm/app"
	"github.com/CrestNiraj12/boardterm/domain"
	"github.com/CrestNiraj12/boardterm/infra/config"
	"github.com/CrestNiraj12/boardterm/tui/common"
	"github.com/CrestNiraj12/boardterm/tui/compose"
	"github.com/CrestNiraj12/boardterm/tui/detail"
	"github.com/CrestNiraj12/boardterm/tui/feed"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Posts     app.PostService
	Comments  app.CommentService
	Uploads   app.UploadService
	Composer  app.Composer
	Identity  app.Identity // zero when anonymous
	UIState   config.UIState
	StatePath string // empty disables saving list preferences
	PageSize  int
	ShareURL  func(postID int) string
}

type activeView int

const (
	listView activeView = iota
	detailView
	composeView
)

// App is the root Bubble Tea model. It routes between sub-views.
type App struct {
	deps     Deps
	active   activeView
	returnTo activeView // where a cancelled editor goes back to
	feed     feed.Model
	detail   detail.Model
	compose  compose.Model
	keys     common.KeyMap
	width    int
	height   int
	status   string // Transient status message (e.g. "Post published.")
	statusOK bool
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	st := deps.UIState.Normalize()
	prefs := feed.Prefs{CategoryID: st.CategoryID, Sort: st.Sort, Filter: st.Filter, Paging: st.PagingMode}
	return App{
		deps:   deps,
		active: listView,
		feed:   feed.New(deps.Posts, prefs, deps.PageSize, deps.Identity.SignedIn()),
		detail: detail.New(deps.Posts, deps.Comments, deps.PageSize, deps.ShareURL, deps.Identity.SignedIn()),
		keys:   common.DefaultKeyMap(),
	}
}

// Init starts the list view.
func (a App) Init() tea.Cmd {
	return a.feed.Init()
}

// Update handles messages and routes to the owning sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		a.status = ""

	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(msg)
		cmds = append(cmds, cmd)
		a.detail, cmd = a.detail.Update(msg)
		cmds = append(cmds, cmd)
		if a.active == composeView {
			a.compose, cmd = a.compose.Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case spinner.TickMsg:
		// Each spinner ignores ticks carrying another spinner's ID.
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(msg)
		cmds = append(cmds, cmd)
		a.detail, cmd = a.detail.Update(msg)
		cmds = append(cmds, cmd)
		if a.active == composeView {
			a.compose, cmd = a.compose.Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case common.StatusMsg:
		if msg.Err != nil {
			a.status, a.statusOK = common.ErrorText(msg.Err), false
		} else {
			a.status, a.statusOK = msg.Text, true
		}
		return a, nil

	case feed.PrefsChangedMsg:
		return a, a.savePrefs(msg.Prefs)

	case feed.PostsLoadedMsg, feed.PostsErrorMsg, feed.CategoriesLoadedMsg,
		common.PostUpdatedMsg, common.PostRemovedMsg, common.PostCreatedMsg:
		return a.updateFeed(msg)

	case detail.PostLoadedMsg, detail.CommentsLoadedMsg, detail.CommentsErrorMsg,
		detail.LikeResultMsg, detail.CommentSavedMsg, detail.CommentDeletedMsg, detail.PostDeletedMsg:
		return a.updateDetail(msg)

	case feed.OpenPostMsg:
		return a.openDetail(msg.ID)

	case feed.NewPostMsg:
		if !a.deps.Identity.SignedIn() {
			return a, common.StatusErr(domain.ErrUnauthorized)
		}
		a.compose = compose.NewPost(a.deps.Posts, a.deps.Uploads, a.deps.Composer, msg.Categories, msg.CategoryID)
		return a.startCompose(listView)

	case detail.EditPostMsg:
		if !a.deps.Identity.SignedIn() {
			return a, common.StatusErr(domain.ErrUnauthorized)
		}
		a.compose = compose.EditPost(a.deps.Posts, a.deps.Uploads, a.deps.Composer, a.feed.Categories(), msg.Post)
		return a.startCompose(detailView)

	case detail.BackMsg:
		a.active = listView
		return a, nil

	case compose.DoneMsg:
		return a.finishCompose(msg)
	}

	// Delegate to the active sub-model.
	switch a.active {
	case detailView:
		return a.updateDetail(msg)
	case composeView:
		updated, cmd := a.compose.Update(msg)
		a.compose = updated
		return a, cmd
	}
	return a.updateFeed(msg)
}

func (a App) updateFeed(msg tea.Msg) (App, tea.Cmd) {
	updated, cmd := a.feed.Update(msg)
	a.feed = updated
	return a, cmd
}

func (a App) updateDetail(msg tea.Msg) (App, tea.Cmd) {
	updated, cmd := a.detail.Update(msg)
	a.detail = updated
	return a, cmd
}

func (a App) openDetail(id int) (App, tea.Cmd) {
	a.active = detailView
	updated, cmd := a.detail.Open(id)
	a.detail = updated
	return a, cmd
}

func (a App) startCompose(from activeView) (App, tea.Cmd) {
	a.returnTo = from
	a.active = composeView
	a.status = ""
	var cmd tea.Cmd
	if a.width > 0 {
		a.compose, cmd = a.compose.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
	}
	return a, tea.Batch(cmd, a.compose.Init())
}

func (a App) finishCompose(msg compose.DoneMsg) (App, tea.Cmd) {
	if msg.Cancelled {
		a.active = a.returnTo
		a.status, a.statusOK = "Cancelled.", true
		return a, nil
	}
	if msg.Edited {
		a.status, a.statusOK = "Post updated.", true
		return a.openDetail(msg.PostID)
	}

	var feedCmd tea.Cmd
	a.feed, feedCmd = a.feed.Update(common.PostCreatedMsg{ID: msg.PostID})
	a, cmd := a.openDetail(msg.PostID)
	a.status, a.statusOK = "Post published.", true
	return a, tea.Batch(feedCmd, cmd)
}

func (a App) savePrefs(p feed.Prefs) tea.Cmd {
	path := a.deps.StatePath
	if path == "" {
		return nil
	}
	st := config.UIState{CategoryID: p.CategoryID, Sort: p.Sort, Filter: p.Filter, PagingMode: p.Paging}
	return func() tea.Msg {
		if err := config.SaveUIState(path, st); err != nil {
			log.Printf("saving ui state: %v", err)
		}
		return nil
	}
}

// View renders the active sub-model.
func (a App) View() string {
	var s string

	switch a.active {
	case listView:
		s = a.feed.View()
	case detailView:
		s = a.detail.View()
	case composeView:
		s = a.compose.View()
	}

	return s + "\n" + a.statusLine()
}

func (a App) statusLine() string {
	who := "anonymous (read-only)"
	if a.deps.Identity.Nickname != "" {
		who = "@" + a.deps.Identity.Nickname
	}
	line := common.StatusBarStyle.Render(" " + who)
	if a.status == "" {
		return line
	}
	style := common.ErrorStyle
	if a.statusOK {
		style = common.SuccessStyle
	}
	return line + common.StatusBarStyle.Render(" • ") + style.Render(a.status)
}
