package feed

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/boardterm/app"
	"github.com/CrestNiraj12/boardterm/domain"
	"github.com/CrestNiraj12/boardterm/paging"
	"github.com/CrestNiraj12/boardterm/tui/common"
)

// rowHeight is the rendered height of one post card, borders included.
const rowHeight = 5

// PostsLoadedMsg is sent when a page of the post list arrives.
type PostsLoadedMsg struct {
	Req  paging.Request
	Page domain.Page[domain.PostSummary]
}

// PostsErrorMsg is sent when a page fetch fails.
type PostsErrorMsg struct {
	Req paging.Request
	Err error
}

// CategoriesLoadedMsg is sent when the category tabs are fetched.
type CategoriesLoadedMsg struct {
	Categories []domain.Category
	Err        error
}

// OpenPostMsg asks the app to open the detail view.
type OpenPostMsg struct {
	ID int
}

// NewPostMsg asks the app to open the editor for a new post.
type NewPostMsg struct {
	CategoryID int
	Categories []domain.Category
}

// PrefsChangedMsg is emitted whenever a persisted list preference changes.
type PrefsChangedMsg struct {
	Prefs Prefs
}

// Prefs are the list settings that survive restarts.
type Prefs struct {
	CategoryID int
	Sort       domain.SortOption
	Filter     domain.SearchFilter
	Paging     domain.PagingMode
}

type queryState struct {
	categories []domain.Category // "All" first
	categoryID int
	sort       domain.SortOption
	filter     domain.SearchFilter
	keyword    string
	catErr     error
}

type uiState struct {
	keys         common.KeyMap
	spinner      spinner.Model
	search       textinput.Model
	searching    bool
	width        int
	height       int
	cursor       int
	start        int
	showAllHints bool
	now          func() time.Time
}

// Model holds the state for the post list.
type Model struct {
	posts    app.PostService
	pageSize int
	signedIn bool // false hides and refuses write actions
	list     *paging.Pager[domain.PostSummary]
	queryState
	uiState
}

var allCategory = domain.Category{ID: domain.AllCategoryID, Name: "All"}

// New creates a list model starting from the saved preferences. Anonymous
// users (signedIn false) get a read-only list.
func New(posts app.PostService, prefs Prefs, pageSize int, signedIn bool) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	ti := textinput.New()
	ti.Placeholder = "keyword"
	ti.Prompt = "/ "
	ti.CharLimit = 100

	return Model{
		posts:    posts,
		pageSize: pageSize,
		signedIn: signedIn,
		list: paging.New(paging.ModeFor(prefs.Paging), pageSize, func(p domain.PostSummary) int {
			return p.ID
		}),
		queryState: queryState{
			categories: []domain.Category{allCategory},
			categoryID: prefs.CategoryID,
			sort:       prefs.Sort.Normalize(),
			filter:     prefs.Filter.Normalize(),
		},
		uiState: uiState{
			keys:    common.DefaultKeyMap(),
			spinner: s,
			search:  ti,
			now:     time.Now,
		},
	}
}

// Init fetches categories and the first page.
func (m Model) Init() tea.Cmd {
	req := m.list.Reset(m.query().Key())
	return tea.Batch(m.fetchCategories(), m.fetchPage(req), m.spinner.Tick)
}

// Update handles messages for the list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

// Prefs returns the current persisted settings.
func (m Model) Prefs() Prefs {
	mode := domain.PagingInfinite
	if m.list.Mode() == paging.ModePages {
		mode = domain.PagingPages
	}
	return Prefs{CategoryID: m.categoryID, Sort: m.sort, Filter: m.filter, Paging: mode}
}

// Categories returns the server categories, without "All".
func (m Model) Categories() []domain.Category {
	return m.categories[1:]
}

// Searching reports whether the search box has focus.
func (m Model) Searching() bool {
	return m.searching
}

func (m Model) query() domain.PostQuery {
	return domain.PostQuery{
		CategoryID: m.categoryID,
		Sort:       m.sort,
		Filter:     m.filter,
		Keyword:    m.keyword,
	}
}

func (m Model) categoryIndex() int {
	for i, c := range m.categories {
		if c.ID == m.categoryID {
			return i
		}
	}
	return 0
}

func (m Model) selected() (domain.PostSummary, bool) {
	items := m.list.Items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return domain.PostSummary{}, false
	}
	return items[m.cursor], true
}

func (m Model) categoryName(id int) string {
	for _, c := range m.categories {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}
