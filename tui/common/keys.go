package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit        key.Binding
	ForceQuit   key.Binding
	Back        key.Binding
	Refresh     key.Binding
	Up          key.Binding
	Down        key.Binding
	Open        key.Binding // enter: open detail
	New         key.Binding // n: new post
	Edit        key.Binding // e: edit own post
	Delete      key.Binding // d: delete own post
	Like        key.Binding // l: like/unlike
	Comment     key.Binding // c: write a comment
	EditComment key.Binding // E: edit selected own comment
	DelComment  key.Binding // D: delete selected own comment
	Share       key.Binding // s: copy link
	LoadMore    key.Binding // L: next page of the list / comments
	ToggleHints key.Binding

	// List view
	NextCategory key.Binding
	PrevCategory key.Binding
	Sort         key.Binding
	Filter       key.Binding
	Search       key.Binding
	PagingMode   key.Binding
	NextPage     key.Binding
	PrevPage     key.Binding
	FirstPage    key.Binding
	LastPage     key.Binding
	NextBlock    key.Binding
	PrevBlock    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc/q", "back"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new post"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "like"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		EditComment: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "edit comment"),
		),
		DelComment: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete comment"),
		),
		Share: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "copy link"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "load more"),
		),
		ToggleHints: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "all keys"),
		),
		NextCategory: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next category"),
		),
		PrevCategory: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev category"),
		),
		Sort: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sort"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "search field"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		PagingMode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "pages/scroll"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]", "right"),
			key.WithHelp("]", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("[", "left"),
			key.WithHelp("[", "prev page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last page"),
		),
		NextBlock: key.NewBinding(
			key.WithKeys("}"),
			key.WithHelp("}", "next 10 pages"),
		),
		PrevBlock: key.NewBinding(
			key.WithKeys("{"),
			key.WithHelp("{", "prev 10 pages"),
		),
	}
}

// EditorKeyMap holds the compose view bindings, including the formatting toolbar.
type EditorKeyMap struct {
	Submit      key.Binding
	Cancel      key.Binding
	NextField   key.Binding
	Preview     key.Binding
	ExtEditor   key.Binding
	Undo        key.Binding
	Redo        key.Binding
	Bold        key.Binding
	Italic      key.Binding
	Underline   key.Binding
	Strike      key.Binding
	Highlight   key.Binding
	Code        key.Binding
	Link        key.Binding
	Image       key.Binding
	Bullet      key.Binding
	Ordered     key.Binding
	Quote       key.Binding
	Color       key.Binding
	FontSize    key.Binding
	Align       key.Binding
	LineHeight  key.Binding
	ClearFormat key.Binding
}

// DefaultEditorKeyMap returns the compose bindings.
func DefaultEditorKeyMap() EditorKeyMap {
	b := func(k, help string) key.Binding {
		return key.NewBinding(key.WithKeys(k), key.WithHelp(k, help))
	}
	return EditorKeyMap{
		Submit:      b("ctrl+s", "submit"),
		Cancel:      b("esc", "cancel"),
		NextField:   b("ctrl+t", "next field"),
		Preview:     b("ctrl+p", "preview"),
		ExtEditor:   b("ctrl+e", "$EDITOR"),
		Undo:        b("ctrl+z", "undo"),
		Redo:        b("ctrl+y", "redo"),
		Bold:        b("alt+b", "bold"),
		Italic:      b("alt+i", "italic"),
		Underline:   b("alt+u", "underline"),
		Strike:      b("alt+s", "strike"),
		Highlight:   b("alt+h", "highlight"),
		Code:        b("alt+c", "code"),
		Link:        b("alt+k", "link"),
		Image:       b("alt+m", "image"),
		Bullet:      b("alt+l", "bullets"),
		Ordered:     b("alt+o", "numbers"),
		Quote:       b("alt+q", "quote"),
		Color:       b("alt+t", "color"),
		FontSize:    b("alt+f", "size"),
		Align:       b("alt+a", "align"),
		LineHeight:  b("alt+g", "line height"),
		ClearFormat: b("alt+r", "clear"),
	}
}
