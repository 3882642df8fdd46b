package common

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/boardterm/domain"
)

// PostUpdatedMsg carries fresh counters or text for a post shown in the list.
type PostUpdatedMsg struct {
	Post domain.PostSummary
}

// PostRemovedMsg reports that a post was deleted.
type PostRemovedMsg struct {
	ID int
}

// PostCreatedMsg reports a newly published post.
type PostCreatedMsg struct {
	ID int
}

// StatusMsg asks the app shell to show a one-line status. Err wins over Text.
type StatusMsg struct {
	Text string
	Err  error
}

// Status returns a command emitting a StatusMsg.
func Status(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}

// StatusErr returns a command emitting a failed StatusMsg.
func StatusErr(err error) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Err: err} }
}
