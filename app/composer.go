package app

import "os/exec"

// Composer prepares an external editor session for a post body.
// Implemented by infrastructure (e.g. EnvEditor spawning $EDITOR).
// It does not run the editor: the TUI hands the command to tea.ExecProcess
// so Bubble Tea can release the terminal, then reads the result back.
type Composer interface {
	Cmd(content, title string) (*exec.Cmd, string, error)
	ReadContent(path string) (string, error)
}
