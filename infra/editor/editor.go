package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EnvEditor prepares an external editor command using $EDITOR (fallback: "vi").
// It does NOT run the editor itself: callers use tea.ExecProcess with the
// returned *exec.Cmd so Bubble Tea properly suspends raw terminal mode.
type EnvEditor struct{}

// NewEnvEditor creates an EnvEditor.
func NewEnvEditor() *EnvEditor {
	return &EnvEditor{}
}

const instructionHeader = `<!--
boardterm: Edit the post body below (markdown).
`

const instructionFooter = `
- SAVE and EXIT to return to the editor (e.g., :wq in vi).
- Emptying the file keeps the previous body.
-->

`

func instructionComment(title string) string {
	var b strings.Builder
	b.WriteString(instructionHeader)
	if t := strings.TrimSpace(title); t != "" {
		// A title containing "-->" would end the comment early.
		b.WriteString("Title: " + strings.ReplaceAll(t, "-->", "->") + "\n")
	}
	b.WriteString(instructionFooter)
	return b.String()
}

// Cmd prepares an *exec.Cmd for the editor and a temp file path.
// It writes the provided content (and an instruction comment) to the temp file.
// $EDITOR may carry arguments, e.g. "code --wait".
func (e *EnvEditor) Cmd(content, title string) (*exec.Cmd, string, error) {
	args := strings.Fields(os.Getenv("EDITOR"))
	if len(args) == 0 {
		args = []string{"vi"}
	}

	tmpFile, err := os.CreateTemp("", "boardterm-*.md")
	if err != nil {
		return nil, "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer tmpFile.Close()

	if _, err := tmpFile.WriteString(instructionComment(title) + content); err != nil {
		os.Remove(tmpPath)
		return nil, "", fmt.Errorf("writing to temp file: %w", err)
	}

	cmd := exec.Command(args[0], append(args[1:], tmpPath)...)
	return cmd, tmpPath, nil
}

// ReadContent reads the temp file, trims surrounding blank lines, and removes
// the file. Only a leading instruction comment is stripped; comments inside
// the body are kept.
func (e *EnvEditor) ReadContent(path string) (string, error) {
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading temp file: %w", err)
	}

	content := strings.TrimLeft(string(data), " \t\r\n")
	if strings.HasPrefix(content, "<!--") {
		if idx := strings.Index(content, "-->"); idx != -1 {
			content = content[idx+3:]
		}
	}
	return strings.Trim(content, "\r\n"), nil
}
