package compose

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) submit() tea.Cmd {
	posts := m.posts
	d := m.draft()
	id := m.postID
	return func() tea.Msg {
		if id != 0 {
			err := posts.UpdatePost(context.Background(), id, d)
			return submitResultMsg{id: id, edited: true, err: err}
		}
		newID, err := posts.CreatePost(context.Background(), d)
		return submitResultMsg{id: newID, err: err}
	}
}

// launchEditor prepares the editor command and uses tea.ExecProcess to
// suspend Bubble Tea's raw terminal mode while the editor runs.
func (m Model) launchEditor() tea.Cmd {
	cmd, tmpPath, err := m.composer.Cmd(m.body.Value(), m.title.Value())
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: fmt.Errorf("preparing editor: %w", err)}
		}
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

func (m Model) uploadImage(path string) tea.Cmd {
	uploads := m.uploads
	return func() tea.Msg {
		path = expandHome(path)
		f, err := os.Open(path)
		if err != nil {
			return imageUploadedMsg{err: err}
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return imageUploadedMsg{err: err}
		}
		ct, err := detectContentType(f, path)
		if err != nil {
			return imageUploadedMsg{err: err}
		}
		name := filepath.Base(path)
		url, err := uploads.UploadImage(context.Background(), name, ct, info.Size(), f)
		if err != nil {
			return imageUploadedMsg{err: err}
		}
		return imageUploadedMsg{alt: strings.TrimSuffix(name, filepath.Ext(name)), url: url}
	}
}

// detectContentType sniffs the first bytes of f and rewinds it. The extension
// is used when sniffing is inconclusive.
func detectContentType(f io.ReadSeeker, path string) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	ct := http.DetectContentType(head[:n])
	if ct == "application/octet-stream" {
		if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
			ct = byExt
		}
	}
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct, nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func snapshotAfterPause(seq int) tea.Cmd {
	return tea.Tick(typingSnapshotDelay, func(time.Time) tea.Msg {
		return snapshotMsg{seq: seq}
	})
}
