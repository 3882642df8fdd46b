package compose

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/boardterm/domain"
	"github.com/CrestNiraj12/boardterm/markdown"
)

type stubPosts struct {
	created []domain.PostDraft
	updated map[int]domain.PostDraft
	err     error
}

func (s *stubPosts) Categories(context.Context) ([]domain.Category, error) { return nil, nil }
func (s *stubPosts) ListPosts(context.Context, domain.PostQuery, int, int) (domain.Page[domain.PostSummary], error) {
	return domain.Page[domain.PostSummary]{}, nil
}
func (s *stubPosts) GetPost(context.Context, int) (domain.Post, error) { return domain.Post{}, nil }
func (s *stubPosts) CreatePost(_ context.Context, d domain.PostDraft) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.created = append(s.created, d)
	return 41 + len(s.created), nil
}
func (s *stubPosts) UpdatePost(_ context.Context, id int, d domain.PostDraft) error {
	if s.updated == nil {
		s.updated = map[int]domain.PostDraft{}
	}
	s.updated[id] = d
	return s.err
}
func (s *stubPosts) DeletePost(context.Context, int) error    { return nil }
func (s *stubPosts) Like(context.Context, int) (int, error)   { return 0, nil }
func (s *stubPosts) Unlike(context.Context, int) (int, error) { return 0, nil }

type stubUploads struct {
	name, contentType string
	size              int64
}

func (s *stubUploads) UploadImage(_ context.Context, name, contentType string, size int64, r io.Reader) (string, error) {
	if err := domain.ValidateUpload(size, contentType); err != nil {
		return "", err
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	s.name, s.contentType, s.size = name, contentType, size
	return "https://cdn.test/images/" + name, nil
}

type stubComposer struct {
	content string
}

func (s stubComposer) Cmd(string, string) (*exec.Cmd, string, error) {
	return exec.Command("true"), "/tmp/boardterm-test.md", nil
}

func (s stubComposer) ReadContent(string) (string, error) { return s.content, nil }

var testCats = []domain.Category{{ID: 1, Name: "Free talk"}, {ID: 2, Name: "Questions"}}

func newTestPost(posts *stubPosts, uploads *stubUploads, categoryID int) Model {
	m := NewPost(posts, uploads, stubComposer{content: "from editor"}, testCats, categoryID)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func typeText(m Model, s string) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func alt(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func focusBody(m Model) Model {
	for m.focus != fieldBody {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	}
	return m
}

func TestSubmit_ValidatesBeforeNetwork(t *testing.T) {
	posts := &stubPosts{}
	m := newTestPost(posts, &stubUploads{}, domain.AllCategoryID)
	if m.focus != fieldCategory {
		t.Fatalf("without a preset category the category field should be focused")
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil || !errors.Is(m.err, domain.ErrNoCategory) {
		t.Fatalf("expected category error, got %v", m.err)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil || !errors.Is(m.err, domain.ErrEmptyTitle) {
		t.Fatalf("expected title error, got %v", m.err)
	}

	m = typeText(m, "My title")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil || !errors.Is(m.err, domain.ErrEmptyContent) {
		t.Fatalf("expected content error, got %v", m.err)
	}
	if len(posts.created) != 0 {
		t.Fatalf("invalid drafts must not reach the service")
	}
}

func TestSubmit_CreatesAndFinishes(t *testing.T) {
	posts := &stubPosts{}
	m := newTestPost(posts, &stubUploads{}, 2)
	if m.focus != fieldTitle {
		t.Fatalf("preset category should focus the title")
	}
	m = typeText(m, "Hello")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(m, "body text")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil || !m.submitting {
		t.Fatalf("expected submit command")
	}
	m, cmd = m.Update(cmd())
	got, ok := cmd().(DoneMsg)
	if !ok || got.PostID != 42 || got.Edited || got.Cancelled {
		t.Fatalf("unexpected done message %#v", got)
	}
	want := domain.PostDraft{Title: "Hello", Content: "body text", CategoryID: 2}
	if len(posts.created) != 1 || posts.created[0] != want {
		t.Fatalf("unexpected draft %#v", posts.created)
	}
}

func TestSubmit_ServerErrorKeepsEditor(t *testing.T) {
	posts := &stubPosts{err: domain.ErrUnauthorized}
	m := newTestPost(posts, &stubUploads{}, 1)
	m = typeText(m, "Hello")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(m, "body")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m, cmd = m.Update(cmd())
	if cmd != nil || m.submitting || !errors.Is(m.err, domain.ErrUnauthorized) {
		t.Fatalf("expected editor kept open with error, got %v", m.err)
	}
}

func TestEditPost_Updates(t *testing.T) {
	posts := &stubPosts{}
	p := domain.Post{ID: 9, Title: "Old", Content: "old body", Category: domain.Category{ID: 1, Name: "Free talk"}}
	m := EditPost(posts, &stubUploads{}, stubComposer{}, testCats, p)
	if m.focus != fieldBody || m.body.Value() != "old body" {
		t.Fatalf("expected body focused with existing content")
	}
	m = typeText(m, " edited")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m, cmd = m.Update(cmd())
	got := cmd().(DoneMsg)
	if !got.Edited || got.PostID != 9 {
		t.Fatalf("unexpected done %#v", got)
	}
	if posts.updated[9].Content != "old body edited" || posts.updated[9].CategoryID != 1 {
		t.Fatalf("unexpected update %#v", posts.updated[9])
	}
}

func TestToolbar_BoldUndoRedo(t *testing.T) {
	m := focusBody(newTestPost(&stubPosts{}, &stubUploads{}, 1))
	m = typeText(m, "hello")
	for i := 0; i < 5; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftLeft})
	}
	m, _ = m.Update(alt('b'))
	if m.body.Value() != "**hello**" {
		t.Fatalf("expected bold, got %q", m.body.Value())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if m.body.Value() != "hello" {
		t.Fatalf("undo should restore typed text, got %q", m.body.Value())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if m.body.Value() != "" {
		t.Fatalf("second undo should restore empty text, got %q", m.body.Value())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	if m.body.Value() != "**hello**" {
		t.Fatalf("redo should reapply bold, got %q", m.body.Value())
	}
}

func TestTyping_OnlyLatestPauseSnapshots(t *testing.T) {
	m := focusBody(newTestPost(&stubPosts{}, &stubUploads{}, 1))
	m = typeText(m, "a")
	first := m.typingSeq
	m = typeText(m, "b")

	m, _ = m.Update(snapshotMsg{seq: first})
	if m.history.Len() != 1 {
		t.Fatalf("stale pause must not snapshot, got %d", m.history.Len())
	}
	m, _ = m.Update(snapshotMsg{seq: m.typingSeq})
	if m.history.Len() != 2 || m.history.Current() != "ab" {
		t.Fatalf("expected snapshot of ab, got %q", m.history.Current())
	}
}

func TestToolbar_ListsAndIndent(t *testing.T) {
	m := focusBody(newTestPost(&stubPosts{}, &stubUploads{}, 1))
	m = typeText(m, "item")
	m, _ = m.Update(alt('l'))
	if m.body.Value() != "- item" {
		t.Fatalf("expected bullet, got %q", m.body.Value())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.body.Value() != "- item\n- " {
		t.Fatalf("expected list continuation, got %q", m.body.Value())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !strings.HasSuffix(m.body.Value(), "- item\n-   ") {
		t.Fatalf("expected indent, got %q", m.body.Value())
	}
}

func TestPrompt_LinkAndColor(t *testing.T) {
	m := focusBody(newTestPost(&stubPosts{}, &stubUploads{}, 1))
	m, _ = m.Update(alt('k'))
	if !m.prompt.active() {
		t.Fatalf("expected link prompt")
	}
	m = typeText(m, "https://go.dev")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.body.Value() != "[Link text](https://go.dev)" || m.prompt.active() {
		t.Fatalf("unexpected link insert %q", m.body.Value())
	}

	m.body.SetBuffer(markdown.Buffer{Text: m.body.Value(), Sel: markdown.Cursor(0)})
	m, _ = m.Update(alt('t'))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	want := `<span style="color:` + markdown.TextColors[1] + `">Color Text</span>`
	if !strings.HasPrefix(m.body.Value(), want) {
		t.Fatalf("expected color span, got %q", m.body.Value())
	}
}

func TestPrompt_EscCancels(t *testing.T) {
	m := focusBody(newTestPost(&stubPosts{}, &stubUploads{}, 1))
	m, _ = m.Update(alt('a'))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.prompt.active() || cmd != nil || m.body.Value() != "" {
		t.Fatalf("esc should only close the prompt")
	}
}

func TestImage_UploadsAndInserts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	if err := os.WriteFile(path, png, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	uploads := &stubUploads{}
	m := focusBody(newTestPost(&stubPosts{}, uploads, 1))

	m, _ = m.Update(alt('m'))
	m = typeText(m, path)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || !m.uploading {
		t.Fatalf("expected upload to start")
	}
	m, _ = m.Update(cmd())
	if m.uploading || m.body.Value() != "![photo](https://cdn.test/images/photo.png)" {
		t.Fatalf("unexpected body %q (err=%v)", m.body.Value(), m.err)
	}
	if uploads.contentType != "image/png" || uploads.size != int64(len(png)) {
		t.Fatalf("unexpected upload %#v", uploads)
	}
}

func TestImage_RejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("just text"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	m := focusBody(newTestPost(&stubPosts{}, &stubUploads{}, 1))
	m, _ = m.Update(alt('m'))
	m = typeText(m, path)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(cmd())
	if !errors.Is(m.err, domain.ErrNotImage) || m.body.Value() != "" {
		t.Fatalf("expected not-image error, got %v", m.err)
	}
}

func TestImage_RemoteURLInsertsDirectly(t *testing.T) {
	m := focusBody(newTestPost(&stubPosts{}, &stubUploads{}, 1))
	m, _ = m.Update(alt('m'))
	m = typeText(m, "https://example.com/cat.gif")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || m.body.Value() != "![image](https://example.com/cat.gif)" {
		t.Fatalf("unexpected body %q", m.body.Value())
	}
}

func TestExternalEditor_ReplacesBodyAsUndoStep(t *testing.T) {
	m := focusBody(newTestPost(&stubPosts{}, &stubUploads{}, 1))
	m = typeText(m, "draft")
	m, _ = m.Update(editorFinishedMsg{tmpPath: "/tmp/x.md"})
	if m.body.Value() != "from editor" {
		t.Fatalf("expected editor content, got %q", m.body.Value())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if m.body.Value() != "draft" {
		t.Fatalf("editor round trip should be undoable, got %q", m.body.Value())
	}
}

func TestCancel_ConfirmsWhenChanged(t *testing.T) {
	m := newTestPost(&stubPosts{}, &stubUploads{}, 1)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if got, ok := cmd().(DoneMsg); !ok || !got.Cancelled {
		t.Fatalf("unchanged editor should close at once")
	}

	m = typeText(m, "x")
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil || !m.confirmDiscard {
		t.Fatalf("expected discard confirmation")
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if got, ok := cmd().(DoneMsg); !ok || !got.Cancelled {
		t.Fatalf("second esc should cancel")
	}
}

func TestDetectContentType_FallsBackToExtension(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "*.webp")
	if err != nil {
		t.Fatalf("temp: %v", err)
	}
	defer f.Close()
	if _, err := f.Write([]byte{0x00, 0x01, 0x02}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		t.Fatalf("seek: %v", err)
	}
	ct, err := detectContentType(f, f.Name())
	if err != nil || ct != "image/webp" {
		t.Fatalf("expected image/webp, got %q (%v)", ct, err)
	}
}
