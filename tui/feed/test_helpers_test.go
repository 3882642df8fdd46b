package feed

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/boardterm/domain"
)

type listCall struct {
	q    domain.PostQuery
	page int
	size int
}

type stubPosts struct {
	total int
	cats  []domain.Category
	err   error
	calls []listCall
}

func (s *stubPosts) Categories(context.Context) ([]domain.Category, error) {
	return s.cats, nil
}

func (s *stubPosts) ListPosts(_ context.Context, q domain.PostQuery, page, size int) (domain.Page[domain.PostSummary], error) {
	s.calls = append(s.calls, listCall{q: q, page: page, size: size})
	if s.err != nil {
		return domain.Page[domain.PostSummary]{}, s.err
	}
	return makePage(s.total, page, size), nil
}

func (s *stubPosts) GetPost(context.Context, int) (domain.Post, error) { return domain.Post{}, nil }
func (s *stubPosts) CreatePost(context.Context, domain.PostDraft) (int, error) {
	return 0, nil
}
func (s *stubPosts) UpdatePost(context.Context, int, domain.PostDraft) error { return nil }
func (s *stubPosts) DeletePost(context.Context, int) error                   { return nil }
func (s *stubPosts) Like(context.Context, int) (int, error)                  { return 0, nil }
func (s *stubPosts) Unlike(context.Context, int) (int, error)                { return 0, nil }

func (s *stubPosts) lastCall() listCall {
	if len(s.calls) == 0 {
		return listCall{}
	}
	return s.calls[len(s.calls)-1]
}

// makePage builds page n of a collection of total posts with IDs total..1.
func makePage(total, page, size int) domain.Page[domain.PostSummary] {
	out := domain.Page[domain.PostSummary]{Count: total}
	first := (page - 1) * size
	for i := first; i < min(first+size, total); i++ {
		out.Results = append(out.Results, makePost(total-i))
	}
	if first+size < total {
		next := fmt.Sprintf("/api/v1/posts?page=%d", page+1)
		out.Next = &next
	}
	return out
}

func makePost(id int) domain.PostSummary {
	return domain.PostSummary{
		ID:             id,
		Title:          fmt.Sprintf("Post %d", id),
		Author:         domain.Author{ID: 1, Nickname: "demo"},
		ContentPreview: "preview",
		LikeCount:      id,
		CategoryID:     1,
		CreatedAt:      time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

// drain runs cmd and any batched children, skipping ticks.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// apply applies every message produced by cmd to m.
func apply(m Model, cmd tea.Cmd) Model {
	for _, msg := range drain(cmd) {
		switch msg.(type) {
		case PostsLoadedMsg, PostsErrorMsg, CategoriesLoadedMsg:
			m, _ = m.Update(msg)
		}
	}
	return m
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newLoaded(stub *stubPosts, prefs Prefs) Model {
	m := New(stub, prefs, 10, true)
	m.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	return apply(m, m.Init())
}
