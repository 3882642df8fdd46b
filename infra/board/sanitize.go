package board

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/boardterm/domain"
)

// sanitizeForTerminal removes escape sequences and control characters from
// server text so user content cannot drive the terminal. Newlines and tabs stay.
func sanitizeForTerminal(s string) string {
	s = ansi.Strip(s)
	if !strings.ContainsFunc(s, isUnsafeRune) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isUnsafeRune(r) {
			return -1
		}
		return r
	}, s)
}

func isUnsafeRune(r rune) bool {
	if r == '\n' || r == '\t' {
		return false
	}
	return unicode.IsControl(r)
}

func sanitizeAuthor(a domain.Author) domain.Author {
	a.Nickname = sanitizeForTerminal(a.Nickname)
	return a
}

func sanitizeSummary(p domain.PostSummary) domain.PostSummary {
	p.Title = sanitizeForTerminal(p.Title)
	p.ContentPreview = sanitizeForTerminal(p.ContentPreview)
	p.Author = sanitizeAuthor(p.Author)
	return p
}

func sanitizePost(p domain.Post) domain.Post {
	p.Title = sanitizeForTerminal(p.Title)
	p.Content = sanitizeForTerminal(p.Content)
	p.Category.Name = sanitizeForTerminal(p.Category.Name)
	p.Author = sanitizeAuthor(p.Author)
	return p
}

func sanitizeComment(c domain.Comment) domain.Comment {
	c.Content = sanitizeForTerminal(c.Content)
	c.Author = sanitizeAuthor(c.Author)
	return c
}
