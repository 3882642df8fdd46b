package common

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/boardterm/domain"
)

// LoginHint is shown whenever the server rejects our credentials.
const LoginHint = "Session expired or missing. Run `boardterm login`."

// ErrorText turns a service error into a status line.
func ErrorText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrUnauthorized):
		return LoginHint
	case errors.Is(err, domain.ErrForbidden):
		return "You can only change your own posts and comments."
	case errors.Is(err, domain.ErrNotFound):
		return "It was deleted or never existed."
	default:
		return err.Error()
	}
}

// FormatRelative renders t relative to now: "just now", "5m ago", "3h ago",
// "2d ago", and a plain date after a week.
func FormatRelative(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	default:
		return t.Local().Format("2006-01-02")
	}
}

// Truncate cuts s to width terminal cells, adding an ellipsis when it had to cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// OneLine collapses whitespace so s fits a list row.
func OneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Glamour has no notion of these tags; they come from the editor toolbar.
var htmlTagRe = regexp.MustCompile(`</?(u|mark|span|div)[^>]*>`)

// MarkdownStyle is the glamour style used for post bodies.
var MarkdownStyle = "dark"

// RenderMarkdown renders a post body for the terminal at the given width.
// It falls back to the raw text when glamour fails.
func RenderMarkdown(md string, width int) string {
	md = htmlTagRe.ReplaceAllString(md, "")
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(MarkdownStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
