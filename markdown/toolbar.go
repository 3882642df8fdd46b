package markdown

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Wrapper is a prefix/suffix pair applied around the selection.
type Wrapper struct {
	Prefix      string
	Suffix      string
	Placeholder string
}

var (
	Bold          = Wrapper{Prefix: "**", Suffix: "**", Placeholder: "Bold text"}
	Italic        = Wrapper{Prefix: "*", Suffix: "*", Placeholder: "Italic text"}
	Underline     = Wrapper{Prefix: "<u>", Suffix: "</u>", Placeholder: "Underlined text"}
	Strikethrough = Wrapper{Prefix: "~~", Suffix: "~~", Placeholder: "Strikethrough text"}
	Highlight     = Wrapper{Prefix: "<mark>", Suffix: "</mark>", Placeholder: "Highlighted text"}
	InlineCode    = Wrapper{Prefix: "`", Suffix: "`", Placeholder: "code"}
)

// FontSizes are the sizes offered by the font size menu.
var FontSizes = []int{12, 14, 16, 18, 24, 32}

// TextColors are the colors offered by the color menu.
var TextColors = []string{"#EF4444", "#F59E0B", "#10B981", "#3B82F6", "#8B5CF6", "#6B7280"}

// Alignments are the values accepted by Align.
var Alignments = []string{"left", "center", "right", "justify"}

// FontSize wraps the selection in a sized span.
func FontSize(px int) Wrapper {
	return Wrapper{Prefix: fmt.Sprintf(`<span style="font-size:%dpx">`, px), Suffix: "</span>", Placeholder: "Text"}
}

// TextColor wraps the selection in a colored span.
func TextColor(color string) Wrapper {
	return Wrapper{Prefix: fmt.Sprintf(`<span style="color:%s">`, color), Suffix: "</span>", Placeholder: "Color Text"}
}

// Align wraps the selection in an aligned block.
func Align(align string) Wrapper {
	return Wrapper{Prefix: fmt.Sprintf(`<div align="%s">`, align), Suffix: "</div>", Placeholder: "Content"}
}

// LineHeight wraps the selection in a block with the given line height (e.g. "1.5", "200%").
func LineHeight(h string) Wrapper {
	return Wrapper{Prefix: fmt.Sprintf(`<div style="line-height:%s">`, h), Suffix: "</div>", Placeholder: "Line Height Content"}
}

var (
	lineMarkerRe    = regexp.MustCompile(`^(\d+\.\s|- |> )`)
	orderedMarkerRe = regexp.MustCompile(`^\d+\.\s`)
	continueRe      = regexp.MustCompile(`^(\s*)(\d+\.\s|- |> )`)
	leadingNumberRe = regexp.MustCompile(`\d+`)
	formattingRe    = regexp.MustCompile("<[^>]*>|[*_~`]")
)

// ToggleWrap removes w when the trimmed selection (or the text right around it)
// already carries it, otherwise wraps the selection, or w.Placeholder when the
// selection is empty. The wrapped content ends up selected.
//
// A line marker at the front of the selection ("1. ", "- ", "> ") stays in front
// of the markup.
func ToggleWrap(b Buffer, w Wrapper) Buffer {
	r := []rune(b.Text)
	lo, hi := clampRange(b.Sel, len(r))
	sel := string(r[lo:hi])

	trimmed := strings.TrimSpace(sel)
	leading, trailing := "", ""
	if trimmed != "" {
		leading = sel[:len(sel)-len(strings.TrimLeftFunc(sel, unicode.IsSpace))]
		trailing = sel[len(strings.TrimRightFunc(sel, unicode.IsSpace)):]
	} else {
		leading = sel
	}

	marker := lineMarkerRe.FindString(trimmed)
	body := trimmed[len(marker):]

	if isWrapped(body, w) {
		inner := body[len(w.Prefix) : len(body)-len(w.Suffix)]
		text := leading + marker + inner + trailing
		start := lo + runeLen(leading+marker)
		return Buffer{
			Text: splice(r, lo, hi, text),
			Sel:  Selection{Start: start, End: start + runeLen(inner)},
		}
	}

	if marker == "" && leading == "" && trailing == "" && surroundedBy(r, lo, hi, w) {
		pl, sl := runeLen(w.Prefix), runeLen(w.Suffix)
		start := lo - pl
		return Buffer{
			Text: splice(r, start, hi+sl, sel),
			Sel:  Selection{Start: start, End: start + runeLen(sel)},
		}
	}

	content := body
	if content == "" {
		content = w.Placeholder
	}
	text := leading + marker + w.Prefix + content + w.Suffix + trailing
	start := lo + runeLen(leading+marker+w.Prefix)
	return Buffer{
		Text: splice(r, lo, hi, text),
		Sel:  Selection{Start: start, End: start + runeLen(content)},
	}
}

func isWrapped(s string, w Wrapper) bool {
	return len(s) >= len(w.Prefix)+len(w.Suffix) &&
		strings.HasPrefix(s, w.Prefix) &&
		strings.HasSuffix(s, w.Suffix)
}

// surroundedBy reports whether w sits right outside the selection. For markers
// made of one repeated rune ("*", "**", "~~", "`") the whole run on each side
// must be w's own, so italic inside "**bold**" is not mistaken for italic.
// A run of three "*" is bold and italic together and carries both.
func surroundedBy(r []rune, lo, hi int, w Wrapper) bool {
	pl, sl := runeLen(w.Prefix), runeLen(w.Suffix)
	if lo-pl < 0 || hi+sl > len(r) {
		return false
	}
	if string(r[lo-pl:lo]) != w.Prefix || string(r[hi:hi+sl]) != w.Suffix {
		return false
	}
	c, ok := repeatedRune(w.Prefix)
	if !ok || w.Prefix != w.Suffix {
		return true
	}
	left, right := 0, 0
	for i := lo - 1; i >= 0 && r[i] == c; i-- {
		left++
	}
	for i := hi; i < len(r) && r[i] == c; i++ {
		right++
	}
	if left != right {
		return false
	}
	return left == pl || (c == '*' && left == 3)
}

// repeatedRune returns c when s is c repeated one or more times.
func repeatedRune(s string) (rune, bool) {
	r := []rune(s)
	if len(r) == 0 {
		return 0, false
	}
	for _, x := range r[1:] {
		if x != r[0] {
			return 0, false
		}
	}
	return r[0], true
}

// rewriteLines applies fn to every line touched by the selection and selects
// the rewritten span.
func rewriteLines(b Buffer, fn func(string) string) Buffer {
	r := []rune(b.Text)
	lo, hi := clampRange(b.Sel, len(r))
	ls, le := lineSpan(r, lo, hi)

	lines := strings.Split(string(r[ls:le]), "\n")
	for i, line := range lines {
		lines[i] = fn(line)
	}
	text := strings.Join(lines, "\n")
	return Buffer{
		Text: splice(r, ls, le, text),
		Sel:  Selection{Start: ls, End: ls + runeLen(text)},
	}
}

// ToggleLinePrefix strips prefix from every touched line that starts with it
// and prepends it to every line that does not.
func ToggleLinePrefix(b Buffer, prefix string) Buffer {
	return rewriteLines(b, func(line string) string {
		if strings.HasPrefix(line, prefix) {
			return line[len(prefix):]
		}
		return prefix + line
	})
}

// BulletList toggles "- " on the touched lines.
func BulletList(b Buffer) Buffer {
	return ToggleLinePrefix(b, "- ")
}

// Blockquote toggles "> " on the touched lines. The toolbar's indent button uses it.
func Blockquote(b Buffer) Buffer {
	return ToggleLinePrefix(b, "> ")
}

// OrderedList strips any "N. " marker from the touched lines, or prepends "1. ".
func OrderedList(b Buffer) Buffer {
	return rewriteLines(b, func(line string) string {
		if loc := orderedMarkerRe.FindStringIndex(line); loc != nil {
			return line[loc[1]:]
		}
		return "1. " + line
	})
}

// Outdent removes one level of quote marker or two spaces of indentation
// from every touched line.
func Outdent(b Buffer) Buffer {
	return rewriteLines(b, func(line string) string {
		switch {
		case strings.HasPrefix(line, "> "):
			return line[2:]
		case strings.HasPrefix(line, ">"):
			return line[1:]
		case strings.HasPrefix(line, "  "):
			return line[2:]
		}
		return line
	})
}

// InsertLink replaces the selection with a markdown link and selects its text.
// An empty url leaves the buffer untouched.
func InsertLink(b Buffer, url string) Buffer {
	url = strings.TrimSpace(url)
	if url == "" {
		return b
	}
	r := []rune(b.Text)
	lo, hi := clampRange(b.Sel, len(r))
	label := string(r[lo:hi])
	if label == "" {
		label = "Link text"
	}
	text := "[" + label + "](" + url + ")"
	return Buffer{
		Text: splice(r, lo, hi, text),
		Sel:  Selection{Start: lo + 1, End: lo + 1 + runeLen(label)},
	}
}

// InsertImage replaces the selection with a markdown image and leaves the
// cursor at the start of it.
func InsertImage(b Buffer, alt, url string) Buffer {
	r := []rune(b.Text)
	lo, hi := clampRange(b.Sel, len(r))
	text := "![" + alt + "](" + url + ")"
	return Buffer{Text: splice(r, lo, hi, text), Sel: Cursor(lo)}
}

// ClearFormatting strips tags and emphasis characters from the selection.
// Markup that spans beyond the selection is left alone.
func ClearFormatting(b Buffer) Buffer {
	r := []rune(b.Text)
	lo, hi := clampRange(b.Sel, len(r))
	stripped := formattingRe.ReplaceAllString(string(r[lo:hi]), "")
	return Buffer{Text: splice(r, lo, hi, stripped), Sel: Cursor(lo + runeLen(stripped))}
}

// InsertIndent inserts two spaces at the selection start.
func InsertIndent(b Buffer) Buffer {
	r := []rune(b.Text)
	lo, _ := clampRange(b.Sel, len(r))
	return Buffer{Text: splice(r, lo, lo, "  "), Sel: Cursor(lo + 2)}
}

// ContinueList handles Enter on a list or quote line. A line with content after
// its marker gets a new line with the next marker; a line holding only the marker
// is cleared. It reports false when a plain newline should be inserted instead.
func ContinueList(b Buffer) (Buffer, bool) {
	r := []rune(b.Text)
	lo, hi := clampRange(b.Sel, len(r))
	ls, _ := lineSpan(r, lo, lo)
	line := string(r[ls:lo])

	m := continueRe.FindString(line)
	if m == "" {
		return b, false
	}
	if len(line) > len(m) {
		next := m
		if strings.Contains(m, ".") {
			n, err := strconv.Atoi(leadingNumberRe.FindString(m))
			if err == nil {
				next = leadingNumberRe.ReplaceAllLiteralString(m, strconv.Itoa(n+1))
			}
		}
		insert := "\n" + next
		return Buffer{Text: splice(r, lo, hi, insert), Sel: Cursor(lo + runeLen(insert))}, true
	}
	return Buffer{Text: splice(r, ls, hi, "\n"), Sel: Cursor(ls + 1)}, true
}
