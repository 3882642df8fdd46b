package markdown

import (
	"strings"
	"testing"
)

func sel(text string, start, end int) Buffer {
	return Buffer{Text: text, Sel: Selection{Start: start, End: end}}
}

func TestToggleWrap_BoldSelectsInnerText(t *testing.T) {
	got := ToggleWrap(sel("hello", 0, 5), Bold)
	if got.Text != "**hello**" {
		t.Fatalf("unexpected text: %q", got.Text)
	}
	if got.Selected() != "hello" || got.Sel != (Selection{Start: 2, End: 7}) {
		t.Fatalf("expected inner text reselected, got %+v", got.Sel)
	}
}

func TestToggleWrap_TwiceRestoresOriginal(t *testing.T) {
	wrappers := []Wrapper{Bold, Italic, Underline, Strikethrough, Highlight, InlineCode, FontSize(18), TextColor("#EF4444"), Align("center"), LineHeight("1.5")}
	for _, w := range wrappers {
		t.Run(w.Prefix, func(t *testing.T) {
			start := sel("say hello world", 4, 9)
			once := ToggleWrap(start, w)
			twice := ToggleWrap(once, w)
			if twice.Text != start.Text {
				t.Fatalf("double toggle changed text: %q", twice.Text)
			}
			if twice.Selected() != "hello" {
				t.Fatalf("expected selection restored, got %q", twice.Selected())
			}
		})
	}
}

func TestToggleWrap_ItalicInsideBold(t *testing.T) {
	got := ToggleWrap(sel("**hello**", 2, 7), Italic)
	if got.Text != "***hello***" || got.Selected() != "hello" {
		t.Fatalf("italic should be added inside bold, got %q sel %+v", got.Text, got.Sel)
	}
	back := ToggleWrap(got, Italic)
	if back.Text != "**hello**" || back.Selected() != "hello" {
		t.Fatalf("second italic toggle should keep bold, got %q", back.Text)
	}
	unbold := ToggleWrap(got, Bold)
	if unbold.Text != "*hello*" || unbold.Selected() != "hello" {
		t.Fatalf("bold toggle on bold italic should leave italic, got %q", unbold.Text)
	}
}

func TestToggleWrap_BoldInsideItalic(t *testing.T) {
	got := ToggleWrap(sel("*hello*", 1, 6), Bold)
	if got.Text != "***hello***" {
		t.Fatalf("bold should be added inside italic, got %q", got.Text)
	}
	if back := ToggleWrap(got, Bold); back.Text != "*hello*" {
		t.Fatalf("second bold toggle should keep italic, got %q", back.Text)
	}
}

func TestToggleWrap_EmptySelectionTwiceKeepsPlaceholder(t *testing.T) {
	once := ToggleWrap(sel("ab", 1, 1), Bold)
	twice := ToggleWrap(once, Bold)
	if twice.Text != "aBold textb" || twice.Selected() != "Bold text" {
		t.Fatalf("second toggle should unwrap the selected placeholder, got %q", twice.Text)
	}
}

func TestToggleWrap_UnwrapsWhenSelectionCarriesMarkup(t *testing.T) {
	got := ToggleWrap(sel("x **bold** y", 2, 10), Bold)
	if got.Text != "x bold y" || got.Selected() != "bold" {
		t.Fatalf("unexpected unwrap: %q sel=%q", got.Text, got.Selected())
	}
}

func TestToggleWrap_KeepsSurroundingWhitespaceOutside(t *testing.T) {
	got := ToggleWrap(sel("a hello b", 1, 8), Bold)
	if got.Text != "a **hello** b" {
		t.Fatalf("unexpected text: %q", got.Text)
	}
	if got.Sel != (Selection{Start: 4, End: 9}) {
		t.Fatalf("unexpected selection: %+v", got.Sel)
	}
}

func TestToggleWrap_EmptySelectionUsesPlaceholder(t *testing.T) {
	got := ToggleWrap(sel("", 0, 0), Bold)
	if got.Text != "**Bold text**" || got.Selected() != "Bold text" {
		t.Fatalf("unexpected placeholder insert: %q sel=%q", got.Text, got.Selected())
	}
	back := ToggleWrap(got, Bold)
	if back.Text != "Bold text" {
		t.Fatalf("toggling the placeholder should unwrap it, got %q", back.Text)
	}
}

func TestToggleWrap_ListMarkerStaysInFront(t *testing.T) {
	got := ToggleWrap(sel("1. item", 0, 7), Bold)
	if got.Text != "1. **item**" || got.Selected() != "item" {
		t.Fatalf("marker corrupted: %q sel=%q", got.Text, got.Selected())
	}
	back := ToggleWrap(sel(got.Text, 0, len(got.Text)), Bold)
	if back.Text != "1. item" || back.Selected() != "item" {
		t.Fatalf("unwrap with marker failed: %q sel=%q", back.Text, back.Selected())
	}

	quote := ToggleWrap(sel("> said", 0, 6), Italic)
	if quote.Text != "> *said*" {
		t.Fatalf("quote marker corrupted: %q", quote.Text)
	}
}

func TestToggleWrap_BackwardsSelection(t *testing.T) {
	got := ToggleWrap(sel("hello", 5, 0), Strikethrough)
	if got.Text != "~~hello~~" {
		t.Fatalf("backwards selection not handled: %q", got.Text)
	}
}

func TestToggleWrap_MultibyteOffsets(t *testing.T) {
	got := ToggleWrap(sel("안녕 세상", 3, 5), Bold)
	if got.Text != "안녕 **세상**" || got.Selected() != "세상" {
		t.Fatalf("rune offsets broken: %q sel=%q", got.Text, got.Selected())
	}
}

func TestBulletList_ApplyRemoveApply(t *testing.T) {
	b := sel("a\nb\nc", 0, 3)
	once := BulletList(b)
	if once.Text != "- a\n- b\nc" {
		t.Fatalf("unexpected apply: %q", once.Text)
	}
	if once.Selected() != "- a\n- b" {
		t.Fatalf("expected line span selected, got %q", once.Selected())
	}
	twice := BulletList(once)
	if twice.Text != "a\nb\nc" {
		t.Fatalf("unexpected remove: %q", twice.Text)
	}
	thrice := BulletList(twice)
	if thrice.Text != once.Text {
		t.Fatalf("apply/remove/apply must reproduce marker: %q", thrice.Text)
	}
}

func TestToggleLinePrefix_CursorInsideLine(t *testing.T) {
	got := Blockquote(sel("first\nsecond\nthird", 8, 8))
	if got.Text != "first\n> second\nthird" {
		t.Fatalf("only the cursor line should change: %q", got.Text)
	}
}

func TestOrderedList_StripsAnyNumber(t *testing.T) {
	got := OrderedList(sel("x\n3. y", 0, 6))
	if got.Text != "1. x\ny" {
		t.Fatalf("unexpected ordered toggle: %q", got.Text)
	}
	again := OrderedList(sel("a", 0, 1))
	if again = OrderedList(again); again.Text != "a" {
		t.Fatalf("apply/remove should restore: %q", again.Text)
	}
}

func TestOutdent(t *testing.T) {
	text := "> a\n>b\n  c\nd"
	got := Outdent(sel(text, 0, len([]rune(text))))
	if got.Text != "a\nb\nc\nd" {
		t.Fatalf("unexpected outdent: %q", got.Text)
	}
}

func TestInsertLink(t *testing.T) {
	got := InsertLink(sel("go here", 3, 7), "https://x")
	if got.Text != "go [here](https://x)" || got.Selected() != "here" {
		t.Fatalf("unexpected link: %q sel=%q", got.Text, got.Selected())
	}
	empty := InsertLink(sel("go ", 3, 3), "https://x")
	if empty.Text != "go [Link text](https://x)" || empty.Selected() != "Link text" {
		t.Fatalf("unexpected placeholder link: %q", empty.Text)
	}
	same := InsertLink(sel("go", 0, 2), "  ")
	if same.Text != "go" {
		t.Fatalf("blank url must be a no-op")
	}
}

func TestInsertImage_UnconditionalInsert(t *testing.T) {
	got := InsertImage(sel("ab", 1, 1), "p.png", "u")
	if got.Text != "a![p.png](u)b" || got.Sel != Cursor(1) {
		t.Fatalf("unexpected image insert: %q %+v", got.Text, got.Sel)
	}
	twice := InsertImage(got, "p.png", "u")
	if strings.Count(twice.Text, "![p.png](u)") != 2 {
		t.Fatalf("image insert must not toggle: %q", twice.Text)
	}
}

func TestClearFormatting(t *testing.T) {
	text := "**b** <u>u</u>"
	got := ClearFormatting(sel(text, 0, len(text)))
	if got.Text != "b u" || got.Sel != Cursor(3) {
		t.Fatalf("unexpected clear: %q %+v", got.Text, got.Sel)
	}
	broken := ClearFormatting(sel("<span style=", 0, 12))
	if broken.Text != "<span style=" {
		t.Fatalf("malformed markup should be left as-is: %q", broken.Text)
	}
}

func TestContinueList(t *testing.T) {
	tests := []struct {
		name     string
		in       Buffer
		wantText string
		wantCur  int
		handled  bool
	}{
		{name: "bullet", in: sel("- a", 3, 3), wantText: "- a\n- ", wantCur: 6, handled: true},
		{name: "ordered increments", in: sel("1. a", 4, 4), wantText: "1. a\n2. ", wantCur: 8, handled: true},
		{name: "indented quote", in: sel("  > q", 5, 5), wantText: "  > q\n  > ", wantCur: 10, handled: true},
		{name: "marker only clears", in: sel("x\n- ", 4, 4), wantText: "x\n\n", wantCur: 3, handled: true},
		{name: "plain line", in: sel("abc", 3, 3), wantText: "abc", wantCur: 3, handled: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ContinueList(tc.in)
			if ok != tc.handled {
				t.Fatalf("handled=%v want %v", ok, tc.handled)
			}
			if got.Text != tc.wantText || got.Sel.End != tc.wantCur {
				t.Fatalf("got %q cur=%d want %q cur=%d", got.Text, got.Sel.End, tc.wantText, tc.wantCur)
			}
		})
	}
}

func TestInsertIndent(t *testing.T) {
	got := InsertIndent(sel("ab", 1, 1))
	if got.Text != "a  b" || got.Sel != Cursor(3) {
		t.Fatalf("unexpected indent: %q %+v", got.Text, got.Sel)
	}
}
