package markdown

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

var mentionRe = regexp.MustCompile(`(^|\s)@([^\s@]+)`)

// ActiveMention returns the "@prefix" token that ends at the cursor, without
// the '@', and the rune offset of the '@'.
func ActiveMention(b Buffer) (prefix string, at int, ok bool) {
	if !b.Sel.Empty() {
		return "", 0, false
	}
	r := []rune(b.Text)
	cur := min(max(b.Sel.End, 0), len(r))
	i := cur
	for i > 0 && !unicode.IsSpace(r[i-1]) && r[i-1] != '@' {
		i--
	}
	if i == 0 || r[i-1] != '@' {
		return "", 0, false
	}
	at = i - 1
	if at > 0 && !unicode.IsSpace(r[at-1]) {
		// e-mail address, not a mention
		return "", 0, false
	}
	return string(r[i:cur]), at, true
}

// MentionCandidates returns nicknames starting with prefix, case-insensitively,
// de-duplicated and sorted, at most limit of them (0 means no limit).
func MentionCandidates(prefix string, nicknames []string, limit int) []string {
	p := strings.ToLower(prefix)
	seen := make(map[string]struct{}, len(nicknames))
	var out []string
	for _, n := range nicknames {
		n = strings.TrimSpace(n)
		if n == "" || strings.ContainsAny(n, " \t\n") {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(n), p) {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// CompleteMention replaces the active mention token with "@nickname ".
func CompleteMention(b Buffer, nickname string) Buffer {
	_, at, ok := ActiveMention(b)
	if !ok {
		return b
	}
	r := []rune(b.Text)
	cur := min(max(b.Sel.End, 0), len(r))
	insert := "@" + nickname + " "
	return Buffer{Text: splice(r, at, cur, insert), Sel: Cursor(at + runeLen(insert))}
}

// Mentions lists the nicknames mentioned in text, in order of appearance.
func Mentions(text string) []string {
	var out []string
	for _, m := range mentionRe.FindAllStringSubmatch(text, -1) {
		out = append(out, strings.TrimRight(m[2], ".,!?:;"))
	}
	return out
}
