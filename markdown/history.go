package markdown

// HistoryLimit caps the number of snapshots kept for undo.
const HistoryLimit = 50

// History is a bounded linear undo stack of whole-text snapshots.
type History struct {
	stack []string
	index int
}

// NewHistory starts a history whose only snapshot is initial.
func NewHistory(initial string) History {
	return History{stack: []string{initial}}
}

// Reset drops every snapshot and starts over from s.
func (h *History) Reset(s string) {
	h.stack = []string{s}
	h.index = 0
}

// Current returns the snapshot undo/redo last landed on.
func (h History) Current() string {
	if len(h.stack) == 0 {
		return ""
	}
	return h.stack[h.index]
}

// Push records s as the newest snapshot, discarding anything that could be redone.
// It reports false when s equals the current snapshot.
func (h *History) Push(s string) bool {
	if len(h.stack) == 0 {
		h.Reset(s)
		return true
	}
	if s == h.stack[h.index] {
		return false
	}
	next := make([]string, h.index+1, h.index+2)
	copy(next, h.stack[:h.index+1])
	next = append(next, s)
	if len(next) > HistoryLimit {
		next = next[len(next)-HistoryLimit:]
	}
	h.stack = next
	h.index = len(next) - 1
	return true
}

// Undo steps back one snapshot.
func (h *History) Undo() (string, bool) {
	if h.index == 0 || len(h.stack) == 0 {
		return "", false
	}
	h.index--
	return h.stack[h.index], true
}

// Redo steps forward one snapshot.
func (h *History) Redo() (string, bool) {
	if h.index >= len(h.stack)-1 {
		return "", false
	}
	h.index++
	return h.stack[h.index], true
}

// CanUndo reports whether Undo would succeed.
func (h History) CanUndo() bool { return h.index > 0 }

// CanRedo reports whether Redo would succeed.
func (h History) CanRedo() bool { return h.index < len(h.stack)-1 }

// Len returns the number of snapshots held.
func (h History) Len() int { return len(h.stack) }
