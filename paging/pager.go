// Package paging keeps a locally held list consistent with a paginated,
// filterable server collection.
//
// A Pager never performs I/O. It hands out Requests, the caller runs them, and
// the results come back through Apply or Fail. Every request carries the
// generation and query key it was issued for; results for anything but the
// latest generation are dropped, so a slow response for an old filter can never
// overwrite a newer list.
package paging

import (
	"slices"

	"github.com/CrestNiraj12/boardterm/domain"
)

// Mode selects how further pages are reached.
type Mode int

const (
	// ModeInfinite appends the next page when the reader nears the end of the list.
	ModeInfinite Mode = iota
	// ModePages replaces the list with the page the reader picked.
	ModePages
)

// ModeFor maps the persisted paging preference to a Mode.
func ModeFor(m domain.PagingMode) Mode {
	if m.Normalize() == domain.PagingPages {
		return ModePages
	}
	return ModeInfinite
}

const (
	// BlockSize is the number of page buttons shown at once.
	BlockSize = 10

	// PrefetchTrigger is how close to the end the cursor must get before the
	// next page is requested in ModeInfinite.
	PrefetchTrigger = 3
)

// Request describes one page fetch.
type Request struct {
	Seq    int
	Key    string
	Page   int
	Append bool
}

// Pager accumulates pages of T for one query at a time.
type Pager[T any] struct {
	mode     Mode
	pageSize int
	idOf     func(T) int

	key     string
	seq     int
	items   []T
	page    int
	count   int
	hasNext bool
	loading bool
	loaded  bool
	err     error
}

// New creates a pager. idOf identifies items for de-duplication and patching.
func New[T any](mode Mode, pageSize int, idOf func(T) int) *Pager[T] {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Pager[T]{mode: mode, pageSize: pageSize, idOf: idOf}
}

// Reset discards everything accumulated and returns the request for page 1 of key.
func (p *Pager[T]) Reset(key string) Request {
	p.key = key
	p.seq++
	p.items = nil
	p.page = 0
	p.count = 0
	p.hasNext = false
	p.loaded = false
	p.loading = true
	p.err = nil
	return Request{Seq: p.seq, Key: key, Page: 1}
}

// Reload refetches page 1 of the current key.
func (p *Pager[T]) Reload() Request {
	return p.Reset(p.key)
}

// LoadMore returns the request for the next page. It reports false while a
// fetch is in flight, before the first page arrived, or when the server said
// there is no next page.
func (p *Pager[T]) LoadMore() (Request, bool) {
	if p.loading || !p.loaded || !p.hasNext {
		return Request{}, false
	}
	p.seq++
	p.loading = true
	return Request{Seq: p.seq, Key: p.key, Page: p.page + 1, Append: p.mode == ModeInfinite}, true
}

// NearEnd reports whether a cursor at index should trigger LoadMore in ModeInfinite.
func (p *Pager[T]) NearEnd(index int) bool {
	return p.mode == ModeInfinite && index >= len(p.items)-PrefetchTrigger
}

// GoTo returns the request replacing the list with page n, clamped to the known
// page range. It reports false when n is the current page or a fetch is in flight.
func (p *Pager[T]) GoTo(n int) (Request, bool) {
	if p.loading {
		return Request{}, false
	}
	n = min(max(n, 1), p.TotalPages())
	if n == p.page {
		return Request{}, false
	}
	p.seq++
	p.loading = true
	return Request{Seq: p.seq, Key: p.key, Page: n}, true
}

func (p *Pager[T]) current(req Request) bool {
	return req.Seq == p.seq && req.Key == p.key
}

// Apply merges a page into the list. It reports false and changes nothing when
// req is stale.
func (p *Pager[T]) Apply(req Request, page domain.Page[T]) bool {
	if !p.current(req) {
		return false
	}
	p.loading = false
	p.loaded = true
	p.err = nil
	p.page = req.Page
	p.count = page.Count
	p.hasNext = page.HasNext()

	if !req.Append {
		p.items = append([]T(nil), page.Results...)
		return true
	}

	seen := make(map[int]struct{}, len(p.items))
	for _, it := range p.items {
		seen[p.idOf(it)] = struct{}{}
	}
	added := 0
	for _, it := range page.Results {
		if _, ok := seen[p.idOf(it)]; ok {
			continue
		}
		p.items = append(p.items, it)
		added++
	}
	if added == 0 {
		// A full page of duplicates means the list shifted under us; stop here
		// rather than requesting the same page forever.
		p.hasNext = false
	}
	return true
}

// Fail records a failed fetch. Stale failures are ignored.
func (p *Pager[T]) Fail(req Request, err error) bool {
	if !p.current(req) {
		return false
	}
	p.loading = false
	p.err = err
	return true
}

// Patch applies fn to the item with the given id.
func (p *Pager[T]) Patch(id int, fn func(*T)) bool {
	for i := range p.items {
		if p.idOf(p.items[i]) == id {
			fn(&p.items[i])
			return true
		}
	}
	return false
}

// Remove drops the item with the given id. Slices returned by Items before the
// call are left as they were.
func (p *Pager[T]) Remove(id int) bool {
	for i := range p.items {
		if p.idOf(p.items[i]) == id {
			p.items = slices.Delete(slices.Clone(p.items), i, i+1)
			if p.count > 0 {
				p.count--
			}
			return true
		}
	}
	return false
}

// Prepend inserts item at the top of the list.
func (p *Pager[T]) Prepend(item T) {
	p.items = append([]T{item}, p.items...)
	p.count++
}

// Append adds item at the bottom of the list when no further pages are pending,
// which is where the server would put it for oldest-first collections.
func (p *Pager[T]) Append(item T) {
	p.count++
	if p.hasNext {
		return
	}
	p.items = append(p.items, item)
}

// Items returns the accumulated list.
func (p *Pager[T]) Items() []T { return p.items }

// Len returns the number of accumulated items.
func (p *Pager[T]) Len() int { return len(p.items) }

// Key returns the query key of the current generation.
func (p *Pager[T]) Key() string { return p.key }

// Mode returns the loading strategy.
func (p *Pager[T]) Mode() Mode { return p.mode }

// SetMode switches strategy. The caller should Reset afterwards.
func (p *Pager[T]) SetMode(m Mode) { p.mode = m }

// Page returns the last page applied.
func (p *Pager[T]) Page() int { return p.page }

// Count returns the server-side total.
func (p *Pager[T]) Count() int { return p.count }

// HasNext reports whether the last page advertised a successor.
func (p *Pager[T]) HasNext() bool { return p.hasNext }

// Loading reports whether a request is in flight.
func (p *Pager[T]) Loading() bool { return p.loading }

// Loaded reports whether any page arrived for the current key.
func (p *Pager[T]) Loaded() bool { return p.loaded }

// Err returns the last fetch error for the current key.
func (p *Pager[T]) Err() error { return p.err }

// TotalPages is at least 1.
func (p *Pager[T]) TotalPages() int {
	if p.count <= 0 {
		return 1
	}
	return (p.count + p.pageSize - 1) / p.pageSize
}

// PageBlock returns the page numbers of the button block holding the current page.
func (p *Pager[T]) PageBlock() []int {
	cur := max(p.page, 1)
	start := (cur-1)/BlockSize*BlockSize + 1
	end := min(start+BlockSize-1, p.TotalPages())
	out := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out
}
