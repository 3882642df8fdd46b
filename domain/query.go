package domain

import "fmt"

// SortOption orders the post list.
type SortOption string

const (
	SortLatest       SortOption = "latest"
	SortOldest       SortOption = "oldest"
	SortMostViews    SortOption = "most_views"
	SortMostLikes    SortOption = "most_likes"
	SortMostComments SortOption = "most_comments"
)

// SortOptions lists every sort in menu order.
var SortOptions = []SortOption{SortLatest, SortOldest, SortMostViews, SortMostLikes, SortMostComments}

// Normalize maps unknown values to SortLatest.
func (s SortOption) Normalize() SortOption {
	for _, o := range SortOptions {
		if s == o {
			return s
		}
	}
	return SortLatest
}

// Label is the menu text.
func (s SortOption) Label() string {
	switch s.Normalize() {
	case SortOldest:
		return "Oldest"
	case SortMostViews:
		return "Most viewed"
	case SortMostLikes:
		return "Most liked"
	case SortMostComments:
		return "Most commented"
	default:
		return "Latest"
	}
}

// SearchFilter scopes keyword search.
type SearchFilter string

const (
	FilterTitleOrContent SearchFilter = "title_or_content"
	FilterTitle          SearchFilter = "title"
	FilterContent        SearchFilter = "content"
	FilterAuthor         SearchFilter = "author"
)

// SearchFilters lists every filter in menu order.
var SearchFilters = []SearchFilter{FilterTitleOrContent, FilterTitle, FilterContent, FilterAuthor}

// Normalize maps unknown values to FilterTitleOrContent.
func (f SearchFilter) Normalize() SearchFilter {
	for _, o := range SearchFilters {
		if f == o {
			return f
		}
	}
	return FilterTitleOrContent
}

// Label is the menu text.
func (f SearchFilter) Label() string {
	switch f.Normalize() {
	case FilterTitle:
		return "Title"
	case FilterContent:
		return "Content"
	case FilterAuthor:
		return "Author"
	default:
		return "Title+Content"
	}
}

// PagingMode selects between page buttons and infinite scroll.
type PagingMode string

const (
	PagingInfinite PagingMode = "infinite"
	PagingPages    PagingMode = "pages"
)

// Normalize maps unknown values to PagingInfinite.
func (m PagingMode) Normalize() PagingMode {
	if m == PagingPages {
		return m
	}
	return PagingInfinite
}

// PostQuery holds every list parameter except the page.
type PostQuery struct {
	CategoryID int
	Sort       SortOption
	Filter     SearchFilter
	Keyword    string
}

// Key identifies the query for response fencing. Two queries with the same
// key produce the same list.
func (q PostQuery) Key() string {
	filter := ""
	if q.Keyword != "" {
		filter = string(q.Filter.Normalize())
	}
	return fmt.Sprintf("c=%d|s=%s|f=%s|k=%s", q.CategoryID, q.Sort.Normalize(), filter, q.Keyword)
}
